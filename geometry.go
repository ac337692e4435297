package gothumb

// Normalized-coordinate helpers. Layer positions and sizes are fractions of
// the canvas width or height in [0, 1]; pixel math happens at render time.

// Default canvas resolution (16:9 video thumbnail).
const (
	DefaultCanvasWidth  = 1280
	DefaultCanvasHeight = 720
)

// toPixels converts a normalized fraction of an extent to whole pixels.
func toPixels(frac float64, extent int) int {
	return int(frac * float64(extent))
}

// clampUnit clamps v to [0, 1].
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampIndex clamps i to [lo, hi].
func clampIndex(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

// clampByte clamps v to the 0-255 channel range.
func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
