package gothumb

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// renderOverlayLayer rasterizes a shape overlay onto a transparent
// canvas-sized layer. The shape's fill alpha carries the layer opacity;
// blur and rotation post-process the filled shape.
func renderOverlayLayer(layer *OverlayLayer, w, h int) *image.NRGBA {
	pw := layer.Width * float64(w)
	ph := layer.Height * float64(h)
	cx := layer.PositionX * float64(w)
	cy := layer.PositionY * float64(h)
	x0 := cx - pw/2
	y0 := cy - ph/2

	dc := gg.NewContext(w, h)
	dc.SetColor(layer.Color.NRGBA(layer.Opacity))

	switch layer.Mode {
	case OverlayCircle:
		dc.DrawEllipse(cx, cy, pw/2, ph/2)
		dc.Fill()

	case OverlayBanner:
		// Ribbon body in the top three quarters of the box, with two flag
		// triangles whose apexes land exactly on the box bottom. The bases
		// sit at ph-triH, so the flags overlap the body's lower edge and
		// the whole shape stays inside the bounding box.
		triH := ph * 0.35
		baseY := y0 + ph - triH
		apexY := y0 + ph
		dc.DrawRoundedRectangle(x0, y0, pw, ph*0.75, float64(layer.Rounded))
		dc.Fill()

		dc.MoveTo(x0, baseY)
		dc.LineTo(cx, baseY)
		dc.LineTo(x0+pw/4, apexY)
		dc.ClosePath()
		dc.Fill()

		dc.MoveTo(cx, baseY)
		dc.LineTo(x0+pw, baseY)
		dc.LineTo(x0+pw*3/4, apexY)
		dc.ClosePath()
		dc.Fill()

	default: // rectangle
		dc.DrawRoundedRectangle(x0, y0, pw, ph, float64(layer.Rounded))
		dc.Fill()
	}

	out := toNRGBA(dc.Image())
	if layer.BlurRadius > 0 {
		out = imaging.Blur(out, float64(layer.BlurRadius))
	}
	if layer.Rotation != 0 {
		out = rotateAbout(out, layer.Rotation, cx, cy)
	}
	return out
}
