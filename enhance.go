package gothumb

import (
	"image"

	"github.com/disintegration/imaging"
)

// Color corrections applied to gradient and image backgrounds, in fixed
// order: brightness, contrast, saturation. Each step is skipped when its
// factor is exactly 1.0 so the identity setting is byte-for-byte lossless.

// applyCorrections runs the enabled correction steps and returns the result.
// The input image is never mutated.
func applyCorrections(img *image.NRGBA, brightness, contrast, saturation float64) *image.NRGBA {
	if brightness != 1.0 {
		img = adjustBrightness(img, brightness)
	}
	if contrast != 1.0 {
		img = adjustContrast(img, contrast)
	}
	if saturation != 1.0 {
		img = adjustSaturation(img, saturation)
	}
	return img
}

// adjustBrightness scales every channel by factor: out = in * factor.
func adjustBrightness(img *image.NRGBA, factor float64) *image.NRGBA {
	out := imaging.Clone(img)
	p := out.Pix
	for i := 0; i < len(p); i += 4 {
		p[i] = clampByte(float64(p[i]) * factor)
		p[i+1] = clampByte(float64(p[i+1]) * factor)
		p[i+2] = clampByte(float64(p[i+2]) * factor)
	}
	return out
}

// adjustContrast scales channel distance from the image's mean luma:
// out = mean + (in - mean) * factor.
func adjustContrast(img *image.NRGBA, factor float64) *image.NRGBA {
	out := imaging.Clone(img)
	p := out.Pix
	mean := float64(meanLuma(out))
	for i := 0; i < len(p); i += 4 {
		p[i] = clampByte(mean + (float64(p[i])-mean)*factor)
		p[i+1] = clampByte(mean + (float64(p[i+1])-mean)*factor)
		p[i+2] = clampByte(mean + (float64(p[i+2])-mean)*factor)
	}
	return out
}

// adjustSaturation interpolates each pixel between its own grayscale value
// and the original color: factor 0 is fully gray, 1 is unchanged, above 1
// oversaturates.
func adjustSaturation(img *image.NRGBA, factor float64) *image.NRGBA {
	out := imaging.Clone(img)
	p := out.Pix
	for i := 0; i < len(p); i += 4 {
		gray := luma(p[i], p[i+1], p[i+2])
		p[i] = clampByte(gray + (float64(p[i])-gray)*factor)
		p[i+1] = clampByte(gray + (float64(p[i+1])-gray)*factor)
		p[i+2] = clampByte(gray + (float64(p[i+2])-gray)*factor)
	}
	return out
}

// luma is the ITU-R 601 weighted grayscale value of an RGB triple.
func luma(r, g, b uint8) float64 {
	return (299*float64(r) + 587*float64(g) + 114*float64(b)) / 1000
}

// meanLuma is the average grayscale value over all pixels, rounded.
func meanLuma(img *image.NRGBA) uint8 {
	p := img.Pix
	n := len(p) / 4
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < len(p); i += 4 {
		sum += luma(p[i], p[i+1], p[i+2])
	}
	return uint8(sum/float64(n) + 0.5)
}
