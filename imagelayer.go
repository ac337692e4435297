package gothumb

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// renderImageLayer rasterizes an embedded picture onto a transparent
// canvas-sized layer. A missing or unreadable source yields an empty
// layer rather than an error so one broken asset never blocks a render.
func renderImageLayer(layer *ImageLayer, w, h int, loader ImageLoader) *image.NRGBA {
	out := imaging.New(w, h, color.Transparent)
	if layer.ImagePath == "" || loader == nil {
		return out
	}
	src, err := loader.Load(layer.ImagePath)
	if err != nil {
		return out
	}

	sprite := imaging.Clone(src)
	if layer.FlipHorizontal {
		sprite = imaging.FlipH(sprite)
	}
	if layer.FlipVertical {
		sprite = imaging.FlipV(sprite)
	}

	// Uniform scale relative to the canvas: scale 1.0 is 40% of the width.
	targetW := int(0.4 * float64(w) * layer.Scale)
	if targetW < 1 {
		targetW = 1
	}
	sprite = imaging.Resize(sprite, targetW, 0, imaging.Lanczos)

	if layer.Opacity < 1 {
		sprite = multiplyAlpha(sprite, clampUnit(layer.Opacity))
	}

	cx := toPixels(layer.PositionX, w)
	cy := toPixels(layer.PositionY, h)

	// Shadow comes from the unrotated silhouette and stays unrotated.
	if layer.AddShadow {
		shadow := silhouette(sprite, layer.ShadowOpacity)
		if layer.ShadowBlur > 0 {
			shadow = imaging.Blur(shadow, float64(layer.ShadowBlur))
		}
		sb := shadow.Bounds()
		pos := image.Pt(
			cx-sb.Dx()/2+layer.ShadowOffsetX,
			cy-sb.Dy()/2+layer.ShadowOffsetY,
		)
		draw.Draw(out, image.Rectangle{Min: pos, Max: pos.Add(sb.Size())}, shadow, sb.Min, draw.Over)
	}

	if layer.Rotation != 0 {
		sprite = imaging.Rotate(sprite, layer.Rotation, color.Transparent)
	}

	b := sprite.Bounds()
	pos := image.Pt(cx-b.Dx()/2, cy-b.Dy()/2)
	draw.Draw(out, image.Rectangle{Min: pos, Max: pos.Add(b.Size())}, sprite, b.Min, draw.Over)
	return out
}

// multiplyAlpha scales the alpha channel of every pixel by factor.
func multiplyAlpha(img *image.NRGBA, factor float64) *image.NRGBA {
	out := imaging.Clone(img)
	p := out.Pix
	for i := 3; i < len(p); i += 4 {
		p[i] = clampByte(float64(p[i]) * factor)
	}
	return out
}

// silhouette replaces every pixel with black, keeping the source alpha
// scaled by opacity.
func silhouette(img *image.NRGBA, opacity float64) *image.NRGBA {
	out := imaging.Clone(img)
	p := out.Pix
	f := clampUnit(opacity)
	for i := 0; i < len(p); i += 4 {
		p[i] = 0
		p[i+1] = 0
		p[i+2] = 0
		p[i+3] = clampByte(float64(p[i+3]) * f)
	}
	return out
}
