package gothumb

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// renderTextLayer rasterizes a text layer onto a transparent canvas-sized
// layer. Font resolution failure is fatal: silently swapping typefaces
// would change composition in a way far harder to notice than an error.
func renderTextLayer(layer *TextLayer, w, h int, fonts *FontCache) (*image.NRGBA, error) {
	if fonts == nil {
		return nil, errors.New("no font resolver configured")
	}
	face, err := fonts.ResolveFace(layer.FontRef, float64(layer.FontSize))
	if err != nil {
		return nil, err
	}

	out := imaging.New(w, h, color.Transparent)
	if strings.TrimSpace(layer.Text) == "" {
		return out, nil
	}

	maxWidthPx := toPixels(layer.MaxWidth, w)
	lines := wrapText(layer.Text, face, maxWidthPx, layer.Tracking)

	// Vertical metrics: the block is centered on position_y using the sum
	// of the per-line ink heights plus fixed gaps, while the cursor steps
	// by a fixed per-line advance.
	gap := int(0.1 * float64(layer.FontSize))
	advance := int(1.1 * float64(layer.FontSize))
	total := 0
	for _, line := range lines {
		if line == "" {
			continue
		}
		b, _ := font.BoundString(face, line)
		total += (b.Max.Y - b.Min.Y).Ceil()
	}
	if n := len(lines); n > 1 {
		total += (n - 1) * gap
	}

	centerX := layer.PositionX * float64(w)
	centerY := layer.PositionY * float64(h)
	cursorY := int(centerY) - total/2
	ascent := face.Metrics().Ascent.Ceil()

	glyphs := gg.NewContext(w, h)
	glyphs.SetFontFace(face)

	for _, line := range lines {
		if line == "" {
			cursorY += advance
			continue
		}
		tracked := applyTracking(line, layer.Tracking)
		lineW := font.MeasureString(face, tracked).Ceil()

		var x float64
		switch layer.Align {
		case AlignLeft:
			x = centerX - float64(maxWidthPx)/2
		case AlignRight:
			x = centerX + float64(maxWidthPx)/2 - float64(lineW)
		default: // center
			x = centerX - float64(lineW)/2
		}
		baseline := float64(cursorY + ascent)

		if layer.Shadow.Enabled && layer.Shadow.Opacity > 0 {
			sc := gg.NewContext(w, h)
			sc.SetFontFace(face)
			sc.SetColor(layer.Shadow.Color.NRGBA(layer.Shadow.Opacity))
			sc.DrawString(tracked, x+float64(layer.Shadow.OffsetX), baseline+float64(layer.Shadow.OffsetY))
			shadow := toNRGBA(sc.Image())
			if layer.Shadow.BlurRadius > 0 {
				shadow = imaging.Blur(shadow, float64(layer.Shadow.BlurRadius))
			}
			draw.Draw(out, out.Bounds(), shadow, image.Point{}, draw.Over)
		}

		if sw := layer.Stroke.Width; sw > 0 {
			glyphs.SetColor(layer.Stroke.Color.NRGBA(1))
			for dx := -sw; dx <= sw; dx++ {
				for dy := -sw; dy <= sw; dy++ {
					if dx*dx+dy*dy > sw*sw {
						continue
					}
					glyphs.DrawString(tracked, x+float64(dx), baseline+float64(dy))
				}
			}
		}
		glyphs.SetColor(layer.Color.NRGBA(1))
		glyphs.DrawString(tracked, x, baseline)

		cursorY += advance
	}

	// Shadows first, glyphs on top.
	draw.Draw(out, out.Bounds(), glyphs.Image(), image.Point{}, draw.Over)

	if layer.Rotation != 0 {
		out = rotateAbout(out, layer.Rotation, centerX, centerY)
	}
	return out, nil
}

// applyTracking inserts floor(tracking/20) literal spaces between every pair
// of characters. Tracking below 20 leaves the text unchanged.
func applyTracking(s string, tracking int) string {
	n := tracking / 20
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) < 2 {
		return s
	}
	sep := strings.Repeat(" ", n)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, sep)
}

// wrapText performs greedy word wrap independently within each explicit
// line of text. Widths are measured with tracking applied, since that is
// what gets painted. A single word wider than the limit stays unbroken;
// blank input lines survive as empty entries so they keep advancing the
// layout cursor.
func wrapText(text string, face font.Face, maxWidthPx, tracking int) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			out = append(out, "")
			continue
		}
		var current string
		for _, word := range strings.Fields(raw) {
			attempt := strings.TrimSpace(current + " " + word)
			if current == "" || lineWidth(attempt, face, tracking) <= maxWidthPx {
				current = attempt
				continue
			}
			out = append(out, current)
			current = word
		}
		if current != "" {
			out = append(out, current)
		}
	}
	return out
}

// lineWidth measures a line in pixels with tracking applied.
func lineWidth(s string, face font.Face, tracking int) int {
	return font.MeasureString(face, applyTracking(s, tracking)).Ceil()
}
