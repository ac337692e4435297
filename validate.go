package gothumb

import (
	"fmt"
	"strings"
)

// Validate checks the scene for structural issues and returns an error
// describing all problems found, or nil if the scene is valid. Renderers
// deliberately do not clamp or repair values; this is the scene owner's
// tool to catch mistakes before rendering.
func (s *Scene) Validate() error {
	var errs []string

	errs = append(errs, validateBackground(s.Background)...)

	seen := make(map[string]string) // id -> first owner description
	note := func(kind, id string) {
		if id == "" {
			errs = append(errs, kind+": empty id")
			return
		}
		if prev, ok := seen[id]; ok {
			errs = append(errs, fmt.Sprintf("%s: id %q already used by %s", kind, id, prev))
			return
		}
		seen[id] = kind
	}

	for i, l := range s.TextLayers {
		prefix := fmt.Sprintf("text layer %d", i+1)
		note(prefix, l.ID)
		if l.FontSize <= 0 {
			errs = append(errs, prefix+": font size must be positive")
		}
		switch l.Align {
		case AlignLeft, AlignCenter, AlignRight:
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown alignment %q", prefix, l.Align))
		}
		if l.MaxWidth <= 0 || l.MaxWidth > 1 {
			errs = append(errs, prefix+": max width must be in (0, 1]")
		}
		if l.Shadow.Opacity < 0 || l.Shadow.Opacity > 1 {
			errs = append(errs, prefix+": shadow opacity must be in [0, 1]")
		}
		if l.Shadow.BlurRadius < 0 {
			errs = append(errs, prefix+": shadow blur radius is negative")
		}
		if l.Stroke.Width < 0 {
			errs = append(errs, prefix+": stroke width is negative")
		}
	}

	for i, l := range s.ImageLayers {
		prefix := fmt.Sprintf("image layer %d", i+1)
		note(prefix, l.ID)
		if l.Scale <= 0 {
			errs = append(errs, prefix+": scale must be positive")
		}
		if l.Opacity < 0 || l.Opacity > 1 {
			errs = append(errs, prefix+": opacity must be in [0, 1]")
		}
		if l.ShadowOpacity < 0 || l.ShadowOpacity > 1 {
			errs = append(errs, prefix+": shadow opacity must be in [0, 1]")
		}
		if l.ShadowBlur < 0 {
			errs = append(errs, prefix+": shadow blur is negative")
		}
	}

	for i, l := range s.OverlayLayers {
		prefix := fmt.Sprintf("overlay layer %d", i+1)
		note(prefix, l.ID)
		switch l.Mode {
		case OverlayRectangle, OverlayCircle, OverlayBanner:
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown mode %q", prefix, l.Mode))
		}
		if l.Opacity < 0 || l.Opacity > 1 {
			errs = append(errs, prefix+": opacity must be in [0, 1]")
		}
		if l.Width <= 0 || l.Height <= 0 {
			errs = append(errs, prefix+": width and height must be positive")
		}
		if l.BlurRadius < 0 {
			errs = append(errs, prefix+": blur radius is negative")
		}
		if l.Rounded < 0 {
			errs = append(errs, prefix+": corner radius is negative")
		}
	}

	for i, ref := range s.LayerOrder {
		prefix := fmt.Sprintf("layer order entry %d", i+1)
		switch ref.Type {
		case LayerText:
			if s.FindTextLayer(ref.ID) == nil {
				errs = append(errs, fmt.Sprintf("%s: no text layer with id %q", prefix, ref.ID))
			}
		case LayerImage:
			if s.FindImageLayer(ref.ID) == nil {
				errs = append(errs, fmt.Sprintf("%s: no image layer with id %q", prefix, ref.ID))
			}
		case LayerOverlay:
			if s.FindOverlayLayer(ref.ID) == nil {
				errs = append(errs, fmt.Sprintf("%s: no overlay layer with id %q", prefix, ref.ID))
			}
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown layer type %q", prefix, ref.Type))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("scene validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateBackground(bg BackgroundSpec) []string {
	var errs []string
	switch bg.Mode {
	case BackgroundSolid, BackgroundGradient, BackgroundImage, "":
	default:
		errs = append(errs, fmt.Sprintf("background: unknown mode %q", bg.Mode))
	}
	switch bg.Gradient.Direction {
	case GradientHorizontal, GradientVertical, GradientDiagonal, "":
	default:
		errs = append(errs, fmt.Sprintf("background: unknown gradient direction %q", bg.Gradient.Direction))
	}
	if bg.BlurRadius < 0 {
		errs = append(errs, "background: blur radius is negative")
	}
	// Correction ranges mirror the editing UI's slider bounds.
	if bg.Brightness < 0.5 || bg.Brightness > 1.5 {
		errs = append(errs, "background: brightness must be in [0.5, 1.5]")
	}
	if bg.Contrast < 0.5 || bg.Contrast > 1.6 {
		errs = append(errs, "background: contrast must be in [0.5, 1.6]")
	}
	if bg.Saturation < 0.2 || bg.Saturation > 2.0 {
		errs = append(errs, "background: saturation must be in [0.2, 2.0]")
	}
	return errs
}
