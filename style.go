package gothumb

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color represents an RGB color stored as a 6-character hex string.
type Color struct {
	Hex string // e.g. "FF3838"
}

// Predefined colors.
var (
	ColorBlack  = Color{Hex: "000000"}
	ColorWhite  = Color{Hex: "FFFFFF"}
	ColorRed    = Color{Hex: "FF0000"}
	ColorGreen  = Color{Hex: "00FF00"}
	ColorBlue   = Color{Hex: "0000FF"}
	ColorYellow = Color{Hex: "FFFF00"}
)

// NewColor creates a Color from a hex string such as "#ff3838" or "202020".
// A leading "#" is stripped automatically. Invalid input falls back to black.
func NewColor(hex string) Color {
	hex = strings.TrimPrefix(hex, "#")
	hex = strings.ToUpper(hex)
	if !isValidHexRGB(hex) {
		return ColorBlack
	}
	return Color{Hex: hex}
}

// isValidHexRGB checks that s is exactly 6 hex characters.
func isValidHexRGB(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// Red returns the red component (0-255).
func (c Color) Red() uint8 {
	return parseHexByte(c.Hex, 0)
}

// Green returns the green component (0-255).
func (c Color) Green() uint8 {
	return parseHexByte(c.Hex, 2)
}

// Blue returns the blue component (0-255).
func (c Color) Blue() uint8 {
	return parseHexByte(c.Hex, 4)
}

// NRGBA returns the color as a non-premultiplied RGBA value with the given
// opacity in [0, 1] applied to the alpha channel.
func (c Color) NRGBA(opacity float64) color.NRGBA {
	return color.NRGBA{
		R: c.Red(),
		G: c.Green(),
		B: c.Blue(),
		A: uint8(clampUnit(opacity) * 255),
	}
}

// String returns the color in "#rrggbb" form.
func (c Color) String() string {
	if !isValidHexRGB(c.Hex) {
		return "#000000"
	}
	return "#" + strings.ToLower(c.Hex)
}

// MarshalJSON encodes the color as a "#rrggbb" string.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a "#rrggbb" string.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("color must be a hex string: %w", err)
	}
	*c = NewColor(s)
	return nil
}

// MarshalYAML encodes the color as a "#rrggbb" string.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalYAML decodes a "#rrggbb" string.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("color must be a hex string: %w", err)
	}
	*c = NewColor(s)
	return nil
}

// parseHexByte parses two hex characters at offset into a uint8.
// Returns 0 on any error (out of range, invalid chars).
func parseHexByte(s string, offset int) uint8 {
	if offset+2 > len(s) {
		return 0
	}
	h := hexVal(s[offset])
	l := hexVal(s[offset+1])
	if h < 0 || l < 0 {
		return 0
	}
	return uint8(h<<4 | l)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// BackgroundMode selects how the background layer is produced.
type BackgroundMode string

const (
	BackgroundSolid    BackgroundMode = "solid"
	BackgroundGradient BackgroundMode = "gradient"
	BackgroundImage    BackgroundMode = "image"
)

// GradientDirection is the axis of a linear gradient background.
type GradientDirection string

const (
	GradientHorizontal GradientDirection = "horizontal"
	GradientVertical   GradientDirection = "vertical"
	GradientDiagonal   GradientDirection = "diagonal"
)

// TextAlign is the horizontal alignment of a text layer within its
// max-width box.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// OverlayMode is the geometric variant of an overlay layer.
type OverlayMode string

const (
	OverlayRectangle OverlayMode = "rectangle"
	OverlayCircle    OverlayMode = "circle"
	OverlayBanner    OverlayMode = "banner"
)

// ShadowSettings describes the drop shadow of a text layer.
type ShadowSettings struct {
	Enabled    bool    `json:"enabled" yaml:"enabled"`
	OffsetX    int     `json:"offset_x" yaml:"offset_x"`
	OffsetY    int     `json:"offset_y" yaml:"offset_y"`
	BlurRadius int     `json:"blur_radius" yaml:"blur_radius"`
	Color      Color   `json:"color" yaml:"color"`
	Opacity    float64 `json:"opacity" yaml:"opacity"`
}

// NewShadowSettings returns shadow defaults.
func NewShadowSettings() ShadowSettings {
	return ShadowSettings{
		Enabled:    true,
		OffsetX:    6,
		OffsetY:    6,
		BlurRadius: 12,
		Color:      ColorBlack,
		Opacity:    0.6,
	}
}

// StrokeSettings describes the outline of a text layer.
type StrokeSettings struct {
	Width int   `json:"width" yaml:"width"`
	Color Color `json:"color" yaml:"color"`
}

// NewStrokeSettings returns stroke defaults.
func NewStrokeSettings() StrokeSettings {
	return StrokeSettings{
		Width: 6,
		Color: ColorWhite,
	}
}
