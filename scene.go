// Package gothumb composes declarative thumbnail scenes into fixed-resolution
// RGBA raster images.
//
// A Scene holds a background specification plus ordered stacks of text, image,
// and overlay-shape layers. Rendering is a pure function of the scene: the
// compositor produces the background, rasterizes each layer referenced by the
// scene's layer order, and alpha-composites the results back to front.
//
// See the Version variable for the current library version.
package gothumb

import (
	"crypto/rand"
	"encoding/hex"
)

// LayerType identifies which collection a layer-order entry refers to.
type LayerType string

const (
	LayerText    LayerType = "text"
	LayerImage   LayerType = "image"
	LayerOverlay LayerType = "overlay"
)

// LayerRef is one entry of the scene's paint order: a (type, id) reference
// into the matching layer collection. Entries later in the order paint on
// top of earlier ones.
type LayerRef struct {
	Type LayerType
	ID   string
}

// Scene is an in-memory thumbnail scene.
type Scene struct {
	Background    BackgroundSpec  `json:"background" yaml:"background"`
	TextLayers    []*TextLayer    `json:"text_layers" yaml:"text_layers"`
	ImageLayers   []*ImageLayer   `json:"image_layers" yaml:"image_layers"`
	OverlayLayers []*OverlayLayer `json:"overlay_layers" yaml:"overlay_layers"`
	LayerOrder    []LayerRef      `json:"layer_order" yaml:"layer_order"`
}

// BackgroundSpec describes the canvas-sized base layer.
type BackgroundSpec struct {
	Mode       BackgroundMode `json:"mode" yaml:"mode"`
	SolidColor Color          `json:"solid_color" yaml:"solid_color"`
	Gradient   GradientSpec   `json:"gradient" yaml:"gradient"`
	ImagePath  string         `json:"image_path,omitempty" yaml:"image_path,omitempty"`
	BlurRadius float64        `json:"blur_radius" yaml:"blur_radius"`
	Brightness float64        `json:"brightness" yaml:"brightness"`
	Contrast   float64        `json:"contrast" yaml:"contrast"`
	Saturation float64        `json:"saturation" yaml:"saturation"`
}

// GradientSpec describes a two-color linear gradient background.
type GradientSpec struct {
	StartColor Color             `json:"start_color" yaml:"start_color"`
	EndColor   Color             `json:"end_color" yaml:"end_color"`
	Direction  GradientDirection `json:"direction" yaml:"direction"`
}

// NewBackgroundSpec returns background defaults: a dark solid fill with
// identity color corrections.
func NewBackgroundSpec() BackgroundSpec {
	return BackgroundSpec{
		Mode:       BackgroundSolid,
		SolidColor: NewColor("#202020"),
		Gradient: GradientSpec{
			StartColor: NewColor("#ff3838"),
			EndColor:   NewColor("#ffcf00"),
			Direction:  GradientHorizontal,
		},
		BlurRadius: 0,
		Brightness: 1.0,
		Contrast:   1.0,
		Saturation: 1.0,
	}
}

// TextLayer is one block of styled multi-line text. Explicit line breaks in
// Text are preserved; each line wraps independently against MaxWidth.
type TextLayer struct {
	ID        string         `json:"id" yaml:"id"`
	Label     string         `json:"label" yaml:"label"`
	Text      string         `json:"text" yaml:"text"`
	FontRef   string         `json:"font_file" yaml:"font_file"`
	FontSize  int            `json:"font_size" yaml:"font_size"`
	Color     Color          `json:"color" yaml:"color"`
	Align     TextAlign      `json:"align" yaml:"align"`
	PositionX float64        `json:"position_x" yaml:"position_x"`
	PositionY float64        `json:"position_y" yaml:"position_y"`
	MaxWidth  float64        `json:"max_width" yaml:"max_width"`
	Tracking  int            `json:"tracking" yaml:"tracking"`
	Rotation  float64        `json:"rotation" yaml:"rotation"`
	Shadow    ShadowSettings `json:"shadow" yaml:"shadow"`
	Stroke    StrokeSettings `json:"stroke" yaml:"stroke"`
}

// NewTextLayer creates a text layer with default styling and a fresh id.
func NewTextLayer() *TextLayer {
	return &TextLayer{
		ID:        newLayerID(),
		Label:     "Headline",
		Text:      "Catchy Thumbnail Title",
		FontRef:   "Montserrat-ExtraBold.ttf",
		FontSize:  150,
		Color:     ColorWhite,
		Align:     AlignCenter,
		PositionX: 0.5,
		PositionY: 0.35,
		MaxWidth:  0.9,
		Tracking:  0,
		Rotation:  0,
		Shadow:    NewShadowSettings(),
		Stroke:    NewStrokeSettings(),
	}
}

// ImageLayer is an embedded picture with placement and shadow controls.
type ImageLayer struct {
	ID             string  `json:"id" yaml:"id"`
	Label          string  `json:"label" yaml:"label"`
	ImagePath      string  `json:"image_path,omitempty" yaml:"image_path,omitempty"`
	Scale          float64 `json:"scale" yaml:"scale"`
	Rotation       float64 `json:"rotation" yaml:"rotation"`
	PositionX      float64 `json:"position_x" yaml:"position_x"`
	PositionY      float64 `json:"position_y" yaml:"position_y"`
	Opacity        float64 `json:"opacity" yaml:"opacity"`
	FlipHorizontal bool    `json:"flip_horizontal" yaml:"flip_horizontal"`
	FlipVertical   bool    `json:"flip_vertical" yaml:"flip_vertical"`
	AddShadow      bool    `json:"add_shadow" yaml:"add_shadow"`
	ShadowBlur     int     `json:"shadow_blur" yaml:"shadow_blur"`
	ShadowOffsetX  int     `json:"shadow_offset_x" yaml:"shadow_offset_x"`
	ShadowOffsetY  int     `json:"shadow_offset_y" yaml:"shadow_offset_y"`
	ShadowOpacity  float64 `json:"shadow_opacity" yaml:"shadow_opacity"`
}

// NewImageLayer creates an image layer with default placement and a fresh id.
// The image path starts empty; the layer renders transparent until one is set.
func NewImageLayer() *ImageLayer {
	return &ImageLayer{
		ID:            newLayerID(),
		Label:         "Image",
		Scale:         1.0,
		Rotation:      0,
		PositionX:     0.75,
		PositionY:     0.65,
		Opacity:       1.0,
		AddShadow:     true,
		ShadowBlur:    24,
		ShadowOffsetX: 0,
		ShadowOffsetY: 12,
		ShadowOpacity: 0.7,
	}
}

// OverlayLayer is a filled shape: rectangle, circle, or banner.
type OverlayLayer struct {
	ID         string      `json:"id" yaml:"id"`
	Label      string      `json:"label" yaml:"label"`
	Mode       OverlayMode `json:"mode" yaml:"mode"`
	Color      Color       `json:"color" yaml:"color"`
	Opacity    float64     `json:"opacity" yaml:"opacity"`
	PositionX  float64     `json:"position_x" yaml:"position_x"`
	PositionY  float64     `json:"position_y" yaml:"position_y"`
	Width      float64     `json:"width" yaml:"width"`
	Height     float64     `json:"height" yaml:"height"`
	BlurRadius int         `json:"blur_radius" yaml:"blur_radius"`
	Rotation   float64     `json:"rotation" yaml:"rotation"`
	Rounded    int         `json:"rounded" yaml:"rounded"`
}

// NewOverlayLayer creates an overlay layer with default styling and a fresh id.
func NewOverlayLayer() *OverlayLayer {
	return &OverlayLayer{
		ID:        newLayerID(),
		Label:     "Highlight",
		Mode:      OverlayRectangle,
		Color:     NewColor("#ff3838"),
		Opacity:   0.85,
		PositionX: 0.5,
		PositionY: 0.3,
		Width:     0.8,
		Height:    0.25,
		Rotation:  0,
		Rounded:   40,
	}
}

// NewScene creates an empty scene with a default background.
func NewScene() *Scene {
	return &Scene{
		Background: NewBackgroundSpec(),
	}
}

// DefaultScene creates the starter scene: headline and subheadline text
// layers over a tilted banner.
func DefaultScene() *Scene {
	s := NewScene()

	headline := NewTextLayer()
	headline.Label = "Headline"
	headline.Text = "Boost Your Views\nIn 5 Minutes!"
	headline.FontSize = 170
	s.AddTextLayer(headline)

	subhead := NewTextLayer()
	subhead.Label = "Subheadline"
	subhead.Text = "Viral Thumbnail Strategy"
	subhead.FontSize = 90
	subhead.PositionY = 0.62
	subhead.Color = NewColor("#ffcf00")
	subhead.Shadow = ShadowSettings{
		Enabled:    true,
		OffsetX:    4,
		OffsetY:    4,
		BlurRadius: 8,
		Color:      ColorBlack,
		Opacity:    0.7,
	}
	subhead.Stroke = StrokeSettings{Width: 4, Color: NewColor("#111111")}
	s.AddTextLayer(subhead)

	banner := NewOverlayLayer()
	banner.Label = "Banner"
	banner.Mode = OverlayBanner
	banner.Opacity = 0.88
	banner.PositionY = 0.6
	banner.Width = 0.9
	banner.Height = 0.3
	banner.Rotation = -2
	s.AddOverlayLayer(banner)

	return s
}

// newLayerID generates a random 128-bit hex layer id.
func newLayerID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms; keep ids unique
		// enough even if it somehow does.
		for i := range b {
			b[i] = byte(i * 31)
		}
	}
	return hex.EncodeToString(b[:])
}

// AddTextLayer appends a text layer to the scene and to the paint order.
func (s *Scene) AddTextLayer(layer *TextLayer) *TextLayer {
	s.TextLayers = append(s.TextLayers, layer)
	s.LayerOrder = append(s.LayerOrder, LayerRef{Type: LayerText, ID: layer.ID})
	return layer
}

// AddImageLayer appends an image layer to the scene and to the paint order.
func (s *Scene) AddImageLayer(layer *ImageLayer) *ImageLayer {
	s.ImageLayers = append(s.ImageLayers, layer)
	s.LayerOrder = append(s.LayerOrder, LayerRef{Type: LayerImage, ID: layer.ID})
	return layer
}

// AddOverlayLayer appends an overlay layer to the scene and to the paint order.
func (s *Scene) AddOverlayLayer(layer *OverlayLayer) *OverlayLayer {
	s.OverlayLayers = append(s.OverlayLayers, layer)
	s.LayerOrder = append(s.LayerOrder, LayerRef{Type: LayerOverlay, ID: layer.ID})
	return layer
}

// FindTextLayer returns the text layer with the given id, or nil.
func (s *Scene) FindTextLayer(id string) *TextLayer {
	for _, l := range s.TextLayers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// FindImageLayer returns the image layer with the given id, or nil.
func (s *Scene) FindImageLayer(id string) *ImageLayer {
	for _, l := range s.ImageLayers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// FindOverlayLayer returns the overlay layer with the given id, or nil.
func (s *Scene) FindOverlayLayer(id string) *OverlayLayer {
	for _, l := range s.OverlayLayers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// DuplicateTextLayer copies the text layer with the given id under a fresh id
// and appends the copy to the collection and the paint order.
// Returns nil if no such layer exists.
func (s *Scene) DuplicateTextLayer(id string) *TextLayer {
	src := s.FindTextLayer(id)
	if src == nil {
		return nil
	}
	clone := *src
	clone.ID = newLayerID()
	clone.Label = src.Label + " (copy)"
	return s.AddTextLayer(&clone)
}

// DuplicateImageLayer copies the image layer with the given id under a fresh
// id and appends the copy to the collection and the paint order.
func (s *Scene) DuplicateImageLayer(id string) *ImageLayer {
	src := s.FindImageLayer(id)
	if src == nil {
		return nil
	}
	clone := *src
	clone.ID = newLayerID()
	clone.Label = src.Label + " (copy)"
	return s.AddImageLayer(&clone)
}

// DuplicateOverlayLayer copies the overlay layer with the given id under a
// fresh id and appends the copy to the collection and the paint order.
func (s *Scene) DuplicateOverlayLayer(id string) *OverlayLayer {
	src := s.FindOverlayLayer(id)
	if src == nil {
		return nil
	}
	clone := *src
	clone.ID = newLayerID()
	clone.Label = src.Label + " (copy)"
	return s.AddOverlayLayer(&clone)
}

// RemoveTextLayer deletes the text layer with the given id from the
// collection and from the paint order. Both removals happen together so the
// order never keeps a stale reference behind. Returns false if no such
// layer exists.
func (s *Scene) RemoveTextLayer(id string) bool {
	for i, l := range s.TextLayers {
		if l.ID == id {
			s.TextLayers = append(s.TextLayers[:i], s.TextLayers[i+1:]...)
			s.removeOrderRef(LayerText, id)
			return true
		}
	}
	return false
}

// RemoveImageLayer deletes the image layer with the given id from the
// collection and from the paint order.
func (s *Scene) RemoveImageLayer(id string) bool {
	for i, l := range s.ImageLayers {
		if l.ID == id {
			s.ImageLayers = append(s.ImageLayers[:i], s.ImageLayers[i+1:]...)
			s.removeOrderRef(LayerImage, id)
			return true
		}
	}
	return false
}

// RemoveOverlayLayer deletes the overlay layer with the given id from the
// collection and from the paint order.
func (s *Scene) RemoveOverlayLayer(id string) bool {
	for i, l := range s.OverlayLayers {
		if l.ID == id {
			s.OverlayLayers = append(s.OverlayLayers[:i], s.OverlayLayers[i+1:]...)
			s.removeOrderRef(LayerOverlay, id)
			return true
		}
	}
	return false
}

func (s *Scene) removeOrderRef(t LayerType, id string) {
	kept := s.LayerOrder[:0]
	for _, ref := range s.LayerOrder {
		if ref.Type == t && ref.ID == id {
			continue
		}
		kept = append(kept, ref)
	}
	s.LayerOrder = kept
}

// MoveLayer shifts the paint-order entry at index by delta positions,
// clamped to the list bounds. Reordering changes visual stacking.
func (s *Scene) MoveLayer(index, delta int) {
	if index < 0 || index >= len(s.LayerOrder) {
		return
	}
	target := clampIndex(index+delta, 0, len(s.LayerOrder)-1)
	if target == index {
		return
	}
	ref := s.LayerOrder[index]
	s.LayerOrder = append(s.LayerOrder[:index], s.LayerOrder[index+1:]...)
	s.LayerOrder = append(s.LayerOrder, LayerRef{})
	copy(s.LayerOrder[target+1:], s.LayerOrder[target:])
	s.LayerOrder[target] = ref
}
