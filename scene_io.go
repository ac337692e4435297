package gothumb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scene persistence. Scenes serialize to JSON by default and to YAML when
// the file extension is .yaml/.yml. Paint-order entries are two-element
// [type, id] arrays in both encodings.

// LoadScene reads a scene file, choosing the codec by extension.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}
	s := NewScene()
	if isYAMLPath(path) {
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse scene yaml: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse scene json: %w", err)
		}
	}
	return s, nil
}

// SaveScene writes the scene to path, choosing the codec by extension.
func SaveScene(s *Scene, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAMLPath(path) {
		data, err = yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode scene yaml: %w", err)
		}
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("encode scene json: %w", err)
		}
		data = append(data, '\n')
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create scene directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene file: %w", err)
	}
	return nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Layer records decode over full defaults, so partial records keep the
// default value for every field they omit instead of collapsing to zero
// values. The plain alias types keep the decoders from recursing.

type plainTextLayer TextLayer
type plainImageLayer ImageLayer
type plainOverlayLayer OverlayLayer

// UnmarshalJSON decodes a text layer record over NewTextLayer defaults.
func (l *TextLayer) UnmarshalJSON(data []byte) error {
	def := NewTextLayer()
	if err := json.Unmarshal(data, (*plainTextLayer)(def)); err != nil {
		return err
	}
	*l = *def
	return nil
}

// UnmarshalYAML decodes a text layer record over NewTextLayer defaults.
func (l *TextLayer) UnmarshalYAML(node *yaml.Node) error {
	def := NewTextLayer()
	if err := node.Decode((*plainTextLayer)(def)); err != nil {
		return err
	}
	*l = *def
	return nil
}

// UnmarshalJSON decodes an image layer record over NewImageLayer defaults.
func (l *ImageLayer) UnmarshalJSON(data []byte) error {
	def := NewImageLayer()
	if err := json.Unmarshal(data, (*plainImageLayer)(def)); err != nil {
		return err
	}
	*l = *def
	return nil
}

// UnmarshalYAML decodes an image layer record over NewImageLayer defaults.
func (l *ImageLayer) UnmarshalYAML(node *yaml.Node) error {
	def := NewImageLayer()
	if err := node.Decode((*plainImageLayer)(def)); err != nil {
		return err
	}
	*l = *def
	return nil
}

// UnmarshalJSON decodes an overlay layer record over NewOverlayLayer defaults.
func (l *OverlayLayer) UnmarshalJSON(data []byte) error {
	def := NewOverlayLayer()
	if err := json.Unmarshal(data, (*plainOverlayLayer)(def)); err != nil {
		return err
	}
	*l = *def
	return nil
}

// UnmarshalYAML decodes an overlay layer record over NewOverlayLayer defaults.
func (l *OverlayLayer) UnmarshalYAML(node *yaml.Node) error {
	def := NewOverlayLayer()
	if err := node.Decode((*plainOverlayLayer)(def)); err != nil {
		return err
	}
	*l = *def
	return nil
}

// MarshalJSON encodes the reference as a [type, id] array.
func (r LayerRef) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{string(r.Type), r.ID})
}

// UnmarshalJSON decodes a [type, id] array.
func (r *LayerRef) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("layer order entry must be a [type, id] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("layer order entry has %d elements, want 2", len(pair))
	}
	r.Type = LayerType(pair[0])
	r.ID = pair[1]
	return nil
}

// MarshalYAML encodes the reference as a [type, id] sequence.
func (r LayerRef) MarshalYAML() (interface{}, error) {
	return []string{string(r.Type), r.ID}, nil
}

// UnmarshalYAML decodes a [type, id] sequence.
func (r *LayerRef) UnmarshalYAML(node *yaml.Node) error {
	var pair []string
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("layer order entry must be a [type, id] sequence: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("layer order entry has %d elements, want 2", len(pair))
	}
	r.Type = LayerType(pair[0])
	r.ID = pair[1]
	return nil
}
