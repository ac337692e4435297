package gothumb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSceneJSONRoundTrip(t *testing.T) {
	s := DefaultScene()
	s.Background.Mode = BackgroundGradient

	path := filepath.Join(t.TempDir(), "scene.json")
	if err := SaveScene(s, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	back, err := LoadScene(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if back.Background.Mode != BackgroundGradient {
		t.Errorf("background mode = %q", back.Background.Mode)
	}
	if len(back.TextLayers) != len(s.TextLayers) {
		t.Fatalf("text layers = %d, want %d", len(back.TextLayers), len(s.TextLayers))
	}
	if back.TextLayers[0].ID != s.TextLayers[0].ID {
		t.Error("layer ids must survive the round trip")
	}
	if back.TextLayers[0].Text != s.TextLayers[0].Text {
		t.Errorf("text = %q, want %q", back.TextLayers[0].Text, s.TextLayers[0].Text)
	}
	if back.TextLayers[1].Color != s.TextLayers[1].Color {
		t.Errorf("color = %v, want %v", back.TextLayers[1].Color, s.TextLayers[1].Color)
	}
	if len(back.LayerOrder) != len(s.LayerOrder) {
		t.Fatalf("order entries = %d, want %d", len(back.LayerOrder), len(s.LayerOrder))
	}
	for i := range s.LayerOrder {
		if back.LayerOrder[i] != s.LayerOrder[i] {
			t.Errorf("order[%d] = %+v, want %+v", i, back.LayerOrder[i], s.LayerOrder[i])
		}
	}
}

func TestSceneYAMLRoundTrip(t *testing.T) {
	s := DefaultScene()

	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := SaveScene(s, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	back, err := LoadScene(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(back.OverlayLayers) != 1 || back.OverlayLayers[0].Mode != OverlayBanner {
		t.Errorf("overlay layers = %+v", back.OverlayLayers)
	}
	if back.OverlayLayers[0].Rotation != s.OverlayLayers[0].Rotation {
		t.Errorf("rotation = %v, want %v", back.OverlayLayers[0].Rotation, s.OverlayLayers[0].Rotation)
	}
	for i := range s.LayerOrder {
		if back.LayerOrder[i] != s.LayerOrder[i] {
			t.Errorf("order[%d] = %+v, want %+v", i, back.LayerOrder[i], s.LayerOrder[i])
		}
	}
}

func TestLoadScenePartialRecordsKeepDefaults(t *testing.T) {
	record := `{
  "text_layers": [{"id": "t1", "text": "hi"}],
  "image_layers": [{"id": "i1", "add_shadow": false}],
  "overlay_layers": [{"id": "o1", "mode": "circle"}],
  "layer_order": [["text", "t1"], ["image", "i1"], ["overlay", "o1"]]
}`
	path := filepath.Join(t.TempDir(), "partial.json")
	if err := os.WriteFile(path, []byte(record), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScene(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	txt := s.FindTextLayer("t1")
	if txt == nil {
		t.Fatal("text layer missing")
	}
	if txt.Text != "hi" {
		t.Errorf("text = %q, want the loaded value", txt.Text)
	}
	if txt.MaxWidth != 0.9 || txt.FontSize != 150 || txt.Align != AlignCenter {
		t.Errorf("omitted text fields lost their defaults: %+v", txt)
	}
	if txt.Shadow.BlurRadius != 12 || txt.Stroke.Width != 6 {
		t.Errorf("omitted shadow/stroke fields lost their defaults: %+v", txt)
	}

	img := s.FindImageLayer("i1")
	if img == nil {
		t.Fatal("image layer missing")
	}
	if img.Scale != 1.0 || img.Opacity != 1.0 {
		t.Errorf("omitted image fields lost their defaults: scale=%v opacity=%v", img.Scale, img.Opacity)
	}
	if img.AddShadow {
		t.Error("explicit false in the record must override the default")
	}

	ovl := s.FindOverlayLayer("o1")
	if ovl == nil {
		t.Fatal("overlay layer missing")
	}
	if ovl.Mode != OverlayCircle {
		t.Errorf("mode = %q, want the loaded value", ovl.Mode)
	}
	if ovl.Opacity != 0.85 || ovl.Rounded != 40 || ovl.Width != 0.8 {
		t.Errorf("omitted overlay fields lost their defaults: %+v", ovl)
	}
}

func TestLoadScenePartialYAMLKeepsDefaults(t *testing.T) {
	record := "text_layers:\n  - id: t2\n    text: yo\n    font_size: 64\nlayer_order:\n  - [text, t2]\n"
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte(record), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScene(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	txt := s.FindTextLayer("t2")
	if txt == nil {
		t.Fatal("text layer missing")
	}
	if txt.FontSize != 64 {
		t.Errorf("font size = %d, want the loaded value", txt.FontSize)
	}
	if txt.MaxWidth != 0.9 || txt.Color != ColorWhite {
		t.Errorf("omitted fields lost their defaults: %+v", txt)
	}
}

func TestLayerOrderSerializedAsArrays(t *testing.T) {
	s := NewScene()
	txt := s.AddTextLayer(NewTextLayer())

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw struct {
		LayerOrder [][]string `json:"layer_order"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("order entries are not arrays: %v", err)
	}
	if len(raw.LayerOrder) != 1 {
		t.Fatalf("order entries = %d, want 1", len(raw.LayerOrder))
	}
	entry := raw.LayerOrder[0]
	if len(entry) != 2 || entry[0] != "text" || entry[1] != txt.ID {
		t.Errorf("entry = %v, want [text %s]", entry, txt.ID)
	}
}

func TestLayerRefUnmarshalRejectsBadShapes(t *testing.T) {
	var ref LayerRef
	if err := json.Unmarshal([]byte(`["text"]`), &ref); err == nil {
		t.Error("one-element entry should fail")
	}
	if err := json.Unmarshal([]byte(`{"type":"text"}`), &ref); err == nil {
		t.Error("object entry should fail")
	}
	if err := json.Unmarshal([]byte(`["text","abc","extra"]`), &ref); err == nil {
		t.Error("three-element entry should fail")
	}
}

func TestLoadSceneErrors(t *testing.T) {
	if _, err := LoadScene(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should be an error")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScene(bad); err == nil {
		t.Error("malformed json should be an error")
	}
}
