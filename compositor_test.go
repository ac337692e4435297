package gothumb

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func testOptions(w, h int) *RenderOptions {
	return &RenderOptions{
		Width:    w,
		Height:   h,
		Format:   FormatPNG,
		Parallel: true,
		Fonts:    NewFontCache(),
		Loader:   NewFileImageLoader(),
	}
}

// fullCanvasOverlay returns an opaque rectangle covering the whole canvas.
func fullCanvasOverlay(hex string) *OverlayLayer {
	l := NewOverlayLayer()
	l.Color = NewColor(hex)
	l.Opacity = 1.0
	l.PositionX = 0.5
	l.PositionY = 0.5
	l.Width = 1.0
	l.Height = 1.0
	l.Rounded = 0
	return l
}

func TestRenderSolidScene(t *testing.T) {
	s := NewScene()
	s.Background.SolidColor = NewColor("#204060")

	img, err := s.Render(testOptions(64, 36))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 36 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	want := color.NRGBA{R: 0x20, G: 0x40, B: 0x60, A: 0xff}
	if got := img.NRGBAAt(32, 18); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	s := DefaultScene()
	// Drop the text layers so the scene renders without fonts.
	for len(s.TextLayers) > 0 {
		s.RemoveTextLayer(s.TextLayers[0].ID)
	}

	opts := testOptions(160, 90)
	first, err := s.Render(opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := s.Render(opts)
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("same scene and options must produce identical pixels")
	}
}

func TestRenderPaintOrder(t *testing.T) {
	s := NewScene()
	s.AddOverlayLayer(fullCanvasOverlay("#ff0000"))
	s.AddOverlayLayer(fullCanvasOverlay("#0000ff"))

	img, err := s.Render(testOptions(80, 80))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := img.NRGBAAt(40, 40); got.B < 250 || got.R > 5 {
		t.Errorf("pixel = %v, want the later layer (blue) on top", got)
	}

	// Moving the blue layer behind the red one flips the result.
	s.MoveLayer(1, -1)
	img, err = s.Render(testOptions(80, 80))
	if err != nil {
		t.Fatalf("render after reorder: %v", err)
	}
	if got := img.NRGBAAt(40, 40); got.R < 250 || got.B > 5 {
		t.Errorf("pixel after reorder = %v, want red on top", got)
	}
}

func TestRenderOpacityExtremes(t *testing.T) {
	base := NewScene()
	base.Background.SolidColor = NewColor("#123456")

	opts := testOptions(64, 64)
	plain, err := base.Render(opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	// A fully transparent layer leaves the canvas untouched.
	withGhost := NewScene()
	withGhost.Background.SolidColor = NewColor("#123456")
	ghost := fullCanvasOverlay("#ffffff")
	ghost.Opacity = 0
	withGhost.AddOverlayLayer(ghost)

	got, err := withGhost.Render(opts)
	if err != nil {
		t.Fatalf("render with ghost: %v", err)
	}
	if !bytes.Equal(plain.Pix, got.Pix) {
		t.Error("zero-opacity layer must not change any pixel")
	}

	// A fully opaque covering layer replaces the canvas interior.
	withCover := NewScene()
	withCover.Background.SolidColor = NewColor("#123456")
	withCover.AddOverlayLayer(fullCanvasOverlay("#ffffff"))

	got, err = withCover.Render(opts)
	if err != nil {
		t.Fatalf("render with cover: %v", err)
	}
	center := got.NRGBAAt(32, 32)
	if center.R != 255 || center.G != 255 || center.B != 255 {
		t.Errorf("covered pixel = %v, want pure overlay color", center)
	}
}

func TestRenderSkipsStaleOrderEntries(t *testing.T) {
	s := NewScene()
	s.Background.SolidColor = NewColor("#303030")
	s.AddOverlayLayer(fullCanvasOverlay("#ffffff"))

	// Simulate a stale file: the order references a layer that is gone.
	s.OverlayLayers = nil

	img, err := s.Render(testOptions(32, 32))
	if err != nil {
		t.Fatalf("render with stale ref: %v", err)
	}
	want := color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	if got := img.NRGBAAt(16, 16); got != want {
		t.Errorf("pixel = %v, want untouched background %v", got, want)
	}
}

func TestRenderSequentialMatchesParallel(t *testing.T) {
	s := DefaultScene()
	for len(s.TextLayers) > 0 {
		s.RemoveTextLayer(s.TextLayers[0].ID)
	}
	s.AddOverlayLayer(fullCanvasOverlay("#112233"))
	s.OverlayLayers[len(s.OverlayLayers)-1].Opacity = 0.4

	par := testOptions(120, 68)
	seq := testOptions(120, 68)
	seq.Parallel = false

	a, err := s.Render(par)
	if err != nil {
		t.Fatalf("parallel render: %v", err)
	}
	b, err := s.Render(seq)
	if err != nil {
		t.Fatalf("sequential render: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("parallel and sequential renders must match")
	}
}

func TestRenderTextScene(t *testing.T) {
	fc := NewFontCache()
	ref, ok := anyResolvableFont(fc)
	if !ok {
		t.Skip("no system fonts available")
	}

	s := NewScene()
	s.Background.SolidColor = ColorBlack

	txt := NewTextLayer()
	txt.Text = "AB"
	txt.FontRef = ref
	txt.FontSize = 48
	txt.Color = ColorWhite
	txt.Shadow.Enabled = false
	txt.Stroke.Width = 0
	s.AddTextLayer(txt)

	opts := testOptions(256, 144)
	opts.Fonts = fc

	img, err := s.Render(opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 128 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("text scene rendered no bright pixels")
	}
}

func TestRenderNilFontResolver(t *testing.T) {
	s := NewScene()
	s.AddTextLayer(NewTextLayer())

	opts := testOptions(32, 32)
	opts.Fonts = nil
	if _, err := s.Render(opts); err == nil {
		t.Fatal("rendering a text layer without a font resolver should be an error")
	}

	// Scenes without text layers do not need a resolver at all.
	plain := NewScene()
	if _, err := plain.Render(opts); err != nil {
		t.Errorf("text-free scene should render without fonts: %v", err)
	}
}

func TestRenderInvalidSize(t *testing.T) {
	s := NewScene()
	if _, err := s.Render(testOptions(0, 100)); err == nil {
		t.Error("zero width should be an error")
	}
	if _, err := s.Render(testOptions(100, -1)); err == nil {
		t.Error("negative height should be an error")
	}
}

func TestSaveImageFormats(t *testing.T) {
	dir := t.TempDir()
	img := imaging.New(16, 16, color.NRGBA{R: 200, A: 255})

	opts := testOptions(16, 16)
	pngPath := filepath.Join(dir, "nested", "out.png")
	if err := SaveImage(img, pngPath, opts); err != nil {
		t.Fatalf("save png: %v", err)
	}
	back, err := imaging.Open(pngPath)
	if err != nil {
		t.Fatalf("reopen png: %v", err)
	}
	if back.Bounds().Dx() != 16 {
		t.Errorf("png bounds = %v", back.Bounds())
	}

	opts.Format = FormatJPEG
	opts.JPEGQuality = 85
	jpgPath := filepath.Join(dir, "out.jpg")
	if err := SaveImage(img, jpgPath, opts); err != nil {
		t.Fatalf("save jpeg: %v", err)
	}
	if _, err := os.Stat(jpgPath); err != nil {
		t.Errorf("jpeg file missing: %v", err)
	}
}

func TestSceneSaveAsImage(t *testing.T) {
	s := NewScene()
	s.Background.SolidColor = NewColor("#445566")

	path := filepath.Join(t.TempDir(), "thumb.png")
	opts := testOptions(32, 18)
	if err := s.SaveAsImage(path, opts); err != nil {
		t.Fatalf("save: %v", err)
	}

	back, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if back.Bounds().Dx() != 32 || back.Bounds().Dy() != 18 {
		t.Errorf("bounds = %v, want 32x18", back.Bounds())
	}
}

func TestDownsample(t *testing.T) {
	img := imaging.New(128, 72, color.NRGBA{G: 255, A: 255})
	small := Downsample(img, 64)
	if small.Bounds().Dx() != 64 || small.Bounds().Dy() != 36 {
		t.Errorf("bounds = %v, want 64x36", small.Bounds())
	}
	if got := small.NRGBAAt(32, 18); got.G != 255 {
		t.Errorf("downsampled pixel = %v", got)
	}
}
