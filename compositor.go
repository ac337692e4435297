package gothumb

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"runtime"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/sync/errgroup"
)

// ImageFormat specifies the output image encoding.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatJPEG ImageFormat = "jpeg"
)

// RenderOptions configures scene rendering and export.
type RenderOptions struct {
	Width       int         // canvas width in pixels
	Height      int         // canvas height in pixels
	Format      ImageFormat // output format for SaveImage
	JPEGQuality int         // 1-100, used when Format is JPEG
	Parallel    bool        // rasterize layers concurrently
	Fonts       *FontCache  // font resolver; required for text layers
	Loader      ImageLoader // asset loader for backgrounds and image layers
}

// DefaultRenderOptions returns options for a 1280x720 PNG render with
// system fonts and filesystem assets.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Width:       DefaultCanvasWidth,
		Height:      DefaultCanvasHeight,
		Format:      FormatPNG,
		JPEGQuality: 90,
		Parallel:    true,
		Fonts:       NewFontCache(),
		Loader:      NewFileImageLoader(),
	}
}

// baseCanvasColor is painted before the background layer. It only shows
// through if a background renderer ever yields translucent pixels.
var baseCanvasColor = color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}

// Render composites the scene into an opaque RGBA canvas. It is a pure
// function of the scene and options: the same inputs produce the same
// pixels. Layers referenced by the paint order are rasterized first
// (concurrently when opts.Parallel is set), then composited strictly in
// order, back to front. Paint-order entries whose layer no longer exists
// are skipped. The only fatal per-layer failure is an unresolvable font.
func (s *Scene) Render(opts *RenderOptions) (*image.NRGBA, error) {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", w, h)
	}

	canvas := imaging.New(w, h, baseCanvasColor)
	bg := renderBackground(s.Background, w, h, opts.Loader)
	draw.Draw(canvas, canvas.Bounds(), bg, image.Point{}, draw.Over)

	results := make([]*image.NRGBA, len(s.LayerOrder))

	var eg errgroup.Group
	if opts.Parallel {
		eg.SetLimit(runtime.NumCPU())
	} else {
		eg.SetLimit(1)
	}
	for i, ref := range s.LayerOrder {
		i, ref := i, ref
		eg.Go(func() error {
			switch ref.Type {
			case LayerText:
				layer := s.FindTextLayer(ref.ID)
				if layer == nil {
					return nil
				}
				img, err := renderTextLayer(layer, w, h, opts.Fonts)
				if err != nil {
					return fmt.Errorf("text layer %q: %w", layer.Label, err)
				}
				results[i] = img
			case LayerImage:
				if layer := s.FindImageLayer(ref.ID); layer != nil {
					results[i] = renderImageLayer(layer, w, h, opts.Loader)
				}
			case LayerOverlay:
				if layer := s.FindOverlayLayer(ref.ID); layer != nil {
					results[i] = renderOverlayLayer(layer, w, h)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, img := range results {
		if img == nil {
			continue
		}
		draw.Draw(canvas, canvas.Bounds(), img, image.Point{}, draw.Over)
	}
	return canvas, nil
}

// SaveAsImage renders the scene and writes it to path.
func (s *Scene) SaveAsImage(path string, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	img, err := s.Render(opts)
	if err != nil {
		return err
	}
	return SaveImage(img, path, opts)
}

// SaveImage writes an image to path in the format given by the options,
// creating parent directories as needed.
func SaveImage(img image.Image, path string, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	switch opts.Format {
	case FormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	}
	return nil
}

// Downsample produces a preview-resolution copy of img with the given width,
// preserving aspect ratio.
func Downsample(img image.Image, width int) *image.NRGBA {
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// rotateAbout rotates img by deg degrees counter-clockwise around the pivot
// (cx, cy) without expanding the canvas; corners that rotate out are clipped.
func rotateAbout(img *image.NRGBA, deg, cx, cy float64) *image.NRGBA {
	b := img.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	// gg's positive rotation is clockwise in screen coordinates.
	dc.RotateAbout(-gg.Radians(deg), cx, cy)
	dc.DrawImage(img, 0, 0)
	return toNRGBA(dc.Image())
}

// toNRGBA converts any image to NRGBA, reusing the buffer when it already is.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return imaging.Clone(img)
}
