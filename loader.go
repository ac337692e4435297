package gothumb

import (
	"fmt"
	"image"
	"os"
	"sync"

	// Decoders for the formats scene assets arrive in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageLoader supplies decoded source images for backgrounds and image
// layers. Implementations may cache; the returned image must not be
// mutated by callers.
type ImageLoader interface {
	Load(path string) (image.Image, error)
}

// FileImageLoader loads images from the filesystem and caches decoded
// results by path. Safe for concurrent use.
type FileImageLoader struct {
	mu    sync.Mutex
	cache map[string]image.Image
}

// NewFileImageLoader creates an empty file-backed loader.
func NewFileImageLoader() *FileImageLoader {
	return &FileImageLoader{cache: make(map[string]image.Image)}
}

// Load decodes the image at path, serving repeat requests from cache.
func (fl *FileImageLoader) Load(path string) (image.Image, error) {
	fl.mu.Lock()
	if img, ok := fl.cache[path]; ok {
		fl.mu.Unlock()
		return img, nil
	}
	fl.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	fl.mu.Lock()
	fl.cache[path] = img
	fl.mu.Unlock()
	return img, nil
}

// Invalidate drops the cached decode for path, forcing a reload next time.
func (fl *FileImageLoader) Invalidate(path string) {
	fl.mu.Lock()
	delete(fl.cache, path)
	fl.mu.Unlock()
}
