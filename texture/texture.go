// Package texture inspects texture files referenced by character
// materials.
package texture

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blezek/tga"
	_ "github.com/oov/psd"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// OSProbe checks the local file system.
type OSProbe struct{}

func (OSProbe) Exists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// ImageExts are the extensions treated as texture files.
var ImageExts = []string{".png", ".jpg", ".jpeg", ".tga", ".bmp", ".tif", ".tiff", ".psd", ".gif"}

func IsImagePath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ImageExts {
		if e == ext {
			return true
		}
	}
	return false
}

type info struct {
	cfg    image.Config
	img    image.Image
	cfgErr error
	imgErr error
}

// Cache decodes texture files once.
type Cache struct {
	mu    sync.Mutex
	infos map[string]*info
}

func NewCache() *Cache {
	return &Cache{infos: map[string]*info{}}
}

func (c *Cache) get(path string) *info {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.infos[path]; ok {
		return t
	}
	t := &info{}
	c.infos[path] = t
	return t
}

func isTGA(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tga"
}

// Config returns the dimensions of an image file.
func (c *Cache) Config(path string) (image.Config, error) {
	t := c.get(path)
	if t.cfg.Width != 0 || t.cfgErr != nil {
		return t.cfg, t.cfgErr
	}
	f, err := os.Open(path)
	if err != nil {
		t.cfgErr = err
		return t.cfg, err
	}
	defer f.Close()
	t.cfg, _, t.cfgErr = image.DecodeConfig(f)
	if t.cfgErr != nil && isTGA(path) {
		img, err := c.Image(path)
		if err != nil {
			return t.cfg, t.cfgErr
		}
		b := img.Bounds()
		t.cfg, t.cfgErr = image.Config{ColorModel: img.ColorModel(), Width: b.Dx(), Height: b.Dy()}, nil
	}
	return t.cfg, t.cfgErr
}

func (c *Cache) Image(path string) (image.Image, error) {
	t := c.get(path)
	if t.img != nil || t.imgErr != nil {
		return t.img, t.imgErr
	}
	f, err := os.Open(path)
	if err != nil {
		t.imgErr = err
		return nil, err
	}
	defer f.Close()

	t.img, _, t.imgErr = image.Decode(f)
	if t.imgErr != nil && isTGA(path) {
		// retry
		f.Seek(0, io.SeekStart)
		t.img, t.imgErr = tga.Decode(f)
	}
	return t.img, t.imgErr
}

// HasAlpha reports whether the image carries non-opaque pixels.
func (c *Cache) HasAlpha(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".jpg" || ext == ".jpeg" || ext == ".bmp" {
		return false
	}
	img, err := c.Image(path)
	if err != nil {
		return false
	}
	switch img.ColorModel() {
	case color.YCbCrModel, color.CMYKModel, color.GrayModel, color.Gray16Model:
		return false
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}
