package texture

import (
	"strings"
)

type TextureType int

const (
	TypeDefault   TextureType = 0
	TypeNormalMap TextureType = 1
)

// ImportHint holds texture importer settings derived from a file name.
type ImportHint struct {
	SRGB                bool
	Type                TextureType
	ConvertToNormalMap  bool
	HeightmapScale      float32
	AlphaIsTransparency bool
	MaxSize             int
}

var (
	linearSuffixes = []string{"_metallicalpha.", "_roughness.", "_metallic.", "_hdrp.", "_ao."}
	normalSuffixes = []string{"_normal.", "_nbmap.", "_micron.", "_irisn.", "_scleran."}
)

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Hint returns importer settings for a texture path.
func Hint(path string) ImportHint {
	lower := strings.ToLower(path)
	h := ImportHint{SRGB: true}
	switch {
	case containsAny(lower, linearSuffixes):
		h.SRGB = false
	case containsAny(lower, normalSuffixes):
		h.Type = TypeNormalMap
	case strings.Contains(lower, "_bump."):
		h.Type = TypeNormalMap
		h.ConvertToNormalMap = true
		h.HeightmapScale = 0.008
	}
	return h
}

// DefaultMaxSize is used when the image size is unknown.
const DefaultMaxSize = 2048

// MaxSizeFor returns the smallest supported import size covering w x h.
func MaxSizeFor(w, h int) int {
	size := 32
	for size < w || size < h {
		if size >= 8192 {
			break
		}
		size *= 2
	}
	return size
}

// HintFile extends Hint with settings that need the image contents.
func (c *Cache) HintFile(path string) ImportHint {
	h := Hint(path)
	h.MaxSize = DefaultMaxSize
	if cfg, err := c.Config(path); err == nil {
		h.MaxSize = MaxSizeFor(cfg.Width, cfg.Height)
	}
	if h.SRGB && h.Type == TypeDefault {
		h.AlphaIsTransparency = c.HasAlpha(path)
	}
	return h
}
