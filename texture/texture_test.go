package texture

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int, alpha uint8) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{255, 0, 0, alpha})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestHint(t *testing.T) {
	cases := map[string]ImportHint{
		"CC_Assets/textures/Body_MetallicAlpha.png": {SRGB: false},
		"CC_Assets/textures/Body_AO.png":            {SRGB: false},
		"CC_Assets/textures/Body_HDRP.png":          {SRGB: false},
		"CC_Assets/textures/Body_Normal.png":        {SRGB: true, Type: TypeNormalMap},
		"CC_Assets/textures/Eye_IrisN.png":          {SRGB: true, Type: TypeNormalMap},
		"CC_Assets/textures/Body_Bump.png":          {SRGB: true, Type: TypeNormalMap, ConvertToNormalMap: true, HeightmapScale: 0.008},
		"CC_Assets/textures/Body_Diffuse.png":       {SRGB: true},
	}
	for path, want := range cases {
		if got := Hint(path); got != want {
			t.Errorf("%s: got %+v, want %+v", path, got, want)
		}
	}
}

func TestOSProbe(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.png")
	writePNG(t, p, 1, 1, 255)
	if !(OSProbe{}).Exists(p) {
		t.Error("file should exist")
	}
	if (OSProbe{}).Exists(dir) || (OSProbe{}).Exists(filepath.Join(dir, "b.png")) {
		t.Error("directories and missing files do not exist")
	}
}

func TestHintFile(t *testing.T) {
	dir := t.TempDir()
	opaque := filepath.Join(dir, "hair_diffuse.png")
	writePNG(t, opaque, 300, 40, 255)
	transparent := filepath.Join(dir, "hair_opacity.png")
	writePNG(t, transparent, 16, 16, 128)

	c := NewCache()
	h := c.HintFile(opaque)
	if h.MaxSize != 512 || h.AlphaIsTransparency {
		t.Error("opaque", h)
	}
	h = c.HintFile(transparent)
	if h.MaxSize != 32 || !h.AlphaIsTransparency {
		t.Error("transparent", h)
	}
	if h := c.HintFile(filepath.Join(dir, "missing.png")); h.MaxSize != DefaultMaxSize {
		t.Error("missing", h)
	}
}

func TestJPEGHasNoAlpha(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.jpg")
	f, _ := os.Create(p)
	jpeg.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil)
	f.Close()
	c := NewCache()
	if c.HasAlpha(p) {
		t.Error("jpeg has no alpha")
	}
	if cfg, err := c.Config(p); err != nil || cfg.Width != 4 {
		t.Error("config", cfg, err)
	}
}

func TestIsImagePath(t *testing.T) {
	if !IsImagePath("a/b.TGA") || IsImagePath("a/b.fbx") {
		t.Error("IsImagePath")
	}
}
