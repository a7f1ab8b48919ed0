package material

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/binzume/autosetup/generation"
	"github.com/binzume/autosetup/metadata"
)

var ErrShaderNotFound = errors.New("shader not found")

type ShaderRegistry interface {
	FindShader(name string) (ShaderHandle, error)
}

type FileProbe interface {
	Exists(path string) bool
}

// Context carries per-asset inputs shared by all of its materials.
type Context struct {
	Generation generation.Label
	MultiBase  bool
	// AssetDir is the directory texture paths in the metadata are relative to.
	AssetDir string
}

type Resolver struct {
	Backend Backend
	Shaders ShaderRegistry
	Probe   FileProbe
	Rules   *Rules
	// ResourceDir holds the shared skin detail textures.
	ResourceDir string
	// SkinPreset is copied into skin materials before resolving (HDRP only).
	SkinPreset *Material
}

// Resolve rewrites m for the active backend from its metadata entry.
// A nil meta resolves with defaults.
func (r *Resolver) Resolve(m *Material, meta *metadata.Node, ctx Context) error {
	b := r.Backend
	shader, err := r.Shaders.FindShader(b.ShaderName())
	if err != nil {
		return fmt.Errorf("material %s: %w", m.Name, err)
	}
	m.Shader = shader

	rules := r.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	lower := strings.ToLower(m.Name)
	cat := rules.Categorize(m.Name)

	if b.Kind() == HDRP && r.SkinPreset != nil && strings.Contains(lower, "skin_") {
		m.CopyPropertiesFrom(r.SkinPreset)
	}
	b.Prepare(m)

	color := White
	if c := meta.Find("Diffuse Color"); c.IsArray() && c.Len() >= 3 {
		rv, _ := c.Index(0).Float()
		gv, _ := c.Index(1).Float()
		bv, _ := c.Index(2).Float()
		color = Color{float32(rv / 255), float32(gv / 255), float32(bv / 255), 1}
	}
	m.SetColor(b.ColorProperty(), color)
	if ts := meta.Find("Two Side"); ts.Kind() == metadata.Bool {
		m.SetFloat("_DoubleSidedEnable", flag(ts.Bool()))
	}

	if b.SupportsDetailLayer() && strings.Contains(lower, "skin") && ctx.Generation != generation.Unknown {
		r.applyDetailLayer(m, ctx)
	}

	textures := meta.Find("Textures")
	for _, ch := range BoundChannels {
		if r.bind(m, textures, ch, ctx) {
			b.OnTextureBound(m, ch, cat)
		} else if ch == BaseColor && (cat == Cornea || cat == EyeOcclusion) {
			m.SetColor(b.ColorProperty(), TransparentWhite)
		}
	}

	b.SetSurface(m, SurfaceOf(cat, b.Kind()))
	b.ApplyCategory(m, cat)
	b.SetSmoothness(m, cat)

	if rules.IsSpecular(m.Name) && r.bind(m, textures, Specular, ctx) {
		if name := b.SpecularShaderName(); name != "" {
			shader, err := r.Shaders.FindShader(name)
			if err != nil {
				return fmt.Errorf("material %s: %w", m.Name, err)
			}
			m.Shader = shader
		}
		b.UseSpecularSetup(m)
	}
	if rules.IsMerge(m.Name) {
		b.SetSurface(m, Cutout)
		b.SetCutoff(m, 0.5)
	}
	b.Finalize(m)
	return nil
}

// TexturePath converts an exported "./textures/..." path.
func TexturePath(assetDir, p string) string {
	if len(p) == 0 {
		return ""
	}
	return filepath.Join(assetDir, filepath.FromSlash(p[1:]))
}

func (r *Resolver) bind(m *Material, textures *metadata.Node, ch Channel, ctx Context) bool {
	slot := r.Backend.Channel(ch)
	if slot == "" {
		return false
	}
	entry := textures.Find(string(ch))
	if !entry.IsObject() {
		return false
	}
	path := TexturePath(ctx.AssetDir, entry.Child("Texture Path").Str())
	if path == "" || !r.Probe.Exists(path) {
		return false
	}
	m.SetTexture(slot, path)
	return true
}

// IsMultiBase reports whether the materials use per-part UV sets.
func IsMultiBase(names []string) bool {
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), "head") {
			return true
		}
	}
	return false
}
