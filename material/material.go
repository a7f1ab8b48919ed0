// Package material resolves surface material parameters for character
// meshes from their exported metadata.
package material

import (
	"sort"

	"github.com/binzume/autosetup/geom"
)

type Color struct {
	R, G, B, A float32
}

var (
	White            = Color{1, 1, 1, 1}
	Black            = Color{0, 0, 0, 1}
	TransparentWhite = Color{1, 1, 1, 0}
)

type Texture struct {
	Path   string
	Scale  geom.Vector2
	Offset geom.Vector2
}

// ShaderHandle identifies a shader asset.
type ShaderHandle struct {
	Name   string
	FileID int64
	GUID   string
	Type   int
}

// Material is a named material instance with a settable property bag.
type Material struct {
	Name           string
	Shader         ShaderHandle
	RenderQueue    int
	Floats         map[string]float32
	Colors         map[string]Color
	Textures       map[string]*Texture
	Keywords       map[string]bool
	Tags           map[string]string
	DisabledPasses map[string]bool
}

func New(name string) *Material {
	return &Material{
		Name:           name,
		RenderQueue:    -1,
		Floats:         map[string]float32{},
		Colors:         map[string]Color{},
		Textures:       map[string]*Texture{},
		Keywords:       map[string]bool{},
		Tags:           map[string]string{},
		DisabledPasses: map[string]bool{},
	}
}

func (m *Material) SetFloat(name string, v float32) {
	m.Floats[name] = v
}

// GetFloat returns the value of name or def if it is unset.
func (m *Material) GetFloat(name string, def float32) float32 {
	if v, ok := m.Floats[name]; ok {
		return v
	}
	return def
}

func (m *Material) SetColor(name string, c Color) {
	m.Colors[name] = c
}

// SetTexture binds path to a slot with identity tiling.
func (m *Material) SetTexture(name, path string) {
	m.Textures[name] = &Texture{Path: path, Scale: geom.Vector2{X: 1, Y: 1}}
}

func (m *Material) HasTexture(name string) bool {
	t, ok := m.Textures[name]
	return ok && t.Path != ""
}

func (m *Material) SetTextureScale(name string, x, y float32) {
	if t, ok := m.Textures[name]; ok {
		t.Scale = geom.Vector2{X: x, Y: y}
	}
}

func (m *Material) EnableKeyword(k string) {
	m.Keywords[k] = true
}

func (m *Material) DisableKeyword(k string) {
	delete(m.Keywords, k)
}

func (m *Material) SetKeyword(k string, on bool) {
	if on {
		m.EnableKeyword(k)
	} else {
		m.DisableKeyword(k)
	}
}

// SetOverrideTag sets a shader tag. An empty value removes it.
func (m *Material) SetOverrideTag(tag, value string) {
	if value == "" {
		delete(m.Tags, tag)
		return
	}
	m.Tags[tag] = value
}

func (m *Material) SetShaderPassEnabled(pass string, enabled bool) {
	if enabled {
		delete(m.DisabledPasses, pass)
	} else {
		m.DisabledPasses[pass] = true
	}
}

// CopyPropertiesFrom overwrites every property present in src.
func (m *Material) CopyPropertiesFrom(src *Material) {
	for k, v := range src.Floats {
		m.Floats[k] = v
	}
	for k, v := range src.Colors {
		m.Colors[k] = v
	}
	for k, v := range src.Textures {
		t := *v
		m.Textures[k] = &t
	}
	for k := range src.Keywords {
		m.Keywords[k] = true
	}
}

// EnabledKeywords returns the keywords in sorted order.
func (m *Material) EnabledKeywords() []string {
	return sortedKeys(m.Keywords)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Material) FloatNames() []string   { return sortedKeys(m.Floats) }
func (m *Material) ColorNames() []string   { return sortedKeys(m.Colors) }
func (m *Material) TextureNames() []string { return sortedKeys(m.Textures) }
func (m *Material) TagNames() []string     { return sortedKeys(m.Tags) }
func (m *Material) DisabledPassNames() []string {
	return sortedKeys(m.DisabledPasses)
}

func (m *Material) Clone() *Material {
	c := New(m.Name)
	c.Shader = m.Shader
	c.RenderQueue = m.RenderQueue
	c.CopyPropertiesFrom(m)
	for k, v := range m.Tags {
		c.Tags[k] = v
	}
	for k := range m.DisabledPasses {
		c.DisabledPasses[k] = true
	}
	return c
}
