package unity

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/autosetup/geom"
	"github.com/binzume/autosetup/material"
	"github.com/charmbracelet/log"
)

// Material is the serialized form of a Unity material asset.
type Material struct {
	SerializedVersion         int               `yaml:"serializedVersion"`
	ObjectHideFlags           int               `yaml:"m_ObjectHideFlags"`
	CorrespondingSourceObject Ref               `yaml:"m_CorrespondingSourceObject,flow"`
	PrefabInstance            Ref               `yaml:"m_PrefabInstance,flow"`
	PrefabAsset               Ref               `yaml:"m_PrefabAsset,flow"`
	Name                      string            `yaml:"m_Name"`
	Shader                    *Ref              `yaml:"m_Shader,flow"`
	ShaderKeywords            string            `yaml:"m_ShaderKeywords"`
	LightmapFlags             int               `yaml:"m_LightmapFlags"`
	EnableInstancingVariants  int               `yaml:"m_EnableInstancingVariants"`
	DoubleSidedGI             int               `yaml:"m_DoubleSidedGI"`
	CustomRenderQueue         int               `yaml:"m_CustomRenderQueue"`
	StringTagMap              map[string]string `yaml:"stringTagMap"`
	DisabledShaderPasses      []string          `yaml:"disabledShaderPasses"`

	SavedProperties struct {
		SerializedVersion int                      `yaml:"serializedVersion"`
		TexEnvs           []map[string]*TextureEnv `yaml:"m_TexEnvs"`
		Floats            []map[string]float32     `yaml:"m_Floats"`
		Colors            []map[string]*Color      `yaml:"m_Colors"`
	} `yaml:"m_SavedProperties"`
}

type Color struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
	A float32 `yaml:"a"`
}

type TextureEnv struct {
	Texture Ref          `yaml:"m_Texture,flow"`
	Scale   geom.Vector2 `yaml:"m_Scale,flow"`
	Offset  geom.Vector2 `yaml:"m_Offset,flow"`
}

func (m *Material) GetTextureProperty(name string) *TextureEnv {
	for _, t := range m.SavedProperties.TexEnvs {
		if tex, ok := t[name]; ok {
			return tex
		}
	}
	return nil
}

func (m *Material) GetColorProperty(name string) *Color {
	for _, t := range m.SavedProperties.Colors {
		if col, ok := t[name]; ok {
			return col
		}
	}
	return nil
}

func (m *Material) GetFloatProperty(name string) (float32, bool) {
	for _, t := range m.SavedProperties.Floats {
		if v, ok := t[name]; ok {
			return v, true
		}
	}
	return 0, false
}

// TextureRefFunc resolves a texture file to its asset reference.
type TextureRefFunc func(path string) (Ref, error)

// NewMaterial serializes a resolved material. Properties are written in
// name order so that the same material always produces the same file.
func NewMaterial(m *material.Material, textureRef TextureRefFunc) (*Material, error) {
	um := &Material{
		SerializedVersion:    6,
		Name:                 m.Name,
		Shader:               &Ref{FileID: m.Shader.FileID, GUID: m.Shader.GUID, Type: m.Shader.Type},
		ShaderKeywords:       strings.Join(m.EnabledKeywords(), " "),
		LightmapFlags:        4,
		CustomRenderQueue:    m.RenderQueue,
		StringTagMap:         map[string]string{},
		DisabledShaderPasses: m.DisabledPassNames(),
	}
	if um.DisabledShaderPasses == nil {
		um.DisabledShaderPasses = []string{}
	}
	for _, k := range m.TagNames() {
		um.StringTagMap[k] = m.Tags[k]
	}
	um.SavedProperties.SerializedVersion = 3
	for _, name := range m.TextureNames() {
		t := m.Textures[name]
		env := &TextureEnv{Scale: t.Scale, Offset: t.Offset}
		if t.Path != "" {
			ref, err := textureRef(t.Path)
			if err != nil {
				return nil, fmt.Errorf("texture %s: %w", name, err)
			}
			env.Texture = ref
		}
		um.SavedProperties.TexEnvs = append(um.SavedProperties.TexEnvs, map[string]*TextureEnv{name: env})
	}
	for _, name := range m.FloatNames() {
		um.SavedProperties.Floats = append(um.SavedProperties.Floats, map[string]float32{name: m.Floats[name]})
	}
	for _, name := range m.ColorNames() {
		c := m.Colors[name]
		um.SavedProperties.Colors = append(um.SavedProperties.Colors, map[string]*Color{name: {c.R, c.G, c.B, c.A}})
	}
	return um, nil
}

// ToMaterial converts the serialized material back. texturePath maps
// texture GUIDs to files and may be nil.
func (um *Material) ToMaterial(shaders *ShaderRegistry, texturePath func(guid string) (string, bool)) *material.Material {
	m := material.New(um.Name)
	m.RenderQueue = um.CustomRenderQueue
	if um.Shader != nil {
		m.Shader = material.ShaderHandle{FileID: um.Shader.FileID, GUID: um.Shader.GUID, Type: um.Shader.Type}
		if shaders != nil {
			m.Shader.Name = shaders.shaderName(um.Shader)
		}
	}
	for _, k := range strings.Fields(um.ShaderKeywords) {
		m.EnableKeyword(k)
	}
	for k, v := range um.StringTagMap {
		m.SetOverrideTag(k, v)
	}
	for _, p := range um.DisabledShaderPasses {
		m.SetShaderPassEnabled(p, false)
	}
	for _, t := range um.SavedProperties.TexEnvs {
		for name, env := range t {
			tex := &material.Texture{Scale: env.Scale, Offset: env.Offset}
			if env.Texture.GUID != "" && texturePath != nil {
				tex.Path, _ = texturePath(env.Texture.GUID)
			}
			m.Textures[name] = tex
		}
	}
	for _, f := range um.SavedProperties.Floats {
		for name, v := range f {
			m.SetFloat(name, v)
		}
	}
	for _, c := range um.SavedProperties.Colors {
		for name, v := range c {
			if v != nil {
				m.SetColor(name, material.Color{R: v.R, G: v.G, B: v.B, A: v.A})
			}
		}
	}
	return m
}

// ParseMaterial reads the first material object of a .mat file.
func ParseMaterial(data []byte) (*Material, error) {
	for _, doc := range ParseYamlDocuments(data) {
		if doc.ClassID() != ClassMaterial {
			continue
		}
		var a map[string]*Material
		if err := doc.Decode(&a); err != nil {
			return nil, err
		}
		if m := a["Material"]; m != nil {
			return m, nil
		}
	}
	return nil, fmt.Errorf("no material object")
}

// LoadMaterial reads a material asset such as a skin preset.
func LoadMaterial(path string, shaders *ShaderRegistry, assets *AssetDB) (*material.Material, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	um, err := ParseMaterial(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var lookup func(string) (string, bool)
	if assets != nil {
		lookup = assets.Path
	}
	return um.ToMaterial(shaders, lookup), nil
}

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")

// MaterialStore persists materials as .mat assets.
type MaterialStore struct {
	Assets *AssetDB
}

func NewMaterialStore(assets *AssetDB) *MaterialStore {
	return &MaterialStore{Assets: assets}
}

// Save writes <dir>/<name>.mat and its .meta, returning the asset path.
// An existing .meta keeps its GUID so references from prefabs survive.
func (s *MaterialStore) Save(dir string, m *material.Material) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	um, err := NewMaterial(m, s.textureRef)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	w := NewDocumentWriter(&buf)
	if err := w.Write(ClassMaterial, MaterialFileID, "Material", um); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fileNameReplacer.Replace(m.Name)+".mat")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	if _, err := s.Assets.GUID(path); err != nil {
		return "", err
	}
	log.Debug("Material saved", "path", path)
	return path, nil
}

func (s *MaterialStore) textureRef(path string) (Ref, error) {
	guid, err := s.Assets.GUID(path)
	if err != nil {
		return Ref{}, err
	}
	return Ref{FileID: TextureFileID, GUID: guid, Type: 3}, nil
}
