package material

import (
	"fmt"
	"strings"

	"github.com/binzume/autosetup/metadata"
	"github.com/charmbracelet/log"
)

type BackendKind int

const (
	Legacy BackendKind = iota
	URP
	HDRP
)

func (k BackendKind) String() string {
	switch k {
	case URP:
		return "urp"
	case HDRP:
		return "hdrp"
	}
	return "legacy"
}

func ParseBackend(s string) (BackendKind, error) {
	switch strings.ToLower(s) {
	case "legacy", "standard", "builtin":
		return Legacy, nil
	case "urp", "universal":
		return URP, nil
	case "hdrp", "highdefinition":
		return HDRP, nil
	}
	return Legacy, fmt.Errorf("unknown backend: %q", s)
}

// DetectBackend inspects a Unity Packages/manifest.json.
func DetectBackend(manifestPath string) (BackendKind, error) {
	doc, err := metadata.ReadFile(manifestPath)
	if err != nil {
		return Legacy, err
	}
	var hd, univ bool
	for _, name := range doc.Child("dependencies").Keys() {
		hd = hd || strings.Contains(name, "render-pipelines.high-definition")
		univ = univ || strings.Contains(name, "render-pipelines.universal") ||
			strings.Contains(name, "render-pipelines.lightweight")
	}
	switch {
	case hd && univ:
		log.Error("Both HDRP and URP packages are installed, using HDRP", "manifest", manifestPath)
		return HDRP, nil
	case hd:
		return HDRP, nil
	case univ:
		return URP, nil
	}
	return Legacy, nil
}

type SurfaceType int

const (
	Opaque SurfaceType = iota
	Cutout
	AlphaBlend
	PremultipliedDepthPrepass
)

func (s SurfaceType) String() string {
	return [...]string{"opaque", "cutout", "alpha_blend", "premultiplied_prepass"}[s]
}

// SurfaceOf maps a category to its semantic blend behavior.
func SurfaceOf(c Category, kind BackendKind) SurfaceType {
	switch c {
	case Hair, Cornea:
		return AlphaBlend
	case GameSkinBody:
		return Cutout
	case EyeOcclusion:
		if kind == HDRP {
			return PremultipliedDepthPrepass
		}
		return AlphaBlend
	}
	return Opaque
}

// Channel is a texture entry name in the metadata.
type Channel string

const (
	BaseColor     Channel = "Base Color"
	Normal        Channel = "Normal"
	Bump          Channel = "Bump"
	MetallicAlpha Channel = "MetallicAlpha"
	AO            Channel = "AO"
	Glow          Channel = "Glow"
	Specular      Channel = "Specular"
	Mask          Channel = "HDRP"
)

// BoundChannels are bound for every material in this order.
var BoundChannels = []Channel{BaseColor, Normal, Bump, MetallicAlpha, AO, Glow, Mask}

// Unity blend factors.
const (
	blendZero             = 0
	blendOne              = 1
	blendSrcAlpha         = 5
	blendOneMinusSrcAlpha = 10
)

// Render queues.
const (
	QueueShaderDefault = -1
	QueueGeometry      = 2000
	QueueAlphaTest     = 2450
	QueueTransparent   = 3000
)

// Backend expresses material semantics in one rendering parameter
// namespace.
type Backend interface {
	Kind() BackendKind
	ShaderName() string
	// SpecularShaderName is the shader variant for the specular workflow,
	// or "" when the base shader covers it.
	SpecularShaderName() string
	// Channel returns the slot for a metadata channel, or "" if unsupported.
	Channel(ch Channel) string
	ColorProperty() string
	Prepare(m *Material)
	OnTextureBound(m *Material, ch Channel, c Category)
	SetSurface(m *Material, s SurfaceType)
	ApplyCategory(m *Material, c Category)
	SetSmoothness(m *Material, c Category)
	SetCutoff(m *Material, v float32)
	UseSpecularSetup(m *Material)
	SupportsDetailLayer() bool
	Finalize(m *Material)
}

func NewBackend(kind BackendKind) Backend {
	switch kind {
	case URP:
		return urpBackend{}
	case HDRP:
		return hdrpBackend{}
	}
	return legacyBackend{}
}

func setBlend(m *Material, src, dst int, zwrite bool) {
	m.SetFloat("_SrcBlend", float32(src))
	m.SetFloat("_DstBlend", float32(dst))
	m.SetFloat("_ZWrite", flag(zwrite))
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
