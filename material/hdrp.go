package material

// hdrpBackend targets HDRP/Lit.
type hdrpBackend struct{}

var hdrpChannels = map[Channel]string{
	BaseColor: "_BaseColorMap",
	Normal:    "_NormalMap",
	Bump:      "_NormalMap",
	Glow:      "_EmissiveColorMap",
	Specular:  "_SpecularColorMap",
	Mask:      "_MaskMap",
}

// HDRP material types.
const (
	hdrpSubsurfaceScattering = 0
	hdrpStandard             = 1
	hdrpSpecularColor        = 4
)

const (
	hdrpBlendAlpha       = 0
	hdrpBlendPremultiply = 4
)

func (hdrpBackend) Kind() BackendKind          { return HDRP }
func (hdrpBackend) ShaderName() string         { return "HDRP/Lit" }
func (hdrpBackend) SpecularShaderName() string { return "" }
func (hdrpBackend) Channel(ch Channel) string  { return hdrpChannels[ch] }
func (hdrpBackend) ColorProperty() string      { return "_BaseColor" }
func (hdrpBackend) Prepare(m *Material)        {}
func (hdrpBackend) SupportsDetailLayer() bool  { return true }

func (hdrpBackend) OnTextureBound(m *Material, ch Channel, c Category) {
	if ch == Glow {
		m.EnableKeyword("_EMISSION")
		m.SetFloat("_AlbedoAffectEmissive", 1)
		m.SetColor("_EmissiveColor", Black)
	}
}

func (hdrpBackend) SetSurface(m *Material, s SurfaceType) {
	switch s {
	case AlphaBlend:
		m.SetFloat("_SurfaceType", 1)
		m.SetFloat("_BlendMode", hdrpBlendAlpha)
		setBlend(m, blendSrcAlpha, blendOneMinusSrcAlpha, false)
		m.RenderQueue = QueueTransparent
	case PremultipliedDepthPrepass:
		m.SetFloat("_SurfaceType", 1)
		m.SetFloat("_BlendMode", hdrpBlendPremultiply)
		setBlend(m, blendOne, blendOneMinusSrcAlpha, false)
		m.SetFloat("_TransparentDepthPostpassEnable", 1)
		m.SetFloat("_TransparentDepthPrepassEnable", 1)
		m.RenderQueue = QueueTransparent
	default:
		m.SetFloat("_SurfaceType", 0)
		setBlend(m, blendOne, blendZero, true)
		m.SetFloat("_LinkDetailsWithBase", 0)
		m.SetFloat("_BlendMode", hdrpBlendAlpha)
		m.SetFloat("_EnableBlendModePreserveSpecularLighting", 1)
		m.SetFloat("_Metallic", 0)
		if s == Cutout {
			m.SetFloat("_AlphaCutoffEnable", 1)
			m.SetFloat("_AlphaCutoff", 1)
			m.RenderQueue = QueueAlphaTest
		} else {
			m.SetFloat("_AlphaCutoffEnable", 0)
			m.RenderQueue = QueueGeometry
		}
	}
}

func (hdrpBackend) ApplyCategory(m *Material, c Category) {
	switch c {
	case Hair:
		m.SetFloat("_DoubleSidedEnable", 1)
		m.SetFloat("_AlphaCutoff", 0.25)
		m.SetFloat("_AlphaCutoffEnable", 1)
		m.SetFloat("_EnableBlendModePreserveSpecularLighting", 1)
		m.SetFloat("_TransparentBackfaceEnable", 1)
		m.SetFloat("_TransparentDepthPostpassEnable", 1)
	case Skin, GameSkinBody:
		m.SetFloat("_MaterialID", hdrpSubsurfaceScattering)
		m.SetFloat("_DiffusionProfile", 1)
	case Scalp:
		m.SetFloat("_TransparentSortPriority", -1)
	}
}

func (hdrpBackend) SetSmoothness(m *Material, c Category) {
	m.SetFloat("_Smoothness", 0.5)
	switch c {
	case Skin, GameSkinBody:
		m.SetFloat("_SmoothnessRemapMin", 0.2)
		m.SetFloat("_SmoothnessRemapMax", 0.8)
	case Eye, Cornea, EyeOcclusion:
		m.SetFloat("_Smoothness", 0.8)
		m.SetFloat("_SmoothnessRemapMin", 0.82)
		m.SetFloat("_SmoothnessRemapMax", 0.88)
	}
}

func (hdrpBackend) SetCutoff(m *Material, v float32) {
	m.SetFloat("_AlphaCutoffEnable", 1)
	m.SetFloat("_AlphaCutoff", v)
}

func (hdrpBackend) UseSpecularSetup(m *Material) {
	m.SetFloat("_MaterialID", hdrpSpecularColor)
	m.SetFloat("_Smoothness", 0.2)
	m.SetFloat("_SmoothnessRemapMax", 0.5)
}

// Finalize rebuilds the keyword set from the properties.
func (hdrpBackend) Finalize(m *Material) {
	m.DisableKeyword("_ALPHABLEND_ON")
	m.DisableKeyword("_ALPHAPREMULTIPLY_ON")
	transparent := m.GetFloat("_SurfaceType", 0) == 1
	blend := m.GetFloat("_BlendMode", hdrpBlendAlpha)
	id := m.GetFloat("_MaterialID", hdrpStandard)
	m.SetKeyword("_SURFACE_TYPE_TRANSPARENT", transparent)
	m.SetKeyword("_BLENDMODE_ALPHA", transparent && blend == hdrpBlendAlpha)
	m.SetKeyword("_BLENDMODE_PRE_MULTIPLY", transparent && blend == hdrpBlendPremultiply)
	m.SetKeyword("_BLENDMODE_PRESERVE_SPECULAR_LIGHTING", transparent && m.GetFloat("_EnableBlendModePreserveSpecularLighting", 1) == 1)
	m.SetKeyword("_ALPHATEST_ON", m.GetFloat("_AlphaCutoffEnable", 0) == 1)
	m.SetKeyword("_DOUBLESIDED_ON", m.GetFloat("_DoubleSidedEnable", 0) == 1)
	m.SetKeyword("_NORMALMAP_TANGENT_SPACE", true)
	m.SetKeyword("_NORMALMAP", m.HasTexture("_NormalMap") || m.HasTexture("_DetailMap"))
	m.SetKeyword("_MASKMAP", m.HasTexture("_MaskMap"))
	m.SetKeyword("_EMISSIVE_COLOR_MAP", m.HasTexture("_EmissiveColorMap"))
	m.SetKeyword("_DETAIL_MAP", m.HasTexture("_DetailMap"))
	m.SetKeyword("_THICKNESSMAP", m.HasTexture("_ThicknessMap"))
	m.SetKeyword("_SUBSURFACE_MASK_MAP", m.HasTexture("_SubsurfaceMaskMap"))
	m.SetKeyword("_SPECULARCOLORMAP", m.HasTexture("_SpecularColorMap"))
	m.SetKeyword("_MATERIAL_FEATURE_SUBSURFACE_SCATTERING", id == hdrpSubsurfaceScattering)
	m.SetKeyword("_MATERIAL_FEATURE_TRANSMISSION", id == hdrpSubsurfaceScattering && m.HasTexture("_ThicknessMap"))
	m.SetKeyword("_MATERIAL_FEATURE_SPECULAR_COLOR", id == hdrpSpecularColor)
	m.SetKeyword("_ENABLE_FOG_ON_TRANSPARENT", transparent)
}
