package material

// urpBackend targets Universal Render Pipeline/Lit.
type urpBackend struct{}

var urpChannels = map[Channel]string{
	BaseColor:     "_BaseMap",
	Normal:        "_BumpMap",
	Bump:          "_BumpMap",
	MetallicAlpha: "_MetallicGlossMap",
	AO:            "_OcclusionMap",
	Glow:          "_EmissionMap",
	Specular:      "_SpecGlossMap",
}

func (urpBackend) Kind() BackendKind          { return URP }
func (urpBackend) ShaderName() string         { return "Universal Render Pipeline/Lit" }
func (urpBackend) SpecularShaderName() string { return "" }
func (urpBackend) Channel(ch Channel) string  { return urpChannels[ch] }
func (urpBackend) ColorProperty() string      { return "_BaseColor" }
func (urpBackend) SupportsDetailLayer() bool  { return false }

func (urpBackend) Prepare(m *Material) {
	m.SetFloat("_WorkflowMode", 1)
}

func (urpBackend) OnTextureBound(m *Material, ch Channel, c Category) {
	onStandardTextureBound(m, ch, c)
}

func (urpBackend) SetSurface(m *Material, s SurfaceType) {
	m.DisableKeyword("_ALPHATEST_ON")
	m.DisableKeyword("_ALPHABLEND_ON")
	m.DisableKeyword("_ALPHAPREMULTIPLY_ON")
	m.DisableKeyword("_ALPHAMODULATE_ON")
	switch s {
	case AlphaBlend, PremultipliedDepthPrepass:
		m.SetFloat("_Surface", 1)
		m.SetFloat("_AlphaClip", 0)
		m.SetFloat("_Cull", 0)
		m.SetOverrideTag("RenderType", "Transparent")
		if s == AlphaBlend {
			m.SetFloat("_Blend", 0)
			setBlend(m, blendSrcAlpha, blendOneMinusSrcAlpha, false)
		} else {
			m.SetFloat("_Blend", 1)
			setBlend(m, blendOne, blendOneMinusSrcAlpha, false)
			m.EnableKeyword("_ALPHAPREMULTIPLY_ON")
		}
		m.RenderQueue = QueueTransparent
		m.SetShaderPassEnabled("ShadowCaster", false)
	case Cutout:
		m.SetFloat("_Surface", 0)
		m.SetFloat("_AlphaClip", 1)
		m.SetFloat("_Cutoff", 1)
		m.SetOverrideTag("RenderType", "TransparentCutout")
		setBlend(m, blendOne, blendZero, true)
		m.EnableKeyword("_ALPHATEST_ON")
		m.RenderQueue = QueueAlphaTest
		m.SetShaderPassEnabled("ShadowCaster", true)
	default:
		m.SetFloat("_Surface", 0)
		m.SetFloat("_AlphaClip", 0)
		m.SetFloat("_Cull", 0)
		m.SetOverrideTag("RenderType", "")
		setBlend(m, blendOne, blendZero, true)
		m.RenderQueue = QueueShaderDefault
		m.SetShaderPassEnabled("ShadowCaster", true)
	}
}

func (urpBackend) ApplyCategory(m *Material, c Category) {}

func (urpBackend) SetSmoothness(m *Material, c Category) {
	switch c {
	case Hair, GameSkinBody, Cornea, EyeOcclusion:
		m.SetFloat("_Smoothness", 0.5)
	case Skin:
		m.SetFloat("_Smoothness", 0.7)
	default:
		m.SetFloat("_Smoothness", 0.88)
	}
}

func (urpBackend) SetCutoff(m *Material, v float32) {
	m.SetFloat("_AlphaClip", 1)
	m.SetFloat("_Cutoff", v)
}

func (urpBackend) UseSpecularSetup(m *Material) {
	m.SetFloat("_Smoothness", 0.2)
	m.SetFloat("_WorkflowMode", 0)
	m.EnableKeyword("_SPECULAR_SETUP")
}

// Finalize syncs shader keywords with the property values.
func (urpBackend) Finalize(m *Material) {
	specular := m.GetFloat("_WorkflowMode", 1) == 0
	var gloss bool
	if specular {
		gloss = m.HasTexture("_SpecGlossMap")
	} else {
		gloss = m.HasTexture("_MetallicGlossMap")
	}
	m.SetKeyword("_SPECULAR_SETUP", specular)
	m.SetKeyword("_METALLICSPECGLOSSMAP", gloss)
	m.SetKeyword("_SPECGLOSSMAP", gloss && specular)
	m.SetKeyword("_METALLICGLOSSMAP", gloss && !specular)
	m.SetKeyword("_NORMALMAP", m.HasTexture("_BumpMap"))
	m.SetKeyword("_SPECULARHIGHLIGHTS_OFF", m.GetFloat("_SpecularHighlights", 1) == 0)
	m.SetKeyword("_GLOSSYREFLECTIONS_OFF", m.GetFloat("_GlossyReflections", 1) == 0)
	m.SetKeyword("_OCCLUSIONMAP", m.HasTexture("_OcclusionMap"))
	m.SetKeyword("_EMISSION", m.HasTexture("_EmissionMap"))
	m.SetKeyword("_SURFACE_TYPE_TRANSPARENT", m.GetFloat("_Surface", 0) == 1)
	m.SetKeyword("_ALPHATEST_ON", m.GetFloat("_AlphaClip", 0) == 1)
}
