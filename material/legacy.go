package material

// legacyBackend targets the built-in Standard shader.
type legacyBackend struct{}

var legacyChannels = map[Channel]string{
	BaseColor:     "_MainTex",
	Normal:        "_BumpMap",
	Bump:          "_BumpMap",
	MetallicAlpha: "_MetallicGlossMap",
	AO:            "_OcclusionMap",
	Glow:          "_EmissionMap",
	Specular:      "_SpecGlossMap",
}

func (legacyBackend) Kind() BackendKind          { return Legacy }
func (legacyBackend) ShaderName() string         { return "Standard" }
func (legacyBackend) SpecularShaderName() string { return "Standard (Specular setup)" }
func (legacyBackend) Channel(ch Channel) string  { return legacyChannels[ch] }
func (legacyBackend) ColorProperty() string      { return "_Color" }
func (legacyBackend) Prepare(m *Material)        {}
func (legacyBackend) SupportsDetailLayer() bool  { return false }

func (legacyBackend) OnTextureBound(m *Material, ch Channel, c Category) {
	onStandardTextureBound(m, ch, c)
}

// onStandardTextureBound is shared by the Standard and URP Lit shaders.
func onStandardTextureBound(m *Material, ch Channel, c Category) {
	switch ch {
	case Bump:
		m.EnableKeyword("_NORMALMAP")
	case MetallicAlpha:
		m.EnableKeyword("_METALLICGLOSSMAP")
		if c.IsSkin() {
			m.SetFloat("_GlossMapScale", 0.88)
		} else {
			m.SetFloat("_GlossMapScale", 0.7)
		}
	case Glow:
		m.EnableKeyword("_EMISSION")
	}
}

func (legacyBackend) SetSurface(m *Material, s SurfaceType) {
	m.DisableKeyword("_ALPHATEST_ON")
	m.DisableKeyword("_ALPHABLEND_ON")
	m.DisableKeyword("_ALPHAPREMULTIPLY_ON")
	switch s {
	case AlphaBlend:
		m.SetFloat("_Mode", 2)
		m.SetOverrideTag("RenderType", "Transparent")
		setBlend(m, blendSrcAlpha, blendOneMinusSrcAlpha, false)
		m.EnableKeyword("_ALPHABLEND_ON")
		m.RenderQueue = QueueTransparent
	case Cutout:
		m.SetFloat("_Mode", 1)
		m.SetFloat("_Cutoff", 1)
		m.SetOverrideTag("RenderType", "TransparentCutout")
		setBlend(m, blendOne, blendZero, true)
		m.EnableKeyword("_ALPHATEST_ON")
		m.RenderQueue = QueueAlphaTest
	case PremultipliedDepthPrepass:
		m.SetFloat("_Mode", 3)
		m.SetOverrideTag("RenderType", "Transparent")
		setBlend(m, blendOne, blendOneMinusSrcAlpha, false)
		m.EnableKeyword("_ALPHAPREMULTIPLY_ON")
		m.RenderQueue = QueueTransparent
	default:
		m.SetFloat("_Mode", 0)
		m.SetOverrideTag("RenderType", "")
		setBlend(m, blendOne, blendZero, true)
		m.RenderQueue = QueueShaderDefault
	}
}

func (legacyBackend) ApplyCategory(m *Material, c Category) {}

func (legacyBackend) SetSmoothness(m *Material, c Category) {
	switch c {
	case Skin:
		m.SetFloat("_GlossMapScale", 0.88)
	case Default, Eye, Scalp:
		m.SetFloat("_GlossMapScale", 0.7)
	}
}

func (legacyBackend) SetCutoff(m *Material, v float32) {
	m.SetFloat("_Cutoff", v)
}

func (legacyBackend) UseSpecularSetup(m *Material) {
	m.SetFloat("_GlossMapScale", 0.2)
}

func (legacyBackend) Finalize(m *Material) {
	specular := m.Shader.Name == "Standard (Specular setup)"
	m.SetKeyword("_NORMALMAP", m.HasTexture("_BumpMap"))
	m.SetKeyword("_METALLICGLOSSMAP", !specular && m.HasTexture("_MetallicGlossMap"))
	m.SetKeyword("_SPECGLOSSMAP", specular && m.HasTexture("_SpecGlossMap"))
	m.SetKeyword("_EMISSION", m.HasTexture("_EmissionMap"))
}
