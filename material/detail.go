package material

import (
	"path/filepath"
	"strings"

	"github.com/binzume/autosetup/generation"
)

const DetailMapName = "skin_detail_map.tif"

var detailParts = []string{"head", "leg", "body", "arm"}

func detailFolder(g generation.Label, multi bool) string {
	switch g {
	case generation.G1:
		return "G1"
	case generation.G3:
		return "G3"
	case generation.G3Plus:
		return "G3Plus"
	case generation.GameBase:
		if multi {
			return filepath.Join("GameBase", "Multi")
		}
		return filepath.Join("GameBase", "Single")
	}
	return ""
}

func (r *Resolver) applyDetailLayer(m *Material, ctx Context) {
	lower := strings.ToLower(m.Name)
	if p := filepath.Join(r.ResourceDir, DetailMapName); r.Probe.Exists(p) {
		m.SetTexture("_DetailMap", p)
		m.SetFloat("_DetailAlbedoScale", 0.0001)
		m.SetFloat("_DetailNormalScale", 0.548)
		m.SetFloat("_DetailSmoothnessScale", 0.157)
		switch {
		case ctx.Generation == generation.GameBase && !ctx.MultiBase:
			m.SetTextureScale("_DetailMap", 240, 120)
		case strings.Contains(lower, "head"):
			m.SetTextureScale("_DetailMap", 60, 30)
		default:
			m.SetTextureScale("_DetailMap", 120, 60)
		}
	}

	dir := filepath.Join(r.ResourceDir, detailFolder(ctx.Generation, ctx.MultiBase))
	for _, part := range detailParts {
		if !strings.Contains(lower, part) {
			continue
		}
		prefix := strings.ToUpper(part[:1]) + part[1:]
		if p := filepath.Join(dir, prefix+"_Thickness.png"); r.Probe.Exists(p) {
			m.SetTexture("_ThicknessMap", p)
		}
		if p := filepath.Join(dir, prefix+"_Sss_Mask.png"); r.Probe.Exists(p) {
			m.SetTexture("_SubsurfaceMaskMap", p)
		}
		break
	}
}
