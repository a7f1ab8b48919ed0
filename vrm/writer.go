package vrm

import (
	"path/filepath"
	"strings"

	"github.com/binzume/autosetup/humanoid"
	"github.com/charmbracelet/log"
	"github.com/qmuntal/gltf"
)

// OutputPath returns where a rigged copy of modelPath is written.
func OutputPath(modelPath string) string {
	ext := filepath.Ext(modelPath)
	base := strings.TrimSuffix(modelPath, ext)
	if strings.EqualFold(ext, ".vrm") {
		return base + "_humanoid.vrm"
	}
	return base + ".vrm"
}

// RigWriter stores humanoid rigs of glTF models as VRM files.
type RigWriter struct{}

// WriteRig writes a .vrm copy of the model carrying the rig. Generic rigs
// are not representable in VRM and are skipped. Animation clips stay in
// the source document.
func (RigWriter) WriteRig(modelPath string, rig *humanoid.Rig, clips []humanoid.Clip) error {
	if rig == nil || !rig.Humanoid {
		log.Debug("Generic rig, VRM output skipped", "model", modelPath)
		return nil
	}
	g, err := gltf.Open(modelPath)
	if err != nil {
		return err
	}
	doc := (*Document)(g)
	doc.ApplyHumanoid(rig)
	if doc.VRM().Meta.Title == "" {
		doc.VRM().Meta.Title = strings.TrimSuffix(filepath.Base(modelPath), filepath.Ext(modelPath))
	}
	if err := doc.ValidateBones(); err != nil {
		return err
	}
	out := OutputPath(modelPath)
	if err := gltf.SaveBinary(g, out); err != nil {
		return err
	}
	log.Info("VRM written", "path", out, "bones", len(doc.VRM().Humanoid.Bones), "clips", len(clips))
	return nil
}
