package unity

import (
	"sort"

	"github.com/binzume/autosetup/humanoid"
	"github.com/charmbracelet/log"
	yaml "gopkg.in/yaml.v2"
)

// ModelImporter animation types.
const (
	AnimationTypeGeneric = 2
	AnimationTypeHuman   = 3
)

type vector3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

type humanLimit struct {
	Min      vector3 `yaml:"min,flow"`
	Max      vector3 `yaml:"max,flow"`
	Value    vector3 `yaml:"value,flow"`
	Length   float32 `yaml:"length"`
	Modified int     `yaml:"modified"`
}

type humanBone struct {
	BoneName  string     `yaml:"boneName"`
	HumanName string     `yaml:"humanName"`
	Limit     humanLimit `yaml:"limit"`
}

type humanDescription struct {
	SerializedVersion  int         `yaml:"serializedVersion"`
	Human              []humanBone `yaml:"human"`
	Skeleton           []struct{}  `yaml:"skeleton"`
	ArmTwist           float32     `yaml:"armTwist"`
	ForeArmTwist       float32     `yaml:"foreArmTwist"`
	UpperLegTwist      float32     `yaml:"upperLegTwist"`
	LegTwist           float32     `yaml:"legTwist"`
	ArmStretch         float32     `yaml:"armStretch"`
	LegStretch         float32     `yaml:"legStretch"`
	FeetSpacing        float32     `yaml:"feetSpacing"`
	GlobalScale        float32     `yaml:"globalScale"`
	RootMotionBoneName string      `yaml:"rootMotionBoneName"`
	HasTranslationDoF  int         `yaml:"hasTranslationDoF"`
	HasExtraRoot       int         `yaml:"hasExtraRoot"`
	SkeletonHasParents int         `yaml:"skeletonHasParents"`
}

type clipAnimation struct {
	Name                    string `yaml:"name"`
	TakeName                string `yaml:"takeName"`
	LoopTime                int    `yaml:"loopTime"`
	LoopBlend               int    `yaml:"loopBlend"`
	LoopBlendOrientation    int    `yaml:"loopBlendOrientation"`
	LoopBlendPositionY      int    `yaml:"loopBlendPositionY"`
	LoopBlendPositionXZ     int    `yaml:"loopBlendPositionXZ"`
	KeepOriginalOrientation int    `yaml:"keepOriginalOrientation"`
	KeepOriginalPositionY   int    `yaml:"keepOriginalPositionY"`
	KeepOriginalPositionXZ  int    `yaml:"keepOriginalPositionXZ"`
	HeightFromFeet          int    `yaml:"heightFromFeet"`
	Mirror                  int    `yaml:"mirror"`
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func newHumanDescription(rig *humanoid.Rig) *humanDescription {
	d := rig.Defaults
	hd := &humanDescription{
		SerializedVersion:  3,
		Human:              []humanBone{},
		Skeleton:           []struct{}{},
		ArmTwist:           d.UpperArmTwist,
		ForeArmTwist:       d.LowerArmTwist,
		UpperLegTwist:      d.UpperLegTwist,
		LegTwist:           d.LowerLegTwist,
		ArmStretch:         d.ArmStretch,
		LegStretch:         d.LegStretch,
		FeetSpacing:        d.FeetSpacing,
		GlobalScale:        1,
		HasTranslationDoF:  boolInt(d.HasTranslationDoF),
		SkeletonHasParents: 1,
	}
	for _, b := range rig.Bones {
		hd.Human = append(hd.Human, humanBone{BoneName: b.Joint, HumanName: b.Human})
	}
	return hd
}

func newClipAnimations(clips []humanoid.Clip) []clipAnimation {
	anims := []clipAnimation{}
	for _, c := range clips {
		anims = append(anims, clipAnimation{
			Name:                    c.Name,
			TakeName:                c.Name,
			LoopTime:                boolInt(c.Loop),
			LoopBlendOrientation:    boolInt(c.LockRootRotation),
			LoopBlendPositionY:      boolInt(c.LockRootHeightY),
			LoopBlendPositionXZ:     boolInt(c.LockRootPositionXZ),
			KeepOriginalOrientation: boolInt(c.KeepOriginalOrientation),
			KeepOriginalPositionY:   boolInt(c.KeepOriginalPositionY),
			KeepOriginalPositionXZ:  boolInt(c.KeepOriginalPositionXZ),
		})
	}
	return anims
}

// AvatarWriter stores rig and clip settings in the ModelImporter section
// of a model's .meta file.
type AvatarWriter struct {
	Assets *AssetDB
}

func NewAvatarWriter(assets *AssetDB) *AvatarWriter {
	return &AvatarWriter{Assets: assets}
}

func (w *AvatarWriter) update(modelPath string, f func(mi yaml.MapSlice) yaml.MapSlice) error {
	if _, err := w.Assets.GUID(modelPath); err != nil {
		return err
	}
	meta, err := ReadMeta(modelPath)
	if err != nil {
		return err
	}
	meta.Set("ModelImporter", f(meta.Importer("ModelImporter")))
	return meta.Save()
}

// WriteRig sets the animation type and, for humanoid rigs, the bone
// mapping. Clip settings are written when clips is not empty.
func (w *AvatarWriter) WriteRig(modelPath string, rig *humanoid.Rig, clips []humanoid.Clip) error {
	return w.update(modelPath, func(mi yaml.MapSlice) yaml.MapSlice {
		if rig != nil && rig.Humanoid {
			mi = setKey(mi, "animationType", AnimationTypeHuman)
			mi = setKey(mi, "humanDescription", newHumanDescription(rig))
			mi = setKey(mi, "autoGenerateAvatarMappingIfUnspecified", 1)
			log.Debug("Humanoid rig written", "model", modelPath, "bones", len(rig.Bones))
		} else {
			mi = setKey(mi, "animationType", AnimationTypeGeneric)
		}
		if len(clips) > 0 {
			mi = setKey(mi, "animations", yaml.MapSlice{
				{Key: "importAnimation", Value: 1},
				{Key: "clipAnimations", Value: newClipAnimations(clips)},
			})
		}
		return mi
	})
}

type sourceAssetIdentifier struct {
	Type     string `yaml:"type"`
	Assembly string `yaml:"assembly"`
	Name     string `yaml:"name"`
}

type externalObject struct {
	First  sourceAssetIdentifier `yaml:"first"`
	Second Ref                   `yaml:"second,flow"`
}

// RemapMaterials points the model's embedded materials at saved material
// assets, keyed by material name.
func (w *AvatarWriter) RemapMaterials(modelPath string, materials map[string]string) error {
	names := make([]string, 0, len(materials))
	for n := range materials {
		names = append(names, n)
	}
	sort.Strings(names)
	objs := []externalObject{}
	for _, n := range names {
		guid, err := w.Assets.GUID(materials[n])
		if err != nil {
			return err
		}
		objs = append(objs, externalObject{
			First:  sourceAssetIdentifier{Type: "UnityEngine:Material", Assembly: "UnityEngine.CoreModule", Name: n},
			Second: Ref{FileID: MaterialFileID, GUID: guid, Type: 2},
		})
	}
	return w.update(modelPath, func(mi yaml.MapSlice) yaml.MapSlice {
		return setKey(mi, "externalObjects", objs)
	})
}
