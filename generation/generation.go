// Package generation decides which skeletal lineage a character belongs to.
package generation

import (
	"strings"

	"github.com/binzume/autosetup/metadata"
)

type Label int

const (
	Unknown Label = iota
	GameBase
	G1
	G3
	G3Plus
)

var labelNames = [...]string{"Unknown", "GameBase", "G1", "G3", "G3Plus"}

func (l Label) String() string {
	if l < 0 || int(l) >= len(labelNames) {
		return "Unknown"
	}
	return labelNames[l]
}

func ParseLabel(s string) Label {
	for i, n := range labelNames {
		if strings.EqualFold(n, s) {
			return Label(i)
		}
	}
	return Unknown
}

// Tags maps the exporter's explicit Generation values.
var Tags = map[string]Label{
	"RL_CC3_Plus": G3Plus,
	"RL_CharacterCreator_Base_Game_G1_Divide_Eyelash_UV": GameBase,
	"RL_CharacterCreator_Base_Game_G1_Multi_UV":          GameBase,
	"RL_CharacterCreator_Base_Game_G1_One_UV":            GameBase,
	"RL_CharacterCreator_Base_Std_G3":                    G3,
	"RL_G6_Standard_Series":                              G1,
}

type landmark struct {
	joint string
	label Label
}

var landmarks = []landmark{
	{"CC_Base_L_Pinky3", G3},
	{"pinky_03_l", GameBase},
	{"CC_Base_L_Finger42", G1},
}

// Classify resolves the generation of an asset. A nil skeleton means that
// no skeleton was supplied; a non-nil skeleton without landmarks is G3.
func Classify(doc *metadata.Node, skeleton []string) Label {
	if tag := doc.Find("Generation"); tag.IsString() {
		if l, ok := Tags[tag.Str()]; ok {
			return l
		}
	}
	if skeleton != nil {
		return fromSkeleton(skeleton)
	}
	return fromMaterials(doc)
}

func fromSkeleton(joints []string) Label {
	for _, j := range joints {
		for _, lm := range landmarks {
			if j == lm.joint {
				return lm.label
			}
		}
	}
	return G3
}

func fromMaterials(doc *metadata.Node) Label {
	for _, key := range doc.Keys() {
		obj := doc.Child(key).Child("Object")
		if obj.Len() > 0 {
			obj = obj.First()
		}
		if l := fromMeshes(obj.Child("Meshes")); l != Unknown {
			return l
		}
	}
	return Unknown
}

func fromMeshes(meshes *metadata.Node) Label {
	if body := meshes.Find("CC_Base_Body"); body.IsObject() {
		for _, name := range body.Find("Materials").Keys() {
			switch {
			case strings.Contains(name, "Std_Skin_Body"):
				return G3
			case strings.Contains(strings.ToLower(name), "ga_skin_body"):
				return GameBase
			case strings.Contains(name, "Skin_Body"):
				return G1
			}
		}
		return Unknown
	}
	if meshes.Find("CC_Game_Body").IsObject() || meshes.Find("CC_Game_Tongue").IsObject() {
		return GameBase
	}
	return Unknown
}

// IsAvatar reports whether a model is a character rig. roots are the
// direct children of the model root; deeper joints are not considered.
func IsAvatar(roots []string) bool {
	for _, j := range roots {
		if j == "CC_Base_BoneRoot" || j == "root" {
			return true
		}
	}
	return false
}
