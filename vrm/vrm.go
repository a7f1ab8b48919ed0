// Package vrm writes humanoid rigs into glTF documents as VRM 0.x
// extensions.
//
// https://github.com/vrm-c/vrm-specification/blob/master/specification/0.0/README.md
package vrm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/binzume/autosetup/humanoid"
	"github.com/charmbracelet/log"
	"github.com/qmuntal/gltf"
)

const ExtensionName = "VRM"

const ExporterVersion = "autosetup-1.0"

func init() {
	gltf.RegisterExtension(ExtensionName, Unmarshal)
}

type Metadata struct {
	Title   string `json:"title"`
	Version string `json:"version"`
	Author  string `json:"author"`

	AllowedUserName      string `json:"allowedUserName,omitempty"`
	ViolentUssageName    string `json:"violentUssageName,omitempty"`
	SexualUssageName     string `json:"sexualUssageName,omitempty"`
	CommercialUssageName string `json:"commercialUssageName,omitempty"`
	LicenseName          string `json:"licenseName"`
	OtherLicenseUrl      string `json:"otherLicenseUrl"`
}

type Bone struct {
	Bone             string `json:"bone"`
	Node             uint32 `json:"node"`
	UseDefaultValues bool   `json:"useDefaultValues"`
}

type Humanoid struct {
	Bones             []*Bone `json:"humanBones"`
	ArmStretch        float32 `json:"armStretch"`
	LegStretch        float32 `json:"legStretch"`
	UpperArmTwist     float32 `json:"upperArmTwist"`
	LowerArmTwist     float32 `json:"lowerArmTwist"`
	UpperLegTwist     float32 `json:"upperLegTwist"`
	LowerLegTwist     float32 `json:"lowerLegTwist"`
	FeetSpacing       float32 `json:"feetSpacing"`
	HasTranslationDoF bool    `json:"hasTranslationDoF"`
}

// VRM is the root extension object. Sections this package does not edit
// are carried through unchanged.
type VRM struct {
	ExporterVersion string   `json:"exporterVersion"`
	SpecVersion     string   `json:"specVersion,omitempty"`
	Meta            Metadata `json:"meta"`
	Humanoid        Humanoid `json:"humanoid"`

	FirstPerson        json.RawMessage `json:"firstPerson,omitempty"`
	BlendShapeMaster   json.RawMessage `json:"blendShapeMaster,omitempty"`
	SecondaryAnimation json.RawMessage `json:"secondaryAnimation,omitempty"`
	MaterialProperties json.RawMessage `json:"materialProperties,omitempty"`
}

func Unmarshal(data []byte) (interface{}, error) {
	var ext VRM
	if err := json.Unmarshal(data, &ext); err != nil {
		return nil, err
	}
	return &ext, nil
}

// BoneName converts a humanoid bone name to its VRM form.
func BoneName(human string) string {
	name := strings.ReplaceAll(human, " ", "")
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// RequiredBones lists the VRM names of bones every avatar must map.
var RequiredBones = func() []string {
	var names []string
	for _, b := range humanoid.RequiredBones {
		names = append(names, BoneName(b))
	}
	return names
}()

type Document gltf.Document

// VRM returns the extension, adding an empty one when missing.
func (doc *Document) VRM() *VRM {
	if ext, ok := doc.Extensions[ExtensionName].(*VRM); ok {
		return ext
	}
	ext := &VRM{ExporterVersion: ExporterVersion, SpecVersion: "0.0"}
	if doc.Extensions == nil {
		doc.Extensions = gltf.Extensions{}
	}
	doc.Extensions[ExtensionName] = ext
	if !doc.IsExtensionUsed(ExtensionName) {
		doc.ExtensionsUsed = append(doc.ExtensionsUsed, ExtensionName)
	}
	return ext
}

func (doc *Document) IsExtensionUsed(name string) bool {
	for _, ex := range doc.ExtensionsUsed {
		if ex == name {
			return true
		}
	}
	return false
}

// ApplyHumanoid replaces the humanoid bone list with the rig's mapping.
// Joints without a node of the same name are skipped.
func (doc *Document) ApplyHumanoid(rig *humanoid.Rig) {
	ext := doc.VRM()
	nodes := map[string]uint32{}
	for i, n := range doc.Nodes {
		if _, dup := nodes[n.Name]; !dup {
			nodes[n.Name] = uint32(i)
		}
	}
	ext.Humanoid.Bones = []*Bone{}
	for _, b := range rig.Bones {
		id, ok := nodes[b.Joint]
		if !ok {
			log.Warn("Bone node not found", "bone", b.Human, "node", b.Joint)
			continue
		}
		ext.Humanoid.Bones = append(ext.Humanoid.Bones, &Bone{Bone: BoneName(b.Human), Node: id, UseDefaultValues: b.UseDefaultLimits})
	}
	d := rig.Defaults
	ext.Humanoid.ArmStretch = d.ArmStretch
	ext.Humanoid.LegStretch = d.LegStretch
	ext.Humanoid.UpperArmTwist = d.UpperArmTwist
	ext.Humanoid.LowerArmTwist = d.LowerArmTwist
	ext.Humanoid.UpperLegTwist = d.UpperLegTwist
	ext.Humanoid.LowerLegTwist = d.LowerLegTwist
	ext.Humanoid.FeetSpacing = d.FeetSpacing
	ext.Humanoid.HasTranslationDoF = d.HasTranslationDoF
}

// MissingBones returns the required bones that have no mapping.
func (doc *Document) MissingBones() []string {
	mapped := map[string]bool{}
	for _, b := range doc.VRM().Humanoid.Bones {
		mapped[b.Bone] = true
	}
	var missing []string
	for _, name := range RequiredBones {
		if !mapped[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func (doc *Document) ValidateBones() error {
	if missing := doc.MissingBones(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", humanoid.ErrMissingBones, strings.Join(missing, ","))
	}
	return nil
}
