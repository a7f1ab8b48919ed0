// Package humanoid resolves humanoid retargeting tables and builds rigs
// from them.
package humanoid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/binzume/autosetup/generation"
	"github.com/charmbracelet/log"
)

var ErrMissingBones = errors.New("missing bones")

type BoneMapEntry struct {
	Human            string
	Joint            string
	UseDefaultLimits bool
}

type BoneMap []BoneMapEntry

// Joint returns the joint mapped to a human bone name.
func (m BoneMap) Joint(human string) (string, bool) {
	for _, e := range m {
		if e.Human == human {
			return e.Joint, true
		}
	}
	return "", false
}

type RigDefaults struct {
	UpperArmTwist     float32
	LowerArmTwist     float32
	UpperLegTwist     float32
	LowerLegTwist     float32
	ArmStretch        float32
	LegStretch        float32
	FeetSpacing       float32
	HasTranslationDoF bool
}

var DefaultRig = RigDefaults{
	UpperArmTwist: 0.5,
	LowerArmTwist: 0.5,
	UpperLegTwist: 0.5,
	LowerLegTwist: 0.5,
	ArmStretch:    0.05,
	LegStretch:    0.05,
}

// Resolve returns the retargeting table for label, or false for Unknown.
func Resolve(label generation.Label) (BoneMap, RigDefaults, bool) {
	t, ok := tables[label]
	if !ok {
		return nil, RigDefaults{}, false
	}
	m := make(BoneMap, TableLength)
	for i, human := range HumanBones {
		m[i] = BoneMapEntry{Human: human, Joint: t[i], UseDefaultLimits: true}
	}
	return m, DefaultRig, true
}

// RequiredBones must be bound for a humanoid rig to be valid.
var RequiredBones = []string{
	"Hips", "Spine", "Chest", "Neck", "Head",
	"LeftUpperArm", "LeftLowerArm", "LeftHand",
	"RightUpperArm", "RightLowerArm", "RightHand",
	"LeftUpperLeg", "LeftLowerLeg", "LeftFoot",
	"RightUpperLeg", "RightLowerLeg", "RightFoot",
}

type Rig struct {
	Humanoid bool
	Bones    BoneMap
	Defaults RigDefaults
	Skeleton []string
}

// GenericRig keeps the skeleton without a humanoid mapping.
func GenericRig(joints []string) *Rig {
	return &Rig{Skeleton: joints}
}

// Builder binds a retargeting table against the joints of a model.
type Builder struct{}

func (Builder) Build(m BoneMap, d RigDefaults, joints []string) (*Rig, error) {
	exists := make(map[string]bool, len(joints))
	for _, j := range joints {
		exists[j] = true
	}
	rig := &Rig{Humanoid: true, Defaults: d, Skeleton: joints}
	for _, e := range m {
		if !exists[e.Joint] {
			log.Debug("Bone node not found", "bone", e.Human, "joint", e.Joint)
			continue
		}
		rig.Bones = append(rig.Bones, e)
	}
	var missing []string
	for _, b := range RequiredBones {
		if _, ok := rig.Bones.Joint(b); !ok {
			missing = append(missing, b)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingBones, strings.Join(missing, ","))
	}
	return rig, nil
}
