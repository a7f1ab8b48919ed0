package humanoid

import (
	"errors"
	"testing"

	"github.com/binzume/autosetup/generation"
)

func TestResolveUnknown(t *testing.T) {
	if m, _, ok := Resolve(generation.Unknown); ok || m != nil {
		t.Error("Unknown should not resolve")
	}
}

func TestResolveTables(t *testing.T) {
	for _, l := range []generation.Label{generation.G1, generation.G3, generation.G3Plus, generation.GameBase} {
		m, d, ok := Resolve(l)
		if !ok {
			t.Fatal("not resolved:", l)
		}
		if len(m) != 55 {
			t.Error("unexpected table length", l, len(m))
		}
		if d != DefaultRig {
			t.Error("unexpected rig defaults", d)
		}
		seen := map[string]bool{}
		for _, e := range m {
			if seen[e.Human] {
				t.Error("duplicated bone", l, e.Human)
			}
			seen[e.Human] = true
			if !e.UseDefaultLimits || e.Joint == "" {
				t.Error("invalid entry", e)
			}
		}
	}
}

func TestResolveJointNames(t *testing.T) {
	cases := []struct {
		label        generation.Label
		human, joint string
	}{
		{generation.G3, "Left Little Distal", "CC_Base_L_Pinky3"},
		{generation.G3Plus, "Neck", "CC_Base_NeckTwist01"},
		{generation.G1, "Left Thumb Proximal", "CC_Base_L_Finger00"},
		{generation.G1, "Right Little Distal", "CC_Base_R_Finger42"},
		{generation.GameBase, "LeftToes", "ball_l"},
		{generation.GameBase, "Jaw", "CC_Base_JawRoot"},
		{generation.GameBase, "UpperChest", "spine_03"},
	}
	for _, c := range cases {
		m, _, _ := Resolve(c.label)
		if j, _ := m.Joint(c.human); j != c.joint {
			t.Errorf("%v %s: got %s, want %s", c.label, c.human, j, c.joint)
		}
	}
}

func TestBuild(t *testing.T) {
	m, d, _ := Resolve(generation.GameBase)
	var joints []string
	for _, e := range m {
		if e.Human != "Jaw" {
			joints = append(joints, e.Joint)
		}
	}
	rig, err := Builder{}.Build(m, d, joints)
	if err != nil {
		t.Fatal(err)
	}
	if !rig.Humanoid || len(rig.Bones) != len(m)-1 {
		t.Error("unexpected bones", len(rig.Bones))
	}

	_, err = Builder{}.Build(m, d, []string{"pelvis"})
	if !errors.Is(err, ErrMissingBones) {
		t.Error("expected ErrMissingBones", err)
	}
}

func TestClipSettings(t *testing.T) {
	clips := ClipSettings([]string{"Idle_Loop", "Wave", "__preview__Take", "T-Pose"})
	if len(clips) != 2 {
		t.Fatal("unexpected clips", clips)
	}
	if !clips[0].Loop || clips[1].Loop {
		t.Error("loop flags", clips)
	}
	if !clips[1].LockRootRotation || !clips[1].KeepOriginalPositionXZ {
		t.Error("root settings", clips[1])
	}
}
