package vrm

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/binzume/autosetup/generation"
	"github.com/binzume/autosetup/humanoid"
	"github.com/qmuntal/gltf"
)

func TestBoneName(t *testing.T) {
	cases := map[string]string{
		"Hips":                "hips",
		"LeftUpperArm":        "leftUpperArm",
		"Left Thumb Proximal": "leftThumbProximal",
		"":                    "",
	}
	for in, want := range cases {
		if got := BoneName(in); got != want {
			t.Errorf("BoneName(%q) = %q, want %q", in, got, want)
		}
	}
}

func testRig(t *testing.T) (*humanoid.Rig, []*gltf.Node) {
	m, d, ok := humanoid.Resolve(generation.G3)
	if !ok {
		t.Fatal("no table")
	}
	var nodes []*gltf.Node
	var joints []string
	for _, e := range m {
		nodes = append(nodes, &gltf.Node{Name: e.Joint})
		joints = append(joints, e.Joint)
	}
	rig, err := humanoid.Builder{}.Build(m, d, joints)
	if err != nil {
		t.Fatal(err)
	}
	return rig, nodes
}

func TestApplyHumanoid(t *testing.T) {
	rig, nodes := testRig(t)
	doc := &Document{Nodes: nodes}
	doc.ApplyHumanoid(rig)
	if err := doc.ValidateBones(); err != nil {
		t.Error(err)
	}
	if !doc.IsExtensionUsed(ExtensionName) {
		t.Error("extension not declared")
	}
	for _, b := range doc.VRM().Humanoid.Bones {
		if b.Bone == "hips" && doc.Nodes[b.Node].Name != "CC_Base_Hip" {
			t.Error("hips mapped to", doc.Nodes[b.Node].Name)
		}
	}
	if doc.VRM().Humanoid.ArmStretch != 0.05 {
		t.Error("rig defaults not applied")
	}
}

func TestValidateBonesMissing(t *testing.T) {
	doc := &Document{}
	doc.ApplyHumanoid(&humanoid.Rig{Humanoid: true})
	err := doc.ValidateBones()
	if !errors.Is(err, humanoid.ErrMissingBones) {
		t.Error("expected missing bones", err)
	}
	if len(doc.MissingBones()) != len(humanoid.RequiredBones) {
		t.Error(doc.MissingBones())
	}
}

func TestWriteRig(t *testing.T) {
	rig, nodes := testRig(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "hero.glb")
	if err := gltf.SaveBinary(&gltf.Document{Asset: gltf.Asset{Version: "2.0"}, Nodes: nodes}, src); err != nil {
		t.Fatal(err)
	}
	if err := (RigWriter{}).WriteRig(src, rig, nil); err != nil {
		t.Fatal(err)
	}
	out, err := gltf.Open(OutputPath(src))
	if err != nil {
		t.Fatal(err)
	}
	ext, ok := out.Extensions[ExtensionName].(*VRM)
	if !ok {
		t.Fatal("VRM extension not found")
	}
	if ext.Meta.Title != "hero" || len(ext.Humanoid.Bones) != len(rig.Bones) {
		t.Error("unexpected extension", ext.Meta.Title, len(ext.Humanoid.Bones))
	}
	if OutputPath("a/b.vrm") != "a/b_humanoid.vrm" {
		t.Error(OutputPath("a/b.vrm"))
	}
}
