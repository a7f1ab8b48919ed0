package asset

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/binzume/autosetup/geom"
	"github.com/qmuntal/gltf"
)

const asciiFBX = `; FBX 7.4.0 project file
FBXHeaderExtension:  {
	FBXVersion: 7400
}
GlobalSettings:  {
	Version: 1000
	Properties70:  {
		P: "UnitScaleFactor", "double", "Number", "",1
	}
}
Objects:  {
	Geometry: 10, "Geometry::Body", "Mesh" {
		Vertices: *6 {
			a: -50,0,-10,50,180,10
		}
	}
	Model: 20, "Model::CC_Base_BoneRoot", "Null" {
	}
	Model: 21, "Model::CC_Base_Hip", "LimbNode" {
		Properties70:  {
			P: "Lcl Translation", "Lcl Translation", "", "A",0,100,0
		}
	}
	Model: 22, "Model::CC_Base_L_Pinky3", "LimbNode" {
	}
	Model: 30, "Model::Body_LOD1", "Mesh" {
		Properties70:  {
			P: "Lcl Translation", "Lcl Translation", "", "A",100,0,0
		}
	}
	Deformer: 40, "Deformer::Skin", "Skin" {
	}
	Material: 50, "Material::Std_Skin_Body", "" {
	}
	AnimationStack: 60, "AnimStack::Take 001", "" {
	}
}
Connections:  {
	C: "OO",20,0
	C: "OO",21,20
	C: "OO",22,21
	C: "OO",30,0
	C: "OO",10,30
	C: "OO",40,10
	C: "OO",50,30
}
`

func TestLoadASCIIFBX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Hero_LOD.fbx")
	os.WriteFile(path, []byte(asciiFBX), 0644)

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m.Joints, []string{"CC_Base_BoneRoot", "CC_Base_Hip", "CC_Base_L_Pinky3"}) {
		t.Error("joints", m.Joints)
	}
	if !reflect.DeepEqual(m.Roots, []string{"CC_Base_BoneRoot", "Body_LOD1"}) {
		t.Error("roots", m.Roots)
	}
	if !reflect.DeepEqual(m.Materials, []string{"Std_Skin_Body"}) || !reflect.DeepEqual(m.Clips, []string{"Take 001"}) {
		t.Error("materials/clips", m.Materials, m.Clips)
	}
	if len(m.Renderers) != 1 {
		t.Fatal("renderers", m.Renderers)
	}
	r := m.Renderers[0]
	if r.Name != "Body_LOD1" || r.Path != "Body_LOD1" || !r.Skinned {
		t.Error("renderer", r)
	}
	// centimeters to meters, offset by the model translation
	want := geom.NewBox(geom.NewVector3(0.5, 0, -0.1), geom.NewVector3(1.5, 1.8, 0.1))
	if r.Bounds.Min.Sub(&want.Min).Len() > 1e-5 || r.Bounds.Max.Sub(&want.Max).Len() > 1e-5 {
		t.Error("bounds", r.Bounds)
	}
}

type binaryWriter struct {
	bytes.Buffer
}

func (w *binaryWriter) put(v interface{}) {
	binary.Write(w, binary.LittleEndian, v)
}

func (w *binaryWriter) node(name string, props []interface{}, children ...func()) {
	start := w.Len()
	w.put(uint32(0)) // end offset, patched below
	w.put(uint32(len(props)))
	w.put(uint32(0))
	w.put(uint8(len(name)))
	w.WriteString(name)
	propStart := w.Len()
	for _, p := range props {
		switch v := p.(type) {
		case int64:
			w.WriteByte('L')
			w.put(v)
		case string:
			w.WriteByte('S')
			w.put(uint32(len(v)))
			w.WriteString(v)
		case []float64:
			var z bytes.Buffer
			zw := zlib.NewWriter(&z)
			binary.Write(zw, binary.LittleEndian, v)
			zw.Close()
			w.WriteByte('d')
			w.put(uint32(len(v)))
			w.put(uint32(1))
			w.put(uint32(z.Len()))
			w.Write(z.Bytes())
		}
	}
	binary.LittleEndian.PutUint32(w.Bytes()[start+8:], uint32(w.Len()-propStart))
	for _, c := range children {
		c()
	}
	if len(children) > 0 {
		w.Write(make([]byte, 13))
	}
	binary.LittleEndian.PutUint32(w.Bytes()[start:], uint32(w.Len()))
}

func TestLoadBinaryFBX(t *testing.T) {
	w := &binaryWriter{}
	w.WriteString(fbxBinaryMagic)
	w.Write([]byte{0x1a, 0})
	w.put(uint32(7400))
	w.node("Objects", nil, func() {
		w.node("Geometry", []interface{}{int64(1), "Body\x00\x01Geometry", "Mesh"}, func() {
			w.node("Vertices", []interface{}{[]float64{0, 0, 0, 100, 200, 50}})
		})
		w.node("Model", []interface{}{int64(2), "Body\x00\x01Model", "Mesh"})
		w.node("Model", []interface{}{int64(3), "pinky_03_l\x00\x01Model", "LimbNode"})
	})
	w.node("Connections", nil, func() {
		w.node("C", []interface{}{"OO", int64(1), int64(2)})
		w.node("C", []interface{}{"OO", int64(2), int64(0)})
	})
	w.Write(make([]byte, 13))

	root, err := parseFBX(bytes.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	m := sceneFromFBX(root)
	if !reflect.DeepEqual(m.Joints, []string{"pinky_03_l"}) {
		t.Error("joints", m.Joints)
	}
	if len(m.Renderers) != 1 || m.Renderers[0].Skinned {
		t.Fatal("renderers", m.Renderers)
	}
	if size := m.Renderers[0].Bounds.Size(); size.Y < 1.99 || size.Y > 2.01 {
		t.Error("bounds", m.Renderers[0].Bounds)
	}
}

func TestLoadGLTF(t *testing.T) {
	doc := &gltf.Document{
		Asset:  gltf.Asset{Version: "2.0"},
		Scenes: []*gltf.Scene{{Nodes: []uint32{0, 2}}},
		Nodes: []*gltf.Node{
			{Name: "Armature", Children: []uint32{1}},
			{Name: "CC_Base_Hip"},
			{Name: "Body", Mesh: gltf.Index(0), Skin: gltf.Index(0), Translation: [3]float32{0, 1, 0}},
		},
		Skins: []*gltf.Skin{{Joints: []uint32{1}}},
		Meshes: []*gltf.Mesh{{Name: "BodyMesh", Primitives: []*gltf.Primitive{
			{Attributes: gltf.Attribute{gltf.POSITION: 0}},
		}}},
		Accessors: []*gltf.Accessor{{
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec3,
			Count:         2,
			Min:           []float32{-1, 0, -1},
			Max:           []float32{1, 2, 1},
		}},
		Materials:  []*gltf.Material{{Name: "Std_Skin_Body"}},
		Animations: []*gltf.Animation{{Name: "Idle_Loop"}},
	}
	path := filepath.Join(t.TempDir(), "hero.gltf")
	if err := gltf.Save(doc, path); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m.Joints, []string{"Armature", "CC_Base_Hip"}) {
		t.Error("joints", m.Joints)
	}
	if !reflect.DeepEqual(m.Roots, []string{"Armature", "Body"}) {
		t.Error("roots", m.Roots)
	}
	if len(m.Renderers) != 1 || !m.Renderers[0].Skinned || m.Renderers[0].Path != "Body" {
		t.Fatal("renderers", m.Renderers)
	}
	b := m.Renderers[0].Bounds
	if b.Min.Y != 1 || b.Max.Y != 3 {
		t.Error("bounds", b)
	}
	if m.Clips[0] != "Idle_Loop" || m.Materials[0] != "Std_Skin_Body" {
		t.Error("clips/materials", m.Clips, m.Materials)
	}
}

func TestLoader(t *testing.T) {
	l := NewLoader()
	if j := l.JointNames(filepath.Join(t.TempDir(), "missing.fbx")); j != nil {
		t.Error("expected no joints", j)
	}
	if _, err := Load("model.obj"); err == nil {
		t.Error("expected error")
	}
}
