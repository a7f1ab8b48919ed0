package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/binzume/autosetup/asset"
	"github.com/binzume/autosetup/generation"
	"github.com/binzume/autosetup/geom"
	"github.com/binzume/autosetup/humanoid"
	"github.com/binzume/autosetup/lod"
	"github.com/binzume/autosetup/material"
	"github.com/binzume/autosetup/metadata"
	"github.com/binzume/autosetup/texture"
	"github.com/binzume/autosetup/unity"
)

const heroJSON = `{
  "Hero_LOD": {
    "Version": "1.10.1822.1",
    "Object": {
      "Hero_LOD": {
        "Generation": "RL_CharacterCreator_Base_Std_G3",
        "Meshes": {
          "CC_Base_Body": {
            "Materials": {
              "Std_Skin_Body": {
                "Textures": {
                  "Base Color": {"Texture Path": "./textures/Std_Skin_Body_Diffuse.png"},
                  "Normal": {"Texture Path": "./textures/missing_Normal.png"}
                }
              }
            }
          }
        }
      }
    }
  }
}`

type fakeModels map[string]*asset.Model

func (f fakeModels) LoadModel(path string) (*asset.Model, error) {
	if m, ok := f[filepath.Base(path)]; ok {
		return m, nil
	}
	return nil, asset.ErrUnsupportedFormat
}

func (f fakeModels) JointNames(path string) []string {
	if m, ok := f[filepath.Base(path)]; ok {
		return m.Joints
	}
	return nil
}

type rigCall struct {
	rig   *humanoid.Rig
	clips []humanoid.Clip
}

type fakeRigWriter struct {
	calls []rigCall
}

func (w *fakeRigWriter) WriteRig(modelPath string, rig *humanoid.Rig, clips []humanoid.Clip) error {
	w.calls = append(w.calls, rigCall{rig, clips})
	return nil
}

type fakeStore struct {
	saved map[string]*material.Material
}

func (s *fakeStore) Save(dir string, m *material.Material) (string, error) {
	p := filepath.Join(dir, m.Name+".mat")
	s.saved[p] = m
	return p, nil
}

type fakePrefabs struct {
	groups map[string]*lod.Group
}

func (w *fakePrefabs) WritePrefab(path, modelPath string, group *lod.Group) error {
	w.groups[path] = group
	return nil
}

type fakeTextures struct {
	hints map[string]texture.ImportHint
}

func (w *fakeTextures) WriteTextureMeta(path string, hint texture.ImportHint) error {
	w.hints[path] = hint
	return nil
}

type fakeHints struct{}

func (fakeHints) HintFile(path string) texture.ImportHint { return texture.Hint(path) }

type fixture struct {
	dir      string
	importer *Importer
	rigs     *fakeRigWriter
	store    *fakeStore
	prefabs  *fakePrefabs
	textures *fakeTextures
}

func g3Joints() []string {
	m, _, _ := humanoid.Resolve(generation.G3)
	joints := []string{"CC_Base_BoneRoot"}
	for _, e := range m {
		joints = append(joints, e.Joint)
	}
	return joints
}

func box(h float32) geom.Box {
	return geom.NewBox(geom.NewVector3(-0.5, 0, -0.5), geom.NewVector3(0.5, h, 0.5))
}

func newFixture(t *testing.T, backend material.BackendKind) *fixture {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "textures"), 0755)
	os.WriteFile(filepath.Join(dir, "textures", "Std_Skin_Body_Diffuse.png"), []byte{}, 0644)
	os.WriteFile(filepath.Join(dir, "Hero_LOD.json"), []byte(heroJSON), 0644)

	models := fakeModels{
		"Hero_LOD.fbx": {
			Joints: g3Joints(),
			Roots:  []string{"CC_Base_BoneRoot", "Body_LOD1", "Body_LOD2"},
			Renderers: []*lod.Renderer{
				{Name: "Body_LOD1", Path: "Body_LOD1", Skinned: true, Bounds: box(1.8)},
				{Name: "Body_LOD2", Path: "Body_LOD2", Skinned: true, Bounds: box(1.7)},
			},
			Materials: []string{"Std_Skin_Body", "Std_Eyelash", "Std_Skin_Body"},
			Clips:     []string{"T-Pose", "Idle_Loop"},
		},
		"Hero_Motion.fbx": {
			Joints: g3Joints(),
			Roots:  []string{"CC_Base_BoneRoot"},
			Clips:  []string{"Walk"},
		},
		"Prop.fbx": {
			Joints:    []string{"Box"},
			Roots:     []string{"Box"},
			Materials: []string{"Wood"},
		},
		"Crate.fbx": {
			Joints: []string{"Armature", "root", "Lid"},
			Roots:  []string{"Armature"},
		},
	}
	f := &fixture{
		dir:      dir,
		rigs:     &fakeRigWriter{},
		store:    &fakeStore{saved: map[string]*material.Material{}},
		prefabs:  &fakePrefabs{groups: map[string]*lod.Group{}},
		textures: &fakeTextures{hints: map[string]texture.ImportHint{}},
	}
	f.importer = &Importer{
		Metadata:  FileMetadata{},
		Skeletons: models,
		Models:    models,
		Rigs:      humanoid.Builder{},
		RigWriter: f.rigs,
		Resolver: &material.Resolver{
			Backend: material.NewBackend(backend),
			Shaders: unity.NewShaderRegistry(backend),
			Probe:   texture.OSProbe{},
		},
		Materials:       f.store,
		Prefabs:         f.prefabs,
		Textures:        f.textures,
		Hints:           fakeHints{},
		ExpectedVersion: metadata.DefaultVersion,
		MaterialsDir:    "Materials",
		PrefabsDir:      "Prefabs",
	}
	return f
}

func TestImportCharacter(t *testing.T) {
	f := newFixture(t, material.Legacy)
	processed := NewProcessed()
	res, err := f.importer.Import(Job{ModelPath: filepath.Join(f.dir, "Hero_LOD.fbx")}, processed)
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped || res.Generation != generation.G3 {
		t.Fatal("unexpected result", res.Skipped, res.Generation)
	}
	if res.Rig == nil || !res.Rig.Humanoid || res.RigError != nil {
		t.Error("humanoid rig expected", res.RigError)
	}
	if len(f.rigs.calls) != 1 || len(f.rigs.calls[0].clips) != 1 || !f.rigs.calls[0].clips[0].Loop {
		t.Error("clips", f.rigs.calls)
	}

	if len(res.Materials) != 2 || res.Materials[0].Name != "Std_Eyelash" || res.Materials[1].Name != "Std_Skin_Body" {
		t.Fatal("materials in name order", res.Materials)
	}
	wantMat := filepath.Join(f.dir, "Materials", "Hero_LOD", "Std_Skin_Body.mat")
	if res.MaterialPaths["Std_Skin_Body"] != wantMat || f.store.saved[wantMat] == nil {
		t.Error("material path", res.MaterialPaths)
	}
	skin := res.Materials[1]
	if tex := skin.Textures["_MainTex"]; tex == nil || filepath.Base(tex.Path) != "Std_Skin_Body_Diffuse.png" {
		t.Error("base color not bound", skin.Textures)
	}
	if skin.HasTexture("_BumpMap") {
		t.Error("missing texture must not be bound")
	}

	prefab := filepath.Join(f.dir, "Prefabs", "Hero_LOD.prefab")
	g, ok := f.prefabs.groups[prefab]
	if !ok || res.PrefabPath != prefab {
		t.Fatal("prefab not written", f.prefabs.groups)
	}
	if g == nil || len(g.Levels) != 2 || g.Levels[0].Height != 0.5 || g.Levels[1].Height != lod.LastLevelHeight {
		t.Error("lod group", g)
	}

	if len(res.Textures) != 1 || len(f.textures.hints) != 1 {
		t.Error("texture settings", res.Textures)
	}
	if !processed.Has(res.ModelPath) {
		t.Error("not marked processed")
	}
}

func TestImportSkipsProcessed(t *testing.T) {
	f := newFixture(t, material.Legacy)
	processed := NewProcessed()
	job := Job{ModelPath: filepath.Join(f.dir, "Hero_LOD.fbx")}
	if _, err := f.importer.Import(job, processed); err != nil {
		t.Fatal(err)
	}
	res, err := f.importer.Import(job, processed)
	if err != nil || !res.Skipped {
		t.Error("second import must be skipped", err)
	}
	job.Force = true
	res, err = f.importer.Import(job, processed)
	if err != nil || res.Skipped {
		t.Error("forced import must run", err)
	}
	if len(f.rigs.calls) != 2 {
		t.Error("rig writes", len(f.rigs.calls))
	}
}

func TestImportIdempotent(t *testing.T) {
	f := newFixture(t, material.HDRP)
	job := Job{ModelPath: filepath.Join(f.dir, "Hero_LOD.fbx"), Force: true}
	a, err := f.importer.Import(job, NewProcessed())
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.importer.Import(job, NewProcessed())
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Materials {
		ma, mb := a.Materials[i], b.Materials[i]
		if ma.RenderQueue != mb.RenderQueue || len(ma.Floats) != len(mb.Floats) {
			t.Fatal("materials differ", ma.Name)
		}
		for k, v := range ma.Floats {
			if mb.Floats[k] != v {
				t.Errorf("%s.%s: %v != %v", ma.Name, k, v, mb.Floats[k])
			}
		}
	}
}

func TestImportMotion(t *testing.T) {
	f := newFixture(t, material.Legacy)
	res, err := f.importer.Import(Job{ModelPath: filepath.Join(f.dir, "Hero_Motion.fbx")}, NewProcessed())
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped || res.Generation != generation.G3 {
		t.Fatal("motion asset must be rigged", res.Skipped, res.Generation)
	}
	if len(res.Materials) != 0 || len(f.prefabs.groups) != 0 {
		t.Error("motion asset must not produce materials or prefab")
	}
	if len(f.rigs.calls) != 1 {
		t.Error("rig not written")
	}
}

func TestImportWithoutMetadata(t *testing.T) {
	f := newFixture(t, material.Legacy)
	res, err := f.importer.Import(Job{ModelPath: filepath.Join(f.dir, "Prop.fbx")}, NewProcessed())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Skipped || len(f.rigs.calls) != 0 {
		t.Error("model without metadata must be skipped")
	}
}

func TestImportGenericRig(t *testing.T) {
	f := newFixture(t, material.URP)
	os.WriteFile(filepath.Join(f.dir, "Prop.json"), []byte(`{"Prop":{"Version":"1.10.0.0"}}`), 0644)
	res, err := f.importer.Import(Job{ModelPath: filepath.Join(f.dir, "Prop.fbx")}, NewProcessed())
	if err != nil {
		t.Fatal(err)
	}
	if res.Generation != generation.Unknown || res.Rig.Humanoid {
		t.Error("non-avatar must get a generic rig", res.Generation)
	}
	if res.LOD != nil {
		t.Error("no LOD group expected")
	}
	if len(res.Materials) != 1 || res.Materials[0].Shader.Name != "Universal Render Pipeline/Lit" {
		t.Error("materials", res.Materials)
	}
}

func TestImportNestedRootJoint(t *testing.T) {
	f := newFixture(t, material.Legacy)
	os.WriteFile(filepath.Join(f.dir, "Crate.json"), []byte(`{"Crate":{"Version":"1.10.0.0","Generation":"RL_CC3_Plus"}}`), 0644)
	res, err := f.importer.Import(Job{ModelPath: filepath.Join(f.dir, "Crate.fbx")}, NewProcessed())
	if err != nil {
		t.Fatal(err)
	}
	if res.Generation != generation.Unknown || res.Rig.Humanoid {
		t.Error("a root joint below the top level is not a character rig", res.Generation)
	}
}

func TestImportParseError(t *testing.T) {
	f := newFixture(t, material.Legacy)
	os.WriteFile(filepath.Join(f.dir, "Hero_LOD.json"), []byte(`{"Hero_LOD": [`), 0644)
	_, err := f.importer.Import(Job{ModelPath: filepath.Join(f.dir, "Hero_LOD.fbx")}, NewProcessed())
	if !errors.Is(err, metadata.ErrParse) {
		t.Error("expected parse error", err)
	}
}

type noShaders struct{}

func (noShaders) FindShader(name string) (material.ShaderHandle, error) {
	return material.ShaderHandle{}, material.ErrShaderNotFound
}

func TestImportMissingShader(t *testing.T) {
	f := newFixture(t, material.Legacy)
	f.importer.Resolver.Shaders = noShaders{}
	processed := NewProcessed()
	job := Job{ModelPath: filepath.Join(f.dir, "Hero_LOD.fbx")}
	_, err := f.importer.Import(job, processed)
	if !errors.Is(err, material.ErrShaderNotFound) {
		t.Error("expected missing shader", err)
	}
	if processed.Has(job.ModelPath) || len(f.prefabs.groups) != 0 {
		t.Error("failed import must not complete")
	}
}

func TestMetadataPath(t *testing.T) {
	if p := MetadataPath(filepath.Join("a", "Hero.fbx")); p != filepath.Join("a", "Hero.json") {
		t.Error(p)
	}
	if !IsMotion("chars/Hero_Motion.fbx") || IsMotion("chars/Hero.fbx") {
		t.Error("IsMotion")
	}
}
