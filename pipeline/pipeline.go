// Package pipeline runs the character auto-setup steps for one imported
// model and hands the results to the artifact writers.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/binzume/autosetup/asset"
	"github.com/binzume/autosetup/generation"
	"github.com/binzume/autosetup/humanoid"
	"github.com/binzume/autosetup/lod"
	"github.com/binzume/autosetup/material"
	"github.com/binzume/autosetup/metadata"
	"github.com/binzume/autosetup/texture"
	"github.com/charmbracelet/log"
)

type MetadataSource interface {
	ReadMetadata(path string) (*metadata.Node, error)
}

// SkeletonSource returns the joint names of a model, or nil when the model
// has no readable skeleton.
type SkeletonSource interface {
	JointNames(modelPath string) []string
}

type ModelSource interface {
	LoadModel(path string) (*asset.Model, error)
}

type RigBuilder interface {
	Build(m humanoid.BoneMap, d humanoid.RigDefaults, joints []string) (*humanoid.Rig, error)
}

type RigWriter interface {
	WriteRig(modelPath string, rig *humanoid.Rig, clips []humanoid.Clip) error
}

// MaterialStore persists a material under dir and returns its path.
type MaterialStore interface {
	Save(dir string, m *material.Material) (string, error)
}

// MaterialRemapper points the model's embedded materials at saved ones.
type MaterialRemapper interface {
	RemapMaterials(modelPath string, materials map[string]string) error
}

type PrefabWriter interface {
	WritePrefab(path, modelPath string, group *lod.Group) error
}

type TextureImporter interface {
	WriteTextureMeta(path string, hint texture.ImportHint) error
}

type TextureHinter interface {
	HintFile(path string) texture.ImportHint
}

// FileMetadata reads metadata documents from disk.
type FileMetadata struct{}

func (FileMetadata) ReadMetadata(path string) (*metadata.Node, error) {
	return metadata.ReadFile(path)
}

// Processed holds the models that completed an import. It is owned by the
// caller and shared across Import calls.
type Processed struct {
	mu    sync.Mutex
	names map[string]bool
}

func NewProcessed() *Processed {
	return &Processed{names: map[string]bool{}}
}

func (p *Processed) Has(path string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.names[filepath.Clean(path)]
}

func (p *Processed) Add(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.names[filepath.Clean(path)] = true
}

func (p *Processed) Remove(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.names, filepath.Clean(path))
}

func (p *Processed) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.names)
}

type Job struct {
	ModelPath string
	// MetadataPath defaults to the model path with a .json extension.
	MetadataPath string
	// Force reprocesses a model that is already in the processed set.
	Force bool
}

// IsMotion reports whether the model only carries animation.
func IsMotion(modelPath string) bool {
	return strings.Contains(baseName(modelPath), "_Motion")
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// MetadataPath returns the metadata document exported next to a model.
func MetadataPath(modelPath string) string {
	return strings.TrimSuffix(modelPath, filepath.Ext(modelPath)) + ".json"
}

type Result struct {
	ModelPath  string
	Skipped    bool
	Generation generation.Label
	Rig        *humanoid.Rig
	// RigError is set when the humanoid rig could not be built and a
	// generic rig was used instead.
	RigError      error
	Clips         []humanoid.Clip
	Materials     []*material.Material
	MaterialPaths map[string]string
	LOD           *lod.Group
	PrefabPath    string
	Textures      []string
}

type Importer struct {
	Metadata  MetadataSource
	Skeletons SkeletonSource
	Models    ModelSource
	Rigs      RigBuilder
	RigWriter RigWriter
	Resolver  *material.Resolver
	Materials MaterialStore
	Remapper  MaterialRemapper
	Prefabs   PrefabWriter
	Textures  TextureImporter
	Hints     TextureHinter

	ExpectedVersion metadata.Version
	// MaterialsDir and PrefabsDir are relative to the model directory.
	MaterialsDir string
	PrefabsDir   string
}

// Import sets up one model. Only malformed metadata, a missing shader and
// writer failures are returned as errors.
func (im *Importer) Import(job Job, processed *Processed) (*Result, error) {
	path := job.ModelPath
	res := &Result{ModelPath: path}
	if processed != nil && processed.Has(path) && !job.Force {
		log.Debug("Already processed", "model", path)
		res.Skipped = true
		return res, nil
	}
	motion := IsMotion(path)

	metaPath := job.MetadataPath
	if metaPath == "" {
		metaPath = MetadataPath(path)
	}
	doc, err := im.readMetadata(metaPath)
	if err != nil {
		return nil, err
	}
	if doc == nil && !motion {
		log.Info("No metadata, skipped", "model", path)
		res.Skipped = true
		return res, nil
	}
	if doc != nil {
		if err := metadata.CheckVersion(doc, im.ExpectedVersion); err != nil {
			log.Warn("Metadata version", "model", path, "err", err)
		}
	}

	model, err := im.Models.LoadModel(path)
	if err != nil {
		return nil, err
	}
	joints := im.Skeletons.JointNames(path)
	switch {
	case joints == nil:
		res.Generation = generation.Classify(doc, nil)
	case generation.IsAvatar(model.Roots):
		res.Generation = generation.Classify(doc, joints)
	default:
		res.Generation = generation.Unknown
	}
	log.Info("Importing", "model", path, "generation", res.Generation)

	res.Clips = humanoid.ClipSettings(model.Clips)
	res.Rig, res.RigError = im.buildRig(res.Generation, joints)
	if im.RigWriter != nil {
		if err := im.RigWriter.WriteRig(path, res.Rig, res.Clips); err != nil {
			return nil, fmt.Errorf("rig %s: %w", path, err)
		}
	}

	if !motion {
		if err := im.importMaterials(res, model, doc); err != nil {
			return nil, err
		}
		if err := im.writePrefab(res, model); err != nil {
			return nil, err
		}
		im.importTextures(res)
	}
	if processed != nil {
		processed.Add(path)
	}
	return res, nil
}

func (im *Importer) readMetadata(path string) (*metadata.Node, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return im.Metadata.ReadMetadata(path)
}

func (im *Importer) buildRig(label generation.Label, joints []string) (*humanoid.Rig, error) {
	m, d, ok := humanoid.Resolve(label)
	if !ok {
		return humanoid.GenericRig(joints), nil
	}
	rig, err := im.Rigs.Build(m, d, joints)
	if err != nil {
		log.Error("Humanoid rig failed, using generic rig", "err", err)
		return humanoid.GenericRig(joints), err
	}
	return rig, nil
}

// MeshesNode returns the mesh section of the metadata for a model.
func MeshesNode(doc *metadata.Node, modelName string) *metadata.Node {
	root := doc.Child(modelName).Child("Object")
	if root.Len() > 0 {
		root = root.First()
	}
	return root.Child("Meshes")
}

func (im *Importer) importMaterials(res *Result, model *asset.Model, doc *metadata.Node) error {
	names := append([]string(nil), model.Materials...)
	sort.Strings(names)
	names = dedup(names)

	dir := filepath.Join(filepath.Dir(res.ModelPath), im.MaterialsDir, baseName(res.ModelPath))
	meshes := MeshesNode(doc, baseName(res.ModelPath))
	ctx := material.Context{
		Generation: res.Generation,
		MultiBase:  material.IsMultiBase(names),
		AssetDir:   filepath.Dir(res.ModelPath),
	}
	res.MaterialPaths = map[string]string{}
	for _, name := range names {
		m := material.New(name)
		if err := im.Resolver.Resolve(m, meshes.Find(name), ctx); err != nil {
			return err
		}
		p, err := im.Materials.Save(dir, m)
		if err != nil {
			return fmt.Errorf("material %s: %w", name, err)
		}
		res.Materials = append(res.Materials, m)
		res.MaterialPaths[name] = p
	}
	if im.Remapper != nil && len(res.MaterialPaths) > 0 {
		if err := im.Remapper.RemapMaterials(res.ModelPath, res.MaterialPaths); err != nil {
			return fmt.Errorf("remap %s: %w", res.ModelPath, err)
		}
	}
	return nil
}

func dedup(sorted []string) []string {
	var r []string
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			r = append(r, s)
		}
	}
	return r
}

func (im *Importer) writePrefab(res *Result, model *asset.Model) error {
	if im.Prefabs == nil {
		return nil
	}
	if lod.IsLODAsset(res.ModelPath) {
		res.LOD = lod.Assemble(model.Renderers)
	}
	dir := filepath.Join(filepath.Dir(res.ModelPath), im.PrefabsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	res.PrefabPath = filepath.Join(dir, baseName(res.ModelPath)+".prefab")
	if err := im.Prefabs.WritePrefab(res.PrefabPath, res.ModelPath, res.LOD); err != nil {
		return fmt.Errorf("prefab %s: %w", res.PrefabPath, err)
	}
	return nil
}

// importTextures writes importer settings for every bound texture.
// Failures only affect import quality and are logged.
func (im *Importer) importTextures(res *Result) {
	seen := map[string]bool{}
	for _, m := range res.Materials {
		for _, slot := range m.TextureNames() {
			if p := m.Textures[slot].Path; p != "" && !seen[p] {
				seen[p] = true
				res.Textures = append(res.Textures, p)
			}
		}
	}
	sort.Strings(res.Textures)
	if im.Textures == nil || im.Hints == nil {
		return
	}
	for _, p := range res.Textures {
		if err := im.Textures.WriteTextureMeta(p, im.Hints.HintFile(p)); err != nil {
			log.Warn("Texture settings not written", "texture", p, "err", err)
		}
	}
}
