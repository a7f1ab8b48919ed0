// Package asset reads the scene structure of character model files: joint
// names, mesh renderers with bounds, material names and animation takes.
package asset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/binzume/autosetup/lod"
	"github.com/charmbracelet/log"
	"github.com/qmuntal/gltf"
)

var ErrUnsupportedFormat = errors.New("unsupported model format")

type Model struct {
	Path   string
	Joints []string
	// Roots are the top-level nodes below the model root, meshes included.
	Roots     []string
	Renderers []*lod.Renderer
	Materials []string
	Clips     []string
}

// IsModelPath reports whether Load understands the file extension.
func IsModelPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fbx", ".glb", ".gltf", ".vrm":
		return true
	}
	return false
}

func Load(path string) (*Model, error) {
	var model *Model
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fbx":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		root, err := parseFBX(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		model = sceneFromFBX(root)
	case ".glb", ".gltf", ".vrm":
		doc, err := gltf.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		model = sceneFromGLTF(doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	model.Path = path
	return model, nil
}

// Loader caches loaded models by path.
type Loader struct {
	mu     sync.Mutex
	models map[string]*Model
}

func NewLoader() *Loader {
	return &Loader{models: map[string]*Model{}}
}

func (l *Loader) LoadModel(path string) (*Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.models[path]; ok {
		return m, nil
	}
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	l.models[path] = m
	return m, nil
}

// JointNames returns the skeleton of a model, or nil when it cannot be
// read.
func (l *Loader) JointNames(path string) []string {
	m, err := l.LoadModel(path)
	if err != nil {
		log.Warn("Cannot read skeleton", "path", path, "err", err)
		return nil
	}
	return m.Joints
}
