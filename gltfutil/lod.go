// Package gltfutil edits glTF documents produced for character models.
package gltfutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/binzume/autosetup/geom"
	"github.com/binzume/autosetup/lod"
	"github.com/charmbracelet/log"
	"github.com/qmuntal/gltf"
)

const (
	LODExtensionName    = "MSFT_lod"
	ScreenCoverageExtra = "MSFT_screencoverage"
)

// LODExtension is the MSFT_lod node extension.
type LODExtension struct {
	IDs []uint32 `json:"ids"`
}

func isExtensionUsed(doc *gltf.Document, name string) bool {
	for _, ex := range doc.ExtensionsUsed {
		if ex == name {
			return true
		}
	}
	return false
}

type hierarchy struct {
	doc     *gltf.Document
	parents []int
}

func newHierarchy(doc *gltf.Document) *hierarchy {
	h := &hierarchy{doc: doc, parents: make([]int, len(doc.Nodes))}
	for i := range h.parents {
		h.parents[i] = -1
	}
	for i, n := range doc.Nodes {
		for _, c := range n.Children {
			h.parents[c] = i
		}
	}
	return h
}

func (h *hierarchy) path(i int) string {
	if h.parents[i] < 0 {
		return h.doc.Nodes[i].Name
	}
	return h.path(h.parents[i]) + "/" + h.doc.Nodes[i].Name
}

func (h *hierarchy) world(i int) *geom.Matrix4 {
	n := h.doc.Nodes[i]
	var m *geom.Matrix4
	if mat := n.MatrixOrDefault(); mat != gltf.DefaultMatrix {
		m = geom.NewMatrix4FromSlice(mat[:])
	} else {
		m = geom.NewTRSMatrix4(
			geom.NewVector3FromArray(n.TranslationOrDefault()),
			geom.NewQuaternionFromArray(n.RotationOrDefault()),
			geom.NewVector3FromArray(n.ScaleOrDefault()))
	}
	if h.parents[i] < 0 {
		return m
	}
	return h.world(h.parents[i]).Mul(m)
}

func removeIndex(s []uint32, v uint32) []uint32 {
	r := s[:0]
	for _, x := range s {
		if x != v {
			r = append(r, x)
		}
	}
	return r
}

// ApplyLODs regroups the renderers of each level under a new node and
// links the levels with MSFT_lod. Renderers keep their world transform.
// Only the level 0 node stays in the scene.
func ApplyLODs(doc *gltf.Document, group *lod.Group) error {
	if group == nil || len(group.Levels) < 2 {
		return nil
	}
	h := newHierarchy(doc)
	byPath := map[string]int{}
	for i := range doc.Nodes {
		byPath[h.path(i)] = i
	}

	// World transforms are taken before any node is moved, since a renderer
	// may sit below another renderer of the group.
	worlds := map[int]*geom.Matrix4{}
	for _, l := range group.Levels {
		for _, r := range l.Renderers {
			i, ok := byPath[r.Path]
			if !ok {
				return fmt.Errorf("renderer node not found: %s", r.Path)
			}
			worlds[i] = h.world(i)
		}
	}

	var levelNodes []uint32
	var coverage []float32
	for li, l := range group.Levels {
		levelNode := &gltf.Node{Name: fmt.Sprintf("LOD%d", li)}
		for _, r := range l.Renderers {
			i := byPath[r.Path]
			n := doc.Nodes[i]
			copy(n.Matrix[:], worlds[i][:])
			n.Translation, n.Rotation, n.Scale = [3]float32{}, gltf.DefaultRotation, gltf.DefaultScale
			if p := h.parents[i]; p >= 0 {
				doc.Nodes[p].Children = removeIndex(doc.Nodes[p].Children, uint32(i))
			}
			for _, s := range doc.Scenes {
				s.Nodes = removeIndex(s.Nodes, uint32(i))
			}
			levelNode.Children = append(levelNode.Children, uint32(i))
		}
		doc.Nodes = append(doc.Nodes, levelNode)
		levelNodes = append(levelNodes, uint32(len(doc.Nodes)-1))
		coverage = append(coverage, l.Height)
	}

	root := doc.Nodes[levelNodes[0]]
	root.Extensions = gltf.Extensions{LODExtensionName: &LODExtension{IDs: levelNodes[1:]}}
	root.Extras = map[string]interface{}{ScreenCoverageExtra: coverage}
	if len(doc.Scenes) == 0 {
		doc.Scenes = []*gltf.Scene{{}}
		doc.Scene = gltf.Index(0)
	}
	for _, s := range doc.Scenes {
		s.Nodes = append(s.Nodes, levelNodes[0])
	}
	if !isExtensionUsed(doc, LODExtensionName) {
		doc.ExtensionsUsed = append(doc.ExtensionsUsed, LODExtensionName)
	}
	return nil
}

// LODWriter writes LOD-grouped copies of glTF models.
type LODWriter struct{}

// WritePrefab saves the model as a .glb at path with its extension
// replaced. A nil or single-level group copies the model unchanged.
func (LODWriter) WritePrefab(path, modelPath string, group *lod.Group) error {
	doc, err := gltf.Open(modelPath)
	if err != nil {
		return err
	}
	if err := ApplyLODs(doc, group); err != nil {
		return err
	}
	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".glb"
	if err := gltf.SaveBinary(doc, out); err != nil {
		return err
	}
	log.Debug("glTF written", "path", out)
	return nil
}
