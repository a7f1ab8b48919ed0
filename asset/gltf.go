package asset

import (
	"github.com/binzume/autosetup/geom"
	"github.com/binzume/autosetup/lod"
	"github.com/qmuntal/gltf"
)

func nodeMatrix(n *gltf.Node) *geom.Matrix4 {
	if m := n.MatrixOrDefault(); m != gltf.DefaultMatrix {
		return geom.NewMatrix4FromSlice(m[:])
	}
	return geom.NewTRSMatrix4(
		geom.NewVector3FromArray(n.TranslationOrDefault()),
		geom.NewQuaternionFromArray(n.RotationOrDefault()),
		geom.NewVector3FromArray(n.ScaleOrDefault()))
}

// sceneFromGLTF walks the node hierarchy of a glTF document. Renderer
// bounds come from the POSITION accessor min/max of each primitive.
func sceneFromGLTF(doc *gltf.Document) *Model {
	model := &Model{}
	parents := make([]int, len(doc.Nodes))
	for i := range parents {
		parents[i] = -1
	}
	for i, n := range doc.Nodes {
		for _, c := range n.Children {
			parents[c] = i
		}
	}

	var path func(i int) string
	path = func(i int) string {
		if parents[i] < 0 {
			return doc.Nodes[i].Name
		}
		return path(parents[i]) + "/" + doc.Nodes[i].Name
	}
	var world func(i int) *geom.Matrix4
	world = func(i int) *geom.Matrix4 {
		if parents[i] < 0 {
			return nodeMatrix(doc.Nodes[i])
		}
		return world(parents[i]).Mul(nodeMatrix(doc.Nodes[i]))
	}

	for i, n := range doc.Nodes {
		if parents[i] < 0 {
			model.Roots = append(model.Roots, n.Name)
		}
		if n.Mesh == nil || int(*n.Mesh) >= len(doc.Meshes) {
			model.Joints = append(model.Joints, n.Name)
			continue
		}
		mesh := doc.Meshes[*n.Mesh]
		r := &lod.Renderer{Name: n.Name, Path: path(i), Skinned: n.Skin != nil}
		if r.Name == "" {
			r.Name = mesh.Name
		}
		m := world(i)
		for _, p := range mesh.Primitives {
			idx, ok := p.Attributes[gltf.POSITION]
			if !ok || int(idx) >= len(doc.Accessors) {
				continue
			}
			acc := doc.Accessors[idx]
			if len(acc.Min) < 3 || len(acc.Max) < 3 {
				continue
			}
			b := geom.NewBox(geom.NewVector3FromSlice(acc.Min), geom.NewVector3FromSlice(acc.Max))
			r.Bounds = r.Bounds.Union(b.Transform(m))
		}
		model.Renderers = append(model.Renderers, r)
	}
	for _, mat := range doc.Materials {
		model.Materials = append(model.Materials, mat.Name)
	}
	for _, a := range doc.Animations {
		model.Clips = append(model.Clips, a.Name)
	}
	return model
}
