package asset

import (
	"bufio"
	"bytes"
	"io"

	"github.com/binzume/autosetup/geom"
	"github.com/binzume/autosetup/lod"
)

func parseFBX(r io.Reader) (*fbxNode, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(fbxBinaryMagic))
	if bytes.Equal(head, []byte(fbxBinaryMagic)) {
		p := binaryParser{r: &positionReader{r: br}}
		return p.Parse()
	}
	p := textParser{r: br}
	return p.Parse()
}

type fbxObject struct {
	node     *fbxNode
	id       int64
	name     string
	kind     string
	parent   *fbxObject
	children []*fbxObject
}

func (o *fbxObject) path() string {
	if o.parent == nil || o.parent.node.Name != "Model" {
		return o.name
	}
	return o.parent.path() + "/" + o.name
}

// property70 returns the values of a "P" entry in Properties70.
func (o *fbxObject) property70(name string) *fbxNode {
	for _, p := range o.node.child("Properties70").children() {
		if p.propString(0) == name {
			return p
		}
	}
	return nil
}

func (o *fbxObject) vec3(name string, def float64) *geom.Vector3 {
	p := o.property70(name)
	return geom.NewVector3(
		geom.Element(p.propFloat(4, def)),
		geom.Element(p.propFloat(5, def)),
		geom.Element(p.propFloat(6, def)))
}

// localMatrix approximates the FBX transform as T * Rpre * R * S.
func (o *fbxObject) localMatrix() *geom.Matrix4 {
	t := o.vec3("Lcl Translation", 0)
	r := o.vec3("Lcl Rotation", 0)
	pre := o.vec3("PreRotation", 0)
	s := o.vec3("Lcl Scaling", 1)
	q := geom.NewQuaternionFromEulerXYZ(pre.X, pre.Y, pre.Z).Mul(geom.NewQuaternionFromEulerXYZ(r.X, r.Y, r.Z))
	return geom.NewTRSMatrix4(t, q, s)
}

func (o *fbxObject) worldMatrix() *geom.Matrix4 {
	if o.parent == nil || o.parent.node.Name != "Model" {
		return o.localMatrix()
	}
	return o.parent.worldMatrix().Mul(o.localMatrix())
}

func (o *fbxObject) childrenOf(nodeName string) []*fbxObject {
	var r []*fbxObject
	for _, c := range o.children {
		if c.node.Name == nodeName {
			r = append(r, c)
		}
	}
	return r
}

// sceneFromFBX extracts the parts of an FBX document the import pipeline
// needs. Lengths are converted to meters.
func sceneFromFBX(root *fbxNode) *Model {
	model := &Model{}
	unitScale := 1.0
	for _, p := range root.child("GlobalSettings").child("Properties70").children() {
		if p.propString(0) == "UnitScaleFactor" {
			unitScale = p.propFloat(4, 1)
		}
	}

	objects := map[int64]*fbxObject{}
	var ordered []*fbxObject
	for _, n := range root.child("Objects").children() {
		o := &fbxObject{node: n, id: n.propInt(0), name: objectName(n.propString(1)), kind: n.propString(2)}
		objects[o.id] = o
		ordered = append(ordered, o)
	}
	for _, c := range root.child("Connections").children() {
		if c.Name != "C" || c.propString(0) != "OO" {
			continue
		}
		child, parent := objects[c.propInt(1)], objects[c.propInt(2)]
		if child == nil || parent == nil {
			continue
		}
		if child.node.Name == "Model" && parent.node.Name == "Model" {
			child.parent = parent
		}
		parent.children = append(parent.children, child)
	}

	scale := geom.Element(unitScale / 100)
	toMeters := geom.NewScaleMatrix4(scale, scale, scale)
	for _, o := range ordered {
		switch o.node.Name {
		case "Model":
			if o.parent == nil {
				model.Roots = append(model.Roots, o.name)
			}
			if o.kind == "Mesh" {
				model.Renderers = append(model.Renderers, fbxRenderer(o, toMeters))
			} else {
				model.Joints = append(model.Joints, o.name)
			}
		case "Material":
			model.Materials = append(model.Materials, o.name)
		case "AnimationStack":
			model.Clips = append(model.Clips, o.name)
		}
	}
	return model
}

func fbxRenderer(o *fbxObject, toMeters *geom.Matrix4) *lod.Renderer {
	r := &lod.Renderer{Name: o.name, Path: o.path()}
	world := toMeters.Mul(o.worldMatrix())
	for _, g := range o.childrenOf("Geometry") {
		var local geom.Box
		v := g.node.child("Vertices").propFloats(0)
		for i := 0; i+2 < len(v); i += 3 {
			local = local.AddPoint(geom.NewVector3(geom.Element(v[i]), geom.Element(v[i+1]), geom.Element(v[i+2])))
		}
		r.Bounds = r.Bounds.Union(local.Transform(world))
		for _, d := range g.childrenOf("Deformer") {
			if d.kind == "Skin" {
				r.Skinned = true
			}
		}
	}
	return r
}
