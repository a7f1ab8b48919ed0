package unity

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/autosetup/geom"
	"github.com/binzume/autosetup/lod"
	"github.com/charmbracelet/log"
)

// ModelRootFileID is the file id of the root GameObject inside an imported
// model.
const ModelRootFileID = 919132149155446097

// modelObjectFileID derives the file id of an object inside an imported
// model from its class and hierarchy path.
func modelObjectFileID(className, path string) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "Type:%s->//RootNode/%s", className, path)
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

// strippedFileID is the id a prefab instance gives to a source object.
func strippedFileID(instance, source int64) int64 {
	return (instance ^ source) & 0x7fffffffffffffff
}

type modification struct {
	Target          Ref         `yaml:"target,flow"`
	PropertyPath    string      `yaml:"propertyPath"`
	Value           interface{} `yaml:"value"`
	ObjectReference Ref         `yaml:"objectReference,flow"`
}

type addedComponent struct {
	Target      Ref `yaml:"targetCorrespondingSourceObject,flow"`
	InsertIndex int `yaml:"insertIndex"`
	AddedObject Ref `yaml:"addedObject,flow"`
}

type prefabInstance struct {
	ObjectHideFlags   int `yaml:"m_ObjectHideFlags"`
	SerializedVersion int `yaml:"serializedVersion"`
	Modification      struct {
		TransformParent   Ref              `yaml:"m_TransformParent,flow"`
		Modifications     []modification   `yaml:"m_Modifications"`
		RemovedComponents []Ref            `yaml:"m_RemovedComponents"`
		AddedGameObjects  []Ref            `yaml:"m_AddedGameObjects"`
		AddedComponents   []addedComponent `yaml:"m_AddedComponents"`
	} `yaml:"m_Modification"`
	SourcePrefab Ref `yaml:"m_SourcePrefab,flow"`
}

type strippedObject struct {
	CorrespondingSourceObject Ref `yaml:"m_CorrespondingSourceObject,flow"`
	PrefabInstance            Ref `yaml:"m_PrefabInstance,flow"`
	PrefabAsset               Ref `yaml:"m_PrefabAsset,flow"`
}

type lodRenderer struct {
	Renderer Ref `yaml:"renderer,flow"`
}

type lodLevel struct {
	ScreenRelativeHeight float32       `yaml:"screenRelativeHeight"`
	FadeTransitionWidth  float32       `yaml:"fadeTransitionWidth"`
	Renderers            []lodRenderer `yaml:"renderers"`
}

type lodGroup struct {
	ObjectHideFlags           int          `yaml:"m_ObjectHideFlags"`
	CorrespondingSourceObject Ref          `yaml:"m_CorrespondingSourceObject,flow"`
	PrefabInstance            Ref          `yaml:"m_PrefabInstance,flow"`
	PrefabAsset               Ref          `yaml:"m_PrefabAsset,flow"`
	GameObject                Ref          `yaml:"m_GameObject,flow"`
	SerializedVersion         int          `yaml:"serializedVersion"`
	LocalReferencePoint       geom.Vector3 `yaml:"m_LocalReferencePoint,flow"`
	Size                      float32      `yaml:"m_Size"`
	FadeMode                  int          `yaml:"m_FadeMode"`
	AnimateCrossFading        int          `yaml:"m_AnimateCrossFading"`
	LastLODIsBillboard        int          `yaml:"m_LastLODIsBillboard"`
	LODs                      []lodLevel   `yaml:"m_LODs"`
	Enabled                   int          `yaml:"m_Enabled"`
}

// PrefabWriter writes prefab variants of imported models.
type PrefabWriter struct {
	Assets *AssetDB
}

func NewPrefabWriter(assets *AssetDB) *PrefabWriter {
	return &PrefabWriter{Assets: assets}
}

// WritePrefab writes a prefab at path instancing the model. A non-nil
// group adds a LODGroup component to the instance root.
func (w *PrefabWriter) WritePrefab(path, modelPath string, group *lod.Group) error {
	modelGUID, err := w.Assets.GUID(modelPath)
	if err != nil {
		return err
	}
	model := func(fileID int64) Ref { return Ref{FileID: fileID, GUID: modelGUID, Type: 3} }

	const instanceID = PrefabFileID
	rootID := strippedFileID(instanceID, ModelRootFileID)
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	lodGroupID := modelObjectFileID("LODGroup", name)

	inst := &prefabInstance{SerializedVersion: 2, SourcePrefab: model(PrefabFileID)}
	inst.Modification.Modifications = []modification{
		{Target: model(ModelRootFileID), PropertyPath: "m_Name", Value: name},
	}
	inst.Modification.RemovedComponents = []Ref{}
	inst.Modification.AddedGameObjects = []Ref{}
	inst.Modification.AddedComponents = []addedComponent{}

	type stripped struct {
		classID   int
		className string
		id        int64
		obj       strippedObject
	}
	strip := func(classID int, className string, source int64) stripped {
		return stripped{classID, className, strippedFileID(instanceID, source), strippedObject{
			CorrespondingSourceObject: model(source),
			PrefabInstance:            Ref{FileID: instanceID},
		}}
	}
	objects := []stripped{strip(ClassGameObject, "GameObject", ModelRootFileID)}

	var lg *lodGroup
	if group != nil {
		inst.Modification.AddedComponents = append(inst.Modification.AddedComponents, addedComponent{
			Target: model(ModelRootFileID), InsertIndex: -1, AddedObject: Ref{FileID: lodGroupID},
		})
		lg = &lodGroup{GameObject: Ref{FileID: rootID}, SerializedVersion: 2, Enabled: 1}
		if group.Bounds.Valid {
			lg.LocalReferencePoint = *group.Bounds.Center()
			sz := group.Bounds.Size()
			lg.Size = max(sz.X, sz.Y, sz.Z)
		}
		seen := map[int64]bool{}
		for _, l := range group.Levels {
			lv := lodLevel{ScreenRelativeHeight: l.Height, Renderers: []lodRenderer{}}
			for _, r := range l.Renderers {
				classID, className := ClassMeshRenderer, "MeshRenderer"
				if r.Skinned {
					classID, className = ClassSkinnedMeshRenderer, "SkinnedMeshRenderer"
				}
				s := strip(classID, className, modelObjectFileID(className, r.Path))
				if !seen[s.id] {
					seen[s.id] = true
					objects = append(objects, s)
				}
				lv.Renderers = append(lv.Renderers, lodRenderer{Renderer: Ref{FileID: s.id}})
			}
			lg.LODs = append(lg.LODs, lv)
		}
	}

	var buf bytes.Buffer
	d := NewDocumentWriter(&buf)
	d.Write(ClassPrefabInstance, instanceID, "PrefabInstance", inst)
	for _, o := range objects {
		d.WriteStripped(o.classID, o.id, o.className, o.obj)
	}
	if lg != nil {
		d.Write(ClassLODGroup, lodGroupID, "LODGroup", lg)
	}
	if err := d.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return err
	}
	if _, err := w.Assets.GUID(path); err != nil {
		return err
	}
	log.Debug("Prefab saved", "path", path, "lod", group != nil)
	return nil
}
