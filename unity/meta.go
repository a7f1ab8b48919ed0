package unity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v2"
)

type Ref struct {
	FileID int64  `yaml:"fileID"`
	GUID   string `yaml:"guid,omitempty"`
	Type   int    `yaml:"type,omitempty"`
}

func (r *Ref) IsValid() bool {
	return r != nil && r.FileID != 0
}

// Main object file ids of imported and native assets.
const (
	TextureFileID  = 2800000
	MaterialFileID = 2100000
	PrefabFileID   = 100100000
)

// NewGUID returns a random asset GUID in Unity's 32 hex digit form.
func NewGUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Meta is the content of an asset's .meta file. Keys this package does not
// know are kept in their original order.
type Meta struct {
	Path string
	doc  yaml.MapSlice
}

func metaPath(assetPath string) string {
	return assetPath + ".meta"
}

// ReadMeta loads the .meta file of an asset, or returns a fresh one with a
// new GUID when none exists.
func ReadMeta(assetPath string) (*Meta, error) {
	m := &Meta{Path: metaPath(assetPath)}
	b, err := os.ReadFile(m.Path)
	if errors.Is(err, fs.ErrNotExist) {
		m.doc = yaml.MapSlice{
			{Key: "fileFormatVersion", Value: 2},
			{Key: "guid", Value: NewGUID()},
		}
		key, importer := defaultImporter(assetPath)
		m.Set(key, importer)
		return m, nil
	} else if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, &m.doc); err != nil {
		return nil, err
	}
	if m.GUID() == "" {
		m.Set("guid", NewGUID())
	}
	return m, nil
}

func (m *Meta) GUID() string {
	s, _ := m.Get("guid").(string)
	return s
}

func (m *Meta) Get(key string) interface{} {
	for _, it := range m.doc {
		if it.Key == key {
			return it.Value
		}
	}
	return nil
}

func (m *Meta) Set(key string, v interface{}) {
	m.doc = setKey(m.doc, key, v)
}

// Importer returns an importer section as an ordered mapping. Nested
// sections read from disk come back from yaml.v2 as plain maps and are
// returned with sorted keys.
func (m *Meta) Importer(key string) yaml.MapSlice {
	switch v := m.Get(key).(type) {
	case yaml.MapSlice:
		return v
	case map[interface{}]interface{}:
		ms := make(yaml.MapSlice, 0, len(v))
		for k, val := range v {
			ms = append(ms, yaml.MapItem{Key: k, Value: val})
		}
		sort.Slice(ms, func(i, j int) bool { return fmt.Sprint(ms[i].Key) < fmt.Sprint(ms[j].Key) })
		return ms
	}
	return nil
}

func (m *Meta) Save() error {
	b, err := yaml.Marshal(m.doc)
	if err != nil {
		return err
	}
	return os.WriteFile(m.Path, b, 0644)
}

func setKey(ms yaml.MapSlice, key string, v interface{}) yaml.MapSlice {
	for i, it := range ms {
		if it.Key == key {
			ms[i].Value = v
			return ms
		}
	}
	return append(ms, yaml.MapItem{Key: key, Value: v})
}

func nativeImporter(mainObjectFileID int64) yaml.MapSlice {
	return yaml.MapSlice{
		{Key: "externalObjects", Value: yaml.MapSlice{}},
		{Key: "mainObjectFileID", Value: mainObjectFileID},
		{Key: "userData", Value: ""},
		{Key: "assetBundleName", Value: ""},
		{Key: "assetBundleVariant", Value: ""},
	}
}

func defaultImporter(assetPath string) (string, yaml.MapSlice) {
	switch strings.ToLower(filepath.Ext(assetPath)) {
	case ".mat":
		return "NativeFormatImporter", nativeImporter(MaterialFileID)
	case ".prefab":
		return "PrefabImporter", yaml.MapSlice{
			{Key: "externalObjects", Value: yaml.MapSlice{}},
			{Key: "userData", Value: ""},
			{Key: "assetBundleName", Value: ""},
			{Key: "assetBundleVariant", Value: ""},
		}
	case ".fbx", ".glb", ".gltf", ".vrm":
		return "ModelImporter", yaml.MapSlice{{Key: "serializedVersion", Value: 19301}}
	case ".png", ".jpg", ".jpeg", ".tga", ".bmp", ".tif", ".tiff", ".psd", ".gif":
		return "TextureImporter", yaml.MapSlice{{Key: "serializedVersion", Value: 11}}
	}
	return "DefaultImporter", yaml.MapSlice{
		{Key: "externalObjects", Value: yaml.MapSlice{}},
		{Key: "userData", Value: ""},
	}
}

// AssetDB maps asset paths to GUIDs through their .meta files.
type AssetDB struct {
	mu     sync.Mutex
	byPath map[string]string
	byGUID map[string]string
}

func NewAssetDB() *AssetDB {
	return &AssetDB{byPath: map[string]string{}, byGUID: map[string]string{}}
}

// ScanAssets indexes every .meta file below dir.
func ScanAssets(dir string) (*AssetDB, error) {
	db := NewAssetDB()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".meta") {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var meta struct {
			GUID string `yaml:"guid"`
		}
		if err := yaml.Unmarshal(b, &meta); err != nil {
			log.Debug("Skip broken meta file", "path", path, "err", err)
			return nil
		}
		if meta.GUID != "" {
			db.add(strings.TrimSuffix(path, ".meta"), meta.GUID)
		}
		return nil
	})
	return db, err
}

func (db *AssetDB) add(path, guid string) {
	path = filepath.Clean(path)
	db.byPath[path] = guid
	db.byGUID[guid] = path
}

// GUID returns the GUID of an asset, writing a new .meta file for assets
// that do not have one yet.
func (db *AssetDB) GUID(path string) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if guid, ok := db.byPath[filepath.Clean(path)]; ok {
		return guid, nil
	}
	meta, err := ReadMeta(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(meta.Path); errors.Is(err, fs.ErrNotExist) {
		if err := meta.Save(); err != nil {
			return "", err
		}
	}
	db.add(path, meta.GUID())
	return meta.GUID(), nil
}

func (db *AssetDB) Path(guid string) (string, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.byGUID[guid]
	return p, ok
}
