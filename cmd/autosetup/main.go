package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/binzume/autosetup/asset"
	"github.com/binzume/autosetup/config"
	"github.com/binzume/autosetup/gltfutil"
	"github.com/binzume/autosetup/humanoid"
	"github.com/binzume/autosetup/material"
	"github.com/binzume/autosetup/pipeline"
	"github.com/binzume/autosetup/texture"
	"github.com/binzume/autosetup/unity"
	"github.com/binzume/autosetup/vrm"
	"github.com/charmbracelet/log"
)

func setupLogger(level string) {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "autosetup",
	})
	if lv, err := log.ParseLevel(level); err == nil {
		l.SetLevel(lv)
	}
	log.SetDefault(l)
}

func loadRules(path string) (*material.Rules, error) {
	if path == "" {
		return material.DefaultRules(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return material.LoadRules(f)
}

func newImporter(cfg *config.Config) (gltfImporter, fbxImporter *pipeline.Importer, err error) {
	kind, err := cfg.BackendKind()
	if err != nil {
		return nil, nil, err
	}
	version, err := cfg.Version()
	if err != nil {
		return nil, nil, err
	}
	assets := unity.NewAssetDB()
	if cfg.AssetsDir != "" {
		if assets, err = unity.ScanAssets(cfg.AssetsDir); err != nil {
			return nil, nil, err
		}
	}
	shaders := unity.NewShaderRegistry(kind)
	rules, err := loadRules(cfg.RulesFile)
	if err != nil {
		return nil, nil, err
	}
	resolver := &material.Resolver{
		Backend:     material.NewBackend(kind),
		Shaders:     shaders,
		Probe:       texture.OSProbe{},
		Rules:       rules,
		ResourceDir: cfg.ResourceDir,
	}
	if cfg.SkinPreset != "" {
		if resolver.SkinPreset, err = unity.LoadMaterial(cfg.SkinPreset, shaders, assets); err != nil {
			log.Warn("Skin preset not loaded", "path", cfg.SkinPreset, "err", err)
		}
	}
	log.Info("Backend", "kind", kind, "shader", resolver.Backend.ShaderName())

	loader := asset.NewLoader()
	avatars := unity.NewAvatarWriter(assets)
	base := pipeline.Importer{
		Metadata:        pipeline.FileMetadata{},
		Skeletons:       loader,
		Models:          loader,
		Rigs:            humanoid.Builder{},
		Resolver:        resolver,
		Materials:       unity.NewMaterialStore(assets),
		Textures:        unity.NewTextureMetaWriter(assets),
		Hints:           texture.NewCache(),
		ExpectedVersion: version,
		MaterialsDir:    cfg.MaterialsDir,
		PrefabsDir:      cfg.PrefabsDir,
	}

	fbx := base
	fbx.RigWriter = avatars
	fbx.Remapper = avatars
	fbx.Prefabs = unity.NewPrefabWriter(assets)

	gl := base
	gl.RigWriter = vrm.RigWriter{}
	gl.Prefabs = gltfutil.LODWriter{}
	return &gl, &fbx, nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] model.fbx [model2.fbx ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	confFile := flag.String("config", "", "config file (.toml)")
	backend := flag.String("backend", "", "legacy, urp, hdrp or auto")
	force := flag.Bool("force", false, "reprocess models imported before")
	logLevel := flag.String("loglevel", "", "debug, info, warn or error")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *confFile != "" {
		var err error
		if cfg, err = config.Load(*confFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{Backend: *backend, LogLevel: *logLevel})
	setupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config", "err", err)
	}

	gltfImporter, fbxImporter, err := newImporter(&cfg)
	if err != nil {
		log.Fatal("Setup failed", "err", err)
	}

	processed := pipeline.NewProcessed()
	failed := 0
	for _, path := range flag.Args() {
		if !asset.IsModelPath(path) {
			log.Warn("Not a model file", "path", path)
			continue
		}
		im := fbxImporter
		if !strings.EqualFold(filepath.Ext(path), ".fbx") {
			im = gltfImporter
		}
		res, err := im.Import(pipeline.Job{ModelPath: path, Force: *force}, processed)
		if err != nil {
			log.Error("Import failed", "model", path, "err", err)
			failed++
			continue
		}
		if !res.Skipped {
			log.Info("Imported", "model", path, "generation", res.Generation,
				"materials", len(res.Materials), "prefab", res.PrefabPath)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
