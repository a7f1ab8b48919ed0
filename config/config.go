// Package config loads the auto-setup settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/binzume/autosetup/material"
	"github.com/binzume/autosetup/metadata"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// Backend is legacy, urp, hdrp or auto. auto reads Manifest.
	Backend  string `toml:"backend"`
	Manifest string `toml:"manifest"`

	// ResourceDir holds skin detail textures.
	ResourceDir string `toml:"resource_dir"`
	SkinPreset  string `toml:"skin_preset"`
	RulesFile   string `toml:"rules_file"`
	AssetsDir   string `toml:"assets_dir"`

	ExpectedVersion string `toml:"expected_version"`

	MaterialsDir string `toml:"materials_dir"`
	PrefabsDir   string `toml:"prefabs_dir"`

	LogLevel string `toml:"log_level"`
}

func Default() Config {
	return Config{
		Backend:         "auto",
		Manifest:        filepath.Join("Packages", "manifest.json"),
		ExpectedVersion: metadata.DefaultVersion.String(),
		MaterialsDir:    "Materials",
		PrefabsDir:      "Prefabs",
		LogLevel:        "info",
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds command line values that override the file.
type Flags struct {
	Backend  string
	LogLevel string
}

func (c *Config) Resolve(flags Flags) {
	if flags.Backend != "" {
		c.Backend = flags.Backend
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if c.MaterialsDir == "" {
		c.MaterialsDir = "Materials"
	}
	if c.PrefabsDir == "" {
		c.PrefabsDir = "Prefabs"
	}
}

func (c *Config) Validate() error {
	if c.Backend != "auto" {
		if _, err := material.ParseBackend(c.Backend); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if _, err := c.Version(); err != nil {
		return fmt.Errorf("config: expected_version: %w", err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

// Version parses ExpectedVersion, given as "major.minor".
func (c *Config) Version() (metadata.Version, error) {
	var v metadata.Version
	if _, err := fmt.Sscanf(c.ExpectedVersion, "%d.%d", &v.Major, &v.Minor); err != nil {
		return v, err
	}
	return v, nil
}

// BackendKind returns the configured backend, detecting it from the
// package manifest in auto mode.
func (c *Config) BackendKind() (material.BackendKind, error) {
	if c.Backend == "auto" {
		return material.DetectBackend(c.Manifest)
	}
	return material.ParseBackend(c.Backend)
}
