package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const noQuillTomlMessage = "no quill.toml found\nplease pass snapshot files or directories explicitly, e.g.:\n  quill gen build/snapshots"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Gen     genConfig     `toml:"gen"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type genConfig struct {
	// Src is the directory scanned for snapshots, relative to the
	// manifest.
	Src string `toml:"src"`
	// Out is the output directory for generated Java, relative to the
	// manifest.
	Out string `toml:"out"`
	// Check runs the Java syntax checker over every generated file.
	Check bool `toml:"check"`
}

func findQuillToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "quill.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findQuillToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package] section", path)
	}
	if cfg.Package.Name == "" {
		return projectConfig{}, fmt.Errorf("%s: package.name must not be empty", path)
	}
	if cfg.Gen.Src == "" {
		cfg.Gen.Src = "snapshots"
	}
	if cfg.Gen.Out == "" {
		cfg.Gen.Out = "gen"
	}
	return cfg, nil
}

// resolveManifestGen turns manifest-relative paths into absolute ones.
func resolveManifestGen(m *projectManifest) (src, out string) {
	src = m.Config.Gen.Src
	if !filepath.IsAbs(src) {
		src = filepath.Join(m.Root, src)
	}
	out = m.Config.Gen.Out
	if !filepath.IsAbs(out) {
		out = filepath.Join(m.Root, out)
	}
	return src, out
}
