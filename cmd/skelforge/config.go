package main

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/skelforge/skelforge/pkg/harness"
)

// ProjectConfig is the optional .skelforge.yaml a project can carry for
// persistent include/exclude globs. Output and Format are parsed but no
// command reads them.
type ProjectConfig struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	Output  string   `yaml:"output"`
	Format  string   `yaml:"format"` // "text" or "json"
}

// loadProjectConfig reads rootDir/.skelforge.yaml, returning nil (no error)
// if the file does not exist.
func loadProjectConfig(rootDir string) (*ProjectConfig, error) {
	path := filepath.Join(rootDir, ".skelforge.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveScanConfig applies the fallback chain: .skelforge.yaml's
// include/exclude replace harness.DefaultScanConfig's, an explicit
// --include replaces both, and --exclude globs are appended to whichever
// exclude list is in effect.
func resolveScanConfig(rootDir string, flagInclude, flagExclude []string) harness.ScanConfig {
	cfg := harness.DefaultScanConfig()

	if proj, err := loadProjectConfig(rootDir); err == nil && proj != nil {
		if len(proj.Include) > 0 {
			cfg.Include = proj.Include
		}
		if len(proj.Exclude) > 0 {
			cfg.Exclude = proj.Exclude
		}
	}

	if len(flagInclude) > 0 {
		cfg.Include = flagInclude
	}
	if len(flagExclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, flagExclude...)
	}

	return cfg
}

// expandPath resolves a leading "~" in path to the user's home directory,
// a convenience for --root and --output values typed at a shell.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
