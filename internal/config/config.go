package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/scriptsnoop/scriptsnoop/internal/patterns"
	"gopkg.in/yaml.v3"
)

// ErrNoConfig is returned when no config file exists at the searched locations.
var ErrNoConfig = errors.New("no config file")

// FileConfig is the on-disk YAML configuration shape for scriptsnoop.
// Pointer fields distinguish "unset" from zero values.
type FileConfig struct {
	Include         []string              `yaml:"include,omitempty"`
	Exclude         []string              `yaml:"exclude,omitempty"`
	Patterns        []patterns.Definition `yaml:"patterns,omitempty"`
	DefaultExcludes *bool                 `yaml:"default_excludes,omitempty"`
	IncludeHidden   *bool                 `yaml:"include_hidden,omitempty"`
	Format          *string               `yaml:"format,omitempty"`
	NoColor         *bool                 `yaml:"no_color,omitempty"`
	FailOnFindings  *bool                 `yaml:"fail_on_findings,omitempty"`
	Baseline        *string               `yaml:"baseline,omitempty"`
}

// LoadFile reads a YAML config file from the provided path. Unknown keys are
// rejected so typos do not silently change a scan.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the scan root.
// It supports .scriptsnoop.yml/.yaml and scriptsnoop.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	for _, name := range []string{".scriptsnoop.yml", ".scriptsnoop.yaml", "scriptsnoop.yml", "scriptsnoop.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, ErrNoConfig
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return FileConfig{}, ErrNoConfig
	}
	p := filepath.Join(base, "scriptsnoop", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return FileConfig{}, ErrNoConfig
}

// Load returns the local and global configs for root. A missing file is not
// an error; a malformed one is.
func Load(root string) (local, global FileConfig, err error) {
	local, err = LoadLocal(root)
	if err != nil && !errors.Is(err, ErrNoConfig) {
		return FileConfig{}, FileConfig{}, err
	}
	global, err = LoadGlobal()
	if err != nil && !errors.Is(err, ErrNoConfig) {
		return FileConfig{}, FileConfig{}, err
	}
	return local, global, nil
}

// ExtraPatterns returns the local patterns followed by the global ones.
func ExtraPatterns(local, global FileConfig) []patterns.Definition {
	out := make([]patterns.Definition, 0, len(local.Patterns)+len(global.Patterns))
	out = append(out, local.Patterns...)
	return append(out, global.Patterns...)
}
