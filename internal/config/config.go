// Package config loads uglify's yaml config files
package config

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// Engines that a config may name
const (
	EngineTdmin   = "tdmin"
	EngineESBuild = "esbuild"
)

// C stands for "config".
type C struct {
	// Directory that Src globs and Dest are relative to
	Cwd string

	// Globs of files to minify. Globs starting with "!" exclude.
	Src []string

	// Where minified files go
	Dest string

	// Which minifier to use: tdmin or esbuild
	Engine string

	// Options handed to the adapter for every file
	Options map[string]interface{}

	// If source maps should be attached and written next to outputs
	SourceMaps bool `yaml:"sourceMaps"`

	// Rebuild whenever something in Src changes
	Watch bool
}

// New creates a config with defaults filled in
func New() *C {
	return &C{
		Cwd:    ".",
		Src:    []string{"**/*.js", "!**/*.min.js"},
		Dest:   "public/",
		Engine: EngineTdmin,
	}
}

// Load extra configs on top of this config.
func (c *C) Load(files ...string) error {
	for _, file := range files {
		b, err := ioutil.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read config file: %v", err)
		}

		err = yaml.Unmarshal(b, c)
		if err != nil {
			return fmt.Errorf("failed to unmarshal config file %s: %v", file, err)
		}
	}

	return c.Validate()
}

// Validate checks that the config makes sense
func (c *C) Validate() error {
	switch c.Engine {
	case EngineTdmin, EngineESBuild:
	default:
		return fmt.Errorf("unknown engine %q: want %s or %s",
			c.Engine, EngineTdmin, EngineESBuild)
	}

	if len(c.Src) == 0 {
		return fmt.Errorf("no src globs given")
	}

	if c.Dest == "" {
		return fmt.Errorf("no dest given")
	}

	return nil
}

// DestDir gets the destination directory, resolved against Cwd
func (c *C) DestDir() string {
	if filepath.IsAbs(c.Dest) {
		return c.Dest
	}

	return filepath.Join(c.Cwd, c.Dest)
}

// InDir resolves a relative Cwd against the given dir.
func (c C) InDir(dir string) *C {
	if !filepath.IsAbs(c.Cwd) {
		c.Cwd = filepath.Join(dir, c.Cwd)
	}

	return &c
}

// Globs gets the Src globs, with DestDir excluded when it lives under Cwd so
// that outputs are never read back in as sources.
func (c *C) Globs() []string {
	globs := append([]string(nil), c.Src...)

	cwd, err := filepath.Abs(c.Cwd)
	if err != nil {
		return globs
	}

	dest, err := filepath.Abs(c.DestDir())
	if err != nil {
		return globs
	}

	rel, err := filepath.Rel(cwd, dest)
	if err != nil || rel == "." || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return globs
	}

	return append(globs, "!"+filepath.ToSlash(rel)+"/**")
}
