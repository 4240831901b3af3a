// Package config loads the project file scorergen.toml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/marte-community/scorer-dev-tools/internal/builder"
)

// FileName is the project file looked up by the CLI.
const FileName = "scorergen.toml"

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Input    InputConfig   `toml:"input"`
	Output   OutputConfig  `toml:"output"`
	Formulas FormulaConfig `toml:"formulas"`
	Engine   EngineConfig  `toml:"engine"`

	// dir is the directory relative paths are resolved against.
	dir string
}

type InputConfig struct {
	Files []string `toml:"files" comment:"Declaration files or directories, in order"`
}

type OutputConfig struct {
	Path    string `toml:"path" comment:"Generated engine file"`
	Package string `toml:"package"`
	Type    string `toml:"type"`
}

type FormulaConfig struct {
	Import string `toml:"import" comment:"Package implementing the Get<Name> formulas"`
	Name   string `toml:"name"`
}

type EngineConfig struct {
	Parallelism int `toml:"parallelism" comment:"Goroutines per stage, 0 for no limit"`
}

// Default is the configuration used when no project file exists.
func Default() *Config {
	d := builder.DefaultOptions()
	return &Config{
		Input:    InputConfig{Files: []string{"."}},
		Output:   OutputConfig{Path: "scorer_gen.go", Package: d.Package, Type: d.TypeName},
		Formulas: FormulaConfig{Import: d.FormulaImport, Name: d.FormulaName},
		dir:      ".",
	}
}

// Load reads a project file. Relative paths inside it are resolved against
// the file's directory.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Decode reads a project file on top of the defaults. Unknown keys are
// rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values a build cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Input.Files) == 0 {
		errs = append(errs, fmt.Errorf("%w: input.files is empty", ErrInvalidConfig))
	}
	if c.Output.Path == "" {
		errs = append(errs, fmt.Errorf("%w: output.path is empty", ErrInvalidConfig))
	}
	if c.Engine.Parallelism < 0 {
		errs = append(errs, fmt.Errorf("%w: engine.parallelism must not be negative", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// Dir is the directory relative paths are resolved against.
func (c *Config) Dir() string { return c.dir }

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

// InputPaths returns the declaration paths relative to the working directory.
func (c *Config) InputPaths() []string {
	out := make([]string, len(c.Input.Files))
	for i, p := range c.Input.Files {
		out[i] = c.resolve(p)
	}
	return out
}

func (c *Config) OutputPath() string {
	return c.resolve(c.Output.Path)
}

// BuilderOptions maps the file onto emitter options. Sources are listed as
// written in the file so the generated header does not depend on where the
// tool ran.
func (c *Config) BuilderOptions() builder.Options {
	return builder.Options{
		Package:       c.Output.Package,
		TypeName:      c.Output.Type,
		FormulaImport: c.Formulas.Import,
		FormulaName:   c.Formulas.Name,
		Parallelism:   c.Engine.Parallelism,
		Sources:       append([]string(nil), c.Input.Files...),
	}
}

// Encode renders cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf).SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Init writes a starter project file into dir. An existing file is kept
// and reported through os.ErrExist.
func Init(dir string, cfg *Config) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%s: %w", path, os.ErrExist)
	}
	data, err := Encode(cfg)
	if err != nil {
		return path, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, err
	}
	return path, os.WriteFile(path, data, 0o644)
}
