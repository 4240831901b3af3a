package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/marte-community/scorer-dev-tools/internal/parser"
)

//go:embed units.cue
var defaultSchemaCUE []byte

// ProjectFile is the optional per-project schema unified on top of the
// built-in one.
const ProjectFile = ".scorergen.cue"

type Schema struct {
	Context *cue.Context
	Value   cue.Value
}

// RawInput is a value consumed by units that no unit produces.
type RawInput struct {
	Name     string
	Access   parser.Access
	Expr     string
	Stage    int
	Fallback bool // only raw when no unit produces it
	// Follows names a unit that must be computed before this input can
	// be read.
	Follows string
}

// Vocabulary is the fixed set of raw inputs, keyed by name.
type Vocabulary map[string]RawInput

func (v Vocabulary) Lookup(name string) (RawInput, bool) {
	r, ok := v[name]
	return r, ok
}

// Names returns the raw input names in sorted order.
func (v Vocabulary) Names() []string {
	names := make([]string, 0, len(v))
	for n := range v {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultSchema returns the built-in embedded schema.
func DefaultSchema() *Schema {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(defaultSchemaCUE, cue.Filename("units.cue"))
	if err := v.Err(); err != nil {
		panic(fmt.Sprintf("failed to compile embedded schema: %v", err))
	}
	return &Schema{Context: ctx, Value: v}
}

// Merge unifies CUE source on top of the schema. Project files can narrow
// #Unit; the raw vocabulary is closed.
func (s *Schema) Merge(filename string, src []byte) error {
	other := s.Context.CompileBytes(src, cue.Filename(filename))
	if err := other.Err(); err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", filename, err)
	}
	merged := s.Value.Unify(other)
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("schema %s conflicts with the built-in schema: %w", filename, err)
	}
	s.Value = merged
	return nil
}

// LoadFullSchema returns the built-in schema merged with the project
// schema found in projectRoot, if there is one.
func LoadFullSchema(projectRoot string) (*Schema, error) {
	s := DefaultSchema()
	if projectRoot == "" {
		return s, nil
	}
	path := filepath.Join(projectRoot, ProjectFile)
	src, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.Merge(path, src); err != nil {
		return nil, err
	}
	return s, nil
}

// ClassList is the name of the unit producing the class list.
func (s *Schema) ClassList() string {
	name, err := s.Value.LookupPath(cue.ParsePath("classList")).String()
	if err != nil {
		return "classes"
	}
	return name
}

type rawEntry struct {
	Access   string `json:"access"`
	Expr     string `json:"expr"`
	Stage    int    `json:"stage"`
	Fallback bool   `json:"fallback"`
	Follows  string `json:"follows"`
}

// Vocabulary decodes the raw input table.
func (s *Schema) Vocabulary() (Vocabulary, error) {
	var entries map[string]rawEntry
	if err := s.Value.LookupPath(cue.ParsePath("raw")).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode raw inputs: %w", err)
	}
	vocab := make(Vocabulary, len(entries))
	for name, e := range entries {
		access := parser.AccessScalar
		if e.Access == "array" {
			access = parser.AccessArray
		}
		vocab[name] = RawInput{Name: name, Access: access, Expr: e.Expr, Stage: e.Stage, Fallback: e.Fallback, Follows: e.Follows}
	}
	return vocab, nil
}

// ValidateUnit checks one unit against #Unit.
func (s *Schema) ValidateUnit(u *parser.Unit) error {
	inputs := make([]any, len(u.Inputs))
	for i, in := range u.Inputs {
		inputs[i] = map[string]any{"name": in.Name, "access": in.Access.String()}
	}
	data := s.Context.Encode(map[string]any{
		"name":   u.Name,
		"label":  u.Label,
		"group":  u.Group.String(),
		"inputs": inputs,
	})
	def := s.Value.LookupPath(cue.ParsePath("#Unit"))
	res := def.Unify(data)
	return res.Validate(cue.Concrete(true))
}
