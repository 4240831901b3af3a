package validator

import (
	"fmt"
	"sort"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"

	"github.com/marte-community/scorer-dev-tools/internal/index"
	"github.com/marte-community/scorer-dev-tools/internal/parser"
	"github.com/marte-community/scorer-dev-tools/internal/schema"
)

type DiagnosticLevel int

const (
	LevelError DiagnosticLevel = iota
	LevelWarning
)

func (l DiagnosticLevel) String() string {
	if l == LevelWarning {
		return "WARNING"
	}
	return "ERROR"
}

type Diagnostic struct {
	Level    DiagnosticLevel
	Code     string
	Message  string
	Position parser.Position
	File     string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Position.Line, d.Position.Column, d.Level, d.Message)
}

// Validator checks declarations before any graph work: schema conformance,
// unique names, and the tags used on raw inputs.
type Validator struct {
	Diagnostics []Diagnostic
	Catalog     *index.Catalog
	Schema      *schema.Schema
	vocabulary  schema.Vocabulary
}

func NewValidator(catalog *index.Catalog, s *schema.Schema) (*Validator, error) {
	vocab, err := s.Vocabulary()
	if err != nil {
		return nil, err
	}
	return &Validator{Catalog: catalog, Schema: s, vocabulary: vocab}, nil
}

func (v *Validator) report(code string, level DiagnosticLevel, msg string, pos parser.Position, file string) {
	v.Diagnostics = append(v.Diagnostics, Diagnostic{
		Level:    level,
		Code:     code,
		Message:  msg,
		Position: pos,
		File:     file,
	})
}

// Validate runs every check and sorts the diagnostics by location.
func (v *Validator) Validate() {
	units := v.Catalog.Units()
	for i := range units {
		u := &units[i]
		v.validateSchema(u)
		v.validateRawInputs(u)
	}
	v.validateDuplicates()

	sort.SliceStable(v.Diagnostics, func(i, j int) bool {
		a, b := v.Diagnostics[i], v.Diagnostics[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Position.Line != b.Position.Line {
			return a.Position.Line < b.Position.Line
		}
		return a.Position.Column < b.Position.Column
	})
}

func (v *Validator) validateSchema(u *parser.Unit) {
	err := v.Schema.ValidateUnit(u)
	if err == nil {
		return
	}
	for _, e := range cueerrors.Errors(err) {
		msg := e.Error()
		if path := e.Path(); len(path) > 0 && !strings.HasPrefix(msg, strings.Join(path, ".")) {
			msg = strings.Join(path, ".") + ": " + msg
		}
		v.report("schema", LevelError, fmt.Sprintf("unit '%s' violates the schema: %s", u.Name, msg), u.Position, u.File)
	}
}

func (v *Validator) validateRawInputs(u *parser.Unit) {
	if raw, ok := v.vocabulary.Lookup(u.Name); ok && !raw.Fallback {
		v.report("shadowed_raw_input", LevelError,
			fmt.Sprintf("unit '%s' has the name of a raw input", u.Name), u.Position, u.File)
	}
	for _, in := range u.Inputs {
		raw, ok := v.vocabulary.Lookup(in.Name)
		if !ok || raw.Access == in.Access {
			continue
		}
		if _, produced := v.Catalog.Lookup(in.Name); produced && raw.Fallback {
			continue
		}
		v.report("raw_access", LevelError,
			fmt.Sprintf("raw input '%s' of unit '%s' must be declared %s%s (%s)", in.Name, u.Name, raw.Access.Tag(), in.Name, raw.Access),
			in.Position, u.File)
	}
}

func (v *Validator) validateDuplicates() {
	dups := v.Catalog.Duplicates()
	names := make([]string, 0, len(dups))
	for name := range dups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		entries := dups[name]
		first := entries[0]
		for _, e := range entries[1:] {
			v.report("duplicate_unit", LevelError,
				fmt.Sprintf("unit '%s' is already declared at %s", name, first.Unit.Location()),
				e.Unit.Position, e.File)
		}
	}
}

func (v *Validator) HasErrors() bool {
	for _, d := range v.Diagnostics {
		if d.Level == LevelError {
			return true
		}
	}
	return false
}

// Err returns the error diagnostics as one error, or nil.
func (v *Validator) Err() error {
	var errs []Diagnostic
	for _, d := range v.Diagnostics {
		if d.Level == LevelError {
			errs = append(errs, d)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &Error{Diagnostics: errs}
}

// Error carries the error diagnostics of a failed validation. It matches
// parser.ErrMalformedDeclaration.
type Error struct {
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	lines := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

func (e *Error) Unwrap() error { return parser.ErrMalformedDeclaration }
