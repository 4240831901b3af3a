package builder

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"strings"
	"text/template"

	"github.com/marte-community/scorer-dev-tools/internal/parser"
	"github.com/marte-community/scorer-dev-tools/internal/resolver"
)

var (
	// ErrClassListStage means a declared class list unit is not computed in
	// the first stage, so Nclass could not be derived after it.
	ErrClassListStage = errors.New("class list must be computed in the first stage")

	// ErrUnsupportedExpr is a raw input bound to an expression the engine
	// does not provide.
	ErrUnsupportedExpr = errors.New("unsupported raw input expression")

	// ErrInvalidOptions is returned for unusable package or identifier names.
	ErrInvalidOptions = errors.New("invalid builder options")
)

// Options controls the shape of the generated engine.
type Options struct {
	Package       string
	TypeName      string
	FormulaImport string
	FormulaName   string
	// Parallelism caps goroutines per stage; zero means no cap.
	Parallelism int
	// Sources are listed in the generated header.
	Sources []string
}

func DefaultOptions() Options {
	return Options{
		Package:       "scorer",
		TypeName:      "Scorer",
		FormulaImport: "github.com/marte-community/scorer-dev-tools/stats",
		FormulaName:   "stats",
	}
}

type Builder struct {
	Options Options
}

func New(opts Options) *Builder {
	d := DefaultOptions()
	if opts.Package == "" {
		opts.Package = d.Package
	}
	if opts.TypeName == "" {
		opts.TypeName = d.TypeName
	}
	if opts.FormulaImport == "" {
		opts.FormulaImport = d.FormulaImport
	}
	if opts.FormulaName == "" {
		opts.FormulaName = opts.FormulaImport[strings.LastIndex(opts.FormulaImport, "/")+1:]
	}
	return &Builder{Options: opts}
}

// locals are the raw input expressions Compute declares itself.
var locals = []local{
	{Name: "nTrue", Value: "len(lblTrue)"},
	{Name: "nPred", Value: "len(lblPred)"},
	{Name: "nLbl", Value: "nTrue"},
}

// provided are expressions that are always in scope inside Compute.
var provided = map[string]bool{
	"lblTrue":   true,
	"lblPred":   true,
	"s.Classes": true,
	"s.Nclass":  true,
}

type local struct {
	Name  string
	Value string
}

type call struct {
	Target string
	Func   string
	Args   string
}

type step struct {
	Names string
	Calls []call
}

type templateData struct {
	Options
	Steps         []step
	Locals        []local
	DeriveClasses bool
	ClassList     string
	ClassFields   []resolver.Field
	OverallFields []resolver.Field
	Fields        []resolver.Field
	UsesFormulas  bool
}

// Build writes the gofmt-ed engine source for plan to w.
func (b *Builder) Build(w io.Writer, plan *resolver.Plan) error {
	src, err := b.Source(plan)
	if err != nil {
		return err
	}
	_, err = w.Write(src)
	return err
}

// Source renders and formats the engine source for plan.
func (b *Builder) Source(plan *resolver.Plan) ([]byte, error) {
	if err := b.checkOptions(); err != nil {
		return nil, err
	}
	if err := plan.Verify(); err != nil {
		return nil, err
	}
	data, err := b.templateData(plan)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := engineTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render engine: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated engine does not parse: %w", err)
	}
	return src, nil
}

func (b *Builder) checkOptions() error {
	o := b.Options
	for _, id := range []string{o.Package, o.TypeName, o.FormulaName} {
		if !token.IsIdentifier(id) || token.IsKeyword(id) {
			return fmt.Errorf("%w: %q is not a Go identifier", ErrInvalidOptions, id)
		}
	}
	if !token.IsExported(o.TypeName) {
		return fmt.Errorf("%w: type name %q must be exported", ErrInvalidOptions, o.TypeName)
	}
	if o.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism %d is negative", ErrInvalidOptions, o.Parallelism)
	}
	return nil
}

func (b *Builder) templateData(plan *resolver.Plan) (*templateData, error) {
	data := &templateData{
		Options:       b.Options,
		DeriveClasses: plan.ClassList == "",
		ClassList:     plan.ClassList,
	}

	if plan.ClassList != "" {
		stage, ok := plan.Stage(plan.ClassList)
		if !ok || stage != 0 {
			return nil, fmt.Errorf("%w: '%s' is in stage %d", ErrClassListStage, plan.ClassList, stage)
		}
	}

	used := make(map[string]bool)
	for _, st := range plan.Steps {
		s := step{Names: stepNames(st)}
		for _, c := range st.Calls {
			args := make([]string, len(c.Params))
			for i, p := range c.Params {
				args[i] = p.Expr
				if p.Kind == resolver.KindRaw {
					used[p.Expr] = true
				}
			}
			s.Calls = append(s.Calls, call{
				Target: "s." + c.Field,
				Func:   c.Func,
				Args:   strings.Join(args, ", "),
			})
			data.UsesFormulas = true
		}
		data.Steps = append(data.Steps, s)
	}

	declared := make(map[string]bool)
	for _, l := range locals {
		declared[l.Name] = true
	}
	for expr := range used {
		if !provided[expr] && !declared[expr] {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedExpr, expr)
		}
	}
	// nLbl is defined through nTrue.
	if used["nLbl"] {
		used["nTrue"] = true
	}
	for _, l := range locals {
		if used[l.Name] {
			data.Locals = append(data.Locals, l)
		}
	}

	for _, f := range plan.Fields {
		if f.Name == plan.ClassList {
			continue
		}
		data.Fields = append(data.Fields, f)
		if !f.Group.Printed() {
			continue
		}
		if f.Group == parser.GroupOverall {
			data.OverallFields = append(data.OverallFields, f)
		} else {
			data.ClassFields = append(data.ClassFields, f)
		}
	}
	return data, nil
}

func stepNames(st resolver.Step) string {
	names := make([]string, len(st.Calls))
	for i, c := range st.Calls {
		names[i] = c.Unit.Name
	}
	return strings.Join(names, ", ")
}

func goType(g parser.Group) string {
	if g.PerClass() {
		return "[]float64"
	}
	return "float64"
}

var engineTemplate = template.Must(template.New("engine").Funcs(template.FuncMap{
	"goType": goType,
}).Parse(engineSource))
