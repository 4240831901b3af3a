package resolver

import (
	"errors"
	"fmt"
	"sort"

	"github.com/marte-community/scorer-dev-tools/internal/graph"
	"github.com/marte-community/scorer-dev-tools/internal/parser"
	"github.com/marte-community/scorer-dev-tools/internal/schema"
)

// Kind tells where a parameter's value comes from.
type Kind int

const (
	KindMetric Kind = iota
	KindRaw
)

func (k Kind) String() string {
	if k == KindRaw {
		return "raw"
	}
	return "metric"
}

// reserved engine fields that units may not shadow.
const (
	classesField = "Classes"
	nclassField  = "Nclass"
)

// Param is one resolved formula argument.
type Param struct {
	Name   string
	Kind   Kind
	Access parser.Access
	Expr   string
	// Group and Stage describe the producer of a metric parameter.
	Group parser.Group
	Stage int
}

// Call is a unit scheduled in a stage with its resolved arguments.
type Call struct {
	Unit   parser.Unit
	Field  string
	Func   string
	Params []Param
}

// Step is one resolved stage.
type Step struct {
	Index int
	Calls []Call
}

// Field is one engine state field produced by a unit.
type Field struct {
	Name   string
	GoName string
	Group  parser.Group
	Label  string
}

// Plan is the fully resolved workflow handed to the emitter.
type Plan struct {
	Steps []Step
	// Fields lists unit outputs in declaration order, which is also the
	// print order.
	Fields []Field
	// ClassList names the unit that produces the class list, empty when
	// the engine derives it from the labels.
	ClassList string
}

// Stage returns the step index a unit is scheduled in.
func (p *Plan) Stage(name string) (int, bool) {
	for i, st := range p.Steps {
		for _, c := range st.Calls {
			if c.Unit.Name == name {
				return i, true
			}
		}
	}
	return 0, false
}

// Verify checks that every metric argument comes from a strictly earlier
// step.
func (p *Plan) Verify() error {
	for i, st := range p.Steps {
		for _, c := range st.Calls {
			for _, prm := range c.Params {
				if prm.Kind != KindMetric {
					continue
				}
				if prm.Stage >= i {
					return fmt.Errorf("%w: %s in stage %d reads %s from stage %d",
						ErrScheduleViolation, c.Unit.Name, i, prm.Name, prm.Stage)
				}
			}
		}
	}
	return nil
}

// Resolver turns a workflow into a Plan.
type Resolver struct {
	units     []parser.Unit
	byName    map[string]*parser.Unit
	goNames   map[string]string
	vocab     schema.Vocabulary
	classList string
	stageOf   map[string]int
}

// New prepares a resolver for the given units. classList is the name of
// the class list value in the vocabulary. Units that cannot get distinct
// Go identifiers are rejected here.
func New(units []parser.Unit, vocab schema.Vocabulary, classList string) (*Resolver, error) {
	r := &Resolver{
		units:     units,
		byName:    make(map[string]*parser.Unit, len(units)),
		goNames:   make(map[string]string, len(units)),
		vocab:     vocab,
		classList: classList,
	}

	owners := map[string]string{nclassField: "the class count"}
	if _, declared := unitNamed(units, classList); !declared {
		owners[classesField] = "the class list"
	}

	var errs []error
	for i := range units {
		u := &units[i]
		if _, dup := r.byName[u.Name]; dup {
			continue
		}
		r.byName[u.Name] = u
		id := GoName(u.Name)
		if id == "" {
			errs = append(errs, fmt.Errorf("%w: %s: unit '%s' has no usable Go name", ErrNameCollision, u.Location(), u.Name))
			continue
		}
		if owner, taken := owners[id]; taken {
			errs = append(errs, fmt.Errorf("%w: %s: unit '%s' maps to %s, already used by %s",
				ErrNameCollision, u.Location(), u.Name, id, owner))
			continue
		}
		owners[id] = "unit '" + u.Name + "'"
		r.goNames[u.Name] = id
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}

func unitNamed(units []parser.Unit, name string) (parser.Unit, bool) {
	for _, u := range units {
		if u.Name == name {
			return u, true
		}
	}
	return parser.Unit{}, false
}

// Resolve walks the workflow stage by stage. A stage only sees what earlier
// stages produced; its own outputs are committed after every unit in it is
// resolved. All problems are reported together.
func (r *Resolver) Resolve(wf graph.Workflow) (*Plan, error) {
	plan := &Plan{}
	if _, ok := r.byName[r.classList]; ok {
		plan.ClassList = r.classList
	}
	r.stageOf = make(map[string]int, len(r.byName))
	for i, stage := range wf {
		for _, u := range stage.Units {
			r.stageOf[u.Name] = i
		}
	}

	ctx := NewContext()
	var errs []error
	for i, stage := range wf {
		step, err := r.ResolveStage(ctx, i, stage)
		if err != nil {
			errs = append(errs, err)
		}
		plan.Steps = append(plan.Steps, step)
		ctx = ctx.With(i, stage.Units)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	scheduled := make(map[string]bool, ctx.Len())
	for _, u := range r.units {
		if scheduled[u.Name] {
			continue
		}
		if _, _, ok := ctx.Lookup(u.Name); !ok {
			return nil, fmt.Errorf("%w: unit %q is not part of the workflow", graph.ErrInternal, u.Name)
		}
		scheduled[u.Name] = true
		plan.Fields = append(plan.Fields, Field{
			Name:   u.Name,
			GoName: r.goNames[u.Name],
			Group:  u.Group,
			Label:  u.Label,
		})
	}

	if err := plan.Verify(); err != nil {
		return nil, err
	}
	return plan, nil
}

// ResolveStage resolves the units of one stage against ctx, which must hold
// exactly the outputs of the stages before index.
func (r *Resolver) ResolveStage(ctx Context, index int, stage graph.Stage) (Step, error) {
	step := Step{Index: index, Calls: make([]Call, 0, len(stage.Units))}
	var errs []error
	for i := range stage.Units {
		u := &stage.Units[i]
		call := Call{
			Unit:  *u,
			Field: r.goNames[u.Name],
			Func:  FuncName(u.Name),
		}
		for _, in := range u.Inputs {
			p, err := r.resolveInput(ctx, index, u, in)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			call.Params = append(call.Params, p)
		}
		step.Calls = append(step.Calls, call)
	}
	sort.SliceStable(step.Calls, func(i, j int) bool {
		return step.Calls[i].Unit.Name < step.Calls[j].Unit.Name
	})
	return step, errors.Join(errs...)
}

func (r *Resolver) resolveInput(ctx Context, stage int, u *parser.Unit, in parser.Input) (Param, error) {
	if producer, isUnit := r.byName[in.Name]; isUnit {
		group, at, ok := ctx.Lookup(in.Name)
		if !ok {
			return Param{}, fmt.Errorf("%w: %s: unit '%s' in stage %d reads '%s', which is not produced by an earlier stage",
				ErrScheduleViolation, u.Location(), u.Name, stage, in.Name)
		}
		if in.Access != group.Storage() {
			return Param{}, &AccessMismatchError{
				Unit:     u.Name,
				Input:    in.Name,
				Declared: in.Access,
				Stored:   producer.Group.Storage(),
				Location: u.Location(),
			}
		}
		return Param{
			Name:   in.Name,
			Kind:   KindMetric,
			Access: in.Access,
			Expr:   "s." + r.goNames[in.Name],
			Group:  group,
			Stage:  at,
		}, nil
	}

	raw, ok := r.vocab.Lookup(in.Name)
	if !ok {
		return Param{}, &UnknownReferenceError{Unit: u.Name, Input: in.Name, Location: u.Location()}
	}
	if in.Access != raw.Access {
		return Param{}, &AccessMismatchError{
			Unit:     u.Name,
			Input:    in.Name,
			Declared: in.Access,
			Stored:   raw.Access,
			Location: u.Location(),
		}
	}
	if first := r.firstStage(raw); stage < first {
		return Param{}, fmt.Errorf("%w: %s: unit '%s' in stage %d reads '%s', which is only available from stage %d",
			ErrScheduleViolation, u.Location(), u.Name, stage, in.Name, first)
	}
	return Param{
		Name:   in.Name,
		Kind:   KindRaw,
		Access: in.Access,
		Expr:   raw.Expr,
	}, nil
}

// firstStage is the earliest stage that may read raw.
func (r *Resolver) firstStage(raw schema.RawInput) int {
	first := raw.Stage
	if raw.Follows == "" {
		return first
	}
	if at, ok := r.stageOf[raw.Follows]; ok && at+1 > first {
		first = at + 1
	}
	return first
}
