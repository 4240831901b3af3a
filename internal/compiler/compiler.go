// Package compiler drives the declaration pipeline from source files to the
// generated engine.
package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/marte-community/scorer-dev-tools/internal/builder"
	"github.com/marte-community/scorer-dev-tools/internal/graph"
	"github.com/marte-community/scorer-dev-tools/internal/index"
	"github.com/marte-community/scorer-dev-tools/internal/logger"
	"github.com/marte-community/scorer-dev-tools/internal/parser"
	"github.com/marte-community/scorer-dev-tools/internal/resolver"
	"github.com/marte-community/scorer-dev-tools/internal/schema"
	"github.com/marte-community/scorer-dev-tools/internal/validator"
)

// Stage is a state of the pipeline. Each state is reached only after the
// previous one succeeded.
type Stage int

const (
	StageStart Stage = iota
	StageParsed
	StageGraphed
	StageValidated
	StageLayered
	StagePartitioned
	StageResolved
	StageEmitted
	StageFailed
)

var stageNames = [...]string{"start", "parsed", "graphed", "validated", "layered", "partitioned", "resolved", "emitted", "failed"}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// StageError is the failure to reach Stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("cannot reach %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Source is an in-memory declaration file.
type Source struct {
	Name    string
	Content string
}

type Options struct {
	// Schema defaults to the embedded schema.
	Schema  *schema.Schema
	Builder builder.Options
	// StopAfter ends the run once this stage is reached. Zero runs to
	// StageEmitted.
	StopAfter Stage
}

// Result collects what each reached stage produced.
type Result struct {
	Stage       Stage
	Catalog     *index.Catalog
	Units       []parser.Unit
	Graph       *graph.Graph
	Diagnostics []validator.Diagnostic
	Layers      graph.Layers
	Workflow    graph.Workflow
	Plan        *resolver.Plan
	Source      []byte
}

// Compile runs the pipeline over in-memory sources.
func Compile(ctx context.Context, sources []Source, opts Options) (*Result, error) {
	res := &Result{Stage: StageStart, Catalog: index.NewCatalog()}
	var errs []error
	for _, src := range sources {
		file, err := parser.NewParser(src.Name, src.Content).Parse()
		if err != nil {
			errs = append(errs, err)
		}
		if file != nil {
			res.Catalog.AddFile(src.Name, file)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return res.fail(StageParsed, err)
	}
	return run(ctx, res, opts)
}

// CompileFiles runs the pipeline over declaration files and directories.
func CompileFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	res := &Result{Stage: StageStart, Catalog: index.NewCatalog()}
	if err := res.Catalog.Load(paths...); err != nil {
		return res.fail(StageParsed, err)
	}
	return run(ctx, res, opts)
}

// CompileCatalog runs the pipeline over an already loaded catalog.
func CompileCatalog(ctx context.Context, catalog *index.Catalog, opts Options) (*Result, error) {
	return run(ctx, &Result{Stage: StageStart, Catalog: catalog}, opts)
}

func run(ctx context.Context, res *Result, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)
	stop := opts.StopAfter
	if stop == StageStart || stop > StageEmitted {
		stop = StageEmitted
	}
	s := opts.Schema
	if s == nil {
		s = schema.DefaultSchema()
	}

	steps := []struct {
		to Stage
		fn func() error
	}{
		{StageParsed, func() error {
			res.Units = res.Catalog.Units()
			return nil
		}},
		{StageGraphed, func() error {
			res.Graph = graph.Build(res.Units)
			return nil
		}},
		{StageValidated, func() error {
			v, err := validator.NewValidator(res.Catalog, s)
			if err != nil {
				return err
			}
			v.Validate()
			res.Diagnostics = v.Diagnostics
			if err := v.Err(); err != nil {
				return err
			}
			return res.Graph.Validate()
		}},
		{StageLayered, func() error {
			layers, err := graph.Layer(res.Graph)
			res.Layers = layers
			return err
		}},
		{StagePartitioned, func() error {
			wf, err := graph.Partition(res.Layers, res.Units)
			res.Workflow = wf
			return err
		}},
		{StageResolved, func() error {
			vocab, err := s.Vocabulary()
			if err != nil {
				return err
			}
			r, err := resolver.New(res.Units, vocab, s.ClassList())
			if err != nil {
				return err
			}
			res.Plan, err = r.Resolve(res.Workflow)
			return err
		}},
		{StageEmitted, func() error {
			var buf bytes.Buffer
			if err := builder.New(opts.Builder).Build(&buf, res.Plan); err != nil {
				return err
			}
			res.Source = buf.Bytes()
			return nil
		}},
	}

	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return res.fail(st.to, err)
		}
		if err := st.fn(); err != nil {
			return res.fail(st.to, err)
		}
		res.Stage = st.to
		log.Debug("pipeline stage reached", "stage", st.to.String())
		if st.to == stop {
			break
		}
	}
	if res.Stage >= StageLayered {
		log.Debug("workflow ready", "units", len(res.Layers), "stages", len(res.Workflow))
	}
	return res, nil
}

func (r *Result) fail(to Stage, err error) (*Result, error) {
	r.Stage = StageFailed
	return r, &StageError{Stage: to, Err: err}
}
