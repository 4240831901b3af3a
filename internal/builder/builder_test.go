package builder

import (
	"bytes"
	"errors"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marte-community/scorer-dev-tools/internal/graph"
	unitparser "github.com/marte-community/scorer-dev-tools/internal/parser"
	"github.com/marte-community/scorer-dev-tools/internal/resolver"
	"github.com/marte-community/scorer-dev-tools/internal/schema"
)

func planFor(t *testing.T, src string) *resolver.Plan {
	t.Helper()
	file, err := unitparser.NewParser("test.unit", src).Parse()
	require.NoError(t, err)

	g := graph.Build(file.Units)
	require.NoError(t, g.Validate())
	layers, err := graph.Layer(g)
	require.NoError(t, err)
	wf, err := graph.Partition(layers, file.Units)
	require.NoError(t, err)

	s := schema.DefaultSchema()
	vocab, err := s.Vocabulary()
	require.NoError(t, err)
	r, err := resolver.New(file.Units, vocab, s.ClassList())
	require.NoError(t, err)
	plan, err := r.Resolve(wf)
	require.NoError(t, err)
	return plan
}

func render(t *testing.T, opts Options, plan *resolver.Plan) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, New(opts).Build(&buf, plan))

	_, err := parser.ParseFile(token.NewFileSet(), "engine.go", buf.Bytes(), parser.AllErrors)
	require.NoError(t, err)
	return buf.String()
}

const countRate = `
unit overall // Count
{
	(*classes)
} get_count;

unit overall // Rate
{
	(&count, &n_true)
} get_rate;
`

func TestBuildCountBeforeRate(t *testing.T) {
	out := render(t, Options{Sources: []string{"rates.unit"}}, planFor(t, countRate))

	count := strings.Index(out, "s.Count = stats.GetCount(s.Classes)")
	rate := strings.Index(out, "s.Rate = stats.GetRate(s.Count, nTrue)")
	require.NotEqual(t, -1, count)
	require.NotEqual(t, -1, rate)
	assert.Less(t, count, rate)

	// The wait of stage 0 sits between the two calls.
	wait := strings.Index(out, "_ = g.Wait()")
	assert.Less(t, count, wait)
	assert.Less(t, wait, rate)

	assert.True(t, strings.HasPrefix(out, "// Code generated by scorergen from rates.unit. DO NOT EDIT.\n"))
	assert.Contains(t, out, "package scorer\n")
	assert.Contains(t, out, `stats "github.com/marte-community/scorer-dev-tools/stats"`)
	assert.Contains(t, out, "nTrue := len(lblTrue)")
	assert.NotContains(t, out, "nPred :=")
	assert.Contains(t, out, "s.Classes = classesOf(lblTrue, lblPred)")
	assert.Contains(t, out, "func classesOf(")
	assert.Contains(t, out, `fmt.Fprintf(w, "%-40s%-20v\n", "Count", s.Count)`)
	assert.NotContains(t, out, "SetLimit")
}

func TestBuildNclassPlacement(t *testing.T) {
	// Derived class list: Nclass is set before any stage runs.
	out := render(t, Options{}, planFor(t, countRate))
	derive := strings.Index(out, "s.Classes = classesOf(lblTrue, lblPred)")
	nclass := strings.Index(out, "s.Nclass = len(s.Classes)")
	stage0 := strings.Index(out, "// stage 0: count")
	require.NotEqual(t, -1, nclass)
	assert.Less(t, derive, nclass)
	assert.Less(t, nclass, stage0)
	assert.Equal(t, 1, strings.Count(out, "s.Nclass = len(s.Classes)"))
	assert.Contains(t, out, "Nclass must be greater than 1")

	// Declared class list: Nclass follows the first stage.
	out = render(t, Options{}, planFor(t, `
unit common // Classes
{
	(*lbl_true, *lbl_pred)
} get_classes;

unit overall // Classes seen
{
	(&Nclass, *classes)
} get_seen;

unit overall // Dummy
{
	(*classes)
} get_dummy;
`))
	firstWait := strings.Index(out, "_ = g.Wait()")
	nclass = strings.Index(out, "s.Nclass = len(s.Classes)")
	stage1 := strings.Index(out, "// stage 1: dummy")
	require.NotEqual(t, -1, stage1)
	assert.Less(t, firstWait, nclass)
	assert.Less(t, nclass, stage1)
}

func TestBuildDeclaredClassList(t *testing.T) {
	plan := planFor(t, `
unit common // Classes
{
	(*lbl_true, *lbl_pred, &n_true, &n_pred)
} get_classes;

unit matrix // Confusion Matrix
{
	(*lbl_true, *lbl_pred, &n_lbl, *classes, &Nclass)
} get_confusion_matrix;

unit class // TP(True positive/hit)
{
	(*confusion_matrix, &Nclass)
} get_TP;
`)
	out := render(t, Options{Parallelism: 4}, plan)

	assert.Contains(t, out, "s.Classes = stats.GetClasses(lblTrue, lblPred, nTrue, nPred)")
	assert.Contains(t, out, "s.ConfusionMatrix = stats.GetConfusionMatrix(lblTrue, lblPred, nLbl, s.Classes, s.Nclass)")
	assert.Contains(t, out, "s.TP = stats.GetTP(s.ConfusionMatrix, s.Nclass)")
	assert.Contains(t, out, "nLbl := nTrue")
	assert.Contains(t, out, "g.SetLimit(4)")
	assert.NotContains(t, out, "classesOf")
	assert.NotContains(t, out, `"sort"`)
	assert.Equal(t, 1, strings.Count(out, "Classes []float64"))

	// Matrix values are stored but never printed.
	assert.Contains(t, out, "ConfusionMatrix []float64")
	assert.NotContains(t, out, `"Confusion Matrix"`)
	assert.Contains(t, out, `writeRow(w, "TP(True positive/hit)", s.TP)`)
}

func TestBuildClassListOutsideFirstStage(t *testing.T) {
	plan := planFor(t, `
unit overall // Seed
{
	(&n_true)
} get_seed;

unit common // Classes
{
	(&seed)
} get_classes;
`)
	err := New(Options{}).Build(&bytes.Buffer{}, plan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrClassListStage))
}

func TestBuildNoUnits(t *testing.T) {
	out := render(t, Options{Package: "empty", TypeName: "Engine"}, &resolver.Plan{})
	assert.Contains(t, out, "package empty")
	assert.Contains(t, out, "type Engine struct")
	assert.Contains(t, out, "s.Nclass = len(s.Classes)")
	assert.NotContains(t, out, "errgroup")
	assert.NotContains(t, out, "scorer-dev-tools/stats")
}

func TestBuildRejectsBadPlans(t *testing.T) {
	t.Run("schedule violation", func(t *testing.T) {
		plan := &resolver.Plan{Steps: []resolver.Step{{Calls: []resolver.Call{{
			Unit:   unitparser.Unit{Name: "b"},
			Field:  "B",
			Func:   "GetB",
			Params: []resolver.Param{{Name: "a", Kind: resolver.KindMetric, Expr: "s.A"}},
		}}}}}
		err := New(Options{}).Build(&bytes.Buffer{}, plan)
		assert.True(t, errors.Is(err, resolver.ErrScheduleViolation))
	})
	t.Run("unsupported expression", func(t *testing.T) {
		plan := &resolver.Plan{Steps: []resolver.Step{{Calls: []resolver.Call{{
			Unit:   unitparser.Unit{Name: "b"},
			Field:  "B",
			Func:   "GetB",
			Params: []resolver.Param{{Name: "w", Kind: resolver.KindRaw, Expr: "weights"}},
		}}}}}
		err := New(Options{}).Build(&bytes.Buffer{}, plan)
		assert.True(t, errors.Is(err, ErrUnsupportedExpr))
	})
}

func TestBuildInvalidOptions(t *testing.T) {
	tests := []Options{
		{Package: "func"},
		{TypeName: "scorer"},
		{FormulaName: "my-stats"},
		{Parallelism: -1},
	}
	for _, opts := range tests {
		err := New(opts).Build(&bytes.Buffer{}, &resolver.Plan{})
		assert.True(t, errors.Is(err, ErrInvalidOptions), "%+v", opts)
	}
}

func TestNewDerivesFormulaName(t *testing.T) {
	b := New(Options{FormulaImport: "example.com/metrics/formulas"})
	assert.Equal(t, "formulas", b.Options.FormulaName)
	assert.Equal(t, "Scorer", b.Options.TypeName)
}
