package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marte-community/scorer-dev-tools/internal/graph"
	"github.com/marte-community/scorer-dev-tools/internal/parser"
	"github.com/marte-community/scorer-dev-tools/internal/schema"
)

func parseUnits(t *testing.T, src string) []parser.Unit {
	t.Helper()
	file, err := parser.NewParser("test.unit", src).Parse()
	require.NoError(t, err)
	return file.Units
}

func workflow(t *testing.T, units []parser.Unit) graph.Workflow {
	t.Helper()
	g := graph.Build(units)
	require.NoError(t, g.Validate())
	layers, err := graph.Layer(g)
	require.NoError(t, err)
	wf, err := graph.Partition(layers, units)
	require.NoError(t, err)
	return wf
}

func vocabulary(t *testing.T) (schema.Vocabulary, string) {
	t.Helper()
	s := schema.DefaultSchema()
	v, err := s.Vocabulary()
	require.NoError(t, err)
	return v, s.ClassList()
}

func resolve(t *testing.T, src string) (*Plan, error) {
	t.Helper()
	units := parseUnits(t, src)
	vocab, classList := vocabulary(t)
	r, err := New(units, vocab, classList)
	require.NoError(t, err)
	return r.Resolve(workflow(t, units))
}

func TestGoName(t *testing.T) {
	tests := map[string]string{
		"overall_accuracy": "OverallAccuracy",
		"TP":               "TP",
		"PC_PI":            "PCPI",
		"dInd":             "DInd",
		"kappa_SE":         "KappaSE",
		"classes":          "Classes",
		"a__b":             "AB",
		"_":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, GoName(in), in)
	}
	assert.Equal(t, "GetConfusionMatrix", FuncName("confusion_matrix"))
}

func TestResolveCountRate(t *testing.T) {
	plan, err := resolve(t, `
unit overall // Count
{
	(*classes)
} get_count;

unit overall // Rate
{
	(&count, &n_true)
} get_rate;
`)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Empty(t, plan.ClassList)

	count := plan.Steps[0].Calls[0]
	assert.Equal(t, "Count", count.Field)
	assert.Equal(t, "GetCount", count.Func)
	require.Len(t, count.Params, 1)
	assert.Equal(t, Param{Name: "classes", Kind: KindRaw, Access: parser.AccessArray, Expr: "s.Classes"}, count.Params[0])

	rate := plan.Steps[1].Calls[0]
	require.Len(t, rate.Params, 2)
	assert.Equal(t, Param{Name: "count", Kind: KindMetric, Access: parser.AccessScalar, Expr: "s.Count", Group: parser.GroupOverall, Stage: 0}, rate.Params[0])
	assert.Equal(t, "nTrue", rate.Params[1].Expr)

	require.Len(t, plan.Fields, 2)
	assert.Equal(t, "count", plan.Fields[0].Name)
	assert.Equal(t, "Rate", plan.Fields[1].GoName)
	assert.NoError(t, plan.Verify())
}

func TestResolveDeclaredClassList(t *testing.T) {
	plan, err := resolve(t, `
unit common // Classes
{
	(*lbl_true, *lbl_pred)
} get_classes;

unit common // Population
{
	(*classes, &n_true)
} get_POP;

unit overall // Classes seen
{
	(&Nclass, *classes)
} get_seen;
`)
	require.NoError(t, err)
	assert.Equal(t, "classes", plan.ClassList)

	stage, ok := plan.Stage("classes")
	require.True(t, ok)
	assert.Equal(t, 0, stage)

	pop := plan.Steps[1].Calls[0]
	assert.Equal(t, "POP", pop.Unit.Name)
	assert.Equal(t, KindMetric, pop.Params[0].Kind)
	assert.Equal(t, "s.Classes", pop.Params[0].Expr)

	seen := plan.Steps[1].Calls[1]
	assert.Equal(t, "s.Nclass", seen.Params[0].Expr)
	assert.Equal(t, KindRaw, seen.Params[0].Kind)
}

func TestResolveUnknownReference(t *testing.T) {
	_, err := resolve(t, `
unit overall // Broken
{
	(&missing)
} get_broken;
`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownReference))

	var ref *UnknownReferenceError
	require.True(t, errors.As(err, &ref))
	assert.Equal(t, "broken", ref.Unit)
	assert.Equal(t, "missing", ref.Input)
	assert.Contains(t, err.Error(), "test.unit:2:1")
}

func TestResolveAccessMismatch(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		input string
	}{
		{
			name: "metric stored per class",
			src: `
unit class // A
{
	(*lbl_true)
} get_a;

unit overall // B
{
	(&a)
} get_b;
`,
			input: "a",
		},
		{
			name: "raw scalar read as array",
			src: `
unit overall // B
{
	(*n_true)
} get_b;
`,
			input: "n_true",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolve(t, tt.src)
			require.Error(t, err)
			var mm *AccessMismatchError
			require.True(t, errors.As(err, &mm))
			assert.Equal(t, tt.input, mm.Input)
			assert.True(t, errors.Is(err, ErrAccessMismatch))
		})
	}
}

func TestResolveNclassFollowsClassList(t *testing.T) {
	// A declared class list is computed in stage 0, so Nclass exists from
	// stage 1 on.
	_, err := resolve(t, `
unit common // Classes
{
	(*lbl_true, *lbl_pred)
} get_classes;

unit overall // Too early
{
	(&Nclass)
} get_early;
`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScheduleViolation))
	assert.Contains(t, err.Error(), "'Nclass', which is only available from stage 1")

	// A derived class list is ready before the first stage.
	plan, err := resolve(t, `
unit overall // Early
{
	(&Nclass)
} get_early;
`)
	require.NoError(t, err)
	assert.Equal(t, "s.Nclass", plan.Steps[0].Calls[0].Params[0].Expr)
}

func TestResolveStageSeesOnlyEarlierStages(t *testing.T) {
	units := parseUnits(t, `
unit overall // A
{
	(&n_true)
} get_a;

unit overall // B
{
	(&a)
} get_b;
`)
	vocab, classList := vocabulary(t)
	r, err := New(units, vocab, classList)
	require.NoError(t, err)

	// Both units forced into one stage: b would read a before it exists.
	flat := graph.Stage{Index: 0, Units: units}
	_, err = r.ResolveStage(NewContext(), 0, flat)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScheduleViolation))

	// The same stage against a context that already holds a resolves.
	ctx := NewContext().With(0, units[:1])
	step, err := r.ResolveStage(ctx, 1, graph.Stage{Index: 1, Units: units[1:]})
	require.NoError(t, err)
	assert.Equal(t, "s.A", step.Calls[0].Params[0].Expr)
}

func TestContextIsImmutable(t *testing.T) {
	units := parseUnits(t, "unit overall // A\n{\n\t()\n} get_a;\n")
	base := NewContext()
	next := base.With(0, units)

	_, _, ok := base.Lookup("a")
	assert.False(t, ok)
	g, stage, ok := next.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, parser.GroupOverall, g)
	assert.Equal(t, 0, stage)
}

func TestVerifyRejectsSameStageRead(t *testing.T) {
	plan := &Plan{Steps: []Step{{
		Index: 0,
		Calls: []Call{{
			Unit:   parser.Unit{Name: "b"},
			Params: []Param{{Name: "a", Kind: KindMetric, Stage: 0}},
		}},
	}}}
	err := plan.Verify()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScheduleViolation))
}

func TestNewRejectsNameCollisions(t *testing.T) {
	vocab, classList := vocabulary(t)
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "two units",
			src: `
unit overall // One
{
	()
} get_PC_PI;

unit overall // Two
{
	()
} get_PCPI;
`,
		},
		{
			name: "class count field",
			src:  "unit overall // N\n{\n\t()\n} get_nclass;\n",
		},
		{
			name: "derived class list field",
			src:  "unit overall // C\n{\n\t()\n} get_Classes;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(parseUnits(t, tt.src), vocab, classList)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNameCollision))
		})
	}
}
