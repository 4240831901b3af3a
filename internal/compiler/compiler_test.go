package compiler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marte-community/scorer-dev-tools/internal/graph"
	"github.com/marte-community/scorer-dev-tools/internal/logger"
	"github.com/marte-community/scorer-dev-tools/internal/parser"
	"github.com/marte-community/scorer-dev-tools/internal/resolver"
)

// scalar renders an overall unit reading the given scalar inputs.
func scalar(name string, inputs ...string) string {
	tagged := make([]string, len(inputs))
	for i, in := range inputs {
		tagged[i] = "&" + in
	}
	return "unit overall // " + name + "\n{\n\t(" + strings.Join(tagged, ", ") + ")\n} get_" + name + ";\n\n"
}

func TestCompileDiamond(t *testing.T) {
	src := scalar("A", "B", "C") + scalar("B", "D") + scalar("C", "D") + scalar("D", "n_true")
	res, err := Compile(context.Background(), []Source{{Name: "diamond.unit", Content: src}}, Options{})
	require.NoError(t, err)

	assert.Equal(t, StageEmitted, res.Stage)
	assert.Equal(t, graph.Layers{"D": 0, "B": 1, "C": 1, "A": 2}, res.Layers)
	assert.Equal(t, [][]string{{"D"}, {"B", "C"}, {"A"}}, res.Workflow.Names())
	assert.NotEmpty(t, res.Source)
}

func TestCompileDisconnectedChains(t *testing.T) {
	src := scalar("X", "Y") + scalar("Y", "n_true") + scalar("P", "Q") + scalar("Q", "n_pred")
	res, err := Compile(context.Background(), []Source{{Name: "chains.unit", Content: src}}, Options{StopAfter: StagePartitioned})
	require.NoError(t, err)

	assert.Equal(t, StagePartitioned, res.Stage)
	assert.Equal(t, [][]string{{"Q", "Y"}, {"P", "X"}}, res.Workflow.Names())
	assert.Nil(t, res.Plan)
	assert.Nil(t, res.Source)
}

func TestCompileCountRate(t *testing.T) {
	src := `
unit overall // Count
{
	(*classes)
} get_count;

unit overall // Rate
{
	(&count, &n_true)
} get_rate;
`
	res, err := Compile(context.Background(), []Source{{Name: "rates.unit", Content: src}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, graph.Layers{"count": 0, "rate": 1}, res.Layers)

	out := string(res.Source)
	count := strings.Index(out, "stats.GetCount(")
	rate := strings.Index(out, "stats.GetRate(")
	require.NotEqual(t, -1, count)
	assert.Less(t, count, rate)
}

func TestCompileFailures(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		stage Stage
		is    error
	}{
		{
			name:  "malformed declaration",
			src:   "unit overall // Broken\n{\n\t(count)\n} get_x;\n",
			stage: StageParsed,
			is:    parser.ErrMalformedDeclaration,
		},
		{
			name:  "duplicate unit",
			src:   scalar("A", "n_true") + scalar("A", "n_pred"),
			stage: StageValidated,
			is:    parser.ErrMalformedDeclaration,
		},
		{
			name:  "cycle",
			src:   scalar("A", "B") + scalar("B", "A"),
			stage: StageValidated,
			is:    graph.ErrCyclicDependency,
		},
		{
			name:  "unknown reference",
			src:   scalar("A", "missing"),
			stage: StageResolved,
			is:    resolver.ErrUnknownReference,
		},
		{
			name:  "class count too early",
			src:   "unit common // Classes\n{\n\t(*lbl_true)\n} get_classes;\n\n" + scalar("A", "Nclass"),
			stage: StageResolved,
			is:    resolver.ErrScheduleViolation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compile(context.Background(), []Source{{Name: "bad.unit", Content: tt.src}}, Options{})
			require.Error(t, err)
			assert.Equal(t, StageFailed, res.Stage)

			var se *StageError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.stage, se.Stage)
			assert.True(t, errors.Is(err, tt.is), err.Error())
		})
	}
}

func TestCompileCycleNamesMembers(t *testing.T) {
	src := scalar("A", "B") + scalar("B", "C") + scalar("C", "A") + scalar("D", "n_true")
	_, err := Compile(context.Background(), []Source{{Name: "cycle.unit", Content: src}}, Options{})
	var ce *graph.CycleError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, [][]string{{"A", "B", "C"}}, ce.Cycles)
}

func TestCompileCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compile(ctx, []Source{{Name: "a.unit", Content: scalar("A", "n_true")}}, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCompileFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.unit"), []byte(scalar("A", "B")), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.unit"), []byte(scalar("B", "n_lbl")), 0o644))

	res, err := CompileFiles(context.Background(), []string{dir}, Options{StopAfter: StageResolved})
	require.NoError(t, err)
	assert.Equal(t, StageResolved, res.Stage)
	assert.Equal(t, []string{"B", "A"}, res.Workflow.Order())
	require.NotNil(t, res.Plan)
	assert.Len(t, res.Plan.Fields, 2)
}

func TestCompileLogsStages(t *testing.T) {
	var buf bytes.Buffer
	ctx := logger.WithLogger(context.Background(), logger.New(slog.LevelDebug, "text", &buf))

	_, err := Compile(ctx, []Source{{Name: "a.unit", Content: scalar("A", "n_true")}}, Options{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "stage=parsed")
	assert.Contains(t, buf.String(), "stage=emitted")
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "validated", StageValidated.String())
	assert.Equal(t, "stage(42)", Stage(42).String())
}
