package visualizer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marte-community/scorer-dev-tools/internal/compiler"
	"github.com/marte-community/scorer-dev-tools/internal/resolver"
)

const rates = `
unit overall // Count
{
	(*classes)
} get_count;

unit overall // Rate "per label"
{
	(&count, &n_true)
} get_rate;

unit overall // Share
{
	(&rate)
} get_end;
`

func plan(t *testing.T) *resolver.Plan {
	t.Helper()
	res, err := compiler.Compile(context.Background(), []compiler.Source{{Name: "rates.unit", Content: rates}},
		compiler.Options{StopAfter: compiler.StageResolved})
	require.NoError(t, err)
	return res.Plan
}

func TestMermaidAllUnits(t *testing.T) {
	out, err := Mermaid(plan(t), "")
	require.NoError(t, err)

	assert.Contains(t, out, "graph LR\n")
	assert.Contains(t, out, "  subgraph stage0[\"stage 0\"]\n    u_count[\"count<br/>Count\"]\n  end\n")
	assert.Contains(t, out, "    u_rate[\"rate<br/>Rate #quot;per label#quot;\"]\n")
	assert.Contains(t, out, "  r_classes([classes])\n")
	assert.Contains(t, out, "  r_classes -.-> u_count\n")
	assert.Contains(t, out, "  u_count --> u_rate\n")
	assert.Contains(t, out, "  r_n_true -.-> u_rate\n")
	assert.Contains(t, out, "  u_rate --> u_end\n")
	assert.Contains(t, out, "  class u_count,u_rate,u_end g_overall\n")
	assert.NotContains(t, out, " g_focus\n")
}

func TestMermaidFocus(t *testing.T) {
	out, err := Mermaid(plan(t), "rate")
	require.NoError(t, err)

	assert.Contains(t, out, "u_count[")
	assert.Contains(t, out, "u_end[")
	assert.Contains(t, out, "  u_rate --> u_end\n")
	assert.Contains(t, out, "  r_n_true -.-> u_rate\n")
	assert.NotContains(t, out, "r_classes")
	assert.Contains(t, out, "  class u_rate g_focus\n")
}

func TestMermaidUnknownFocus(t *testing.T) {
	_, err := Mermaid(plan(t), "missing")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func get(t *testing.T, s *Server, path string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	return w.Code, string(body)
}

func TestServer(t *testing.T) {
	p := plan(t)
	loads := 0
	s := New(func(ctx context.Context) (*resolver.Plan, error) {
		loads++
		return p, nil
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	code, body := get(t, s, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "scorergen stage graph")

	code, body = get(t, s, "/graph")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "u_count --> u_rate")

	code, body = get(t, s, "/graph/end")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "class u_end g_focus")

	code, body = get(t, s, "/graph/missing")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "unknown unit: missing")

	assert.Equal(t, 3, loads)
}

func TestServerDrawsLoadErrors(t *testing.T) {
	s := New(func(ctx context.Context) (*resolver.Plan, error) {
		return nil, errors.Join(errors.New("first"), errors.New("second"))
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	code, body := get(t, s, "/graph")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `error["first<br/>second"]`)
}
