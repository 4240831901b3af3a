// Package visualizer draws the staged unit graph as Mermaid and serves a
// live preview that recompiles the declarations on every refresh.
package visualizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marte-community/scorer-dev-tools/internal/resolver"
)

// Loader produces the current plan. It runs once per graph request.
type Loader func(ctx context.Context) (*resolver.Plan, error)

type Server struct {
	router chi.Router
	load   Loader
	logger *slog.Logger
}

func New(load Loader, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		load:   load,
		logger: logger.With("component", "visualizer"),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/graph", s.handleGraph)
	r.Get("/graph/{unit}", s.handleGraph)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	plan, err := s.load(r.Context())
	if err != nil {
		// The page renders whatever text comes back, so failures are drawn.
		s.logger.Warn("declarations do not compile", "error", err)
		_, _ = w.Write([]byte(errorGraph(err)))
		return
	}
	out, err := Mermaid(plan, chi.URLParam(r, "unit"))
	if errors.Is(err, ErrUnknownUnit) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(errorGraph(err)))
		return
	}
	_, _ = w.Write([]byte(out))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}

// errorGraph shows err as a single node, one line per joined error.
func errorGraph(err error) string {
	msg := strings.ReplaceAll(escape(err.Error()), "\n", "<br/>")
	return fmt.Sprintf("graph TD\n  error[\"%s\"]\n  style error fill:#fdd,stroke:#8e0000\n", msg)
}

const indexPage = `<!DOCTYPE html>
<html>
<head>
    <title>scorergen stages</title>
    <script src="https://cdn.jsdelivr.net/npm/mermaid/dist/mermaid.min.js"></script>
    <script>
        mermaid.initialize({ startOnLoad: false, theme: 'base', securityLevel: 'loose' });
        const unit = new URLSearchParams(location.search).get('unit');
        const source = unit ? '/graph/' + encodeURIComponent(unit) : '/graph';
        function refresh() {
            fetch(source)
                .then(response => response.text())
                .then(text => {
                    const container = document.getElementById('graph-container');
                    if (container.getAttribute('data-last') === text) return;
                    container.setAttribute('data-last', text);
                    container.removeAttribute('data-processed');
                    container.innerHTML = text;
                    mermaid.run({ nodes: [container] });
                })
                .catch(err => console.error(err));
        }
        window.addEventListener('load', () => {
            document.getElementById('focus').innerText = unit || 'all units';
            refresh();
            setInterval(refresh, 1000);
        });
    </script>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background: #f4f7f6; margin: 0; color: #2c3e50; }
        header { background: #8e0000; color: white; padding: 1rem 2.5rem; }
        h1 { margin: 0; font-size: 1.25rem; font-weight: 600; }
        main { padding: 2rem; }
        .controls { margin-bottom: 1.5rem; color: #64748b; font-size: 0.95rem; text-align: center; }
        #graph-container { background: white; padding: 2rem; border-radius: 12px; border: 1px solid #e2e8f0; min-height: 500px; }
        code { background: #f1f5f9; padding: 0.2rem 0.4rem; border-radius: 4px; }
    </style>
</head>
<body>
    <header><h1>scorergen stage graph</h1></header>
    <main>
        <div class="controls">
            Showing <code id="focus"></code>. Add <code>?unit=name</code> to focus on one unit.
            The graph follows edits to the declaration files.
        </div>
        <div id="graph-container" class="mermaid">graph TD
            A[Loading...]</div>
    </main>
</body>
</html>
`
