package lsp

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/marte-community/scorer-dev-tools/internal/compiler"
	"github.com/marte-community/scorer-dev-tools/internal/formatter"
	"github.com/marte-community/scorer-dev-tools/internal/graph"
	"github.com/marte-community/scorer-dev-tools/internal/parser"
	"github.com/marte-community/scorer-dev-tools/internal/resolver"
	"github.com/marte-community/scorer-dev-tools/internal/validator"
)

// diagnostics maps the outcome of one compile onto files. Errors that carry
// no position land on the first line of the first open document.
func (s *Server) diagnostics(res *compiler.Result, err error) map[string][]Diagnostic {
	out := make(map[string][]Diagnostic)
	add := func(file string, d Diagnostic) {
		d.Source = "scorergen"
		out[file] = append(out[file], d)
	}

	if res != nil {
		for _, d := range res.Diagnostics {
			sev := SeverityError
			if d.Level == validator.LevelWarning {
				sev = SeverityWarning
			}
			add(d.File, Diagnostic{Range: span(d.Position, 1), Severity: sev, Code: d.Code, Message: d.Message})
		}
	}

	for _, leaf := range leaves(err) {
		var (
			perr  *parser.Error
			verr  *validator.Error
			cycle *graph.CycleError
			unk   *resolver.UnknownReferenceError
			acc   *resolver.AccessMismatchError
		)
		switch {
		case errors.As(leaf, &verr):
			// Already reported through res.Diagnostics.
		case errors.As(leaf, &perr):
			add(perr.File, Diagnostic{Range: span(perr.Position, len(perr.Text)), Severity: SeverityError, Code: "syntax", Message: perr.Msg})
		case errors.As(leaf, &cycle):
			for _, name := range cycle.Members() {
				if e, ok := res.Catalog.Lookup(name); ok {
					add(e.File, Diagnostic{
						Range:    span(e.Unit.Position, len("unit")),
						Severity: SeverityError,
						Code:     "cycle",
						Message:  fmt.Sprintf("unit '%s': %v", name, cycle),
					})
				}
			}
		case errors.As(leaf, &unk):
			s.addInputDiagnostic(res, add, unk.Unit, unk.Input, "unknown_reference", strings.TrimPrefix(unk.Error(), unk.Location+": "))
		case errors.As(leaf, &acc):
			s.addInputDiagnostic(res, add, acc.Unit, acc.Input, "access_mismatch", strings.TrimPrefix(acc.Error(), acc.Location+": "))
		default:
			if open := s.openPaths(); len(open) > 0 {
				add(open[0], Diagnostic{Range: span(parser.Position{Line: 1, Column: 1}, 0), Severity: SeverityError, Message: leaf.Error()})
			}
		}
	}
	return out
}

func (s *Server) addInputDiagnostic(res *compiler.Result, add func(string, Diagnostic), unit, input, code, msg string) {
	e, ok := res.Catalog.Lookup(unit)
	if !ok {
		return
	}
	rng := span(e.Unit.Position, len("unit"))
	for _, in := range e.Unit.Inputs {
		if in.Name == input {
			rng = span(in.Position, len(in.Name)+1)
			break
		}
	}
	add(e.File, Diagnostic{Range: rng, Severity: SeverityError, Code: code, Message: msg})
}

// leaves flattens joined errors below a stage failure.
func leaves(err error) []error {
	if err == nil {
		return nil
	}
	if stage, ok := err.(*compiler.StageError); ok {
		return leaves(stage.Err)
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, leaves(e)...)
		}
		return out
	}
	return []error{err}
}

// span converts a one-based declaration position to a range of n columns.
func span(pos parser.Position, n int) Range {
	start := Position{Line: max(pos.Line-1, 0), Character: max(pos.Column-1, 0)}
	end := start
	end.Character += max(n, 1)
	return Range{Start: start, End: end}
}

func (s *Server) hover(params TextDocumentPositionParams) *Hover {
	name := wordAt(s.docs[uriToPath(params.TextDocument.URI)], params.Position)
	if name == "" || s.last == nil {
		return nil
	}

	var sb strings.Builder
	if e, ok := s.last.Catalog.Lookup(name); ok {
		fmt.Fprintf(&sb, "**%s** (%s)", name, e.Unit.Group)
		if stage, ok := s.last.Layers[name]; ok {
			fmt.Fprintf(&sb, ", stage %d", stage)
		}
		fmt.Fprintf(&sb, "\n\n%s", e.Unit.Label)
		if call, ok := s.call(name); ok {
			args := make([]string, len(call.Params))
			for i, p := range call.Params {
				args[i] = p.Expr
			}
			fmt.Fprintf(&sb, "\n\n`s.%s = %s(%s)`", call.Field, call.Func, strings.Join(args, ", "))
		}
	} else if vocab, err := s.schema.Vocabulary(); err == nil {
		raw, ok := vocab.Lookup(name)
		if !ok {
			return nil
		}
		fmt.Fprintf(&sb, "**%s** raw input (%s), bound to `%s`", name, raw.Access, raw.Expr)
		if raw.Follows != "" {
			fmt.Fprintf(&sb, "\n\nReadable once '%s' is computed.", raw.Follows)
		}
	} else {
		return nil
	}
	return &Hover{Contents: MarkupContent{Kind: "markdown", Value: sb.String()}}
}

func (s *Server) call(name string) (resolver.Call, bool) {
	if s.last.Plan == nil {
		return resolver.Call{}, false
	}
	for _, st := range s.last.Plan.Steps {
		for _, c := range st.Calls {
			if c.Unit.Name == name {
				return c, true
			}
		}
	}
	return resolver.Call{}, false
}

func (s *Server) definition(params TextDocumentPositionParams) *Location {
	name := wordAt(s.docs[uriToPath(params.TextDocument.URI)], params.Position)
	if name == "" || s.last == nil {
		return nil
	}
	e, ok := s.last.Catalog.Lookup(name)
	if !ok {
		return nil
	}
	return &Location{URI: pathToURI(e.File), Range: span(e.Unit.Position, len("unit"))}
}

// format returns one edit replacing the document, none when it is already
// formatted or does not parse.
func (s *Server) format(params DocumentFormattingParams) []TextEdit {
	path := uriToPath(params.TextDocument.URI)
	text, ok := s.docs[path]
	if !ok {
		return nil
	}
	file, err := parser.NewParser(path, text).Parse()
	if err != nil {
		return nil
	}
	var buf bytes.Buffer
	formatter.Format(file, &buf)
	if buf.String() == text {
		return []TextEdit{}
	}
	end := Position{Line: strings.Count(text, "\n") + 1}
	return []TextEdit{{Range: Range{End: end}, NewText: buf.String()}}
}

func wordAt(text string, pos Position) string {
	lines := strings.Split(text, "\n")
	if pos.Line < 0 || pos.Line >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	if pos.Character < 0 || pos.Character > len(line) {
		return ""
	}
	start, end := pos.Character, pos.Character
	for start > 0 && isIdent(line[start-1]) {
		start--
	}
	for end < len(line) && isIdent(line[end]) {
		end++
	}
	word := line[start:end]
	// get_<name> names the unit being declared.
	return strings.TrimPrefix(word, "get_")
}

func isIdent(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
