// Package lsp is a language server for .unit declaration files. It reports
// the diagnostics of the whole compile pipeline as documents change, and
// answers hover, definition and formatting requests.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/marte-community/scorer-dev-tools/internal/compiler"
	"github.com/marte-community/scorer-dev-tools/internal/index"
	"github.com/marte-community/scorer-dev-tools/internal/schema"
)

var errMalformedMessage = errors.New("malformed message")

type Server struct {
	in     *bufio.Reader
	out    io.Writer
	schema *schema.Schema
	log    *slog.Logger

	// root is the workspace directory whose declaration files are
	// compiled together with the open documents.
	root string
	// docs maps file paths of open documents to their current text.
	docs map[string]string
	last *compiler.Result
}

func NewServer(in io.Reader, out io.Writer, s *schema.Schema, log *slog.Logger) *Server {
	if s == nil {
		s = schema.DefaultSchema()
	}
	return &Server{
		in:     bufio.NewReader(in),
		out:    out,
		schema: s,
		log:    log.With("component", "lsp"),
		docs:   make(map[string]string),
	}
}

// Run serves requests until the client sends exit or closes the stream.
func (s *Server) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := readMessage(s.in)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, errMalformedMessage) {
			s.log.Warn("dropping message", "error", err)
			continue
		}
		if err != nil {
			return err
		}
		if msg.Method == "exit" {
			return nil
		}
		if err := s.handle(ctx, msg); err != nil {
			return err
		}
	}
}

func readMessage(reader *bufio.Reader) (*message, error) {
	contentLength := -1
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		if line == "\r\n" {
			break
		}
		var n int
		if _, err := fmt.Sscanf(line, "Content-Length: %d", &n); err == nil {
			contentLength = n
		}
	}
	if contentLength < 0 {
		return nil, fmt.Errorf("%w: missing Content-Length", errMalformedMessage)
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(reader, body); err != nil {
		return nil, err
	}
	var msg message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedMessage, err)
	}
	return &msg, nil
}

func (s *Server) handle(ctx context.Context, msg *message) error {
	s.log.Debug("message", "method", msg.Method)
	switch msg.Method {
	case "initialize":
		var params InitializeParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.respondError(msg.ID, codeInvalidParams, err.Error())
		}
		s.root = params.RootPath
		if params.RootURI != "" {
			s.root = uriToPath(params.RootURI)
		}
		return s.respond(msg.ID, InitializeResult{
			Capabilities: ServerCapabilities{
				TextDocumentSync:           1, // full
				HoverProvider:              true,
				DefinitionProvider:         true,
				DocumentFormattingProvider: true,
			},
			ServerInfo: ServerInfo{Name: "scorergen"},
		})
	case "initialized":
		return nil
	case "shutdown":
		return s.respond(msg.ID, nil)
	case "textDocument/didOpen":
		var params DidOpenTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			s.log.Warn("bad didOpen", "error", err)
			return nil
		}
		s.docs[uriToPath(params.TextDocument.URI)] = params.TextDocument.Text
		return s.analyze(ctx)
	case "textDocument/didChange":
		var params DidChangeTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil || len(params.ContentChanges) == 0 {
			return nil
		}
		// Full sync: the last change holds the whole text.
		s.docs[uriToPath(params.TextDocument.URI)] = params.ContentChanges[len(params.ContentChanges)-1].Text
		return s.analyze(ctx)
	case "textDocument/didClose":
		var params DidCloseTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return nil
		}
		delete(s.docs, uriToPath(params.TextDocument.URI))
		if err := s.publish(params.TextDocument.URI, nil); err != nil {
			return err
		}
		return s.analyze(ctx)
	case "textDocument/hover":
		var params TextDocumentPositionParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.respondError(msg.ID, codeInvalidParams, err.Error())
		}
		return s.respond(msg.ID, s.hover(params))
	case "textDocument/definition":
		var params TextDocumentPositionParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.respondError(msg.ID, codeInvalidParams, err.Error())
		}
		return s.respond(msg.ID, s.definition(params))
	case "textDocument/formatting":
		var params DocumentFormattingParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.respondError(msg.ID, codeInvalidParams, err.Error())
		}
		return s.respond(msg.ID, s.format(params))
	default:
		if msg.ID != nil {
			return s.respondError(msg.ID, codeMethodNotFound, "unsupported method "+msg.Method)
		}
		return nil
	}
}

// analyze recompiles the workspace and republishes diagnostics for every
// open document.
func (s *Server) analyze(ctx context.Context) error {
	sources, err := s.sources()
	if err != nil {
		return err
	}
	res, err := compiler.Compile(ctx, sources, compiler.Options{Schema: s.schema, StopAfter: compiler.StageResolved})
	if errors.Is(err, context.Canceled) {
		return err
	}
	s.last = res

	diags := s.diagnostics(res, err)
	for _, path := range s.openPaths() {
		if err := s.publish(pathToURI(path), diags[path]); err != nil {
			return err
		}
	}
	return nil
}

// sources returns the declaration files below the workspace root, with
// open documents taking the place of their saved content, in path order.
func (s *Server) sources() ([]compiler.Source, error) {
	content := make(map[string]string)
	if s.root != "" {
		err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != index.Extension {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			content[path] = string(data)
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	for path, text := range s.docs {
		content[path] = text
	}

	paths := make([]string, 0, len(content))
	for p := range content {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	out := make([]compiler.Source, len(paths))
	for i, p := range paths {
		out[i] = compiler.Source{Name: p, Content: content[p]}
	}
	return out, nil
}

func (s *Server) openPaths() []string {
	paths := make([]string, 0, len(s.docs))
	for p := range s.docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (s *Server) publish(uri string, diags []Diagnostic) error {
	if diags == nil {
		diags = []Diagnostic{}
	}
	return s.send(notification{
		Jsonrpc: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  PublishDiagnosticsParams{URI: uri, Diagnostics: diags},
	})
}

func (s *Server) respond(id, result any) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.send(response{Jsonrpc: "2.0", ID: id, Result: raw})
}

func (s *Server) respondError(id any, code int, msg string) error {
	return s.send(response{Jsonrpc: "2.0", ID: id, Error: &responseError{Code: code, Message: msg}})
}

func (s *Server) send(msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.out, "Content-Length: %d\r\n\r\n%s", len(body), body)
	return err
}

func uriToPath(uri string) string {
	if u, err := url.Parse(uri); err == nil && u.Scheme == "file" {
		return filepath.FromSlash(u.Path)
	}
	return strings.TrimPrefix(uri, "file://")
}

func pathToURI(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}
