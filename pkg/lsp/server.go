package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.smolcalc.dev/pkg/diag"
	"src.smolcalc.dev/pkg/mode"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	registry *mode.Registry
	mode     mode.Mode
	content  map[lsp.DocumentURI]string
}

func newServer(registry *mode.Registry, m mode.Mode) *server {
	return &server{registry, m, make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":             s.initialize,
		"textDocument/didOpen":   s.didOpen,
		"textDocument/didChange": s.didChange,
		"textDocument/didClose":  s.didClose,
		"textDocument/hover":     s.hover,

		"shutdown": noop,
		"exit":     exit,
		// Required by the protocol.
		"initialized": noop,
		// Called by clients even when server doesn't advertise support:
		// https://microsoft.github.io/language-server-protocol/specification#workspace_didChangeWatchedFiles
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func exit(_ context.Context, conn jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, conn.Close()
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			HoverProvider: true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, s.diagnostics(content))
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, s.diagnostics(content))
	return nil, nil
}

func (s *server) didClose(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	// Clear the diagnostics of the closed document.
	go publishDiagnostics(ctx, conn, params.TextDocument.URI, []lsp.Diagnostic{})
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	content, ok := s.content[params.TextDocument.URI]
	if !ok {
		return nil, nil
	}
	for _, l := range s.lines(content) {
		if l.no != params.Position.Line || l.directive {
			continue
		}
		outcome, err := s.registry.Get(l.mode)(l.text)
		if err != nil {
			return nil, err
		}
		success, ok := outcome.(mode.Success)
		if !ok {
			// Failures are already shown as diagnostics.
			return nil, nil
		}
		contents := []lsp.MarkedString{lsp.RawMarkedString("= " + success.Output)}
		if success.Typeset != "" {
			contents = append(contents, lsp.RawMarkedString("$"+success.Typeset+"$"))
		}
		rg := lineRange(l, diag.Ranging{From: 0, To: len([]rune(l.text))})
		return &lsp.Hover{Contents: contents, Range: &rg}, nil
	}
	return nil, nil
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, diags []lsp.Diagnostic) {
	err := conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diags})
	if err != nil {
		logger.Printf("publish diagnostics for %s: %v", uri, err)
	}
}

func (s *server) diagnostics(content string) []lsp.Diagnostic {
	diags := []lsp.Diagnostic{}
	for _, l := range s.lines(content) {
		if l.directive {
			if l.badMode != nil {
				diags = append(diags, lsp.Diagnostic{
					Range:    lineRange(l, *l.badMode),
					Severity: lsp.Warning,
					Source:   "smolcalc",
					Message:  "unknown mode; using " + l.mode.String(),
				})
			}
			continue
		}
		outcome, err := s.registry.Get(l.mode)(l.text)
		if err != nil {
			diags = append(diags, lsp.Diagnostic{
				Range:    lineRange(l, diag.Ranging{}),
				Severity: lsp.Error,
				Source:   "smolcalc",
				Message:  fmt.Sprint("evaluator failed: ", err),
			})
			continue
		}
		if failure, ok := outcome.(mode.Failure); ok {
			diags = append(diags, lsp.Diagnostic{
				Range:    lineRange(l, failure.Span),
				Severity: lsp.Error,
				Source:   l.mode.String(),
				Message:  failure.Message,
			})
		}
	}
	return diags
}

// A non-blank line of an expression file.
type line struct {
	no   int
	text string
	// Mode in effect for the line.
	mode mode.Mode
	// Whether the line is a comment.
	directive bool
	// Span of an unknown mode token in a "#mode" comment.
	badMode *diag.Ranging
}

func (s *server) lines(content string) []line {
	var lines []line
	m := s.mode
	for i, text := range strings.Split(content, "\n") {
		text = strings.TrimSuffix(text, "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		l := line{no: i, text: text, mode: m}
		if comment, ok := strings.CutPrefix(strings.TrimSpace(text), "#"); ok {
			l.directive = true
			if fields := strings.Fields(comment); len(fields) == 2 && fields[0] == "mode" {
				if parsed, ok := parseMode(fields[1]); ok {
					m = parsed
				} else {
					from := len([]rune(text[:strings.LastIndex(text, fields[1])]))
					l.badMode = &diag.Ranging{From: from, To: from + len([]rune(fields[1]))}
				}
			}
			l.mode = m
		}
		lines = append(lines, l)
	}
	return lines
}

// Parses a mode token. The default mode has an empty token, so it is also
// accepted by name.
func parseMode(s string) (mode.Mode, bool) {
	if s == mode.Rational.String() {
		return mode.Rational, true
	}
	return mode.Parse(s)
}

// Converts a span in runes within l to an LSP range.
func lineRange(l line, r diag.Ranging) lsp.Range {
	r = r.Clamp(len([]rune(l.text)))
	return lsp.Range{
		Start: lsp.Position{Line: l.no, Character: utf16Len(l.text, r.From)},
		End:   lsp.Position{Line: l.no, Character: utf16Len(l.text, r.To)},
	}
}

// Returns the number of UTF-16 code units encoding the first n runes of s.
func utf16Len(s string, n int) int {
	units := 0
	for i, r := range []rune(s) {
		if i == n {
			break
		}
		if r <= 0xFFFF {
			// Encoded in UTF-16 with one unit
			units++
		} else {
			// Encoded in UTF-16 with two units
			units += 2
		}
	}
	return units
}
