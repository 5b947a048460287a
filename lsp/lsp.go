// Package lsp serves record files to editors: parse errors become
// diagnostics, and hovering a game shows its minimal bag.
package lsp

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/cubes/bag"
	"github.com/dhamidi/cubes/record"
	"github.com/dhamidi/cubes/workspace"
)

const lsName = "cubes"

var log = commonlog.GetLogger("cubes.lsp")

type Options struct {
	Capacity   bag.Bag
	Extensions []string
}

type LSPServer struct {
	opts      Options
	workspace *workspace.Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(version string, opts Options) *LSPServer {
	ls := &LSPServer{
		opts:      opts,
		version:   version,
		workspace: workspace.New(".", opts.Extensions...),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
		TextDocumentHover:     ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = workspace.New(rootDir, ls.opts.Extensions...)
	log.Infof("initialize: root %s", rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.workspace.ScanAll(); err != nil {
		log.Warningf("scan %s: %s", ls.workspace.RootDir(), err)
	}
	for _, path := range ls.workspace.Paths() {
		ls.publish(ctx, pathToURI(path), ls.workspace.GetFile(path))
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		return ls.update(ctx, params.TextDocument.URI, textChange.Text)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.workspace.RemoveFile(path)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		return ls.update(ctx, params.TextDocument.URI, *params.Text)
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	doc, err := ls.workspace.ScanFile(path)
	if err != nil {
		log.Warningf("rescan %s: %s", path, err)
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, doc)
	return nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	doc := ls.workspace.GetFile(path)
	if doc == nil {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	text, ok := HoverText(doc, line, ls.opts.Capacity)
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: text,
		},
	}, nil
}

func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	doc := ls.workspace.UpdateFile(path, []byte(text))
	ls.publish(ctx, uri, doc)
	return nil
}

func (ls *LSPServer) publish(ctx *glsp.Context, uri protocol.DocumentUri, doc *workspace.Document) {
	if doc == nil {
		return
	}
	if doc.ParseErr != nil {
		log.Debugf("%s: %s", uri, doc.ParseErr)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Diagnostics(doc),
	})
}

// Diagnostics converts a document's parse error, if any, into an error
// diagnostic spanning the offending token.
func Diagnostics(doc *workspace.Document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.ParseErr == nil {
		return diagnostics
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	var perr *record.ParseError
	if !errors.As(doc.ParseErr, &perr) {
		return append(diagnostics, protocol.Diagnostic{
			Severity: &severity,
			Source:   &source,
			Message:  doc.ParseErr.Error(),
		})
	}

	start := protocol.Position{
		Line:      protocol.UInteger(perr.Pos.Line - 1),
		Character: protocol.UInteger(perr.Pos.Column - 1),
	}
	end := start
	end.Character += protocol.UInteger(max(1, len(strings.TrimRight(perr.Found, "\r\n"))))

	found := "end of input"
	if perr.Found != "" {
		found = fmt.Sprintf("%q", perr.Found)
	}
	return append(diagnostics, protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  fmt.Sprintf("expected %s, found %s", perr.Expected, found),
	})
}

// HoverText describes the game on the 1-based line as Markdown.
func HoverText(doc *workspace.Document, line int, capacity bag.Bag) (string, bool) {
	r, ok := doc.RecordAtLine(line)
	if !ok {
		return "", false
	}

	minimal := bag.Minimal(r)
	feasible := "no"
	if bag.Feasible(r, capacity) {
		feasible = "yes"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Game %d** (%d draws)\n\n", r.ID, len(r.Draws))
	fmt.Fprintf(&sb, "- minimal bag: %s\n", minimal)
	fmt.Fprintf(&sb, "- power: %d\n", minimal.Power())
	fmt.Fprintf(&sb, "- feasible with %s: %s\n", capacity, feasible)
	return sb.String(), true
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) protocol.DocumentUri {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
