package lsp

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	protocol "github.com/gluax-lang/lsp"

	"github.com/kvlift/kvlift/frontend"
)

func RunLSP() error {
	return NewHandler().Serve(context.Background())
}

// Handler serves LSP over stdio. Every KV file is analyzed on its own; there
// is no cross-file project state to invalidate.
type Handler struct {
	*protocol.Server
	fileCache map[string]string
	mu        sync.Mutex
}

func NewHandler() *Handler {
	h := &Handler{
		fileCache: make(map[string]string),
	}
	h.Server = protocol.NewServer(os.Stdin, os.Stdout, h)
	return h
}

func (h *Handler) Initialize(p *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	return &protocol.InitializeResult{Capabilities: protocol.ServerCapabilities{
		TextDocumentSync: protocol.NewTextDocumentSyncOptions(protocol.TextDocumentSyncOptions{
			OpenClose: true,
			Change:    protocol.TextDocumentSyncKindFull,
			Save: &protocol.SaveOptions{
				IncludeText: true,
			},
		}),
	}}, nil
}

func (h *Handler) Initialized() error {
	return nil
}

func (h *Handler) DidOpen(p *protocol.DidOpenTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	uri := p.TextDocument.URI
	text := p.TextDocument.Text
	h.fileCache[uri] = text
	h.handleDiagnostics(uri, text)
	return nil
}

func (h *Handler) DidChange(p *protocol.DidChangeTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	uri := p.TextDocument.URI
	text := p.ContentChanges[0].Text
	h.fileCache[uri] = text
	h.handleDiagnostics(uri, text)
	return nil
}

func (h *Handler) DidClose(p *protocol.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.fileCache, p.TextDocument.URI)
	return nil
}

func (h *Handler) DidSave(p *protocol.DidSaveTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	uri := p.TextDocument.URI
	if p.Text == nil {
		return nil
	}
	text := *p.Text
	h.fileCache[uri] = text
	h.handleDiagnostics(uri, text)
	return nil
}

func (h *Handler) handleDiagnostics(uri, code string) {
	name := uri
	if path, err := uriToFilePath(uri); err == nil {
		name = filepath.Base(path)
	}
	analysis := frontend.Analyze(name, code)
	// Publish even when empty so stale diagnostics clear.
	diags := analysis.Diags
	if diags == nil {
		diags = []protocol.Diagnostic{}
	}
	h.PublishDiagnostics(uri, diags)
}

// uriToFilePath converts a file:// URI into an absolute filesystem path.
func uriToFilePath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid URI: %w", err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported scheme %q (must be file)", u.Scheme)
	}

	p, err := url.PathUnescape(u.Path)
	if err != nil {
		return "", fmt.Errorf("cannot unescape path: %w", err)
	}

	// On Windows, strip the leading slash before the drive letter
	if runtime.GOOS == "windows" {
		if strings.HasPrefix(p, "/") && len(p) >= 3 && p[2] == ':' {
			p = p[1:]
		}
	}

	return filepath.FromSlash(p), nil
}
