package lsp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"tempo/internal/analysis"
	"tempo/internal/notation"
	"tempo/internal/source"
	"tempo/internal/vocab"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Registry       *vocab.Registry
	Grammar        notation.Grammar
	MaxDiagnostics int
}

// document is the per-URI state: current text plus the suggestion side-table
// from the last validation, keyed by "line:character" of each diagnostic's
// start position.
type document struct {
	file        *source.File
	version     int
	suggestions map[string]analysis.Suggestion
	published   bool
}

// Server handles stdio JSON-RPC for the tempo LSP.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex
	mu     sync.Mutex
	docs   map[string]*document

	registry  *vocab.Registry
	validator *analysis.Validator

	workspaceRoot     string
	shutdownRequested bool
	traceLSP          bool
}

// NewServer constructs a new LSP server. It registers itself with the
// registry so engine vocabulary updates re-validate every open document.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	registry := opts.Registry
	if registry == nil {
		registry = vocab.New()
	}
	grammar := opts.Grammar
	if grammar == nil {
		grammar = notation.PermissiveGrammar{}
	}
	validator := analysis.New(registry, notation.NewDelegate(grammar))
	if opts.MaxDiagnostics > 0 {
		validator.MaxDiags = opts.MaxDiagnostics
	}
	s := &Server{
		in:        bufio.NewReader(in),
		out:       bufio.NewWriter(out),
		docs:      make(map[string]*document),
		registry:  registry,
		validator: validator,
	}
	registry.OnUpdate(s.revalidateAll)
	return s
}

// Run serves LSP requests until shutdown.
func (s *Server) Run() error {
	for {
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		if s.shutdownRequested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/signatureHelp":
		return s.handleSignatureHelp(msg)
	case "textDocument/codeAction":
		return s.handleCodeAction(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, -32601, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	root := ""
	if params.RootURI != "" {
		root = uriToPath(params.RootURI)
	}
	if root == "" && params.RootPath != "" {
		root = params.RootPath
	}
	if root == "" && len(params.WorkspaceFolders) > 0 {
		root = uriToPath(params.WorkspaceFolders[0].URI)
	}
	s.mu.Lock()
	s.workspaceRoot = root
	s.mu.Unlock()

	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    2,
				Save: saveOptions{
					IncludeText: true,
				},
			},
			HoverProvider: true,
			CompletionProvider: &completionOptions{
				TriggerCharacters: []string{"\"", "'", " ", ":", "(", ".", ","},
			},
			SignatureHelpProvider: &signatureHelpOptions{
				TriggerCharacters: []string{"(", ","},
			},
			CodeActionProvider: &codeActionOptions{
				CodeActionKinds: []string{"quickfix"},
			},
		},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	uris := make([]string, 0, len(s.docs))
	for uri, doc := range s.docs {
		if doc.published {
			uris = append(uris, uri)
		}
	}
	s.mu.Unlock()
	for _, uri := range uris {
		if err := s.sendPublish(uri, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := params.TextDocument.URI
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	s.docs[uri] = &document{
		file:    source.NewFile(uriToPath(uri), []byte(params.TextDocument.Text)),
		version: params.TextDocument.Version,
	}
	s.mu.Unlock()
	return s.validateAndPublish(uri)
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := params.TextDocument.URI
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	applyChangesToFile(doc.file, params.ContentChanges)
	doc.version = params.TextDocument.Version
	trace := s.traceLSP
	s.mu.Unlock()
	if trace {
		s.logf("didChange: uri=%s version=%d", uri, params.TextDocument.Version)
	}
	return s.validateAndPublish(uri)
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := params.TextDocument.URI
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if ok && params.Text != nil {
		doc.file.SetContent([]byte(*params.Text))
	}
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return s.validateAndPublish(uri)
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := params.TextDocument.URI
	s.mu.Lock()
	doc, had := s.docs[uri]
	delete(s.docs, uri)
	s.mu.Unlock()
	if had && doc.published {
		if err := s.sendPublish(uri, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
	return nil
}

// docFile returns the live file for a URI, or nil when unknown.
func (s *Server) docFile(uri string) *source.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[uri]; ok {
		return doc.file
	}
	return nil
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      json.RawMessage(id),
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      json.RawMessage(id),
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendPublish(uri string, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  "textDocument/publishDiagnostics",
		"params": publishDiagnosticsParams{
			URI:         uri,
			Diagnostics: list,
		},
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "lsp: "+format+"\n", args...)
}
