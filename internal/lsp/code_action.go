package lsp

import (
	"encoding/json"
	"fmt"

	"tempo/internal/analysis"
	"tempo/internal/source"
)

func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	uri := params.TextDocument.URI

	s.mu.Lock()
	doc, ok := s.docs[uri]
	var file *source.File
	var table map[string]analysis.Suggestion
	if ok {
		file = doc.file
		table = doc.suggestions
	}
	s.mu.Unlock()
	if !ok || len(table) == 0 {
		return s.sendResponse(msg.ID, []codeAction{})
	}

	actions := []codeAction{}
	for _, d := range params.Context.Diagnostics {
		key := fmt.Sprintf("%d:%d", d.Range.Start.Line, d.Range.Start.Character)
		sug, ok := table[key]
		if !ok {
			continue
		}
		rng := rangeForSpan(file, sug.Span)
		for _, fix := range sug.Suggestions {
			diag := d
			actions = append(actions, codeAction{
				Title:       fmt.Sprintf("Replace '%s' with '%s'", sug.Word, fix),
				Kind:        "quickfix",
				Diagnostics: []lspDiagnostic{diag},
				Edit: &workspaceEdit{
					Changes: map[string][]textEdit{
						uri: {{Range: rng, NewText: fix}},
					},
				},
			})
		}
	}
	return s.sendResponse(msg.ID, actions)
}
