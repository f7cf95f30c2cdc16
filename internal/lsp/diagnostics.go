package lsp

import (
	"fmt"

	"tempo/internal/analysis"
	"tempo/internal/source"
)

const diagnosticSource = "tempo"

// validateAndPublish runs validation over a document and pushes the full
// diagnostic set for its URI. Validation is synchronous: by the time the
// notification handler returns, diagnostics reflect the latest content.
func (s *Server) validateAndPublish(uri string) error {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	file := doc.file
	s.mu.Unlock()

	diags, suggestions := s.validator.Validate(file)

	list := make([]lspDiagnostic, 0, len(diags))
	for _, d := range diags {
		list = append(list, lspDiagnostic{
			Range:    rangeForSpan(file, d.Span),
			Severity: d.Severity.LSP(),
			Code:     string(d.Code),
			Source:   diagnosticSource,
			Message:  d.Message,
		})
	}

	table := make(map[string]analysis.Suggestion, len(suggestions))
	for _, sug := range suggestions {
		table[suggestionKey(file, sug.Span)] = sug
	}

	s.mu.Lock()
	if doc, ok := s.docs[uri]; ok {
		doc.suggestions = table
		doc.published = true
	}
	s.mu.Unlock()

	return s.sendPublish(uri, list)
}

// suggestionKey identifies a diagnostic by the UTF-16 position of its start,
// which is what the client echoes back in code action requests.
func suggestionKey(file *source.File, span source.Span) string {
	pos := positionForOffsetInFile(file, span.Start)
	return fmt.Sprintf("%d:%d", pos.Line, pos.Character)
}

// revalidateAll re-runs validation for every open document. Wired as a
// registry update hook so engine-driven vocabulary changes refresh
// diagnostics without any client edit.
func (s *Server) revalidateAll() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	s.mu.Unlock()
	for _, uri := range uris {
		if err := s.validateAndPublish(uri); err != nil {
			s.logf("revalidate %s: %v", uri, err)
		}
	}
}
