package lsp

import (
	"encoding/json"

	"tempo/internal/scan"
)

// LSP CompletionItemKind values.
const (
	completionKindMethod   = 2
	completionKindFunction = 3
	completionKindValue    = 12
	completionKindEnumMem  = 20
	completionKindConstant = 21
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	file := s.docFile(params.TextDocument.URI)
	if file == nil {
		return s.sendResponse(msg.ID, completionList{Items: []completionItem{}})
	}
	text := string(file.Content)
	offset := int(offsetForPositionInFile(file, params.Position))

	items := s.completionsAt(text, offset)
	return s.sendResponse(msg.ID, completionList{Items: items})
}

// completionsAt picks the candidate set for a cursor position. Inside a
// string literal the enclosing call decides the vocabulary: bank names for
// bank(), scales for scale(), voicing modes for mode()/voicing(), and the
// effective sample set everywhere else. Outside literals, a preceding dot
// offers the pattern function glossary.
func (s *Server) completionsAt(text string, offset int) []completionItem {
	if lit, ok := scan.EnclosingLiteral(text, offset); ok {
		return s.literalCompletions(text, lit)
	}
	if afterDot(text, offset) {
		return s.functionCompletions()
	}
	return []completionItem{}
}

func (s *Server) literalCompletions(text string, lit scan.Literal) []completionItem {
	if call, ok := scan.EnclosingCall(text, lit.BodyStart-1); ok {
		switch call.Name {
		case "bank":
			return plainItems(s.registry.Banks(), completionKindEnumMem, "bank")
		case "scale":
			return plainItems(s.registry.Scales(), completionKindEnumMem, "scale")
		case "mode", "voicing":
			return plainItems(s.registry.VoicingModes(), completionKindEnumMem, "voicing mode")
		}
	}
	items := plainItems(s.registry.Samples(), completionKindValue, "sample")
	for _, op := range s.registry.Operators() {
		items = append(items, completionItem{
			Label:  op.Symbol,
			Kind:   completionKindConstant,
			Detail: op.Doc,
		})
	}
	return items
}

func (s *Server) functionCompletions() []completionItem {
	fns := s.registry.Functions()
	items := make([]completionItem, 0, len(fns))
	for _, fn := range fns {
		items = append(items, completionItem{
			Label:  fn.Name,
			Kind:   completionKindMethod,
			Detail: fn.Signature(),
			Documentation: &markupContent{
				Kind:  "markdown",
				Value: fn.Doc,
			},
		})
	}
	return items
}

func plainItems(labels []string, kind int, detail string) []completionItem {
	items := make([]completionItem, 0, len(labels))
	for _, label := range labels {
		items = append(items, completionItem{Label: label, Kind: kind, Detail: detail})
	}
	return items
}

// afterDot reports whether the nearest non-space byte before offset is a dot
// followed only by identifier characters up to the cursor.
func afterDot(text string, offset int) bool {
	if offset > len(text) {
		offset = len(text)
	}
	i := offset - 1
	for i >= 0 && isIdentByteAt(text[i]) {
		i--
	}
	return i >= 0 && text[i] == '.'
}

func isIdentByteAt(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
