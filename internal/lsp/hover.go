package lsp

import (
	"encoding/json"
	"fmt"
	"strings"

	"tempo/internal/scan"
	"tempo/internal/source"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	file := s.docFile(params.TextDocument.URI)
	if file == nil {
		return s.sendResponse(msg.ID, nil)
	}
	text := string(file.Content)
	offset := int(offsetForPositionInFile(file, position(params.Position)))

	value, start, end := s.hoverAt(text, offset)
	if value == "" {
		return s.sendResponse(msg.ID, nil)
	}
	rng := rangeForSpan(file, source.NewSpan(safeUint32(start), safeUint32(end)))
	return s.sendResponse(msg.ID, hover{
		Contents: markupContent{Kind: "markdown", Value: value},
		Range:    &rng,
	})
}

// hoverAt resolves documentation for the word under the cursor. Inside a
// literal it recognizes samples, banks, and operators. Outside, it documents
// pattern functions by name.
func (s *Server) hoverAt(text string, offset int) (value string, start, end int) {
	if lit, ok := scan.EnclosingLiteral(text, offset); ok {
		return s.literalHover(lit, offset)
	}
	word, start, end := wordAround(text, offset)
	if word == "" {
		return "", 0, 0
	}
	if fn, ok := s.registry.Function(word); ok {
		return fmt.Sprintf("```\n%s\n```\n\n%s", fn.Signature(), fn.Doc), start, end
	}
	return "", 0, 0
}

func (s *Server) literalHover(lit scan.Literal, offset int) (value string, start, end int) {
	rel := offset - lit.BodyStart
	if rel < 0 || rel > len(lit.Body) {
		return "", 0, 0
	}
	for _, op := range s.registry.Operators() {
		sym := op.Symbol
		if len(sym) == 1 && rel < len(lit.Body) && lit.Body[rel] == sym[0] {
			return fmt.Sprintf("`%s` — %s", sym, op.Doc), offset, offset + 1
		}
	}
	word, ws, we := wordAround(lit.Body, rel)
	if word == "" {
		return "", 0, 0
	}
	base := word
	if i := strings.IndexByte(base, ':'); i >= 0 {
		base = base[:i]
	}
	switch {
	case s.registry.HasSample(base):
		value = fmt.Sprintf("**%s** — sample", base)
	case s.registry.HasBank(base):
		value = fmt.Sprintf("**%s** — sample bank", base)
	default:
		return "", 0, 0
	}
	return value, lit.BodyStart + ws, lit.BodyStart + we
}

// wordAround returns the identifier-like run covering offset, with its
// byte bounds.
func wordAround(text string, offset int) (word string, start, end int) {
	if offset > len(text) {
		offset = len(text)
	}
	start = offset
	for start > 0 && isIdentByteAt(text[start-1]) {
		start--
	}
	end = offset
	for end < len(text) && isIdentByteAt(text[end]) {
		end++
	}
	if start == end {
		return "", 0, 0
	}
	return text[start:end], start, end
}
