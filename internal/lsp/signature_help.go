package lsp

import (
	"encoding/json"

	"tempo/internal/scan"
)

func (s *Server) handleSignatureHelp(msg *rpcMessage) error {
	var params signatureHelpParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	file := s.docFile(params.TextDocument.URI)
	if file == nil {
		return s.sendResponse(msg.ID, nil)
	}
	text := string(file.Content)
	offset := int(offsetForPositionInFile(file, position(params.Position)))

	call, ok := scan.EnclosingCall(text, offset)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	fn, ok := s.registry.Function(call.Name)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}

	info := signatureInformation{
		Label: fn.Signature(),
		Documentation: &markupContent{
			Kind:  "markdown",
			Value: fn.Doc,
		},
	}
	for _, p := range fn.Params {
		info.Parameters = append(info.Parameters, parameterInformation{Label: p})
	}

	active := call.ArgIndex
	if len(fn.Params) > 0 && active >= len(fn.Params) {
		active = len(fn.Params) - 1
	}
	return s.sendResponse(msg.ID, signatureHelp{
		Signatures:      []signatureInformation{info},
		ActiveSignature: 0,
		ActiveParameter: active,
	})
}
