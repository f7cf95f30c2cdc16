package lsp

import "encoding/json"

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	if len(params.Settings) == 0 {
		return nil
	}
	var settings lspSettings
	if err := json.Unmarshal(params.Settings, &settings); err != nil {
		return nil
	}
	if settings.Tempo.LSP.Trace != nil {
		s.mu.Lock()
		s.traceLSP = *settings.Tempo.LSP.Trace
		s.mu.Unlock()
		s.logf("trace logging: %v", *settings.Tempo.LSP.Trace)
	}
	return nil
}
