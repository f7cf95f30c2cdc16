package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
)

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	server := NewServer(bytes.NewReader(nil), &out, ServerOptions{})
	return server, &out
}

func openDoc(t *testing.T, server *Server, uri, text string) {
	t.Helper()
	params := didOpenTextDocumentParams{
		TextDocument: textDocumentItem{
			URI:     uri,
			Version: 1,
			Text:    text,
		},
	}
	payload, _ := json.Marshal(params)
	if err := server.handleDidOpen(&rpcMessage{Method: "textDocument/didOpen", Params: payload}); err != nil {
		t.Fatalf("didOpen: %v", err)
	}
}

// decodeMessages re-reads everything the server wrote so far and resets the
// buffer, so each test step inspects only its own output.
func decodeMessages(t *testing.T, out *bytes.Buffer) []rpcMessage {
	t.Helper()
	reader := bufio.NewReader(bytes.NewReader(out.Bytes()))
	out.Reset()
	var msgs []rpcMessage
	for {
		payload, err := readMessage(reader)
		if err != nil {
			return msgs
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode message: %v", err)
		}
		msgs = append(msgs, msg)
	}
}

func lastPublish(t *testing.T, out *bytes.Buffer) publishDiagnosticsParams {
	t.Helper()
	var found *publishDiagnosticsParams
	for _, msg := range decodeMessages(t, out) {
		if msg.Method != "textDocument/publishDiagnostics" {
			continue
		}
		var params publishDiagnosticsParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			t.Fatalf("decode publish params: %v", err)
		}
		found = &params
	}
	if found == nil {
		t.Fatal("expected a publishDiagnostics notification")
	}
	return *found
}

func lastResult(t *testing.T, out *bytes.Buffer, into any) {
	t.Helper()
	msgs := decodeMessages(t, out)
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Method == "" && len(msgs[i].Result) > 0 {
			if err := json.Unmarshal(msgs[i].Result, into); err != nil {
				t.Fatalf("decode result: %v", err)
			}
			return
		}
	}
	t.Fatal("expected a response with a result")
}
