package lsp

import (
	"encoding/json"
	"testing"
)

func requestCompletion(t *testing.T, server *Server, uri string, pos position) {
	t.Helper()
	payload, _ := json.Marshal(completionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     pos,
	})
	err := server.handleCompletion(&rpcMessage{
		ID:     json.RawMessage(`10`),
		Method: "textDocument/completion",
		Params: payload,
	})
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
}

func completionAt(t *testing.T, text string, offset position) []completionItem {
	t.Helper()
	server, out := newTestServer(t)
	openDoc(t, server, docURI, text)
	decodeMessages(t, out)
	requestCompletion(t, server, docURI, offset)
	var list completionList
	lastResult(t, out, &list)
	return list.Items
}

func hasLabel(items []completionItem, label string) bool {
	for _, item := range items {
		if item.Label == label {
			return true
		}
	}
	return false
}

func TestCompletionInsideLiteralOffersSamples(t *testing.T) {
	// Cursor right after the opening quote of s("...").
	items := completionAt(t, `s("bd ")`, position{Line: 0, Character: 6})
	if !hasLabel(items, "bd") || !hasLabel(items, "hh") {
		t.Fatalf("expected sample completions, got %d items", len(items))
	}
	if !hasLabel(items, "~") {
		t.Fatal("expected operator completions alongside samples")
	}
	if hasLabel(items, "RolandTR808") {
		t.Fatal("bank names should not appear in a plain sample literal")
	}
}

func TestCompletionInBankCallOffersBanks(t *testing.T) {
	items := completionAt(t, `s("bd").bank("")`, position{Line: 0, Character: 14})
	if !hasLabel(items, "RolandTR808") {
		t.Fatalf("expected bank completions, got %d items", len(items))
	}
	if hasLabel(items, "bd") {
		t.Fatal("samples should not appear inside bank()")
	}
}

func TestCompletionInScaleCallOffersScales(t *testing.T) {
	items := completionAt(t, `n("0 2 4").scale("")`, position{Line: 0, Character: 18})
	if !hasLabel(items, "major") || !hasLabel(items, "minor") {
		t.Fatalf("expected scale completions, got %d items", len(items))
	}
}

func TestCompletionAfterDotOffersFunctions(t *testing.T) {
	items := completionAt(t, `s("bd").`, position{Line: 0, Character: 8})
	if !hasLabel(items, "gain") || !hasLabel(items, "bank") {
		t.Fatalf("expected function completions, got %d items", len(items))
	}
	for _, item := range items {
		if item.Label == "gain" {
			if item.Detail == "" || item.Documentation == nil {
				t.Fatalf("expected signature and docs on %q", item.Label)
			}
		}
	}
}

func TestCompletionOutsideAnyContextIsEmpty(t *testing.T) {
	items := completionAt(t, `const x = 1`, position{Line: 0, Character: 11})
	if len(items) != 0 {
		t.Fatalf("expected no completions, got %d", len(items))
	}
}

func TestCompletionIncludesEngineSamples(t *testing.T) {
	server, out := newTestServer(t)
	server.registry.ReplaceSamples([]string{"zz1"})
	openDoc(t, server, docURI, `s("")`)
	decodeMessages(t, out)
	requestCompletion(t, server, docURI, position{Line: 0, Character: 3})
	var list completionList
	lastResult(t, out, &list)
	if !hasLabel(list.Items, "zz1") || !hasLabel(list.Items, "bd") {
		t.Fatal("expected the union of default and engine samples")
	}
}
