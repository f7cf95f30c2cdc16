package lsp

import (
	"testing"

	"tempo/internal/source"
)

func TestApplyFullDocumentChange(t *testing.T) {
	file := source.NewFile("t.js", []byte("old"))
	applyChangesToFile(file, []textDocumentContentChangeEvent{
		{Text: "brand new"},
	})
	if string(file.Content) != "brand new" {
		t.Fatalf("got %q", file.Content)
	}
}

func TestApplyIncrementalChanges(t *testing.T) {
	file := source.NewFile("t.js", []byte("s(\"bd sx\")\n"))
	applyChangesToFile(file, []textDocumentContentChangeEvent{
		{
			Range: &lspRange{
				Start: position{Line: 0, Character: 6},
				End:   position{Line: 0, Character: 8},
			},
			Text: "sd",
		},
		{
			Range: &lspRange{
				Start: position{Line: 0, Character: 8},
				End:   position{Line: 0, Character: 8},
			},
			Text: " hh",
		},
	})
	if string(file.Content) != "s(\"bd sd hh\")\n" {
		t.Fatalf("got %q", file.Content)
	}
}

func TestApplyChangeSequentialRanges(t *testing.T) {
	// The second change's range refers to the document after the first.
	file := source.NewFile("t.js", []byte("ab\ncd\n"))
	applyChangesToFile(file, []textDocumentContentChangeEvent{
		{
			Range: &lspRange{
				Start: position{Line: 0, Character: 0},
				End:   position{Line: 1, Character: 0},
			},
			Text: "",
		},
		{
			Range: &lspRange{
				Start: position{Line: 0, Character: 2},
				End:   position{Line: 0, Character: 2},
			},
			Text: "!",
		},
	})
	if string(file.Content) != "cd!\n" {
		t.Fatalf("got %q", file.Content)
	}
}

func TestApplyChangeClampsOutOfRange(t *testing.T) {
	file := source.NewFile("t.js", []byte("ab"))
	applyChangesToFile(file, []textDocumentContentChangeEvent{
		{
			Range: &lspRange{
				Start: position{Line: 5, Character: 0},
				End:   position{Line: 9, Character: 9},
			},
			Text: "c",
		},
	})
	if string(file.Content) != "abc" {
		t.Fatalf("got %q", file.Content)
	}
}
