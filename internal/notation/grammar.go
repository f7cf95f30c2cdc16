// Package notation wraps the external pattern grammar behind a small
// interface and normalizes its results into one outcome shape.
//
// Parser space: the grammar receives the literal body wrapped in synthetic
// double quotes. All offsets it reports are measured against that quoted
// input, with the leading quote at offset 0 — so a body character at index i
// sits at parser offset i+1. Callers subtract 1 before adding the body's
// document offset.
package notation

import "fmt"

// Leaf is one atomic token of a parsed pattern.
type Leaf struct {
	Kind  string
	Text  string
	Start int // parser-space offset, inclusive
	End   int // parser-space offset, exclusive
}

// LeafAtom is the leaf kind classified against the vocabulary.
const LeafAtom = "atom"

// Loc is a parser-space error location. Zero fields mean "unknown".
type Loc struct {
	Offset    int
	EndOffset int
	Line      int // 1-based, used when Offset is unknown
	Col       int // 1-based
}

// SyntaxError is the structured failure a Grammar reports.
type SyntaxError struct {
	Message  string
	Loc      *Loc
	Expected []string
	Found    *string // nil means end of input
}

func (e *SyntaxError) Error() string {
	if e.Loc != nil && e.Loc.Offset > 0 {
		return fmt.Sprintf("%s at offset %d", e.Message, e.Loc.Offset)
	}
	return e.Message
}

// Grammar is the external notation parser boundary. Implementations may
// panic or return arbitrary errors; the Delegate contains both.
type Grammar interface {
	// Parse checks the quoted input, returning *SyntaxError (or any error)
	// when the notation is malformed.
	Parse(quoted string) error
	// Leaves returns the flat list of parsed atoms for valid input.
	Leaves(quoted string) ([]Leaf, error)
}
