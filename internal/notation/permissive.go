package notation

import (
	"fmt"
	"strings"
)

// PermissiveGrammar is the stand-in Grammar used when no real notation
// parser is wired in. It only enforces bracket and angle nesting and splits
// the body into atoms; everything between delimiters is a leaf. The real
// grammar remains an external collaborator.
type PermissiveGrammar struct{}

var bracketPairs = map[byte]byte{'[': ']', '{': '}', '<': '>', '(': ')'}
var closers = map[byte]byte{']': '[', '}': '{', '>': '<', ')': '('}

// Parse checks bracket nesting over the quoted input.
func (PermissiveGrammar) Parse(quoted string) error {
	type open struct {
		ch  byte
		off int
	}
	var stack []open
	for i := 1; i < len(quoted)-1; i++ {
		c := quoted[i]
		if _, ok := bracketPairs[c]; ok {
			stack = append(stack, open{ch: c, off: i})
			continue
		}
		if want, ok := closers[c]; ok {
			if len(stack) == 0 || stack[len(stack)-1].ch != want {
				found := string(c)
				var expected []string
				if len(stack) > 0 {
					expected = []string{string(bracketPairs[stack[len(stack)-1].ch])}
				}
				return &SyntaxError{
					Message:  fmt.Sprintf("unmatched '%c'", c),
					Loc:      &Loc{Offset: i},
					Expected: expected,
					Found:    &found,
				}
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return &SyntaxError{
			Message:  fmt.Sprintf("unclosed '%c'", top.ch),
			Loc:      &Loc{Offset: top.off},
			Expected: []string{string(bracketPairs[top.ch])},
			Found:    nil,
		}
	}
	return nil
}

// Leaves tokenizes the quoted input into atom leaves. Delimiters follow the
// notation's punctuation set.
func (PermissiveGrammar) Leaves(quoted string) ([]Leaf, error) {
	var out []Leaf
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		out = append(out, Leaf{
			Kind:  LeafAtom,
			Text:  quoted[start:end],
			Start: start,
			End:   end,
		})
		start = -1
	}
	for i := 1; i < len(quoted)-1; i++ {
		if IsDelimiter(quoted[i]) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(quoted) - 1)
	return out, nil
}

const delimiters = " \t\n[]{}()<>:*/!?@~,|"

// IsDelimiter reports whether c separates atoms in the notation.
func IsDelimiter(c byte) bool {
	return strings.IndexByte(delimiters, c) >= 0
}
