package notation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Failure is the normalized error half of an Outcome. Start/End are
// parser-space offsets; Start == 0 means the grammar gave no location.
type Failure struct {
	Message  string
	Start    int
	End      int
	Expected []string
	Found    *string
}

// Located reports whether the failure carries a usable position.
func (f *Failure) Located() bool {
	return f != nil && f.Start > 0
}

// Outcome is the tagged result of parsing one literal body: either a leaf
// list or a normalized failure, never both.
type Outcome struct {
	Leaves  []Leaf
	Failure *Failure
}

// OK reports whether the literal parsed.
func (o Outcome) OK() bool {
	return o.Failure == nil
}

// Delegate wraps a Grammar: it quotes literal bodies the way the grammar
// expects and converts every kind of grammar failure — structured errors,
// plain errors, panics — into the Failure variant.
type Delegate struct {
	grammar Grammar
}

func NewDelegate(g Grammar) *Delegate {
	return &Delegate{grammar: g}
}

// Quote escapes backslashes and double quotes in body and wraps it in the
// synthetic double-quoted form the grammar requires.
func Quote(body string) string {
	escaped := strings.ReplaceAll(body, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}

// ParseLiteral parses a bare literal body. It never panics and never
// returns a raw grammar error.
func (d *Delegate) ParseLiteral(body string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Failure: &Failure{Message: fmt.Sprint(r)}}
		}
	}()
	quoted := Quote(body)
	if err := d.grammar.Parse(quoted); err != nil {
		return Outcome{Failure: normalizeError(err, quoted)}
	}
	leaves, err := d.grammar.Leaves(quoted)
	if err != nil {
		return Outcome{Failure: normalizeError(err, quoted)}
	}
	return Outcome{Leaves: leaves}
}

var lineColRE = regexp.MustCompile(`line (\d+)(?: column (\d+))?`)

func normalizeError(err error, quoted string) *Failure {
	var se *SyntaxError
	if errors.As(err, &se) {
		f := &Failure{
			Message:  se.Message,
			Expected: se.Expected,
			Found:    se.Found,
		}
		if loc := se.Loc; loc != nil {
			switch {
			case loc.Offset > 0:
				f.Start = loc.Offset
				f.End = loc.EndOffset
				if f.End <= f.Start {
					f.End = f.Start + 1
				}
			case loc.Line > 0:
				f.Start = offsetForLineCol(quoted, loc.Line, loc.Col)
				f.End = f.Start + 1
			}
		}
		return f
	}
	// Best effort: fish a position out of the message text.
	f := &Failure{Message: err.Error()}
	if m := lineColRE.FindStringSubmatch(err.Error()); m != nil {
		line, _ := strconv.Atoi(m[1])
		col := 1
		if m[2] != "" {
			col, _ = strconv.Atoi(m[2])
		}
		if off := offsetForLineCol(quoted, line, col); off > 0 {
			f.Start = off
			f.End = off + 1
		}
	}
	return f
}

// offsetForLineCol converts a 1-based line/column in the quoted input into a
// parser-space offset, or 0 when out of range.
func offsetForLineCol(quoted string, line, col int) int {
	if line < 1 {
		return 0
	}
	if col < 1 {
		col = 1
	}
	lineStart := 0
	for n := 1; n < line; n++ {
		next := strings.IndexByte(quoted[lineStart:], '\n')
		if next < 0 {
			return 0
		}
		lineStart += next + 1
	}
	off := lineStart + col - 1
	if off >= len(quoted) {
		off = len(quoted) - 1
	}
	if off < 1 {
		off = 1
	}
	return off
}
