package source

import "fmt"

// Span is a half-open byte range [Start, End) into a file's content.
type Span struct {
	Start uint32
	End   uint32
}

func NewSpan(start, end uint32) Span {
	if end < start {
		end = start
	}
	return Span{Start: start, End: end}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Clamp restricts the span to [lo, hi].
func (s Span) Clamp(lo, hi uint32) Span {
	if s.Start < lo {
		s.Start = lo
	}
	if s.End > hi {
		s.End = hi
	}
	if s.End < s.Start {
		s.End = s.Start
	}
	return s
}

// Contains reports whether the offset falls inside the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off < s.End
}
