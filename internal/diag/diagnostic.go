package diag

import (
	"tempo/internal/source"
)

// Diagnostic is one finding against a document, positioned by byte span.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Span     source.Span
}

// Bag accumulates diagnostics up to a cap.
type Bag struct {
	items []Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 100
	}
	return &Bag{items: make([]Diagnostic, 0, 8), max: max}
}

// Add appends a diagnostic, honoring the cap. Returns false when dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Items() []Diagnostic {
	return b.items
}

func (b *Bag) Len() int {
	return len(b.items)
}

// HasErrors reports whether any diagnostic is SevError.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}
