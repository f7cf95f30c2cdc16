package diag

import (
	"bytes"
	"strings"
	"testing"

	"tempo/internal/source"
)

func TestBagCap(t *testing.T) {
	bag := NewBag(2)
	for i := 0; i < 3; i++ {
		bag.Add(Diagnostic{Severity: SevWarning, Code: CodeUnknownSample})
	}
	if bag.Len() != 2 {
		t.Fatalf("bag len = %d, want 2", bag.Len())
	}
	if bag.HasErrors() {
		t.Fatal("no errors expected")
	}
	bag2 := NewBag(5)
	bag2.Add(Diagnostic{Severity: SevError, Code: CodeParseError})
	if !bag2.HasErrors() {
		t.Fatal("expected errors")
	}
}

func TestSeverityLSP(t *testing.T) {
	if SevError.LSP() != 1 || SevWarning.LSP() != 2 || SevHint.LSP() != 4 {
		t.Fatalf("severity mapping: %d %d %d", SevError.LSP(), SevWarning.LSP(), SevHint.LSP())
	}
}

func TestReporterFormat(t *testing.T) {
	f := source.NewFile("a.js", []byte("s(\"bd sx hh\")\n"))
	var buf bytes.Buffer
	r := &Reporter{Out: &buf}
	r.Report(f, []Diagnostic{
		{
			Severity: SevWarning,
			Code:     CodeUnknownSample,
			Message:  "unknown sample 'sx'",
			Span:     source.NewSpan(6, 8),
		},
	})
	out := buf.String()
	if !strings.Contains(out, "a.js:1:7: WARNING unknown-sample: unknown sample 'sx'") {
		t.Errorf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "^~") {
		t.Errorf("marker missing:\n%s", out)
	}
}
