package analysis

import (
	"errors"
	"reflect"
	"testing"

	"tempo/internal/diag"
	"tempo/internal/notation"
	"tempo/internal/scan"
	"tempo/internal/source"
	"tempo/internal/vocab"
)

func scanLiteral(body string, start int) scan.Literal {
	return scan.Literal{Body: body, BodyStart: start}
}

func newValidator() *Validator {
	return New(vocab.New(), notation.NewDelegate(notation.PermissiveGrammar{}))
}

func validate(t *testing.T, text string) ([]diag.Diagnostic, []Suggestion) {
	t.Helper()
	v := newValidator()
	return v.Validate(source.NewFile("test.js", []byte(text)))
}

func TestKnownSamplesProduceNoDiagnostics(t *testing.T) {
	diags, _ := validate(t, `s("bd sd hh")`)
	if len(diags) != 0 {
		t.Fatalf("diags = %+v", diags)
	}
}

func TestUnknownSampleSpan(t *testing.T) {
	text := `s("bd sx hh")`
	diags, suggestions := validate(t, text)
	if len(diags) != 1 {
		t.Fatalf("diags = %+v", diags)
	}
	d := diags[0]
	if d.Code != diag.CodeUnknownSample {
		t.Fatalf("code = %s", d.Code)
	}
	// "sx" sits at body index 3..5; the body starts at document offset 3.
	if d.Span.Start != 6 || d.Span.End != 8 {
		t.Fatalf("span = %v", d.Span)
	}
	if text[d.Span.Start:d.Span.End] != "sx" {
		t.Fatalf("span text = %q", text[d.Span.Start:d.Span.End])
	}
	if d.Severity != diag.SevWarning {
		t.Fatalf("severity = %v (suggestions %v)", d.Severity, suggestions)
	}
	if len(suggestions) != 1 || suggestions[0].Word != "sx" || len(suggestions[0].Suggestions) == 0 {
		t.Fatalf("suggestions = %+v", suggestions)
	}
}

func TestUnknownSampleWithoutSuggestionIsHint(t *testing.T) {
	diags, _ := validate(t, `s("qqqqqqqq")`)
	if len(diags) != 1 {
		t.Fatalf("diags = %+v", diags)
	}
	if diags[0].Severity != diag.SevHint {
		t.Fatalf("severity = %v", diags[0].Severity)
	}
}

func TestParseErrorSuppressesLeafChecks(t *testing.T) {
	diags, suggestions := validate(t, `s("bd [sd hh")`)
	if len(diags) != 1 {
		t.Fatalf("diags = %+v", diags)
	}
	if diags[0].Code != diag.CodeParseError || diags[0].Severity != diag.SevError {
		t.Fatalf("diag = %+v", diags[0])
	}
	if len(suggestions) != 1 || suggestions[0].Kind != KindUnbalancedBracket {
		t.Fatalf("suggestions = %+v", suggestions)
	}
	if len(suggestions[0].Suggestions) != 0 {
		t.Fatal("syntax errors offer no quick-fix")
	}
}

func TestParseErrorSpanInsideLiteral(t *testing.T) {
	text := `s("bd [sd hh")`
	diags, _ := validate(t, text)
	d := diags[0]
	bodyStart, bodyEnd := uint32(3), uint32(12)
	if d.Span.Start < bodyStart || d.Span.End > bodyEnd {
		t.Fatalf("span %v escapes literal %d..%d", d.Span, bodyStart, bodyEnd)
	}
	if text[d.Span.Start] != '[' {
		t.Fatalf("span starts at %q", text[d.Span.Start])
	}
}

func TestUnknownFunctionSuggestsBank(t *testing.T) {
	text := `s("808").bnak("808")`
	diags, suggestions := validate(t, text)
	var fn *diag.Diagnostic
	for i := range diags {
		if diags[i].Code == diag.CodeUnknownFunction {
			fn = &diags[i]
		}
		if diags[i].Code == diag.CodeUnknownSample {
			t.Fatalf("sample diagnostic leaked: %+v", diags[i])
		}
	}
	if fn == nil {
		t.Fatalf("no unknown-function diagnostic in %+v", diags)
	}
	if text[fn.Span.Start:fn.Span.End] != "bnak" {
		t.Fatalf("span text = %q", text[fn.Span.Start:fn.Span.End])
	}
	found := false
	for _, s := range suggestions {
		if s.Kind == KindFunction && s.Word == "bnak" {
			found = true
			if len(s.Suggestions) == 0 || s.Suggestions[0] != "bank" {
				t.Fatalf("suggestions = %v", s.Suggestions)
			}
		}
	}
	if !found {
		t.Fatal("function suggestion record missing")
	}
}

func TestBankArgumentNotSampleChecked(t *testing.T) {
	diags, _ := validate(t, `s("bd").bank("TR808X")`)
	for _, d := range diags {
		if d.Code == diag.CodeUnknownSample {
			t.Fatalf("bank argument was sample-checked: %+v", d)
		}
	}
}

func TestEngineProvidedSampleAccepted(t *testing.T) {
	reg := vocab.New()
	v := New(reg, notation.NewDelegate(notation.PermissiveGrammar{}))
	f := source.NewFile("test.js", []byte(`s("zz1 bd")`))

	diags, _ := v.Validate(f)
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic before update, got %+v", diags)
	}
	reg.ReplaceSamples([]string{"zz1"})
	diags, _ = v.Validate(f)
	if len(diags) != 0 {
		t.Fatalf("expected clean run after update, got %+v", diags)
	}
}

func TestValidateIdempotent(t *testing.T) {
	v := newValidator()
	f := source.NewFile("test.js", []byte(`s("bd sx [hh").bnak("808")`+"\n"+`note("c e g")`))
	d1, s1 := v.Validate(f)
	d2, s2 := v.Validate(f)
	if !reflect.DeepEqual(d1, d2) {
		t.Fatalf("diagnostics differ:\n%+v\n%+v", d1, d2)
	}
	if !reflect.DeepEqual(s1, s2) {
		t.Fatalf("suggestions differ:\n%+v\n%+v", s1, s2)
	}
}

func TestAtomSkipRules(t *testing.T) {
	clean := []string{
		`note("c e g")`,        // note names
		`note("cs4 eb2 g9")`,   // accidentals and octaves
		`s("bd ~ bd")`,         // rest
		`n("0 1 2 0.5 .25")`,   // numbers
		`struct2("x t f r - _")`, // structural atoms survive even unexcluded calls
		`s("Melody")`,          // uppercase variable reference
	}
	for _, text := range clean {
		if diags, _ := validate(t, text); len(diags) != 0 {
			t.Errorf("%s -> %+v", text, diags)
		}
	}
}

func TestScaleAndVoicingAtoms(t *testing.T) {
	// scale()/mode() arguments are excluded wholesale, but the names also
	// pass atom checks when they appear in plain patterns.
	if diags, _ := validate(t, `x("minor lydian lefthand")`); len(diags) != 0 {
		t.Fatalf("diags = %+v", diags)
	}
}

func TestExcludedLiteralShapes(t *testing.T) {
	texts := []string{
		`load("http://example.com/kit.wav")`,
		`load("./local/kit.wav")`,
		`load("github:user/repo")`,
		`run("x => x.whatever()")`,
		`s("")`,
	}
	for _, text := range texts {
		if diags, _ := validate(t, text); len(diags) != 0 {
			t.Errorf("%s -> %+v", text, diags)
		}
	}
}

// unlocatedGrammar always fails without a position, forcing degraded mode.
type unlocatedGrammar struct{}

func (unlocatedGrammar) Parse(string) error { return errors.New("cannot parse") }
func (unlocatedGrammar) Leaves(string) ([]notation.Leaf, error) {
	return nil, errors.New("no leaves")
}

func TestDegradedModeTokenizer(t *testing.T) {
	v := New(vocab.New(), notation.NewDelegate(unlocatedGrammar{}))
	text := `s("bd sx sx hh")`
	f := source.NewFile("test.js", []byte(text))
	diags, _ := v.Validate(f)
	if len(diags) != 1 {
		t.Fatalf("diags = %+v", diags)
	}
	d := diags[0]
	if d.Code != diag.CodeUnknownSample {
		t.Fatalf("code = %s", d.Code)
	}
	// First occurrence of the duplicated token only.
	if text[d.Span.Start:d.Span.End] != "sx" || d.Span.Start != 6 {
		t.Fatalf("span = %v", d.Span)
	}
}

func TestRemapFormula(t *testing.T) {
	// For a body at document offset O, parser offset p maps to O+max(0,p-1).
	lit := struct {
		body  string
		start int
	}{"bd sx hh", 10}
	sp := remap(scanLiteral(lit.body, lit.start), 4, 6)
	if sp.Start != 13 || sp.End != 15 {
		t.Fatalf("span = %v", sp)
	}
	// p=0 clamps instead of going before the body.
	sp = remap(scanLiteral(lit.body, lit.start), 0, 0)
	if sp.Start != 10 {
		t.Fatalf("span = %v", sp)
	}
	// End never passes the closing quote.
	sp = remap(scanLiteral(lit.body, lit.start), 4, 99)
	if sp.End != 18 {
		t.Fatalf("span = %v", sp)
	}
}

func TestHostBuiltinsNotFlagged(t *testing.T) {
	diags, _ := validate(t, `p.then(x).catch(y).map(z)`)
	for _, d := range diags {
		if d.Code == diag.CodeUnknownFunction {
			t.Fatalf("builtin flagged: %+v", d)
		}
	}
}

func TestDotCallInsideLiteralIgnored(t *testing.T) {
	diags, _ := validate(t, `run("a .bnak( b")`)
	for _, d := range diags {
		if d.Code == diag.CodeUnknownFunction {
			t.Fatalf("literal content flagged as call: %+v", d)
		}
	}
}
