// Package analysis drives the diagnostic pipeline: it enumerates notation
// literals in a document, parses each through the notation delegate, remaps
// parser-space offsets into document spans, classifies atoms against the
// vocabulary, and produces diagnostics with quick-fix suggestions.
package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"tempo/internal/diag"
	"tempo/internal/notation"
	"tempo/internal/scan"
	"tempo/internal/source"
	"tempo/internal/vocab"
)

// Suggestion kinds recorded alongside diagnostics for quick-fix lookup.
const (
	KindSample            = "sample"
	KindFunction          = "function"
	KindUnbalancedBracket = "unbalanced_bracket"
)

// Suggestion is the side-table entry for one diagnostic: the offending word
// and up to three replacements, best first.
type Suggestion struct {
	Kind        string
	Word        string
	Suggestions []string
	Span        source.Span
}

// Validator runs full-document validation. It holds no per-document state;
// every call recomputes everything so published results are always
// internally consistent.
type Validator struct {
	Registry *vocab.Registry
	Delegate *notation.Delegate
	MaxDiags int
}

func New(reg *vocab.Registry, del *notation.Delegate) *Validator {
	return &Validator{Registry: reg, Delegate: del, MaxDiags: 100}
}

var (
	noteRE    = regexp.MustCompile(`(?i)^[a-g][sb]?[0-9]?$`)
	numberRE  = regexp.MustCompile(`^-?(\d+(\.\d+)?|\.\d+)$`)
	dotCallRE = regexp.MustCompile(`\.([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`)
)

// Validate scans the whole document and returns its diagnostics plus the
// suggestion side-table. The result fully replaces any previous run.
func (v *Validator) Validate(f *source.File) ([]diag.Diagnostic, []Suggestion) {
	text := string(f.Content)
	bag := diag.NewBag(v.MaxDiags)
	var suggestions []Suggestion

	literals := scan.AllLiterals(text)
	for _, lit := range literals {
		v.validateLiteral(text, lit, bag, &suggestions)
	}
	v.checkFunctions(text, literals, bag, &suggestions)
	return bag.Items(), suggestions
}

func (v *Validator) validateLiteral(text string, lit scan.Literal, bag *diag.Bag, suggestions *[]Suggestion) {
	if strings.TrimSpace(lit.Body) == "" || scan.NonNotationBody(lit.Body) {
		return
	}
	if call, ok := scan.EnclosingCall(text, lit.BodyStart-1); ok && vocab.TakesNonSampleString(call.Name) {
		return
	}

	out := v.Delegate.ParseLiteral(lit.Body)
	switch {
	case out.OK():
		v.checkLeaves(lit, out.Leaves, bag, suggestions)
	case out.Failure.Located():
		v.reportParseError(lit, out.Failure, bag, suggestions)
	default:
		// Degraded mode: the grammar gave no position, so fall back to a
		// permissive manual tokenization of the raw body.
		v.checkTokensFallback(lit, bag, suggestions)
	}
}

// remap converts a parser-space range (leading quote at offset 0) into a
// document span clamped to the literal's own bounds.
func remap(lit scan.Literal, start, end int) source.Span {
	docStart := lit.BodyStart + max(0, start-1)
	docEnd := lit.BodyStart + max(0, end-1)
	if docEnd <= docStart {
		docEnd = docStart + 1
	}
	sp := source.NewSpan(uint32(docStart), uint32(docEnd))
	return sp.Clamp(uint32(lit.BodyStart), uint32(lit.End()))
}

func (v *Validator) reportParseError(lit scan.Literal, fail *notation.Failure, bag *diag.Bag, suggestions *[]Suggestion) {
	sp := remap(lit, fail.Start, fail.End)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.CodeParseError,
		Message:  parseErrorMessage(fail),
		Span:     sp,
	})
	// No quick-fix for syntax errors; the record still marks the position.
	*suggestions = append(*suggestions, Suggestion{
		Kind: KindUnbalancedBracket,
		Span: sp,
	})
}

// parseErrorMessage renders "expected ... but found ..." when the failure
// carries token expectations, else the raw grammar message.
func parseErrorMessage(fail *notation.Failure) string {
	if len(fail.Expected) == 0 {
		return fail.Message
	}
	shown := fail.Expected
	extra := 0
	if len(shown) > 5 {
		extra = len(shown) - 5
		shown = shown[:5]
	}
	msg := "expected " + strings.Join(shown, ", ")
	if extra > 0 {
		msg += fmt.Sprintf(", ... (%d more)", extra)
	}
	if fail.Found != nil {
		msg += fmt.Sprintf(" but found '%s'", *fail.Found)
	} else {
		msg += " but found end of input"
	}
	return msg
}

func (v *Validator) checkLeaves(lit scan.Literal, leaves []notation.Leaf, bag *diag.Bag, suggestions *[]Suggestion) {
	for _, leaf := range leaves {
		if leaf.Kind != notation.LeafAtom {
			continue
		}
		if v.knownAtom(leaf.Text) {
			continue
		}
		sp := remap(lit, leaf.Start, leaf.End)
		v.reportUnknownSample(leaf.Text, sp, bag, suggestions)
	}
}

// checkTokensFallback applies the atom rules to a manual tokenization of the
// body, one diagnostic per distinct token at its first occurrence.
func (v *Validator) checkTokensFallback(lit scan.Literal, bag *diag.Bag, suggestions *[]Suggestion) {
	seen := make(map[string]struct{})
	body := lit.Body
	start := -1
	for i := 0; i <= len(body); i++ {
		if i < len(body) && !notation.IsDelimiter(body[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start < 0 {
			continue
		}
		tok := body[start:i]
		tokStart := start
		start = -1
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if v.knownAtom(tok) {
			continue
		}
		sp := source.NewSpan(uint32(lit.BodyStart+tokStart), uint32(lit.BodyStart+tokStart+len(tok)))
		v.reportUnknownSample(tok, sp, bag, suggestions)
	}
}

func (v *Validator) reportUnknownSample(word string, sp source.Span, bag *diag.Bag, suggestions *[]Suggestion) {
	fixes := v.Registry.SuggestSamples(word)
	sev := diag.SevHint
	if len(fixes) > 0 {
		sev = diag.SevWarning
	}
	bag.Add(diag.Diagnostic{
		Severity: sev,
		Code:     diag.CodeUnknownSample,
		Message:  fmt.Sprintf("unknown sample '%s'", word),
		Span:     sp,
	})
	*suggestions = append(*suggestions, Suggestion{
		Kind:        KindSample,
		Word:        word,
		Suggestions: fixes,
		Span:        sp,
	})
}

// knownAtom applies the layered skip rules: notes, numbers, rests, samples,
// banks, structural literals, variable references, voicing modes, scales.
func (v *Validator) knownAtom(text string) bool {
	if text == "" || text == "~" {
		return true
	}
	if noteRE.MatchString(text) || numberRE.MatchString(text) {
		return true
	}
	if vocab.IsStructuralAtom(text) {
		return true
	}
	first, _ := utf8.DecodeRuneInString(text)
	if unicode.IsUpper(first) {
		return true
	}
	return v.Registry.HasSample(text) ||
		v.Registry.HasBank(text) ||
		v.Registry.IsVoicingMode(text) ||
		v.Registry.IsScale(text)
}

// checkFunctions scans the whole document for dot-call sites and flags names
// outside the glossary, skipping host builtins and anything inside a string.
func (v *Validator) checkFunctions(text string, literals []scan.Literal, bag *diag.Bag, suggestions *[]Suggestion) {
	for _, m := range dotCallRE.FindAllStringSubmatchIndex(text, -1) {
		nameStart, nameEnd := m[2], m[3]
		if insideLiteral(literals, nameStart) {
			continue
		}
		name := text[nameStart:nameEnd]
		if _, ok := v.Registry.Function(name); ok {
			continue
		}
		if vocab.IsHostBuiltin(name) {
			continue
		}
		fixes := v.Registry.SuggestFunctions(name)
		if len(fixes) == 0 {
			continue
		}
		sp := source.NewSpan(uint32(nameStart), uint32(nameEnd))
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.CodeUnknownFunction,
			Message:  fmt.Sprintf("unknown function '%s'", name),
			Span:     sp,
		})
		*suggestions = append(*suggestions, Suggestion{
			Kind:        KindFunction,
			Word:        name,
			Suggestions: fixes,
			Span:        sp,
		})
	}
}

func insideLiteral(literals []scan.Literal, off int) bool {
	for _, lit := range literals {
		if off >= lit.BodyStart && off < lit.End() {
			return true
		}
	}
	return false
}
