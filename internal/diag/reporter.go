package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tempo/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	hintColor = color.New(color.FgCyan)
	posColor  = color.New(color.Bold)
)

// Reporter writes diagnostics in a human-readable form:
//
//	<path>:<line>:<col>: <SEV> <code>: <message>
//	    <source line>
//	    ^~~~
//
// Lines and columns are printed 1-based. Color is controlled by the flag.
type Reporter struct {
	Out   io.Writer
	Color bool
}

func (r *Reporter) Report(f *source.File, diags []Diagnostic) {
	for i := range diags {
		r.reportOne(f, &diags[i])
	}
}

func (r *Reporter) reportOne(f *source.File, d *Diagnostic) {
	start := f.LineColFor(d.Span.Start)
	end := f.LineColFor(d.Span.End)

	pos := fmt.Sprintf("%s:%d:%d:", f.Path, start.Line+1, start.Col+1)
	sev := d.Severity.String()
	if r.Color {
		pos = posColor.Sprint(pos)
		sev = r.severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(r.Out, "%s %s %s: %s\n", pos, sev, d.Code, d.Message)

	line := f.LineText(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(r.Out, "    %s\n", line)

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	marker := "^" + strings.Repeat("~", width-1)
	if r.Color {
		marker = r.severityColor(d.Severity).Sprint(marker)
	}
	fmt.Fprintf(r.Out, "    %s%s\n", strings.Repeat(" ", int(start.Col)), marker)
}

func (r *Reporter) severityColor(s Severity) *color.Color {
	switch s {
	case SevError:
		return errColor
	case SevWarning:
		return warnColor
	default:
		return hintColor
	}
}
