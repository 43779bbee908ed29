// Package diag collects parser findings. A parse result always carries both
// its data and a diagnostics list; nothing below Fatal severity is ever
// returned as a Go error, so batch runs are not aborted by one bad score.
package diag

import (
	"fmt"
	"strings"
)

type Severity int

const (
	// Advisory findings are tolerated oddities: unknown tags, cross-staff
	// disagreement, implicit repeat inference, cross-voice ties.
	Advisory Severity = iota
	// Structural findings mean the score breaks notation conventions and the
	// result is best-effort: unmatched repeats, numbering gaps, unreconciled
	// split measures.
	Structural
)

func (s Severity) String() string {
	switch s {
	case Advisory:
		return "advisory"
	case Structural:
		return "structural"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Diagnostic is one finding. MC is the offending measure count, -1 when the
// finding is not tied to a single measure.
type Diagnostic struct {
	Severity Severity
	MC       int
	Msg      string
}

func (d Diagnostic) String() string {
	if d.MC < 0 {
		return fmt.Sprintf("[%s] %s", d.Severity, d.Msg)
	}
	return fmt.Sprintf("[%s] mc %d: %s", d.Severity, d.MC, d.Msg)
}

// List accumulates diagnostics. The zero value is ready to use; stages take
// a *List and append to it.
type List struct {
	items []Diagnostic
}

func (l *List) Advisoryf(mc int, format string, args ...any) {
	l.items = append(l.items, Diagnostic{Advisory, mc, fmt.Sprintf(format, args...)})
}

func (l *List) Structuralf(mc int, format string, args ...any) {
	l.items = append(l.items, Diagnostic{Structural, mc, fmt.Sprintf(format, args...)})
}

func (l *List) All() []Diagnostic { return l.items }

func (l *List) Len() int { return len(l.items) }

func (l *List) Has(s Severity) bool {
	for _, d := range l.items {
		if d.Severity == s {
			return true
		}
	}
	return false
}

func (l *List) Filter(s Severity) []Diagnostic {
	var res []Diagnostic
	for _, d := range l.items {
		if d.Severity == s {
			res = append(res, d)
		}
	}
	return res
}

func (l *List) String() string {
	var b strings.Builder
	for i, d := range l.items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.String())
	}
	return b.String()
}
