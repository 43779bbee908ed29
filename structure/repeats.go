// Package structure resolves the annotated measure sequence into the
// logical playback structure: matched repeat spans, volta groups, the
// section partition and the per-measure successor sets.
package structure

import (
	"github.com/annotatorB/schubert-dances/diag"
	"github.com/annotatorB/schubert-dances/model"
)

// Span is one repeated measure range, inclusive on both ends.
type Span struct {
	From, To int
}

// ResolveRepeats matches the aggregated repeat markers into spans with a
// single left-to-right scan and an explicit stack of open starts. Implicit
// cases covered:
//
//   - firstMeasure acts as a startRepeat iff the next tagged measure is an
//     endRepeat (scores that omit the opening sign of a repeated beginning);
//   - a section break directly before an endRepeat likewise stands in for a
//     written repeat sign, opening right after the break;
//   - lastMeasure closes a still-open repeat.
//
// An endRepeat without a matching start stops resolution: the spans matched
// so far are returned rather than guessed at. True nesting is not modeled
// and fails closed the same way.
func ResolveRepeats(infos []model.MeasureInfo, d *diag.List) []Span {
	var spans []Span
	var stack []int

	tagged := taggedMCs(infos)
	for ti, mc := range tagged {
		marker := infos[mc].Repeat
		switch marker {
		case model.MarkerFirst:
			if ti+1 < len(tagged) && infos[tagged[ti+1]].Repeat == model.MarkerEnd {
				d.Advisoryf(mc, "piece begins with an unwritten repeat sign, assuming startRepeat")
				stack = append(stack, mc)
			}
		case model.MarkerSection:
			// only stands in for a sign when no repeat is already open
			if len(stack) == 0 && ti+1 < len(tagged) && infos[tagged[ti+1]].Repeat == model.MarkerEnd {
				d.Advisoryf(mc, "section break stands in for a repeat sign, assuming startRepeat at mc %d", mc+1)
				stack = append(stack, mc+1)
			}
		case model.MarkerStart:
			if len(stack) > 0 {
				d.Structuralf(mc, "nested repeat (start inside the repeat open at mc %d) is not supported", stack[len(stack)-1])
				return spans
			}
			stack = append(stack, mc)
		case model.MarkerEnd:
			if len(stack) == 0 {
				d.Structuralf(mc, "endRepeat without a matching startRepeat")
				return spans
			}
			from := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			spans = append(spans, Span{from, mc})
		case model.MarkerLast:
			if len(stack) > 0 {
				from := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				d.Advisoryf(mc, "final measure implicitly closes the repeat open at mc %d", from)
				spans = append(spans, Span{from, mc})
			}
		}
	}
	for _, mc := range stack {
		d.Structuralf(mc, "unterminated repeat")
	}
	return spans
}

func taggedMCs(infos []model.MeasureInfo) []int {
	var mcs []int
	for mc := range infos {
		if infos[mc].Repeat != model.MarkerNone {
			mcs = append(mcs, mc)
		}
	}
	return mcs
}
