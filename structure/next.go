package structure

import (
	"github.com/annotatorB/schubert-dances/model"
)

// ComputeNext fills the Next column: for every mc, the set of measures that
// can follow it under the resolved repeat/volta graph. The default
// successor is mc+1; the piece's last measure has none. Exceptions:
//
//   - the closing measure of a repeat without voltas points back to the
//     repeat's start before continuing;
//   - the measure before a volta group branches into every volta's first
//     measure (pass n takes volta n);
//   - every volta but the last jumps back to the repeat's start; the last
//     volta continues normally.
func ComputeNext(infos []model.MeasureInfo, spans []Span, groups []VoltaGroup) {
	last := len(infos) - 1
	for mc := range infos {
		if mc < last {
			infos[mc].Next = []int{mc + 1}
		} else {
			infos[mc].Next = nil
		}
	}

	for si, span := range spans {
		g := groupFor(groups, si)
		if g == nil {
			next := []int{span.From}
			if span.To < last {
				next = append(next, span.To+1)
			}
			infos[span.To].Next = next
			continue
		}
		if pre := g.Voltas[0].FirstMC - 1; pre >= span.From {
			var branches []int
			for _, v := range g.Voltas {
				branches = append(branches, v.FirstMC)
			}
			infos[pre].Next = branches
		}
		for vi, v := range g.Voltas {
			if vi < len(g.Voltas)-1 {
				infos[v.LastMC].Next = []int{span.From}
			}
		}
	}
}
