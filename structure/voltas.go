package structure

import (
	"github.com/annotatorB/schubert-dances/diag"
	"github.com/annotatorB/schubert-dances/model"
)

// Volta is one alternate ending: a contiguous run of measure nodes.
type Volta struct {
	FirstMC, LastMC int
}

func (v Volta) Len() int { return v.LastMC - v.FirstMC + 1 }

// VoltaGroup is an ordered sequence of adjacent voltas attached to one
// repeat span. SpanIdx indexes into the resolved span list, -1 if the group
// could not be attached.
type VoltaGroup struct {
	Voltas  []Volta
	SpanIdx int
}

// GroupVoltas collects volta-tagged measures into groups, attaches each
// group to the repeat span whose end coincides with the group's first
// volta, and extends that span to swallow the trailing voltas. It also
// writes the resolved 1-based volta number onto the covered measures.
//
// Validation: a volta range must not contain a startRepeat, and all voltas
// of a group should span the same number of measures; a length mismatch is
// a warning, softened further when excluded measures explain it.
func GroupVoltas(infos []model.MeasureInfo, spans []Span, d *diag.List) []VoltaGroup {
	var groups []VoltaGroup
	var cur *VoltaGroup
	for mc := 0; mc < len(infos); mc++ {
		length := infos[mc].VoltaLen
		if length == 0 {
			continue
		}
		last := mc + length - 1
		if last >= len(infos) {
			d.Structuralf(mc, "volta spans %d measures past the end of the piece", last-len(infos)+1)
			last = len(infos) - 1
		}
		v := Volta{FirstMC: mc, LastMC: last}
		if cur != nil && mc == cur.Voltas[len(cur.Voltas)-1].LastMC+1 {
			cur.Voltas = append(cur.Voltas, v)
		} else {
			groups = append(groups, VoltaGroup{Voltas: []Volta{v}, SpanIdx: -1})
			cur = &groups[len(groups)-1]
		}
		mc = last // skip measures covered by this volta
	}

	for gi := range groups {
		attachGroup(infos, spans, &groups[gi], d)
		validateGroup(infos, &groups[gi], d)
		numberGroup(infos, &groups[gi])
	}
	return groups
}

// attachGroup finds the span ending exactly on the group's first volta and
// extends it to the end of the last volta.
func attachGroup(infos []model.MeasureInfo, spans []Span, g *VoltaGroup, d *diag.List) {
	firstEnd := g.Voltas[0].LastMC
	for si := range spans {
		if spans[si].To == firstEnd {
			g.SpanIdx = si
			spans[si].To = g.Voltas[len(g.Voltas)-1].LastMC
			return
		}
	}
	d.Structuralf(g.Voltas[0].FirstMC, "first volta of a group does not end on an endRepeat")
}

func validateGroup(infos []model.MeasureInfo, g *VoltaGroup, d *diag.List) {
	for _, v := range g.Voltas {
		for mc := v.FirstMC; mc <= v.LastMC; mc++ {
			if infos[mc].Repeat == model.MarkerStart {
				d.Structuralf(mc, "startRepeat inside a volta")
			}
		}
	}

	maxLen, minLen := 0, int(^uint(0)>>1)
	for _, v := range g.Voltas {
		if v.Len() > maxLen {
			maxLen = v.Len()
		}
		if v.Len() < minLen {
			minLen = v.Len()
		}
	}
	if maxLen == minLen {
		return
	}
	excluded := 0
	for _, v := range g.Voltas {
		for mc := v.FirstMC; mc <= v.LastMC; mc++ {
			if infos[mc].DontCount || infos[mc].NumberingOffset != 0 {
				excluded++
			}
		}
	}
	if excluded > 0 {
		d.Advisoryf(g.Voltas[0].FirstMC, "voltas of unequal length (%d..%d measures), possibly explained by %d excluded measures", minLen, maxLen, excluded)
	} else {
		d.Advisoryf(g.Voltas[0].FirstMC, "voltas of unequal length (%d..%d measures)", minLen, maxLen)
	}
}

func numberGroup(infos []model.MeasureInfo, g *VoltaGroup) {
	for i, v := range g.Voltas {
		for mc := v.FirstMC; mc <= v.LastMC && mc < len(infos); mc++ {
			infos[mc].Volta = i + 1
		}
	}
}
