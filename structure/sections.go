package structure

import (
	"github.com/annotatorB/schubert-dances/diag"
	"github.com/annotatorB/schubert-dances/model"
)

// DefaultSeparators is the barline set that splits sections into
// subsections when nothing else is configured.
func DefaultSeparators() map[string]bool {
	return map[string]bool{"double": true}
}

// BuildSections walks the volta-extended span list in mc order and emits
// the section partition: gaps between spans become non-repeated sections,
// every span becomes a repeated section, and any section is further split
// at interior separating barlines. It returns the sections, the
// super-section groupings (subsection-id lists of sections that were
// split), and the play order, in which a repeated span contributes its
// subsection sequence twice.
func BuildSections(infos []model.MeasureInfo, spans []Span, groups []VoltaGroup, separators map[string]bool, d *diag.List) (sections []model.Section, supers [][]int, playOrder []int) {
	if len(infos) == 0 {
		return nil, nil, nil
	}
	if separators == nil {
		separators = DefaultSeparators()
	}
	lastMC := len(infos) - 1

	b := &builder{infos: infos, separators: separators}
	pos := 0
	for si, span := range spans {
		if span.From < pos {
			d.Structuralf(span.From, "repeat span overlaps the previous one, skipping")
			continue
		}
		if span.From > pos {
			b.emit(pos, span.From-1, false, nil)
		}
		b.emit(span.From, span.To, true, groupFor(groups, si))
		pos = span.To + 1
	}
	if pos <= lastMC {
		b.emit(pos, lastMC, false, nil)
	}
	return b.sections, b.supers, b.playOrder
}

func groupFor(groups []VoltaGroup, spanIdx int) *VoltaGroup {
	for gi := range groups {
		if groups[gi].SpanIdx == spanIdx {
			return &groups[gi]
		}
	}
	return nil
}

type builder struct {
	infos      []model.MeasureInfo
	separators map[string]bool
	sections   []model.Section
	supers     [][]int
	playOrder  []int
}

func (b *builder) emit(first, last int, repeated bool, g *VoltaGroup) {
	cuts := b.interiorCuts(first, last)
	bounds := splitAt(first, last, cuts)

	ids := make([]int, 0, len(bounds))
	for i, bd := range bounds {
		sec := model.Section{
			Index:        len(b.sections),
			FirstMC:      bd[0],
			LastMC:       bd[1],
			FirstMN:      b.infos[bd[0]].MN,
			LastMN:       b.infos[bd[1]].MN,
			Repeated:     repeated,
			StartBreak:   "normal",
			EndBreak:     "normal",
			SubsectionOf: -1,
		}
		if i == 0 {
			sec.StartBreak = b.startReason(first, repeated)
		}
		if i == len(bounds)-1 {
			sec.EndBreak = b.endReason(last, repeated)
			if g != nil {
				for _, v := range g.Voltas {
					sec.Voltas = append(sec.Voltas, [2]int{v.FirstMC, v.LastMC})
				}
			}
		}
		ids = append(ids, sec.Index)
		b.sections = append(b.sections, sec)
	}

	if len(ids) > 1 {
		superID := len(b.supers)
		b.supers = append(b.supers, ids)
		for _, id := range ids {
			b.sections[id].SubsectionOf = superID
		}
	}

	b.playOrder = append(b.playOrder, ids...)
	if repeated {
		b.playOrder = append(b.playOrder, ids...)
	}
}

// interiorCuts finds separating barlines strictly inside the section; a cut
// at mc splits after that measure. The section's own boundary measures are
// not scanned.
func (b *builder) interiorCuts(first, last int) []int {
	var cuts []int
	for mc := first + 1; mc < last; mc++ {
		if b.separators[b.infos[mc].Barline] {
			cuts = append(cuts, mc)
		}
	}
	return cuts
}

func splitAt(first, last int, cuts []int) [][2]int {
	bounds := make([][2]int, 0, len(cuts)+1)
	start := first
	for _, c := range cuts {
		bounds = append(bounds, [2]int{start, c})
		start = c + 1
	}
	return append(bounds, [2]int{start, last})
}

func (b *builder) startReason(mc int, repeated bool) string {
	if m := b.infos[mc].Repeat; m != model.MarkerNone {
		return m.String()
	}
	if repeated {
		return model.MarkerStart.String()
	}
	return "normal"
}

func (b *builder) endReason(mc int, repeated bool) string {
	if m := b.infos[mc].Repeat; m != model.MarkerNone {
		return m.String()
	}
	if repeated {
		return model.MarkerEnd.String()
	}
	return "normal"
}
