package score

import (
	"fmt"

	"github.com/annotatorB/schubert-dances/model"
	"github.com/annotatorB/schubert-dances/util"
)

func (s *Score) LastMC() int { return len(s.Measures) - 1 }

func (s *Score) MeasureCount() int { return len(s.Measures) }

// NotesOfSection returns the rows of one section, selected by index;
// negative indices count from the end.
func (s *Score) NotesOfSection(idx int) ([]model.NoteEvent, error) {
	return s.GetNotes([]int{idx}, 0)
}

// GetNotes selects note rows by section and volta. sections may be any
// contiguous or discontiguous index list, negative indices counting from
// the end; nil means every section in score order. volta 0 keeps all rows;
// a non-zero volta keeps one alternate ending (-1 the last, 1 the first,
// and so on) together with the section's non-volta rows.
func (s *Score) GetNotes(sections []int, volta int) ([]model.NoteEvent, error) {
	if sections == nil {
		sections = make([]int, len(s.Sections))
		for i := range sections {
			sections[i] = i
		}
	}
	var res []model.NoteEvent
	for _, raw := range sections {
		idx, ok := util.ResolveIndex(raw, len(s.Sections))
		if !ok {
			return nil, fmt.Errorf("section index %d out of range (have %d sections)", raw, len(s.Sections))
		}
		res = append(res, s.sectionNotes(idx, volta)...)
	}
	return res, nil
}

func (s *Score) sectionNotes(idx, volta int) []model.NoteEvent {
	var rows []model.NoteEvent
	maxVolta := 0
	for _, ev := range s.Notes {
		if ev.Section != idx {
			continue
		}
		rows = append(rows, ev)
		if ev.Volta > maxVolta {
			maxVolta = ev.Volta
		}
	}
	if volta == 0 || maxVolta == 0 {
		return rows
	}
	want := volta
	if want < 0 {
		want = maxVolta + 1 + want
	}
	var filtered []model.NoteEvent
	for _, ev := range rows {
		if ev.Volta == 0 || ev.Volta == want {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}
