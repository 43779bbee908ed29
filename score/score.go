// Package score ties the parsing stages together: one call turns an MSCX
// document into the measure table, the section partition and the note
// table, with every finding collected in the result's diagnostics list.
package score

import (
	"errors"
	"path/filepath"

	"github.com/annotatorB/schubert-dances/diag"
	"github.com/annotatorB/schubert-dances/measure"
	"github.com/annotatorB/schubert-dances/model"
	"github.com/annotatorB/schubert-dances/mscx"
	"github.com/annotatorB/schubert-dances/notes"
	"github.com/annotatorB/schubert-dances/structure"
)

// Score is the complete parse result of one file. Parsing different scores
// shares no state: results are self-contained and safe to build in
// parallel.
type Score struct {
	Filename      string
	Measures      []model.MeasureInfo
	Sections      []model.Section
	SuperSections [][]int
	PlayOrder     []int
	Notes         []model.NoteEvent
	Diags         diag.List
}

type config struct {
	separators map[string]bool
}

type Option func(*config)

// WithSeparators overrides the barline subtypes that split sections into
// subsections (default: double barlines).
func WithSeparators(set map[string]bool) Option {
	return func(c *config) { c.separators = set }
}

// ParseFile reads and parses the MSCX file at path.
func ParseFile(path string, opts ...Option) (*Score, error) {
	doc, err := mscx.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(doc, filepath.Base(path), opts...)
}

// Parse runs the full pipeline over an already-decoded document. The
// returned error covers fatal conditions only; structural and advisory
// findings end up in the result's Diags.
func Parse(doc *mscx.Doc, filename string, opts ...Option) (*Score, error) {
	cfg := config{separators: structure.DefaultSeparators()}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Score{Filename: filename}
	d := &s.Diags

	if doc.ProgramVersion != mscx.SupportedVersion {
		d.Advisoryf(-1, "score was created with MuseScore %s, parser targets %s", doc.ProgramVersion, mscx.SupportedVersion)
	}

	staves := make([][]measure.Row, 0, len(doc.Staves))
	for _, staff := range doc.Staves {
		staves = append(staves, measure.ExtractStaff(staff, d))
	}
	s.Measures = measure.Aggregate(staves, d)
	if len(s.Measures) == 0 {
		return nil, errors.New("score has no measures")
	}
	measure.ComputeMN(s.Measures, d)

	spans := structure.ResolveRepeats(s.Measures, d)
	groups := structure.GroupVoltas(s.Measures, spans, d)
	s.Sections, s.SuperSections, s.PlayOrder = structure.BuildSections(s.Measures, spans, groups, cfg.separators, d)
	structure.ComputeNext(s.Measures, spans, groups)

	for _, sec := range s.Sections {
		s.Notes = append(s.Notes, notes.ExtractSection(doc, s.Measures, sec, d)...)
	}

	validateBoundaries(s, d)
	reconcileSplits(s.Measures, d)

	s.Notes = notes.MergeTies(s.Notes, d)
	reindex(s.Notes)
	return s, nil
}

// validateBoundaries runs on the pre-merge table: a notated event must fit
// inside its measure's actual duration (crossing a barline is what ties
// are for). Grace notes carry a nominal duration but take no onset time,
// so they are exempt.
func validateBoundaries(s *Score, d *diag.List) {
	for _, ev := range s.Notes {
		if ev.Grace != "" {
			continue
		}
		limit := s.Measures[ev.MC].ActDur
		if limit.Less(ev.Onset.Add(ev.Duration)) {
			d.Advisoryf(ev.MC, "note (midi %d, staff %d, voice %d) at onset %s with duration %s crosses the measure boundary at %s",
				ev.Midi, ev.Staff, ev.Voice, ev.Onset, ev.Duration, limit)
		}
	}
}

// reconcileSplits pairs up incomplete measures: a measure shorter than its
// nominal bar length should be completed by a successor whose own length is
// exactly the missing part; that successor starts mid-bar and gets the
// intra-measure offset. An excluded opening measure is a pickup, not a
// split, and is left alone.
func reconcileSplits(infos []model.MeasureInfo, d *diag.List) {
	for mc := range infos {
		if !infos[mc].ActDur.Less(infos[mc].TimeSig) {
			continue
		}
		if mc == 0 && infos[mc].DontCount {
			continue
		}
		if !infos[mc].Offset.IsZero() {
			continue // completing half of an earlier split
		}
		missing := infos[mc].TimeSig.Sub(infos[mc].ActDur)
		found := false
		for _, succ := range infos[mc].Next {
			if infos[succ].ActDur == missing {
				infos[succ].Offset = infos[mc].ActDur
				found = true
				break
			}
		}
		if !found {
			d.Structuralf(mc, "incomplete measure (%s of %s) has no complementing successor", infos[mc].ActDur, infos[mc].TimeSig)
		}
	}
}

func reindex(events []model.NoteEvent) {
	counts := map[int]int{}
	for i := range events {
		events[i].Ix = counts[events[i].Section]
		counts[events[i].Section]++
	}
}
