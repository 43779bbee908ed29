// Package measure builds the per-mc measure table: raw tag extraction per
// staff, aggregation across staves, and the visible measure numbering.
package measure

import (
	"github.com/annotatorB/schubert-dances/diag"
	"github.com/annotatorB/schubert-dances/frac"
	"github.com/annotatorB/schubert-dances/model"
	"github.com/annotatorB/schubert-dances/mscx"
)

// Row is one staff's view of one measure. The presence flags separate "no
// key signature tag" from an explicit 0 (C major), which matters when the
// aggregator backfills staff 1 from lower staves.
type Row struct {
	Info       model.MeasureInfo
	HasKeySig  bool
	HasTimeSig bool
}

// ExtractStaff maps the raw tags of every measure node of one staff to
// measure-table columns. Only the voice-count tag may legally occur more
// than once per measure (its value is the count); any other duplicate is
// reported and the first occurrence wins. Unknown tags are reported and
// skipped, never fatal.
func ExtractStaff(staff mscx.Staff, d *diag.List) []Row {
	rows := make([]Row, 0, len(staff.Measures))
	for mc, m := range staff.Measures {
		row := Row{Info: model.MeasureInfo{
			MC:              mc,
			Voices:          len(m.Voices),
			DontCount:       m.Irregular,
			NumberingOffset: m.NoOffset,
		}}

		switch {
		case m.EndRepeat && m.StartRepeat:
			// single-marker model: the closing sign wins
			d.Advisoryf(mc, "staff %d: measure carries both startRepeat and endRepeat, keeping endRepeat", staff.ID)
			row.Info.Repeat = model.MarkerEnd
		case m.EndRepeat:
			row.Info.Repeat = model.MarkerEnd
		case m.StartRepeat:
			row.Info.Repeat = model.MarkerStart
		case m.SectionBreak:
			row.Info.Repeat = model.MarkerSection
		}

		if m.Len != "" {
			f, err := frac.Parse(m.Len)
			if err != nil {
				d.Advisoryf(mc, "staff %d: unparseable measure length %q", staff.ID, m.Len)
			} else {
				row.Info.ActDur = f
			}
		}

		for _, voice := range m.Voices {
			for _, ev := range voice.Events {
				extractEvent(staff.ID, mc, ev, &row, d)
			}
		}
		for _, name := range m.Unrecognized {
			d.Advisoryf(mc, "staff %d: untreated tag %q", staff.ID, name)
		}
		rows = append(rows, row)
	}
	return rows
}

func extractEvent(staffID, mc int, ev mscx.Event, row *Row, d *diag.List) {
	switch ev.Kind {
	case mscx.KindTimeSig:
		if row.HasTimeSig {
			d.Advisoryf(mc, "staff %d: duplicate time signature, keeping first", staffID)
			return
		}
		if ev.TimeSig.D == 0 {
			d.Advisoryf(mc, "staff %d: time signature with zero denominator ignored", staffID)
			return
		}
		row.Info.TimeSig = frac.New(int64(ev.TimeSig.N), int64(ev.TimeSig.D))
		row.HasTimeSig = true
	case mscx.KindKeySig:
		if row.HasKeySig {
			d.Advisoryf(mc, "staff %d: duplicate key signature, keeping first", staffID)
			return
		}
		row.Info.KeySig = ev.KeySig
		row.HasKeySig = true
	case mscx.KindBarLine:
		if row.Info.Barline != "" {
			d.Advisoryf(mc, "staff %d: duplicate barline, keeping first", staffID)
			return
		}
		row.Info.Barline = ev.BarLine
	case mscx.KindVolta:
		if row.Info.VoltaLen > 0 {
			d.Advisoryf(mc, "staff %d: duplicate volta, keeping first", staffID)
			return
		}
		if ev.Volta.Measures <= 0 {
			d.Advisoryf(mc, "staff %d: volta without a positive measure span ignored", staffID)
			return
		}
		row.Info.VoltaLen = ev.Volta.Measures
	case mscx.KindUnknown:
		d.Advisoryf(mc, "staff %d: untreated tag %q", staffID, ev.Raw)
	}
}
