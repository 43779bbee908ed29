// Package tsv writes and reads the measure and note tables as
// tab-separated files. Rational columns are written as exact fraction
// strings; round-tripping a table through this package loses nothing.
package tsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/annotatorB/schubert-dances/frac"
	"github.com/annotatorB/schubert-dances/model"
	"github.com/annotatorB/schubert-dances/spell"
)

var measureHeader = []string{
	"mc", "mn", "keysig", "timesig", "act_dur", "voices", "repeats",
	"volta", "barline", "dont_count", "numbering_offset", "next", "offset",
}

// note_names and octaves are derived from tpc and midi on write and
// recomputed rather than read back.
var noteHeader = []string{
	"section", "ix", "mc", "mn", "onset", "duration", "nominal_duration",
	"scalar", "tied", "tpc", "midi", "staff", "voice", "volta", "gracenote",
	"note_names", "octaves",
}

func newWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return cw
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	return cr
}

// WriteMeasureList writes the measure table, one row per mc.
func WriteMeasureList(w io.Writer, infos []model.MeasureInfo) error {
	cw := newWriter(w)
	if err := cw.Write(measureHeader); err != nil {
		return err
	}
	for _, m := range infos {
		row := []string{
			strconv.Itoa(m.MC),
			strconv.Itoa(m.MN),
			strconv.Itoa(m.KeySig),
			m.TimeSig.String(),
			m.ActDur.String(),
			strconv.Itoa(m.Voices),
			m.Repeat.String(),
			optInt(m.Volta),
			m.Barline,
			optBool(m.DontCount),
			optInt(m.NumberingOffset),
			formatNext(m.Next),
			m.Offset.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadMeasureList parses a table written by WriteMeasureList.
func ReadMeasureList(r io.Reader) ([]model.MeasureInfo, error) {
	cr := newReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("measure list: empty file")
	}
	var infos []model.MeasureInfo
	for i, rec := range records[1:] {
		if len(rec) != len(measureHeader) {
			return nil, fmt.Errorf("measure list row %d: %d columns, want %d", i+1, len(rec), len(measureHeader))
		}
		var m model.MeasureInfo
		m.MC, _ = strconv.Atoi(rec[0])
		m.MN, _ = strconv.Atoi(rec[1])
		m.KeySig, _ = strconv.Atoi(rec[2])
		if m.TimeSig, err = frac.Parse(rec[3]); err != nil {
			return nil, fmt.Errorf("measure list mc %d: %w", m.MC, err)
		}
		if m.ActDur, err = frac.Parse(rec[4]); err != nil {
			return nil, fmt.Errorf("measure list mc %d: %w", m.MC, err)
		}
		m.Voices, _ = strconv.Atoi(rec[5])
		m.Repeat = parseMarker(rec[6])
		m.Volta, _ = strconv.Atoi(rec[7])
		m.Barline = rec[8]
		m.DontCount = rec[9] == "1"
		m.NumberingOffset, _ = strconv.Atoi(rec[10])
		if m.Next, err = parseNext(rec[11]); err != nil {
			return nil, fmt.Errorf("measure list mc %d: %w", m.MC, err)
		}
		if m.Offset, err = frac.Parse(rec[12]); err != nil {
			return nil, fmt.Errorf("measure list mc %d: %w", m.MC, err)
		}
		infos = append(infos, m)
	}
	return infos, nil
}

// WriteNoteList writes the note table, one row per sounding note.
func WriteNoteList(w io.Writer, events []model.NoteEvent) error {
	cw := newWriter(w)
	if err := cw.Write(noteHeader); err != nil {
		return err
	}
	for _, ev := range events {
		row := []string{
			strconv.Itoa(ev.Section),
			strconv.Itoa(ev.Ix),
			strconv.Itoa(ev.MC),
			strconv.Itoa(ev.MN),
			ev.Onset.String(),
			ev.Duration.String(),
			ev.NominalDuration.String(),
			ev.Scalar.String(),
			ev.Tied.String(),
			strconv.Itoa(ev.TPC),
			strconv.Itoa(ev.Midi),
			strconv.Itoa(ev.Staff),
			strconv.Itoa(ev.Voice),
			optInt(ev.Volta),
			ev.Grace,
			spell.Name(ev.TPC),
			strconv.Itoa(spell.Octave(ev.Midi)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadNoteList parses a table written by WriteNoteList.
func ReadNoteList(r io.Reader) ([]model.NoteEvent, error) {
	cr := newReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("note list: empty file")
	}
	var events []model.NoteEvent
	for i, rec := range records[1:] {
		if len(rec) != len(noteHeader) {
			return nil, fmt.Errorf("note list row %d: %d columns, want %d", i+1, len(rec), len(noteHeader))
		}
		var ev model.NoteEvent
		ev.Section, _ = strconv.Atoi(rec[0])
		ev.Ix, _ = strconv.Atoi(rec[1])
		ev.MC, _ = strconv.Atoi(rec[2])
		ev.MN, _ = strconv.Atoi(rec[3])
		if ev.Onset, err = frac.Parse(rec[4]); err != nil {
			return nil, fmt.Errorf("note list row %d: %w", i+1, err)
		}
		if ev.Duration, err = frac.Parse(rec[5]); err != nil {
			return nil, fmt.Errorf("note list row %d: %w", i+1, err)
		}
		if ev.NominalDuration, err = frac.Parse(rec[6]); err != nil {
			return nil, fmt.Errorf("note list row %d: %w", i+1, err)
		}
		if ev.Scalar, err = frac.Parse(rec[7]); err != nil {
			return nil, fmt.Errorf("note list row %d: %w", i+1, err)
		}
		ev.Tied = parseTie(rec[8])
		ev.TPC, _ = strconv.Atoi(rec[9])
		ev.Midi, _ = strconv.Atoi(rec[10])
		ev.Staff, _ = strconv.Atoi(rec[11])
		ev.Voice, _ = strconv.Atoi(rec[12])
		ev.Volta, _ = strconv.Atoi(rec[13])
		ev.Grace = rec[14]
		// rec[15], rec[16]: note_names and octaves, derived columns
		events = append(events, ev)
	}
	return events, nil
}

func optInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func optBool(b bool) string {
	if b {
		return "1"
	}
	return ""
}

// formatNext keeps the original list syntax, e.g. "[2]" or "[1, 5]".
func formatNext(next []int) string {
	parts := make([]string, len(next))
	for i, mc := range next {
		parts[i] = strconv.Itoa(mc)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func parseNext(s string) ([]int, error) {
	s = strings.Trim(s, "[]")
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var res []int
	for _, part := range strings.Split(s, ",") {
		mc, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad next entry %q", part)
		}
		res = append(res, mc)
	}
	return res, nil
}

func parseMarker(s string) model.RepeatMarker {
	for _, m := range []model.RepeatMarker{
		model.MarkerStart, model.MarkerEnd, model.MarkerFirst,
		model.MarkerLast, model.MarkerSection,
	} {
		if m.String() == s {
			return m
		}
	}
	return model.MarkerNone
}

func parseTie(s string) model.TieState {
	switch s {
	case "1":
		return model.TieStart
	case "-1":
		return model.TieEnd
	case "0":
		return model.TieBoth
	}
	return model.TieNone
}
