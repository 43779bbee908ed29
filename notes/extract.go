// Package notes turns measure nodes into the flat note-event table and
// fuses tied notes into single logical events.
package notes

import (
	"sort"

	"github.com/annotatorB/schubert-dances/diag"
	"github.com/annotatorB/schubert-dances/frac"
	"github.com/annotatorB/schubert-dances/model"
	"github.com/annotatorB/schubert-dances/mscx"
)

// centerTPC is MuseScore's tonal pitch class for C; the tables rebase to
// the signed convention with C = 0.
const centerTPC = 14

var durationNames = map[string]frac.Frac{
	"long":    frac.New(4, 1),
	"breve":   frac.New(2, 1),
	"whole":   frac.New(1, 1),
	"half":    frac.New(1, 2),
	"quarter": frac.New(1, 4),
	"eighth":  frac.New(1, 8),
	"16th":    frac.New(1, 16),
	"32nd":    frac.New(1, 32),
	"64th":    frac.New(1, 64),
	"128th":   frac.New(1, 128),
}

// ExtractSection walks every measure/staff/voice of one section and emits
// one row per sounding note. Rows come out sorted by (mc, onset, midi);
// tie merging and the downstream bass/onset-pattern consumers rely on that
// order.
func ExtractSection(doc *mscx.Doc, infos []model.MeasureInfo, sec model.Section, d *diag.List) []model.NoteEvent {
	var events []model.NoteEvent
	for mc := sec.FirstMC; mc <= sec.LastMC && mc < len(infos); mc++ {
		for _, staff := range doc.Staves {
			if mc >= len(staff.Measures) {
				continue
			}
			for vi, voice := range staff.Measures[mc].Voices {
				events = append(events, extractVoice(voice, infos[mc], sec.Index, staff.ID, vi+1, d)...)
			}
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].MC != events[j].MC {
			return events[i].MC < events[j].MC
		}
		if c := events[i].Onset.Cmp(events[j].Onset); c != 0 {
			return c < 0
		}
		return events[i].Midi < events[j].Midi
	})
	for i := range events {
		events[i].Ix = i
	}
	return events
}

// extractVoice runs one voice of one measure: the onset pointer starts at
// zero, tuplets push the running scalar onto a stack, grace chords emit
// events without advancing the pointer.
func extractVoice(voice mscx.Voice, info model.MeasureInfo, section, staffID, voiceNum int, d *diag.List) []model.NoteEvent {
	var events []model.NoteEvent
	onset := frac.Zero
	scalar := frac.New(1, 1)
	var stack []frac.Frac

	for _, ev := range voice.Events {
		switch ev.Kind {
		case mscx.KindTuplet:
			if ev.Tuplet.ActualNotes == 0 {
				d.Advisoryf(info.MC, "tuplet with zero actualNotes ignored")
				continue
			}
			stack = append(stack, scalar)
			scalar = scalar.Mul(frac.New(int64(ev.Tuplet.NormalNotes), int64(ev.Tuplet.ActualNotes)))
		case mscx.KindEndTuplet:
			if len(stack) == 0 {
				d.Advisoryf(info.MC, "endTuplet without an open tuplet")
				scalar = frac.New(1, 1)
				continue
			}
			scalar = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case mscx.KindChord:
			dur, nominal, ok := chordDuration(ev.Chord.DurationType, ev.Chord.Dots, scalar, info, d)
			if !ok {
				continue
			}
			for _, n := range ev.Chord.Notes {
				events = append(events, model.NoteEvent{
					Section:         section,
					MC:              info.MC,
					MN:              info.MN,
					Onset:           onset,
					Duration:        dur,
					NominalDuration: nominal,
					Scalar:          scalar,
					Tied:            tieState(n),
					TPC:             n.TPC - centerTPC,
					Midi:            n.Pitch,
					Staff:           staffID,
					Voice:           voiceNum,
					Volta:           info.Volta,
					Grace:           ev.Chord.Grace,
				})
			}
			if ev.Chord.Grace == "" {
				onset = onset.Add(dur)
			}
		case mscx.KindRest:
			onset = onset.Add(restDuration(ev.Rest, scalar, info, d))
		}
	}
	if len(stack) > 0 {
		d.Advisoryf(info.MC, "%d tuplets left open at end of voice %d", len(stack), voiceNum)
	}
	return events
}

func chordDuration(name string, dots int, scalar frac.Frac, info model.MeasureInfo, d *diag.List) (dur, nominal frac.Frac, ok bool) {
	if name == "measure" {
		nominal = info.TimeSig
	} else {
		nominal, ok = durationNames[name]
		if !ok {
			d.Advisoryf(info.MC, "unknown duration name %q, skipping event", name)
			return frac.Zero, frac.Zero, false
		}
	}
	return nominal.Mul(dotFactor(dots)).Mul(scalar), nominal, true
}

// dotFactor is sum of (1/2)^i for i in 0..dots: 1, 3/2, 7/4, ...
func dotFactor(dots int) frac.Frac {
	f := frac.New(1, 1)
	add := frac.New(1, 2)
	for i := 0; i < dots; i++ {
		f = f.Add(add)
		add = add.Mul(frac.New(1, 2))
	}
	return f
}

// restDuration advances the onset pointer. A measure rest spans the
// measure's actual duration, which keeps split measures consistent; an
// explicit duration fraction on the rest wins when present.
func restDuration(r *mscx.Rest, scalar frac.Frac, info model.MeasureInfo, d *diag.List) frac.Frac {
	if r.DurationType == "measure" {
		if r.Duration != "" {
			if f, err := frac.Parse(r.Duration); err == nil {
				return f
			}
			d.Advisoryf(info.MC, "unparseable measure-rest duration %q", r.Duration)
		}
		return info.ActDur
	}
	nominal, ok := durationNames[r.DurationType]
	if !ok {
		d.Advisoryf(info.MC, "unknown rest duration name %q, skipping", r.DurationType)
		return frac.Zero
	}
	return nominal.Mul(dotFactor(r.Dots)).Mul(scalar)
}

func tieState(n mscx.Note) model.TieState {
	switch {
	case n.TiePrev && n.TieNext:
		return model.TieBoth
	case n.TieNext:
		return model.TieStart
	case n.TiePrev:
		return model.TieEnd
	}
	return model.TieNone
}
