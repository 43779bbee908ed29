package notes

import (
	"github.com/annotatorB/schubert-dances/diag"
	"github.com/annotatorB/schubert-dances/model"
)

// CrossVoiceTies names the matching policy of MergeTies: a tie continuation
// is looked up by (midi, staff) only, never by voice. Scores in the wild
// continue ties in a different voice than they started in; requiring the
// voice to match loses those chains, at the cost of tolerating the rare
// same-pitch cross-voice coincidence. Toggling this off is deliberately not
// supported; the constant exists to document and test the policy.
const CrossVoiceTies = true

// MergeTies fuses every chain of tied notes into its first event, which
// accumulates the chain's duration; the consumed continuation events are
// dropped. The table must be in (mc, onset, midi) order. Merging a table
// without tie flags is a no-op.
func MergeTies(events []model.NoteEvent, d *diag.List) []model.NoteEvent {
	consumed := make([]bool, len(events))

	for i := range events {
		if events[i].Tied != model.TieStart || consumed[i] {
			continue
		}
		cur := i
		for {
			j := findContinuation(events, consumed, cur, events[i])
			if j < 0 {
				d.Advisoryf(events[cur].MC, "tied note (midi %d, staff %d) has no continuation", events[i].Midi, events[i].Staff)
				break
			}
			if events[j].Voice != events[i].Voice {
				d.Advisoryf(events[j].MC, "tie continued across voices (%d to %d) for midi %d", events[i].Voice, events[j].Voice, events[i].Midi)
			}
			events[i].Duration = events[i].Duration.Add(events[j].Duration)
			consumed[j] = true
			if events[j].Tied == model.TieEnd {
				events[i].Tied = model.TieNone
				break
			}
			cur = j // TieBoth: the chain continues
		}
	}

	res := make([]model.NoteEvent, 0, len(events))
	for i := range events {
		if !consumed[i] {
			res = append(res, events[i])
		}
	}
	return res
}

// findContinuation walks forward through the tied-only subsequence for the
// next unconsumed event matching the chain's pitch and staff.
func findContinuation(events []model.NoteEvent, consumed []bool, after int, start model.NoteEvent) int {
	for j := after + 1; j < len(events); j++ {
		if consumed[j] || events[j].Tied == model.TieNone {
			continue
		}
		if events[j].Tied != model.TieEnd && events[j].Tied != model.TieBoth {
			continue
		}
		if events[j].Midi == start.Midi && events[j].Staff == start.Staff {
			return j
		}
	}
	return -1
}
