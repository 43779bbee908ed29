// Package smfout renders a parsed score to a Standard MIDI File in play
// order: repeated sections are written out twice, voltas on the pass they
// belong to, so the file plays the way the repeat signs read.
package smfout

import (
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/annotatorB/schubert-dances/frac"
	"github.com/annotatorB/schubert-dances/model"
	"github.com/annotatorB/schubert-dances/score"
)

const (
	ticksPerQuarter = 480
	velocity        = 80
	channel         = 0
)

type Options struct {
	BPM float64 // 0 means 120
}

type tickEvent struct {
	tick uint64
	off  bool
	key  uint8
}

// Render builds a single-track SMF from the score's play order. Grace
// notes are skipped: they carry no onset-advancing duration.
func Render(s *score.Score, opts Options) (*smf.SMF, error) {
	bpm := opts.BPM
	if bpm == 0 {
		bpm = 120
	}

	passes := map[int]int{}
	var events []tickEvent
	cursor := frac.Zero // running position in whole notes

	for _, secIdx := range s.PlayOrder {
		sec := s.Sections[secIdx]
		passes[secIdx]++
		pass := passes[secIdx]
		for mc := sec.FirstMC; mc <= sec.LastMC; mc++ {
			info := s.Measures[mc]
			if info.Volta != 0 && info.Volta != voltaForPass(pass, len(sec.Voltas)) {
				continue
			}
			for _, ev := range notesAt(s, secIdx, mc) {
				if ev.Grace != "" || ev.Midi <= 0 || ev.Midi > 127 {
					continue
				}
				on := toTicks(cursor.Add(ev.Onset))
				off := toTicks(cursor.Add(ev.Onset).Add(ev.Duration))
				events = append(events, tickEvent{on, false, uint8(ev.Midi)})
				events = append(events, tickEvent{off, true, uint8(ev.Midi)})
			}
			cursor = cursor.Add(info.ActDur)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		// releases first, so retriggered pitches do not cancel themselves
		return events[i].off && !events[j].off
	})

	var out smf.SMF
	out.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(bpm))
	var prev uint64
	for _, ev := range events {
		delta := uint32(ev.tick - prev)
		prev = ev.tick
		if ev.off {
			tr.Add(delta, midi.NoteOff(channel, ev.key))
		} else {
			tr.Add(delta, midi.NoteOn(channel, ev.key, velocity))
		}
	}
	tr.Close(0)
	out.Tracks = append(out.Tracks, tr)
	return &out, nil
}

// WriteFile renders and writes the SMF to path.
func WriteFile(s *score.Score, path string, opts Options) error {
	rendered, err := Render(s, opts)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	_, err = rendered.WriteTo(f)
	return err
}

// toTicks converts a whole-note position to MIDI ticks.
func toTicks(f frac.Frac) uint64 {
	return uint64(f.Num() * 4 * ticksPerQuarter / f.Den())
}

// voltaForPass picks the alternate ending for a repeat pass; passes beyond
// the written voltas stay on the last one.
func voltaForPass(pass, voltas int) int {
	if voltas == 0 {
		return 0
	}
	if pass > voltas {
		return voltas
	}
	return pass
}

func notesAt(s *score.Score, section, mc int) []model.NoteEvent {
	var res []model.NoteEvent
	for _, ev := range s.Notes {
		if ev.Section == section && ev.MC == mc {
			res = append(res, ev)
		}
	}
	return res
}
