// Package rhythm encodes measure onsets as rhythm-language syllables
// (after Lehmann, Bewegung und Sprache als Wege zum musikalischen
// Rhythmus): a measure's onset pattern becomes a pronounceable word like
// "Taoa" or "Titigi", usable as a categorical feature.
package rhythm

import (
	"sort"
	"strings"

	"github.com/annotatorB/schubert-dances/frac"
	"github.com/annotatorB/schubert-dances/model"
	"github.com/annotatorB/schubert-dances/score"
)

type cell struct {
	On  frac.Frac // onset position within its beat (mod 1/4)
	Dur frac.Frac
}

var syllables = map[cell]string{
	{frac.Zero, frac.New(1, 1)}:        "Taoao",
	{frac.Zero, frac.New(3, 4)}:        "Taoa",
	{frac.Zero, frac.New(1, 2)}:        "Tao",
	{frac.Zero, frac.New(3, 8)}:        "Tai",
	{frac.Zero, frac.New(1, 4)}:        "Ta",
	{frac.Zero, frac.New(3, 16)}:       "Tim",
	{frac.Zero, frac.New(1, 12)}:       "Tri",
	{frac.Zero, frac.New(1, 8)}:        "Ti",
	{frac.Zero, frac.New(1, 16)}:       "Ti",
	{frac.New(1, 16), frac.New(3, 16)}: "gim",
	{frac.New(1, 16), frac.New(1, 8)}:  "gim",
	{frac.New(1, 16), frac.New(1, 16)}: "gi",
	{frac.New(1, 12), frac.New(1, 12)}: "o",
	{frac.New(1, 8), frac.New(1, 8)}:   "ti",
	{frac.New(1, 8), frac.New(1, 16)}:  "ti",
	{frac.New(1, 6), frac.New(1, 12)}:  "le",
	{frac.New(3, 16), frac.New(1, 8)}:  "gim",
	{frac.New(3, 16), frac.New(1, 16)}: "gi",
	{frac.New(3, 16), frac.New(1, 32)}: "gi",
	{frac.New(7, 32), frac.New(1, 32)}: "ri",
}

// unknown onset/duration pairs read "no"
const unknownSyllable = "no"

var beat = frac.New(1, 4)

// Pattern encodes the onsets of one measure's note rows. Simultaneous
// notes count once; each onset's duration runs to the next onset, the last
// one to the end of the sounding material.
func Pattern(rows []model.NoteEvent) string {
	if len(rows) == 0 {
		return ""
	}
	seen := map[frac.Frac]model.NoteEvent{}
	var onsets []frac.Frac
	for _, ev := range rows {
		if _, ok := seen[ev.Onset]; !ok {
			seen[ev.Onset] = ev
			onsets = append(onsets, ev.Onset)
		}
	}
	sort.Slice(onsets, func(i, j int) bool { return onsets[i].Less(onsets[j]) })

	last := seen[onsets[len(onsets)-1]]
	length := last.Onset.Add(last.Duration)

	var b strings.Builder
	for i, on := range onsets {
		end := length
		if i+1 < len(onsets) {
			end = onsets[i+1]
		}
		c := cell{On: on.Mod(beat), Dur: end.Sub(on)}
		if syl, ok := syllables[c]; ok {
			b.WriteString(syl)
		} else {
			b.WriteString(unknownSyllable)
		}
	}
	return b.String()
}

// Patterns encodes every measure of a score by measure number, reading
// repeated passages through their last volta.
func Patterns(s *score.Score) (map[int]string, error) {
	rows, err := s.GetNotes(nil, -1)
	if err != nil {
		return nil, err
	}
	byMN := map[int][]model.NoteEvent{}
	for _, ev := range rows {
		byMN[ev.MN] = append(byMN[ev.MN], ev)
	}
	res := make(map[int]string, len(byMN))
	for mn, group := range byMN {
		res[mn] = Pattern(group)
	}
	return res, nil
}
