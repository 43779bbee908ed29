package smfout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annotatorB/schubert-dances/frac"
	"github.com/annotatorB/schubert-dances/model"
	"github.com/annotatorB/schubert-dances/score"
)

func TestToTicks(t *testing.T) {
	assert.Equal(t, uint64(480), toTicks(frac.New(1, 4)))
	assert.Equal(t, uint64(1920), toTicks(frac.New(1, 1)))
	assert.Equal(t, uint64(160), toTicks(frac.New(1, 12)))
	assert.Equal(t, uint64(0), toTicks(frac.Zero))
}

func TestVoltaForPass(t *testing.T) {
	assert.Equal(t, 0, voltaForPass(1, 0))
	assert.Equal(t, 1, voltaForPass(1, 2))
	assert.Equal(t, 2, voltaForPass(2, 2))
	// a third pass over two written endings stays on the last one
	assert.Equal(t, 2, voltaForPass(3, 2))
}

func twoBarScore() *score.Score {
	measures := []model.MeasureInfo{
		{MC: 0, MN: 1, TimeSig: frac.New(2, 4), ActDur: frac.New(2, 4)},
		{MC: 1, MN: 2, TimeSig: frac.New(2, 4), ActDur: frac.New(2, 4)},
	}
	notes := []model.NoteEvent{
		{Section: 0, MC: 0, MN: 1, Onset: frac.Zero, Duration: frac.New(1, 4), Midi: 60},
		{Section: 0, MC: 0, MN: 1, Onset: frac.New(1, 4), Duration: frac.New(1, 4), Midi: 62},
		{Section: 0, MC: 1, MN: 2, Onset: frac.Zero, Duration: frac.New(1, 2), Midi: 64},
	}
	return &score.Score{
		Filename:  "two-bars.mscx",
		Measures:  measures,
		Sections:  []model.Section{{Index: 0, FirstMC: 0, LastMC: 1, SubsectionOf: -1}},
		PlayOrder: []int{0},
		Notes:     notes,
	}
}

func TestRenderSingleTrack(t *testing.T) {
	rendered, err := Render(twoBarScore(), Options{})
	assert.Nil(t, err)
	assert.Len(t, rendered.Tracks, 1)
	// tempo + on/off per note + end of track
	assert.Len(t, rendered.Tracks[0], 1+2*3+1)
}

func TestRenderRepeatedSectionDoublesEvents(t *testing.T) {
	s := twoBarScore()
	s.Sections[0].Repeated = true
	s.PlayOrder = []int{0, 0}

	rendered, err := Render(s, Options{})
	assert.Nil(t, err)
	assert.Len(t, rendered.Tracks[0], 1+2*6+1)
}

func TestRenderSkipsGraceAndInvalidPitches(t *testing.T) {
	s := twoBarScore()
	s.Notes = append(s.Notes,
		model.NoteEvent{Section: 0, MC: 0, Onset: frac.Zero, Duration: frac.New(1, 8), Midi: 59, Grace: "acciaccatura"},
		model.NoteEvent{Section: 0, MC: 0, Onset: frac.Zero, Duration: frac.New(1, 8), Midi: 200},
	)

	rendered, err := Render(s, Options{})
	assert.Nil(t, err)
	assert.Len(t, rendered.Tracks[0], 1+2*3+1)
}
