package rhythm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annotatorB/schubert-dances/frac"
	"github.com/annotatorB/schubert-dances/model"
)

func row(onset, dur frac.Frac) model.NoteEvent {
	return model.NoteEvent{Onset: onset, Duration: dur}
}

func TestPatternQuarters(t *testing.T) {
	rows := []model.NoteEvent{
		row(frac.Zero, frac.New(1, 4)),
		row(frac.New(1, 4), frac.New(1, 4)),
		row(frac.New(1, 2), frac.New(1, 4)),
	}
	assert.Equal(t, "TaTaTa", Pattern(rows))
}

func TestPatternHalfThenQuarter(t *testing.T) {
	rows := []model.NoteEvent{
		row(frac.Zero, frac.New(1, 2)),
		row(frac.New(1, 2), frac.New(1, 4)),
	}
	assert.Equal(t, "TaoTa", Pattern(rows))
}

func TestPatternEighths(t *testing.T) {
	rows := []model.NoteEvent{
		row(frac.Zero, frac.New(1, 8)),
		row(frac.New(1, 8), frac.New(1, 8)),
		row(frac.New(1, 4), frac.New(1, 4)),
	}
	assert.Equal(t, "TitiTa", Pattern(rows))
}

func TestPatternSixteenths(t *testing.T) {
	rows := []model.NoteEvent{
		row(frac.Zero, frac.New(1, 16)),
		row(frac.New(1, 16), frac.New(1, 16)),
		row(frac.New(1, 8), frac.New(1, 16)),
		row(frac.New(3, 16), frac.New(1, 16)),
	}
	assert.Equal(t, "Tigitigi", Pattern(rows))
}

func TestPatternTriplet(t *testing.T) {
	rows := []model.NoteEvent{
		row(frac.Zero, frac.New(1, 12)),
		row(frac.New(1, 12), frac.New(1, 12)),
		row(frac.New(1, 6), frac.New(1, 12)),
	}
	assert.Equal(t, "Triole", Pattern(rows))
}

func TestPatternSimultaneousNotesCountOnce(t *testing.T) {
	rows := []model.NoteEvent{
		row(frac.Zero, frac.New(1, 4)),
		row(frac.Zero, frac.New(1, 4)),
		row(frac.New(1, 4), frac.New(1, 4)),
	}
	assert.Equal(t, "TaTa", Pattern(rows))
}

func TestPatternGapReadsAsLongerDuration(t *testing.T) {
	// a quarter followed by a quarter rest and a half note: the first
	// onset runs to the next onset, so the rest is absorbed
	rows := []model.NoteEvent{
		row(frac.Zero, frac.New(1, 4)),
		row(frac.New(1, 2), frac.New(1, 2)),
	}
	assert.Equal(t, "TaoTao", Pattern(rows))
}

func TestPatternUnknownCell(t *testing.T) {
	rows := []model.NoteEvent{
		row(frac.New(1, 32), frac.New(5, 32)),
	}
	assert.Equal(t, "no", Pattern(rows))
}

func TestPatternEmpty(t *testing.T) {
	assert.Equal(t, "", Pattern(nil))
}
