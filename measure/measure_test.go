package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annotatorB/schubert-dances/diag"
	"github.com/annotatorB/schubert-dances/frac"
	"github.com/annotatorB/schubert-dances/model"
	"github.com/annotatorB/schubert-dances/mscx"
)

func chordEv() mscx.Event {
	return mscx.Event{Kind: mscx.KindChord, Chord: &mscx.Chord{
		DurationType: "quarter",
		Notes:        []mscx.Note{{Pitch: 60, TPC: 14}},
	}}
}

func timeSigEv(n, d int) mscx.Event {
	return mscx.Event{Kind: mscx.KindTimeSig, TimeSig: &mscx.TimeSig{N: n, D: d}}
}

func keySigEv(acc int) mscx.Event {
	return mscx.Event{Kind: mscx.KindKeySig, KeySig: acc}
}

func TestExtractStaffBasics(t *testing.T) {
	staff := mscx.Staff{ID: 1, Measures: []mscx.Measure{
		{Voices: []mscx.Voice{{Events: []mscx.Event{
			timeSigEv(3, 4), keySigEv(-2), chordEv(),
		}}}},
		{
			EndRepeat: true,
			Len:       "1/4",
			Irregular: true,
			Voices: []mscx.Voice{
				{Events: []mscx.Event{chordEv()}},
				{Events: []mscx.Event{chordEv()}},
			},
		},
	}}

	var d diag.List
	rows := ExtractStaff(staff, &d)

	assert.Len(t, rows, 2)
	assert.True(t, rows[0].HasTimeSig)
	assert.Equal(t, frac.New(3, 4), rows[0].Info.TimeSig)
	assert.Equal(t, -2, rows[0].Info.KeySig)
	assert.Equal(t, 1, rows[0].Info.Voices)

	assert.Equal(t, model.MarkerEnd, rows[1].Info.Repeat)
	assert.Equal(t, frac.New(1, 4), rows[1].Info.ActDur)
	assert.True(t, rows[1].Info.DontCount)
	assert.Equal(t, 2, rows[1].Info.Voices)
	assert.Equal(t, 0, d.Len())
}

func TestExtractStaffBothRepeatSigns(t *testing.T) {
	staff := mscx.Staff{ID: 1, Measures: []mscx.Measure{
		{StartRepeat: true, EndRepeat: true},
	}}

	var d diag.List
	rows := ExtractStaff(staff, &d)

	assert.Equal(t, model.MarkerEnd, rows[0].Info.Repeat)
	assert.Equal(t, 1, len(d.Filter(diag.Advisory)))
}

func TestExtractStaffDuplicateTimeSig(t *testing.T) {
	staff := mscx.Staff{ID: 1, Measures: []mscx.Measure{
		{Voices: []mscx.Voice{{Events: []mscx.Event{
			timeSigEv(3, 4), timeSigEv(2, 4),
		}}}},
	}}

	var d diag.List
	rows := ExtractStaff(staff, &d)

	assert.Equal(t, frac.New(3, 4), rows[0].Info.TimeSig)
	assert.Equal(t, 1, len(d.Filter(diag.Advisory)))
}

func TestAggregateBackfillAndCarry(t *testing.T) {
	staff1 := []Row{
		{Info: model.MeasureInfo{MC: 0, Voices: 1}},
		{Info: model.MeasureInfo{MC: 1, Voices: 1}},
		{Info: model.MeasureInfo{MC: 2, Voices: 1}},
	}
	// only staff 2 carries the time signature
	staff2 := []Row{
		{Info: model.MeasureInfo{MC: 0, Voices: 2, TimeSig: frac.New(3, 4), KeySig: 1}, HasTimeSig: true, HasKeySig: true},
		{Info: model.MeasureInfo{MC: 1, Voices: 2}},
		{Info: model.MeasureInfo{MC: 2, Voices: 2}},
	}

	var d diag.List
	infos := Aggregate([][]Row{staff1, staff2}, &d)

	assert.Len(t, infos, 3)
	for mc := range infos {
		assert.Equal(t, frac.New(3, 4), infos[mc].TimeSig)
		assert.Equal(t, 1, infos[mc].KeySig)
		assert.Equal(t, frac.New(3, 4), infos[mc].ActDur)
		assert.Equal(t, 3, infos[mc].Voices)
	}
	assert.Equal(t, model.MarkerFirst, infos[0].Repeat)
	assert.Equal(t, model.MarkerLast, infos[2].Repeat)
	assert.False(t, d.Has(diag.Structural))
	assert.True(t, d.Len() > 0)
}

func TestAggregateSingleMeasure(t *testing.T) {
	staff1 := []Row{
		{Info: model.MeasureInfo{MC: 0, Voices: 1, TimeSig: frac.New(2, 4), KeySig: 0}, HasTimeSig: true, HasKeySig: true},
	}

	var d diag.List
	infos := Aggregate([][]Row{staff1}, &d)

	assert.Len(t, infos, 1)
	// the sole measure closes the piece; no marker is being overwritten
	assert.Equal(t, model.MarkerLast, infos[0].Repeat)
	assert.Equal(t, 0, d.Len())
}

func TestAggregateMissingTimeSig(t *testing.T) {
	staff1 := []Row{{Info: model.MeasureInfo{MC: 0}}}

	var d diag.List
	infos := Aggregate([][]Row{staff1}, &d)

	assert.Equal(t, frac.New(4, 4), infos[0].TimeSig)
	assert.True(t, d.Has(diag.Structural))
}

func mnRow(dontCount bool, offset int) model.MeasureInfo {
	return model.MeasureInfo{DontCount: dontCount, NumberingOffset: offset}
}

func TestComputeMNPickup(t *testing.T) {
	infos := []model.MeasureInfo{mnRow(true, 0), mnRow(false, 0), mnRow(false, 0)}

	var d diag.List
	ComputeMN(infos, &d)

	assert.Equal(t, 0, infos[0].MN)
	assert.Equal(t, 1, infos[1].MN)
	assert.Equal(t, 2, infos[2].MN)
	assert.Equal(t, 0, d.Len())
}

func TestComputeMNSplitMeasure(t *testing.T) {
	// second half of a split measure holds the number of the first half
	infos := []model.MeasureInfo{mnRow(false, 0), mnRow(true, 0), mnRow(false, 0)}

	var d diag.List
	ComputeMN(infos, &d)

	assert.Equal(t, 1, infos[0].MN)
	assert.Equal(t, 1, infos[1].MN)
	assert.Equal(t, 2, infos[2].MN)
	assert.Equal(t, 0, d.Len())
}

func TestComputeMNOffset(t *testing.T) {
	infos := []model.MeasureInfo{mnRow(false, 0), mnRow(false, 3), mnRow(false, 0)}

	var d diag.List
	ComputeMN(infos, &d)

	assert.Equal(t, 1, infos[0].MN)
	assert.Equal(t, 5, infos[1].MN)
	assert.Equal(t, 6, infos[2].MN)
	// the jump leaves 2..4 unused
	assert.True(t, d.Has(diag.Structural))
}
