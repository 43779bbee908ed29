package model

import (
	"github.com/annotatorB/schubert-dances/frac"
)

// RepeatMarker is the structural tag of a measure after aggregation.
// Exactly one measure carries First (mc 0) and one carries Last (the final
// mc); both are synthesized if the score does not provide them.
type RepeatMarker int

const (
	MarkerNone RepeatMarker = iota
	MarkerStart
	MarkerEnd
	MarkerFirst
	MarkerLast
	MarkerSection
)

func (m RepeatMarker) String() string {
	switch m {
	case MarkerNone:
		return ""
	case MarkerStart:
		return "startRepeat"
	case MarkerEnd:
		return "endRepeat"
	case MarkerFirst:
		return "firstMeasure"
	case MarkerLast:
		return "lastMeasure"
	case MarkerSection:
		return "sectionBreak"
	}
	return "?"
}

// MeasureInfo is one row of the measure list, keyed by mc (zero-based
// measure count, contiguous). TimeSig doubles as the nominal bar length in
// whole-note units; ActDur differs only for irregular or split measures.
type MeasureInfo struct {
	MC              int
	MN              int
	KeySig          int // circle-of-fifths offset
	TimeSig         frac.Frac
	ActDur          frac.Frac
	Voices          int
	Repeat          RepeatMarker
	VoltaLen        int // measures spanned by a volta starting here, 0 = none
	Volta           int // resolved 1-based volta number covering this mc, 0 = none
	Barline         string
	DontCount       bool
	NumberingOffset int
	Next            []int     // successor mcs under the repeat/volta graph
	Offset          frac.Frac // intra-measure offset of a completing split measure
}
