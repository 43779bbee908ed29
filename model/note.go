package model

import (
	"github.com/annotatorB/schubert-dances/frac"
)

// TieState follows the original table convention: 1 marks the start of a
// tie chain, -1 its end, 0 a middle note tied in both directions. TieNone
// is a plain untied note and serializes to an empty cell.
type TieState int

const (
	TieNone  TieState = -2
	TieStart TieState = 1
	TieEnd   TieState = -1
	TieBoth  TieState = 0
)

func (t TieState) String() string {
	switch t {
	case TieNone:
		return ""
	case TieStart:
		return "1"
	case TieEnd:
		return "-1"
	case TieBoth:
		return "0"
	}
	return "?"
}

// NoteEvent is one row of the note list: one sounding note. Onset and all
// durations are in whole-note units; Onset is relative to the start of the
// measure. TPC is the signed tonal pitch class with C = 0 (G = 1, F = -1),
// preserving spelling independently of Midi.
type NoteEvent struct {
	Section         int
	Ix              int
	MC              int
	MN              int
	Onset           frac.Frac
	Duration        frac.Frac
	NominalDuration frac.Frac
	Scalar          frac.Frac // cumulative tuplet ratio
	Tied            TieState
	TPC             int
	Midi            int
	Staff           int
	Voice           int
	Volta           int    // 1-based volta covering the note's measure, 0 = none
	Grace           string // grace kind, "" for ordinary notes
}
