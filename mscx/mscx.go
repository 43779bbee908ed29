// Package mscx reads MuseScore 3 MSCX documents into typed structs. The XML
// is decoded exactly once, here at the boundary: every recognized tag
// becomes a field or a closed Event variant, everything else is kept by
// name in Unrecognized so the parser can report it without crashing.
package mscx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/net/html/charset"
)

// SupportedVersion is the MuseScore release the parser is written against.
// Other 3.x versions are accepted; the caller may warn on mismatch.
const SupportedVersion = "3.2.3"

// Doc is one parsed MSCX file. Staves are ordered by their 1-based id and
// each holds the same number of measure nodes in a well-formed score.
type Doc struct {
	ProgramVersion string
	Staves         []Staff
}

type Staff struct {
	ID       int
	Measures []Measure
}

// Measure is one measure node of one staff. Markers that MuseScore writes
// as direct measure children live here; in-voice elements (chords, rests,
// signatures, barlines, voltas) are kept in document order under Voices.
type Measure struct {
	Len          string // len attribute: actual duration of an irregular measure
	Irregular    bool   // excluded from measure numbering
	NoOffset     int    // additive measure numbering offset
	StartRepeat  bool
	EndRepeat    bool
	SectionBreak bool
	Voices       []Voice
	Unrecognized []string // unhandled child tag names, for diagnostics
}

type Voice struct {
	Events []Event
}

// EventKind discriminates the closed Event variant.
type EventKind int

const (
	KindChord EventKind = iota
	KindRest
	KindTuplet
	KindEndTuplet
	KindTimeSig
	KindKeySig
	KindBarLine
	KindVolta
	KindUnknown
)

// Event is one in-voice element. Exactly the payload matching Kind is set;
// KindUnknown carries the raw tag name in Raw.
type Event struct {
	Kind    EventKind
	Chord   *Chord
	Rest    *Rest
	Tuplet  *Tuplet
	TimeSig *TimeSig
	KeySig  int
	BarLine string
	Volta   *Volta
	Raw     string
}

type Chord struct {
	DurationType string
	Dots         int
	Grace        string // acciaccatura, appoggiatura, grace4, ... or ""
	Notes        []Note
}

type Rest struct {
	DurationType string `xml:"durationType"`
	Dots         int    `xml:"dots"`
	Duration     string `xml:"duration"` // fraction, set for measure rests
}

type Tuplet struct {
	NormalNotes int
	ActualNotes int
}

type TimeSig struct {
	N, D int
}

// Volta spans Measures measure nodes starting at the measure carrying it.
type Volta struct {
	Endings  string
	Measures int
}

type Note struct {
	Pitch   int // MIDI pitch
	TPC     int // MuseScore tonal pitch class, 14 = C
	TiePrev bool
	TieNext bool
}

// ReadFile parses the MSCX file at path.
func ReadFile(path string) (*Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading score file: %w", err)
	}
	defer f.Close()
	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Read parses an MSCX document. It fails on undecodable XML or a document
// without the mandatory Part/Staff structure.
func Read(r io.Reader) (*Doc, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var raw rawDoc
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding XML: %w", err)
	}
	if len(raw.Score.Parts) == 0 {
		return nil, errors.New("document has no Part element")
	}
	if len(raw.Score.Staves) == 0 {
		return nil, errors.New("document has no Staff elements")
	}

	doc := &Doc{ProgramVersion: raw.ProgramVersion}
	doc.Staves = append(doc.Staves, raw.Score.Staves...)
	sort.Slice(doc.Staves, func(i, j int) bool {
		return doc.Staves[i].ID < doc.Staves[j].ID
	})
	return doc, nil
}

type rawDoc struct {
	XMLName        xml.Name `xml:"museScore"`
	ProgramVersion string   `xml:"programVersion"`
	Score          rawScore `xml:"Score"`
}

type rawScore struct {
	// Only direct Score children: the staff definitions nested inside Part
	// carry no measures and are not picked up here.
	Parts  []struct{} `xml:"Part"`
	Staves []Staff    `xml:"Staff"`
}
