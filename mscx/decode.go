package mscx

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// Grace-note chord markers, by MuseScore tag name.
var graceKinds = map[string]bool{
	"acciaccatura": true,
	"appoggiatura": true,
	"grace4":       true,
	"grace8":       true,
	"grace16":      true,
	"grace32":      true,
	"grace8after":  true,
	"grace16after": true,
	"grace32after": true,
}

func (s *Staff) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "id" {
			s.ID, _ = strconv.Atoi(attr.Value)
		}
	}
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		t, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if t.Name.Local == "Measure" {
			var m Measure
			if err := d.DecodeElement(&m, &t); err != nil {
				return err
			}
			s.Measures = append(s.Measures, m)
		} else if err := d.Skip(); err != nil {
			return err
		}
	}
}

func (m *Measure) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "len" {
			m.Len = attr.Value
		}
	}
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		t, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch t.Name.Local {
		case "voice":
			var v Voice
			if err := d.DecodeElement(&v, &t); err != nil {
				return err
			}
			m.Voices = append(m.Voices, v)
		case "irregular":
			s, err := text(d, &t)
			if err != nil {
				return err
			}
			m.Irregular = s != "0"
		case "noOffset":
			n, err := intText(d, &t)
			if err != nil {
				return err
			}
			m.NoOffset = n
		case "startRepeat":
			if err := d.Skip(); err != nil {
				return err
			}
			m.StartRepeat = true
		case "endRepeat":
			// carries the play count as text; presence is what matters
			if err := d.Skip(); err != nil {
				return err
			}
			m.EndRepeat = true
		case "LayoutBreak":
			var lb struct {
				Subtype string `xml:"subtype"`
			}
			if err := d.DecodeElement(&lb, &t); err != nil {
				return err
			}
			if lb.Subtype == "section" {
				m.SectionBreak = true
			}
		default:
			m.Unrecognized = append(m.Unrecognized, t.Name.Local)
			if err := d.Skip(); err != nil {
				return err
			}
		}
	}
}

func (v *Voice) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		t, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		ev, err := decodeEvent(d, &t)
		if err != nil {
			return err
		}
		v.Events = append(v.Events, ev)
	}
}

func decodeEvent(d *xml.Decoder, t *xml.StartElement) (Event, error) {
	switch t.Name.Local {
	case "Chord":
		var c Chord
		if err := d.DecodeElement(&c, t); err != nil {
			return Event{}, err
		}
		return Event{Kind: KindChord, Chord: &c}, nil
	case "Rest":
		var r Rest
		if err := d.DecodeElement(&r, t); err != nil {
			return Event{}, err
		}
		return Event{Kind: KindRest, Rest: &r}, nil
	case "Tuplet":
		var raw struct {
			NormalNotes int `xml:"normalNotes"`
			ActualNotes int `xml:"actualNotes"`
		}
		if err := d.DecodeElement(&raw, t); err != nil {
			return Event{}, err
		}
		return Event{Kind: KindTuplet, Tuplet: &Tuplet{raw.NormalNotes, raw.ActualNotes}}, nil
	case "endTuplet":
		if err := d.Skip(); err != nil {
			return Event{}, err
		}
		return Event{Kind: KindEndTuplet}, nil
	case "TimeSig":
		var raw struct {
			N int `xml:"sigN"`
			D int `xml:"sigD"`
		}
		if err := d.DecodeElement(&raw, t); err != nil {
			return Event{}, err
		}
		return Event{Kind: KindTimeSig, TimeSig: &TimeSig{raw.N, raw.D}}, nil
	case "KeySig":
		var raw struct {
			Accidental int `xml:"accidental"`
		}
		if err := d.DecodeElement(&raw, t); err != nil {
			return Event{}, err
		}
		return Event{Kind: KindKeySig, KeySig: raw.Accidental}, nil
	case "BarLine":
		var raw struct {
			Subtype string `xml:"subtype"`
		}
		if err := d.DecodeElement(&raw, t); err != nil {
			return Event{}, err
		}
		return Event{Kind: KindBarLine, BarLine: raw.Subtype}, nil
	case "Volta":
		var raw struct {
			Endings  string `xml:"endings"`
			Measures int    `xml:"next>location>measures"`
		}
		if err := d.DecodeElement(&raw, t); err != nil {
			return Event{}, err
		}
		return Event{Kind: KindVolta, Volta: &Volta{raw.Endings, raw.Measures}}, nil
	case "Spanner":
		// voltas come wrapped in a Spanner; its next>location>measures
		// carries the span length
		typ := ""
		for _, attr := range t.Attr {
			if attr.Name.Local == "type" {
				typ = attr.Value
			}
		}
		if typ != "Volta" {
			if err := d.Skip(); err != nil {
				return Event{}, err
			}
			return Event{Kind: KindUnknown, Raw: "Spanner:" + typ}, nil
		}
		var raw struct {
			Endings  string `xml:"Volta>endings"`
			Measures int    `xml:"next>location>measures"`
		}
		if err := d.DecodeElement(&raw, t); err != nil {
			return Event{}, err
		}
		return Event{Kind: KindVolta, Volta: &Volta{raw.Endings, raw.Measures}}, nil
	default:
		name := t.Name.Local
		if err := d.Skip(); err != nil {
			return Event{}, err
		}
		return Event{Kind: KindUnknown, Raw: name}, nil
	}
}

func (c *Chord) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		t, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch {
		case t.Name.Local == "durationType":
			s, err := text(d, &t)
			if err != nil {
				return err
			}
			c.DurationType = s
		case t.Name.Local == "dots":
			n, err := intText(d, &t)
			if err != nil {
				return err
			}
			c.Dots = n
		case t.Name.Local == "Note":
			var n Note
			if err := d.DecodeElement(&n, &t); err != nil {
				return err
			}
			c.Notes = append(c.Notes, n)
		case graceKinds[t.Name.Local]:
			c.Grace = t.Name.Local
			if err := d.Skip(); err != nil {
				return err
			}
		default:
			if err := d.Skip(); err != nil {
				return err
			}
		}
	}
}

func (n *Note) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		t, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch t.Name.Local {
		case "pitch":
			p, err := intText(d, &t)
			if err != nil {
				return err
			}
			n.Pitch = p
		case "tpc":
			p, err := intText(d, &t)
			if err != nil {
				return err
			}
			n.TPC = p
		case "Spanner":
			isTie := false
			for _, attr := range t.Attr {
				if attr.Name.Local == "type" && attr.Value == "Tie" {
					isTie = true
				}
			}
			if !isTie {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			var raw struct {
				Next *struct{} `xml:"next"`
				Prev *struct{} `xml:"prev"`
			}
			if err := d.DecodeElement(&raw, &t); err != nil {
				return err
			}
			if raw.Next != nil {
				n.TieNext = true
			}
			if raw.Prev != nil {
				n.TiePrev = true
			}
		default:
			if err := d.Skip(); err != nil {
				return err
			}
		}
	}
}

func text(d *xml.Decoder, t *xml.StartElement) (string, error) {
	var s string
	if err := d.DecodeElement(&s, t); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func intText(d *xml.Decoder, t *xml.StartElement) (int, error) {
	s, err := text(d, t)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
