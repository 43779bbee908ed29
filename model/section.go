package model

import (
	"fmt"
)

// Section is a maximal structurally-bounded measure range. Sections
// partition [0, last mc]: every mc belongs to exactly one section.
type Section struct {
	Index           int
	FirstMC, LastMC int
	FirstMN, LastMN int
	Repeated        bool
	StartBreak      string
	EndBreak        string
	SubsectionOf    int      // super-section id, -1 if not a subsection
	Voltas          [][2]int // inclusive mc ranges, in playing order
}

func (s Section) Contains(mc int) bool {
	return mc >= s.FirstMC && mc <= s.LastMC
}

func (s Section) String() string {
	kind := "Section"
	if s.Repeated {
		kind = "Repeated section"
	}
	voltas := "without voltas"
	if len(s.Voltas) > 0 {
		voltas = fmt.Sprintf("with %d voltas", len(s.Voltas))
	}
	return fmt.Sprintf("%s from node %d (%s) to node %d (%s), %s.",
		kind, s.FirstMC, s.StartBreak, s.LastMC, s.EndBreak, voltas)
}

// ScoreMetadata is catalogue information looked up per file, not parsed
// from the score itself.
type ScoreMetadata struct {
	Composer string `json:"composer"`
	Title    string `json:"title"`
	Deutsch  string `json:"deutsch"`
	Year     uint   `json:"year"`
}
