// Package spell turns tonal pitch classes into note names and scale
// degrees. The tpc convention is circle-of-fifths based with C = 0, so
// spelling survives: F# (6) and Gb (-6) are different values even though
// they share a MIDI pitch.
package spell

import (
	"strings"
)

// fifths-ordered letters: tpc -1 = F, 0 = C, 1 = G, ...
const letters = "FCGDAEB"

var majorDegrees = [7]string{"IV", "I", "V", "II", "VI", "III", "VII"}
var minorDegrees = [7]string{"VI", "III", "VII", "IV", "I", "V", "II"}

// Name spells a tonal pitch class: 0 = "C", 1 = "G", -4 = "Ab", 11 = "E#".
func Name(tpc int) string {
	i := tpc + 1
	letter := string(letters[mod(i, 7)])
	alt := floorDiv(i, 7)
	if alt < 0 {
		return letter + strings.Repeat("b", -alt)
	}
	return letter + strings.Repeat("#", alt)
}

// Octave is the scientific octave of a MIDI pitch (60 = C4).
func Octave(midi int) int {
	return midi/12 - 1
}

// RomanNumeral is the scale degree of a tonal pitch class relative to a
// key signature (fifths, as in the keysig column), prefixed with
// accidentals where the degree falls outside the scale. For minor keys the
// signature is the relative major's, so A minor is key 0.
func RomanNumeral(tpc, key int, minor bool) string {
	tpc -= key - 1
	var acc string
	if tpc < 0 {
		acc = strings.Repeat("b", -floorDiv(tpc, 7))
	} else {
		acc = strings.Repeat("#", tpc/7)
	}
	if minor {
		return acc + minorDegrees[mod(tpc, 7)]
	}
	return acc + majorDegrees[mod(tpc, 7)]
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
