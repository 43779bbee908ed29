package spell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "C", Name(0))
	assert.Equal(t, "G", Name(1))
	assert.Equal(t, "F", Name(-1))
	assert.Equal(t, "F#", Name(6))
	assert.Equal(t, "Gb", Name(-6))
	assert.Equal(t, "Ab", Name(-4))
	assert.Equal(t, "E#", Name(11))
	assert.Equal(t, "Bbb", Name(-9))
	assert.Equal(t, "C##", Name(14))
}

func TestNameDistinguishesEnharmonics(t *testing.T) {
	assert.NotEqual(t, Name(6), Name(-6))
}

func TestOctave(t *testing.T) {
	assert.Equal(t, 4, Octave(60))
	assert.Equal(t, 3, Octave(59))
	assert.Equal(t, -1, Octave(0))
	assert.Equal(t, 8, Octave(108))
}

func TestRomanNumeralMajor(t *testing.T) {
	// in C major
	assert.Equal(t, "I", RomanNumeral(0, 0, false))
	assert.Equal(t, "V", RomanNumeral(1, 0, false))
	assert.Equal(t, "IV", RomanNumeral(-1, 0, false))
	assert.Equal(t, "VII", RomanNumeral(5, 0, false))
	assert.Equal(t, "#IV", RomanNumeral(6, 0, false))
	assert.Equal(t, "bVII", RomanNumeral(-2, 0, false))
}

func TestRomanNumeralTransposed(t *testing.T) {
	// in D major (key tpc 2): D = I, A = V
	assert.Equal(t, "I", RomanNumeral(2, 2, false))
	assert.Equal(t, "V", RomanNumeral(3, 2, false))
}

func TestRomanNumeralMinor(t *testing.T) {
	// A minor carries an empty key signature (0): A = I, C = III, G# = #VII
	assert.Equal(t, "I", RomanNumeral(3, 0, true))
	assert.Equal(t, "III", RomanNumeral(0, 0, true))
	assert.Equal(t, "V", RomanNumeral(4, 0, true))
	assert.Equal(t, "#VII", RomanNumeral(8, 0, true))
}
