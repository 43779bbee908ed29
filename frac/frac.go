// Package frac implements exact rational values for onsets and durations.
//
// All rhythmic bookkeeping in the parser is done in whole-note units, so a
// dotted eighth inside a triplet stays exact ((1/8 + 1/16) * 2/3 = 1/8).
// Frac is a plain comparable value: rows holding fractions can be copied,
// compared with == and used as map keys.
package frac

import (
	"fmt"
	"strconv"
	"strings"
)

// Frac is a rational number num/den, always normalized: den > 0, gcd = 1,
// zero is 0/1. The zero value is a valid 0.
type Frac struct {
	num, den int64
}

var Zero = Frac{0, 1}

func New(num, den int64) Frac {
	if den == 0 {
		panic("frac: zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	if g > 1 {
		num, den = num/g, den/g
	}
	if num == 0 {
		den = 1
	}
	return Frac{num, den}
}

func FromInt(n int64) Frac {
	return Frac{n, 1}
}

// Parse reads "n" or "n/d". Whitespace around either part is tolerated.
func Parse(s string) (Frac, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, fmt.Errorf("frac: empty string")
	}
	num, den := s, ""
	if i := strings.IndexByte(s, '/'); i >= 0 {
		num, den = s[:i], s[i+1:]
	}
	n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("frac: bad numerator in %q", s)
	}
	if den == "" {
		return FromInt(n), nil
	}
	d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
	if err != nil || d == 0 {
		return Zero, fmt.Errorf("frac: bad denominator in %q", s)
	}
	return New(n, d), nil
}

// MustParse is Parse for trusted literals, mostly in tests and tables.
func MustParse(s string) Frac {
	f, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return f
}

func (f Frac) Num() int64 { return f.num }

func (f Frac) Den() int64 {
	if f.den == 0 {
		return 1
	}
	return f.den
}

func (f Frac) Add(g Frac) Frac { return New(f.Num()*g.Den()+g.Num()*f.Den(), f.Den()*g.Den()) }
func (f Frac) Sub(g Frac) Frac { return New(f.Num()*g.Den()-g.Num()*f.Den(), f.Den()*g.Den()) }
func (f Frac) Mul(g Frac) Frac { return New(f.Num()*g.Num(), f.Den()*g.Den()) }

func (f Frac) Div(g Frac) Frac {
	if g.Num() == 0 {
		panic("frac: division by zero")
	}
	return New(f.Num()*g.Den(), f.Den()*g.Num())
}

// Cmp returns -1, 0 or 1 as f is less than, equal to or greater than g.
func (f Frac) Cmp(g Frac) int {
	l, r := f.Num()*g.Den(), g.Num()*f.Den()
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func (f Frac) Less(g Frac) bool { return f.Cmp(g) < 0 }
func (f Frac) IsZero() bool     { return f.Num() == 0 }

func (f Frac) Sign() int {
	switch {
	case f.Num() < 0:
		return -1
	case f.Num() > 0:
		return 1
	}
	return 0
}

func (f Frac) Float() float64 { return float64(f.Num()) / float64(f.Den()) }

// Mod returns f modulo g, with a result in [0, g) for positive g.
func (f Frac) Mod(g Frac) Frac {
	q := f.Num() * g.Den() / (g.Num() * f.Den())
	r := f.Sub(g.Mul(FromInt(q)))
	if r.Sign() < 0 {
		r = r.Add(g)
	}
	return r
}

func (f Frac) String() string {
	if f.Den() == 1 {
		return strconv.FormatInt(f.Num(), 10)
	}
	return strconv.FormatInt(f.Num(), 10) + "/" + strconv.FormatInt(f.Den(), 10)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
