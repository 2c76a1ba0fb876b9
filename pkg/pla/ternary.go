package pla

import (
	"github.com/pkg/errors"
)

// Ternary is the value of a single truth-table cell.
type Ternary int8

const (
	DontCare Ternary = iota
	True
	False
)

// Lift returns the Ternary corresponding to b.
func Lift(b bool) Ternary {
	if b {
		return True
	}
	return False
}

// Symbol returns the character used for t in table text.
func (t Ternary) Symbol() byte {
	switch t {
	case True:
		return '1'
	case False:
		return '0'
	default:
		return '-'
	}
}

func (t Ternary) String() string {
	return string(t.Symbol())
}

// Not returns the opposite of t. DontCare stays DontCare.
func (t Ternary) Not() Ternary {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return DontCare
	}
}

// ParseTernary maps a table character to its Ternary value.
func ParseTernary(c byte) (Ternary, error) {
	switch c {
	case '1':
		return True, nil
	case '0':
		return False, nil
	case '-':
		return DontCare, nil
	}
	return DontCare, errors.Errorf("invalid character %q in ternary field", c)
}

func parseTernaries(s string) ([]Ternary, error) {
	out := make([]Ternary, len(s))
	for i := 0; i < len(s); i++ {
		t, err := ParseTernary(s[i])
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func appendTernaries(dst []byte, ts []Ternary) []byte {
	for _, t := range ts {
		dst = append(dst, t.Symbol())
	}
	return dst
}
