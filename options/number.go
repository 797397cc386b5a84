package options

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/dalmo1991/dummy-package-dalmo/functions"
)

// Number is a parsed operand. Integer literals are held exactly as int64; anything else is a float64.
type Number struct {
	Int   int64
	Float float64
	IsInt bool
	// Text is the literal the number was parsed from, empty for computed values.
	Text string
}

// ParseNumber parses a finite decimal number. Integer literals must fit in an int64 so they are never rounded.
func ParseNumber(s string) (Number, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return Number{Int: i, Float: float64(i), IsInt: true, Text: s}, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return Number{}, fmt.Errorf("%q is out of range for an exact integer", s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}, fmt.Errorf("%q is not a finite number", s)
	}
	return Number{Float: v, Text: s}, nil
}

// Plus adds two numbers with functions.Sum. Two integers stay integers and wrap on overflow; a float on
// either side makes the result a float.
func (n Number) Plus(m Number) Number {
	if n.IsInt && m.IsInt {
		sum := functions.Sum(n.Int, m.Int)
		return Number{Int: sum, Float: float64(sum), IsInt: true}
	}
	return Number{Float: functions.Sum(n.Float, m.Float)}
}

// Equal compares exactly: as integers when both sides are, as floats otherwise.
func (n Number) Equal(m Number) bool {
	if n.IsInt && m.IsInt {
		return n.Int == m.Int
	}
	return n.Float == m.Float
}

// String returns the literal text when there is one, else the shortest exact rendering.
func (n Number) String() string {
	if n.Text != "" {
		return n.Text
	}
	if n.IsInt {
		return strconv.FormatInt(n.Int, 10)
	}
	return FormatNumber(n.Float)
}

// FormatNumber prints v without trailing zeros, so 4 prints as "4" and 4.5 as "4.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
