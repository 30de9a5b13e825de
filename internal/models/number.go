package models

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Literals used for the non-finite floats that TOML and YAML can express
const (
	literalInf    = "inf"
	literalNegInf = "-inf"
	literalNaN    = "nan"
)

// Number is a numeric scalar kept as its decimal literal so that integers of
// any size survive JSON and YAML round trips. The integer flag records whether
// the source wrote an integer or a float; it is never inferred from the value.
type Number struct {
	literal string
	integer bool
}

// ParseNumber accepts a JSON-style numeric literal. Integers are literals
// without a fraction or exponent.
func ParseNumber(literal string) (Number, error) {
	if literal == "" {
		return Number{}, errors.New("empty number literal")
	}
	if !strings.ContainsAny(literal, ".eE") {
		if _, ok := new(big.Int).SetString(literal, 10); !ok {
			return Number{}, fmt.Errorf("invalid integer literal %q", literal)
		}
		return Number{literal: strings.TrimPrefix(literal, "+"), integer: true}, nil
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Number{}, fmt.Errorf("invalid float literal %q", literal)
	}
	if err == nil && (math.IsInf(f, 0) || math.IsNaN(f)) {
		// "Infinity" and friends are accepted by ParseFloat but are not literals
		return Number{}, fmt.Errorf("invalid float literal %q", literal)
	}
	return Number{literal: literal}, nil
}

// MustParseNumber is ParseNumber for literals known to be valid
func MustParseNumber(literal string) Number {
	n, err := ParseNumber(literal)
	if err != nil {
		panic(err)
	}
	return n
}

// IntNumber returns an integer Number
func IntNumber(i int64) Number {
	return Number{literal: strconv.FormatInt(i, 10), integer: true}
}

// UintNumber returns an integer Number
func UintNumber(u uint64) Number {
	return Number{literal: strconv.FormatUint(u, 10), integer: true}
}

// FloatNumber returns a float Number. The literal always contains a '.' or an
// exponent so it reads back as a float.
func FloatNumber(f float64) Number {
	switch {
	case math.IsNaN(f):
		return Number{literal: literalNaN}
	case math.IsInf(f, 1):
		return Number{literal: literalInf}
	case math.IsInf(f, -1):
		return Number{literal: literalNegInf}
	}

	verb := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		verb = 'e'
	}
	s := strconv.FormatFloat(f, verb, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return Number{literal: s}
}

// IsInteger reports whether the number was written as an integer
func (n Number) IsInteger() bool {
	return n.integer
}

// IsFinite reports whether the number is neither infinite nor NaN
func (n Number) IsFinite() bool {
	switch n.literal {
	case literalInf, literalNegInf, literalNaN:
		return false
	}
	return true
}

// Int64 returns the integer value when it fits in an int64
func (n Number) Int64() (int64, bool) {
	if !n.integer {
		return 0, false
	}
	i, err := strconv.ParseInt(n.literal, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Float64 returns the nearest float64. Out of range literals become ±Inf.
func (n Number) Float64() float64 {
	if n.literal == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(n.literal, 64)
	return f
}

// String returns the literal
func (n Number) String() string {
	if n.literal == "" {
		return "0"
	}
	return n.literal
}

// Equal compares integer-ness and numeric value. NaN equals NaN.
func (n Number) Equal(other Number) bool {
	if n.integer != other.integer {
		return false
	}
	if n.integer {
		a, okA := new(big.Int).SetString(n.String(), 10)
		b, okB := new(big.Int).SetString(other.String(), 10)
		return okA && okB && a.Cmp(b) == 0
	}
	a, b := n.Float64(), other.Float64()
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}
