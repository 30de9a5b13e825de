package models

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapping_PreservesInsertionOrder(t *testing.T) {
	m := NewMapping()
	m.Set("zeta", NewString("z"))
	m.Set("alpha", NewString("a"))
	m.Set("mid", NewString("m"))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
	assert.Equal(t, 3, m.Len())
}

func TestMapping_SetExistingKeyKeepsPosition(t *testing.T) {
	m := NewMapping()
	m.Set("a", NewNumber(IntNumber(1)))
	m.Set("b", NewNumber(IntNumber(2)))
	m.Set("a", NewNumber(IntNumber(3)))

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	val, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "3", val.AsNumber().String())
}

func TestMapping_AllStopsEarly(t *testing.T) {
	m := NewMapping()
	m.Set("a", NewNull())
	m.Set("b", NewNull())
	m.Set("c", NewNull())

	var seen []string
	for key := range m.All() {
		seen = append(seen, key)
		if key == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestMapping_NilIsEmpty(t *testing.T) {
	var m *Mapping
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	_, ok := m.Get("x")
	assert.False(t, ok)
}

func TestValue_ZeroIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, KindNull, v.Kind())
	assert.True(t, v.Equal(NewNull()))
}

func TestValue_Equal(t *testing.T) {
	left := NewMapping()
	left.Set("name", NewString("jty"))
	left.Set("tags", NewSequence(NewString("a"), NewBool(true)))

	right := NewMapping()
	right.Set("tags", NewSequence(NewString("a"), NewBool(true)))
	right.Set("name", NewString("jty"))

	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"mapping order ignored", NewMappingValue(left), NewMappingValue(right), true},
		{"different kinds", NewString("1"), NewNumber(IntNumber(1)), false},
		{"sequence order matters", NewSequence(NewBool(true), NewBool(false)), NewSequence(NewBool(false), NewBool(true)), false},
		{"sequence length", NewSequence(NewNull()), NewSequence(), false},
		{"float literals compare by value", NewNumber(MustParseNumber("1.50")), NewNumber(FloatNumber(1.5)), true},
		{"integer versus float", NewNumber(IntNumber(1)), NewNumber(FloatNumber(1)), false},
		{"mapping missing key", NewMappingValue(left), NewMappingValue(NewMapping()), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
		})
	}
}

func TestValue_RenameKeys(t *testing.T) {
	inner := NewMapping()
	inner.Set("Inner", NewString("x"))
	root := NewMapping()
	root.Set("Outer", NewSequence(NewMappingValue(inner)))
	root.Set("Other", NewNumber(IntNumber(7)))

	renamed := NewMappingValue(root).RenameKeys(strings.ToLower)

	assert.Equal(t, []string{"outer", "other"}, renamed.Mapping().Keys())
	outer, ok := renamed.Mapping().Get("outer")
	require.True(t, ok)
	require.Len(t, outer.Items(), 1)
	assert.Equal(t, []string{"inner"}, outer.Items()[0].Mapping().Keys())

	// the source tree is untouched
	assert.Equal(t, []string{"Outer", "Other"}, root.Keys())
}

func TestValue_RenameKeysCollision(t *testing.T) {
	m := NewMapping()
	m.Set("Key", NewNumber(IntNumber(1)))
	m.Set("other", NewNumber(IntNumber(2)))
	m.Set("KEY", NewNumber(IntNumber(3)))

	renamed := NewMappingValue(m).RenameKeys(strings.ToLower)

	assert.Equal(t, []string{"key", "other"}, renamed.Mapping().Keys())
	val, _ := renamed.Mapping().Get("key")
	assert.Equal(t, "3", val.AsNumber().String())
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		literal string
		integer bool
		wantErr bool
	}{
		{"0", true, false},
		{"-42", true, false},
		{"123456789012345678901234567890", true, false},
		{"3.14", false, false},
		{"1e10", false, false},
		{"-2.5E-3", false, false},
		{"1e400", false, false},
		{"", false, true},
		{"abc", false, true},
		{"1.2.3", false, true},
		{"Infinity", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			n, err := ParseNumber(tt.literal)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.integer, n.IsInteger())
			assert.Equal(t, tt.literal, n.String())
		})
	}
}

func TestNumber_BigIntegerKeepsLiteral(t *testing.T) {
	n := MustParseNumber("123456789012345678901234567890")

	_, fits := n.Int64()
	assert.False(t, fits)
	assert.Equal(t, "123456789012345678901234567890", n.String())
}

func TestNumber_Int64(t *testing.T) {
	i, ok := IntNumber(-9).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(-9), i)

	_, ok = FloatNumber(2).Int64()
	assert.False(t, ok)
}

func TestFloatNumber(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{2, "2.0"},
		{0, "0.0"},
		{3.25, "3.25"},
		{-0.5, "-0.5"},
		{1e21, "1e+21"},
		{1e-7, "1e-07"},
		{123456789, "123456789.0"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			n := FloatNumber(tt.in)
			assert.Equal(t, tt.expected, n.String())
			assert.False(t, n.IsInteger())
		})
	}
}

func TestNumber_IsFinite(t *testing.T) {
	assert.True(t, FloatNumber(1.5).IsFinite())
	assert.True(t, IntNumber(1).IsFinite())
	assert.False(t, FloatNumber(math.Inf(1)).IsFinite())
	assert.False(t, FloatNumber(math.NaN()).IsFinite())
}

func TestNumber_EqualNaN(t *testing.T) {
	assert.True(t, FloatNumber(math.NaN()).Equal(FloatNumber(math.NaN())))
	assert.False(t, FloatNumber(math.NaN()).Equal(FloatNumber(1)))
}
