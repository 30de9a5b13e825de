package formatter

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jty/internal/errors"
	"github.com/mcncl/jty/internal/format"
	"github.com/mcncl/jty/internal/models"
	"github.com/mcncl/jty/internal/parser"
)

func TestFormatTOML_NestedTable(t *testing.T) {
	out, err := NewFormatter(DefaultOptions()).Format(format.TOML, fooBarBaz())
	require.NoError(t, err)

	assert.Contains(t, string(out), "[foo]")
	assert.Contains(t, string(out), `bar = "baz"`)

	back, err := parser.ParseTOML(out)
	require.NoError(t, err)
	assert.True(t, fooBarBaz().Equal(back))
}

func TestFormatTOML_NoIndent(t *testing.T) {
	opts := DefaultOptions()
	opts.TOMLIndent = ""

	out, err := NewFormatter(opts).Format(format.TOML, fooBarBaz())
	require.NoError(t, err)
	assert.Contains(t, string(out), "[foo]\nbar = \"baz\"\n")
}

func TestFormatTOML_SortsKeys(t *testing.T) {
	inner := models.NewMapping()
	inner.Set("y", models.NewNumber(models.IntNumber(1)))
	inner.Set("x", models.NewNumber(models.IntNumber(2)))
	root := models.NewMapping()
	root.Set("zeta", models.NewNumber(models.IntNumber(1)))
	root.Set("mid", models.NewMappingValue(inner))
	root.Set("alpha", models.NewBool(true))

	out, err := NewFormatter(DefaultOptions()).Format(format.TOML, models.NewMappingValue(root))
	require.NoError(t, err)

	text := string(out)
	assert.Less(t, strings.Index(text, "alpha = true"), strings.Index(text, "zeta = 1"))
	assert.Less(t, strings.Index(text, "zeta = 1"), strings.Index(text, "[mid]"))
	assert.Less(t, strings.Index(text, "x = 2"), strings.Index(text, "y = 1"))

	// JSON keeps document order for the same value
	jsonOut, err := NewFormatter(DefaultOptions()).Format(format.JSON, models.NewMappingValue(root))
	require.NoError(t, err)
	assert.Less(t, strings.Index(string(jsonOut), `"zeta"`), strings.Index(string(jsonOut), `"alpha"`))
}

func TestFormatTOML_ArrayOfTables(t *testing.T) {
	first := models.NewMapping()
	first.Set("a", models.NewNumber(models.IntNumber(1)))
	second := models.NewMapping()
	second.Set("a", models.NewNumber(models.IntNumber(2)))
	root := models.NewMapping()
	root.Set("items", models.NewSequence(models.NewMappingValue(first), models.NewMappingValue(second)))

	out, err := NewFormatter(DefaultOptions()).Format(format.TOML, models.NewMappingValue(root))
	require.NoError(t, err)
	assert.Contains(t, string(out), "[[items]]")

	back, err := parser.ParseTOML(out)
	require.NoError(t, err)
	assert.True(t, models.NewMappingValue(root).Equal(back))
}

func TestFormatTOML_NumbersKeepTheirType(t *testing.T) {
	root := models.NewMapping()
	root.Set("whole", models.NewNumber(models.FloatNumber(2)))
	root.Set("count", models.NewNumber(models.IntNumber(2)))
	root.Set("huge", models.NewNumber(models.FloatNumber(math.Inf(1))))

	out, err := NewFormatter(DefaultOptions()).Format(format.TOML, models.NewMappingValue(root))
	require.NoError(t, err)

	back, err := parser.ParseTOML(out)
	require.NoError(t, err)
	assert.True(t, models.NewMappingValue(root).Equal(back), "got:\n%s", out)
}

func TestFormatTOML_RootMustBeMapping(t *testing.T) {
	tests := []struct {
		name  string
		value models.Value
	}{
		{"string", models.NewString("hello")},
		{"number", models.NewNumber(models.IntNumber(1))},
		{"sequence", models.NewSequence(models.NewBool(true))},
		{"null", models.NewNull()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFormatter(DefaultOptions()).Format(format.TOML, tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrUnsupportedTOMLRoot)
			assert.Contains(t, err.Error(), tt.value.Kind().String())
		})
	}
}

func TestFormatTOML_RejectsUnrepresentableValues(t *testing.T) {
	withNull := models.NewMapping()
	inner := models.NewMapping()
	inner.Set("b", models.NewNull())
	withNull.Set("a", models.NewMappingValue(inner))

	withBigInt := models.NewMapping()
	withBigInt.Set("n", models.NewNumber(models.MustParseNumber("99999999999999999999")))

	withHugeFloat := models.NewMapping()
	withHugeFloat.Set("x", models.NewNumber(models.MustParseNumber("1e400")))

	withNegativeHugeFloat := models.NewMapping()
	withNegativeHugeFloat.Set("x", models.NewNumber(models.MustParseNumber("-2.5e999")))

	tests := []struct {
		name     string
		value    models.Value
		contains string
	}{
		{"null in table", models.NewMappingValue(withNull), "$.a.b: TOML cannot represent null"},
		{"integer overflow", models.NewMappingValue(withBigInt), "$.n: integer 99999999999999999999 does not fit"},
		{"float overflow", models.NewMappingValue(withHugeFloat), "$.x: float 1e400 is out of range"},
		{"negative float overflow", models.NewMappingValue(withNegativeHugeFloat), "$.x: float -2.5e999 is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFormatter(DefaultOptions()).Format(format.TOML, tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrFailedToSerializeOutput)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
