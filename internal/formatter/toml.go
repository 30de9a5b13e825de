package formatter

import (
	"bytes"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"

	"github.com/mcncl/jty/internal/errors"
	"github.com/mcncl/jty/internal/models"
)

// formatTOML requires a mapping root. TOML has no null, and its numbers are
// 64-bit, so nulls, integers outside int64 and finite floats beyond float64
// range are rejected instead of being dropped or rounded.
//
// Unlike JSON and YAML output, which keep document order, TOML output has its
// keys sorted within each table by the encoder.
func (f *Formatter) formatTOML(val models.Value) ([]byte, error) {
	if val.Kind() != models.KindMapping {
		return nil, errors.NewUnsupportedTOMLRoot(val.Kind().String())
	}

	doc, err := tomlNative(val, rootPath)
	if err != nil {
		return nil, errors.NewFailedToSerializeOutput("TOML", err)
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = f.opts.TOMLIndent
	if err := encoder.Encode(doc); err != nil {
		return nil, errors.NewFailedToSerializeOutput("TOML", err)
	}
	return buf.Bytes(), nil
}

// tomlNative converts val into the plain Go values the TOML encoder accepts
func tomlNative(val models.Value, path string) (any, error) {
	switch val.Kind() {
	case models.KindNull:
		return nil, fmt.Errorf("%s: TOML cannot represent null", path)
	case models.KindBool:
		return val.AsBool(), nil
	case models.KindNumber:
		n := val.AsNumber()
		if !n.IsInteger() {
			f := n.Float64()
			if n.IsFinite() && math.IsInf(f, 0) {
				return nil, fmt.Errorf("%s: float %s is out of range for a 64-bit TOML float", path, n)
			}
			return f, nil
		}
		i, ok := n.Int64()
		if !ok {
			return nil, fmt.Errorf("%s: integer %s does not fit in a 64-bit TOML integer", path, n)
		}
		return i, nil
	case models.KindString:
		return val.AsString(), nil
	case models.KindSequence:
		items := make([]any, len(val.Items()))
		for i, item := range val.Items() {
			native, err := tomlNative(item, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			items[i] = native
		}
		return items, nil
	case models.KindMapping:
		table := make(map[string]any, val.Mapping().Len())
		for key, item := range val.Mapping().All() {
			native, err := tomlNative(item, childPath(path, key))
			if err != nil {
				return nil, err
			}
			table[key] = native
		}
		return table, nil
	default:
		return nil, fmt.Errorf("%s: unknown value kind %s", path, val.Kind())
	}
}
