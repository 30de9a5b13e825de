package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcncl/jty/internal/errors"
	"github.com/mcncl/jty/internal/models"
)

// formatJSON writes mappings in their stored order, so the object layout
// is produced here rather than by encoding/json
func (f *Formatter) formatJSON(val models.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.writeJSON(&buf, val, rootPath, 0); err != nil {
		return nil, errors.NewFailedToSerializeOutput("JSON", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (f *Formatter) writeJSON(buf *bytes.Buffer, val models.Value, path string, depth int) error {
	switch val.Kind() {
	case models.KindNull:
		buf.WriteString("null")
	case models.KindBool:
		if val.AsBool() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case models.KindNumber:
		n := val.AsNumber()
		if !n.IsFinite() {
			return fmt.Errorf("%s: JSON cannot represent %s", path, n)
		}
		buf.WriteString(n.String())
	case models.KindString:
		return writeJSONString(buf, val.AsString())
	case models.KindSequence:
		items := val.Items()
		if len(items) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				buf.WriteByte(',')
			}
			f.newline(buf, depth+1)
			if err := f.writeJSON(buf, item, indexPath(path, i), depth+1); err != nil {
				return err
			}
		}
		f.newline(buf, depth)
		buf.WriteByte(']')
	case models.KindMapping:
		m := val.Mapping()
		if m.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, key := range m.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			item, _ := m.Get(key)
			f.newline(buf, depth+1)
			if err := writeJSONString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if f.opts.JSONIndent != "" {
				buf.WriteByte(' ')
			}
			if err := f.writeJSON(buf, item, childPath(path, key), depth+1); err != nil {
				return err
			}
		}
		f.newline(buf, depth)
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%s: unknown value kind %s", path, val.Kind())
	}
	return nil
}

func (f *Formatter) newline(buf *bytes.Buffer, depth int) {
	if f.opts.JSONIndent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(f.opts.JSONIndent, depth))
}

// writeJSONString quotes s without HTML escaping
func writeJSONString(buf *bytes.Buffer, s string) error {
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	return nil
}
