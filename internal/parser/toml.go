package parser

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mcncl/jty/internal/errors"
	"github.com/mcncl/jty/internal/models"
)

// Location names the TOML decoder gives to local date/time values
const (
	tomlLocalDatetime = "datetime-local"
	tomlLocalDate     = "date-local"
	tomlLocalTime     = "time-local"
)

// ParseTOML decodes a TOML document. Key order is recovered from the
// decoder metadata; keys it does not report fall back to sorted order.
// Date and time values become their RFC 3339 text.
func ParseTOML(data []byte) (models.Value, error) {
	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return models.Value{}, errors.NewFailedToReadTOMLFile(err)
	}
	return convertTOML(raw, "", newTOMLKeyOrder(meta.Keys())), nil
}

// tomlKeyOrder maps a parent key path to its children in document order.
// Array-of-tables elements share the path of their array.
type tomlKeyOrder map[string][]string

func newTOMLKeyOrder(keys []toml.Key) tomlKeyOrder {
	order := make(tomlKeyOrder)
	seen := make(map[string]struct{})
	for _, key := range keys {
		if len(key) == 0 {
			continue
		}
		parent := joinTOMLPath(key[:len(key)-1])
		child := key[len(key)-1]
		id := parent + "\x01" + child
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		order[parent] = append(order[parent], child)
	}
	return order
}

func (o tomlKeyOrder) keys(path string, table map[string]any) []string {
	keys := make([]string, 0, len(table))
	placed := make(map[string]struct{}, len(table))
	for _, key := range o[path] {
		if _, ok := table[key]; ok {
			keys = append(keys, key)
			placed[key] = struct{}{}
		}
	}

	var rest []string
	for key := range table {
		if _, ok := placed[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func joinTOMLPath(parts []string) string {
	return strings.Join(parts, "\x00")
}

func childTOMLPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "\x00" + key
}

func convertTOML(raw any, path string, order tomlKeyOrder) models.Value {
	switch v := raw.(type) {
	case map[string]any:
		table := models.NewMapping()
		for _, key := range order.keys(path, v) {
			table.Set(key, convertTOML(v[key], childTOMLPath(path, key), order))
		}
		return models.NewMappingValue(table)
	case []map[string]any:
		items := make([]models.Value, len(v))
		for i, table := range v {
			items[i] = convertTOML(table, path, order)
		}
		return models.NewSequence(items...)
	case []any:
		items := make([]models.Value, len(v))
		for i, item := range v {
			items[i] = convertTOML(item, path, order)
		}
		return models.NewSequence(items...)
	case string:
		return models.NewString(v)
	case bool:
		return models.NewBool(v)
	case int64:
		return models.NewNumber(models.IntNumber(v))
	case float64:
		return models.NewNumber(models.FloatNumber(v))
	case time.Time:
		return models.NewString(formatTOMLTime(v))
	case nil:
		return models.NewNull()
	default:
		return models.NewString(fmt.Sprint(v))
	}
}

func formatTOMLTime(t time.Time) string {
	switch t.Location().String() {
	case tomlLocalDatetime:
		return t.Format("2006-01-02T15:04:05.999999999")
	case tomlLocalDate:
		return t.Format(time.DateOnly)
	case tomlLocalTime:
		return t.Format("15:04:05.999999999")
	default:
		return t.Format(time.RFC3339Nano)
	}
}
