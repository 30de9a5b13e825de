// Package parser decodes JSON, TOML and YAML documents into models.Value.
package parser

import (
	"github.com/mcncl/jty/internal/errors"
	"github.com/mcncl/jty/internal/format"
	"github.com/mcncl/jty/internal/models"
)

// maxDepth bounds nesting so hostile input cannot exhaust the stack
const maxDepth = 10000

// Parse decodes data written in f
func Parse(f format.Format, data []byte) (models.Value, error) {
	switch f {
	case format.JSON:
		return ParseJSON(data)
	case format.TOML:
		return ParseTOML(data)
	case format.YAML:
		return ParseYAML(data)
	default:
		return models.Value{}, errors.NewUnsupportedFileExtension(f.String())
	}
}

// position converts a byte offset into a 1-based line and column
func position(data []byte, offset int64) (line, column int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, column = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}
