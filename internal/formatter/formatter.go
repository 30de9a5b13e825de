// Package formatter renders a models.Value as JSON, TOML or YAML text.
package formatter

import (
	"fmt"

	"github.com/mcncl/jty/internal/errors"
	"github.com/mcncl/jty/internal/format"
	"github.com/mcncl/jty/internal/models"
)

// rootPath is the location prefix used in error messages
const rootPath = "$"

// Options controls the layout of the generated text
type Options struct {
	// JSONIndent is repeated once per nesting level; empty means compact output
	JSONIndent string
	// TOMLIndent indents sub-tables
	TOMLIndent string
	// YAMLIndent is the number of spaces per nesting level
	YAMLIndent int
}

// DefaultOptions returns two-space indentation for every format
func DefaultOptions() Options {
	return Options{
		JSONIndent: "  ",
		TOMLIndent: "  ",
		YAMLIndent: 2,
	}
}

// Formatter serializes values into the supported text formats
type Formatter struct {
	opts Options
}

// NewFormatter creates a new Formatter instance
func NewFormatter(opts Options) *Formatter {
	if opts.YAMLIndent < 1 {
		opts.YAMLIndent = DefaultOptions().YAMLIndent
	}
	return &Formatter{opts: opts}
}

// Format renders val in the target format
func (f *Formatter) Format(target format.Format, val models.Value) ([]byte, error) {
	switch target {
	case format.JSON:
		return f.formatJSON(val)
	case format.TOML:
		return f.formatTOML(val)
	case format.YAML:
		return f.formatYAML(val)
	default:
		return nil, errors.NewUnsupportedOutputFormat(target.String())
	}
}

// childPath extends a "$.a[0]" style location used in error messages
func childPath(path, key string) string {
	return fmt.Sprintf("%s.%s", path, key)
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
