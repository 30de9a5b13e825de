// Package format defines the closed set of document formats jty understands
// and the file-extension rules used to detect and substitute them.
package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is one of the supported serialization formats.
// The zero value is not a valid format.
type Format int

const (
	JSON Format = iota + 1
	TOML
	YAML
)

// All lists the supported formats in a stable order
var All = []Format{JSON, TOML, YAML}

// String returns the canonical name, which is also the file extension
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Parse maps a name to a Format. Matching is exact and case-sensitive.
func Parse(name string) (Format, bool) {
	for _, f := range All {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}

// Extension returns the extension of filePath without the leading dot.
// A dot-file such as ".json" has no extension.
func Extension(filePath string) string {
	base := filepath.Base(filePath)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}

// FromPath detects the format of filePath from its extension
func FromPath(filePath string) (Format, bool) {
	return Parse(Extension(filePath))
}

// ReplaceExtension swaps the extension of filePath for f, keeping the
// directory and base name. A path without an extension gains one.
func ReplaceExtension(filePath string, f Format) string {
	if ext := Extension(filePath); ext != "" {
		filePath = strings.TrimSuffix(filePath, "."+ext)
	}
	return filePath + "." + f.String()
}
