// Package naming renames mapping keys to a case convention.
package naming

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Case is a key naming convention
type Case string

const (
	CaseNone           Case = ""
	CaseSnake          Case = "snake"
	CaseScreamingSnake Case = "screaming_snake"
	CaseCamel          Case = "camel"
	CaseLowerCamel     Case = "lower_camel"
	CaseKebab          Case = "kebab"
)

// Cases lists every convention accepted by ParseCase
var Cases = []Case{CaseNone, CaseSnake, CaseScreamingSnake, CaseCamel, CaseLowerCamel, CaseKebab}

// ParseCase validates a case name. "none" is accepted as CaseNone and
// dashes are treated as underscores, so "lower-camel" works too.
func ParseCase(name string) (Case, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if normalized == "none" {
		return CaseNone, nil
	}
	for _, c := range Cases {
		if string(c) == normalized {
			return c, nil
		}
	}
	return CaseNone, fmt.Errorf("unknown key case %q", name)
}

// Renamer returns the key rename function for c, or nil for CaseNone
func (c Case) Renamer() func(string) string {
	switch c {
	case CaseSnake:
		return strcase.ToSnake
	case CaseScreamingSnake:
		return strcase.ToScreamingSnake
	case CaseCamel:
		return strcase.ToCamel
	case CaseLowerCamel:
		return strcase.ToLowerCamel
	case CaseKebab:
		return strcase.ToKebab
	default:
		return nil
	}
}
