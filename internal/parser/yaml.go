package parser

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"math/big"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jty/internal/errors"
	"github.com/mcncl/jty/internal/models"
)

// YAML resolves integers too large for 64 bits as floats; keep them whole
var yamlDecimalInteger = regexp.MustCompile(`^[-+]?[0-9]+$`)

// YAML resolves plain floats beyond float64 range as strings; read them as numbers
var yamlFloat = regexp.MustCompile(`^[-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?$`)

// ParseYAML decodes a single YAML document. An empty stream is null. Aliases
// are resolved and "<<" merge keys expanded, so anchors do not survive.
func ParseYAML(data []byte) (models.Value, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := decoder.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.NewNull(), nil
		}
		return models.Value{}, errors.NewFailedToReadYAMLFile(err)
	}

	var extra yaml.Node
	if err := decoder.Decode(&extra); !stderrors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("line %d: multiple documents found, only one is allowed", extra.Line)
		}
		return models.Value{}, errors.NewFailedToReadYAMLFile(err)
	}

	val, err := convertYAML(&doc, 0)
	if err != nil {
		return models.Value{}, errors.NewFailedToReadYAMLFile(err)
	}
	return val, nil
}

func convertYAML(node *yaml.Node, depth int) (models.Value, error) {
	if depth > maxDepth {
		return models.Value{}, fmt.Errorf("line %d: exceeded maximum nesting depth of %d", node.Line, maxDepth)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return models.NewNull(), nil
		}
		return convertYAML(node.Content[0], depth+1)
	case yaml.AliasNode:
		if node.Alias == nil {
			return models.Value{}, fmt.Errorf("line %d, column %d: unknown alias %q", node.Line, node.Column, node.Value)
		}
		return convertYAML(node.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]models.Value, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := convertYAML(child, depth+1)
			if err != nil {
				return models.Value{}, err
			}
			items = append(items, val)
		}
		return models.NewSequence(items...), nil
	case yaml.MappingNode:
		return convertYAMLMapping(node, depth)
	case yaml.ScalarNode:
		return convertYAMLScalar(node)
	default:
		return models.Value{}, fmt.Errorf("line %d, column %d: unsupported node kind %d", node.Line, node.Column, node.Kind)
	}
}

func convertYAMLMapping(node *yaml.Node, depth int) (models.Value, error) {
	mapping := models.NewMapping()
	explicit := make(map[string]struct{}, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := resolveYAMLAlias(node.Content[i])
		valueNode := node.Content[i+1]

		if keyNode.Kind != yaml.ScalarNode {
			return models.Value{}, fmt.Errorf("line %d, column %d: mapping keys must be scalars", keyNode.Line, keyNode.Column)
		}

		if keyNode.ShortTag() == "!!merge" {
			if err := mergeYAML(mapping, valueNode, depth); err != nil {
				return models.Value{}, err
			}
			continue
		}

		key := keyNode.Value
		if _, dup := explicit[key]; dup {
			return models.Value{}, fmt.Errorf("line %d, column %d: mapping key %q already defined", keyNode.Line, keyNode.Column, key)
		}
		explicit[key] = struct{}{}

		val, err := convertYAML(valueNode, depth+1)
		if err != nil {
			return models.Value{}, err
		}
		mapping.Set(key, val)
	}

	return models.NewMappingValue(mapping), nil
}

// mergeYAML copies entries from a "<<" source that are not already present.
// Keys written later in the mapping still override merged ones.
func mergeYAML(into *models.Mapping, source *yaml.Node, depth int) error {
	source = resolveYAMLAlias(source)

	var sources []*yaml.Node
	switch source.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{source}
	case yaml.SequenceNode:
		for _, child := range source.Content {
			child = resolveYAMLAlias(child)
			if child.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d, column %d: merge sequence may only contain mappings", child.Line, child.Column)
			}
			sources = append(sources, child)
		}
	default:
		return fmt.Errorf("line %d, column %d: merge value must be a mapping or a sequence of mappings", source.Line, source.Column)
	}

	for _, src := range sources {
		val, err := convertYAML(src, depth+1)
		if err != nil {
			return err
		}
		for key, entry := range val.Mapping().All() {
			if _, exists := into.Get(key); !exists {
				into.Set(key, entry)
			}
		}
	}
	return nil
}

func resolveYAMLAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func convertYAMLScalar(node *yaml.Node) (models.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return models.NewNull(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return models.Value{}, err
		}
		return models.NewBool(b), nil
	case "!!int":
		var raw any
		if err := node.Decode(&raw); err != nil {
			if n, perr := models.ParseNumber(node.Value); perr == nil && n.IsInteger() {
				return models.NewNumber(n), nil
			}
			return models.Value{}, err
		}
		switch i := raw.(type) {
		case int:
			return models.NewNumber(models.IntNumber(int64(i))), nil
		case int64:
			return models.NewNumber(models.IntNumber(i)), nil
		case uint64:
			return models.NewNumber(models.UintNumber(i)), nil
		case float64:
			return models.NewNumber(models.FloatNumber(i)), nil
		default:
			return models.Value{}, fmt.Errorf("line %d, column %d: invalid integer %q", node.Line, node.Column, node.Value)
		}
	case "!!float":
		if node.Style&yaml.TaggedStyle == 0 && yamlDecimalInteger.MatchString(node.Value) {
			n, err := models.ParseNumber(node.Value)
			if err == nil {
				return models.NewNumber(n), nil
			}
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return models.Value{}, err
		}
		return models.NewNumber(models.FloatNumber(f)), nil
	case "!!str":
		if node.Style == 0 && yamlFloat.MatchString(node.Value) {
			return yamlFloatLiteral(node)
		}
		return models.NewString(node.Value), nil
	default:
		// !!timestamp, !!binary and application tags keep their text
		return models.NewString(node.Value), nil
	}
}

// yamlFloatLiteral keeps an out-of-range plain float as a number. YAML spellings
// such as "+1e400" or ".5e400" are normalized to a JSON literal.
func yamlFloatLiteral(node *yaml.Node) (models.Value, error) {
	if json.Valid([]byte(node.Value)) {
		if n, err := models.ParseNumber(node.Value); err == nil {
			return models.NewNumber(n), nil
		}
	}
	f, _, err := big.ParseFloat(node.Value, 10, 64, big.ToNearestEven)
	if err != nil {
		return models.Value{}, fmt.Errorf("line %d, column %d: invalid float %q", node.Line, node.Column, node.Value)
	}
	n, err := models.ParseNumber(f.Text('e', -1))
	if err != nil {
		return models.Value{}, fmt.Errorf("line %d, column %d: invalid float %q", node.Line, node.Column, node.Value)
	}
	return models.NewNumber(n), nil
}
