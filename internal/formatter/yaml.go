package formatter

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jty/internal/errors"
	"github.com/mcncl/jty/internal/models"
)

func (f *Formatter) formatYAML(val models.Value) ([]byte, error) {
	node, err := yamlNode(val, rootPath)
	if err != nil {
		return nil, errors.NewFailedToSerializeOutput("YAML", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(f.opts.YAMLIndent)
	if err := encoder.Encode(node); err != nil {
		return nil, errors.NewFailedToSerializeOutput("YAML", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.NewFailedToSerializeOutput("YAML", err)
	}
	return buf.Bytes(), nil
}

// yamlNode builds a block-style node tree. Strings carry the !!str tag so the
// encoder quotes any that would read back as another type.
func yamlNode(val models.Value, path string) (*yaml.Node, error) {
	switch val.Kind() {
	case models.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case models.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(val.AsBool())}, nil
	case models.KindNumber:
		// untagged: every literal Number produces resolves as int or float
		return &yaml.Node{Kind: yaml.ScalarNode, Value: yamlNumber(val.AsNumber())}, nil
	case models.KindString:
		node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val.AsString()}
		if overflowsFloat64(node.Value) {
			// the encoder leaves these plain, and they read back as numbers
			node.Style = yaml.DoubleQuotedStyle
		}
		return node, nil
	case models.KindSequence:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, item := range val.Items() {
			child, err := yamlNode(item, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case models.KindMapping:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for key, item := range val.Mapping().All() {
			child, err := yamlNode(item, childPath(path, key))
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child,
			)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("%s: unknown value kind %s", path, val.Kind())
	}
}

func yamlNumber(n models.Number) string {
	switch n.String() {
	case "inf":
		return ".inf"
	case "-inf":
		return "-.inf"
	case "nan":
		return ".nan"
	default:
		return n.String()
	}
}

func overflowsFloat64(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return stderrors.Is(err, strconv.ErrRange)
}
