package parser

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/mcncl/jty/internal/errors"
	"github.com/mcncl/jty/internal/models"
)

// ParseJSON decodes exactly one JSON value. Object keys keep document order;
// a repeated key keeps its first position and its last value. Input must be
// valid UTF-8.
func ParseJSON(data []byte) (models.Value, error) {
	if offset := invalidUTF8Offset(data); offset >= 0 {
		line, column := position(data, int64(offset))
		return models.Value{}, errors.NewFailedToReadJSONFile(fmt.Errorf("line %d, column %d: invalid UTF-8", line, column))
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // numbers stay literals, see models.Number

	root, err := decodeJSONValue(decoder, 0)
	if err != nil {
		return models.Value{}, errors.NewFailedToReadJSONFile(jsonSyntaxError(data, decoder, err))
	}

	// Anything other than whitespace after the root value is rejected
	end := decoder.InputOffset()
	if _, err := decoder.Token(); !stderrors.Is(err, io.EOF) {
		if err == nil {
			line, column := position(data, skipSpace(data, end))
			err = fmt.Errorf("line %d, column %d: trailing data after the top-level value", line, column)
		} else {
			err = jsonSyntaxError(data, decoder, err)
		}
		return models.Value{}, errors.NewFailedToReadJSONFile(err)
	}

	return root, nil
}

func decodeJSONValue(decoder *json.Decoder, depth int) (models.Value, error) {
	if depth > maxDepth {
		return models.Value{}, fmt.Errorf("exceeded maximum nesting depth of %d", maxDepth)
	}

	tok, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Value{}, io.ErrUnexpectedEOF
		}
		return models.Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(decoder, depth)
		case '[':
			return decodeJSONArray(decoder, depth)
		default:
			return models.Value{}, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case string:
		return models.NewString(t), nil
	case json.Number:
		n, err := models.ParseNumber(t.String())
		if err != nil {
			return models.Value{}, err
		}
		return models.NewNumber(n), nil
	case bool:
		return models.NewBool(t), nil
	case nil:
		return models.NewNull(), nil
	default:
		return models.Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeJSONObject(decoder *json.Decoder, depth int) (models.Value, error) {
	obj := models.NewMapping()
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return models.Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return models.Value{}, fmt.Errorf("object key must be a string, got %v", tok)
		}
		val, err := decodeJSONValue(decoder, depth+1)
		if err != nil {
			return models.Value{}, err
		}
		obj.Set(key, val)
	}
	if err := expectJSONDelim(decoder, '}'); err != nil {
		return models.Value{}, err
	}
	return models.NewMappingValue(obj), nil
}

func decodeJSONArray(decoder *json.Decoder, depth int) (models.Value, error) {
	items := []models.Value{}
	for decoder.More() {
		val, err := decodeJSONValue(decoder, depth+1)
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, val)
	}
	if err := expectJSONDelim(decoder, ']'); err != nil {
		return models.Value{}, err
	}
	return models.NewSequence(items...), nil
}

func expectJSONDelim(decoder *json.Decoder, want json.Delim) error {
	tok, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if tok != want {
		return fmt.Errorf("expected %q, got %v", rune(want), tok)
	}
	return nil
}

// jsonSyntaxError prefixes err with the line and column it occurred at
func jsonSyntaxError(data []byte, decoder *json.Decoder, err error) error {
	var syntaxError *json.SyntaxError
	switch {
	case stderrors.As(err, &syntaxError):
		offset := syntaxError.Offset - 1
		if offset < 0 {
			offset = 0
		}
		line, column := position(data, offset)
		return fmt.Errorf("line %d, column %d: %w", line, column, err)
	case stderrors.Is(err, io.ErrUnexpectedEOF):
		line, column := position(data, int64(len(data)))
		return fmt.Errorf("line %d, column %d: unexpected end of JSON input", line, column)
	default:
		line, column := position(data, decoder.InputOffset())
		return fmt.Errorf("line %d, column %d: %w", line, column, err)
	}
}

func skipSpace(data []byte, offset int64) int64 {
	for offset < int64(len(data)) {
		switch data[offset] {
		case ' ', '\t', '\r', '\n':
			offset++
		default:
			return offset
		}
	}
	return offset
}

// invalidUTF8Offset returns the byte offset of the first invalid UTF-8
// sequence, or -1. The decoder would otherwise substitute U+FFFD.
func invalidUTF8Offset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for offset := 0; offset < len(data); {
		r, size := utf8.DecodeRune(data[offset:])
		if r == utf8.RuneError && size == 1 {
			return offset
		}
		offset += size
	}
	return -1
}
