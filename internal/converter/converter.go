// Package converter ties the reader and writer into a single conversion.
package converter

import (
	"github.com/spf13/afero"

	"github.com/mcncl/jty/internal/errors"
	"github.com/mcncl/jty/internal/format"
	"github.com/mcncl/jty/internal/formatter"
	"github.com/mcncl/jty/internal/reader"
	"github.com/mcncl/jty/internal/writer"
)

// Options tunes a Converter
type Options struct {
	Formatting formatter.Options
	// RenameKey, when set, is applied to every mapping key before writing
	RenameKey func(string) string
}

// DefaultOptions keeps keys as they are and uses the default layout
func DefaultOptions() Options {
	return Options{Formatting: formatter.DefaultOptions()}
}

// Converter converts one file per call and keeps no state between calls,
// so a single instance may be shared across goroutines.
type Converter struct {
	reader    *reader.Reader
	writer    *writer.Writer
	renameKey func(string) string
}

// NewConverter creates a Converter working on fs
func NewConverter(fs afero.Fs, opts Options) *Converter {
	return &Converter{
		reader:    reader.NewReader(fs),
		writer:    writer.NewWriter(fs, opts.Formatting),
		renameKey: opts.RenameKey,
	}
}

// Convert reads filePath and writes it next to itself in the output format.
// The first error is returned unchanged. A conversion into the input's own
// format is refused before the content is parsed.
func (c *Converter) Convert(filePath string, output format.Format) error {
	if _, err := c.reader.Detect(filePath); err != nil {
		return err
	}
	if err := writer.CheckTarget(filePath, output); err != nil {
		return err
	}

	val, err := c.reader.Read(filePath)
	if err != nil {
		return err
	}

	if c.renameKey != nil {
		val = val.RenameKeys(c.renameKey)
	}

	return c.writer.Write(filePath, output, val)
}

// ConvertTo is Convert with the output format given by name
func (c *Converter) ConvertTo(filePath, formatName string) error {
	output, ok := format.Parse(formatName)
	if !ok {
		return errors.NewUnsupportedOutputFormat(formatName)
	}
	return c.Convert(filePath, output)
}
