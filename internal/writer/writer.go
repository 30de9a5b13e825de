// Package writer serializes a models.Value next to its input file.
package writer

import (
	"os"

	"github.com/spf13/afero"

	"github.com/mcncl/jty/internal/errors"
	"github.com/mcncl/jty/internal/format"
	"github.com/mcncl/jty/internal/formatter"
	"github.com/mcncl/jty/internal/models"
)

// Writer creates output files; it never replaces an existing one
type Writer struct {
	fs        afero.Fs
	formatter *formatter.Formatter
}

// NewWriter creates a Writer over fs using opts for layout
func NewWriter(fs afero.Fs, opts formatter.Options) *Writer {
	return &Writer{
		fs:        fs,
		formatter: formatter.NewFormatter(opts),
	}
}

// OutputPath returns filePath with its extension replaced by output
func OutputPath(filePath string, output format.Format) string {
	return format.ReplaceExtension(filePath, output)
}

// CheckTarget rejects a conversion of filePath into the format it already has
func CheckTarget(filePath string, output format.Format) error {
	if ext := format.Extension(filePath); ext == output.String() {
		return errors.NewFileExtensionMatchesOutputFormat(ext)
	}
	return nil
}

// Write renders val as output and stores it at OutputPath(filePath, output).
// Checks run in order: extension differs from output, serialization
// succeeds, output path is free.
func (w *Writer) Write(filePath string, output format.Format, val models.Value) error {
	if err := CheckTarget(filePath, output); err != nil {
		return err
	}

	data, err := w.formatter.Format(output, val)
	if err != nil {
		return err
	}

	outputPath := OutputPath(filePath, output)
	exists, err := afero.Exists(w.fs, outputPath)
	if err != nil {
		return errors.NewFailedToWriteOutputFile(outputPath, err)
	}
	if exists {
		return errors.NewFileDoesExist(outputPath)
	}

	return w.create(outputPath, data)
}

// create writes data to a new file. O_EXCL turns a file appearing after the
// existence check into FileDoesExist instead of an overwrite.
func (w *Writer) create(path string, data []byte) error {
	file, err := w.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return errors.NewFileDoesExist(path)
		}
		return errors.NewFailedToWriteOutputFile(path, err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = w.fs.Remove(path)
		return errors.NewFailedToWriteOutputFile(path, err)
	}
	if err := file.Close(); err != nil {
		_ = w.fs.Remove(path)
		return errors.NewFailedToWriteOutputFile(path, err)
	}
	return nil
}
