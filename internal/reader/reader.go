// Package reader loads an input document from disk into a models.Value.
package reader

import (
	"github.com/spf13/afero"

	"github.com/mcncl/jty/internal/errors"
	"github.com/mcncl/jty/internal/format"
	"github.com/mcncl/jty/internal/models"
	"github.com/mcncl/jty/internal/parser"
)

// Reader reads JSON, TOML and YAML files from a filesystem
type Reader struct {
	fs afero.Fs
}

// NewReader creates a Reader over fs
func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// Detect checks that filePath exists and returns the format named by its
// extension
func (r *Reader) Detect(filePath string) (format.Format, error) {
	exists, err := afero.Exists(r.fs, filePath)
	if err != nil {
		return 0, errors.NewFailedToReadInputFile(filePath, err)
	}
	if !exists {
		return 0, errors.NewFileDoesNotExist(filePath)
	}

	inputFormat, ok := format.FromPath(filePath)
	if !ok {
		return 0, errors.NewUnsupportedFileExtension(format.Extension(filePath))
	}
	return inputFormat, nil
}

// Read detects the format of filePath and decodes the whole file.
// The file is only read.
func (r *Reader) Read(filePath string) (models.Value, error) {
	inputFormat, err := r.Detect(filePath)
	if err != nil {
		return models.Value{}, err
	}

	data, err := afero.ReadFile(r.fs, filePath)
	if err != nil {
		return models.Value{}, errors.NewFailedToReadInputFile(filePath, err)
	}

	return parser.Parse(inputFormat, data)
}
