package errors

import (
	"errors"
	"fmt"
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeUnsupportedFileExtension         ErrorType = "unsupported_file_extension"
	ErrorTypeUnsupportedOutputFormat          ErrorType = "unsupported_output_format"
	ErrorTypeFailedToWriteOutputFile          ErrorType = "failed_to_write_output_file"
	ErrorTypeFileDoesExist                    ErrorType = "file_does_exist"
	ErrorTypeFileDoesNotExist                 ErrorType = "file_does_not_exist"
	ErrorTypeFileExtensionMatchesOutputFormat ErrorType = "file_extension_matches_output_format"
	ErrorTypeFailedToReadJSONFile             ErrorType = "failed_to_read_json_file"
	ErrorTypeFailedToReadTOMLFile             ErrorType = "failed_to_read_toml_file"
	ErrorTypeFailedToReadYAMLFile             ErrorType = "failed_to_read_yaml_file"
	ErrorTypeFailedToReadInputFile            ErrorType = "failed_to_read_input_file"
	ErrorTypeFailedToSerializeOutput          ErrorType = "failed_to_serialize_output"
	ErrorTypeUnsupportedTOMLRoot              ErrorType = "unsupported_toml_root"
)

// Sentinels usable as errors.Is targets; matching is by type only
var (
	ErrUnsupportedFileExtension         = &AppError{Type: ErrorTypeUnsupportedFileExtension, Message: "unsupported file extension"}
	ErrUnsupportedOutputFormat          = &AppError{Type: ErrorTypeUnsupportedOutputFormat, Message: "unsupported output format"}
	ErrFailedToWriteOutputFile          = &AppError{Type: ErrorTypeFailedToWriteOutputFile, Message: "failed to write the output file"}
	ErrFileDoesExist                    = &AppError{Type: ErrorTypeFileDoesExist, Message: "file does exist"}
	ErrFileDoesNotExist                 = &AppError{Type: ErrorTypeFileDoesNotExist, Message: "file does not exist"}
	ErrFileExtensionMatchesOutputFormat = &AppError{Type: ErrorTypeFileExtensionMatchesOutputFormat, Message: "file extension matches the output format"}
	ErrFailedToReadJSONFile             = &AppError{Type: ErrorTypeFailedToReadJSONFile, Message: "failed to read the JSON file"}
	ErrFailedToReadTOMLFile             = &AppError{Type: ErrorTypeFailedToReadTOMLFile, Message: "failed to read the TOML file"}
	ErrFailedToReadYAMLFile             = &AppError{Type: ErrorTypeFailedToReadYAMLFile, Message: "failed to read the YAML file"}
	ErrFailedToReadInputFile            = &AppError{Type: ErrorTypeFailedToReadInputFile, Message: "failed to read the input file"}
	ErrFailedToSerializeOutput          = &AppError{Type: ErrorTypeFailedToSerializeOutput, Message: "failed to serialize the output"}
	ErrUnsupportedTOMLRoot              = &AppError{Type: ErrorTypeUnsupportedTOMLRoot, Message: "TOML output requires a mapping at the document root"}
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// TypeOf returns the ErrorType of the first AppError in err's chain
func TypeOf(err error) (ErrorType, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type, true
	}
	return "", false
}

// NewUnsupportedFileExtension reports an input extension outside json/toml/yaml
func NewUnsupportedFileExtension(extension string) *AppError {
	msg := "unsupported file extension"
	if extension != "" {
		msg = fmt.Sprintf("unsupported file extension: %q", extension)
	}
	return &AppError{Type: ErrorTypeUnsupportedFileExtension, Message: msg}
}

// NewUnsupportedOutputFormat reports a requested format outside json/toml/yaml
func NewUnsupportedOutputFormat(name string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnsupportedOutputFormat,
		Message: fmt.Sprintf("unsupported output format: %q", name),
	}
}

// NewFailedToWriteOutputFile wraps an OS error raised while writing path
func NewFailedToWriteOutputFile(path string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFailedToWriteOutputFile,
		Message: fmt.Sprintf("failed to write the output file %s", path),
		Err:     err,
	}
}

// NewFileDoesExist reports an output path that is already taken
func NewFileDoesExist(path string) *AppError {
	return &AppError{
		Type:    ErrorTypeFileDoesExist,
		Message: fmt.Sprintf("file does exist: %s", path),
	}
}

// NewFileDoesNotExist reports a missing input path
func NewFileDoesNotExist(path string) *AppError {
	return &AppError{
		Type:    ErrorTypeFileDoesNotExist,
		Message: fmt.Sprintf("file does not exist: %s", path),
	}
}

// NewFileExtensionMatchesOutputFormat reports a conversion into the input's own format
func NewFileExtensionMatchesOutputFormat(extension string) *AppError {
	return &AppError{
		Type:    ErrorTypeFileExtensionMatchesOutputFormat,
		Message: fmt.Sprintf("file extension matches the output format: %s", extension),
	}
}

// NewFailedToReadJSONFile wraps a JSON syntax error
func NewFailedToReadJSONFile(err error) *AppError {
	return &AppError{Type: ErrorTypeFailedToReadJSONFile, Message: "failed to read the JSON file", Err: err}
}

// NewFailedToReadTOMLFile wraps a TOML syntax error
func NewFailedToReadTOMLFile(err error) *AppError {
	return &AppError{Type: ErrorTypeFailedToReadTOMLFile, Message: "failed to read the TOML file", Err: err}
}

// NewFailedToReadYAMLFile wraps a YAML syntax error
func NewFailedToReadYAMLFile(err error) *AppError {
	return &AppError{Type: ErrorTypeFailedToReadYAMLFile, Message: "failed to read the YAML file", Err: err}
}

// NewFailedToReadInputFile wraps an OS error raised while reading path
func NewFailedToReadInputFile(path string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFailedToReadInputFile,
		Message: fmt.Sprintf("failed to read the input file %s", path),
		Err:     err,
	}
}

// NewFailedToSerializeOutput reports a value the target format cannot hold
func NewFailedToSerializeOutput(format string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFailedToSerializeOutput,
		Message: fmt.Sprintf("failed to serialize the %s output", format),
		Err:     err,
	}
}

// NewUnsupportedTOMLRoot reports a non-mapping document root for TOML output
func NewUnsupportedTOMLRoot(kind string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnsupportedTOMLRoot,
		Message: fmt.Sprintf("TOML output requires a mapping at the document root, got %s", kind),
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fmt.Sprintf("Error: %v", err)
	}

	switch appErr.Type {
	case ErrorTypeUnsupportedFileExtension:
		return fmt.Sprintf("Error: %s. Input files must end in .json, .toml or .yaml.", appErr.Error())
	case ErrorTypeUnsupportedOutputFormat:
		return fmt.Sprintf("Error: %s. Choose one of --json, --toml or --yaml.", appErr.Error())
	case ErrorTypeFileDoesExist:
		return fmt.Sprintf("Error: %s. Remove or rename it first; jty never overwrites files.", appErr.Error())
	case ErrorTypeFileDoesNotExist:
		return fmt.Sprintf("Error: %s. Please check the file path.", appErr.Error())
	case ErrorTypeFileExtensionMatchesOutputFormat:
		return fmt.Sprintf("Error: %s. Pick a different output format.", appErr.Error())
	case ErrorTypeFailedToReadJSONFile, ErrorTypeFailedToReadTOMLFile, ErrorTypeFailedToReadYAMLFile:
		return fmt.Sprintf("Error: %s. Please check the file syntax.", appErr.Error())
	case ErrorTypeUnsupportedTOMLRoot:
		return fmt.Sprintf("Error: %s. Wrap the document in a mapping or choose another format.", appErr.Error())
	default:
		return fmt.Sprintf("Error: %s", appErr.Error())
	}
}
