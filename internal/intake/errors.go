package intake

// ErrorType is the closed set of intake rejection classes.
type ErrorType string

const (
	ErrFileTooLarge      ErrorType = "FILE_TOO_LARGE"
	ErrUnsupportedFormat ErrorType = "UNSUPPORTED_FORMAT"
	ErrUnknown           ErrorType = "UNKNOWN"
)

// Rejection reason codes reported by the browser-side drop filter.
const (
	CodeFileTooLarge    = "file-too-large"
	CodeFileInvalidType = "file-invalid-type"
)

// ValidationError describes why a file was refused. Every intake error
// is terminal for that attempt: the user has to pick a different file,
// so Retryable is always false.
type ValidationError struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// One fixed user-facing message per error type.
var messages = map[ErrorType]string{
	ErrFileTooLarge:      "The file is too large. Please choose an image under the size limit.",
	ErrUnsupportedFormat: "Unsupported file format. Please upload a JPEG, PNG or WebP image.",
	ErrUnknown:           "The file could not be accepted. Please try a different image.",
}

// NewValidationError builds the fixed error for a taxonomy entry.
func NewValidationError(t ErrorType) *ValidationError {
	return &ValidationError{
		Type:      t,
		Message:   messages[t],
		Retryable: false,
	}
}

// errorFromCode maps a drop-filter reason code to a ValidationError.
func errorFromCode(code string) *ValidationError {
	switch code {
	case CodeFileTooLarge:
		return NewValidationError(ErrFileTooLarge)
	case CodeFileInvalidType:
		return NewValidationError(ErrUnsupportedFormat)
	default:
		return NewValidationError(ErrUnknown)
	}
}
