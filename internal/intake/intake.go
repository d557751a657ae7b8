// Package intake gates which dropped or uploaded files reach the
// detection pipeline. It applies a size/type policy and classifies
// rejections into a closed error taxonomy.
package intake

import "strings"

const (
	// DefaultMaxSize is the upload size limit in bytes (10 MiB).
	DefaultMaxSize int64 = 10 << 20
)

// DefaultAcceptedTypes lists the MIME types accepted by default.
var DefaultAcceptedTypes = []string{"image/jpeg", "image/png", "image/webp"}

// FileInfo identifies a candidate file at the drop boundary.
type FileInfo struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Rejection is a file the browser-side filter refused, with its reason codes.
type Rejection struct {
	File  FileInfo `json:"file"`
	Codes []string `json:"codes"`
}

// DropEvent carries the two disjoint outcomes of a drop or file selection.
type DropEvent struct {
	Accepted []FileInfo  `json:"accepted"`
	Rejected []Rejection `json:"rejected"`
}

// Options configure the validator. Zero values fall back to defaults.
type Options struct {
	MaxSize       int64
	AcceptedTypes []string
	Disabled      bool
}

// Validator decides whether a candidate file may proceed to analysis.
type Validator struct {
	maxSize       int64
	acceptedTypes []string
	disabled      bool
}

// NewValidator builds a Validator, applying defaults for unset options.
func NewValidator(opts Options) *Validator {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	types := opts.AcceptedTypes
	if len(types) == 0 {
		types = DefaultAcceptedTypes
	}
	accepted := make([]string, len(types))
	copy(accepted, types)

	return &Validator{
		maxSize:       maxSize,
		acceptedTypes: accepted,
		disabled:      opts.Disabled,
	}
}

// MaxSize returns the configured size limit in bytes.
func (v *Validator) MaxSize() int64 {
	return v.maxSize
}

// Handle processes one drop event. Exactly one of the callbacks fires,
// or neither:
//   - disabled validator: nothing fires,
//   - any accepted file: onAccept with the first one, the rest are dropped
//     (single-file intake, first wins),
//   - only rejected files: onReject with the error mapped from the first
//     rejection's reason code,
//   - empty event: nothing fires.
func (v *Validator) Handle(event DropEvent, onAccept func(FileInfo), onReject func(*ValidationError)) {
	if v.disabled {
		return
	}

	if len(event.Accepted) > 0 {
		if onAccept != nil {
			onAccept(event.Accepted[0])
		}
		return
	}

	if len(event.Rejected) > 0 {
		if onReject != nil {
			onReject(rejectionError(event.Rejected[0]))
		}
		return
	}
}

// Check applies the same size/type policy to a server-side upload.
// It returns nil when the file passes. The Disabled flag is a front-end
// concern and does not apply here.
func (v *Validator) Check(name string, size int64, contentType string) *ValidationError {
	_ = name
	if size > v.maxSize {
		return NewValidationError(ErrFileTooLarge)
	}
	if !v.typeAccepted(contentType) {
		return NewValidationError(ErrUnsupportedFormat)
	}
	return nil
}

// typeAccepted matches a content type against the accepted patterns.
// Patterns are exact MIME types or wildcards like "image/*".
func (v *Validator) typeAccepted(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	for _, pattern := range v.acceptedTypes {
		p := strings.ToLower(pattern)
		if p == ct {
			return true
		}
		if strings.HasSuffix(p, "/*") && strings.HasPrefix(ct, strings.TrimSuffix(p, "*")) {
			return true
		}
	}
	return false
}

// rejectionError maps a rejection to its ValidationError using the first
// reason code. A rejection with no codes at all is unknown.
func rejectionError(rej Rejection) *ValidationError {
	if len(rej.Codes) == 0 {
		return NewValidationError(ErrUnknown)
	}
	return errorFromCode(rej.Codes[0])
}
