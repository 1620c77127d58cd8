package score

import (
	"errors"
	"fmt"
)

// DocumentErrorCode categorizes document validation failures.
type DocumentErrorCode string

const (
	// ErrCodeOverlap indicates two notes of a group overlap in time.
	ErrCodeOverlap DocumentErrorCode = "NOTE_OVERLAP"

	// ErrCodeDuration indicates a note with a non-positive duration.
	ErrCodeDuration DocumentErrorCode = "BAD_DURATION"

	// ErrCodeUnknownGroup indicates a reference to an unregistered group id.
	ErrCodeUnknownGroup DocumentErrorCode = "UNKNOWN_GROUP"

	// ErrCodeDuplicateGroup indicates two groups sharing one id.
	ErrCodeDuplicateGroup DocumentErrorCode = "DUPLICATE_GROUP"

	// ErrCodeParameter indicates an unknown parameter type.
	ErrCodeParameter DocumentErrorCode = "BAD_PARAMETER"

	// ErrCodeTempo indicates a non-positive tempo.
	ErrCodeTempo DocumentErrorCode = "BAD_TEMPO"
)

// DocumentError reports an invalid project document.
type DocumentError struct {
	Code    DocumentErrorCode
	Path    string // e.g. "groups[1].notes[3]"
	Message string
}

func (e *DocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsDocumentError reports whether err wraps a DocumentError with code.
func IsDocumentError(err error, code DocumentErrorCode) bool {
	var de *DocumentError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
