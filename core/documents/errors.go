package documents

import (
	"errors"
	"fmt"
)

// ErrInvalidDocument is matched by every validation failure.
var ErrInvalidDocument = errors.New("invalid document")

// ValidationError reports the first field of a record that failed validation.
type ValidationError struct {
	Doc     DocType
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: field %s: %s", e.Doc, e.Field, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Doc, e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDocument
}

func invalid(doc DocType, field, format string, args ...any) *ValidationError {
	return &ValidationError{Doc: doc, Field: field, Message: fmt.Sprintf(format, args...)}
}
