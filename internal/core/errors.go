package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by operations that need the referenced document
// to produce a result (conversion, printing). Pure flag mutations on an
// unknown id (trash, restore, status, purge) are silent no-ops instead.
var ErrNotFound = errors.New("document not found")

// ValidationError reports why a document was rejected before any state
// mutation. Row is the 1-indexed line item position, or 0 for a
// document-level failure.
type ValidationError struct {
	Row     int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("item %d: %s", e.Row, e.Message)
	}
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
