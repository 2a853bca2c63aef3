package file

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation references an unknown file record
var ErrNotFound = errors.New("file record not found")

// ValidationError covers empty/oversized uploads, disallowed categories and
// generated-filename collisions at record-creation time. The collision case
// is the one retryable failure in the pipeline: regenerate the filename and
// try again.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Reason)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
