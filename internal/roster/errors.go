package roster

import "errors"

// User-facing errors returned by Engine operations. Every error here
// is recoverable: the presentation layer shows the message and the
// process carries on. The message strings double as the display text,
// so they are written for the user, not for a log line.
var (
	// ErrIDExists — enroll attempted with a studentId already on the roster.
	ErrIDExists = errors.New("Student ID already exists")

	// ErrEmptyQuery — search attempted with a blank id.
	ErrEmptyQuery = errors.New("Please enter Student ID")

	// ErrNotFound — search or update targeted an id absent from the roster.
	ErrNotFound = errors.New("Student not found")
)

// Store-internal signals. The Engine translates these into the
// user-facing errors above; they must never cross the Engine boundary.
var (
	errDuplicateID = errors.New("roster: duplicate student id")
	errNoRecord    = errors.New("roster: no such student id")
)

// MissingFieldError reports the first required field found blank
// (after trimming) during validation.
type MissingFieldError struct {
	// Field is the wire name of the blank field, e.g. "studentId".
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " is required"
}
