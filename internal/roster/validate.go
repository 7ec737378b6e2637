package roster

import (
	"strings"

	"github.com/aanand-mishra/roster-api/internal/types"
)

// Validate checks a candidate record for completeness: every one of
// the five fields must be non-empty after trimming whitespace. The
// fields are checked in a fixed order — studentId, name, email, phone,
// course — and the first blank one is reported as a *MissingFieldError.
//
// There is deliberately no format checking beyond non-emptiness: the
// roster accepts any free-form text for email, phone and course.
func Validate(candidate types.Student) error {
	fields := []struct {
		name  string
		value string
	}{
		{"studentId", candidate.StudentID},
		{"name", candidate.Name},
		{"email", candidate.Email},
		{"phone", candidate.Phone},
		{"course", candidate.Course},
	}

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &MissingFieldError{Field: f.name}
		}
	}

	return nil
}
