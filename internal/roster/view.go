package roster

import (
	"strings"

	"github.com/aanand-mishra/roster-api/internal/types"
)

// View is a filtered, paginated projection of the roster for display.
type View struct {
	Items      []types.Student `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	TotalCount int             `json:"totalCount"`
}

// BuildView derives the page of records to display. A record matches
// when any of its five fields contains filterText as a
// case-insensitive substring; an empty filterText matches everything.
// The match set is computed fresh from the full roster on every call.
//
// TotalPages is max(1, ceil(matches/pageSize)) so a pager always has
// at least one page to show. A page beyond TotalPages (which can
// happen after a filter change or a delete shrinks the match set)
// yields an empty Items list rather than an error; page values below 1
// are clamped to 1.
func BuildView(records []types.Student, filterText string, page, pageSize int) View {
	matches := records
	if filterText != "" {
		needle := strings.ToLower(filterText)
		matches = make([]types.Student, 0, len(records))
		for _, st := range records {
			if matchesFilter(st, needle) {
				matches = append(matches, st)
			}
		}
	}

	totalPages := (len(matches) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(matches) {
		start = len(matches)
	}
	if end > len(matches) {
		end = len(matches)
	}

	return View{
		Items:      matches[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalCount: len(matches),
	}
}

// matchesFilter reports whether any field of st contains needle.
// needle must already be lower-cased.
func matchesFilter(st types.Student, needle string) bool {
	for _, v := range []string{st.StudentID, st.Name, st.Email, st.Phone, st.Course} {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
