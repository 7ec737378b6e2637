package student

import (
	"sync"

	"github.com/aanand-mishra/roster-api/internal/roster"
)

// State is the presentation layer's view-state: the engine session
// (draft, search-id, mode) plus the table filter, the current page,
// and the last operation's outcome message. None of this is roster
// data — the Store owns the records; State owns only what the form
// and table around them display.
//
// The roster models a single user acting one event at a time, so there
// is exactly one State per process. The mutex serialises HTTP requests
// onto that model: each handler locks, runs its engine operation to
// completion, and unlocks, which also gives every read issued after a
// mutation a consistent picture.
type State struct {
	mu sync.Mutex

	session roster.Session
	filter  string
	page    int
	message string
	errText string
}

// NewState returns the initial view-state: a fresh Enroll session,
// no filter, page 1, no messages.
func NewState() *State {
	return &State{
		session: roster.NewSession(),
		page:    1,
	}
}

// apply folds an engine outcome into the view-state. Message and error
// are mutually exclusive and both replace whatever a prior operation
// left behind. Callers must hold mu.
func (s *State) apply(out roster.Outcome) {
	s.session = out.Session
	if out.Err != nil {
		s.message = ""
		s.errText = out.Err.Error()
		return
	}
	s.message = out.Message
	s.errText = ""
}

// snapshot renders the view-state for the client. Callers must hold mu.
func (s *State) snapshot() viewState {
	return viewState{
		Session: s.session,
		Filter:  s.filter,
		Page:    s.page,
		Message: s.message,
		Error:   s.errText,
	}
}

// viewState is the JSON shape of GET /api/session (and of the
// load-for-update responses): everything the original UI rendered
// around the table.
type viewState struct {
	roster.Session
	Filter  string `json:"filter"`
	Page    int    `json:"page"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
