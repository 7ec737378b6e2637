// Package roster implements the roster management engine: the pure
// operations that keep the student roster consistent (unique ids,
// required fields), resolve search/update/delete requests, and derive
// filtered, paginated views.
//
// The engine owns no view-state. The caller holds a Session value and
// passes it into every operation; the operation returns an Outcome
// carrying the replacement Session plus either a success message or an
// error — never both. There is no ambient mutable state beyond the
// Store itself.
package roster

import (
	"errors"
	"strings"

	"github.com/aanand-mishra/roster-api/internal/types"
)

// Mode says what a submitted draft means: a new enrollment or an
// update of the record loaded into the form.
type Mode string

const (
	ModeEnroll Mode = "enroll"
	ModeUpdate Mode = "update"
)

// Session is the transient view-state around the form: the current
// draft, the id the draft was loaded under (blank in Enroll mode), and
// the mode. It is passed by value and replaced wholesale by each
// operation's Outcome.
//
// Invariant: in Update mode, SearchID names a record that exists in
// the Store, and it — not the draft's id field — is the key any update
// is applied under. Every path that would break this drops the session
// back to Enroll mode first.
type Session struct {
	Draft    types.Student `json:"draft"`
	SearchID string        `json:"searchId"`
	Mode     Mode          `json:"mode"`
}

// NewSession returns the initial view-state: empty draft, Enroll mode.
func NewSession() Session {
	return Session{Mode: ModeEnroll}
}

// Outcome is the discriminated result of an engine operation. Exactly
// one of Message and Err is set.
type Outcome struct {
	Session Session
	Message string
	Err     error
}

// Engine orchestrates enroll, search, update and delete against the
// Store. All operations run to completion synchronously; the Engine
// itself holds nothing but the Store reference.
type Engine struct {
	store *Store
}

// NewEngine returns an Engine over the given store.
func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

// Store exposes the underlying record store for read-only consumers
// such as BuildView.
func (e *Engine) Store() *Store {
	return e.store
}

// Enroll admits sess.Draft as a new record. The draft's id is trimmed
// before the uniqueness check; the remaining fields are stored as
// entered. On any failure the draft is left untouched so the user can
// correct it; on success the draft resets to empty and the mode stays
// Enroll.
func (e *Engine) Enroll(sess Session) Outcome {
	draft := sess.Draft
	draft.StudentID = strings.TrimSpace(draft.StudentID)

	if err := Validate(draft); err != nil {
		return Outcome{Session: sess, Err: err}
	}

	if err := e.store.Insert(draft); err != nil {
		// The store's duplicate signal stays internal; the user sees
		// the roster-level meaning.
		if errors.Is(err, errDuplicateID) {
			err = ErrIDExists
		}
		return Outcome{Session: sess, Err: err}
	}

	sess.Draft = types.Student{}
	sess.Mode = ModeEnroll
	return Outcome{Session: sess, Message: "Student enrolled successfully"}
}

// SearchByID looks up id and, when found, loads that record into the
// draft and switches the session to Update mode. A miss drops the
// session back to Enroll mode so a stale Update draft can never point
// at an id that failed to resolve.
func (e *Engine) SearchByID(sess Session, id string) Outcome {
	id = strings.TrimSpace(id)
	if id == "" {
		return Outcome{Session: sess, Err: ErrEmptyQuery}
	}

	record, ok := e.store.FindByID(id)
	if !ok {
		sess.Mode = ModeEnroll
		return Outcome{Session: sess, Err: ErrNotFound}
	}

	sess.Draft = record
	sess.SearchID = id
	sess.Mode = ModeUpdate
	return Outcome{Session: sess, Message: "Student loaded for update"}
}

// SelectRow loads the given record into the draft, exactly as a
// successful SearchByID for its id would — the two paths converge on
// the same Update-mode session.
func (e *Engine) SelectRow(sess Session, record types.Student) Outcome {
	sess.Draft = record
	sess.SearchID = record.StudentID
	sess.Mode = ModeUpdate
	return Outcome{Session: sess, Message: "Student loaded for update"}
}

// Update replaces the record the session was loaded under with the
// current draft. The replace is keyed by the id captured at load time
// (sess.SearchID), never by the draft's id field, so the id is
// write-once even against a tampered draft. On validation failure the
// session is returned unchanged, still in Update mode.
func (e *Engine) Update(sess Session) Outcome {
	key := sess.SearchID
	if key == "" {
		key = strings.TrimSpace(sess.Draft.StudentID)
	}

	draft := sess.Draft
	draft.StudentID = key

	if err := Validate(draft); err != nil {
		return Outcome{Session: sess, Err: err}
	}

	if err := e.store.Replace(draft); err != nil {
		if errors.Is(err, errNoRecord) {
			// Unexpected: Update mode implies the key exists. Reset to a
			// clean Enroll session rather than leave the form pointing at
			// a missing id.
			return Outcome{Session: NewSession(), Err: ErrNotFound}
		}
		return Outcome{Session: sess, Err: err}
	}

	return Outcome{Session: NewSession(), Message: "Student updated successfully"}
}

// DeleteByID removes the record with the given id. The caller is
// responsible for the yes/no confirmation gate before invoking this.
// Deleting an id that is already gone reports success — the roster is
// in the requested state either way. If the draft currently holds the
// deleted id, the session resets to a clean Enroll session so the form
// cannot keep editing a removed record.
func (e *Engine) DeleteByID(sess Session, id string) Outcome {
	if err := e.store.RemoveByID(id); err != nil && !errors.Is(err, errNoRecord) {
		return Outcome{Session: sess, Err: err}
	}

	if sess.Draft.StudentID == id {
		sess = NewSession()
	}
	return Outcome{Session: sess, Message: "Student deleted successfully"}
}
