// Package student contains all HTTP handlers related to the Student
// resource: the presentation layer over the roster engine.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like the engine or
// the shared view-state. To inject dependencies we use a factory
// function that:
//  1. Accepts dependencies (engine, state, page size)
//  2. Returns a function with the exact signature the router needs
//
// Because the inner function "closes over" the outer parameters, it
// can access them even after the factory call has returned. Example:
//
//	router.HandleFunc("POST /api/students", student.Enroll(engine, state))
//	//                                      ^^^^^^^^^^^^^^^^^^^^^^^^^^^^
//	//                     Enroll(engine, state) is called ONCE at
//	//                     startup. It returns a handler func which is
//	//                     called on EVERY incoming request.
//
// Every handler follows the same shape: decode, lock the view-state,
// run exactly one engine operation to completion, fold its outcome
// into the view-state, unlock, respond.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/roster-api/internal/roster"
	"github.com/aanand-mishra/roster-api/internal/types"
	"github.com/aanand-mishra/roster-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// Enroll handles POST /api/students
// Admits the submitted draft as a new roster record.
//
// Request body (JSON):
//
//	{ "studentId": "S1", "name": "Ann", "email": "a@x.com",
//	  "phone": "1", "course": "CS" }
//
// Success response (201 Created):
//
//	{ "status": "ok", "message": "Student enrolled successfully" }
//
// Error responses:
//
//	400 Bad Request — empty body, malformed JSON, or a blank field
//	409 Conflict    — the studentId is already on the roster
//
// A failed enroll leaves the draft in the view-state untouched so the
// client can re-render it for correction.
// ─────────────────────────────────────────────────────────────────────────────
func Enroll(engine *roster.Engine, state *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("enrolling a student")

		var draft types.Student

		err := json.NewDecoder(r.Body).Decode(&draft)
		if errors.Is(err, io.EOF) {
			// io.EOF means the body was completely empty — nothing to decode.
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		state.mu.Lock()
		sess := state.session
		sess.Draft = draft
		out := engine.Enroll(sess)
		state.apply(out)
		state.mu.Unlock()

		if out.Err != nil {
			status := http.StatusBadRequest
			if errors.Is(out.Err, roster.ErrIDExists) {
				status = http.StatusConflict
			}
			response.WriteJSON(w, status, response.GeneralError(out.Err))
			return
		}

		slog.Info("student enrolled", slog.String("id", draft.StudentID))
		response.WriteJSON(w, http.StatusCreated, response.Success(out.Message))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
// Returns the filtered, paginated table view.
//
// Query parameters:
//
//	q    — filter text; providing a new value resets the page to 1
//	page — 1-based page number
//
// Both parameters are remembered in the view-state, so a plain
// GET /api/students re-renders the table exactly as last requested.
//
// Success response (200 OK):
//
//	{ "items": [...], "page": 1, "totalPages": 2, "totalCount": 7 }
//
// A page past the end yields an empty items list, never an error —
// totalPages can shrink underneath the client after a filter change
// or a delete.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(engine *roster.Engine, state *State, pageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing students")

		query := r.URL.Query()

		state.mu.Lock()
		if query.Has("q") {
			if q := query.Get("q"); q != state.filter {
				state.filter = q
				state.page = 1
			}
		}
		if p := query.Get("page"); p != "" {
			if n, err := strconv.Atoi(p); err == nil && n >= 1 {
				state.page = n
			}
		}
		view := roster.BuildView(engine.Store().List(), state.filter, state.page, pageSize)
		state.mu.Unlock()

		response.WriteJSON(w, http.StatusOK, view)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Search handles GET /api/students/{id}
// Looks up one student and, when found, loads the record into the
// draft and switches the session to Update mode — this endpoint IS the
// search box: a lookup whose point is the session it leaves behind.
//
// Success response (200 OK): the full view-state, including
// "Student loaded for update" and mode "update".
//
// Error responses:
//
//	400 Bad Request — blank id (after trimming)
//	404 Not Found   — no student with that id; the session drops back
//	                  to Enroll mode
//
// ─────────────────────────────────────────────────────────────────────────────
func Search(engine *roster.Engine, state *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("searching for a student", slog.String("id", id))

		state.mu.Lock()
		out := engine.SearchByID(state.session, id)
		state.apply(out)
		body := state.snapshot()
		state.mu.Unlock()

		if out.Err != nil {
			status := http.StatusBadRequest
			if errors.Is(out.Err, roster.ErrNotFound) {
				status = http.StatusNotFound
			}
			response.WriteJSON(w, status, response.GeneralError(out.Err))
			return
		}

		response.WriteJSON(w, http.StatusOK, body)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Select handles POST /api/students/{id}/select
// The row-click: loads the posted record into the draft and switches
// the session to Update mode. Converges on the same session shape as a
// successful Search.
//
// The body carries the clicked row. It is validated at the edge with
// go-playground/validator (all five fields required) because this is
// the one intent the engine accepts without running its own
// validation.
//
// Error responses:
//
//	400 Bad Request — empty/malformed body, a missing field, or a body
//	                  whose studentId does not match the path
//
// ─────────────────────────────────────────────────────────────────────────────
func Select(engine *roster.Engine, state *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("selecting a student row", slog.String("id", id))

		var record types.Student

		err := json.NewDecoder(r.Body).Decode(&record)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// validator.New().Struct(v) checks all validate:"..." tags on v.
		// It returns nil if everything is valid, or a ValidationErrors
		// (which implements the error interface) if any rule fails.
		if err := validator.New().Struct(record); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		if record.StudentID != id {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("studentId in body does not match URL")))
			return
		}

		state.mu.Lock()
		out := engine.SelectRow(state.session, record)
		state.apply(out)
		body := state.snapshot()
		state.mu.Unlock()

		response.WriteJSON(w, http.StatusOK, body)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces the fields of the record identified by the path id with the
// submitted draft. The path id — the id the record was loaded under —
// keys the replace; any studentId in the body is ignored, which is
// what makes the id write-once.
//
// Success response (200 OK):
//
//	{ "status": "ok", "message": "Student updated successfully" }
//
// and the session resets to a clean Enroll session.
//
// Error responses:
//
//	400 Bad Request — empty body, malformed JSON, or a blank field
//	                  (the session stays in Update mode for correction)
//	404 Not Found   — no record with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(engine *roster.Engine, state *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		var draft types.Student

		err := json.NewDecoder(r.Body).Decode(&draft)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		state.mu.Lock()
		sess := state.session
		sess.Draft = draft
		sess.SearchID = id
		out := engine.Update(sess)
		state.apply(out)
		state.mu.Unlock()

		if out.Err != nil {
			status := http.StatusBadRequest
			if errors.Is(out.Err, roster.ErrNotFound) {
				status = http.StatusNotFound
			}
			response.WriteJSON(w, status, response.GeneralError(out.Err))
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, response.Success(out.Message))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}?confirm=true
// Permanently removes a student record.
//
// The confirm=true query parameter is the confirmation gate: the
// engine performs no confirmation itself, so the request must state
// that the user already said yes. Without it the request is rejected
// and nothing is removed.
//
// Success response (200 OK):
//
//	{ "status": "ok", "message": "Student deleted successfully" }
//
// Deleting an id that is already gone still reports success — the
// roster is in the requested state either way. If the deleted id is
// the one loaded in the draft, the session resets to Enroll mode.
// ─────────────────────────────────────────────────────────────────────────────
func Delete(engine *roster.Engine, state *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		if r.URL.Query().Get("confirm") != "true" {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("deletion requires confirmation: pass confirm=true")))
			return
		}

		state.mu.Lock()
		out := engine.DeleteByID(state.session, id)
		state.apply(out)
		state.mu.Unlock()

		if out.Err != nil {
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(out.Err))
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, response.Success(out.Message))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetSession handles GET /api/session
// Returns everything the client renders around the table: the current
// draft, the search-id, the mode (which also says whether the
// studentId input is editable), the filter, the page, and the last
// operation's message or error.
// ─────────────────────────────────────────────────────────────────────────────
func GetSession(state *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state.mu.Lock()
		body := state.snapshot()
		state.mu.Unlock()

		response.WriteJSON(w, http.StatusOK, body)
	}
}
