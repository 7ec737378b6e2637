package student

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/roster-api/internal/roster"
	"github.com/aanand-mishra/roster-api/internal/types"
	"github.com/aanand-mishra/roster-api/internal/utils/response"
)

// memorySnaps satisfies storage.Snapshotter without touching disk.
type memorySnaps struct {
	snapshot []types.Student
}

func (m *memorySnaps) Load() ([]types.Student, error) {
	out := make([]types.Student, len(m.snapshot))
	copy(out, m.snapshot)
	return out, nil
}

func (m *memorySnaps) Save(students []types.Student) error {
	m.snapshot = students
	return nil
}

// newTestRouter wires the full route table over an empty in-memory
// roster, mirroring main().
func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := roster.OpenStore(&memorySnaps{}, log)
	require.NoError(t, err)

	engine := roster.NewEngine(store)
	state := NewState()

	router := http.NewServeMux()
	router.HandleFunc("POST /api/students", Enroll(engine, state))
	router.HandleFunc("GET /api/students", GetList(engine, state, 5))
	router.HandleFunc("GET /api/students/{id}", Search(engine, state))
	router.HandleFunc("PUT /api/students/{id}", Update(engine, state))
	router.HandleFunc("POST /api/students/{id}/select", Select(engine, state))
	router.HandleFunc("DELETE /api/students/{id}", Delete(engine, state))
	router.HandleFunc("GET /api/session", GetSession(state))
	return router
}

func do(t *testing.T, router *http.ServeMux, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func sampleStudent(id, name string) types.Student {
	return types.Student{
		StudentID: id,
		Name:      name,
		Email:     name + "@x.com",
		Phone:     "1",
		Course:    "CS",
	}
}

func mustEnroll(t *testing.T, router *http.ServeMux, students ...types.Student) {
	t.Helper()
	for _, st := range students {
		rec := do(t, router, http.MethodPost, "/api/students", st)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
}

func TestEnrollEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/students", sampleStudent("S1", "Ann"))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode[response.Response](t, rec)
	assert.Equal(t, response.StatusOK, body.Status)
	assert.Equal(t, "Student enrolled successfully", body.Message)
}

func TestEnrollEndpoint_DuplicateID(t *testing.T) {
	router := newTestRouter(t)
	mustEnroll(t, router, sampleStudent("S1", "Ann"))

	rec := do(t, router, http.MethodPost, "/api/students", sampleStudent("S1", "Bob"))
	require.Equal(t, http.StatusConflict, rec.Code)

	body := decode[response.Response](t, rec)
	assert.Equal(t, "Student ID already exists", body.Error)

	// Roster size stays 1.
	view := decode[roster.View](t, do(t, router, http.MethodGet, "/api/students", nil))
	assert.Equal(t, 1, view.TotalCount)
}

func TestEnrollEndpoint_BlankField(t *testing.T) {
	router := newTestRouter(t)

	draft := sampleStudent("S1", "Ann")
	draft.Name = "   "

	rec := do(t, router, http.MethodPost, "/api/students", draft)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[response.Response](t, rec)
	assert.Equal(t, "name is required", body.Error)
}

func TestEnrollEndpoint_EmptyBody(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/students", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEndpoint_Pagination(t *testing.T) {
	router := newTestRouter(t)
	for i := 1; i <= 7; i++ {
		mustEnroll(t, router, sampleStudent(fmt.Sprintf("S%d", i), fmt.Sprintf("Name%d", i)))
	}

	page1 := decode[roster.View](t, do(t, router, http.MethodGet, "/api/students?page=1", nil))
	require.Len(t, page1.Items, 5)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, "S1", page1.Items[0].StudentID)

	page2 := decode[roster.View](t, do(t, router, http.MethodGet, "/api/students?page=2", nil))
	require.Len(t, page2.Items, 2)
	assert.Equal(t, "S6", page2.Items[0].StudentID)
	assert.Equal(t, "S7", page2.Items[1].StudentID)
}

func TestListEndpoint_FilterChangeResetsPage(t *testing.T) {
	router := newTestRouter(t)
	for i := 1; i <= 7; i++ {
		mustEnroll(t, router, sampleStudent(fmt.Sprintf("S%d", i), fmt.Sprintf("Name%d", i)))
	}

	// Park the view on page 2, then change the filter: back to page 1.
	do(t, router, http.MethodGet, "/api/students?page=2", nil)
	view := decode[roster.View](t, do(t, router, http.MethodGet, "/api/students?q=name1", nil))
	assert.Equal(t, 1, view.Page)

	// The remembered filter applies on a bare request too.
	again := decode[roster.View](t, do(t, router, http.MethodGet, "/api/students", nil))
	assert.Equal(t, view.TotalCount, again.TotalCount)
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter(t)
	mustEnroll(t, router, sampleStudent("S1", "Ann"))

	rec := do(t, router, http.MethodGet, "/api/students/S1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[viewState](t, rec)
	assert.Equal(t, roster.ModeUpdate, body.Mode)
	assert.Equal(t, "S1", body.SearchID)
	assert.Equal(t, "Ann", body.Draft.Name)
	assert.Equal(t, "Student loaded for update", body.Message)
}

func TestSearchEndpoint_NotFound(t *testing.T) {
	router := newTestRouter(t)
	mustEnroll(t, router, sampleStudent("S1", "Ann"))

	rec := do(t, router, http.MethodGet, "/api/students/ZZ", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decode[response.Response](t, rec)
	assert.Equal(t, "Student not found", body.Error)

	// The failure dropped the session back to Enroll mode.
	sess := decode[viewState](t, do(t, router, http.MethodGet, "/api/session", nil))
	assert.Equal(t, roster.ModeEnroll, sess.Mode)
	assert.Equal(t, "Student not found", sess.Error)
}

func TestSelectEndpoint(t *testing.T) {
	router := newTestRouter(t)
	record := sampleStudent("S1", "Ann")
	mustEnroll(t, router, record)

	rec := do(t, router, http.MethodPost, "/api/students/S1/select", record)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[viewState](t, rec)
	assert.Equal(t, roster.ModeUpdate, body.Mode)
	assert.Equal(t, "S1", body.SearchID)
}

func TestSelectEndpoint_IDMismatch(t *testing.T) {
	router := newTestRouter(t)
	mustEnroll(t, router, sampleStudent("S1", "Ann"))

	rec := do(t, router, http.MethodPost, "/api/students/S2/select", sampleStudent("S1", "Ann"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSelectEndpoint_RejectsIncompleteRecord(t *testing.T) {
	router := newTestRouter(t)

	record := sampleStudent("S1", "Ann")
	record.Course = ""

	rec := do(t, router, http.MethodPost, "/api/students/S1/select", record)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[response.Response](t, rec)
	assert.Contains(t, body.Error, "Course")
}

func TestUpdateEndpoint(t *testing.T) {
	router := newTestRouter(t)
	mustEnroll(t, router, sampleStudent("S1", "Ann"))
	do(t, router, http.MethodGet, "/api/students/S1", nil)

	updated := sampleStudent("S1", "Annette")
	rec := do(t, router, http.MethodPut, "/api/students/S1", updated)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[response.Response](t, rec)
	assert.Equal(t, "Student updated successfully", body.Message)

	// Session resets to a clean Enroll session.
	sess := decode[viewState](t, do(t, router, http.MethodGet, "/api/session", nil))
	assert.Equal(t, roster.ModeEnroll, sess.Mode)
	assert.Empty(t, sess.SearchID)
	assert.Equal(t, types.Student{}, sess.Draft)

	got := decode[viewState](t, do(t, router, http.MethodGet, "/api/students/S1", nil))
	assert.Equal(t, "Annette", got.Draft.Name)
}

func TestUpdateEndpoint_IgnoresBodyID(t *testing.T) {
	router := newTestRouter(t)
	mustEnroll(t, router, sampleStudent("S1", "Ann"))

	// The body claims a different id; the path id keys the replace.
	tampered := sampleStudent("HACKED", "Annette")
	rec := do(t, router, http.MethodPut, "/api/students/S1", tampered)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decode[roster.View](t, do(t, router, http.MethodGet, "/api/students", nil))
	require.Equal(t, 1, view.TotalCount)
	assert.Equal(t, "S1", view.Items[0].StudentID)
	assert.Equal(t, "Annette", view.Items[0].Name)
}

func TestUpdateEndpoint_BlankFieldKeepsUpdateMode(t *testing.T) {
	router := newTestRouter(t)
	mustEnroll(t, router, sampleStudent("S1", "Ann"))
	do(t, router, http.MethodGet, "/api/students/S1", nil)

	draft := sampleStudent("S1", "")
	rec := do(t, router, http.MethodPut, "/api/students/S1", draft)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[response.Response](t, rec)
	assert.Equal(t, "name is required", body.Error)

	sess := decode[viewState](t, do(t, router, http.MethodGet, "/api/session", nil))
	assert.Equal(t, roster.ModeUpdate, sess.Mode)
}

func TestUpdateEndpoint_UnknownID(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPut, "/api/students/ZZ", sampleStudent("ZZ", "Ghost"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEndpoint_RequiresConfirmation(t *testing.T) {
	router := newTestRouter(t)
	mustEnroll(t, router, sampleStudent("S1", "Ann"))

	rec := do(t, router, http.MethodDelete, "/api/students/S1", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Nothing was removed.
	view := decode[roster.View](t, do(t, router, http.MethodGet, "/api/students", nil))
	assert.Equal(t, 1, view.TotalCount)
}

func TestDeleteEndpoint_ClearsLoadedSession(t *testing.T) {
	router := newTestRouter(t)
	mustEnroll(t, router, sampleStudent("S1", "Ann"))
	do(t, router, http.MethodGet, "/api/students/S1", nil)

	rec := do(t, router, http.MethodDelete, "/api/students/S1?confirm=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[response.Response](t, rec)
	assert.Equal(t, "Student deleted successfully", body.Message)

	view := decode[roster.View](t, do(t, router, http.MethodGet, "/api/students", nil))
	assert.Equal(t, 0, view.TotalCount)

	sess := decode[viewState](t, do(t, router, http.MethodGet, "/api/session", nil))
	assert.Equal(t, roster.ModeEnroll, sess.Mode)
	assert.Empty(t, sess.SearchID)
	assert.Equal(t, types.Student{}, sess.Draft)
}

func TestDeleteEndpoint_AbsentIDStillSucceeds(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodDelete, "/api/students/ZZ?confirm=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[response.Response](t, rec)
	assert.Equal(t, "Student deleted successfully", body.Message)
}

func TestSessionEndpoint_MessagesAreExclusive(t *testing.T) {
	router := newTestRouter(t)
	mustEnroll(t, router, sampleStudent("S1", "Ann"))

	// A success replaces any prior error, and vice versa.
	sess := decode[viewState](t, do(t, router, http.MethodGet, "/api/session", nil))
	assert.Equal(t, "Student enrolled successfully", sess.Message)
	assert.Empty(t, sess.Error)

	do(t, router, http.MethodGet, "/api/students/ZZ", nil)
	sess = decode[viewState](t, do(t, router, http.MethodGet, "/api/session", nil))
	assert.Empty(t, sess.Message)
	assert.Equal(t, "Student not found", sess.Error)
}
