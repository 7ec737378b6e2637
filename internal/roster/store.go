package roster

import (
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/roster-api/internal/storage"
	"github.com/aanand-mishra/roster-api/internal/types"
)

// Store is the roster's source of truth: an ordered, in-memory
// collection of Student records. Records keep their insertion order;
// Replace keeps a record's position, RemoveByID closes the gap.
//
// Every successful mutation writes the full roster snapshot through
// the storage.Snapshotter, after the in-memory change and before the
// mutation reports success. A snapshot failure is logged and the
// in-memory change stands — the next successful mutation rewrites the
// whole snapshot anyway.
type Store struct {
	students []types.Student
	snaps    storage.Snapshotter
	log      *slog.Logger
}

// OpenStore loads the persisted snapshot (empty roster if none exists)
// and returns a ready-to-use Store.
func OpenStore(snaps storage.Snapshotter, log *slog.Logger) (*Store, error) {
	students, err := snaps.Load()
	if err != nil {
		return nil, fmt.Errorf("roster.OpenStore: load snapshot: %w", err)
	}

	return &Store{
		students: students,
		snaps:    snaps,
		log:      log,
	}, nil
}

// List returns every record in insertion order. The returned slice is
// a copy: callers never observe later Store mutations through it.
func (s *Store) List() []types.Student {
	out := make([]types.Student, len(s.students))
	copy(out, s.students)
	return out
}

// FindByID returns the record with the given id, if present.
func (s *Store) FindByID(id string) (types.Student, bool) {
	for _, st := range s.students {
		if st.StudentID == id {
			return st, true
		}
	}
	return types.Student{}, false
}

// Insert appends a new record at the end of the insertion order.
// Returns errDuplicateID if the id is already taken; nothing is
// persisted in that case.
func (s *Store) Insert(record types.Student) error {
	if _, ok := s.FindByID(record.StudentID); ok {
		return errDuplicateID
	}

	s.students = append(s.students, record)
	s.persist()
	return nil
}

// Replace overwrites the record with record.StudentID in place,
// preserving its position in the insertion order. Returns errNoRecord
// if no record with that id exists; nothing is persisted in that case.
func (s *Store) Replace(record types.Student) error {
	for i, st := range s.students {
		if st.StudentID == record.StudentID {
			s.students[i] = record
			s.persist()
			return nil
		}
	}
	return errNoRecord
}

// RemoveByID deletes the record with the given id. Returns errNoRecord
// if absent; nothing is persisted in that case.
func (s *Store) RemoveByID(id string) error {
	for i, st := range s.students {
		if st.StudentID == id {
			s.students = append(s.students[:i], s.students[i+1:]...)
			s.persist()
			return nil
		}
	}
	return errNoRecord
}

// Len reports the current roster size.
func (s *Store) Len() int {
	return len(s.students)
}

// persist writes the full current roster to durable storage. Called
// exactly once per successful mutation, never on a rejected one.
func (s *Store) persist() {
	if err := s.snaps.Save(s.List()); err != nil {
		s.log.Error("failed to persist roster snapshot",
			slog.Int("students", len(s.students)),
			slog.String("error", err.Error()))
	}
}
