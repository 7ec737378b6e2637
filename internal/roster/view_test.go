package roster

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/roster-api/internal/types"
)

func rosterOf(n int) []types.Student {
	students := make([]types.Student, 0, n)
	for i := 1; i <= n; i++ {
		students = append(students, student(fmt.Sprintf("S%d", i), fmt.Sprintf("Name%d", i)))
	}
	return students
}

func TestBuildView_Pagination(t *testing.T) {
	all := rosterOf(7)

	page1 := BuildView(all, "", 1, 5)
	require.Len(t, page1.Items, 5)
	assert.Equal(t, "S1", page1.Items[0].StudentID)
	assert.Equal(t, "S5", page1.Items[4].StudentID)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, 7, page1.TotalCount)

	page2 := BuildView(all, "", 2, 5)
	require.Len(t, page2.Items, 2)
	assert.Equal(t, "S6", page2.Items[0].StudentID)
	assert.Equal(t, "S7", page2.Items[1].StudentID)
}

func TestBuildView_TotalPagesNeverBelowOne(t *testing.T) {
	empty := BuildView(nil, "", 1, 5)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Items)

	noMatch := BuildView(rosterOf(3), "zzz-no-such-text", 1, 5)
	assert.Equal(t, 1, noMatch.TotalPages)
	assert.Empty(t, noMatch.Items)
	assert.Equal(t, 0, noMatch.TotalCount)
}

func TestBuildView_OutOfRangePageYieldsEmptyItems(t *testing.T) {
	all := rosterOf(7)

	// totalPages can shrink after a filter change or a delete; a stale
	// page request must degrade to an empty list, not an error.
	beyond := BuildView(all, "", 9, 5)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 2, beyond.TotalPages)

	clamped := BuildView(all, "", 0, 5)
	require.Len(t, clamped.Items, 5)
	assert.Equal(t, 1, clamped.Page)
}

func TestBuildView_FilterMatchesAnyField(t *testing.T) {
	all := []types.Student{
		{StudentID: "S1", Name: "Ann", Email: "ann@x.com", Phone: "111", Course: "CS"},
		{StudentID: "S2", Name: "Bob", Email: "bob@y.org", Phone: "222", Course: "Math"},
		{StudentID: "S3", Name: "Cat", Email: "cat@z.net", Phone: "333", Course: "Physics"},
	}

	tests := []struct {
		filter  string
		wantIDs []string
	}{
		{"", []string{"S1", "S2", "S3"}},     // empty filter matches everything
		{"ann", []string{"S1"}},              // name, case-insensitive
		{"ANN", []string{"S1"}},              // filter case is irrelevant
		{"y.org", []string{"S2"}},            // email substring
		{"333", []string{"S3"}},              // phone
		{"s", []string{"S1", "S2", "S3"}},    // id matches all three
		{"PHYS", []string{"S3"}},             // course, case-insensitive
		{"no such student", []string{}},      // no field contains it
		{"a", []string{"S1", "S2", "S3"}},    // Ann, Math... and cat@z.net
	}

	for _, tt := range tests {
		t.Run("filter="+tt.filter, func(t *testing.T) {
			view := BuildView(all, tt.filter, 1, 10)

			gotIDs := make([]string, 0, len(view.Items))
			for _, st := range view.Items {
				gotIDs = append(gotIDs, st.StudentID)
			}
			assert.ElementsMatch(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestBuildView_PreservesRosterOrder(t *testing.T) {
	all := rosterOf(12)

	view := BuildView(all, "name1", 1, 10) // Name1, Name10, Name11, Name12
	require.Len(t, view.Items, 4)
	assert.Equal(t, "S1", view.Items[0].StudentID)
	assert.Equal(t, "S10", view.Items[1].StudentID)
	assert.Equal(t, "S11", view.Items[2].StudentID)
	assert.Equal(t, "S12", view.Items[3].StudentID)
}
