package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	ID   string
	Name string
}

func rowID(r row) string { return r.ID }

func fixedPage(rows []row, current, totalPages, total int) FetchFunc[row] {
	return func(ctx context.Context, p Params) (Page[row], error) {
		return Page[row]{Rows: rows, CurrentPage: current, TotalPages: totalPages, Total: total}, nil
	}
}

// ============ TESTS ============

func TestParamsValuesOmitsEmptyAndSentinels(t *testing.T) {
	p := Params{Page: 1, Limit: 10, Search: "", Status: FilterAll, AssignedTo: FilterAll}
	v := p.Values()

	assert.Equal(t, "1", v.Get("page"))
	assert.Equal(t, "10", v.Get("limit"))
	assert.False(t, v.Has("search"))
	assert.False(t, v.Has("status"))
	assert.False(t, v.Has("assignedTo"))
}

func TestParamsValuesKeepsActiveFilters(t *testing.T) {
	p := Params{Page: 2, Limit: 25, Search: "acme", Status: "qualified", AssignedTo: "user-1"}
	v := p.Values()

	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "25", v.Get("limit"))
	assert.Equal(t, "acme", v.Get("search"))
	assert.Equal(t, "qualified", v.Get("status"))
	assert.Equal(t, "user-1", v.Get("assignedTo"))
}

func TestSetFilterResetsPage(t *testing.T) {
	q := NewListQuery(fixedPage(nil, 3, 5, 42), rowID)
	q.Seed(Params{Page: 3})
	assert.Equal(t, 3, q.Params().Page)

	q.SetFilter(FilterStatus, "won")

	p := q.Params()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, "won", p.Status)
}

func TestSetFilterUnknownKindIgnored(t *testing.T) {
	q := NewListQuery(fixedPage(nil, 3, 5, 42), rowID)
	q.Seed(Params{Page: 3})

	q.SetFilter("sort", "name")

	assert.Equal(t, 3, q.Params().Page)
}

func TestSetPageClampsOutOfRange(t *testing.T) {
	q := NewListQuery(fixedPage([]row{{ID: "1"}}, 1, 5, 41), rowID)
	assert.NoError(t, q.Fetch(context.Background()))

	q.SetPage(0)
	assert.Equal(t, 1, q.Params().Page)

	q.SetPage(6)
	assert.Equal(t, 1, q.Params().Page)

	q.SetPage(4)
	assert.Equal(t, 4, q.Params().Page)
}

func TestFetchReplacesRowsAndPagination(t *testing.T) {
	rows := []row{{ID: "1", Name: "Acme"}, {ID: "2", Name: "Globex"}}
	q := NewListQuery(fixedPage(rows, 2, 7, 65), rowID)

	assert.NoError(t, q.Fetch(context.Background()))

	assert.Equal(t, rows, q.Rows())
	assert.Equal(t, Pagination{CurrentPage: 2, TotalPages: 7, Total: 65}, q.Pagination())
}

func TestFetchFailureClearsRowsKeepsPagination(t *testing.T) {
	boom := errors.New("upstream down")
	fail := false
	fetch := func(ctx context.Context, p Params) (Page[row], error) {
		if fail {
			return Page[row]{}, boom
		}
		return Page[row]{Rows: []row{{ID: "1"}}, CurrentPage: 2, TotalPages: 4, Total: 31}, nil
	}

	q := NewListQuery(fetch, rowID)
	assert.NoError(t, q.Fetch(context.Background()))
	assert.Len(t, q.Rows(), 1)

	fail = true
	err := q.Fetch(context.Background())
	assert.ErrorIs(t, err, boom)

	// Rows are gone, the last known pagination stands.
	assert.Empty(t, q.Rows())
	assert.Equal(t, Pagination{CurrentPage: 2, TotalPages: 4, Total: 31}, q.Pagination())
}

func TestStaleFetchIsDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	first := true

	fetch := func(ctx context.Context, p Params) (Page[row], error) {
		if first {
			first = false
			close(entered)
			<-release
			return Page[row]{Rows: []row{{ID: "old"}}, CurrentPage: 1, TotalPages: 1, Total: 1}, nil
		}
		return Page[row]{Rows: []row{{ID: "new"}}, CurrentPage: 1, TotalPages: 1, Total: 1}, nil
	}

	q := NewListQuery(fetch, rowID)

	done := make(chan error, 1)
	go func() { done <- q.Fetch(context.Background()) }()
	<-entered

	// The second fetch starts after the first and finishes before it.
	assert.NoError(t, q.Fetch(context.Background()))
	close(release)

	assert.ErrorIs(t, <-done, ErrStaleFetch)
	assert.Equal(t, []row{{ID: "new"}}, q.Rows())
}

func TestFetchAdoptsServerReportedPage(t *testing.T) {
	q := NewListQuery(fixedPage([]row{{ID: "1"}}, 3, 3, 25), rowID)
	q.Seed(Params{Page: 99})

	assert.NoError(t, q.Fetch(context.Background()))

	assert.Equal(t, 3, q.Pagination().CurrentPage)
}

func TestDeletePatchesRowsOnlyAfterSuccess(t *testing.T) {
	rows := []row{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	q := NewListQuery(fixedPage(rows, 1, 1, 3), rowID)
	assert.NoError(t, q.Fetch(context.Background()))

	var deleted []string
	remove := func(ctx context.Context, id string) error {
		deleted = append(deleted, id)
		return nil
	}

	assert.NoError(t, q.Delete(context.Background(), "2", remove))
	assert.Equal(t, []string{"2"}, deleted)
	assert.Equal(t, []row{{ID: "1"}, {ID: "3"}}, q.Rows())

	// Deleting an id that is not rendered still succeeds.
	assert.NoError(t, q.Delete(context.Background(), "99", remove))
	assert.Equal(t, []row{{ID: "1"}, {ID: "3"}}, q.Rows())
}

func TestDeleteFailureLeavesRowsUntouched(t *testing.T) {
	q := NewListQuery(fixedPage([]row{{ID: "1"}, {ID: "2"}}, 1, 1, 2), rowID)
	assert.NoError(t, q.Fetch(context.Background()))

	boom := errors.New("delete rejected")
	err := q.Delete(context.Background(), "1", func(ctx context.Context, id string) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Len(t, q.Rows(), 2)
}

func TestPatchRewritesMatchingRow(t *testing.T) {
	q := NewListQuery(fixedPage([]row{{ID: "1", Name: "draft"}, {ID: "2", Name: "draft"}}, 1, 1, 2), rowID)
	assert.NoError(t, q.Fetch(context.Background()))

	err := q.Patch(context.Background(), "2",
		func(ctx context.Context, id string) error { return nil },
		func(r *row) { r.Name = "sent" },
	)

	assert.NoError(t, err)
	assert.Equal(t, []row{{ID: "1", Name: "draft"}, {ID: "2", Name: "sent"}}, q.Rows())
}

func TestPatchFailureSkipsMutation(t *testing.T) {
	q := NewListQuery(fixedPage([]row{{ID: "1", Name: "draft"}}, 1, 1, 1), rowID)
	assert.NoError(t, q.Fetch(context.Background()))

	boom := errors.New("send rejected")
	err := q.Patch(context.Background(), "1",
		func(ctx context.Context, id string) error { return boom },
		func(r *row) { r.Name = "sent" },
	)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "draft", q.Rows()[0].Name)
}
