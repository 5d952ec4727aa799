package usecase

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"
)

// Filter kinds accepted by SetFilter.
const (
	FilterSearch   = "search"
	FilterStatus   = "status"
	FilterAssignee = "assignee"
)

// FilterAll is the sentinel meaning "no filter" for status/assignee.
const FilterAll = "all"

const DefaultPageSize = 10

// ErrStaleFetch is returned when a fetch completed after a newer one was
// already started; its response is discarded instead of overwriting
// fresher rows.
var ErrStaleFetch = errors.New("stale fetch discarded")

// Params is the query sent to a listing collaborator.
type Params struct {
	Page       int
	Limit      int
	Search     string
	Status     string
	AssignedTo string
}

// Values renders the params as query parameters. Empty search and "all"
// sentinels are omitted entirely rather than sent as blanks.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("limit", strconv.Itoa(p.Limit))
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Status != "" && p.Status != FilterAll {
		v.Set("status", p.Status)
	}
	if p.AssignedTo != "" && p.AssignedTo != FilterAll {
		v.Set("assignedTo", p.AssignedTo)
	}
	return v
}

// Page is one page of listing results plus pagination metadata.
type Page[T any] struct {
	Rows        []T
	CurrentPage int
	TotalPages  int
	Total       int
}

// FetchFunc issues exactly one listing request per call.
type FetchFunc[T any] func(ctx context.Context, p Params) (Page[T], error)

// Pagination is the render-ready slice of list metadata.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
}

// ListQuery maps search/filter/page state to collaborator queries and
// reconciles responses into render-ready rows. Rows and pagination are
// replaced together on success; on failure rows are cleared and the
// previous pagination stands. Overlapping fetches are sequenced by
// generation so a slow early response cannot clobber a later one.
type ListQuery[T any] struct {
	mu    sync.Mutex
	fetch FetchFunc[T]
	rowID func(T) string

	search   string
	status   string
	assignee string
	page     int
	pageSize int

	rows       []T
	totalPages int
	total      int
	gen        uint64
}

func NewListQuery[T any](fetch FetchFunc[T], rowID func(T) string) *ListQuery[T] {
	return &ListQuery[T]{
		fetch:      fetch,
		rowID:      rowID,
		status:     FilterAll,
		assignee:   FilterAll,
		page:       1,
		pageSize:   DefaultPageSize,
		totalPages: 1,
	}
}

// Seed restores controller state from an incoming request. The page is
// taken as-is rather than clamped: the server reports the effective
// page on the next fetch and that wins.
func (q *ListQuery[T]) Seed(p Params) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.search = p.Search
	if p.Status != "" {
		q.status = p.Status
	}
	if p.AssignedTo != "" {
		q.assignee = p.AssignedTo
	}
	if p.Limit > 0 {
		q.pageSize = p.Limit
	}
	if p.Page > 0 {
		q.page = p.Page
	}
}

// SetFilter updates one filter and restarts pagination at page 1, so a
// shrinking result set can never leave the list on an out-of-range page.
// Unknown kinds are ignored.
func (q *ListQuery[T]) SetFilter(kind, value string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch kind {
	case FilterSearch:
		q.search = value
	case FilterStatus:
		q.status = value
	case FilterAssignee:
		q.assignee = value
	default:
		return
	}
	q.page = 1
}

// SetPage moves to a page without touching filters. Out-of-range pages
// are a no-op.
func (q *ListQuery[T]) SetPage(page int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if page < 1 || page > q.totalPages {
		return
	}
	q.page = page
}

// Params snapshots the current query state.
func (q *ListQuery[T]) Params() Params {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.params()
}

func (q *ListQuery[T]) params() Params {
	return Params{
		Page:       q.page,
		Limit:      q.pageSize,
		Search:     q.search,
		Status:     q.status,
		AssignedTo: q.assignee,
	}
}

// Fetch issues one listing request with the current state. A response
// belonging to an older generation than the latest Fetch call is
// discarded and reported as ErrStaleFetch.
func (q *ListQuery[T]) Fetch(ctx context.Context) error {
	q.mu.Lock()
	q.gen++
	gen := q.gen
	params := q.params()
	q.mu.Unlock()

	page, err := q.fetch(ctx, params)

	q.mu.Lock()
	defer q.mu.Unlock()

	if gen != q.gen {
		return ErrStaleFetch
	}
	if err != nil {
		q.rows = nil
		return err
	}

	q.rows = page.Rows
	q.totalPages = page.TotalPages
	q.total = page.Total
	if page.CurrentPage > 0 {
		q.page = page.CurrentPage
	}
	return nil
}

// Rows returns a copy of the rendered rows.
func (q *ListQuery[T]) Rows() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]T, len(q.rows))
	copy(out, q.rows)
	return out
}

func (q *ListQuery[T]) Pagination() Pagination {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Pagination{CurrentPage: q.page, TotalPages: q.totalPages, Total: q.total}
}

// Delete calls the collaborator first and only patches local rows after
// it succeeded, so a failed delete leaves the list untouched. Filtering
// an id that is not rendered is a harmless no-op.
func (q *ListQuery[T]) Delete(ctx context.Context, id string, remove func(context.Context, string) error) error {
	if err := remove(ctx, id); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.rows[:0]
	for _, row := range q.rows {
		if q.rowID(row) != id {
			kept = append(kept, row)
		}
	}
	q.rows = kept
	return nil
}

// Patch calls the collaborator and, on success, rewrites the matching
// rendered row in place instead of re-fetching the page.
func (q *ListQuery[T]) Patch(ctx context.Context, id string, call func(context.Context, string) error, mutate func(*T)) error {
	if err := call(ctx, id); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.rows {
		if q.rowID(q.rows[i]) == id {
			mutate(&q.rows[i])
			return nil
		}
	}
	return nil
}
