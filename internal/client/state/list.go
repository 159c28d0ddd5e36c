package state

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/logging"
)

var (
	ErrFiltersSuspended = errors.New("filters are disabled while a search is active")
	ErrPageOutOfRange   = errors.New("page out of range")
	ErrInvalidOption    = errors.New("invalid option")
)

// FetchFunc loads one page. Implementations read the owning controller's
// current parameters.
type FetchFunc[T any] func(ctx context.Context, page, size int) (client.Page[T], error)

// ListView is a copy of a list's state for rendering.
type ListView[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
	Loading    bool
}

// List is the shared core of the paginated controllers. Every parameter
// change re-runs fetch; there is no ordering between overlapping loads, so
// the last response to arrive wins.
type List[T any] struct {
	fetch   FetchFunc[T]
	onError func(error)
	log     logging.Logger

	mu      sync.Mutex
	page    int
	size    int
	total   int64
	pages   int
	items   []T
	loading bool
}

func newList[T any](size int, log logging.Logger, fetch FetchFunc[T]) *List[T] {
	return &List[T]{fetch: fetch, log: log, page: 1, size: size}
}

// Load fetches the current page. A failure empties the list.
func (l *List[T]) Load(ctx context.Context) {
	l.mu.Lock()
	page, size := l.page, l.size
	l.loading = true
	l.mu.Unlock()

	result, err := l.fetch(ctx, page, size)

	l.mu.Lock()
	l.loading = false
	if err != nil {
		l.items, l.total, l.pages = nil, 0, 0
	} else {
		l.items = result.Items
		l.total = result.TotalCount
		l.pages = result.TotalPages
	}
	l.mu.Unlock()

	if err != nil {
		l.log.Debug(ctx, "list fetch failed", "page", page, "error", err)
		if l.onError != nil {
			l.onError(err)
		}
	}
}

// SetPage moves to page p within [1, TotalPages] and loads it.
func (l *List[T]) SetPage(ctx context.Context, p int) error {
	l.mu.Lock()
	maxPage := max(l.pages, 1)
	if p < 1 || p > maxPage {
		l.mu.Unlock()
		return ErrPageOutOfRange
	}
	l.page = p
	l.mu.Unlock()

	l.Load(ctx)
	return nil
}

func (l *List[T]) NextPage(ctx context.Context) error {
	return l.SetPage(ctx, l.View().Page+1)
}

func (l *List[T]) PrevPage(ctx context.Context) error {
	return l.SetPage(ctx, l.View().Page-1)
}

// reset returns to page 1 and loads; used after any filter change.
func (l *List[T]) reset(ctx context.Context) {
	l.mu.Lock()
	l.page = 1
	l.mu.Unlock()
	l.Load(ctx)
}

func (l *List[T]) View() ListView[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ListView[T]{
		Items:      append([]T(nil), l.items...),
		Page:       l.page,
		PageSize:   l.size,
		Total:      l.total,
		TotalPages: l.pages,
		Loading:    l.loading,
	}
}

// PageItem is one pagination button; Ellipsis stands for skipped pages.
type PageItem int

const Ellipsis PageItem = 0

// PageWindow returns the buttons for a pager: every page when there are at
// most 7, otherwise the first, the last and the neighbours of page, with
// ellipses for the gaps. One page or none renders no pager.
func PageWindow(page, totalPages int) []PageItem {
	if totalPages <= 1 {
		return nil
	}

	items := make([]PageItem, 0, 7)
	if totalPages <= 7 {
		for i := 1; i <= totalPages; i++ {
			items = append(items, PageItem(i))
		}
		return items
	}

	items = append(items, 1)
	if page > 3 {
		items = append(items, Ellipsis)
	}
	for i := max(2, page-1); i <= min(totalPages-1, page+1); i++ {
		items = append(items, PageItem(i))
	}
	if page < totalPages-2 {
		items = append(items, Ellipsis)
	}
	return append(items, PageItem(totalPages))
}
