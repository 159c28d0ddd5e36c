package state

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/logging"
	"github.com/samber/lo"
)

// Bookmarks is the signed-in user's bookmark listing with sort, provider
// filter and field search, plus the edit and delete mutations.
type Bookmarks struct {
	*List[models.Bookmark]

	api    client.BookmarkAPI
	toasts *Toasts
	log    logging.Logger

	mu       sync.Mutex
	sort     string
	provider string
	query    string
	field    string
}

func NewBookmarks(api client.BookmarkAPI, toasts *Toasts, pageSize int, log logging.Logger) *Bookmarks {
	b := &Bookmarks{
		api:    api,
		toasts: toasts,
		log:    log,
		sort:   models.SortCreatedDesc,
		field:  models.SearchFieldAll,
	}
	b.List = newList[models.Bookmark](pageSize, log, b.fetch)
	return b
}

func (b *Bookmarks) fetch(ctx context.Context, page, size int) (client.Page[models.Bookmark], error) {
	b.mu.Lock()
	sort, provider, query, field := b.sort, b.provider, b.query, b.field
	b.mu.Unlock()

	if query != "" {
		return b.api.SearchBookmarks(ctx, models.BookmarkSearchParams{Q: query, Page: page, Size: size, SearchField: field})
	}
	return b.api.ListBookmarks(ctx, models.BookmarkListParams{Page: page, Size: size, Sort: sort, Provider: provider})
}

func (b *Bookmarks) SetSort(ctx context.Context, sort string) error {
	if !lo.Contains(models.BookmarkSorts, sort) {
		return ErrInvalidOption
	}
	return b.setFilter(ctx, func() { b.sort = sort })
}

// SetProvider filters by provider; "" shows all.
func (b *Bookmarks) SetProvider(ctx context.Context, provider string) error {
	return b.setFilter(ctx, func() { b.provider = provider })
}

func (b *Bookmarks) setFilter(ctx context.Context, apply func()) error {
	b.mu.Lock()
	if b.query != "" {
		b.mu.Unlock()
		return ErrFiltersSuspended
	}
	apply()
	b.mu.Unlock()

	b.reset(ctx)
	return nil
}

// Search looks q up in field (all, title, memo or tags) from page 1.
func (b *Bookmarks) Search(ctx context.Context, q, field string) error {
	if field == "" {
		field = models.SearchFieldAll
	}
	if !lo.Contains(models.SearchFields, field) {
		return ErrInvalidOption
	}

	q = strings.TrimSpace(q)
	if q == "" {
		b.ClearSearch(ctx)
		return nil
	}

	b.mu.Lock()
	b.query, b.field = q, field
	b.mu.Unlock()
	b.reset(ctx)
	return nil
}

func (b *Bookmarks) ClearSearch(ctx context.Context) {
	b.mu.Lock()
	b.query = ""
	b.mu.Unlock()
	b.reset(ctx)
}

func (b *Bookmarks) Query() (q, field string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query, b.field
}

func (b *Bookmarks) Sort() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sort
}

func (b *Bookmarks) Provider() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.provider
}

// Get loads one bookmark for editing.
func (b *Bookmarks) Get(ctx context.Context, id string) (models.Bookmark, error) {
	bm, err := b.api.GetBookmark(ctx, id)
	if err != nil {
		b.toasts.Error(errorText(err, MsgLoadBookmarkFailed))
		return models.Bookmark{}, err
	}
	return bm, nil
}

// NormalizeTags trims tags and drops blanks and repeats, keeping order.
func NormalizeTags(tags []string) []string {
	trimmed := lo.FilterMap(tags, func(t string, _ int) (string, bool) {
		t = strings.TrimSpace(t)
		return t, t != ""
	})
	return lo.Uniq(trimmed)
}

// Update saves tags and memo, then reloads the list. An empty memo is not
// sent.
func (b *Bookmarks) Update(ctx context.Context, id string, tags []string, memo string) error {
	req := models.BookmarkUpdateRequest{Tags: NormalizeTags(tags), Memo: memo}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	if _, err := b.api.UpdateBookmark(ctx, id, req); err != nil {
		b.log.Debug(ctx, "update bookmark failed", "bookmarkId", id, "error", err)
		b.toasts.Error(errorText(err, MsgUpdateFailed))
		return err
	}

	b.toasts.Success(MsgBookmarkUpdated)
	b.Load(ctx)
	return nil
}

// Delete soft-deletes the bookmark; it stays restorable from the trash.
func (b *Bookmarks) Delete(ctx context.Context, id string) error {
	if err := b.api.DeleteBookmark(ctx, id); err != nil {
		b.log.Debug(ctx, "delete bookmark failed", "bookmarkId", id, "error", err)
		b.toasts.Error(errorText(err, MsgDeleteFailed))
		return err
	}

	b.toasts.Success(MsgBookmarkDeleted)
	b.Load(ctx)
	return nil
}

// KnownIDs maps emerging-tech ids to bookmark ids for the loaded page, for
// seeding a BookmarkToggle.
func (b *Bookmarks) KnownIDs() map[string]string {
	items := b.View().Items
	return lo.SliceToMap(items, func(bm models.Bookmark) (string, string) {
		return bm.EmergingTechID, bm.BookmarkTsid
	})
}
