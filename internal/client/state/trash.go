package state

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/logging"
	"github.com/samber/lo"
)

// DefaultTrashDays is the retention window shown first.
const DefaultTrashDays = 30

// Trash lists bookmarks deleted within the last N days.
type Trash struct {
	*List[models.Bookmark]

	api    client.BookmarkAPI
	toasts *Toasts
	log    logging.Logger

	mu   sync.Mutex
	days int
}

func NewTrash(api client.BookmarkAPI, toasts *Toasts, pageSize, days int, log logging.Logger) *Trash {
	if !lo.Contains(models.TrashDayOptions, days) {
		days = DefaultTrashDays
	}
	t := &Trash{api: api, toasts: toasts, log: log, days: days}
	t.List = newList[models.Bookmark](pageSize, log, t.fetch)
	return t
}

func (t *Trash) fetch(ctx context.Context, page, size int) (client.Page[models.Bookmark], error) {
	t.mu.Lock()
	days := t.days
	t.mu.Unlock()
	return t.api.ListDeletedBookmarks(ctx, models.BookmarkDeletedParams{Page: page, Size: size, Days: days})
}

// SetDays changes the window to one of 7, 14, 30, 60 or 90 days.
func (t *Trash) SetDays(ctx context.Context, days int) error {
	if !lo.Contains(models.TrashDayOptions, days) {
		return ErrInvalidOption
	}

	t.mu.Lock()
	t.days = days
	t.mu.Unlock()

	t.reset(ctx)
	return nil
}

func (t *Trash) Days() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.days
}

func (t *Trash) Restore(ctx context.Context, id string) error {
	if _, err := t.api.RestoreBookmark(ctx, id); err != nil {
		t.log.Debug(ctx, "restore bookmark failed", "bookmarkId", id, "error", err)
		t.toasts.Error(errorText(err, MsgRestoreFailed))
		return err
	}

	t.toasts.Success(MsgBookmarkRestored)
	t.Load(ctx)
	return nil
}
