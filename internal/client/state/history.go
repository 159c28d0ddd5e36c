package state

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/logging"
)

type HistoryFilters struct {
	OperationType models.OperationType
	StartDate     string
	EndDate       string
}

// History is the change log of one bookmark.
type History struct {
	*List[models.BookmarkHistoryEntry]

	api        client.BookmarkAPI
	toasts     *Toasts
	log        logging.Logger
	bookmarkID string

	mu         sync.Mutex
	filters    HistoryFilters
	onRestored func()
}

func NewHistory(api client.BookmarkAPI, toasts *Toasts, bookmarkID string, pageSize int, log logging.Logger) *History {
	h := &History{api: api, toasts: toasts, log: log, bookmarkID: bookmarkID}
	h.List = newList[models.BookmarkHistoryEntry](pageSize, log, h.fetch)
	h.List.onError = func(err error) {
		h.toasts.Error(errorText(err, MsgHistoryFailed))
	}
	return h
}

func (h *History) fetch(ctx context.Context, page, size int) (client.Page[models.BookmarkHistoryEntry], error) {
	h.mu.Lock()
	f := h.filters
	h.mu.Unlock()

	return h.api.BookmarkHistory(ctx, h.bookmarkID, models.BookmarkHistoryParams{
		Page:          page,
		Size:          size,
		OperationType: f.OperationType,
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
	})
}

func (h *History) BookmarkID() string {
	return h.bookmarkID
}

func (h *History) SetFilters(ctx context.Context, f HistoryFilters) {
	h.mu.Lock()
	h.filters = f
	h.mu.Unlock()
	h.reset(ctx)
}

// OnRestored registers a callback run after a version restore succeeds,
// typically to reload the bookmark list.
func (h *History) OnRestored(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRestored = fn
}

// At returns the bookmark as it was at timestamp. A blank timestamp
// returns nil without a request.
func (h *History) At(ctx context.Context, timestamp string) (*models.BookmarkHistoryEntry, error) {
	timestamp = strings.TrimSpace(timestamp)
	if timestamp == "" {
		return nil, nil
	}

	entry, err := h.api.BookmarkAt(ctx, h.bookmarkID, timestamp)
	if err != nil {
		h.toasts.Error(errorText(err, MsgAtTimestampFailed))
		return nil, err
	}
	return &entry, nil
}

func (h *History) RestoreVersion(ctx context.Context, historyID string) error {
	if _, err := h.api.RestoreBookmarkVersion(ctx, h.bookmarkID, historyID); err != nil {
		h.log.Debug(ctx, "restore version failed", "historyId", historyID, "error", err)
		h.toasts.Error(errorText(err, MsgVersionFailed))
		return err
	}

	h.toasts.Success(MsgVersionRestored)

	h.mu.Lock()
	cb := h.onRestored
	h.mu.Unlock()
	if cb != nil {
		cb()
	}

	h.Load(ctx)
	return nil
}
