package state

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/logging"
)

// PendingBookmarkID marks an item as bookmarked before the backend has
// returned the real id.
const PendingBookmarkID = "__pending__"

type BookmarkMutator interface {
	CreateBookmark(ctx context.Context, req models.BookmarkCreateRequest) (models.Bookmark, error)
	DeleteBookmark(ctx context.Context, id string) error
}

// BookmarkToggle tracks, per emerging-tech id, the bookmark id shown to the
// user and flips it optimistically.
type BookmarkToggle struct {
	api    BookmarkMutator
	toasts *Toasts
	log    logging.Logger

	mu      sync.Mutex
	ids     map[string]string
	pending map[string]bool
}

func NewBookmarkToggle(api BookmarkMutator, toasts *Toasts, log logging.Logger) *BookmarkToggle {
	return &BookmarkToggle{
		api:     api,
		toasts:  toasts,
		log:     log,
		ids:     make(map[string]string),
		pending: make(map[string]bool),
	}
}

// Seed records known bookmark ids keyed by emerging-tech id.
func (b *BookmarkToggle) Seed(ids map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for techID, id := range ids {
		b.ids[techID] = id
	}
}

// ID returns the bookmark id for techID: "" when not bookmarked,
// PendingBookmarkID while the backend id is unknown.
func (b *BookmarkToggle) ID(techID string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ids[techID]
}

func (b *BookmarkToggle) IsBookmarked(techID string) bool {
	return b.ID(techID) != ""
}

func (b *BookmarkToggle) IsPending(techID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending[techID]
}

func (b *BookmarkToggle) set(techID, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if id == "" {
		delete(b.ids, techID)
		return
	}
	b.ids[techID] = id
}

// Toggle adds or removes the bookmark for techID. A toggle while one is
// already in flight for the same item does nothing.
func (b *BookmarkToggle) Toggle(ctx context.Context, techID string) {
	b.mu.Lock()
	if b.pending[techID] {
		b.mu.Unlock()
		return
	}
	prior := b.ids[techID]
	b.pending[techID] = true
	if prior == "" {
		b.ids[techID] = PendingBookmarkID
	} else {
		delete(b.ids, techID)
	}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.pending, techID)
		b.mu.Unlock()
	}()

	if prior == "" {
		b.add(ctx, techID)
		return
	}
	b.remove(ctx, techID, prior)
}

func (b *BookmarkToggle) add(ctx context.Context, techID string) {
	created, err := b.api.CreateBookmark(ctx, models.BookmarkCreateRequest{EmergingTechID: techID})
	if err == nil {
		b.set(techID, created.BookmarkTsid)
		b.toasts.Success(MsgBookmarked)
		return
	}

	if errors.Is(err, client.ErrConflict) {
		// stays bookmarked under the placeholder
		b.toasts.Success(MsgAlreadyBookmarked)
		return
	}

	b.log.Debug(ctx, "create bookmark failed", "emergingTechId", techID, "error", err)
	b.set(techID, "")
	b.toasts.Error(errorText(err, MsgBookmarkFailed))
}

func (b *BookmarkToggle) remove(ctx context.Context, techID, prior string) {
	if prior == PendingBookmarkID {
		// the backend id was never learned, so there is nothing to delete
		b.set(techID, prior)
		b.toasts.Error(MsgRemoveFailed)
		return
	}

	if err := b.api.DeleteBookmark(ctx, prior); err != nil {
		b.log.Debug(ctx, "delete bookmark failed", "bookmarkId", prior, "error", err)
		b.set(techID, prior)
		b.toasts.Error(errorText(err, MsgRemoveFailed))
		return
	}
	b.toasts.Success(MsgBookmarkRemoved)
}
