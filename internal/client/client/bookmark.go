package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/technai/internal/client/models"
)

const bookmarkBase = "/api/v1/bookmark"

type bookmarkPage = ListPage[models.Bookmark]

func (c *HTTPClient) CreateBookmark(ctx context.Context, req models.BookmarkCreateRequest) (models.Bookmark, error) {
	return call[models.Bookmark](ctx, c, Request{Method: http.MethodPost, Path: bookmarkBase, Body: req})
}

func (c *HTTPClient) ListBookmarks(ctx context.Context, p models.BookmarkListParams) (Page[models.Bookmark], error) {
	return callPage[models.Bookmark, bookmarkPage](ctx, c, get(bookmarkBase, p.Query()), false)
}

func (c *HTTPClient) GetBookmark(ctx context.Context, id string) (models.Bookmark, error) {
	return call[models.Bookmark](ctx, c, get(path(bookmarkBase, id), nil))
}

func (c *HTTPClient) UpdateBookmark(ctx context.Context, id string, req models.BookmarkUpdateRequest) (models.Bookmark, error) {
	return call[models.Bookmark](ctx, c, Request{Method: http.MethodPut, Path: path(bookmarkBase, id), Body: req})
}

func (c *HTTPClient) DeleteBookmark(ctx context.Context, id string) error {
	return callVoid(ctx, c, Request{Method: http.MethodDelete, Path: path(bookmarkBase, id)}, false)
}

func (c *HTTPClient) ListDeletedBookmarks(ctx context.Context, p models.BookmarkDeletedParams) (Page[models.Bookmark], error) {
	return callPage[models.Bookmark, bookmarkPage](ctx, c, get(bookmarkBase+"/deleted", p.Query()), false)
}

func (c *HTTPClient) RestoreBookmark(ctx context.Context, id string) (models.Bookmark, error) {
	return call[models.Bookmark](ctx, c, Request{Method: http.MethodPost, Path: path(bookmarkBase, id, "restore")})
}

func (c *HTTPClient) SearchBookmarks(ctx context.Context, p models.BookmarkSearchParams) (Page[models.Bookmark], error) {
	return callPage[models.Bookmark, bookmarkPage](ctx, c, get(bookmarkBase+"/search", p.Query()), false)
}

func (c *HTTPClient) BookmarkHistory(ctx context.Context, id string, p models.BookmarkHistoryParams) (Page[models.BookmarkHistoryEntry], error) {
	r := get(path(bookmarkBase+"/history", id), p.Query())
	return callPage[models.BookmarkHistoryEntry, ListPage[models.BookmarkHistoryEntry]](ctx, c, r, false)
}

func (c *HTTPClient) BookmarkAt(ctx context.Context, id, timestamp string) (models.BookmarkHistoryEntry, error) {
	q := models.NewQuery().Str("timestamp", timestamp)
	return call[models.BookmarkHistoryEntry](ctx, c, get(path(bookmarkBase+"/history", id, "at"), q))
}

func (c *HTTPClient) RestoreBookmarkVersion(ctx context.Context, id, historyID string) (models.Bookmark, error) {
	r := Request{
		Method: http.MethodPost,
		Path:   path(bookmarkBase+"/history", id, "restore"),
		Query:  models.NewQuery().Str("historyId", historyID).Values(),
	}
	return call[models.Bookmark](ctx, c, r)
}
