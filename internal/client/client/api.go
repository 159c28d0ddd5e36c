package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/technai/internal/client/models"
)

type AuthAPI interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Withdraw(ctx context.Context, req models.WithdrawRequest) error
	VerifyEmail(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, email string) error
	ResetPasswordConfirm(ctx context.Context, token, newPassword string) error
	OAuthCallback(ctx context.Context, provider, code, state string) (models.TokenPair, error)
}

type EmergingTechAPI interface {
	ListEmergingTech(ctx context.Context, p models.EmergingTechListParams) (Page[models.EmergingTechItem], error)
	SearchEmergingTech(ctx context.Context, p models.EmergingTechSearchParams) (Page[models.EmergingTechItem], error)
	GetEmergingTech(ctx context.Context, id string) (models.EmergingTechItem, error)
}

type BookmarkAPI interface {
	CreateBookmark(ctx context.Context, req models.BookmarkCreateRequest) (models.Bookmark, error)
	ListBookmarks(ctx context.Context, p models.BookmarkListParams) (Page[models.Bookmark], error)
	GetBookmark(ctx context.Context, id string) (models.Bookmark, error)
	UpdateBookmark(ctx context.Context, id string, req models.BookmarkUpdateRequest) (models.Bookmark, error)
	DeleteBookmark(ctx context.Context, id string) error
	ListDeletedBookmarks(ctx context.Context, p models.BookmarkDeletedParams) (Page[models.Bookmark], error)
	RestoreBookmark(ctx context.Context, id string) (models.Bookmark, error)
	SearchBookmarks(ctx context.Context, p models.BookmarkSearchParams) (Page[models.Bookmark], error)
	BookmarkHistory(ctx context.Context, id string, p models.BookmarkHistoryParams) (Page[models.BookmarkHistoryEntry], error)
	BookmarkAt(ctx context.Context, id, timestamp string) (models.BookmarkHistoryEntry, error)
	RestoreBookmarkVersion(ctx context.Context, id, historyID string) (models.Bookmark, error)
}

type ChatbotAPI interface {
	SendMessage(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error)
	ListChatSessions(ctx context.Context, p models.PageParams) (Page[models.ChatSession], error)
	GetChatSession(ctx context.Context, id string) (models.ChatSession, error)
	ListChatMessages(ctx context.Context, id string, p models.PageParams) (Page[models.ChatMessage], error)
	DeleteChatSession(ctx context.Context, id string) error
}

// HTTPClient binds the backend endpoints to a Gateway.
type HTTPClient struct {
	gw *Gateway
}

var (
	_ AuthAPI         = (*HTTPClient)(nil)
	_ EmergingTechAPI = (*HTTPClient)(nil)
	_ BookmarkAPI     = (*HTTPClient)(nil)
	_ ChatbotAPI      = (*HTTPClient)(nil)
)

func NewHTTPClient(gw *Gateway) *HTTPClient {
	return &HTTPClient{gw: gw}
}

func path(base string, segments ...string) string {
	p := base
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}

func get(p string, q *models.Query) Request {
	r := Request{Method: http.MethodGet, Path: p}
	if q != nil {
		r.Query = q.Values()
	}
	return r
}

func call[T any](ctx context.Context, c *HTTPClient, r Request) (T, error) {
	resp, err := c.gw.Do(ctx, r)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](resp, c.gw.messages)
}

func callPublic[T any](ctx context.Context, c *HTTPClient, r Request) (T, error) {
	resp, err := c.gw.DoPublic(ctx, r)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](resp, c.gw.messages)
}

func callVoid(ctx context.Context, c *HTTPClient, r Request, public bool) error {
	do := c.gw.Do
	if public {
		do = c.gw.DoPublic
	}
	resp, err := do(ctx, r)
	if err != nil {
		return err
	}
	return DecodeVoid(resp, c.gw.messages)
}

func callPage[T any, S pageShape[T]](ctx context.Context, c *HTTPClient, r Request, public bool) (Page[T], error) {
	do := c.gw.Do
	if public {
		do = c.gw.DoPublic
	}
	resp, err := do(ctx, r)
	if err != nil {
		return Page[T]{}, err
	}
	return DecodePage[T, S](resp, c.gw.messages)
}
