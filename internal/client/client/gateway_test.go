package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestGateway_AttachesBearerAndContentType(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/echo", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer a1", req.Header.Get("Authorization"))
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		writeData(w, http.StatusOK, nil)
	})
	r.Get("/echo", func(w http.ResponseWriter, req *http.Request) {
		assert.Empty(t, req.Header.Get("Content-Type"))
		assert.Empty(t, req.Header.Get("Authorization"))
		writeData(w, http.StatusOK, nil)
	})
	srv := newServer(t, r)

	gw := NewGateway(srv.URL, &memTokens{access: "a1", refresh: "r1"})

	resp, err := gw.Do(context.Background(), Request{Method: http.MethodPost, Path: "/echo", Body: map[string]string{"k": "v"}})
	require.NoError(t, err)
	require.NoError(t, DecodeVoid(resp, nil))

	resp, err = gw.DoPublic(context.Background(), Request{Method: http.MethodGet, Path: "/echo"})
	require.NoError(t, err)
	require.NoError(t, DecodeVoid(resp, nil))
}

func TestGateway_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	const callers = 5

	var unauthorized, refreshes atomic.Int32
	r := chi.NewRouter()
	r.Get("/api/v1/bookmark", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer a2" {
			unauthorized.Add(1)
			writeFail(w, http.StatusUnauthorized, "TOKEN_EXPIRED")
			return
		}
		writeData(w, http.StatusOK, map[string]any{"data": map[string]any{"pageNumber": 1, "pageSize": 10, "totalPageNumber": 1, "totalSize": 0, "list": []any{}}})
	})
	r.Post("/api/v1/auth/refresh", func(w http.ResponseWriter, req *http.Request) {
		refreshes.Add(1)
		var body models.RefreshTokenRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "r1", body.RefreshToken)

		// hold the refresh open until every caller has seen its 401
		deadline := time.Now().Add(2 * time.Second)
		for unauthorized.Load() < callers && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		time.Sleep(50 * time.Millisecond)
		writeData(w, http.StatusOK, models.TokenPair{AccessToken: "a2", RefreshToken: "r2"})
	})
	srv := newServer(t, r)

	tokens := &memTokens{access: "a1", refresh: "r1"}
	api := NewHTTPClient(NewGateway(srv.URL, tokens))

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = api.ListBookmarks(context.Background(), models.BookmarkListParams{Page: 1, Size: 10})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, "a2", tokens.AccessToken())
	assert.Equal(t, "r2", tokens.RefreshToken())
	assert.Equal(t, 1, tokens.sets)
}

func TestGateway_RetryReplaysBody(t *testing.T) {
	var bodies []string
	var mu sync.Mutex
	r := chi.NewRouter()
	r.Post("/api/v1/chatbot", func(w http.ResponseWriter, req *http.Request) {
		b, _ := io.ReadAll(req.Body)
		mu.Lock()
		bodies = append(bodies, string(b))
		mu.Unlock()
		if req.Header.Get("Authorization") != "Bearer a2" {
			writeFail(w, http.StatusUnauthorized, "TOKEN_EXPIRED")
			return
		}
		writeData(w, http.StatusOK, models.ChatResponse{Response: "hi", ConversationID: "s1"})
	})
	r.Post("/api/v1/auth/refresh", func(w http.ResponseWriter, req *http.Request) {
		writeData(w, http.StatusOK, models.TokenPair{AccessToken: "a2", RefreshToken: "r2"})
	})
	srv := newServer(t, r)

	api := NewHTTPClient(NewGateway(srv.URL, &memTokens{access: "a1", refresh: "r1"}))
	resp, err := api.SendMessage(context.Background(), models.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.ConversationID)

	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
	assert.JSONEq(t, `{"message":"hello"}`, bodies[1])
}

func TestGateway_RefreshFailureExpiresSession(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/chatbot/sessions", func(w http.ResponseWriter, req *http.Request) {
		writeFail(w, http.StatusUnauthorized, "TOKEN_EXPIRED")
	})
	r.Post("/api/v1/auth/refresh", func(w http.ResponseWriter, req *http.Request) {
		writeFail(w, http.StatusUnauthorized, "INVALID_TOKEN")
	})
	srv := newServer(t, r)

	tokens := &memTokens{access: "a1", refresh: "r1"}
	gw := NewGateway(srv.URL, tokens)
	var expired atomic.Int32
	gw.OnSessionExpired(func() { expired.Add(1) })

	_, err := NewHTTPClient(gw).ListChatSessions(context.Background(), models.PageParams{Page: 0, Size: 20})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.ErrorIs(t, err, ErrRefreshFailed)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Session expired. Please sign in again.", err.Error())

	assert.Equal(t, int32(1), expired.Load())
	assert.Equal(t, 1, tokens.cleared)
	assert.Empty(t, tokens.AccessToken())
}

func TestGateway_MissingRefreshToken(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/api/v1/bookmark/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeFail(w, http.StatusUnauthorized, "TOKEN_EXPIRED")
	})
	srv := newServer(t, r)

	tokens := &memTokens{access: "a1"}
	err := NewHTTPClient(NewGateway(srv.URL, tokens)).DeleteBookmark(context.Background(), "b1")
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.ErrorIs(t, err, ErrNoRefreshToken)
	assert.Equal(t, 1, tokens.cleared)
}

func TestGateway_NoTokenMeansNoRefresh(t *testing.T) {
	var refreshes atomic.Int32
	r := chi.NewRouter()
	r.Get("/api/v1/bookmark/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeFail(w, http.StatusUnauthorized, "AUTH_FAILED")
	})
	r.Post("/api/v1/auth/refresh", func(w http.ResponseWriter, req *http.Request) {
		refreshes.Add(1)
	})
	srv := newServer(t, r)

	tokens := &memTokens{refresh: "r1"}
	_, err := NewHTTPClient(NewGateway(srv.URL, tokens)).GetBookmark(context.Background(), "b1")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "AUTH_FAILED", apiErr.Code)
	assert.Equal(t, "Authentication failed.", apiErr.Message)
	assert.False(t, errors.Is(err, ErrSessionExpired))
	assert.Zero(t, refreshes.Load())
	assert.Zero(t, tokens.cleared)
}

func TestGateway_TransportErrorIsUnavailable(t *testing.T) {
	srv := newServer(t, chi.NewRouter())
	srv.Close()

	_, err := NewGateway(srv.URL, &memTokens{}).DoPublic(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGateway_RateLimiterHonorsContext(t *testing.T) {
	srv := newServer(t, chi.NewRouter())

	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, limiter.Allow())

	gw := NewGateway(srv.URL, &memTokens{}, WithRateLimiter(limiter))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := gw.DoPublic(ctx, Request{Method: http.MethodGet, Path: "/x"})
	require.Error(t, err)
}
