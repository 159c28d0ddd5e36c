package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/go-chi/chi/v5"
)

type memTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared int
	sets    int
}

func (m *memTokens) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access
}

func (m *memTokens) RefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh
}

func (m *memTokens) SetTokens(_ context.Context, p models.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = p.AccessToken, p.RefreshToken
	m.sets++
	return nil
}

func (m *memTokens) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	m.cleared++
	return nil
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":        "2000",
		"messageCode": map[string]string{"code": "SUCCESS", "text": "ok"},
		"data":        data,
	})
}

func writeFail(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":        "4000",
		"messageCode": map[string]string{"code": code, "text": "backend text"},
	})
}

func newServer(t *testing.T, r chi.Router) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}
