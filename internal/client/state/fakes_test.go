package state

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/client/models"
)

func apiErr(status int, code, msg string) error {
	return &client.APIError{Status: status, Code: code, Message: msg}
}

func pageOf[T any](items []T, page, size int, total int64) client.Page[T] {
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return client.Page[T]{
		Items:      items,
		PageNumber: page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: pages,
		First:      page <= 1,
		Last:       page >= pages,
	}
}

// ---- emerging tech ----

type fakeTechAPI struct {
	mu          sync.Mutex
	listCalls   []models.EmergingTechListParams
	searchCalls []models.EmergingTechSearchParams
	total       int64
	err         error
}

func (f *fakeTechAPI) ListEmergingTech(_ context.Context, p models.EmergingTechListParams) (client.Page[models.EmergingTechItem], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, p)
	if f.err != nil {
		return client.Page[models.EmergingTechItem]{}, f.err
	}
	items := []models.EmergingTechItem{{ID: fmt.Sprintf("e%d", p.Page)}}
	return pageOf(items, p.Page, p.Size, f.total), nil
}

func (f *fakeTechAPI) SearchEmergingTech(_ context.Context, p models.EmergingTechSearchParams) (client.Page[models.EmergingTechItem], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls = append(f.searchCalls, p)
	if f.err != nil {
		return client.Page[models.EmergingTechItem]{}, f.err
	}
	return pageOf([]models.EmergingTechItem{{ID: "s1", Title: p.Q}}, p.Page, p.Size, 1), nil
}

func (f *fakeTechAPI) GetEmergingTech(_ context.Context, id string) (models.EmergingTechItem, error) {
	return models.EmergingTechItem{ID: id}, nil
}

func (f *fakeTechAPI) lastList() models.EmergingTechListParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls[len(f.listCalls)-1]
}

// ---- bookmarks ----

// memBookmarks is an in-memory bookmark backend with soft delete.
type memBookmarks struct {
	mu       sync.Mutex
	next     int
	live     map[string]models.Bookmark
	deleted  map[string]models.Bookmark
	byTech   map[string]string
	failNext error

	createGate chan struct{}
	creates    atomic.Int32
	lastUpdate models.BookmarkUpdateRequest
	lastSearch models.BookmarkSearchParams
	lastList   models.BookmarkListParams
	lastDays   int
	history    []models.BookmarkHistoryEntry
}

func newMemBookmarks() *memBookmarks {
	return &memBookmarks{
		live:    make(map[string]models.Bookmark),
		deleted: make(map[string]models.Bookmark),
		byTech:  make(map[string]string),
	}
}

func (m *memBookmarks) takeErr() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *memBookmarks) CreateBookmark(_ context.Context, req models.BookmarkCreateRequest) (models.Bookmark, error) {
	m.creates.Add(1)
	if m.createGate != nil {
		<-m.createGate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return models.Bookmark{}, err
	}
	if _, ok := m.byTech[req.EmergingTechID]; ok {
		return models.Bookmark{}, apiErr(http.StatusConflict, client.CodeBookmarkAlreadyExists, "Conflict. This resource already exists.")
	}
	m.next++
	b := models.Bookmark{BookmarkTsid: fmt.Sprintf("b%d", m.next), EmergingTechID: req.EmergingTechID}
	m.live[b.BookmarkTsid] = b
	m.byTech[req.EmergingTechID] = b.BookmarkTsid
	return b, nil
}

func (m *memBookmarks) list(src map[string]models.Bookmark, page, size int) client.Page[models.Bookmark] {
	items := make([]models.Bookmark, 0, len(src))
	for i := 1; i <= m.next; i++ {
		if b, ok := src[fmt.Sprintf("b%d", i)]; ok {
			items = append(items, b)
		}
	}
	total := int64(len(items))
	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))
	return pageOf(items[start:end], page, size, total)
}

func (m *memBookmarks) ListBookmarks(_ context.Context, p models.BookmarkListParams) (client.Page[models.Bookmark], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastList = p
	if err := m.takeErr(); err != nil {
		return client.Page[models.Bookmark]{}, err
	}
	return m.list(m.live, p.Page, p.Size), nil
}

func (m *memBookmarks) GetBookmark(_ context.Context, id string) (models.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.live[id]
	if !ok {
		return models.Bookmark{}, apiErr(http.StatusNotFound, "", "Resource not found.")
	}
	return b, nil
}

func (m *memBookmarks) UpdateBookmark(_ context.Context, id string, req models.BookmarkUpdateRequest) (models.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUpdate = req
	if err := m.takeErr(); err != nil {
		return models.Bookmark{}, err
	}
	b := m.live[id]
	b.Tags, b.Memo = req.Tags, req.Memo
	m.live[id] = b
	return b, nil
}

func (m *memBookmarks) DeleteBookmark(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return err
	}
	b, ok := m.live[id]
	if !ok {
		return apiErr(http.StatusNotFound, "", "Resource not found.")
	}
	delete(m.live, id)
	delete(m.byTech, b.EmergingTechID)
	m.deleted[id] = b
	return nil
}

func (m *memBookmarks) ListDeletedBookmarks(_ context.Context, p models.BookmarkDeletedParams) (client.Page[models.Bookmark], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastDays = p.Days
	return m.list(m.deleted, p.Page, p.Size), nil
}

func (m *memBookmarks) RestoreBookmark(_ context.Context, id string) (models.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.deleted[id]
	if !ok {
		return models.Bookmark{}, apiErr(http.StatusNotFound, "", "Resource not found.")
	}
	delete(m.deleted, id)
	m.live[id] = b
	m.byTech[b.EmergingTechID] = id
	return b, nil
}

func (m *memBookmarks) SearchBookmarks(_ context.Context, p models.BookmarkSearchParams) (client.Page[models.Bookmark], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSearch = p
	return pageOf([]models.Bookmark{}, p.Page, p.Size, 0), nil
}

func (m *memBookmarks) BookmarkHistory(_ context.Context, id string, p models.BookmarkHistoryParams) (client.Page[models.BookmarkHistoryEntry], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return client.Page[models.BookmarkHistoryEntry]{}, err
	}
	return pageOf(m.history, p.Page, p.Size, int64(len(m.history))), nil
}

func (m *memBookmarks) BookmarkAt(_ context.Context, id, timestamp string) (models.BookmarkHistoryEntry, error) {
	return models.BookmarkHistoryEntry{HistoryID: "h-at", EntityID: id, ChangedAt: timestamp}, nil
}

func (m *memBookmarks) RestoreBookmarkVersion(_ context.Context, id, historyID string) (models.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return models.Bookmark{}, err
	}
	return m.live[id], nil
}

// ---- chat ----

type msgCall struct {
	session string
	page    int
}

type fakeChatAPI struct {
	mu       sync.Mutex
	pages    map[string][][]models.ChatMessage
	calls    []msgCall
	gates    map[msgCall]chan struct{}
	sendErr  error
	sendGate chan struct{}
	sendResp models.ChatResponse
	sends    []models.ChatRequest
	sessions []models.ChatSession
}

func newFakeChatAPI() *fakeChatAPI {
	return &fakeChatAPI{pages: make(map[string][][]models.ChatMessage), gates: make(map[msgCall]chan struct{})}
}

// seed gives session id n messages split into pages of size.
func (f *fakeChatAPI) seed(id string, n, size int) {
	var pages [][]models.ChatMessage
	for i := 0; i < n; i += size {
		var page []models.ChatMessage
		for j := i; j < min(i+size, n); j++ {
			page = append(page, models.ChatMessage{MessageID: fmt.Sprintf("%s-m%d", id, j+1), SessionID: id, Role: models.RoleUser})
		}
		pages = append(pages, page)
	}
	f.pages[id] = pages
}

func (f *fakeChatAPI) gate(id string, page int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[msgCall{id, page}] = ch
	return ch
}

func (f *fakeChatAPI) ListChatMessages(_ context.Context, id string, p models.PageParams) (client.Page[models.ChatMessage], error) {
	f.mu.Lock()
	call := msgCall{id, p.Page}
	f.calls = append(f.calls, call)
	gate := f.gates[call]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	pages := f.pages[id]
	total := 0
	for _, pg := range pages {
		total += len(pg)
	}
	var items []models.ChatMessage
	if p.Page >= 1 && p.Page <= len(pages) {
		items = pages[p.Page-1]
	}
	return client.Page[models.ChatMessage]{
		Items:      items,
		PageNumber: p.Page,
		PageSize:   p.Size,
		TotalCount: int64(total),
		TotalPages: len(pages),
		First:      p.Page <= 1,
		Last:       p.Page >= len(pages),
	}, nil
}

func (f *fakeChatAPI) SendMessage(_ context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	f.mu.Lock()
	gate := f.sendGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, req)
	if f.sendErr != nil {
		return models.ChatResponse{}, f.sendErr
	}
	return f.sendResp, nil
}

func (f *fakeChatAPI) ListChatSessions(_ context.Context, p models.PageParams) (client.Page[models.ChatSession], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	start := min((p.Page-1)*p.Size, len(f.sessions))
	end := min(start+p.Size, len(f.sessions))
	return pageOf(f.sessions[start:end], p.Page, p.Size, int64(len(f.sessions))), nil
}

func (f *fakeChatAPI) DeleteChatSession(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.sessions {
		if s.SessionID == id {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			return nil
		}
	}
	return apiErr(http.StatusNotFound, "", "Resource not found.")
}

func (f *fakeChatAPI) callCount(c msgCall) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, got := range f.calls {
		if got == c {
			n++
		}
	}
	return n
}
