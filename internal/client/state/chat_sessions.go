package state

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/logging"
	"github.com/samber/lo"
)

type SessionLister interface {
	ListChatSessions(ctx context.Context, p models.PageParams) (client.Page[models.ChatSession], error)
	DeleteChatSession(ctx context.Context, id string) error
}

// ChatSessions is the sidebar list of conversations, grown page by page.
type ChatSessions struct {
	api    SessionLister
	toasts *Toasts
	log    logging.Logger
	size   int

	mu        sync.Mutex
	sessions  []models.ChatSession
	meta      *client.Page[models.ChatSession]
	loading   bool
	onRemoved func(id string)
}

func NewChatSessions(api SessionLister, toasts *Toasts, pageSize int, log logging.Logger) *ChatSessions {
	return &ChatSessions{api: api, toasts: toasts, size: pageSize, log: log}
}

// Load replaces the list with the first page.
func (c *ChatSessions) Load(ctx context.Context) {
	c.load(ctx, 1, false)
}

// LoadMore appends the next page. It reports false when already on the
// last page or nothing has been loaded yet.
func (c *ChatSessions) LoadMore(ctx context.Context) bool {
	c.mu.Lock()
	meta := c.meta
	c.mu.Unlock()

	if meta == nil || meta.Last {
		return false
	}
	c.load(ctx, meta.PageNumber+1, true)
	return true
}

func (c *ChatSessions) load(ctx context.Context, page int, appendPage bool) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	result, err := c.api.ListChatSessions(ctx, models.PageParams{Page: page, Size: c.size})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.log.Debug(ctx, "list chat sessions failed", "page", page, "error", err)
		if !appendPage {
			c.sessions = nil
		}
		return
	}

	if appendPage {
		c.sessions = append(c.sessions, result.Items...)
	} else {
		c.sessions = result.Items
	}
	c.meta = &result
}

func (c *ChatSessions) Sessions() []models.ChatSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ChatSession(nil), c.sessions...)
}

func (c *ChatSessions) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meta != nil && !c.meta.Last
}

func (c *ChatSessions) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// OnRemoved registers a callback run after a session is deleted.
func (c *ChatSessions) OnRemoved(fn func(id string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRemoved = fn
}

func (c *ChatSessions) Remove(ctx context.Context, id string) error {
	if err := c.api.DeleteChatSession(ctx, id); err != nil {
		c.log.Debug(ctx, "delete chat session failed", "sessionId", id, "error", err)
		c.toasts.Error(errorText(err, MsgConversationFailed))
		return err
	}

	c.mu.Lock()
	c.sessions = lo.Reject(c.sessions, func(s models.ChatSession, _ int) bool {
		return s.SessionID == id
	})
	cb := c.onRemoved
	c.mu.Unlock()

	c.toasts.Success(MsgConversationDeleted)
	if cb != nil {
		cb(id)
	}
	return nil
}
