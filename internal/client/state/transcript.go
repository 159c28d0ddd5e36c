package state

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/logging"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Viewport is the scrollable area the transcript is rendered into.
type Viewport interface {
	ScrollHeight() int
	ScrollTop() int
	SetScrollTop(top int)
}

type ChatAPI interface {
	SendMessage(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error)
	ListChatMessages(ctx context.Context, id string, p models.PageParams) (client.Page[models.ChatMessage], error)
}

// DisplayMessage is a transcript line. Failed user messages stay visible
// until retried.
type DisplayMessage struct {
	ID        string
	Role      models.Role
	Content   string
	CreatedAt string
	Sources   []models.Source
	Failed    bool
}

type TranscriptView struct {
	ActiveSession   string
	ConversationID  string
	Messages        []DisplayMessage
	Page            int
	HasOlder        bool
	LoadingMessages bool
	LoadingOlder    bool
	Sending         bool
}

// Empty reports whether no conversation is open.
func (v TranscriptView) Empty() bool {
	return v.ActiveSession == "" && v.ConversationID == ""
}

// Transcript is the message window of the active chat session. It shows
// the newest page first and backfills older pages on demand.
type Transcript struct {
	api      ChatAPI
	toasts   *Toasts
	log      logging.Logger
	pageSize int
	now      func() time.Time

	mu               sync.Mutex
	viewport         Viewport
	onSessionCreated func(ctx context.Context, id string)
	active           string
	conversation     string
	messages         []DisplayMessage
	page             int
	hasOlder         bool
	loadingMessages  bool
	loadingOlder     bool
	sending          bool
	failed           map[string]string
	loadingSession   string
	prevScrollHeight int

	// window is bumped whenever the transcript is reset. olderOwner holds
	// the window of the outstanding backfill, or 0 when none is running.
	window     uint64
	olderOwner uint64
}

func NewTranscript(api ChatAPI, toasts *Toasts, pageSize int, log logging.Logger) *Transcript {
	return &Transcript{
		api:      api,
		toasts:   toasts,
		log:      log,
		pageSize: pageSize,
		now:      time.Now,
		page:     1,
		window:   1,
		failed:   make(map[string]string),
	}
}

func (t *Transcript) SetViewport(v Viewport) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.viewport = v
}

// OnSessionCreated registers a callback run when a send starts a new
// conversation, typically to reload the session list.
func (t *Transcript) OnSessionCreated(fn func(ctx context.Context, id string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSessionCreated = fn
}

func (t *Transcript) View() TranscriptView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TranscriptView{
		ActiveSession:   t.active,
		ConversationID:  t.conversation,
		Messages:        append([]DisplayMessage(nil), t.messages...),
		Page:            t.page,
		HasOlder:        t.hasOlder,
		LoadingMessages: t.loadingMessages,
		LoadingOlder:    t.loadingOlder,
		Sending:         t.sending,
	}
}

// resetWindow empties the transcript; callers hold mu.
func (t *Transcript) resetWindow() {
	t.messages = nil
	t.page = 1
	t.hasOlder = false
	t.window++
	t.olderOwner = 0
	t.loadingOlder = false
	t.prevScrollHeight = 0
	clear(t.failed)
}

// Select opens session id and loads its newest messages. Selecting the
// open session does nothing.
func (t *Transcript) Select(ctx context.Context, id string) {
	t.mu.Lock()
	if id == t.active {
		t.mu.Unlock()
		return
	}
	t.active = id
	t.resetWindow()
	t.mu.Unlock()

	t.loadInitial(ctx, id)
}

// NewChat closes the open conversation; the next send starts a new one.
func (t *Transcript) NewChat() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = ""
	t.conversation = ""
	t.loadingSession = ""
	t.resetWindow()
}

// SessionRemoved closes the transcript if id is the open session.
func (t *Transcript) SessionRemoved(id string) {
	t.mu.Lock()
	active := t.active
	t.mu.Unlock()
	if active == id {
		t.NewChat()
	}
}

func (t *Transcript) stale(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loadingSession != id
}

func toDisplay(msgs []models.ChatMessage) []DisplayMessage {
	return lo.Map(msgs, func(m models.ChatMessage, _ int) DisplayMessage {
		return DisplayMessage{
			ID:        m.MessageID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
			Sources:   m.Sources,
		}
	})
}

// loadInitial probes page 1 for the page count and then loads the last
// page. Responses for a session that is no longer being loaded are dropped.
func (t *Transcript) loadInitial(ctx context.Context, id string) {
	t.mu.Lock()
	t.loadingSession = id
	t.loadingMessages = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.loadingMessages = false
		t.mu.Unlock()
	}()

	probe, err := t.api.ListChatMessages(ctx, id, models.PageParams{Page: 1, Size: t.pageSize})
	if t.stale(id) {
		return
	}
	if err != nil {
		t.initialFailed(ctx, id, err)
		return
	}

	if probe.TotalPages <= 1 {
		t.mu.Lock()
		t.messages = toDisplay(probe.Items)
		t.page = 1
		t.hasOlder = false
		t.conversation = id
		t.mu.Unlock()
		return
	}

	last, err := t.api.ListChatMessages(ctx, id, models.PageParams{Page: probe.TotalPages, Size: t.pageSize})
	if t.stale(id) {
		return
	}
	if err != nil {
		t.initialFailed(ctx, id, err)
		return
	}

	t.mu.Lock()
	t.messages = toDisplay(last.Items)
	t.page = last.PageNumber
	t.hasOlder = !last.First
	t.conversation = id
	t.mu.Unlock()
}

func (t *Transcript) initialFailed(ctx context.Context, id string, err error) {
	t.log.Debug(ctx, "load chat messages failed", "sessionId", id, "error", err)
	if isAPIError(err) {
		t.toasts.Error(errorText(err, ""))
	}
	t.mu.Lock()
	t.messages = nil
	t.mu.Unlock()
}

// OnScroll is the scrolled-to-top trigger. It records the content height
// once per backfill cycle and starts LoadOlder.
func (t *Transcript) OnScroll(ctx context.Context) {
	t.mu.Lock()
	vp := t.viewport
	hasOlder, loadingOlder := t.hasOlder, t.loadingOlder
	t.mu.Unlock()

	if vp == nil || vp.ScrollTop() != 0 || !hasOlder || loadingOlder {
		return
	}

	height := vp.ScrollHeight()
	t.mu.Lock()
	if t.prevScrollHeight == 0 {
		t.prevScrollHeight = height
	}
	t.mu.Unlock()

	t.LoadOlder(ctx)
}

// LoadOlder prepends the page before the oldest loaded one. Only one
// backfill runs at a time; extra calls while it is in flight return false.
// A backfill that outlives its window (the session was switched or closed)
// is dropped and leaves the state of the new window alone.
func (t *Transcript) LoadOlder(ctx context.Context) bool {
	t.mu.Lock()
	session, older, window := t.active, t.page-1, t.window
	if session == "" || !t.hasOlder || older < 1 || t.olderOwner != 0 {
		t.mu.Unlock()
		return false
	}
	t.olderOwner = window
	t.loadingOlder = true
	t.mu.Unlock()

	data, err := t.api.ListChatMessages(ctx, session, models.PageParams{Page: older, Size: t.pageSize})

	t.mu.Lock()
	if t.window != window {
		t.mu.Unlock()
		t.log.Debug(ctx, "dropping older messages for a closed window", "sessionId", session, "page", older)
		return true
	}
	t.olderOwner = 0
	t.loadingOlder = false
	if err == nil {
		t.messages = append(toDisplay(data.Items), t.messages...)
		t.page = data.PageNumber
		t.hasOlder = !data.First
	}
	t.mu.Unlock()

	if err != nil {
		t.log.Debug(ctx, "load older messages failed", "sessionId", session, "page", older, "error", err)
		if isAPIError(err) {
			t.toasts.Error(errorText(err, ""))
		}
	}

	t.restoreScroll()
	return true
}

// restoreScroll keeps the previously visible message in place after a
// prepend: top = newHeight - heightBeforeBackfill.
func (t *Transcript) restoreScroll() {
	t.mu.Lock()
	vp, prev := t.viewport, t.prevScrollHeight
	t.prevScrollHeight = 0
	t.mu.Unlock()

	if vp == nil || prev == 0 {
		return
	}
	vp.SetScrollTop(vp.ScrollHeight() - prev)
}

// Send posts text to the open conversation, or starts one. Blank text and
// sends while another is in flight are ignored.
func (t *Transcript) Send(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	t.mu.Lock()
	if t.sending {
		t.mu.Unlock()
		return nil
	}
	t.sending = true
	tempID := "temp_" + uuid.NewString()
	t.messages = append(t.messages, DisplayMessage{
		ID:        tempID,
		Role:      models.RoleUser,
		Content:   trimmed,
		CreatedAt: t.now().UTC().Format(time.RFC3339),
	})
	conversation := t.conversation
	t.mu.Unlock()

	res, err := t.api.SendMessage(ctx, models.ChatRequest{Message: trimmed, ConversationID: conversation})

	t.mu.Lock()
	t.sending = false
	if err != nil {
		t.failed[tempID] = trimmed
		for i := range t.messages {
			if t.messages[i].ID == tempID {
				t.messages[i].Failed = true
			}
		}
		t.mu.Unlock()

		t.log.Debug(ctx, "send message failed", "error", err)
		t.toasts.Error(errorText(err, MsgSendFailed))
		return err
	}

	isNew := conversation == ""
	t.conversation = res.ConversationID
	if isNew {
		t.active = res.ConversationID
	}
	t.messages = append(t.messages, DisplayMessage{
		ID:        "assistant_" + uuid.NewString(),
		Role:      models.RoleAssistant,
		Content:   res.Response,
		CreatedAt: t.now().UTC().Format(time.RFC3339),
		Sources:   res.Sources,
	})
	cb := t.onSessionCreated
	t.mu.Unlock()

	if isNew && cb != nil {
		cb(ctx, res.ConversationID)
	}
	return nil
}

// Retry removes the failed message id and sends its text again.
func (t *Transcript) Retry(ctx context.Context, id string) error {
	t.mu.Lock()
	text, ok := t.failed[id]
	if !ok {
		t.mu.Unlock()
		return nil
	}
	delete(t.failed, id)
	t.messages = lo.Reject(t.messages, func(m DisplayMessage, _ int) bool { return m.ID == id })
	t.mu.Unlock()

	return t.Send(ctx, text)
}

// FailedIDs lists the messages that can be retried.
func (t *Transcript) FailedIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return lo.Keys(t.failed)
}
