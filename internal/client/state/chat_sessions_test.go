package state

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/logging"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionIDs(s []models.ChatSession) []string {
	return lo.Map(s, func(cs models.ChatSession, _ int) string { return cs.SessionID })
}

func newSessionsAPI(n int) *fakeChatAPI {
	api := newFakeChatAPI()
	for i := 1; i <= n; i++ {
		api.sessions = append(api.sessions, models.ChatSession{SessionID: fmt.Sprintf("s%d", i)})
	}
	return api
}

func TestChatSessions_LoadMore(t *testing.T) {
	api := newSessionsAPI(5)
	c := NewChatSessions(api, NewToasts(0), 2, logging.Nop())
	ctx := context.Background()

	assert.False(t, c.LoadMore(ctx))

	c.Load(ctx)
	assert.Equal(t, []string{"s1", "s2"}, sessionIDs(c.Sessions()))
	assert.True(t, c.HasMore())

	require.True(t, c.LoadMore(ctx))
	require.True(t, c.LoadMore(ctx))
	assert.Equal(t, []string{"s1", "s2", "s3", "s4", "s5"}, sessionIDs(c.Sessions()))
	assert.False(t, c.HasMore())
	assert.False(t, c.LoadMore(ctx))

	c.Load(ctx)
	assert.Equal(t, []string{"s1", "s2"}, sessionIDs(c.Sessions()))
	assert.False(t, c.Loading())
}

func TestChatSessions_Remove(t *testing.T) {
	api := newSessionsAPI(3)
	toasts := NewToasts(0)
	c := NewChatSessions(api, toasts, 10, logging.Nop())
	ctx := context.Background()
	c.Load(ctx)

	var removed []string
	c.OnRemoved(func(id string) { removed = append(removed, id) })

	require.NoError(t, c.Remove(ctx, "s2"))
	assert.Equal(t, []string{"s1", "s3"}, sessionIDs(c.Sessions()))
	assert.Equal(t, []string{"s2"}, removed)
	assert.Equal(t, Toast{ID: 1, Message: MsgConversationDeleted, Kind: ToastSuccess}, lastToast(t, toasts))

	require.Error(t, c.Remove(ctx, "s2"))
	assert.Equal(t, []string{"s2"}, removed)
	assert.Equal(t, Toast{ID: 2, Message: "Resource not found.", Kind: ToastError}, lastToast(t, toasts))
}

func TestChatSessions_RemoveClosesTranscript(t *testing.T) {
	api := newSessionsAPI(2)
	api.seed("s1", 3, 10)
	toasts := NewToasts(0)
	ctx := context.Background()

	sessions := NewChatSessions(api, toasts, 10, logging.Nop())
	transcript := NewTranscript(api, toasts, 10, logging.Nop())
	sessions.OnRemoved(transcript.SessionRemoved)

	sessions.Load(ctx)
	transcript.Select(ctx, "s1")
	require.Len(t, transcript.View().Messages, 3)

	require.NoError(t, sessions.Remove(ctx, "s2"))
	assert.Equal(t, "s1", transcript.View().ActiveSession)

	require.NoError(t, sessions.Remove(ctx, "s1"))
	assert.True(t, transcript.View().Empty())
	assert.Empty(t, transcript.View().Messages)
}
