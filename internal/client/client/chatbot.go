package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/technai/internal/client/models"
)

const chatbotBase = "/api/v1/chatbot"

func (c *HTTPClient) SendMessage(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	return call[models.ChatResponse](ctx, c, Request{Method: http.MethodPost, Path: chatbotBase, Body: req})
}

func (c *HTTPClient) ListChatSessions(ctx context.Context, p models.PageParams) (Page[models.ChatSession], error) {
	return callPage[models.ChatSession, SpringPage[models.ChatSession]](ctx, c, get(chatbotBase+"/sessions", p.Query()), false)
}

func (c *HTTPClient) GetChatSession(ctx context.Context, id string) (models.ChatSession, error) {
	return call[models.ChatSession](ctx, c, get(path(chatbotBase+"/sessions", id), nil))
}

func (c *HTTPClient) ListChatMessages(ctx context.Context, id string, p models.PageParams) (Page[models.ChatMessage], error) {
	r := get(path(chatbotBase+"/sessions", id, "messages"), p.Query())
	return callPage[models.ChatMessage, SpringPage[models.ChatMessage]](ctx, c, r, false)
}

func (c *HTTPClient) DeleteChatSession(ctx context.Context, id string) error {
	return callVoid(ctx, c, Request{Method: http.MethodDelete, Path: path(chatbotBase+"/sessions", id)}, false)
}
