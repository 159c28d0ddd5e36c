package models

type Role string

const (
	RoleUser      Role = "USER"
	RoleAssistant Role = "ASSISTANT"
)

type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

type ChatResponse struct {
	Response       string   `json:"response"`
	ConversationID string   `json:"conversationId"`
	Sources        []Source `json:"sources,omitempty"`
}

// Source is a retrieval citation attached to an assistant reply.
type Source struct {
	DocumentID     string  `json:"documentId,omitempty"`
	CollectionType string  `json:"collectionType,omitempty"`
	Score          float64 `json:"score,omitempty"`
	Title          string  `json:"title,omitempty"`
	URL            string  `json:"url,omitempty"`
}

type ChatSession struct {
	SessionID     string `json:"sessionId"`
	Title         string `json:"title,omitempty"`
	CreatedAt     string `json:"createdAt"`
	LastMessageAt string `json:"lastMessageAt,omitempty"`
	IsActive      bool   `json:"isActive"`
}

type ChatMessage struct {
	MessageID      string   `json:"messageId"`
	SessionID      string   `json:"sessionId"`
	Role           Role     `json:"role"`
	Content        string   `json:"content"`
	TokenCount     int      `json:"tokenCount,omitempty"`
	SequenceNumber int64    `json:"sequenceNumber"`
	CreatedAt      string   `json:"createdAt"`
	Sources        []Source `json:"sources,omitempty"`
}

type PageParams struct {
	Page int
	Size int
}

func (p PageParams) Query() *Query {
	return NewQuery().Int("page", p.Page).Int("size", p.Size)
}
