package internal

import "context"

// SendRequest is a user turn to submit to a session.
// Model is nil when no provider/model routing should be sent.
type SendRequest struct {
	SessionID string
	Text      string
	Model     *ModelRef
}

// ChatService is the remote session/chat API the coordinator drives
type ChatService interface {
	ListSessions(ctx context.Context) ([]Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	CreateSession(ctx context.Context, title string) (*Session, error)
	DeleteSession(ctx context.Context, id string) (bool, error)
	ListMessages(ctx context.Context, sessionID string) ([]ChatMessage, error)
	SendMessage(ctx context.Context, req SendRequest) (*ChatMessage, error)
	ListProviders(ctx context.Context) (*ProvidersResponse, error)
}
