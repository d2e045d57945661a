package internal

import (
	"fmt"
	"time"
)

// Transcript is a session flattened for export
type Transcript struct {
	ID        string              `json:"id" yaml:"id"`
	Title     string              `json:"title" yaml:"title"`
	Directory string              `json:"directory,omitempty" yaml:"directory,omitempty"`
	CreatedAt string              `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt string              `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	Messages  []TranscriptMessage `json:"messages" yaml:"messages"`
}

// TranscriptMessage is one displayable message of a transcript
type TranscriptMessage struct {
	ID        string `json:"id" yaml:"id"`
	Role      string `json:"role" yaml:"role"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Model     string `json:"model,omitempty" yaml:"model,omitempty"`
	Content   string `json:"content" yaml:"content"`
}

// Normalizer converts a session and its history into a Transcript
type Normalizer struct{}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize builds a transcript, skipping messages with no displayable text
func (n *Normalizer) Normalize(session *Session, messages []ChatMessage) (*Transcript, error) {
	if session == nil {
		return nil, fmt.Errorf("session is nil")
	}

	t := &Transcript{
		ID:        session.ID,
		Title:     session.DisplayTitle(),
		Directory: session.Directory,
		CreatedAt: formatTimestamp(session.CreatedAt()),
		UpdatedAt: formatTimestamp(session.UpdatedAt()),
		Messages:  make([]TranscriptMessage, 0, len(messages)),
	}

	for _, msg := range DisplayableMessages(messages) {
		t.Messages = append(t.Messages, n.normalizeMessage(msg))
	}
	return t, nil
}

func (n *Normalizer) normalizeMessage(msg ChatMessage) TranscriptMessage {
	out := TranscriptMessage{
		ID:        msg.Info.ID,
		Role:      string(msg.Info.Role),
		Timestamp: formatTimestamp(msg.CreatedAt()),
		Content:   msg.Content(),
	}
	if msg.Info.ProviderID != "" && msg.Info.ModelID != "" {
		out.Model = ModelRef{ProviderID: msg.Info.ProviderID, ModelID: msg.Info.ModelID}.String()
	}
	return out
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
