package internal

import (
	"time"
)

// CreateTestSession creates a test session with sample data
func CreateTestSession(id, title string) *Session {
	now := time.Now().UnixMilli()
	return &Session{
		ID:        id,
		Slug:      "test-" + id,
		Directory: "/home/dev/projects/test-workspace",
		Title:     &title,
		Time:      SessionTime{Created: now, Updated: now},
	}
}

// CreateTestMessage creates a server message with a single text part
func CreateTestMessage(id, sessionID string, role Role, text string, created time.Time) ChatMessage {
	return ChatMessage{
		Info: MessageInfo{
			ID:        id,
			SessionID: sessionID,
			Role:      role,
			Time:      MessageTime{Created: created.UnixMilli()},
		},
		Parts: []Part{{
			ID:        "part-" + id,
			SessionID: sessionID,
			MessageID: id,
			Type:      PartText,
			Text:      text,
		}},
	}
}

// CreateTestProvider creates a provider from its models, keeping their order
func CreateTestProvider(id, name string, models ...Model) Provider {
	p := Provider{ID: id, Name: name, Models: make(map[string]Model, len(models))}
	for _, m := range models {
		if m.ProviderID == "" {
			m.ProviderID = id
		}
		p.Models[m.ID] = m
		p.order = append(p.order, m.ID)
	}
	return p
}

// CreateTestModel creates a model with the given status
func CreateTestModel(id, name, status string) Model {
	return Model{ID: id, Name: name, Family: "test", Status: status}
}

// CreateTestProviders creates an OpenAI and an Anthropic provider with one active model each
func CreateTestProviders() []Provider {
	return []Provider{
		CreateTestProvider("openai", "OpenAI", CreateTestModel("a", "gpt-4", ModelStatusActive)),
		CreateTestProvider("anthropic", "Anthropic", CreateTestModel("b", "claude-3", ModelStatusActive)),
	}
}
