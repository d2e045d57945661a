package internal

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// PartType identifies the kind of fragment a message part carries
type PartType string

const (
	PartText       PartType = "text"
	PartReasoning  PartType = "reasoning"
	PartStepStart  PartType = "step-start"
	PartStepFinish PartType = "step-finish"
	PartImage      PartType = "image"
	PartToolCall   PartType = "tool-call"
	PartToolResult PartType = "tool-result"
)

// localIDPrefix marks identifiers synthesized by the client
const localIDPrefix = "local-"

// SessionTime holds session timestamps in epoch milliseconds
type SessionTime struct {
	Created int64 `json:"created"`
	Updated int64 `json:"updated"`
}

// Session represents a conversation thread owned by the server
type Session struct {
	ID        string      `json:"id"`
	Slug      string      `json:"slug,omitempty"`
	Version   string      `json:"version,omitempty"`
	ProjectID string      `json:"projectID,omitempty"`
	Directory string      `json:"directory"`
	Title     *string     `json:"title"`
	Time      SessionTime `json:"time"`
}

// DisplayTitle returns the title or a placeholder for untitled sessions
func (s *Session) DisplayTitle() string {
	if s.Title == nil || strings.TrimSpace(*s.Title) == "" {
		return "Untitled Session"
	}
	return *s.Title
}

// DirectoryName returns the last element of the working directory
func (s *Session) DirectoryName() string {
	if s.Directory == "" {
		return ""
	}
	return filepath.Base(s.Directory)
}

// CreatedAt returns the creation time
func (s *Session) CreatedAt() time.Time {
	return millisToTime(s.Time.Created)
}

// UpdatedAt returns the last activity time, falling back to creation time
func (s *Session) UpdatedAt() time.Time {
	if s.Time.Updated == 0 {
		return s.CreatedAt()
	}
	return millisToTime(s.Time.Updated)
}

// MessageTime holds message timestamps in epoch milliseconds
type MessageTime struct {
	Created   int64 `json:"created"`
	Completed int64 `json:"completed,omitempty"`
}

// CacheTokens counts cache reads and writes
type CacheTokens struct {
	Read  int64 `json:"read"`
	Write int64 `json:"write"`
}

// TokenUsage reports the tokens an assistant turn consumed
type TokenUsage struct {
	Input     int64       `json:"input"`
	Output    int64       `json:"output"`
	Reasoning int64       `json:"reasoning"`
	Cache     CacheTokens `json:"cache"`
}

// MessagePath is the working location the server ran a turn in
type MessagePath struct {
	Cwd  string `json:"cwd"`
	Root string `json:"root"`
}

// MessageInfo is the metadata half of a message
type MessageInfo struct {
	ID         string       `json:"id"`
	SessionID  string       `json:"sessionID"`
	Role       Role         `json:"role"`
	Time       MessageTime  `json:"time"`
	ParentID   string       `json:"parentID,omitempty"`
	ModelID    string       `json:"modelID,omitempty"`
	ProviderID string       `json:"providerID,omitempty"`
	Mode       string       `json:"mode,omitempty"`
	Agent      string       `json:"agent,omitempty"`
	Path       *MessagePath `json:"path,omitempty"`
	Cost       float64      `json:"cost,omitempty"`
	Tokens     *TokenUsage  `json:"tokens,omitempty"`
	Finish     string       `json:"finish,omitempty"`
}

// PartTime bounds the time a part was produced in
type PartTime struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Part is a typed fragment of a message
type Part struct {
	ID        string         `json:"id"`
	SessionID string         `json:"sessionID"`
	MessageID string         `json:"messageID"`
	Type      PartType       `json:"type"`
	Text      string         `json:"text,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Time      *PartTime      `json:"time,omitempty"`
}

// Origin records whether a message came from the server or was synthesized locally
type Origin int

const (
	OriginServer Origin = iota
	OriginLocal
)

func (o Origin) String() string {
	if o == OriginLocal {
		return "local"
	}
	return "server"
}

// ChatMessage is one turn of a session: its info plus ordered parts.
// Origin is never serialized; decoded messages are server-confirmed.
type ChatMessage struct {
	Info   MessageInfo `json:"info"`
	Parts  []Part      `json:"parts"`
	Origin Origin      `json:"-"`
}

// NewLocalMessage builds the optimistic user message shown before the server replies
func NewLocalMessage(sessionID, content string, now time.Time) ChatMessage {
	messageID := localIDPrefix + uuid.NewString()
	return ChatMessage{
		Info: MessageInfo{
			ID:        messageID,
			SessionID: sessionID,
			Role:      RoleUser,
			Time:      MessageTime{Created: now.UnixMilli()},
		},
		Parts: []Part{{
			ID:        localIDPrefix + "part-" + uuid.NewString(),
			SessionID: sessionID,
			MessageID: messageID,
			Type:      PartText,
			Text:      content,
		}},
		Origin: OriginLocal,
	}
}

// IsLocal reports whether the message was synthesized by the client
func (m ChatMessage) IsLocal() bool {
	return m.Origin == OriginLocal
}

// Content returns the text shown for the message
func (m ChatMessage) Content() string {
	return FormatMessageText(m.Parts)
}

// CreatedAt returns the creation time
func (m ChatMessage) CreatedAt() time.Time {
	return millisToTime(m.Info.Time.Created)
}

func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
