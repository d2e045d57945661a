package internal

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Titles used when the client creates sessions
const (
	NewChatTitle    = "New Chat"
	NewSessionTitle = "New Session"
)

// User-facing error messages the coordinator surfaces through the store
const (
	ErrMsgLoadSession   = "Failed to load session"
	ErrMsgLoadSessions  = "Failed to load sessions"
	ErrMsgLoadMessages  = "Failed to load messages"
	ErrMsgLoadProviders = "Failed to load providers"
	ErrMsgSendMessage   = "Failed to send message. Please try again."
)

// Coordinator resolves the active session, loads history and the provider
// catalog, and submits messages with an optimistic local echo. Load and send
// failures never escape: they are logged and surfaced through the store's
// error field, and the loading flag is cleared on every exit path.
type Coordinator struct {
	store   *Store
	service ChatService
	now     func() time.Time

	mu        sync.Mutex
	sessionID string
	draft     string
}

// NewCoordinator creates a Coordinator over the store and remote service
func NewCoordinator(store *Store, service ChatService) *Coordinator {
	return &Coordinator{
		store:   store,
		service: service,
		now:     time.Now,
	}
}

// Store returns the store the coordinator mutates
func (c *Coordinator) Store() *Store {
	return c.store
}

// SessionID returns the resolved session id, or "" before resolution
func (c *Coordinator) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Coordinator) setSessionID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = id
}

// SetDraft replaces the input buffer
func (c *Coordinator) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Draft returns the input buffer
func (c *Coordinator) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// ResolveSession uses requestedID, or creates a "New Chat" session when it is
// empty, then loads the session record and its history into the store.
// Partial progress is kept on failure.
func (c *Coordinator) ResolveSession(ctx context.Context, requestedID string) {
	c.store.SetLoading(true)
	defer c.store.SetLoading(false)

	id := strings.TrimSpace(requestedID)
	if id == "" {
		created, err := c.service.CreateSession(ctx, NewChatTitle)
		if err != nil {
			c.fail(ErrMsgLoadSession, "Failed to initialize session: %v", err)
			return
		}
		c.store.AddSession(*created)
		id = created.ID
		LogDebug("Created session %s", id)
	}
	c.setSessionID(id)

	session, err := c.service.GetSession(ctx, id)
	if err != nil {
		c.fail(ErrMsgLoadSession, "Failed to initialize session %s: %v", id, err)
		return
	}
	c.store.SetCurrentSession(session)

	messages, err := c.service.ListMessages(ctx, id)
	if err != nil {
		c.fail(ErrMsgLoadSession, "Failed to load messages for session %s: %v", id, err)
		return
	}
	c.store.SetMessages(messages)
	LogDebug("Loaded %d message(s) for session %s", len(messages), id)
}

// RefreshMessages reloads the history of the resolved session and keeps any
// optimistic messages the server has not echoed yet.
func (c *Coordinator) RefreshMessages(ctx context.Context) {
	id := c.SessionID()
	if id == "" {
		return
	}

	c.store.SetLoading(true)
	defer c.store.SetLoading(false)

	messages, err := c.service.ListMessages(ctx, id)
	if err != nil {
		c.fail(ErrMsgLoadMessages, "Failed to refresh messages for session %s: %v", id, err)
		return
	}
	current := c.store.Snapshot().Messages
	c.store.SetMessages(NewDeduplicator(DefaultEchoWindow).Reconcile(messages, current))
}

// Send submits text to the resolved session. Blank text or a missing session
// is a no-op. The user message is appended before the network call and is
// kept if the call fails.
func (c *Coordinator) Send(ctx context.Context, text string) {
	content := strings.TrimSpace(text)
	id := c.SessionID()
	if content == "" || id == "" {
		return
	}

	c.store.AddMessage(NewLocalMessage(id, content, c.now()))
	c.SetDraft("")

	c.store.SetLoading(true)
	defer c.store.SetLoading(false)
	c.store.SetError("")

	req := SendRequest{SessionID: id, Text: content}
	snap := c.store.Snapshot()
	if snap.SelectedProvider != nil && snap.SelectedModel != nil {
		ref := snap.SelectedModel.Ref()
		if ref.ProviderID == "" {
			ref.ProviderID = snap.SelectedProvider.ID
		}
		req.Model = &ref
	}

	reply, err := c.service.SendMessage(ctx, req)
	if err != nil {
		c.fail(ErrMsgSendMessage, "Send error: %v", err)
		return
	}
	c.store.AddMessage(*reply)
}

// SubmitDraft sends the current input buffer
func (c *Coordinator) SubmitDraft(ctx context.Context) {
	c.Send(ctx, c.Draft())
}

// LoadSessions replaces the store's session list with the server's
func (c *Coordinator) LoadSessions(ctx context.Context) {
	c.store.SetLoading(true)
	defer c.store.SetLoading(false)

	sessions, err := c.service.ListSessions(ctx)
	if err != nil {
		c.fail(ErrMsgLoadSessions, "Failed to load sessions: %v", err)
		return
	}
	c.store.SetSessions(sessions)
}

// CreateSession creates a session and prepends it to the store. Failures are
// logged and returned; the store's error field is left alone.
func (c *Coordinator) CreateSession(ctx context.Context, title string) (*Session, error) {
	if strings.TrimSpace(title) == "" {
		title = NewSessionTitle
	}
	session, err := c.service.CreateSession(ctx, title)
	if err != nil {
		LogError("Failed to create session: %v", err)
		return nil, err
	}
	c.store.AddSession(*session)
	return session, nil
}

// DeleteSession removes a session once the server confirms it. On failure the
// store is left unchanged.
func (c *Coordinator) DeleteSession(ctx context.Context, id string) error {
	ok, err := c.service.DeleteSession(ctx, id)
	if err == nil && !ok {
		err = ErrDeleteRejected
	}
	if err != nil {
		LogError("Failed to delete session %s: %v", id, err)
		return err
	}

	c.store.RemoveSession(id)
	if cur := c.store.Snapshot().CurrentSession; cur != nil && cur.ID == id {
		c.store.SetCurrentSession(nil)
		c.store.ClearMessages()
		c.setSessionID("")
	}
	return nil
}

// LoadProviders fetches the catalog. When no model is selected it picks the
// default model, else the server default, else the first active model.
func (c *Coordinator) LoadProviders(ctx context.Context) {
	c.store.SetLoading(true)
	defer c.store.SetLoading(false)

	resp, err := c.service.ListProviders(ctx)
	if err != nil {
		c.fail(ErrMsgLoadProviders, "Failed to load providers: %v", err)
		return
	}
	c.store.SetProviders(resp.Providers)

	snap := c.store.Snapshot()
	if snap.SelectedModel != nil {
		return
	}
	if p, m, ok := pickInitialModel(resp, snap.DefaultModel); ok {
		c.store.SetSelectedProvider(&p)
		c.store.SetSelectedModel(&m)
		LogDebug("Selected model %s", m.Ref())
	}
}

// SetDefaultModel stores the referenced catalog model as the default for new chats
func (c *Coordinator) SetDefaultModel(ref ModelRef) error {
	_, m, err := ResolveModelRef(c.store.Snapshot().Providers, ref)
	if err != nil {
		return err
	}
	c.store.SetDefaultModel(&m)
	return nil
}

// UseModel selects the referenced catalog model and its provider together
func (c *Coordinator) UseModel(ref ModelRef) error {
	p, m, err := ResolveModelRef(c.store.Snapshot().Providers, ref)
	if err != nil {
		return err
	}
	c.store.SetSelectedProvider(&p)
	c.store.SetSelectedModel(&m)
	return nil
}

func (c *Coordinator) fail(userMessage, format string, args ...interface{}) {
	LogError(format, args...)
	c.store.SetError(userMessage)
}

func pickInitialModel(resp *ProvidersResponse, defaultModel *Model) (Provider, Model, bool) {
	if defaultModel != nil {
		if p, m, err := ResolveModelRef(resp.Providers, defaultModel.Ref()); err == nil {
			return p, m, true
		}
	}
	for _, p := range resp.Providers {
		if id, ok := resp.Default[p.ID]; ok {
			if m, ok := p.FindModel(id); ok && m.IsActive() {
				return p, m, true
			}
		}
	}
	for _, p := range resp.Providers {
		if active := p.ActiveModels(); len(active) > 0 {
			return p, active[0], true
		}
	}
	return Provider{}, Model{}, false
}
