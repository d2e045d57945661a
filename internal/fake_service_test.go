package internal

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var errBoom = errors.New("boom")

// fakeService is an in-memory ChatService. Set an err* field to make the
// matching call fail.
type fakeService struct {
	mu sync.Mutex

	sessions  map[string]*Session
	messages  map[string][]ChatMessage
	providers *ProvidersResponse
	reply     string
	deleteOK  bool
	nextID    int

	errList      error
	errGet       error
	errCreate    error
	errDelete    error
	errMessages  error
	errSend      error
	errProviders error

	sends   []SendRequest
	created []string

	// onSend runs inside SendMessage before it answers
	onSend func()
}

func newFakeService() *fakeService {
	return &fakeService{
		sessions: make(map[string]*Session),
		messages: make(map[string][]ChatMessage),
		providers: &ProvidersResponse{
			Providers: CreateTestProviders(),
			Default:   map[string]string{},
		},
		reply:    "Hi there",
		deleteOK: true,
	}
}

func (f *fakeService) addSession(id, title string, messages ...ChatMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[id] = CreateTestSession(id, title)
	f.messages[id] = messages
}

func (f *fakeService) ListSessions(ctx context.Context) ([]Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errList != nil {
		return nil, f.errList
	}
	var out []Session
	for _, s := range f.sessions {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeService) GetSession(ctx context.Context, id string) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errGet != nil {
		return nil, f.errGet
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	cp := *s
	return &cp, nil
}

func (f *fakeService) CreateSession(ctx context.Context, title string) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errCreate != nil {
		return nil, f.errCreate
	}
	f.nextID++
	id := fmt.Sprintf("ses_new_%d", f.nextID)
	s := CreateTestSession(id, title)
	f.sessions[id] = s
	f.created = append(f.created, title)
	cp := *s
	return &cp, nil
}

func (f *fakeService) DeleteSession(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errDelete != nil {
		return false, f.errDelete
	}
	if !f.deleteOK {
		return false, nil
	}
	delete(f.sessions, id)
	delete(f.messages, id)
	return true, nil
}

func (f *fakeService) ListMessages(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errMessages != nil {
		return nil, f.errMessages
	}
	return append([]ChatMessage(nil), f.messages[sessionID]...), nil
}

func (f *fakeService) SendMessage(ctx context.Context, req SendRequest) (*ChatMessage, error) {
	f.mu.Lock()
	onSend := f.onSend
	f.sends = append(f.sends, req)
	err := f.errSend
	f.nextID++
	id := fmt.Sprintf("msg_reply_%d", f.nextID)
	reply := f.reply
	f.mu.Unlock()

	if onSend != nil {
		onSend()
	}
	if err != nil {
		return nil, err
	}
	msg := CreateTestMessage(id, req.SessionID, RoleAssistant, reply, fixedNow)
	return &msg, nil
}

func (f *fakeService) ListProviders(ctx context.Context) (*ProvidersResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errProviders != nil {
		return nil, f.errProviders
	}
	return f.providers, nil
}
