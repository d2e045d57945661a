package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/iksnae/opencode-chat/internal"
)

// SendBody is the request body the fake server received for a send
type SendBody struct {
	Parts []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"parts"`
	ProviderID *string `json:"providerID"`
	ModelID    *string `json:"modelID"`
}

// FakeServer is an in-memory opencode server. The assistant echoes each user
// turn back as "echo: <text>".
type FakeServer struct {
	*httptest.Server

	mu        sync.Mutex
	sessions  []internal.Session
	messages  map[string][]internal.ChatMessage
	providers string
	failures  map[string]int
	sends     []SendBody
	nextID    int
}

// NewFakeServer starts a fake server that is closed when the test ends
func NewFakeServer(t *testing.T) *FakeServer {
	t.Helper()
	fs := &FakeServer{
		messages:  make(map[string][]internal.ChatMessage),
		providers: ProvidersJSON,
		failures:  make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /session", fs.listSessions)
	mux.HandleFunc("POST /session", fs.createSession)
	mux.HandleFunc("GET /session/{id}", fs.getSession)
	mux.HandleFunc("DELETE /session/{id}", fs.deleteSession)
	mux.HandleFunc("GET /session/{id}/message", fs.listMessages)
	mux.HandleFunc("POST /session/{id}/message", fs.sendMessage)
	mux.HandleFunc("GET /config/providers", fs.listProviders)

	fs.Server = httptest.NewServer(fs.withFailures(mux))
	t.Cleanup(fs.Close)
	return fs
}

// AddSession seeds a session and returns it
func (fs *FakeServer) AddSession(id, title string, messages ...internal.ChatMessage) internal.Session {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	now := time.Now().UnixMilli()
	s := internal.Session{
		ID:        id,
		Directory: "/home/dev/projects/" + id,
		Title:     &title,
		Time:      internal.SessionTime{Created: now, Updated: now},
	}
	fs.sessions = append([]internal.Session{s}, fs.sessions...)
	fs.messages[id] = append(fs.messages[id], messages...)
	return s
}

// SetProviders replaces the /config/providers document
func (fs *FakeServer) SetProviders(raw string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.providers = raw
}

// FailWith makes "METHOD /path" answer with status
func (fs *FakeServer) FailWith(method, path string, status int) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.failures[method+" "+path] = status
}

// Sessions returns the sessions the server holds
func (fs *FakeServer) Sessions() []internal.Session {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]internal.Session(nil), fs.sessions...)
}

// Messages returns the history the server holds for a session
func (fs *FakeServer) Messages(sessionID string) []internal.ChatMessage {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]internal.ChatMessage(nil), fs.messages[sessionID]...)
}

// Sends returns the send bodies received so far
func (fs *FakeServer) Sends() []SendBody {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]SendBody(nil), fs.sends...)
}

func (fs *FakeServer) withFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		status, ok := fs.failures[r.Method+" "+r.URL.Path]
		fs.mu.Unlock()
		if ok {
			WriteJSON(w, status, map[string]string{"error": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (fs *FakeServer) listSessions(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, fs.Sessions())
}

func (fs *FakeServer) createSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	fs.mu.Lock()
	fs.nextID++
	id := fmt.Sprintf("ses_%03d", fs.nextID)
	fs.mu.Unlock()

	WriteJSON(w, http.StatusOK, fs.AddSession(id, body.Title))
}

func (fs *FakeServer) findSession(id string) (internal.Session, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for _, s := range fs.sessions {
		if s.ID == id {
			return s, true
		}
	}
	return internal.Session{}, false
}

func (fs *FakeServer) getSession(w http.ResponseWriter, r *http.Request) {
	s, ok := fs.findSession(r.PathValue("id"))
	if !ok {
		WriteJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	WriteJSON(w, http.StatusOK, s)
}

func (fs *FakeServer) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	fs.mu.Lock()
	defer fs.mu.Unlock()

	removed := false
	next := fs.sessions[:0:0]
	for _, s := range fs.sessions {
		if s.ID == id {
			removed = true
			continue
		}
		next = append(next, s)
	}
	fs.sessions = next
	delete(fs.messages, id)
	WriteJSON(w, http.StatusOK, removed)
}

func (fs *FakeServer) listMessages(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := fs.findSession(id); !ok {
		WriteJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	msgs := fs.Messages(id)
	if msgs == nil {
		msgs = []internal.ChatMessage{}
	}
	WriteJSON(w, http.StatusOK, msgs)
}

func (fs *FakeServer) sendMessage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := fs.findSession(id); !ok {
		WriteJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}

	var body SendBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Parts) == 0 {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	text := body.Parts[0].Text

	fs.mu.Lock()
	fs.sends = append(fs.sends, body)
	fs.nextID++
	now := time.Now()
	user := internal.CreateTestMessage(fmt.Sprintf("msg_%03d", fs.nextID), id, internal.RoleUser, text, now)
	fs.nextID++
	reply := internal.CreateTestMessage(fmt.Sprintf("msg_%03d", fs.nextID), id, internal.RoleAssistant, "echo: "+text, now)
	if body.ProviderID != nil && body.ModelID != nil {
		reply.Info.ProviderID = *body.ProviderID
		reply.Info.ModelID = *body.ModelID
	}
	fs.messages[id] = append(fs.messages[id], user, reply)
	fs.mu.Unlock()

	WriteJSON(w, http.StatusOK, reply)
}

func (fs *FakeServer) listProviders(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	raw := fs.providers
	fs.mu.Unlock()
	WriteRawJSON(w, http.StatusOK, raw)
}
