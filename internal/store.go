package internal

import "sync"

// State is an immutable snapshot of the client state.
// Slices in a snapshot are never mutated after commit; each change builds new ones.
type State struct {
	Sessions         []Session
	CurrentSession   *Session
	Messages         []ChatMessage
	Providers        []Provider
	SelectedProvider *Provider
	SelectedModel    *Model
	DefaultModel     *Model
	Theme            Theme
	IsLoading        bool
	Error            string
}

// HasError reports whether an error message is set
func (s State) HasError() bool {
	return s.Error != ""
}

// Observer is notified with the committed snapshot after every mutation
type Observer func(State)

// Store is the single source of truth for sessions, messages, catalog,
// selection, flags and theme. It is only changed through its setters.
type Store struct {
	mu        sync.Mutex
	state     State
	observers map[int]Observer
	nextObsID int
}

// NewStore creates an empty store with the light theme
func NewStore() *Store {
	return &Store{
		state:     State{Theme: ThemeLight},
		observers: make(map[int]Observer),
	}
}

// Snapshot returns the latest committed state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers an observer and returns a function that removes it
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// commit applies fn to a copy of the state, swaps it in and notifies observers
// synchronously, outside the lock.
func (s *Store) commit(fn func(*State)) {
	s.mu.Lock()
	next := s.state
	fn(&next)
	s.state = next
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	for _, o := range observers {
		o(next)
	}
}

// SetSessions replaces the session list
func (s *Store) SetSessions(sessions []Session) {
	cp := append([]Session(nil), sessions...)
	s.commit(func(st *State) { st.Sessions = cp })
}

// AddSession prepends a session
func (s *Store) AddSession(session Session) {
	s.commit(func(st *State) {
		next := make([]Session, 0, len(st.Sessions)+1)
		next = append(next, session)
		st.Sessions = append(next, st.Sessions...)
	})
}

// RemoveSession filters out the session with the given id
func (s *Store) RemoveSession(id string) {
	s.commit(func(st *State) {
		next := make([]Session, 0, len(st.Sessions))
		for _, sess := range st.Sessions {
			if sess.ID != id {
				next = append(next, sess)
			}
		}
		st.Sessions = next
	})
}

// SetCurrentSession sets or clears the current session
func (s *Store) SetCurrentSession(session *Session) {
	var cp *Session
	if session != nil {
		v := *session
		cp = &v
	}
	s.commit(func(st *State) { st.CurrentSession = cp })
}

// SetMessages replaces the message list
func (s *Store) SetMessages(messages []ChatMessage) {
	cp := append([]ChatMessage(nil), messages...)
	s.commit(func(st *State) { st.Messages = cp })
}

// AddMessage appends a message, keeping existing order
func (s *Store) AddMessage(message ChatMessage) {
	s.commit(func(st *State) {
		next := make([]ChatMessage, len(st.Messages), len(st.Messages)+1)
		copy(next, st.Messages)
		st.Messages = append(next, message)
	})
}

// ClearMessages empties the message list and clears the error
func (s *Store) ClearMessages() {
	s.commit(func(st *State) {
		st.Messages = nil
		st.Error = ""
	})
}

// SetLoading sets the loading flag
func (s *Store) SetLoading(loading bool) {
	s.commit(func(st *State) { st.IsLoading = loading })
}

// SetError sets the error message; "" clears it
func (s *Store) SetError(message string) {
	s.commit(func(st *State) { st.Error = message })
}

// SetProviders replaces the provider catalog
func (s *Store) SetProviders(providers []Provider) {
	cp := append([]Provider(nil), providers...)
	s.commit(func(st *State) { st.Providers = cp })
}

// SetSelectedProvider sets or clears the selected provider
func (s *Store) SetSelectedProvider(provider *Provider) {
	var cp *Provider
	if provider != nil {
		v := *provider
		cp = &v
	}
	s.commit(func(st *State) { st.SelectedProvider = cp })
}

// SetSelectedModel sets or clears the selected model
func (s *Store) SetSelectedModel(model *Model) {
	cp := copyModel(model)
	s.commit(func(st *State) { st.SelectedModel = cp })
}

// SetDefaultModel sets or clears the model new chats start with
func (s *Store) SetDefaultModel(model *Model) {
	cp := copyModel(model)
	s.commit(func(st *State) { st.DefaultModel = cp })
}

// SetTheme sets the theme
func (s *Store) SetTheme(theme Theme) {
	s.commit(func(st *State) { st.Theme = theme })
}

// ToggleTheme flips between light and dark
func (s *Store) ToggleTheme() {
	s.commit(func(st *State) { st.Theme = st.Theme.Toggle() })
}

func copyModel(m *Model) *Model {
	if m == nil {
		return nil
	}
	v := *m
	return &v
}
