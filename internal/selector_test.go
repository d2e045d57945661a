package internal

import (
	"errors"
	"testing"
)

func newTestSelector(providers ...Provider) (*ModelSelector, *Store, *int) {
	s := NewStore()
	if len(providers) == 0 {
		providers = CreateTestProviders()
	}
	s.SetProviders(providers)
	closed := 0
	return NewModelSelector(s, func() { closed++ }), s, &closed
}

func TestModelSelector_OpenStartsOnProviders(t *testing.T) {
	m, _, _ := newTestSelector()
	m.SetQuery("stale")
	m.Open()

	if !m.IsOpen() {
		t.Error("IsOpen() = false after Open()")
	}
	if m.View() != ViewProviders {
		t.Errorf("View() = %v, want providers", m.View())
	}
	if m.Query() != "" {
		t.Errorf("Query() = %q, want empty", m.Query())
	}
	if m.Title() != "Select Model" {
		t.Errorf("Title() = %q, want %q", m.Title(), "Select Model")
	}
}

func TestModelSelector_SearchAcrossProviders(t *testing.T) {
	m, _, _ := newTestSelector()
	m.Open()
	m.SetQuery("gpt")

	results := m.SearchResults()
	if len(results) != 1 {
		t.Fatalf("len(SearchResults()) = %d, want 1", len(results))
	}
	r := results[0]
	if r.Model.Name != "gpt-4" || r.ProviderID != "openai" || r.ProviderName != "OpenAI" {
		t.Errorf("result = %+v, want gpt-4 from OpenAI", r)
	}
	if m.Title() != "Results" {
		t.Errorf("Title() = %q, want Results", m.Title())
	}
}

func TestModelSelector_SearchIsCaseInsensitive(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"GPT", 1},
		{"  claude ", 1},
		{"-", 2},
		{"llama", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			m, _, _ := newTestSelector()
			m.Open()
			m.SetQuery(tt.query)
			if got := len(m.SearchResults()); got != tt.want {
				t.Errorf("len(SearchResults()) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestModelSelector_SearchSkipsInactiveModels(t *testing.T) {
	m, store, _ := newTestSelector(
		CreateTestProvider("openai", "OpenAI",
			CreateTestModel("gpt-4", "gpt-4", ModelStatusActive),
			CreateTestModel("gpt-3", "gpt-3", "deprecated"),
		),
	)
	m.Open()
	m.SetQuery("gpt")

	results := m.SearchResults()
	if len(results) != 1 || results[0].Model.ID != "gpt-4" {
		t.Errorf("SearchResults() = %+v, want only gpt-4", results)
	}
	if n := m.MatchCount(store.Snapshot().Providers[0]); n != 1 {
		t.Errorf("MatchCount() = %d, want 1", n)
	}
}

func TestModelSelector_Providers(t *testing.T) {
	empty := CreateTestProvider("local", "Local")
	providers := append(CreateTestProviders(), empty)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"no query hides providers without models", "", []string{"openai", "anthropic"}},
		{"name match", "open", []string{"openai"}},
		{"name match includes empty providers", "loc", []string{"local"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestSelector(providers...)
			m.Open()
			m.SetQuery(tt.query)

			var got []string
			for _, p := range m.Providers() {
				got = append(got, p.ID)
			}
			if !equalStrings(got, tt.want) {
				t.Errorf("Providers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModelSelector_DrillDownAndBack(t *testing.T) {
	openai := CreateTestProvider("openai", "OpenAI",
		CreateTestModel("gpt-4", "gpt-4", ModelStatusActive),
		CreateTestModel("gpt-4o", "gpt-4o", ModelStatusActive),
		CreateTestModel("gpt-3", "gpt-3", "deprecated"),
	)
	m, store, _ := newTestSelector(openai)
	m.Open()
	m.SetQuery("open")

	m.SelectProvider(openai)
	if m.View() != ViewModels {
		t.Fatalf("View() = %v, want models", m.View())
	}
	if m.Query() != "" {
		t.Errorf("Query() = %q, want cleared on drill-down", m.Query())
	}
	if sp := store.Snapshot().SelectedProvider; sp == nil || sp.ID != "openai" {
		t.Errorf("SelectedProvider = %+v, want openai", sp)
	}
	if m.Title() != "OpenAI" {
		t.Errorf("Title() = %q, want OpenAI", m.Title())
	}
	if got := len(m.Models()); got != 2 {
		t.Errorf("len(Models()) = %d, want 2 active models", got)
	}
	if m.SearchResults() != nil {
		t.Error("SearchResults() should be empty in the model view")
	}

	m.SetQuery("4o")
	if got := m.Models(); len(got) != 1 || got[0].ID != "gpt-4o" {
		t.Errorf("Models() = %+v, want gpt-4o", got)
	}

	m.Back()
	if m.View() != ViewProviders || m.Query() != "" {
		t.Errorf("after Back() view=%v query=%q", m.View(), m.Query())
	}
}

func TestModelSelector_SelectModelCloses(t *testing.T) {
	m, store, closed := newTestSelector()
	providers := store.Snapshot().Providers
	m.Open()
	m.SelectProvider(providers[1])

	model := providers[1].Models["b"]
	model.ProviderID = ""
	if err := m.SelectModel(model); err != nil {
		t.Fatalf("SelectModel() error = %v", err)
	}

	st := store.Snapshot()
	if st.SelectedModel == nil || st.SelectedModel.Ref().String() != "anthropic/b" {
		t.Errorf("SelectedModel = %+v, want anthropic/b", st.SelectedModel)
	}
	if st.SelectedProvider == nil || st.SelectedProvider.ID != "anthropic" {
		t.Errorf("SelectedProvider = %+v, want anthropic", st.SelectedProvider)
	}
	if m.IsOpen() || m.View() != ViewProviders {
		t.Errorf("picker should be closed and reset: open=%v view=%v", m.IsOpen(), m.View())
	}
	if *closed != 1 {
		t.Errorf("onClose called %d times, want 1", *closed)
	}
}

func TestModelSelector_SelectSearchResultSetsProvider(t *testing.T) {
	m, store, closed := newTestSelector()
	m.Open()
	m.SelectProvider(store.Snapshot().Providers[1])
	m.Back()
	m.SetQuery("gpt")

	results := m.SearchResults()
	if len(results) != 1 {
		t.Fatalf("len(SearchResults()) = %d, want 1", len(results))
	}
	if err := m.SelectSearchResult(results[0]); err != nil {
		t.Fatalf("SelectSearchResult() error = %v", err)
	}

	st := store.Snapshot()
	if st.SelectedProvider == nil || st.SelectedProvider.ID != "openai" {
		t.Errorf("SelectedProvider = %+v, want openai to follow the model", st.SelectedProvider)
	}
	if st.SelectedModel == nil || st.SelectedModel.ID != "a" {
		t.Errorf("SelectedModel = %+v, want a", st.SelectedModel)
	}
	if *closed != 1 {
		t.Errorf("onClose called %d times, want 1", *closed)
	}
}

func TestModelSelector_SelectModelUnknownProvider(t *testing.T) {
	m, store, closed := newTestSelector()
	providers := store.Snapshot().Providers
	store.SetSelectedProvider(&providers[0])
	gpt4 := providers[0].Models["a"]
	store.SetSelectedModel(&gpt4)
	m.Open()

	ghost := CreateTestModel("g", "ghost-1", ModelStatusActive)
	ghost.ProviderID = "ghost"
	if err := m.SelectModel(ghost); !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("SelectModel() error = %v, want ErrModelNotFound", err)
	}

	st := store.Snapshot()
	if st.SelectedModel == nil || st.SelectedModel.Ref().String() != "openai/a" {
		t.Errorf("SelectedModel = %+v, want openai/a kept", st.SelectedModel)
	}
	if st.SelectedProvider == nil || st.SelectedProvider.ID != "openai" {
		t.Errorf("SelectedProvider = %+v, want openai kept", st.SelectedProvider)
	}
	if !m.IsOpen() || *closed != 0 {
		t.Errorf("picker should stay open: open=%v closed=%d", m.IsOpen(), *closed)
	}
}

func TestModelSelector_LeavingRestoresModelProvider(t *testing.T) {
	leave := map[string]func(m *ModelSelector){
		"close": func(m *ModelSelector) { m.Close() },
		"back":  func(m *ModelSelector) { m.Back() },
	}

	for name, fn := range leave {
		t.Run(name, func(t *testing.T) {
			m, store, _ := newTestSelector()
			providers := store.Snapshot().Providers
			store.SetSelectedProvider(&providers[0])
			gpt4 := providers[0].Models["a"]
			store.SetSelectedModel(&gpt4)

			m.Open()
			m.SelectProvider(providers[1])
			if sp := store.Snapshot().SelectedProvider; sp == nil || sp.ID != "anthropic" {
				t.Fatalf("SelectedProvider = %+v, want anthropic while browsing", sp)
			}
			fn(m)

			st := store.Snapshot()
			if st.SelectedProvider == nil || st.SelectedProvider.ID != st.SelectedModel.ProviderID {
				t.Errorf("SelectedProvider = %+v, want owner of %s", st.SelectedProvider, st.SelectedModel.Ref())
			}
		})
	}
}

func TestModelSelector_ProviderLabel(t *testing.T) {
	openai := CreateTestProvider("openai", "OpenAI",
		CreateTestModel("gpt-4", "gpt-4", ModelStatusActive),
		CreateTestModel("gpt-4o", "gpt-4o", ModelStatusActive),
		CreateTestModel("o1", "o1", ModelStatusActive),
	)

	tests := []struct {
		query string
		want  string
	}{
		{"", "3 models"},
		{"gpt-4o", "1 matching model"},
		{"gpt", "2 matching models"},
		{"claude", "3 models"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			m, _, _ := newTestSelector(openai)
			m.Open()
			m.SetQuery(tt.query)
			if got := m.ProviderLabel(openai); got != tt.want {
				t.Errorf("ProviderLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModelSelector_CloseWithoutCallback(t *testing.T) {
	m := NewModelSelector(NewStore(), nil)
	m.Open()
	m.Close()
	if m.IsOpen() {
		t.Error("IsOpen() = true after Close()")
	}
}
