package internal

import (
	"fmt"
	"strings"
	"sync"
)

// PickerView is the list the model picker is showing
type PickerView int

const (
	ViewProviders PickerView = iota
	ViewModels
)

func (v PickerView) String() string {
	if v == ViewModels {
		return "models"
	}
	return "providers"
}

// SearchResult is an active model found by a cross-provider search
type SearchResult struct {
	Model        Model
	ProviderID   string
	ProviderName string
}

// ModelSelector is the two-level provider → model picker. It starts on the
// provider list, drills into one provider's models, and closes on a model
// pick or an explicit close. Selection writes go to the store so provider and
// model always change together.
type ModelSelector struct {
	store   *Store
	onClose func()

	mu    sync.Mutex
	open  bool
	view  PickerView
	query string
}

// NewModelSelector creates a closed picker. onClose may be nil.
func NewModelSelector(store *Store, onClose func()) *ModelSelector {
	return &ModelSelector{store: store, onClose: onClose}
}

// Open starts a fresh picker session on the provider list
func (m *ModelSelector) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	m.view = ViewProviders
	m.query = ""
}

// IsOpen reports whether the picker is showing
func (m *ModelSelector) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// View returns the list being shown
func (m *ModelSelector) View() PickerView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

// Query returns the search text
func (m *ModelSelector) Query() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.query
}

// SetQuery updates the search text
func (m *ModelSelector) SetQuery(q string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query = q
}

// SelectProvider drills into the provider's models
func (m *ModelSelector) SelectProvider(p Provider) {
	m.store.SetSelectedProvider(&p)
	m.mu.Lock()
	m.view = ViewModels
	m.query = ""
	m.mu.Unlock()
}

// Back returns from the model list to the provider list
func (m *ModelSelector) Back() {
	m.mu.Lock()
	m.view = ViewProviders
	m.query = ""
	m.mu.Unlock()

	m.syncProvider()
}

// SelectModel selects the model and its owning provider, then closes the
// picker. A model whose provider is not in the catalog is rejected and the
// picker stays open.
func (m *ModelSelector) SelectModel(model Model) error {
	snap := m.store.Snapshot()
	if model.ProviderID == "" && snap.SelectedProvider != nil {
		model.ProviderID = snap.SelectedProvider.ID
	}
	p, ok := FindProvider(snap.Providers, model.ProviderID)
	if !ok {
		return fmt.Errorf("%w: provider %q of model %s", ErrModelNotFound, model.ProviderID, model.ID)
	}
	m.store.SetSelectedProvider(&p)
	m.store.SetSelectedModel(&model)
	m.Close()
	return nil
}

// SelectSearchResult selects a model found by cross-provider search
func (m *ModelSelector) SelectSearchResult(r SearchResult) error {
	model := r.Model
	model.ProviderID = r.ProviderID
	return m.SelectModel(model)
}

// Close resets the picker to the provider list and notifies the caller
func (m *ModelSelector) Close() {
	m.mu.Lock()
	m.open = false
	m.view = ViewProviders
	m.query = ""
	m.mu.Unlock()

	m.syncProvider()
	if m.onClose != nil {
		m.onClose()
	}
}

// syncProvider points the selected provider back at the owner of the
// selected model after browsing another provider.
func (m *ModelSelector) syncProvider() {
	snap := m.store.Snapshot()
	if snap.SelectedModel == nil {
		return
	}
	if snap.SelectedProvider != nil && snap.SelectedProvider.ID == snap.SelectedModel.ProviderID {
		return
	}
	if p, ok := FindProvider(snap.Providers, snap.SelectedModel.ProviderID); ok {
		m.store.SetSelectedProvider(&p)
	}
}

// Providers returns the provider list: providers with models when not
// searching, else providers whose name matches the query.
func (m *ModelSelector) Providers() []Provider {
	providers := m.store.Snapshot().Providers
	q := normalizeQuery(m.Query())

	var out []Provider
	for _, p := range providers {
		if q == "" {
			if len(p.Models) > 0 {
				out = append(out, p)
			}
			continue
		}
		if matchesQuery(p.Name, q) {
			out = append(out, p)
		}
	}
	return out
}

// SearchResults returns active models across all providers whose name matches
// the query. It is empty without a query or outside the provider list.
func (m *ModelSelector) SearchResults() []SearchResult {
	if m.View() != ViewProviders {
		return nil
	}
	q := normalizeQuery(m.Query())
	if q == "" {
		return nil
	}

	var out []SearchResult
	for _, p := range m.store.Snapshot().Providers {
		for _, model := range p.ActiveModels() {
			if matchesQuery(model.Name, q) {
				out = append(out, SearchResult{Model: model, ProviderID: p.ID, ProviderName: p.Name})
			}
		}
	}
	return out
}

// Models returns the selected provider's active models, filtered by the query
func (m *ModelSelector) Models() []Model {
	snap := m.store.Snapshot()
	if snap.SelectedProvider == nil {
		return nil
	}
	provider := *snap.SelectedProvider
	if fresh, ok := FindProvider(snap.Providers, provider.ID); ok {
		provider = fresh
	}

	q := normalizeQuery(m.Query())
	var out []Model
	for _, model := range provider.ActiveModels() {
		if q == "" || matchesQuery(model.Name, q) {
			out = append(out, model)
		}
	}
	return out
}

// MatchCount counts the provider's active models matching the query
func (m *ModelSelector) MatchCount(p Provider) int {
	q := normalizeQuery(m.Query())
	if q == "" {
		return 0
	}
	n := 0
	for _, model := range p.ActiveModels() {
		if matchesQuery(model.Name, q) {
			n++
		}
	}
	return n
}

// Title returns the picker header
func (m *ModelSelector) Title() string {
	snap := m.store.Snapshot()
	if m.View() == ViewModels && snap.SelectedProvider != nil {
		return snap.SelectedProvider.Name
	}
	if m.Query() != "" {
		return "Results"
	}
	return "Select Model"
}

// ProviderLabel describes a provider row
func (m *ModelSelector) ProviderLabel(p Provider) string {
	if n := m.MatchCount(p); n > 0 {
		if n == 1 {
			return "1 matching model"
		}
		return fmt.Sprintf("%d matching models", n)
	}
	return fmt.Sprintf("%d models", len(p.Models))
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func matchesQuery(name, normalized string) bool {
	return strings.Contains(strings.ToLower(name), normalized)
}
