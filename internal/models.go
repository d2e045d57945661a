package internal

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// ModelStatusActive is the only status a selectable model carries
const ModelStatusActive = "active"

// CacheCost holds cache read/write rates
type CacheCost struct {
	Read  float64 `json:"read"`
	Write float64 `json:"write"`
}

// ModelCost holds the server-defined cost rates for a model
type ModelCost struct {
	Input  float64   `json:"input"`
	Output float64   `json:"output"`
	Cache  CacheCost `json:"cache"`
}

// Model is a selectable inference target
type Model struct {
	ID         string     `json:"id"`
	ProviderID string     `json:"providerID"`
	Name       string     `json:"name"`
	Family     string     `json:"family,omitempty"`
	Status     string     `json:"status,omitempty"`
	Cost       *ModelCost `json:"cost,omitempty"`
}

// IsActive reports whether the model can be selected
func (m Model) IsActive() bool {
	return m.Status == ModelStatusActive
}

// ShortName returns the last path element of the display name
func (m Model) ShortName() string {
	if i := strings.LastIndex(m.Name, "/"); i >= 0 {
		return m.Name[i+1:]
	}
	return m.Name
}

// CostLabel formats the input/output rates, or "" when unknown
func (m Model) CostLabel() string {
	if m.Cost == nil {
		return ""
	}
	return fmt.Sprintf("$%g/$%g", m.Cost.Input, m.Cost.Output)
}

// Ref returns the provider/model reference for the model
func (m Model) Ref() ModelRef {
	return ModelRef{ProviderID: m.ProviderID, ModelID: m.ID}
}

// Provider is an upstream vendor exposing models keyed by model id
type Provider struct {
	ID      string           `json:"id"`
	Source  string           `json:"source,omitempty"`
	Name    string           `json:"name"`
	Env     []string         `json:"env,omitempty"`
	Options map[string]any   `json:"options,omitempty"`
	Models  map[string]Model `json:"models"`

	// order keeps the model keys in the order the server sent them
	order []string
}

// UnmarshalJSON decodes a provider and remembers the server's model key order
func (p *Provider) UnmarshalJSON(data []byte) error {
	type provider Provider
	var raw provider
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Provider(raw)

	p.order = p.order[:0]
	gjson.GetBytes(data, "models").ForEach(func(key, _ gjson.Result) bool {
		p.order = append(p.order, key.String())
		return true
	})

	for id, m := range p.Models {
		if m.ID == "" {
			m.ID = id
		}
		if m.ProviderID == "" {
			m.ProviderID = p.ID
		}
		p.Models[id] = m
	}
	return nil
}

// AllModels returns every model in server order; keys added in code follow, sorted
func (p Provider) AllModels() []Model {
	out := make([]Model, 0, len(p.Models))
	seen := make(map[string]bool, len(p.Models))
	for _, id := range p.order {
		if m, ok := p.Models[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, m)
		}
	}

	var rest []string
	for id := range p.Models {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		out = append(out, p.Models[id])
	}
	return out
}

// ActiveModels returns the selectable models in server order
func (p Provider) ActiveModels() []Model {
	var out []Model
	for _, m := range p.AllModels() {
		if m.IsActive() {
			out = append(out, m)
		}
	}
	return out
}

// FindModel looks up a model by id
func (p Provider) FindModel(id string) (Model, bool) {
	m, ok := p.Models[id]
	if ok && m.ProviderID == "" {
		m.ProviderID = p.ID
	}
	return m, ok
}

// ProvidersResponse is the catalog returned by the server
type ProvidersResponse struct {
	Providers []Provider        `json:"providers"`
	Default   map[string]string `json:"default"`
}

// ModelRef addresses a model by provider and model id
type ModelRef struct {
	ProviderID string
	ModelID    string
}

// ParseModelRef parses "provider/model". The model id may itself contain slashes.
func ParseModelRef(s string) (ModelRef, error) {
	providerID, modelID, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || providerID == "" || modelID == "" {
		return ModelRef{}, fmt.Errorf("invalid model reference %q (want provider/model)", s)
	}
	return ModelRef{ProviderID: providerID, ModelID: modelID}, nil
}

func (r ModelRef) String() string {
	return r.ProviderID + "/" + r.ModelID
}

// IsZero reports whether the reference is empty
func (r ModelRef) IsZero() bool {
	return r.ProviderID == "" && r.ModelID == ""
}

// FindProvider returns the provider with the given id
func FindProvider(providers []Provider, id string) (Provider, bool) {
	for _, p := range providers {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}

// ResolveModelRef finds the provider and model a reference points at
func ResolveModelRef(providers []Provider, ref ModelRef) (Provider, Model, error) {
	p, ok := FindProvider(providers, ref.ProviderID)
	if !ok {
		return Provider{}, Model{}, fmt.Errorf("%w: provider %s", ErrModelNotFound, ref.ProviderID)
	}
	m, ok := p.FindModel(ref.ModelID)
	if !ok {
		return Provider{}, Model{}, fmt.Errorf("%w: %s", ErrModelNotFound, ref)
	}
	return p, m, nil
}
