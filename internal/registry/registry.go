// Package registry holds the static catalog of AI providers, their models,
// context windows and per-1k-token prices.
package registry

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/model"
)

// ProviderInfo describes one provider in the catalog.
type ProviderInfo struct {
	Name        model.Provider
	DisplayName string
	// Keyless providers (local runtimes) are usable without an API key.
	Keyless bool
	// DefaultBaseURL is used when the ServiceConfig carries no BaseURL.
	DefaultBaseURL string
	Models         []model.ProviderModel
}

// Registry is read-only after construction and safe for concurrent use.
type Registry struct {
	order     []model.Provider
	providers map[model.Provider]ProviderInfo
}

// New builds a registry from the given providers, preserving their order.
func New(providers ...ProviderInfo) *Registry {
	r := &Registry{providers: make(map[model.Provider]ProviderInfo, len(providers))}
	for _, p := range providers {
		for i := range p.Models {
			p.Models[i].Provider = p.Name
		}
		r.order = append(r.order, p.Name)
		r.providers[p.Name] = p
	}
	return r
}

// Providers returns provider names in catalog order.
func (r *Registry) Providers() []model.Provider {
	return slices.Clone(r.order)
}

// Provider returns the catalog entry for name.
func (r *Registry) Provider(name model.Provider) (ProviderInfo, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Models returns the model ids of provider in catalog order. Unknown
// providers yield an empty slice.
func (r *Registry) Models(provider model.Provider) []string {
	p, ok := r.providers[provider]
	if !ok {
		return []string{}
	}
	ids := make([]string, len(p.Models))
	for i, m := range p.Models {
		ids[i] = m.ID
	}
	return ids
}

// AllModels returns every model of every provider.
func (r *Registry) AllModels() []model.ProviderModel {
	var out []model.ProviderModel
	for _, name := range r.order {
		out = append(out, r.providers[name].Models...)
	}
	return out
}

// Lookup returns the model with the given id under provider.
func (r *Registry) Lookup(provider model.Provider, modelID string) (model.ProviderModel, bool) {
	p, ok := r.providers[provider]
	if !ok {
		return model.ProviderModel{}, false
	}
	for _, m := range p.Models {
		if m.ID == modelID {
			return m, true
		}
	}
	return model.ProviderModel{}, false
}

// Find returns the first model with the given id across all providers.
func (r *Registry) Find(modelID string) (model.ProviderModel, bool) {
	for _, name := range r.order {
		if m, ok := r.Lookup(name, modelID); ok {
			return m, true
		}
	}
	return model.ProviderModel{}, false
}

// DefaultModel returns the first model listed for provider.
func (r *Registry) DefaultModel(provider model.Provider) (string, bool) {
	p, ok := r.providers[provider]
	if !ok || len(p.Models) == 0 {
		return "", false
	}
	return p.Models[0].ID, true
}

var thousand = decimal.NewFromInt(1000)

// Cost prices usage with the model's per-1k rates.
func (r *Registry) Cost(usage model.Usage, provider model.Provider, modelID string) (decimal.Decimal, error) {
	m, ok := r.Lookup(provider, modelID)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no pricing for model %q of provider %q", apperrors.ErrConfiguration, modelID, provider)
	}
	input := decimal.NewFromInt(int64(usage.PromptTokens)).Div(thousand).Mul(m.CostPer1kTokens.Input)
	output := decimal.NewFromInt(int64(usage.CompletionTokens)).Div(thousand).Mul(m.CostPer1kTokens.Output)
	return input.Add(output), nil
}
