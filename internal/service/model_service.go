package service

import (
	"context"

	"mentor-ai/backend/internal/model"
	"mentor-ai/backend/internal/registry"
)

// ProviderStatus reports whether providers can be called.
type ProviderStatus interface {
	HasCredentials(ctx context.Context, provider model.Provider) bool
	TestAllConnections(ctx context.Context) map[model.Provider]bool
}

// ModelInfo is the catalog entry returned by the models route.
type ModelInfo struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Provider      model.Provider `json:"provider"`
	Available     bool           `json:"available"`
	ContextWindow int            `json:"contextWindow"`
}

// ModelService lists the catalog together with per-provider availability.
type ModelService struct {
	registry *registry.Registry
	status   ProviderStatus
}

func NewModelService(reg *registry.Registry, status ProviderStatus) *ModelService {
	return &ModelService{registry: reg, status: status}
}

// List returns every catalog model. A model is available when its provider
// is keyless or has an API key.
func (s *ModelService) List(ctx context.Context) []ModelInfo {
	available := make(map[model.Provider]bool)
	for _, p := range s.registry.Providers() {
		available[p] = s.status.HasCredentials(ctx, p)
	}

	models := s.registry.AllModels()
	out := make([]ModelInfo, len(models))
	for i, m := range models {
		out[i] = ModelInfo{
			ID:            m.ID,
			Name:          m.DisplayName,
			Provider:      m.Provider,
			Available:     available[m.Provider],
			ContextWindow: m.ContextWindowTokens,
		}
	}
	return out
}

// Connectivity probes every provider. Providers without credentials report
// false without a network call.
func (s *ModelService) Connectivity(ctx context.Context) map[model.Provider]bool {
	return s.status.TestAllConnections(ctx)
}
