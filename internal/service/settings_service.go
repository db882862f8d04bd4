package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/model"
	"mentor-ai/backend/internal/registry"
	"mentor-ai/backend/internal/repository"
)

// Setting keys persisted in the settings table. The API key is never among
// them.
const (
	settingProvider         = "provider"
	settingModel            = "model"
	settingTemperature      = "temperature"
	settingMaxTokens        = "max_tokens"
	settingTopP             = "top_p"
	settingFrequencyPenalty = "frequency_penalty"
	settingPresencePenalty  = "presence_penalty"
	settingBaseURL          = "base_url"
)

// ConfigStore holds the process-wide default ServiceConfig.
type ConfigStore interface {
	GetDefaultConfig() model.ServiceConfig
	SetDefaultConfig(patch model.ServiceConfigPatch) model.ServiceConfig
}

type SettingsService struct {
	repo     repository.SettingsRepository
	store    ConfigStore
	registry *registry.Registry
}

func NewSettingsService(repo repository.SettingsRepository, store ConfigStore, reg *registry.Registry) *SettingsService {
	return &SettingsService{repo: repo, store: store, registry: reg}
}

// InitAndGet restores persisted settings into the config store. When nothing
// has been persisted yet, the store's current (environment-derived) config is
// saved instead, so the next start sees the same defaults.
func (s *SettingsService) InitAndGet(ctx context.Context) model.ServiceConfig {
	values, err := s.repo.GetSettings(ctx)
	if err != nil {
		slog.Warn("Could not read stored settings, using defaults", "error", err)
		return s.Get()
	}

	if len(values) == 0 {
		slog.Info("No stored settings found, persisting current defaults")
		if err := s.repo.SaveSettings(ctx, settingsToValues(s.store.GetDefaultConfig())); err != nil {
			slog.Error("Could not persist default settings", "error", err)
		}
		return s.Get()
	}

	s.store.SetDefaultConfig(valuesToPatch(values))
	slog.Info("Restored stored settings", "count", len(values))
	return s.Get()
}

// Get returns the current default config without its API key.
func (s *SettingsService) Get() model.ServiceConfig {
	cfg := s.store.GetDefaultConfig()
	cfg.APIKey = ""
	return cfg
}

// Save validates and applies patch, then persists the resulting config. A
// patched API key is applied in memory only.
func (s *SettingsService) Save(ctx context.Context, patch model.ServiceConfigPatch) (model.ServiceConfig, error) {
	if patch.Provider != nil {
		if _, ok := s.registry.Provider(*patch.Provider); !ok {
			return model.ServiceConfig{}, fmt.Errorf("%w: unknown provider %q", apperrors.ErrValidation, *patch.Provider)
		}
	}
	if patch.Temperature != nil && (*patch.Temperature < 0 || *patch.Temperature > 2) {
		return model.ServiceConfig{}, fmt.Errorf("%w: temperature must be between 0 and 2", apperrors.ErrValidation)
	}
	if patch.MaxTokens != nil && *patch.MaxTokens <= 0 {
		return model.ServiceConfig{}, fmt.Errorf("%w: maxTokens must be positive", apperrors.ErrValidation)
	}
	if patch.TopP != nil && (*patch.TopP < 0 || *patch.TopP > 1) {
		return model.ServiceConfig{}, fmt.Errorf("%w: topP must be between 0 and 1", apperrors.ErrValidation)
	}

	cfg := s.store.SetDefaultConfig(patch)
	if err := s.repo.SaveSettings(ctx, settingsToValues(cfg)); err != nil {
		return model.ServiceConfig{}, fmt.Errorf("could not persist settings: %w", err)
	}
	cfg.APIKey = ""
	return cfg, nil
}

func settingsToValues(cfg model.ServiceConfig) map[string]string {
	return map[string]string{
		settingProvider:         string(cfg.Provider),
		settingModel:            cfg.Model,
		settingTemperature:      strconv.FormatFloat(cfg.Temperature, 'f', -1, 64),
		settingMaxTokens:        strconv.Itoa(cfg.MaxTokens),
		settingTopP:             strconv.FormatFloat(cfg.TopP, 'f', -1, 64),
		settingFrequencyPenalty: strconv.FormatFloat(cfg.FrequencyPenalty, 'f', -1, 64),
		settingPresencePenalty:  strconv.FormatFloat(cfg.PresencePenalty, 'f', -1, 64),
		settingBaseURL:          cfg.BaseURL,
	}
}

// valuesToPatch converts stored rows back into a patch. Rows that do not
// parse are skipped.
func valuesToPatch(values map[string]string) model.ServiceConfigPatch {
	var patch model.ServiceConfigPatch
	if v, ok := values[settingProvider]; ok && v != "" {
		p := model.Provider(v)
		patch.Provider = &p
	}
	if v, ok := values[settingModel]; ok && v != "" {
		patch.Model = &v
	}
	if v, ok := values[settingBaseURL]; ok {
		patch.BaseURL = &v
	}
	if v, ok := values[settingMaxTokens]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			patch.MaxTokens = &n
		} else {
			slog.Warn("Ignoring unreadable setting", "key", settingMaxTokens, "value", v)
		}
	}
	floats := map[string]**float64{
		settingTemperature:      &patch.Temperature,
		settingTopP:             &patch.TopP,
		settingFrequencyPenalty: &patch.FrequencyPenalty,
		settingPresencePenalty:  &patch.PresencePenalty,
	}
	for key, dst := range floats {
		v, ok := values[key]
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			slog.Warn("Ignoring unreadable setting", "key", key, "value", v)
			continue
		}
		*dst = &f
	}
	return patch
}
