package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/model"
	"mentor-ai/backend/internal/registry"
	"mentor-ai/backend/internal/repository"
)

const defaultKeySecret = "mentor-ai"

// KeyService stores provider API keys. Keys are XOR-obfuscated and base64
// encoded before they reach the repository. This only keeps keys out of
// plain sight in the database file; it is not encryption.
type KeyService struct {
	repo     repository.KeyRepository
	registry *registry.Registry
	secret   []byte
}

func NewKeyService(repo repository.KeyRepository, reg *registry.Registry, secret string) *KeyService {
	if secret == "" {
		secret = defaultKeySecret
	}
	return &KeyService{repo: repo, registry: reg, secret: []byte(secret)}
}

// Set stores key for provider, replacing any previous value. Providers the
// registry does not know are rejected.
func (s *KeyService) Set(ctx context.Context, provider model.Provider, key string) error {
	key = strings.TrimSpace(key)
	if provider == "" || key == "" {
		return fmt.Errorf("%w: provider and key are required", apperrors.ErrValidation)
	}
	if _, ok := s.registry.Provider(provider); !ok {
		return fmt.Errorf("%w: unknown provider %q", apperrors.ErrValidation, provider)
	}
	if err := s.repo.SetKey(ctx, provider, s.obfuscate(key)); err != nil {
		return fmt.Errorf("could not store key for %s: %w", provider, err)
	}
	slog.Info("API key stored", "provider", provider)
	return nil
}

// Get returns the stored key for provider, or "" when none is stored or the
// stored value cannot be read.
func (s *KeyService) Get(ctx context.Context, provider model.Provider) (string, error) {
	value, err := s.repo.GetKey(ctx, provider)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Warn("Could not read stored API key", "provider", provider, "error", err)
		}
		return "", nil
	}
	key, err := s.reveal(value)
	if err != nil {
		slog.Warn("Discarding unreadable API key", "provider", provider, "error", err)
		return "", nil
	}
	return key, nil
}

// Delete removes the key for provider. Deleting a missing key is not an error.
func (s *KeyService) Delete(ctx context.Context, provider model.Provider) error {
	if err := s.repo.DeleteKey(ctx, provider); err != nil {
		return fmt.Errorf("could not delete key for %s: %w", provider, err)
	}
	slog.Info("API key deleted", "provider", provider)
	return nil
}

func (s *KeyService) Has(ctx context.Context, provider model.Provider) bool {
	key, _ := s.Get(ctx, provider)
	return key != ""
}

// Providers lists the providers that have a stored key.
func (s *KeyService) Providers(ctx context.Context) []model.Provider {
	providers, err := s.repo.ListKeyProviders(ctx)
	if err != nil {
		slog.Warn("Could not list stored API keys", "error", err)
		return []model.Provider{}
	}
	return providers
}

func (s *KeyService) obfuscate(key string) string {
	return base64.StdEncoding.EncodeToString(s.xor([]byte(key)))
}

func (s *KeyService) reveal(value string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return string(s.xor(raw)), nil
}

func (s *KeyService) xor(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ s.secret[i%len(s.secret)]
	}
	return out
}
