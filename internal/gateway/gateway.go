// Package gateway presents one request/response contract over every provider
// in the registry. It selects the provider and model for a call, resolves
// credentials, retries transient failures, falls back to other providers and
// prices the resulting usage.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/llm"
	"mentor-ai/backend/internal/model"
	"mentor-ai/backend/internal/registry"
	"mentor-ai/backend/internal/tokens"
)

// KeyLookup returns the stored API key for a provider, or "" when none is
// stored.
type KeyLookup interface {
	Get(ctx context.Context, provider model.Provider) (string, error)
}

// ClientFactory builds a provider client. llm.New is the production factory.
type ClientFactory func(name model.Provider, opts llm.Options) (llm.Provider, error)

// Options tunes the gateway's failure handling.
type Options struct {
	// Fallbacks are tried in order, each with its default model, after the
	// selected provider has exhausted its retries.
	Fallbacks []model.Provider
	// MaxRetries is the number of extra attempts after the first.
	MaxRetries int
	// RateLimit is requests per second per provider; zero disables limiting.
	RateLimit   float64
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	Keys        KeyLookup
	HTTPClient  *http.Client
	Factory     ClientFactory
}

const (
	defaultBaseBackoff = 500 * time.Millisecond
	defaultMaxBackoff  = 8 * time.Second
)

// Gateway is safe for concurrent use.
type Gateway struct {
	registry *registry.Registry
	opts     Options

	mu     sync.RWMutex
	config model.ServiceConfig

	limiterMu sync.Mutex
	limiters  map[model.Provider]*rate.Limiter
}

// New creates a gateway whose default configuration is cfg.
func New(reg *registry.Registry, cfg model.ServiceConfig, opts Options) *Gateway {
	if opts.Factory == nil {
		opts.Factory = llm.New
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = defaultBaseBackoff
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = defaultMaxBackoff
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &Gateway{
		registry: reg,
		opts:     opts,
		config:   cfg,
		limiters: make(map[model.Provider]*rate.Limiter),
	}
}

// ConfigFromEnv reads the initial ServiceConfig from AI_* environment
// variables.
func ConfigFromEnv() (model.ServiceConfig, error) {
	var cfg model.ServiceConfig
	if err := env.Parse(&cfg); err != nil {
		return model.ServiceConfig{}, fmt.Errorf("%w: parse AI_* environment: %v", apperrors.ErrConfiguration, err)
	}
	return cfg, nil
}

// GetDefaultConfig returns a copy of the current process-wide configuration.
func (g *Gateway) GetDefaultConfig() model.ServiceConfig {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// SetDefaultConfig merges patch into the current configuration and returns
// the result. Provider/model combinations are not checked here; a bad pair
// surfaces when a call is issued.
func (g *Gateway) SetDefaultConfig(patch model.ServiceConfigPatch) model.ServiceConfig {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config = patch.Apply(g.config)
	slog.Info("Default AI configuration updated", "provider", g.config.Provider, "model", g.config.Model)
	return g.config
}

func (g *Gateway) GetAvailableProviders() []model.Provider {
	return g.registry.Providers()
}

// GetModelsForProvider returns an empty slice for unknown providers.
func (g *Gateway) GetModelsForProvider(provider model.Provider) []string {
	return g.registry.Models(provider)
}

func (g *Gateway) EstimateTokens(text string) int {
	return tokens.Estimate(text)
}

// CalculateCost prices usage; unknown provider/model pairs fail with
// ErrConfiguration.
func (g *Gateway) CalculateCost(usage model.Usage, provider model.Provider, modelID string) (decimal.Decimal, error) {
	return g.registry.Cost(usage, provider, modelID)
}

// HasCredentials reports whether provider can be called: it is keyless or an
// API key is configured or stored for it.
func (g *Gateway) HasCredentials(ctx context.Context, provider model.Provider) bool {
	info, ok := g.registry.Provider(provider)
	if !ok {
		return false
	}
	if info.Keyless {
		return true
	}
	key, _ := g.resolveKey(ctx, provider, "")
	return key != ""
}

// TestConnection probes provider (or the default provider when empty). It
// never fails; any error yields false.
func (g *Gateway) TestConnection(ctx context.Context, provider model.Provider) bool {
	if provider == "" {
		provider = g.GetDefaultConfig().Provider
	}
	client, err := g.client(ctx, provider, "")
	if err != nil {
		slog.Debug("Connection test skipped", "provider", provider, "error", err)
		return false
	}
	if err := client.Ping(ctx); err != nil {
		slog.Debug("Connection test failed", "provider", provider, "error", err)
		return false
	}
	return true
}

// TestAllConnections probes every provider concurrently.
func (g *Gateway) TestAllConnections(ctx context.Context) map[model.Provider]bool {
	providers := g.registry.Providers()
	results := make([]bool, len(providers))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, p := range providers {
		group.Go(func() error {
			results[i] = g.TestConnection(groupCtx, p)
			return nil
		})
	}
	_ = group.Wait()

	out := make(map[model.Provider]bool, len(providers))
	for i, p := range providers {
		out[p] = results[i]
	}
	return out
}

// target is one provider/model pair the gateway may try for a call.
type target struct {
	provider model.Provider
	model    string
}

// plan returns the selected target followed by the fallbacks.
func (g *Gateway) plan(opts model.ChatOptions) []target {
	cfg := g.GetDefaultConfig()

	primary := target{provider: opts.Provider, model: opts.Model}
	if primary.provider == "" && primary.model != "" {
		if m, ok := g.registry.Find(primary.model); ok {
			primary.provider = m.Provider
		}
	}
	if primary.provider == "" {
		primary.provider = cfg.Provider
	}
	if primary.model == "" {
		if primary.provider == cfg.Provider && cfg.Model != "" {
			primary.model = cfg.Model
		} else {
			primary.model, _ = g.registry.DefaultModel(primary.provider)
		}
	}

	targets := []target{primary}
	for _, fb := range g.opts.Fallbacks {
		if fb == primary.provider {
			continue
		}
		m, ok := g.registry.DefaultModel(fb)
		if !ok {
			continue
		}
		targets = append(targets, target{provider: fb, model: m})
	}
	return targets
}

// resolveKey picks the API key for provider: the explicit key, then the
// default config's key when it targets the same provider, then the key store.
func (g *Gateway) resolveKey(ctx context.Context, provider model.Provider, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	cfg := g.GetDefaultConfig()
	if cfg.Provider == provider && cfg.APIKey != "" {
		return cfg.APIKey, nil
	}
	if g.opts.Keys == nil {
		return "", nil
	}
	key, err := g.opts.Keys.Get(ctx, provider)
	if err != nil {
		return "", fmt.Errorf("lookup key for %s: %w", provider, err)
	}
	return key, nil
}

// client builds the provider client with its resolved key and base URL.
func (g *Gateway) client(ctx context.Context, provider model.Provider, explicitKey string) (llm.Provider, error) {
	info, ok := g.registry.Provider(provider)
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider %q", apperrors.ErrConfiguration, provider)
	}
	key, err := g.resolveKey(ctx, provider, explicitKey)
	if err != nil {
		return nil, err
	}
	if key == "" && !info.Keyless {
		return nil, fmt.Errorf("%w: no API key configured for provider %q", apperrors.ErrConfiguration, provider)
	}

	baseURL := info.DefaultBaseURL
	if cfg := g.GetDefaultConfig(); cfg.Provider == provider && cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	return g.opts.Factory(provider, llm.Options{APIKey: key, BaseURL: baseURL, HTTPClient: g.opts.HTTPClient})
}

// request assembles the provider-neutral request. Sampling parameters come
// from the call options, falling back to the default config.
func (g *Gateway) request(t target, messages []model.ChatMessage, opts model.ChatOptions) *llm.Request {
	cfg := g.GetDefaultConfig()
	req := &llm.Request{
		Model:     t.model,
		System:    opts.System,
		Messages:  messages,
		MaxTokens: cfg.MaxTokens,
	}
	temperature := cfg.Temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	req.Temperature = &temperature
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	topP, freq, pres := cfg.TopP, cfg.FrequencyPenalty, cfg.PresencePenalty
	if topP > 0 && topP < 1 {
		req.TopP = &topP
	}
	if freq != 0 {
		req.FrequencyPenalty = &freq
	}
	if pres != 0 {
		req.PresencePenalty = &pres
	}
	return req
}

func (g *Gateway) limiter(provider model.Provider) *rate.Limiter {
	g.limiterMu.Lock()
	defer g.limiterMu.Unlock()
	l, ok := g.limiters[provider]
	if !ok {
		limit := rate.Inf
		burst := 1
		if g.opts.RateLimit > 0 {
			limit = rate.Limit(g.opts.RateLimit)
			burst = max(1, int(g.opts.RateLimit))
		}
		l = rate.NewLimiter(limit, burst)
		g.limiters[provider] = l
	}
	return l
}

func (g *Gateway) backoff(attempt int) time.Duration {
	d := g.opts.BaseBackoff << attempt
	if d <= 0 || d > g.opts.MaxBackoff {
		return g.opts.MaxBackoff
	}
	return d
}

// withRetry runs call, waiting on the provider's rate limiter before each
// attempt and backing off exponentially between retryable failures.
func (g *Gateway) withRetry(ctx context.Context, provider model.Provider, call func() error) error {
	for attempt := 0; ; attempt++ {
		if err := g.limiter(provider).Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter for %s: %w", provider, err)
		}
		err := call()
		if err == nil || !llm.IsRetryable(err) || attempt >= g.opts.MaxRetries {
			return err
		}
		delay := g.backoff(attempt)
		slog.Warn("Provider call failed, retrying", "provider", provider, "attempt", attempt+1, "delay", delay, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// forEachTarget runs call against each target in order until one succeeds.
// Only provider and configuration failures move on to the next target.
func (g *Gateway) forEachTarget(ctx context.Context, targets []target, call func(target) error) error {
	var errs []error
	for i, t := range targets {
		err := call(t)
		if err == nil {
			if i > 0 {
				slog.Info("Request served by fallback provider", "provider", t.provider, "model", t.model)
			}
			return nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil || !(errors.Is(err, apperrors.ErrProvider) || errors.Is(err, apperrors.ErrConfiguration)) {
			break
		}
		if i < len(targets)-1 {
			slog.Warn("Provider failed, trying fallback", "provider", t.provider, "next", targets[i+1].provider, "error", err)
		}
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// usage normalizes provider-reported counts, estimating them when the
// provider reported nothing, and prices the result. Models missing from the
// catalog are priced at zero.
func (g *Gateway) usage(reported *llm.TokenUsage, t target, messages []model.ChatMessage, system, completion string) model.Usage {
	var u model.Usage
	if reported != nil && (reported.InputTokens > 0 || reported.OutputTokens > 0) {
		u.PromptTokens = reported.InputTokens
		u.CompletionTokens = reported.OutputTokens
	} else {
		u.PromptTokens = tokens.Estimate(system)
		for _, m := range messages {
			u.PromptTokens += tokens.Estimate(m.Content)
		}
		u.CompletionTokens = tokens.Estimate(completion)
		u.Estimated = true
	}
	u.TotalTokens = u.PromptTokens + u.CompletionTokens

	cost, err := g.registry.Cost(u, t.provider, t.model)
	if err != nil {
		slog.Debug("No pricing for model, cost recorded as zero", "provider", t.provider, "model", t.model)
		cost = decimal.Zero
	}
	u.Cost = cost
	return u
}

func validateMessages(messages []model.ChatMessage) error {
	if len(messages) == 0 {
		return fmt.Errorf("%w: messages must not be empty", apperrors.ErrValidation)
	}
	return nil
}
