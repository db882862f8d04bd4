// Package app wires configuration, storage, services and the HTTP router
// into a runnable server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"mentor-ai/backend/internal/api"
	"mentor-ai/backend/internal/config"
	"mentor-ai/backend/internal/database"
	"mentor-ai/backend/internal/gateway"
	"mentor-ai/backend/internal/model"
	"mentor-ai/backend/internal/registry"
	"mentor-ai/backend/internal/repository"
	"mentor-ai/backend/internal/service"
)

const shutdownTimeout = 15 * time.Second

// App holds the long-lived resources of a running server.
type App struct {
	DB      *sql.DB
	Redis   *redis.Client
	Gateway *gateway.Gateway
	Server  *http.Server
}

// NewApp opens storage and builds every service and handler. Close releases
// what NewApp opened.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)
	app := &App{DB: db}

	conversationRepo := repository.NewSQLiteConversationRepository(db)
	if cfg.StorageBackend == config.StorageRedis {
		app.Redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		conversationRepo = repository.NewRedisConversationRepository(app.Redis)
		slog.Info("Conversations are stored in Redis.", "addr", cfg.RedisAddr)
	}

	reg := registry.Default()
	keyService := service.NewKeyService(repository.NewSQLiteKeyRepository(db), reg, cfg.KeyObfuscationSecret)

	initialConfig, err := gateway.ConfigFromEnv()
	if err != nil {
		app.Close()
		return nil, err
	}
	fallbacks := make([]model.Provider, 0, len(cfg.FallbackProviders))
	for _, name := range cfg.FallbackProviders {
		fallbacks = append(fallbacks, model.Provider(name))
	}
	gw := gateway.New(reg, initialConfig, gateway.Options{
		Fallbacks:  fallbacks,
		MaxRetries: cfg.ProviderMaxRetries,
		RateLimit:  cfg.ProviderRateLimit,
		Keys:       keyService,
	})
	app.Gateway = gw

	settingsService := service.NewSettingsService(repository.NewSQLiteSettingsRepository(db), gw, reg)
	aiConfig := settingsService.InitAndGet(context.Background())
	slog.Info("Loaded AI settings", "provider", aiConfig.Provider, "model", aiConfig.Model)

	conversationService := service.NewConversationService(conversationRepo, service.ConversationConfig{
		MaxContextTokens:     cfg.MaxContextTokens,
		CompressionThreshold: cfg.CompressionThreshold,
	})
	versionService := service.NewVersionService(repository.NewSQLiteRevisionRepository(db), cfg.MaxVersions)
	chatService := service.NewChatService(conversationService, gw)
	modelService := service.NewModelService(reg, gw)

	router := api.NewRouter(
		api.NewChatHandler(chatService),
		api.NewConversationHandler(conversationService, chatService),
		api.NewVersionHandler(versionService),
		api.NewModelHandler(modelService, settingsService, keyService),
	)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}
	return app, nil
}

// Close releases the database and Redis connections.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}
}

// Run loads configuration and serves until SIGINT or SIGTERM. It returns the
// process exit code.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()
	config.Watch(func(next *config.Config) {
		setupLogger(next.LogLevel)
		slog.Info("Log level reloaded", "level", next.LogLevel)
	})

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		errCh <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}
	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
