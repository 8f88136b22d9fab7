package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	sessionsadapter "github.com/bnema/genstudio-cli/internal/adapters/render/sessions"
	"github.com/bnema/genstudio-cli/internal/adapters/notify"
	"github.com/bnema/genstudio-cli/internal/adapters/repo/jsonfile"
	"github.com/bnema/genstudio-cli/internal/adapters/studio"
	"github.com/bnema/genstudio-cli/internal/application"
	"github.com/bnema/genstudio-cli/internal/domain"
	"github.com/bnema/genstudio-cli/internal/logging"
	"github.com/bnema/genstudio-cli/internal/ports"
	"github.com/spf13/viper"
)

const (
	apiBaseURLKey    = "api.base_url"
	pollIntervalKey  = "poll.interval"
	playerCommandKey = "player.command"
	ntfyTopicKey     = "notify.topic"

	defaultAPIBaseURL    = "http://localhost:8000"
	defaultPlayerCommand = "mpv"
)

type app struct {
	store           *application.Store
	submitter       *application.Submitter
	poller          *application.Poller
	repo            *jsonfile.Repository
	client          ports.StudioClient
	notifier        notify.Service
	sessionRenderer func(domain.Session, sessionsadapter.RenderOptions) (string, error)
	pollInterval    time.Duration
	playerCommand   string
	logger          *slog.Logger
	now             func() time.Time
}

func wireApp() (*app, error) {
	logger, err := logging.New(logging.Options{
		Level:  envOrDefault("GENSTUDIO_LOG_LEVEL", "warn"),
		Format: envOrDefault("GENSTUDIO_LOG_FORMAT", "console"),
	})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	cfg := viper.New()
	cfg.SetDefault(apiBaseURLKey, defaultAPIBaseURL)
	cfg.SetDefault(pollIntervalKey, application.DefaultPollInterval)
	cfg.SetDefault(playerCommandKey, defaultPlayerCommand)
	cfg.SetDefault(ntfyTopicKey, "")

	// NewRepository resolves ~/.genstudio/config.toml and reads it into cfg,
	// so the lookups below see the file's values.
	repo, err := jsonfile.NewRepository(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	clock := ports.SystemClock{}
	store := application.NewStore(repo, clock)
	client := studio.Client{
		BaseURL: envOrDefault("GENSTUDIO_API_URL", cfg.GetString(apiBaseURLKey)),
	}

	pollInterval := cfg.GetDuration(pollIntervalKey)
	if raw := os.Getenv("GENSTUDIO_POLL_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse GENSTUDIO_POLL_INTERVAL: %w", err)
		}
		pollInterval = parsed
	}

	return &app{
		store:           store,
		submitter:       application.NewSubmitter(store, client, clock, logger),
		poller:          application.NewPoller(store, client, clock, logger),
		repo:            repo,
		client:          client,
		notifier:        notify.NewService(envOrDefault("GENSTUDIO_NTFY_TOPIC", cfg.GetString(ntfyTopicKey)), 0),
		sessionRenderer: sessionsadapter.Render,
		pollInterval:    pollInterval,
		playerCommand:   envOrDefault("GENSTUDIO_PLAYER", cfg.GetString(playerCommandKey)),
		logger:          logger,
		now:             time.Now,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
