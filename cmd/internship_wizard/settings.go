package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jonathan/internship-wizard/internal/backend"
	"github.com/jonathan/internship-wizard/internal/config"
	"github.com/jonathan/internship-wizard/internal/session"
	"github.com/spf13/cobra"
)

const defaultBackendHint = config.DefaultBackendURL

var (
	globalConfigPath  string
	globalBackendURL  string
	globalTimeout     int
	globalDatabaseURL string
	globalUserID      string
	globalVerbose     bool
)

// loadSettings resolves configuration in order of precedence: flags, then
// environment, then config file, then built-in defaults.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if globalConfigPath != "" {
		loaded, err := config.LoadConfig(globalConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg = cfg.FromEnv()

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("backend-url") {
		cfg.BackendURL = globalBackendURL
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = globalTimeout
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = globalDatabaseURL
	}
	if flags.Changed("user-id") {
		cfg.UserID = globalUserID
	}
	if flags.Changed("verbose") {
		cfg.Verbose = globalVerbose
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.MergeWithDefaults(config.Defaults()), nil
}

// commandContext returns the command's context, or a background context when
// the command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newClient(cfg config.Config, logger *slog.Logger) (*backend.Client, error) {
	opts := backend.DefaultOptions()
	opts.Timeout = cfg.Timeout()
	opts.UserID = cfg.UserID
	opts.Logger = logger
	return backend.New(cfg.BackendURL, opts)
}

// openProfiles returns the PostgreSQL profile store when a database URL is
// configured and the matching service's profile endpoints otherwise. The
// returned func releases any connection.
func openProfiles(ctx context.Context, cfg config.Config, client *backend.Client) (session.ProfileStore, func(), error) {
	if cfg.DatabaseURL == "" {
		return client, func() {}, nil
	}
	store, closeStore, err := openDatabaseStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return store, closeStore, nil
}

// newSession builds a session wired to the matching service and the profile store.
func newSession(ctx context.Context, cmd *cobra.Command) (*session.Session, config.Config, func(), error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, cfg, nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	client, err := newClient(cfg, logger)
	if err != nil {
		return nil, cfg, nil, err
	}
	profiles, closeProfiles, err := openProfiles(ctx, cfg, client)
	if err != nil {
		return nil, cfg, nil, err
	}
	sess := session.New(session.Options{
		Catalog:                client,
		Recommender:            client,
		Goals:                  client,
		Extractor:              client,
		Profiles:               profiles,
		NumRecommendations:     cfg.NumRecommendations,
		GoalNumRecommendations: config.GoalNumRecommendations,
		Logger:                 logger,
	})
	return sess, cfg, closeProfiles, nil
}
