package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/themultilangtranslator-png/multilang-translator/internal/cache"
	"github.com/themultilangtranslator-png/multilang-translator/internal/cli"
	"github.com/themultilangtranslator-png/multilang-translator/internal/config"
	"github.com/themultilangtranslator-png/multilang-translator/internal/history"
	"github.com/themultilangtranslator-png/multilang-translator/internal/httpapi"
	"github.com/themultilangtranslator-png/multilang-translator/internal/line"
	"github.com/themultilangtranslator-png/multilang-translator/internal/logging"
	"github.com/themultilangtranslator-png/multilang-translator/internal/translation"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	readTimeout := fs.Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	shutdownTimeout := fs.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	service, lineClient, profiles := buildCore(cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		cancel()
	}()

	srv := httpapi.NewServer(service, lineClient, profiles, logger, httpapi.Options{
		Host:            cfg.Host,
		Port:            cfg.Port,
		ReadTimeout:     *readTimeout,
		WriteTimeout:    *writeTimeout,
		ShutdownTimeout: *shutdownTimeout,
		ChannelSecret:   cfg.LineChannelSecret,
		AllowUnsigned:   cfg.WebhookAllowUnsigned,
	})

	if err := srv.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		return 1
	}
	return 0
}

// buildCore wires the translation service, platform client, and profile
// resolver from configuration. Explicit stores are injected here so nothing in
// the pipeline relies on process-global state.
func buildCore(cfg *config.Config, logger zerolog.Logger) (*translation.Service, *line.Client, *line.ProfileResolver) {
	provider := translation.NewOpenAIProvider(
		cfg.TranslationEndpoint,
		cfg.TranslationModel,
		cfg.TranslationAPIKey,
		cfg.TranslationTimeout(),
	)

	var recorder translation.Recorder
	if cfg.HistoryDatabaseURL != "" {
		store, err := history.Open(cfg.HistoryDatabaseURL, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("history store disabled")
		} else {
			recorder = store
			logger.Info().Msg("history store enabled")
		}
	}

	service := translation.NewService(translation.Options{
		Provider:         provider,
		Store:            cache.NewStore(cfg.CacheMaxEntries),
		Recorder:         recorder,
		DefaultLanguages: cfg.DefaultLanguagesList(),
		CacheTTL:         cfg.CacheTTL(),
		Logger:           logger,
	})

	lineClient := line.NewClient("", cfg.LineChannelToken, line.DefaultClientTimeout)
	profiles := line.NewProfileResolver(lineClient, cache.NewStore(cfg.CacheMaxEntries), cfg.ProfileCacheTTL(), logger)

	return service, lineClient, profiles
}
