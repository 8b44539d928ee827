package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	apihttp "github.com/kniranjan1001/telegram-seach-bot/internal/api/http"
	"github.com/kniranjan1001/telegram-seach-bot/internal/app"
	"github.com/kniranjan1001/telegram-seach-bot/internal/bot"
	"github.com/kniranjan1001/telegram-seach-bot/internal/catalog"
	"github.com/kniranjan1001/telegram-seach-bot/internal/cleanup"
	"github.com/kniranjan1001/telegram-seach-bot/internal/gate"
	"github.com/kniranjan1001/telegram-seach-bot/internal/lookup"
	"github.com/kniranjan1001/telegram-seach-bot/internal/metrics"
	"github.com/kniranjan1001/telegram-seach-bot/internal/present"
	mongorepo "github.com/kniranjan1001/telegram-seach-bot/internal/repository/mongo"
	"github.com/kniranjan1001/telegram-seach-bot/internal/telemetry"
)

func main() {
	cfg := app.LoadConfig()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	metrics.Register(prometheus.DefaultRegisterer)

	if cfg.BotToken == "" {
		logger.Error("BOT_TOKEN is required")
		os.Exit(1)
	}
	if len(cfg.CatalogURLs) == 0 {
		logger.Error("CATALOG_URLS is required")
		os.Exit(1)
	}

	shutdownTracer, err := telemetry.Init(context.Background(), "movie-bot")
	if err != nil {
		logger.Warn("otel init failed", slog.String("error", err.Error()))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	logger.Info("configuration loaded",
		slog.String("service", "movie-bot"),
		slog.Int("catalogSources", len(cfg.CatalogURLs)),
		slog.Int("resultLimit", cfg.ResultLimit),
		slog.String("selection", string(cfg.Selection)),
		slog.Duration("deleteAfter", cfg.DeleteAfter),
		slog.Bool("gated", cfg.ChannelID != 0),
		slog.Bool("hasMongo", strings.TrimSpace(cfg.MongoURI) != ""),
		slog.Bool("hasRedis", strings.TrimSpace(cfg.RedisURL) != ""),
		slog.Bool("webhook", cfg.WebhookURL != ""),
		slog.String("httpAddr", cfg.HTTPAddr),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalogClient := &http.Client{
		Timeout:   cfg.CatalogTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	sources := make([]catalog.Source, 0, len(cfg.CatalogURLs))
	for _, endpoint := range cfg.CatalogURLs {
		sources = append(sources, catalog.NewHTTPSource(catalog.HTTPSourceConfig{
			Endpoint:  endpoint,
			UserAgent: cfg.UserAgent,
			Client:    catalogClient,
		}))
	}
	fetcher := catalog.NewFetcher(catalog.FetcherConfig{
		Sources:  sources,
		Attempts: cfg.CatalogAttempts,
		Delay:    cfg.CatalogRetryDelay,
		Timeout:  cfg.CatalogTimeout,
		Logger:   logger,
	})

	lookupService := lookup.NewService(fetcher, lookup.MatchOptions{
		Limit:         cfg.ResultLimit,
		MinSimilarity: cfg.MinSimilarity,
		Selection:     cfg.Selection,
	}, logger)
	presenter := present.NewPresenter(cfg.RequestURL)

	users, disconnectMongo := buildUserRepository(rootCtx, cfg, logger)
	defer disconnectMongo()

	tg, err := gotgbot.NewBot(cfg.BotToken, nil)
	if err != nil {
		logger.Error("telegram bot init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	api := bot.NewTelegramAPI(tg)
	memberGate := gate.New(api, cfg.ChannelID, logger, buildGateOptions(rootCtx, cfg, logger)...)
	cleaner := cleanup.NewScheduler(api, logger)
	defer cleaner.Close()

	// A nil *UserRepository must stay a nil interface inside the bot.
	var userStore bot.UserStore
	if users != nil {
		userStore = users
	}
	tgBot := bot.New(tg, lookupService, presenter, memberGate, userStore, cleaner, cfg, logger)

	opsOpts := []apihttp.ServerOption{
		apihttp.WithLogger(logger),
		apihttp.WithDeletionQueue(cleaner),
	}
	if users != nil {
		opsOpts = append(opsOpts, apihttp.WithUserCounter(users))
	}
	opsServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apihttp.NewServer(opsOpts...),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		errCh <- tgBot.Run(rootCtx)
	}()

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("fatal runtime error", slog.String("error", err.Error()))
			stop()
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("ops server shutdown error", slog.String("error", err.Error()))
	}
	logger.Info("movie bot stopped")
}

// buildUserRepository connects to MongoDB when configured. The bot degrades
// rather than dies without it: registration, broadcast and userlist are off.
func buildUserRepository(ctx context.Context, cfg app.Config, logger *slog.Logger) (*mongorepo.UserRepository, func()) {
	noop := func() {}
	uri := strings.TrimSpace(cfg.MongoURI)
	if uri == "" {
		logger.Warn("mongo not configured, user features disabled")
		return nil, noop
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongorepo.Connect(connectCtx, uri)
	if err != nil {
		logger.Warn("mongo unreachable, user features disabled", slog.String("error", err.Error()))
		return nil, noop
	}
	logger.Info("mongo connected", slog.String("database", cfg.MongoDatabase))

	disconnect := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}
	return mongorepo.NewUserRepository(client.Database(cfg.MongoDatabase)), disconnect
}

func buildGateOptions(ctx context.Context, cfg app.Config, logger *slog.Logger) []gate.Option {
	redisURL := strings.TrimSpace(cfg.RedisURL)
	if redisURL == "" {
		return nil
	}
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("invalid redis url, membership cache disabled", slog.String("error", err.Error()))
		return nil
	}
	client := redis.NewClient(redisOpts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis not reachable, membership cache disabled", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("redis connected", slog.String("addr", redisOpts.Addr))
	return []gate.Option{gate.WithCache(client, cfg.MembershipTTL)}
}

func newLogger(levelRaw, formatRaw string) *slog.Logger {
	level := parseLogLevel(levelRaw)
	options := &slog.HandlerOptions{Level: level}
	if strings.ToLower(strings.TrimSpace(formatRaw)) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, options))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, options))
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
