package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/savelyev/oddsfeed/internal/alert"
	"github.com/savelyev/oddsfeed/internal/enrich"
	"github.com/savelyev/oddsfeed/internal/fetch"
	"github.com/savelyev/oddsfeed/internal/normalize"
	pkgconfig "github.com/savelyev/oddsfeed/internal/pkg/config"
	"github.com/savelyev/oddsfeed/internal/pkg/export"
	"github.com/savelyev/oddsfeed/internal/pkg/logging"
	"github.com/savelyev/oddsfeed/internal/pkg/models"
	"github.com/savelyev/oddsfeed/internal/pkg/performance"
	"github.com/savelyev/oddsfeed/internal/pkg/runner"
	"github.com/savelyev/oddsfeed/internal/pkg/storage"
)

const (
	defaultConfigPath = "configs/config.yaml"
	defaultInterval   = 10 * time.Minute
)

type config struct {
	configPath string
	runFor     time.Duration
	once       bool
}

func main() {
	if err := run(); err != nil {
		slog.Error("Feed service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	slog.Info("Starting feed service...")

	cfg := parseFlags()

	// Optional .env for local runs; env overrides fill the secret config fields
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded .env file")
	}

	slog.Info("Loading config", "path", cfg.configPath)
	appConfig, err := pkgconfig.Load(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	_, err = logging.SetupLogger(&appConfig.Logging, "feed-service")
	if err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	} else {
		slog.Info("Logging initialized", "service", "feed-service")
	}

	slog.Info("Config loaded successfully")

	svc, err := newService(appConfig)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := createContext(cfg.runFor)
	defer cancel()
	setupSignalHandler(ctx, cancel)

	if cfg.once {
		err := svc.runOnce(ctx)
		performance.GetTracker().PrintSummary()
		return err
	}

	interval := appConfig.Feed.Interval
	if interval <= 0 {
		interval = defaultInterval
		slog.Info("feed.interval not set, using default", "interval", interval)
	}

	svc.runLoop(ctx, interval)
	performance.GetTracker().PrintSummary()
	slog.Info("Feed service stopped gracefully")
	return nil
}

func parseFlags() config {
	var cfg config

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.DurationVar(&cfg.runFor, "run-for", 0, "Auto-stop after duration (e.g. 10s, 1m). 0 = run until SIGINT/SIGTERM")
	flag.BoolVar(&cfg.once, "once", false, "Run one feed cycle and exit")
	flag.Parse()
	return cfg
}

func createContext(runFor time.Duration) (context.Context, context.CancelFunc) {
	if runFor > 0 {
		return context.WithTimeout(context.Background(), runFor)
	}
	return context.WithCancel(context.Background())
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal, stopping feed service...", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			// Context already cancelled (timeout or parent cancellation)
			signal.Stop(sigChan)
			close(sigChan)
		}
	}()
}

// service wires the feed pipeline with its optional collaborators.
// Storage, cache and telegram stay nil when not configured.
type service struct {
	cfg        *pkgconfig.Config
	rss        *fetch.RSSClient
	browser    *fetch.BrowserFetcher
	normalizer *normalize.Normalizer
	assembler  *normalize.FeedAssembler
	enricher   enrich.Client
	store      storage.FeedStorage
	cache      *storage.RedisClient
	exporter   *export.Exporter
	notifier   *alert.TelegramNotifier
}

func newService(appConfig *pkgconfig.Config) (*service, error) {
	logger := slog.Default()

	dicts := normalize.DictionariesFromConfig(appConfig.Pipeline)
	normalizer, err := normalize.NewNormalizer(dicts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build normalizer: %w", err)
	}

	svc := &service{
		cfg:        appConfig,
		rss:        fetch.NewRSSClient(appConfig.Feed, appConfig.Fetcher.Timeout, logger),
		browser:    fetch.NewBrowserFetcher(appConfig.Fetcher, logger),
		normalizer: normalizer,
		assembler:  normalize.NewFeedAssembler(),
		enricher:   enrich.NewClient(appConfig.Enrich, logger),
		exporter:   export.NewExporter(),
	}

	if appConfig.Postgres.DSN != "" {
		store, err := storage.NewPostgresFeedStorage(&appConfig.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to init postgres storage: %w", err)
		}
		svc.store = store
	} else {
		slog.Info("Postgres storage disabled: no DSN configured")
	}

	if appConfig.Redis.Addr != "" {
		cache, err := storage.NewRedisClient(&appConfig.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis cache: %w", err)
		}
		svc.cache = cache
	} else {
		slog.Info("Redis cache disabled: no address configured")
	}

	if appConfig.Telegram.BotToken != "" && appConfig.Telegram.ChatID != 0 {
		// NewTelegramNotifier returns nil on failure; alerts just stay off then
		svc.notifier = alert.NewTelegramNotifier(appConfig.Telegram.BotToken, appConfig.Telegram.ChatID)
	} else {
		slog.Info("Telegram alerts disabled: no bot token or chat id configured")
	}

	return svc, nil
}

func (s *service) Close() {
	if s.notifier != nil {
		s.notifier.Stop()
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			slog.Warn("Failed to close storage", "error", err)
		}
	}
}

func (s *service) runLoop(ctx context.Context, interval time.Duration) {
	slog.Info("Starting periodic feed runs", "interval", interval)

	if err := s.runOnce(ctx); err != nil && ctx.Err() == nil {
		slog.Error("Feed run failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping periodic feed runs...")
			return
		case <-ticker.C:
			if err := s.runOnce(ctx); err != nil && ctx.Err() == nil {
				slog.Error("Feed run failed", "error", err)
			}
		}
	}
}

// runOnce executes one full cycle: feed fetch, page rendering, per-article
// normalization and enrichment, snapshot assembly, then all configured sinks.
func (s *service) runOnce(ctx context.Context) error {
	start := time.Now()
	timing := performance.RunTiming{StartedAt: start}

	phase := time.Now()
	meta, items, err := s.rss.FetchChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}
	timing.FeedFetch = time.Since(phase)
	slog.Info("Feed fetched", "title", meta.Title, "items", len(items))

	urls := make([]string, 0, len(items))
	for _, item := range items {
		urls = append(urls, item.Link)
	}
	phase = time.Now()
	pages, err := s.browser.FetchPages(ctx, urls)
	if err != nil {
		return fmt.Errorf("failed to fetch article pages: %w", err)
	}
	timing.PageFetch = time.Since(phase)
	slog.Info("Article pages fetched", "requested", len(urls), "fetched", len(pages))

	phase = time.Now()
	articles := s.normalizeAll(ctx, items, pages)
	timing.Normalize = time.Since(phase)

	snapshot := s.assembler.AssembleFeed(meta, articles)

	phase = time.Now()
	s.publish(ctx, &snapshot)
	timing.Publish = time.Since(phase)

	timing.Total = time.Since(start)
	timing.Articles = len(snapshot.Items)
	for i := range snapshot.Items {
		if snapshot.Items[i].Odds.HasLines() {
			timing.WithOdds++
		}
		if snapshot.Items[i].Error != "" {
			timing.Errors++
		}
	}
	performance.GetTracker().RecordRun(timing)

	slog.Info("Feed run finished", "items", len(snapshot.Items), "duration", timing.Total)
	return nil
}

// normalizeAll turns feed items plus their rendered pages into normalized
// articles, in feed order. Each article is processed independently; a failed
// one becomes an error-marker entry so the feed count is preserved.
func (s *service) normalizeAll(ctx context.Context, items []fetch.FeedItem, pages map[string]string) []models.NormalizedArticle {
	articles := make([]models.NormalizedArticle, len(items))

	opts := runner.DefaultOptions()
	opts.OnError = func(index int, err error) {
		slog.Error("Article processing failed", "url", items[index].Link, "error", err)
	}

	runner.Run(ctx, len(items), func(ctx context.Context, i int) error {
		item := items[i]

		bundle, err := fetch.ExtractBundle(item.Title, item.Link, pages[item.Link])
		if err != nil {
			articles[i] = models.NormalizedArticle{
				Title: item.Title,
				URL:   item.Link,
				Error: fmt.Sprintf("page extraction failed: %v", err),
			}
			return err
		}
		bundle.PubDate = item.PubDate
		bundle.Category = item.Category

		articles[i] = s.normalizer.NormalizeArticle(bundle)

		annotation, err := s.enricher.Annotate(ctx, articles[i])
		if err != nil {
			slog.Warn("Enrichment failed", "url", item.Link, "error", err)
		} else if annotation != nil {
			articles[i].Annotation = annotation
		}
		return nil
	}, opts)

	return articles
}

// publish pushes the snapshot to every configured sink. Sink failures are
// logged and never abort the run.
func (s *service) publish(ctx context.Context, snapshot *models.FeedSnapshot) {
	if s.store != nil {
		if err := s.store.StoreSnapshot(ctx, snapshot); err != nil {
			slog.Error("Failed to store snapshot", "error", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.CacheSnapshot(ctx, snapshot); err != nil {
			slog.Error("Failed to cache snapshot", "error", err)
		}
	}

	if s.cfg.Export.Path != "" {
		if err := s.exporter.WriteFile(snapshot, s.cfg.Export.Path); err != nil {
			slog.Error("Failed to export snapshot", "error", err)
		} else {
			slog.Info("Snapshot exported", "path", s.cfg.Export.Path)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendRunDigest(ctx, snapshot); err != nil {
			slog.Warn("Failed to queue telegram digest", "error", err)
		}
	}
}
