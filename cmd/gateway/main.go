package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"painel-web/middleware/pageinit"
	"painel-web/middleware/pageinit/domain"
	"painel-web/middleware/pageinit/infra"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := readConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("gateway stopped", zap.Error(err))
	}
}

func run(cfg config, logger *zap.Logger) error {
	target, err := url.Parse(cfg.upstreamURL)
	if err != nil {
		return fmt.Errorf("invalid UPSTREAM_URL: %w", err)
	}

	pageCfg, err := pageinit.LoadConfig(cfg.pageInitConfig)
	if err != nil {
		return err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn("proxy error", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var rdb *redis.Client
	if cfg.storage == "redis" || cfg.stats == "redis" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.redisAddr,
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		pingCancel()
		if err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
	}

	var storage domain.Storage
	switch cfg.storage {
	case "redis":
		storage = infra.NewRedisStorage(rdb,
			infra.WithStoragePrefix(cfg.redisPrefix+":prefs"),
			infra.WithStorageTTL(cfg.redisTTL),
		)
	default:
		storage = infra.NewMemoryStorage()
	}

	var coalescing *infra.CoalescingStorage
	if cfg.coalesceWait > 0 {
		coalescing, err = infra.NewCoalescingStorage(storage, cfg.coalesceWait, infra.WithCoalesceLogger(logger))
		if err != nil {
			return err
		}
		coalescing.StartJanitor(ctx)
		storage = coalescing
	}

	mux := http.NewServeMux()

	var stats domain.StatsStore
	switch cfg.stats {
	case "memory":
		stats = infra.NewMemoryStatsStore(infra.WithTrackScopes(cfg.statsTrackScopes))
	case "redis":
		stats = infra.NewRedisStatsStore(rdb,
			infra.WithStatsPrefix(cfg.redisPrefix+":stats"),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsBucket(cfg.statsBucket),
			infra.WithStatsTrackScopes(cfg.statsTrackScopes),
		)
	case "prometheus":
		reg := prometheus.NewRegistry()
		ps, err := infra.NewPrometheusStats(reg)
		if err != nil {
			return err
		}
		stats = ps
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	h := pageinit.Middleware(pageinit.Options{
		Storage:               storage,
		Stats:                 stats,
		Config:                &pageCfg,
		SessionCookie:         cfg.sessionCookie,
		TrustXForwardedFor:    cfg.trustXFF,
		MaxConcurrentRewrites: cfg.maxRewrites,
		AcquireTimeout:        cfg.rewriteTimeout,
		AddReportHeaders:      cfg.reportHeaders,
		Logger:                logger,
	})(proxy)
	mux.Handle("/", h)

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	logger.Info("gateway listening",
		zap.String("addr", cfg.listenAddr),
		zap.Stringer("upstream", target),
	)
	logger.Info("pageinit",
		zap.Bool("theme", pageCfg.ForceLightTheme),
		zap.Bool("toasts", pageCfg.Toasts),
		zap.Bool("spinner", pageCfg.LoadingSpinner),
		zap.Bool("tooltips", pageCfg.Tooltips),
		zap.String("storage", cfg.storage),
		zap.Duration("coalesceWait", cfg.coalesceWait),
		zap.String("stats", cfg.stats),
		zap.String("statsBucket", cfg.statsBucket),
		zap.Bool("statsTrackScopes", cfg.statsTrackScopes),
		zap.Int("maxRewrites", cfg.maxRewrites),
	)

	return serve(ctx, srv, func(ctx context.Context) {
		if coalescing == nil {
			return
		}
		if err := coalescing.Flush(ctx); err != nil {
			logger.Warn("flush pending removals", zap.Error(err))
		}
	})
}

// serve roda srv até ctx encerrar. Só retorna depois do Shutdown e do drain,
// para que as remoções pendentes cheguem ao storage antes do processo sair.
func serve(ctx context.Context, srv *http.Server, drain func(context.Context)) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if drain != nil {
		drain(shutdownCtx)
	}
	<-errCh
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if strings.EqualFold(level, "debug") {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

type config struct {
	listenAddr     string
	upstreamURL    string
	pageInitConfig string
	logLevel       string

	sessionCookie string
	trustXFF      bool

	storage      string
	coalesceWait time.Duration
	stats        string

	statsTTL         time.Duration
	statsBucket      string
	statsTrackScopes bool

	redisAddr     string
	redisPassword string
	redisDB       int
	redisPrefix   string
	redisTTL      time.Duration

	maxRewrites    int
	rewriteTimeout time.Duration
	reportHeaders  bool
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.upstreamURL = os.Getenv("UPSTREAM_URL")
	cfg.pageInitConfig = os.Getenv("PAGEINIT_CONFIG")
	cfg.logLevel = getenvDefault("LOG_LEVEL", "info")

	cfg.sessionCookie = getenvDefault("SESSION_COOKIE", "session")
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)

	cfg.storage = strings.ToLower(getenvDefault("PAGEINIT_STORAGE", "memory"))
	cfg.coalesceWait = getenvDurationDefault("PAGEINIT_COALESCE_WAIT", 500*time.Millisecond)
	cfg.stats = strings.ToLower(getenvDefault("PAGEINIT_STATS", "none"))
	cfg.statsTTL = getenvDurationDefault("PAGEINIT_STATS_TTL", 24*time.Hour)
	cfg.statsBucket = strings.ToLower(getenvDefault("PAGEINIT_STATS_BUCKET", "minute"))
	cfg.statsTrackScopes = getenvBoolDefault("PAGEINIT_STATS_TRACK_SCOPES", false)

	cfg.redisAddr = os.Getenv("PAGEINIT_REDIS_ADDR")
	cfg.redisPassword = os.Getenv("PAGEINIT_REDIS_PASSWORD")
	cfg.redisDB = getenvIntDefault("PAGEINIT_REDIS_DB", 0)
	cfg.redisPrefix = strings.Trim(getenvDefault("PAGEINIT_REDIS_PREFIX", "pageinit"), ":")
	cfg.redisTTL = getenvDurationDefault("PAGEINIT_REDIS_TTL", 30*24*time.Hour)

	cfg.maxRewrites = getenvIntDefault("PAGEINIT_MAX_REWRITES", 64)
	cfg.rewriteTimeout = getenvDurationDefault("PAGEINIT_REWRITE_TIMEOUT", 50*time.Millisecond)
	cfg.reportHeaders = getenvBoolDefault("PAGEINIT_REPORT_HEADERS", false)

	if cfg.upstreamURL == "" {
		return config{}, errors.New("UPSTREAM_URL is required")
	}
	switch cfg.storage {
	case "memory", "redis":
	default:
		return config{}, fmt.Errorf("PAGEINIT_STORAGE must be memory or redis, got %q", cfg.storage)
	}
	switch cfg.stats {
	case "none", "memory", "redis", "prometheus":
	default:
		return config{}, fmt.Errorf("PAGEINIT_STATS must be none, memory, redis or prometheus, got %q", cfg.stats)
	}
	if cfg.statsBucket != "minute" && cfg.statsBucket != "none" {
		return config{}, fmt.Errorf("PAGEINIT_STATS_BUCKET must be minute or none, got %q", cfg.statsBucket)
	}
	if (cfg.storage == "redis" || cfg.stats == "redis") && strings.TrimSpace(cfg.redisAddr) == "" {
		return config{}, errors.New("PAGEINIT_REDIS_ADDR is required when redis storage or stats are enabled")
	}
	if cfg.coalesceWait < 0 {
		return config{}, errors.New("PAGEINIT_COALESCE_WAIT must be >= 0")
	}
	if cfg.maxRewrites < 0 {
		return config{}, errors.New("PAGEINIT_MAX_REWRITES must be >= 0")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
