package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kixhq/kix/internal/catalog"
	"github.com/kixhq/kix/internal/config"
	"github.com/kixhq/kix/internal/httpserver"
	"github.com/kixhq/kix/internal/httpserver/deps"
	"github.com/kixhq/kix/internal/kv"
	"github.com/kixhq/kix/internal/lifecycle"
	"github.com/kixhq/kix/internal/logger"
	"github.com/kixhq/kix/internal/redis"
	"github.com/kixhq/kix/internal/sources/seedfile"
	"github.com/kixhq/kix/internal/telemetry"
	"github.com/kixhq/kix/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	store    kv.Store
	catalog  *catalog.Store
	sink     *telemetry.Sink
	sessions *lifecycle.Registry
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	store := newStore(cfg, loggerClient)
	cat := catalog.New(store, loggerClient)

	sink := telemetry.New(store, loggerClient, cfg.EventBuffer)

	sessions := lifecycle.NewRegistry(lifecycle.Config{
		ReadyTimeout: cfg.ReadyTimeout,
		LoadGrace:    cfg.LoadGrace,
	}, sink, loggerClient)

	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,
		TimeNow:   time.Now,

		Catalog:  cat,
		Sink:     sink,
		Sessions: sessions,

		StoreBackend: cfg.StoreBackend,

		AdminToken:        cfg.AdminToken,
		AdminAllowedCIDRS: cfg.AdminAllowedCIDRS,
		TrustProxy:        cfg.TrustProxy,

		EventsBurst:       cfg.EventsBurst,
		EventsPerIPPerMin: cfg.EventsPerIPPerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   server,
		store:    store,
		catalog:  cat,
		sink:     sink,
		sessions: sessions,
	}
}

// newStore builds the kv backend the config asks for. Redis failures are
// fatal: better to crash at boot than to serve an empty catalog.
func newStore(cfg *config.Config, log logger.Logger) kv.Store {
	if cfg.StoreBackend == config.BackendMemory {
		log.Info("using in-memory store, catalog resets on restart")
		return kv.NewMemory()
	}

	log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	client, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, log)
	if err != nil {
		log.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Info("Redis initialized successfully")
	return kv.NewRedis(client)
}

// seed fills an empty catalog, either from the configured YAML file or from
// the built-in demo games.
func (a *App) seed(ctx context.Context) error {
	if a.cfg.SeedDisabled {
		a.logger.Info("seeding disabled by configuration")
		return nil
	}

	games := catalog.DemoGames()
	if a.cfg.SeedFile != "" {
		loaded, err := seedfile.NewLoader(a.cfg.SeedFile).Load()
		if err != nil {
			return fmt.Errorf("failed to load seed file: %w", err)
		}
		a.logger.Info("loaded seed catalog",
			logger.String("file", a.cfg.SeedFile),
			logger.Int("games", len(loaded)))
		games = loaded
	}

	return a.catalog.EnsureSeeded(ctx, games)
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Kix v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Kix %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.seed(ctx); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	a.sink.Start()
	a.logger.Info("telemetry sink started", logger.Int("buffer", a.cfg.EventBuffer))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Active play sessions first so their timers stop emitting, then the
	// sink so the drained events still persist.
	a.sessions.Close()
	if err := a.sink.Stop(shutdownCtx); err != nil {
		a.logger.Warnf("telemetry sink did not drain cleanly: %v", err)
	}

	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close store: %v", err)
	} else {
		a.logger.Info("✅ Store closed cleanly")
	}

	a.logger.Info("✅ Kix stopped cleanly")
	return nil
}
