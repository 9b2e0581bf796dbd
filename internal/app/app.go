package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/vitae/internal/config"
	"github.com/MrSnakeDoc/vitae/internal/httpserver"
	"github.com/MrSnakeDoc/vitae/internal/httpserver/deps"
	"github.com/MrSnakeDoc/vitae/internal/logger"
	"github.com/MrSnakeDoc/vitae/internal/redis"
	"github.com/MrSnakeDoc/vitae/internal/render"
	"github.com/MrSnakeDoc/vitae/internal/session"
	"github.com/MrSnakeDoc/vitae/internal/store"
	"github.com/MrSnakeDoc/vitae/internal/store/file"
	redisstore "github.com/MrSnakeDoc/vitae/internal/store/redis"
	"github.com/MrSnakeDoc/vitae/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
}

// Backend is the resume store selected by the configuration, with the
// redis client behind it when there is one.
type Backend struct {
	Store       store.Store
	RedisClient *goredis.Client
}

// Close releases the redis client, if any.
func (b *Backend) Close() error {
	if b.RedisClient == nil {
		return nil
	}
	return b.RedisClient.Close()
}

// OpenStore builds the configured store. The redis backend waits for the
// server to answer before returning.
func OpenStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*Backend, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:         cfg.RedisAddr,
			User:         cfg.RedisUser,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  cfg.RedisDT,
			ReadTimeout:  cfg.RedisRT,
			WriteTimeout: cfg.RedisWT,
			PoolSize:     cfg.RedisPoolSize,
			Retry: redis.RetryPolicy{
				Total:         cfg.RedisConnectTimeout,
				Initial:       cfg.RedisRetryInterval,
				MaxWait:       cfg.RedisMaxWait,
				PingTimeout:   cfg.RedisPingTimeout,
				WarnThreshold: cfg.RedisWarnThreshold,
			},
		}, log)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("Redis initialized successfully")
		st := redisstore.NewStore(client, log)
		if n, err := st.Reindex(ctx); err != nil {
			log.Warn("failed to reindex resumes", logger.Error(err))
		} else if n > 0 {
			log.Info("indexed unlisted resumes", logger.Int("count", n))
		}
		return &Backend{Store: st, RedisClient: client}, nil
	default:
		st, err := file.New(cfg.ResumesDir, log)
		if err != nil {
			return nil, fmt.Errorf("open resumes dir: %w", err)
		}
		return &Backend{Store: st}, nil
	}
}

// NewEngine returns the configured PDF engine.
func NewEngine(cfg *config.Config) render.PDFEngine {
	if cfg.PDFEngine == config.EngineChrome {
		return render.NewChromeEngine(cfg.ChromePath, cfg.RenderTimeout)
	}
	return render.NewNativeEngine()
}

// New wires the store, the renderer, the session and the HTTP server.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	backend, err := OpenStore(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	engine := NewEngine(cfg)
	renderer := render.New(engine, loggerClient)
	sess := session.New(backend.Store, renderer, loggerClient)
	loggerClient.Info("resume session ready",
		logger.String("store", backend.Store.Kind()),
		logger.String("pdf_engine", engine.Name()))

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		Session:         sess,
		Store:           backend.Store,
		RedisClient:     backend.RedisClient,
		PDFEngine:       engine.Name(),
		ExportBurst:     cfg.ExportBurst,
		ExportPerMinute: cfg.ExportPerMinute,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: backend.RedisClient,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Vitae v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
		a.closeRedis()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.closeRedis()
	a.logger.Info("✅ Vitae stopped cleanly")
	return nil
}

func (a *App) closeRedis() {
	if a.redisClient == nil {
		return
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Warnf("failed to close redis: %v", err)
	} else {
		a.logger.Info("✅ Redis closed cleanly")
	}
}
