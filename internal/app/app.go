package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/cardguard/internal/config"
	"github.com/GlebRadaev/cardguard/internal/handlers"
	"github.com/GlebRadaev/cardguard/internal/pg"
	"github.com/GlebRadaev/cardguard/internal/repo"
	"github.com/GlebRadaev/cardguard/internal/service"
	"github.com/GlebRadaev/cardguard/internal/traces"
	"github.com/GlebRadaev/cardguard/internal/userlock"
	"github.com/GlebRadaev/cardguard/pkg/auth"
	"github.com/GlebRadaev/cardguard/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories

	closers []func(context.Context) error

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}
	if err := cfg.Risk.Validate(); err != nil {
		zap.L().Error("risk policy rejected: ", zap.Error(err))
		return fmt.Errorf("can't load risk policy: %w", err)
	}

	shutdownTraces, err := traces.Init(ctx, cfg.OTLPEndpoint)
	if err != nil {
		zap.L().Error("init tracing failed: ", zap.Error(err))
		return fmt.Errorf("can't init tracing: %w", err)
	}
	a.closers = append(a.closers, shutdownTraces)

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error {
		pool.Close()
		return nil
	})
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	locker, err := a.buildLocker(ctx, cfg)
	if err != nil {
		zap.L().Error("build issuance lock failed: ", zap.Error(err))
		return fmt.Errorf("can't build issuance lock: %w", err)
	}

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(a.repo, cfg, locker)
	a.api = handlers.New(a.srv, auth.NewJWTService(cfg.JWTSecret))

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

// buildLocker shares issuance locks through Redis when it is configured and
// falls back to an in-process lock for single-instance runs.
func (a *Application) buildLocker(ctx context.Context, cfg *config.Config) (userlock.Locker, error) {
	if cfg.RedisAddr == "" {
		zap.L().Info("using in-process issuance lock (no REDIS_ADDR set)")
		return userlock.NewLocal(), nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error {
		return client.Close()
	})

	zap.L().Info("using redis issuance lock", zap.String("addr", cfg.RedisAddr))
	return userlock.NewRedis(client, cfg.LockTTL), nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
		a.close(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

// close releases resources in reverse order of acquisition.
func (a *Application) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			zap.L().Error("shutdown step failed", zap.Error(err))
		}
	}
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
