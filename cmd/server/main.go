// Command server runs the read-only films API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/cinecache/api"
	"github.com/unkn0wn-root/cinecache/config"
	asynchook "github.com/unkn0wn-root/cinecache/hooks/async"
	zapadapter "github.com/unkn0wn-root/cinecache/log/zap"
	"github.com/unkn0wn-root/cinecache/movies"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Server.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	gin.SetMode(gin.ReleaseMode)
	return zap.NewProduction()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := zapadapter.New(logger)

	provider, err := newProvider(cfg, logger)
	if err != nil {
		return fmt.Errorf("cache provider: %w", err)
	}
	defer func() {
		if err := provider.Close(context.Background()); err != nil {
			logger.Warn("close cache provider", zap.Error(err))
		}
	}()

	st, err := newStore(cfg, log)
	if err != nil {
		return fmt.Errorf("search store: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	events, err := newHooks(cfg.Cache, reg)
	if err != nil {
		return fmt.Errorf("cache hooks: %w", err)
	}
	hooks := asynchook.New(events, 1, 4096)
	defer hooks.Close()

	repos, err := movies.NewRepositories(st, provider, movies.Config{
		TTL:           cfg.Cache.TTL,
		HashLength:    cfg.Cache.HashLength,
		MaxEntryBytes: cfg.Cache.MaxEntryBytes,
		Logger:        log,
		Hooks:         hooks,
	})
	if err != nil {
		return fmt.Errorf("repositories: %w", err)
	}

	var tokens *api.TokenParser
	if cfg.Auth.JWTSecret != "" {
		tokens = api.NewTokenParser([]byte(cfg.Auth.JWTSecret), cfg.Auth.JWTAlgorithm)
	} else {
		logger.Warn("auth.jwt_secret is empty; bearer tokens will be rejected")
	}
	h := api.NewHandler(repos, api.Config{
		Tokens:         tokens,
		SubscriberRole: cfg.Auth.SubscriberRole,
		Logger:         log,
	})
	router := api.NewRouter(h, logger)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("cache", cfg.Cache.Backend),
			zap.String("store", cfg.Store.Backend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
