package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/cinecache"
	"github.com/unkn0wn-root/cinecache/config"
	"github.com/unkn0wn-root/cinecache/promhooks"
	pr "github.com/unkn0wn-root/cinecache/provider"
	pbigcache "github.com/unkn0wn-root/cinecache/provider/bigcache"
	predis "github.com/unkn0wn-root/cinecache/provider/redis"
	pristretto "github.com/unkn0wn-root/cinecache/provider/ristretto"
	"github.com/unkn0wn-root/cinecache/sloghooks"
	"github.com/unkn0wn-root/cinecache/store"
	"github.com/unkn0wn-root/cinecache/store/elastic"
	"github.com/unkn0wn-root/cinecache/store/memory"
)

func newProvider(cfg *config.Config, logger *zap.Logger) (pr.Provider, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return newRedis(cfg.Redis, logger)
	case "ristretto":
		return pristretto.New(pristretto.Config{MaxBytes: cfg.Cache.LocalMaxBytes})
	case "bigcache":
		return pbigcache.New(pbigcache.Config{
			LifeWindow:         cfg.Cache.TTL,
			CleanWindow:        cfg.Cache.TTL / 2,
			MaxEntrySize:       cfg.Cache.MaxEntryBytes,
			HardMaxCacheSizeMB: int(cfg.Cache.LocalMaxBytes >> 20),
		})
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}

func newRedis(rc config.Redis, logger *zap.Logger) (*predis.Redis, error) {
	var primary, replica goredis.UniversalClient
	if len(rc.Sentinels) > 0 {
		primary, replica = predis.NewSentinelClients(&goredis.FailoverOptions{
			MasterName:    rc.MasterSet,
			SentinelAddrs: rc.Sentinels,
			Password:      rc.Password,
			DB:            rc.DB,
			DialTimeout:   rc.DialTimeout,
			ReadTimeout:   rc.ReadTimeout,
			WriteTimeout:  rc.WriteTimeout,
		})
	} else {
		primary = goredis.NewClient(&goredis.Options{
			Addr:         rc.Addr,
			Password:     rc.Password,
			DB:           rc.DB,
			DialTimeout:  rc.DialTimeout,
			ReadTimeout:  rc.ReadTimeout,
			WriteTimeout: rc.WriteTimeout,
		})
	}

	p, err := predis.New(predis.Config{
		Client:      primary,
		Replica:     replica,
		OpTimeout:   rc.OpTimeout,
		CloseClient: true,
		OnReplicaError: func(err error) {
			logger.Warn("redis replica read failed; using primary", zap.Error(err))
		},
	})
	if err != nil {
		return nil, err
	}

	timeout := rc.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		_ = p.Close(context.Background())
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return p, nil
}

func newStore(cfg *config.Config, log cinecache.Logger) (store.SearchStore, error) {
	switch cfg.Store.Backend {
	case "elastic":
		client, err := elastic.NewClient(cfg.Elastic.Addresses, cfg.Elastic.Username, cfg.Elastic.Password, cfg.Elastic.MaxRetries)
		if err != nil {
			return nil, err
		}
		s, err := elastic.New(elastic.Config{
			Client:         client,
			RequestTimeout: cfg.Elastic.RequestTimeout,
			Logger:         log,
		})
		if err != nil {
			return nil, err
		}
		if err := s.Ping(context.Background()); err != nil {
			log.Warn("elasticsearch not reachable at startup", cinecache.Fields{"err": err.Error()})
		}
		return s, nil
	case "memory":
		s := memory.New()
		if cfg.Store.SeedFile == "" {
			return s, nil
		}
		if err := s.LoadFile(cfg.Store.SeedFile); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.New("unknown store backend " + cfg.Store.Backend)
}

func newHooks(cc config.Cache, reg prometheus.Registerer) (cinecache.Hooks, error) {
	switch cc.Hooks {
	case "prom":
		return promhooks.New(reg, "cinecache")
	case "slog":
		l := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("component", "cache")
		return sloghooks.New(l, sloghooks.Options{HitEvery: cc.LogSampleEvery, MissEvery: cc.LogSampleEvery}), nil
	case "none":
		return cinecache.NopHooks{}, nil
	}
	return nil, fmt.Errorf("unknown cache hooks %q", cc.Hooks)
}
