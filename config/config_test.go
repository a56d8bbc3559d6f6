package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvFileVar, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 300*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 10, cfg.Cache.HashLength)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 5*time.Second, cfg.Elastic.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:9200"}, cfg.Elastic.Addresses)
	assert.Equal(t, "HS256", cfg.Auth.JWTAlgorithm)
	assert.Equal(t, "subscribers", cfg.Auth.SubscriberRole)
	assert.Equal(t, "elastic", cfg.Store.Backend)
	assert.Equal(t, "prom", cfg.Cache.Hooks)
	assert.EqualValues(t, 100, cfg.Cache.LogSampleEvery)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvFileVar, "")
	t.Setenv("CINE_CACHE_TTL", "90s")
	t.Setenv("CINE_CACHE_BACKEND", "ristretto")
	t.Setenv("CINE_REDIS_SENTINELS", "s1:26379,s2:26379")
	t.Setenv("CINE_AUTH_JWT_SECRET", "shh")
	t.Setenv("CINE_CACHE_HOOKS", "slog")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "ristretto", cfg.Cache.Backend)
	assert.Equal(t, []string{"s1:26379", "s2:26379"}, cfg.Redis.Sentinels)
	assert.Equal(t, "shh", cfg.Auth.JWTSecret)
	assert.Equal(t, "slog", cfg.Cache.Hooks)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cache:
  hash_length: 16
store:
  backend: memory
  seed_file: /data/seed.json
`), 0o600))
	t.Setenv(EnvFileVar, path)
	t.Setenv("CINE_CACHE_HASH_LENGTH", "12")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Cache.HashLength, "env wins over file")
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "/data/seed.json", cfg.Store.SeedFile)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(EnvFileVar, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv(EnvFileVar, "")
	base, err := Load()
	require.NoError(t, err)

	cases := map[string]func(c *Config){
		"ttl":         func(c *Config) { c.Cache.TTL = 0 },
		"hash length": func(c *Config) { c.Cache.HashLength = -1 },
		"cache":       func(c *Config) { c.Cache.Backend = "memcached" },
		"store":       func(c *Config) { c.Store.Backend = "postgres" },
		"hooks":       func(c *Config) { c.Cache.Hooks = "statsd" },
		"sentinels":   func(c *Config) { c.Redis.Sentinels = []string{"s:26379"}; c.Redis.MasterSet = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := *base
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
