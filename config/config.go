// Package config loads service settings from the environment, an optional
// config file and a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "CINE"
	EnvFileVar = "CINE_CONFIG_FILE"
)

type Config struct {
	Server  Server  `mapstructure:"server"`
	Cache   Cache   `mapstructure:"cache"`
	Redis   Redis   `mapstructure:"redis"`
	Elastic Elastic `mapstructure:"elastic"`
	Auth    Auth    `mapstructure:"auth"`
	Store   Store   `mapstructure:"store"`
}

type Server struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Debug        bool          `mapstructure:"debug"`
}

type Cache struct {
	TTL           time.Duration `mapstructure:"ttl"`
	HashLength    int           `mapstructure:"hash_length"`
	Backend       string        `mapstructure:"backend"` // redis | ristretto | bigcache
	MaxEntryBytes int           `mapstructure:"max_entry_bytes"`
	LocalMaxBytes int64         `mapstructure:"local_max_bytes"`

	Hooks          string `mapstructure:"hooks"`            // prom | slog | none
	LogSampleEvery uint64 `mapstructure:"log_sample_every"` // slog hooks log one hit/miss in N
}

// Redis selects a sentinel failover pair when Sentinels is set, a single
// client on Addr otherwise.
type Redis struct {
	Addr         string        `mapstructure:"addr"`
	Sentinels    []string      `mapstructure:"sentinels"`
	MasterSet    string        `mapstructure:"master_set"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	OpTimeout    time.Duration `mapstructure:"op_timeout"`
}

type Elastic struct {
	Addresses      []string      `mapstructure:"addresses"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
}

type Auth struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTAlgorithm   string `mapstructure:"jwt_algorithm"`
	SubscriberRole string `mapstructure:"subscriber_role"`
}

type Store struct {
	Backend  string `mapstructure:"backend"` // elastic | memory
	SeedFile string `mapstructure:"seed_file"`
}

// Load reads .env (when present), then the file named by CINE_CONFIG_FILE
// (when set), then CINE_* variables. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := os.Getenv(EnvFileVar); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.debug", false)

	v.SetDefault("cache.ttl", 300*time.Second)
	v.SetDefault("cache.hash_length", 10)
	v.SetDefault("cache.backend", "redis")
	v.SetDefault("cache.max_entry_bytes", 0)
	v.SetDefault("cache.local_max_bytes", int64(64<<20))
	v.SetDefault("cache.hooks", "prom")
	v.SetDefault("cache.log_sample_every", uint64(100))

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.sentinels", []string{})
	v.SetDefault("redis.master_set", "mymaster")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)
	v.SetDefault("redis.op_timeout", 0)

	v.SetDefault("elastic.addresses", []string{"http://localhost:9200"})
	v.SetDefault("elastic.username", "")
	v.SetDefault("elastic.password", "")
	v.SetDefault("elastic.request_timeout", 5*time.Second)
	v.SetDefault("elastic.max_retries", 3)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_algorithm", "HS256")
	v.SetDefault("auth.subscriber_role", "subscribers")

	v.SetDefault("store.backend", "elastic")
	v.SetDefault("store.seed_file", "")
}

func (c *Config) Validate() error {
	var errs []error
	if c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL))
	}
	if c.Cache.HashLength <= 0 {
		errs = append(errs, fmt.Errorf("cache.hash_length must be positive, got %d", c.Cache.HashLength))
	}
	if c.Cache.MaxEntryBytes < 0 {
		errs = append(errs, errors.New("cache.max_entry_bytes must not be negative"))
	}
	switch c.Cache.Backend {
	case "redis", "ristretto", "bigcache":
	default:
		errs = append(errs, fmt.Errorf("unknown cache.backend %q", c.Cache.Backend))
	}
	switch c.Cache.Hooks {
	case "prom", "slog", "none":
	default:
		errs = append(errs, fmt.Errorf("unknown cache.hooks %q", c.Cache.Hooks))
	}
	switch c.Store.Backend {
	case "elastic":
		if len(c.Elastic.Addresses) == 0 {
			errs = append(errs, errors.New("elastic.addresses is empty"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown store.backend %q", c.Store.Backend))
	}
	if c.Cache.Backend == "redis" && len(c.Redis.Sentinels) == 0 && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr or redis.sentinels is required"))
	}
	if c.Cache.Backend == "redis" && len(c.Redis.Sentinels) > 0 && c.Redis.MasterSet == "" {
		errs = append(errs, errors.New("redis.master_set is required with sentinels"))
	}
	return errors.Join(errs...)
}
