package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/cinecache/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

// Redis routes reads to Replica when one is configured and falls back to
// Client when the replica fails with anything but a miss. Writes always go
// to Client.
type Redis struct {
	rdb            goredis.UniversalClient
	replica        goredis.UniversalClient
	opTimeout      time.Duration
	closeClient    bool
	onReplicaError func(error)
}

var _ pr.Provider = (*Redis)(nil)

type Config struct {
	Client  goredis.UniversalClient // primary; required
	Replica goredis.UniversalClient // optional read-only client

	// OpTimeout bounds every command. 0 leaves the caller's context as is.
	OpTimeout time.Duration

	CloseClient bool // set true only if this provider exclusively owns the clients

	// OnReplicaError is called before a read falls back to the primary.
	OnReplicaError func(error)
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{
		rdb:            cfg.Client,
		replica:        cfg.Replica,
		opTimeout:      cfg.OpTimeout,
		closeClient:    cfg.CloseClient,
		onReplicaError: cfg.OnReplicaError,
	}, nil
}

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if p.replica != nil {
		b, ok, err := p.get(ctx, p.replica, key)
		if err == nil {
			return b, ok, nil
		}
		if ctx.Err() != nil {
			return nil, false, err
		}
		if p.onReplicaError != nil {
			p.onReplicaError(err)
		}
	}
	return p.get(ctx, p.rdb, key)
}

func (p *Redis) get(ctx context.Context, c goredis.UniversalClient, key string) ([]byte, bool, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	b, err := c.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (p *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = 0 // treat non-positive TTLs as "no expiry"
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	if err := p.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Redis) Del(ctx context.Context, key string) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.rdb.Del(ctx, key).Err()
}

// Ping checks the primary.
func (p *Redis) Ping(ctx context.Context) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.rdb.Ping(ctx).Err()
}

// Close releases the underlying clients only when this provider owns them.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if !p.closeClient {
		return nil
	}
	var errs []error
	for _, c := range []goredis.UniversalClient{p.replica, p.rdb} {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *Redis) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.opTimeout)
}
