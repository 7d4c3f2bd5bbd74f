package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/ljson/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

// Redis stores framed values as plain redis strings.
type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
	timeout     time.Duration
}

var _ pr.Provider = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool          // set true only if this provider exclusively owns the client
	OpTimeout   time.Duration // per-command deadline on top of ctx; 0 = none
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient, timeout: cfg.OpTimeout}, nil
}

func (p *Redis) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.timeout)
}

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := p.ctx(ctx)
	defer cancel()

	b, err := p.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set ignores cost. A non-positive ttl stores the key without expiry.
func (p *Redis) Set(ctx context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	ctx, cancel := p.ctx(ctx)
	defer cancel()

	if ttl < 0 {
		ttl = 0
	}
	if err := p.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Redis) Del(ctx context.Context, key string) error {
	ctx, cancel := p.ctx(ctx)
	defer cancel()
	return p.rdb.Del(ctx, key).Err()
}

// Close releases the underlying client only when this provider owns it.
// Repeated calls are no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
