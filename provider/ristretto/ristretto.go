package ristretto

import (
	"context"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/ljson/internal/util"
	pr "github.com/unkn0wn-root/ljson/provider"
)

// Provider keeps framed values in an in-process ristretto cache.
type Provider struct {
	c    *rc.Cache
	sync bool
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	NumCounters int64 // keys tracked for admission; 0 => 1e5
	MaxCost     int64 // total cost budget; 0 => 64 MiB
	BufferItems int64 // 0 => 64
	Metrics     bool
	// SyncWrites waits for each Set to be applied before returning, so a
	// following Get observes it. Ristretto buffers writes otherwise.
	SyncWrites bool
}

func New(cfg Config) (*Provider, error) {
	c, err := rc.NewCache(&rc.Config{
		NumCounters: util.Coalesce(cfg.NumCounters, 100_000),
		MaxCost:     util.Coalesce(cfg.MaxCost, 64<<20),
		BufferItems: util.Coalesce(cfg.BufferItems, 64),
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c, sync: cfg.SyncWrites}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, cost int64, ttl time.Duration) (bool, error) {
	if cost <= 0 {
		cost = int64(len(value))
	}
	ok := p.c.SetWithTTL(key, value, cost, ttl)
	if ok && p.sync {
		p.c.Wait()
	}
	return ok, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Del(key)
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto's counters; nil unless Config.Metrics was set.
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
