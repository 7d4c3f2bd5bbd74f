package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/ljson/internal/util"
	pr "github.com/unkn0wn-root/ljson/provider"
)

// Provider keeps framed values in a bigcache instance. BigCache has no
// per-entry TTL: every entry lives for Config.LifeWindow and the ttl passed
// to Set is ignored.
type Provider struct {
	c       *bc.BigCache
	maxSize int
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	LifeWindow         time.Duration // 0 => 10m
	CleanWindow        time.Duration
	Shards             int // power of two; 0 => bigcache default
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
	// MaxValueBytes declines values larger than this on Set; 0 = no limit.
	MaxValueBytes int
}

func New(cfg Config) (*Provider, error) {
	conf := bc.DefaultConfig(util.Coalesce(cfg.LifeWindow, 10*time.Minute))
	conf.Verbose = false
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	conf.Shards = util.Coalesce(cfg.Shards, conf.Shards)
	conf.MaxEntriesInWindow = util.Coalesce(cfg.MaxEntriesInWindow, conf.MaxEntriesInWindow)
	conf.MaxEntrySize = util.Coalesce(cfg.MaxEntrySize, conf.MaxEntrySize)
	conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB

	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c, maxSize: cfg.MaxValueBytes}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := p.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, _ time.Duration) (bool, error) {
	if p.maxSize > 0 && len(value) > p.maxSize {
		return false, nil
	}
	if err := p.c.Set(key, value); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	if err := p.c.Delete(key); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
		return err
	}
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	return p.c.Close()
}

// Len reports the number of live entries.
func (p *Provider) Len() int { return p.c.Len() }
