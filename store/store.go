// Package store keeps ljson values in a byte provider under a namespace.
//
// Every payload is written by a codec and framed with a small header that
// records which codec produced it. On read, frames that fail validation,
// carry another codec's format or do not decode are deleted and reported as
// a miss, so a store never serves bytes it cannot interpret.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/unkn0wn-root/ljson"
	"github.com/unkn0wn-root/ljson/codec"
	"github.com/unkn0wn-root/ljson/internal/util"
	"github.com/unkn0wn-root/ljson/internal/wire"
	"github.com/unkn0wn-root/ljson/provider"
)

const keyPrefix = "val"

var (
	ErrNoProvider  = errors.New("store: provider is required")
	ErrNoNamespace = errors.New("store: namespace is required")
)

// SetCostFunc returns the admission cost of a framed value. Only
// cost-aware providers (ristretto) use it.
type SetCostFunc func(storageKey string, raw []byte) int64

type Options struct {
	Namespace      string                   // required; isolates keys as val:<ns>:<key>
	Provider       provider.Provider        // required
	Codec          codec.Codec[ljson.Value] // if nil, codec.JSON{} is used
	Logger         ljson.Logger             // if nil, NopLogger is used
	Hooks          Hooks                    // if nil, NopHooks is used
	DefaultTTL     time.Duration            // used when Set gets ttl == 0; 0 => 10m
	ComputeSetCost SetCostFunc              // if nil, cost is 1
}

// Store is safe for concurrent use if its provider is.
type Store struct {
	ns         string
	provider   provider.Provider
	codec      codec.Codec[ljson.Value]
	format     byte
	log        ljson.Logger
	hooks      Hooks
	defaultTTL time.Duration
	cost       SetCostFunc
}

func New(opts Options) (*Store, error) {
	if opts.Provider == nil {
		return nil, ErrNoProvider
	}
	if opts.Namespace == "" {
		return nil, ErrNoNamespace
	}
	var c codec.Codec[ljson.Value] = codec.JSON{}
	if opts.Codec != nil {
		c = opts.Codec
	}
	s := &Store{
		ns:         opts.Namespace,
		provider:   opts.Provider,
		codec:      c,
		format:     byte(codec.FormatOf(c)),
		log:        util.Coalesce[ljson.Logger](opts.Logger, ljson.NopLogger{}),
		hooks:      util.Coalesce[Hooks](opts.Hooks, NopHooks{}),
		defaultTTL: util.Coalesce(opts.DefaultTTL, 10*time.Minute),
		cost:       opts.ComputeSetCost,
	}
	if s.cost == nil {
		s.cost = func(string, []byte) int64 { return 1 }
	}
	return s, nil
}

// Namespace returns the namespace the store was created with.
func (s *Store) Namespace() string { return s.ns }

func (s *Store) key(k string) string { return util.StorageKey(keyPrefix, s.ns, k) }

// Get returns (v, true, nil) on hit and (Nil, false, nil) on miss. Only
// provider failures are returned as errors.
func (s *Store) Get(ctx context.Context, key string) (ljson.Value, bool, error) {
	k := s.key(key)
	raw, ok, err := s.provider.Get(ctx, k)
	if err != nil || !ok {
		return ljson.Nil, false, err
	}
	format, payload, err := wire.Decode(raw)
	if err != nil {
		s.heal(ctx, k, ReasonCorrupt, err)
		return ljson.Nil, false, nil
	}
	if format != s.format {
		s.heal(ctx, k, ReasonFormatMismatch, nil)
		return ljson.Nil, false, nil
	}
	v, err := s.codec.Decode(payload)
	if err != nil {
		s.heal(ctx, k, ReasonDecode, err)
		return ljson.Nil, false, nil
	}
	return v, true, nil
}

// Set encodes v and stores it for ttl (DefaultTTL when ttl == 0). Encode
// failures are returned and nothing is written. A write the provider
// declines is not an error.
func (s *Store) Set(ctx context.Context, key string, v ljson.Value, ttl time.Duration) error {
	payload, err := s.codec.Encode(v)
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = s.defaultTTL
	}
	k := s.key(key)
	raw := wire.Encode(s.format, payload)
	ok, err := s.provider.Set(ctx, k, raw, s.cost(k, raw), ttl)
	if err != nil {
		return err
	}
	if !ok {
		s.hooks.SetRejected(k, len(raw))
		s.log.Debug("set rejected by provider", ljson.Fields{"key": key, "size": len(raw)})
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.provider.Del(ctx, s.key(key))
}

func (s *Store) Close(ctx context.Context) error {
	return s.provider.Close(ctx)
}

func (s *Store) heal(ctx context.Context, k, reason string, cause error) {
	delErr := s.provider.Del(ctx, k)
	s.hooks.SelfHeal(k, reason)
	f := ljson.Fields{"key": k, "reason": reason}
	if cause != nil {
		f["err"] = cause
	}
	if delErr != nil {
		f["del_err"] = delErr
	}
	s.log.Warn("dropped unreadable entry", f)
}
