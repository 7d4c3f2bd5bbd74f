// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{SelfHealEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	s, _ := store.New(store.Options{
//	    Namespace: "app:prod:doc",
//	    Provider:  p,
//	    Hooks:     hooks,
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/ljson/store"
)

// Hooks runs another Hooks on a worker pool. Events are dropped when the
// queue is full or after Close.
type Hooks struct {
	inner   store.Hooks
	q       chan func()
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ store.Hooks = (*Hooks)(nil)

func New(inner store.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Safe to call twice.
func (h *Hooks) Close() {
	h.mu.Lock()
	if !h.closed {
		h.closed = true
		close(h.q)
	}
	h.mu.Unlock()
	h.wg.Wait()
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) SelfHeal(k, reason string) { h.try(func() { h.inner.SelfHeal(k, reason) }) }
func (h *Hooks) SetRejected(k string, n int) { h.try(func() { h.inner.SetRejected(k, n) }) }
