package asynchook

import (
	"sync"
	"testing"

	"github.com/unkn0wn-root/ljson/store"
)

type countHooks struct {
	mu       sync.Mutex
	heals    map[string]int
	rejected int
	block    chan struct{}
}

func (h *countHooks) SelfHeal(_, reason string) {
	if h.block != nil {
		<-h.block
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.heals[reason]++
}

func (h *countHooks) SetRejected(string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rejected++
}

func TestCloseDrainsQueue(t *testing.T) {
	inner := &countHooks{heals: map[string]int{}}
	h := New(inner, 2, 64)
	for i := 0; i < 10; i++ {
		h.SelfHeal("k", store.ReasonCorrupt)
	}
	h.SetRejected("k", 10)
	h.Close()

	if inner.heals[store.ReasonCorrupt] != 10 || inner.rejected != 1 {
		t.Fatalf("got heals=%v rejected=%d", inner.heals, inner.rejected)
	}
	if h.Dropped() != 0 {
		t.Fatalf("nothing should be dropped, got %d", h.Dropped())
	}
}

func TestFullQueueDrops(t *testing.T) {
	inner := &countHooks{heals: map[string]int{}, block: make(chan struct{})}
	h := New(inner, 1, 1)

	// one event parked in the worker, one in the queue, the rest dropped
	for i := 0; i < 5; i++ {
		h.SelfHeal("k", store.ReasonDecode)
	}
	close(inner.block)
	h.Close()

	total := uint64(inner.heals[store.ReasonDecode]) + h.Dropped()
	if total != 5 {
		t.Fatalf("delivered+dropped = %d, want 5", total)
	}
	if h.Dropped() < 3 {
		t.Fatalf("expected at least 3 drops, got %d", h.Dropped())
	}
}

func TestAfterCloseIsDropped(t *testing.T) {
	inner := &countHooks{heals: map[string]int{}}
	h := New(inner, 1, 4)
	h.Close()
	h.Close()
	h.SetRejected("k", 1)
	if inner.rejected != 0 || h.Dropped() != 1 {
		t.Fatalf("rejected=%d dropped=%d", inner.rejected, h.Dropped())
	}
}
