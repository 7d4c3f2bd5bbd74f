package bigcache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p, err := New(Config{Shards: 8, MaxValueBytes: 16})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close(ctx)

	if _, ok, err := p.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("miss expected, got ok=%v err=%v", ok, err)
	}
	if ok, err := p.Set(ctx, "k", []byte("value"), 0, time.Minute); !ok || err != nil {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	b, ok, err := p.Get(ctx, "k")
	if !ok || err != nil || !bytes.Equal(b, []byte("value")) {
		t.Fatalf("Get: %q ok=%v err=%v", b, ok, err)
	}
	if p.Len() != 1 {
		t.Fatalf("Len: %d", p.Len())
	}
	if ok, err := p.Set(ctx, "big", bytes.Repeat([]byte("x"), 17), 0, 0); ok || err != nil {
		t.Fatalf("oversized value should be declined, got ok=%v err=%v", ok, err)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("deleting a missing key is not an error: %v", err)
	}
}
