package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowConsumesCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("eod", 3, 0.0001) {
			t.Fatalf("request %d denied within capacity", i)
		}
	}
	if l.Allow("eod", 3, 0.0001) {
		t.Error("request allowed beyond capacity with negligible refill")
	}
}

func TestAllowIndependentKeys(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0.0001) {
		t.Fatal("first token for key a denied")
	}
	if l.Allow("a", 1, 0.0001) {
		t.Error("key a over capacity")
	}
	if !l.Allow("b", 1, 0.0001) {
		t.Error("key b should have its own bucket")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := New()
	if !l.Allow("slow", 1, 0.0001) {
		t.Fatal("priming token denied")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "slow", 1, 0.0001); err == nil {
		t.Error("Wait returned nil with an exhausted bucket and expired context")
	}
}

func TestWaitRefills(t *testing.T) {
	l := New()
	if !l.Allow("fast", 1, 50) {
		t.Fatal("priming token denied")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Wait(ctx, "fast", 1, 50); err != nil {
		t.Errorf("Wait with 50/s refill: %v", err)
	}
}
