package infra

import (
	"testing"
	"time"
)

func TestQuoteBudgets_ExhaustsPerClient(t *testing.T) {
	b := NewQuoteBudgets(0.02, 2)

	for i := 0; i < 2; i++ {
		if !b.Allow("shop-a") {
			t.Fatalf("expected quote %d within burst to be allowed", i+1)
		}
	}
	if b.Allow("shop-a") {
		t.Fatalf("expected third quote to exceed the budget")
	}
	if !b.Allow("shop-b") {
		t.Fatalf("expected another client to have its own budget")
	}
}

func TestQuoteBudgets_PruneDropsRefilledBuckets(t *testing.T) {
	b := NewQuoteBudgets(1000, 1)
	if !b.Allow("shop-a") {
		t.Fatalf("expected first quote to be allowed")
	}

	// 1s depois a 1000/s o bucket está cheio de novo
	if got := b.prune(time.Now().Add(time.Second)); got != 1 {
		t.Fatalf("expected 1 bucket pruned, got %d", got)
	}
	if len(b.buckets) != 0 {
		t.Fatalf("expected no buckets left, got %d", len(b.buckets))
	}
}

func TestQuoteBudgets_PruneKeepsDrainedBuckets(t *testing.T) {
	b := NewQuoteBudgets(0.02, 1)
	b.Allow("shop-a")

	if got := b.prune(time.Now()); got != 0 {
		t.Fatalf("expected drained bucket to be kept, pruned %d", got)
	}
	if b.Allow("shop-a") {
		t.Fatalf("expected budget to stay exhausted after prune")
	}
}

func TestQuoteBudgets_RunWithoutIntervalIsNoop(t *testing.T) {
	b := NewQuoteBudgets(1, 1)
	b.Run(t.Context(), 0)
	b.Allow("shop-a")
	if len(b.buckets) != 1 {
		t.Fatalf("expected bucket to remain, got %d", len(b.buckets))
	}
}
