package cache

import (
	"testing"

	"marketgate/internal/domain/assessment"
	"marketgate/internal/ports"
)

func TestMemoryQueueCachePutGet(t *testing.T) {
	c := NewMemoryQueueCache()

	c.Put(ports.QueueEntry{
		ProductID:   "product-1",
		Status:      assessment.StatusPendingDigitalReview,
		SubmittedAt: "2026-08-01T00:00:00Z",
	})

	entry, ok := c.Get("product-1")
	if !ok {
		t.Fatalf("Get() expected found=true")
	}
	if entry.Status != assessment.StatusPendingDigitalReview {
		t.Fatalf("Get() status = %s", entry.Status)
	}

	c.Put(ports.QueueEntry{
		ProductID:   "product-1",
		Status:      assessment.StatusWaitingForSample,
		SubmittedAt: "2026-08-01T00:00:00Z",
	})

	entry, _ = c.Get("product-1")
	if entry.Status != assessment.StatusWaitingForSample {
		t.Fatalf("Get() after update status = %s", entry.Status)
	}

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("Get(missing) expected found=false")
	}
}

func TestMemoryQueueCacheReplaceAllAndFilters(t *testing.T) {
	c := NewMemoryQueueCache()
	c.Put(ports.QueueEntry{ProductID: "stale", Status: assessment.StatusRejected})

	c.ReplaceAll([]ports.QueueEntry{
		{ProductID: "product-1", Status: assessment.StatusPendingDigitalReview, SubmittedAt: "2026-08-02T00:00:00Z"},
		{ProductID: "product-2", Status: assessment.StatusPendingDigitalReview, SubmittedAt: "2026-08-03T00:00:00Z"},
		{ProductID: "product-3", Status: assessment.StatusActiveVerified, SubmittedAt: "2026-08-01T00:00:00Z"},
	})

	if _, ok := c.Get("stale"); ok {
		t.Fatalf("ReplaceAll() kept stale entry")
	}

	pending := c.ByStatus(assessment.StatusPendingDigitalReview)
	if len(pending) != 2 {
		t.Fatalf("ByStatus(pending) = %d entries, want 2", len(pending))
	}
	if pending[0].ProductID != "product-2" {
		t.Fatalf("ByStatus(pending) order = %+v, want newest first", pending)
	}

	all := c.All()
	if len(all) != 3 {
		t.Fatalf("All() = %d entries, want 3", len(all))
	}
}
