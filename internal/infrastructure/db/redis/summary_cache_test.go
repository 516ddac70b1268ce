package redis

import (
	"testing"
	"time"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

func TestSummaryCache(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewSummaryCache(client)
	ctx := t.Context()

	if _, ok, err := cache.Get(ctx); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	want := &domain.AnalyticsSummary{
		Inquiries:         9,
		InquiriesByStatus: map[domain.InquiryStatus]int64{domain.InquiryUrgent: 2},
		ActiveUsers:       3,
	}
	if err := cache.Set(ctx, want, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := cache.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if got.Inquiries != 9 || got.ActiveUsers != 3 || got.InquiriesByStatus[domain.InquiryUrgent] != 2 {
		t.Errorf("cached summary = %+v", got)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, _ := cache.Get(ctx); ok {
		t.Errorf("summary should expire after its ttl")
	}
}

func TestSummaryCache_CorruptEntry(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewSummaryCache(client)

	if err := mr.Set(summaryKey, "not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, ok, err := cache.Get(t.Context()); err == nil || ok {
		t.Errorf("expected decode error, got ok=%v err=%v", ok, err)
	}
}
