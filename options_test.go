package appstoreserver

import (
	"net/url"
	"testing"
	"time"
)

func TestHistoryOptions(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	query := url.Values{}
	for _, opt := range []HistoryOption{
		WithRevision("rev1"),
		WithSort(SortDescending),
		WithStartDate(start),
		WithEndDate(end),
		WithProductID("com.example.product"),
	} {
		opt(query)
	}

	if got := query.Get("revision"); got != "rev1" {
		t.Errorf("revision = %q", got)
	}
	if got := query.Get("sort"); got != "DESCENDING" {
		t.Errorf("sort = %q", got)
	}
	if got := query.Get("startDate"); got != "1767225600000" {
		t.Errorf("startDate = %q", got)
	}
	if got := query.Get("endDate"); got != "1780272000000" {
		t.Errorf("endDate = %q", got)
	}
	if got := query.Get("productId"); got != "com.example.product" {
		t.Errorf("productId = %q", got)
	}
}

func TestWithStatusFilter(t *testing.T) {
	query := url.Values{}
	WithStatusFilter(SubscriptionActive, SubscriptionExpired, SubscriptionRevoked)(query)

	want := []string{"1", "2", "5"}
	got := query["status"]
	if len(got) != len(want) {
		t.Fatalf("status = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("status[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDefaultRetryConfigExposed(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.Tries != 3 {
		t.Errorf("Tries = %d, want 3", cfg.Tries)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
