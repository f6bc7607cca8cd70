// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealquery

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dealdesk-io/dealdesk/lib/clock"
	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
)

func testCache(t *testing.T) (*Cache, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	return NewCache(fake, slog.New(slog.NewTextHandler(io.Discard, nil))), fake
}

func testDeals() []deal.Deal {
	return []deal.Deal{
		{ID: "D1", Name: "Acme expansion", Stage: deal.StageProspect, RequestedAmount: 250000},
		{ID: "D2", Name: "Birchwood LOC", Stage: deal.StageUnderwriting, RequestedAmount: 1000000},
		{ID: "D3", Name: "Cedar CRE", Stage: deal.StageDocs, RequestedAmount: 4200000},
	}
}

func TestFetchLifecycle(t *testing.T) {
	cache, _ := testCache(t)
	key := Key{Sort: deal.SortUpdatedAt, Order: "desc"}

	if !cache.NeedsFetch(key) {
		t.Fatal("empty cache should need a fetch")
	}

	generation := cache.BeginFetch(key)
	if got := cache.View(key).State; got != StateLoading {
		t.Errorf("state during first fetch = %v, want StateLoading", got)
	}
	if cache.NeedsFetch(key) {
		t.Error("a key with a fetch in flight must not need another")
	}

	if !cache.CompleteFetch(key, generation, testDeals(), nil) {
		t.Fatal("CompleteFetch discarded a live result")
	}
	view := cache.View(key)
	if view.State != StateSuccess || len(view.Deals) != 3 {
		t.Errorf("view after success = %v with %d deals", view.State, len(view.Deals))
	}
}

func TestFreshnessWindow(t *testing.T) {
	cache, fake := testCache(t)
	key := Key{}

	generation := cache.BeginFetch(key)
	cache.CompleteFetch(key, generation, testDeals(), nil)

	if cache.NeedsFetch(key) {
		t.Error("fresh entry should not need a fetch")
	}
	fake.Advance(29 * time.Second)
	if cache.NeedsFetch(key) {
		t.Error("entry should stay fresh for 30s")
	}
	fake.Advance(1 * time.Second)
	if !cache.NeedsFetch(key) {
		t.Error("entry should be stale after 30s")
	}

	// The stale refetch runs in the background over the old data.
	cache.BeginFetch(key)
	view := cache.View(key)
	if view.State != StateFetching || len(view.Deals) != 3 {
		t.Errorf("background refetch state = %v with %d deals, want StateFetching with stale data", view.State, len(view.Deals))
	}
}

func TestDistinctKeysAreDistinctEntries(t *testing.T) {
	cache, _ := testCache(t)
	keyA := Key{Search: "acme"}
	keyB := Key{Search: "acme", Product: deal.ProductCRE}

	generation := cache.BeginFetch(keyA)
	cache.CompleteFetch(keyA, generation, testDeals(), nil)

	if !cache.NeedsFetch(keyB) {
		t.Error("a different filter tuple must not share freshness with a prior one")
	}
	if got := cache.View(keyB).State; got != StateIdle {
		t.Errorf("unfetched key state = %v, want StateIdle", got)
	}
}

func TestCancelledFetchResultIsDiscarded(t *testing.T) {
	cache, _ := testCache(t)
	key := Key{}

	generation := cache.BeginFetch(key)
	cache.CancelFetch(key)

	if cache.CompleteFetch(key, generation, testDeals(), nil) {
		t.Fatal("result from a cancelled fetch must be discarded")
	}
	if got := cache.View(key).State; got == StateSuccess {
		t.Error("discarded result must not populate the entry")
	}
}

func TestFetchErrorState(t *testing.T) {
	cache, _ := testCache(t)
	key := Key{}

	generation := cache.BeginFetch(key)
	fetchErr := errors.New("backend unavailable")
	cache.CompleteFetch(key, generation, nil, fetchErr)

	view := cache.View(key)
	if view.State != StateError {
		t.Errorf("state = %v, want StateError", view.State)
	}
	if !errors.Is(view.Err, fetchErr) {
		t.Errorf("Err = %v, want the fetch error", view.Err)
	}
	if !cache.NeedsFetch(key) {
		t.Error("an errored entry should refetch on next access")
	}
}

func TestInvalidateForcesRefetchDespiteFreshness(t *testing.T) {
	cache, _ := testCache(t)
	key := Key{}

	generation := cache.BeginFetch(key)
	cache.CompleteFetch(key, generation, testDeals(), nil)
	cache.Invalidate(key)

	if !cache.NeedsFetch(key) {
		t.Fatal("invalidated entry must refetch even inside the freshness window")
	}

	// The refetch clears the invalidation.
	generation = cache.BeginFetch(key)
	cache.CompleteFetch(key, generation, testDeals(), nil)
	if cache.NeedsFetch(key) {
		t.Error("entry should be fresh again after the reconciling fetch")
	}
}
