// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealquery

import (
	"errors"

	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
)

// ErrMutationInFlight is returned by BeginStageUpdate while another
// stage mutation for the same key is unresolved. Mutations are
// serialized per key: the caller drops the new move instead of racing
// two optimistic writes.
var ErrMutationInFlight = errors.New("dealquery: a stage mutation is already in flight for this query")

// ErrDealNotCached is returned when the deal to mutate is not in the
// cached list (the entry is missing, errored, or the id is absent).
var ErrDealNotCached = errors.New("dealquery: deal is not present in the cached list")

// stageMutation records one in-flight optimistic stage update.
type stageMutation struct {
	dealID   string
	snapshot []deal.Deal
}

// BeginStageUpdate runs the front half of the optimistic update
// protocol for moving dealID to newStage, in this order:
//
//  1. mark the deal as updating (card affordance only);
//  2. cancel any in-flight background refetch — a result landing
//     after the optimistic write would silently revert it;
//  3. snapshot the cached list;
//  4. rewrite the cached list in place: the matching deal gets the
//     new stage and an updatedAt of now, nothing else changes.
//
// The caller then issues the PATCH and must call ResolveStageUpdate
// exactly once with its outcome. Between the rewrite here and the
// invalidation there, the list served to the UI is the optimistic
// one, not the backend's.
func (cache *Cache) BeginStageUpdate(key Key, dealID string, newStage deal.Stage) error {
	e, ok := cache.entries[key]
	if !ok || (e.state != StateSuccess && e.state != StateFetching) {
		return ErrDealNotCached
	}
	if e.mutation != nil {
		return ErrMutationInFlight
	}

	found := false
	for i := range e.deals {
		if e.deals[i].ID == dealID {
			found = true
			break
		}
	}
	if !found {
		return ErrDealNotCached
	}

	// Step 1: updating mark.
	e.updating[dealID] = true

	// Step 2: cancel before snapshot. The ordering matters — see the
	// package comment.
	cache.CancelFetch(key)

	// Step 3: snapshot the exact list. The rewrite below replaces the
	// slice and the matched element wholesale, so the snapshot shares
	// the untouched elements safely.
	snapshot := make([]deal.Deal, len(e.deals))
	copy(snapshot, e.deals)
	e.mutation = &stageMutation{dealID: dealID, snapshot: snapshot}

	// Step 4: optimistic rewrite.
	rewritten := make([]deal.Deal, len(e.deals))
	copy(rewritten, e.deals)
	for i := range rewritten {
		if rewritten[i].ID == dealID {
			rewritten[i].Stage = newStage
			rewritten[i].UpdatedAt = cache.clock.Now()
		}
	}
	e.deals = rewritten

	return nil
}

// ResolveStageUpdate runs the back half of the protocol once the
// PATCH has returned. On failure the snapshot is restored verbatim
// (full replacement, not a merge) and the error is logged. On success
// or failure the updating mark is cleared and the key is invalidated
// exactly once — the optimistic write does not know server-computed
// side effects of a stage change, so reconciliation always refetches.
func (cache *Cache) ResolveStageUpdate(key Key, updateErr error) {
	e, ok := cache.entries[key]
	if !ok || e.mutation == nil {
		return
	}
	mutation := e.mutation
	e.mutation = nil

	if updateErr != nil {
		e.deals = mutation.snapshot
		cache.logger.Error("stage update failed, rolled back optimistic write",
			"deal_id", mutation.dealID,
			"error", updateErr,
		)
	}

	delete(e.updating, mutation.dealID)
	cache.Invalidate(key)
}

// MutationInFlight reports whether a stage mutation for the key is
// awaiting resolution.
func (cache *Cache) MutationInFlight(key Key) bool {
	e, ok := cache.entries[key]
	return ok && e.mutation != nil
}
