// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealquery

import (
	"log/slog"
	"time"

	"github.com/dealdesk-io/dealdesk/lib/clock"
	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
)

// State is the lifecycle position of one cached query.
type State int

const (
	// StateIdle means nothing has been fetched for this key yet.
	StateIdle State = iota
	// StateLoading means the first fetch is in flight; there is no
	// stale data to show.
	StateLoading
	// StateSuccess means the entry holds a usable list.
	StateSuccess
	// StateFetching means a background refetch is in flight while
	// the previous successful list is still shown.
	StateFetching
	// StateError means the most recent fetch failed and no usable
	// list is held (a failed background refetch keeps the stale
	// list and returns to StateSuccess is not modeled — the error
	// replaces the entry, matching refetch-by-invalidate recovery).
	StateError
)

// freshFor is how long a successful fetch satisfies lookups without a
// new request.
const freshFor = 30 * time.Second

// View is the renderable projection of one cache entry.
type View struct {
	State State
	Deals []deal.Deal
	Err   error

	// Updating holds deal ids with an active stage mutation, for
	// the card-level affordance only.
	Updating map[string]bool
}

// entry is the cache record for one key.
type entry struct {
	state     State
	deals     []deal.Deal
	err       error
	fetchedAt time.Time

	// generation stamps fetches. CompleteFetch discards results
	// whose generation does not match, which is how CancelFetch
	// works: it bumps the generation and in-flight results become
	// stale on arrival.
	generation int
	inFlight   bool

	// invalid forces the next NeedsFetch to true regardless of
	// freshness. Set by Invalidate (mutation reconciliation).
	invalid bool

	updating map[string]bool
	mutation *stageMutation
}

// Cache holds deal-list entries keyed by filter tuple. It must only
// be used from the goroutine that owns it; see the package comment.
type Cache struct {
	clock   clock.Clock
	logger  *slog.Logger
	entries map[Key]*entry
}

// NewCache creates an empty cache.
func NewCache(clk clock.Clock, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		clock:   clk,
		logger:  logger,
		entries: make(map[Key]*entry),
	}
}

func (cache *Cache) entryFor(key Key) *entry {
	e, ok := cache.entries[key]
	if !ok {
		e = &entry{updating: make(map[string]bool)}
		cache.entries[key] = e
	}
	return e
}

// View returns the renderable state for a key. An unknown key views
// as StateIdle with no data.
func (cache *Cache) View(key Key) View {
	e, ok := cache.entries[key]
	if !ok {
		return View{State: StateIdle}
	}
	return View{
		State:    e.state,
		Deals:    e.deals,
		Err:      e.err,
		Updating: e.updating,
	}
}

// NeedsFetch reports whether looking at this key should start a
// request: no data yet, an explicit invalidation, or a success older
// than the freshness window. A key with a fetch already in flight
// never needs another.
func (cache *Cache) NeedsFetch(key Key) bool {
	e, ok := cache.entries[key]
	if !ok {
		return true
	}
	if e.inFlight {
		return false
	}
	switch e.state {
	case StateIdle, StateError:
		return true
	case StateSuccess:
		if e.invalid {
			return true
		}
		return cache.clock.Now().Sub(e.fetchedAt) >= freshFor
	default:
		return false
	}
}

// BeginFetch transitions the entry into loading (first fetch) or
// fetching (background refetch over stale data) and returns the
// generation the caller must hand back to CompleteFetch.
func (cache *Cache) BeginFetch(key Key) int {
	e := cache.entryFor(key)
	e.inFlight = true
	switch e.state {
	case StateSuccess, StateFetching:
		e.state = StateFetching
	default:
		e.state = StateLoading
	}
	return e.generation
}

// CompleteFetch lands a fetch result. Results from a cancelled or
// superseded fetch (generation mismatch) are discarded and the method
// reports false. On success the list replaces the entry's data and
// the freshness window restarts.
func (cache *Cache) CompleteFetch(key Key, generation int, deals []deal.Deal, err error) bool {
	e, ok := cache.entries[key]
	if !ok || generation != e.generation || !e.inFlight {
		return false
	}
	e.inFlight = false
	if err != nil {
		e.state = StateError
		e.err = err
		e.deals = nil
		return true
	}
	e.state = StateSuccess
	e.err = nil
	e.deals = deals
	e.fetchedAt = cache.clock.Now()
	e.invalid = false
	return true
}

// CancelFetch discards any in-flight fetch for the key: the
// generation advances so the eventual result fails the CompleteFetch
// match. Data and state are untouched (a fetching entry returns to
// success, still serving its stale list).
func (cache *Cache) CancelFetch(key Key) {
	e, ok := cache.entries[key]
	if !ok {
		return
	}
	e.generation++
	if e.inFlight {
		e.inFlight = false
		if e.state == StateFetching {
			e.state = StateSuccess
		} else if e.state == StateLoading {
			e.state = StateIdle
		}
	}
}

// Invalidate marks the key so its next access refetches authoritative
// data. The held list keeps being served until that fetch lands.
func (cache *Cache) Invalidate(key Key) {
	e, ok := cache.entries[key]
	if !ok {
		return
	}
	e.invalid = true
}
