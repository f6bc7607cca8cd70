// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package dealquery holds the client's cache of deal-list queries and
// implements the optimistic stage-update protocol that backs board
// card moves.
//
// The cache is keyed by the full filter/sort tuple (Key); each key has
// its own entry with its own state machine and freshness window, so
// changing any filter field produces a distinct cache entry with no
// shared staleness.
//
// Ownership: a Cache instance belongs to exactly one goroutine — the
// bubbletea update loop. Fetches and mutations run as commands on
// other goroutines, but they only touch the cache through the messages
// they deliver back to the loop, so the cache needs no locks. The one
// ordering guarantee the cache provides is deliberate: CancelFetch
// before the optimistic snapshot (inside BeginStageUpdate) bumps the
// fetch generation so a background refetch result that lands after the
// optimistic write is discarded instead of silently reverting it.
package dealquery
