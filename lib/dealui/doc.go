// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package dealui implements the deal pipeline dashboard TUI: a
// five-lane kanban board over the lending pipeline, with filtering,
// keyboard-driven stage moves, and a per-deal detail view.
//
// The package is built on bubbletea. All state lives in Model and is
// mutated only from the Update loop; network calls run in tea.Cmd
// goroutines and deliver their results back as messages. The
// dealquery.Cache is owned by this single goroutine, which is what
// lets it run without locks.
package dealui
