// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the pipeline dashboard.
type KeyMap struct {
	// Board navigation: left/right moves between lanes, up/down
	// moves the card cursor within a lane. In move mode, left/right
	// instead move the hovered drop lane.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Move mode: Grab picks up the selected card, Drop commits it to
	// the hovered lane, Cancel abandons the move.
	Grab key.Binding

	// Detail view.
	OpenDetail      key.Binding
	Back            key.Binding
	Optimize        key.Binding // Term-sheet optimization job.
	RequestDocument key.Binding // Open the request-document modal.
	EditTerms       key.Binding // Focus the term-sheet playground inputs.

	// Filter bar.
	SearchActivate key.Binding // Focus the search input.
	FilterFields   key.Binding // Focus the amount/sort filter fields.
	ProductCycle   key.Binding
	SortCycle      key.Binding
	OrderToggle    key.Binding
	FilterClear    key.Binding

	// Global.
	Refresh     key.Binding
	ThemeToggle key.Binding
	Quit        key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (h/j/k/l) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev lane"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next lane"),
	),
	Grab: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "grab/drop"),
	),
	OpenDetail: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Optimize: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "optimize"),
	),
	RequestDocument: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "request doc"),
	),
	EditTerms: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit terms"),
	),
	SearchActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	FilterFields: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filters"),
	),
	ProductCycle: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "product"),
	),
	SortCycle: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	OrderToggle: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "order"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "clear filters"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "refresh"),
	),
	ThemeToggle: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
