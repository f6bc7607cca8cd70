// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dealdesk-io/dealdesk/lib/dealquery"
	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
)

// searchDebounce is how long search input must be quiet before the
// typed text becomes part of the query key. Product, amount, and sort
// changes are not debounced — they are single deliberate keystrokes,
// not a character stream.
const searchDebounce = 300 * time.Millisecond

// AmountField identifies which amount input has focus while the
// filter fields are active.
type AmountField int

const (
	// AmountMin is the minimum-amount input.
	AmountMin AmountField = iota
	// AmountMax is the maximum-amount input.
	AmountMax
)

// FilterModel holds the filter bar state. The search text is
// two-layered: SearchInput is what the user sees as they type,
// committedSearch is what the query key carries. The two converge
// when the debounce window closes, so a burst of keystrokes yields
// exactly one key change with the final text.
type FilterModel struct {
	// SearchInput is the live search text.
	SearchInput string

	// SearchActive is true while the search input has keyboard focus.
	SearchActive bool

	// FieldsActive is true while the amount inputs have keyboard
	// focus.
	FieldsActive bool

	// AmountFocus selects which amount input receives keystrokes
	// while FieldsActive.
	AmountFocus AmountField

	// MinAmount and MaxAmount are the raw bound texts. Empty means
	// unbounded.
	MinAmount string
	MaxAmount string

	committedSearch  string
	debounceSequence int

	// productIndex indexes the product cycle: 0 is "all products",
	// 1..N are deal.Products().
	productIndex int

	// sortIndex indexes deal.SortFields().
	sortIndex  int
	descending bool
}

// NewFilterModel returns the default filter: no search, all products,
// unbounded amounts, most recently updated first.
func NewFilterModel() FilterModel {
	return FilterModel{descending: true}
}

// Key returns the query key for the current filter state. Distinct
// filter tuples produce distinct keys; the cache keeps an independent
// entry per key.
func (filter *FilterModel) Key() dealquery.Key {
	return dealquery.Key{
		Search:    filter.committedSearch,
		Product:   filter.Product(),
		MinAmount: strings.TrimSpace(filter.MinAmount),
		MaxAmount: strings.TrimSpace(filter.MaxAmount),
		Sort:      filter.Sort(),
		Order:     filter.Order(),
	}
}

// Product returns the selected product, or "" for all products.
func (filter *FilterModel) Product() deal.Product {
	if filter.productIndex == 0 {
		return ""
	}
	return deal.Products()[filter.productIndex-1]
}

// Sort returns the selected sort field.
func (filter *FilterModel) Sort() deal.SortField {
	return deal.SortFields()[filter.sortIndex]
}

// Order returns "desc" or "asc".
func (filter *FilterModel) Order() string {
	if filter.descending {
		return "desc"
	}
	return "asc"
}

// HandleSearchRune appends a typed character to the search input and
// returns the debounce sequence number to attach to the timer message.
// Older timers are invalidated by the bump: only the message carrying
// the latest sequence commits.
func (filter *FilterModel) HandleSearchRune(character rune) int {
	filter.SearchInput += string(character)
	return filter.bumpDebounce()
}

// HandleSearchBackspace removes the last search character. Returns the
// new debounce sequence, or -1 if the input was already empty.
func (filter *FilterModel) HandleSearchBackspace() int {
	if filter.SearchInput == "" {
		return -1
	}
	runes := []rune(filter.SearchInput)
	filter.SearchInput = string(runes[:len(runes)-1])
	return filter.bumpDebounce()
}

func (filter *FilterModel) bumpDebounce() int {
	filter.debounceSequence++
	return filter.debounceSequence
}

// CommitSearch applies the live search text to the query key if the
// sequence is still current. Returns true when the committed text
// actually changed — stale timers and no-op commits return false, and
// the caller skips the refetch.
func (filter *FilterModel) CommitSearch(sequence int) bool {
	if sequence != filter.debounceSequence {
		return false
	}
	if filter.committedSearch == filter.SearchInput {
		return false
	}
	filter.committedSearch = filter.SearchInput
	return true
}

// CommittedSearch returns the search text currently in the query key.
func (filter *FilterModel) CommittedSearch() string {
	return filter.committedSearch
}

// CycleProduct advances the product filter: all -> each product -> all.
func (filter *FilterModel) CycleProduct() {
	filter.productIndex = (filter.productIndex + 1) % (len(deal.Products()) + 1)
}

// CycleSort advances the sort field.
func (filter *FilterModel) CycleSort() {
	filter.sortIndex = (filter.sortIndex + 1) % len(deal.SortFields())
}

// ToggleOrder flips between descending and ascending.
func (filter *FilterModel) ToggleOrder() {
	filter.descending = !filter.descending
}

// HandleAmountRune appends a character to the focused amount input.
// Only digits and a decimal point are accepted; anything else is
// ignored and returns false.
func (filter *FilterModel) HandleAmountRune(character rune) bool {
	if (character < '0' || character > '9') && character != '.' {
		return false
	}
	if filter.AmountFocus == AmountMin {
		filter.MinAmount += string(character)
	} else {
		filter.MaxAmount += string(character)
	}
	return true
}

// HandleAmountBackspace removes the last character from the focused
// amount input. Returns true if the input changed.
func (filter *FilterModel) HandleAmountBackspace() bool {
	target := &filter.MinAmount
	if filter.AmountFocus == AmountMax {
		target = &filter.MaxAmount
	}
	if *target == "" {
		return false
	}
	runes := []rune(*target)
	*target = string(runes[:len(runes)-1])
	return true
}

// Clear resets every filter to its default and deactivates the
// inputs. Returns true if anything changed.
func (filter *FilterModel) Clear() bool {
	before := filter.Key()
	*filter = NewFilterModel()
	return filter.Key() != before
}

// View renders the filter bar as a single line: search, product,
// amount range, and sort indicator.
func (filter *FilterModel) View(theme Theme, width int) string {
	normal := lipgloss.NewStyle().Foreground(theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	accent := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)

	var parts []string

	search := filter.SearchInput
	if filter.SearchActive {
		parts = append(parts, normal.Render("/ "+search)+accent.Render("▎"))
	} else if search != "" {
		parts = append(parts, faint.Render("search: "+search))
	}

	if product := filter.Product(); product != "" {
		parts = append(parts, normal.Render("product: "+string(product)))
	}

	minText, maxText := filter.MinAmount, filter.MaxAmount
	if filter.FieldsActive || minText != "" || maxText != "" {
		if minText == "" {
			minText = "∅"
		}
		if maxText == "" {
			maxText = "∅"
		}
		if filter.FieldsActive {
			cursor := accent.Render("▎")
			if filter.AmountFocus == AmountMin {
				minText += cursor
			} else {
				maxText += cursor
			}
		}
		parts = append(parts, normal.Render("amount: "+minText+" – "+maxText))
	}

	arrow := "↓"
	if !filter.descending {
		arrow = "↑"
	}
	parts = append(parts, faint.Render("sort: "+string(filter.Sort())+" "+arrow))

	line := " " + strings.Join(parts, "   ")
	return lipgloss.NewStyle().Width(width).Render(line)
}
