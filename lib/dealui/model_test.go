// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dealdesk-io/dealdesk/lib/clock"
	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	model := NewModel(Config{
		Clock:  clock.Fake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Theme:  LightTheme,
	})
	model.width = 120
	model.height = 40
	return model
}

// seedBoard loads the cache for the model's current filter key, the
// way a completed fetch would.
func seedBoard(model *Model, deals []deal.Deal) {
	key := model.filter.Key()
	generation := model.cache.BeginFetch(key)
	model.cache.CompleteFetch(key, generation, deals, nil)
}

func boardTestDeals() []deal.Deal {
	return []deal.Deal{
		{ID: "D1", Name: "Acme expansion", Stage: deal.StageProspect, RequestedAmount: 1250000, Probability: 0.4},
		{ID: "D2", Name: "Globex refinance", Stage: deal.StageUnderwriting, RequestedAmount: 400000, Probability: 0.7},
	}
}

func pressKey(model *Model, message tea.KeyMsg) tea.Cmd {
	_, command := model.Update(message)
	return command
}

func runeKey(character rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}}
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestDropOnCurrentStageSendsNoRequest(t *testing.T) {
	model := testModel(t)
	seedBoard(model, boardTestDeals())
	key := model.filter.Key()

	// Grab D1 (Prospect, the stage Intake resolves to) and drop it
	// straight back.
	if command := pressKey(model, spaceKey); command != nil {
		t.Fatal("grab issued a command")
	}
	command := pressKey(model, spaceKey)
	if command != nil {
		t.Fatal("no-op drop issued a command; no request may be sent")
	}
	if model.cache.MutationInFlight(key) {
		t.Fatal("no-op drop started a mutation")
	}
	if model.move.Active() {
		t.Fatal("move state survived the drop")
	}
}

func TestOwnLaneDropOfALaterStageDealMovesIt(t *testing.T) {
	model := testModel(t)
	seedBoard(model, []deal.Deal{
		{ID: "D1", Name: "Acme expansion", Stage: deal.StageApplication, RequestedAmount: 1250000},
	})
	key := model.filter.Key()

	// An Application deal renders in Intake, but Intake resolves to
	// Prospect: dropping it on its own lane is a real move.
	pressKey(model, spaceKey)
	command := pressKey(model, spaceKey)

	if command == nil {
		t.Fatal("own-lane drop of an Application deal issued no PATCH command")
	}
	if !model.cache.MutationInFlight(key) {
		t.Fatal("no mutation recorded for the move back to Prospect")
	}
	for _, item := range model.cache.View(key).Deals {
		if item.ID == "D1" && item.Stage != deal.StageProspect {
			t.Fatalf("optimistic stage = %s, want Prospect", item.Stage)
		}
	}
}

func TestDropOnNewLaneStartsExactlyOneMutation(t *testing.T) {
	model := testModel(t)
	seedBoard(model, boardTestDeals())
	key := model.filter.Key()

	pressKey(model, spaceKey)            // grab D1 (Intake)
	pressKey(model, runeKey('l'))        // hover Underwriting
	command := pressKey(model, spaceKey) // drop

	if command == nil {
		t.Fatal("drop on a new lane issued no PATCH command")
	}
	if !model.cache.MutationInFlight(key) {
		t.Fatal("no mutation recorded for the drop")
	}

	// The optimistic write is already visible.
	view := model.cache.View(key)
	for _, item := range view.Deals {
		if item.ID == "D1" && item.Stage != deal.StageUnderwriting {
			t.Fatalf("optimistic stage = %s, want Underwriting", item.Stage)
		}
	}
	if !view.Updating["D1"] {
		t.Fatal("moved deal not marked as updating")
	}
}

func TestGrabIsIgnoredWhileAMutationIsInFlight(t *testing.T) {
	model := testModel(t)
	seedBoard(model, boardTestDeals())

	pressKey(model, spaceKey)
	pressKey(model, runeKey('l'))
	pressKey(model, spaceKey) // mutation now awaiting the server

	pressKey(model, spaceKey)
	if model.move.Active() {
		t.Fatal("grab accepted while a mutation was pending")
	}
}

func TestHoverKeysMoveTheDropTargetNotTheCursor(t *testing.T) {
	model := testModel(t)
	seedBoard(model, boardTestDeals())

	pressKey(model, spaceKey)
	laneBefore := model.laneCursor
	hoverBefore := model.move.HoverLane
	pressKey(model, runeKey('l'))

	if model.laneCursor != laneBefore {
		t.Fatal("lane cursor moved while a card was grabbed")
	}
	if model.move.HoverLane == hoverBefore {
		t.Fatal("hover target did not move")
	}
}

func TestEscapeCancelsTheMove(t *testing.T) {
	model := testModel(t)
	seedBoard(model, boardTestDeals())

	pressKey(model, spaceKey)
	pressKey(model, runeKey('l'))
	pressKey(model, tea.KeyMsg{Type: tea.KeyEscape})

	if model.move.Active() {
		t.Fatal("escape did not clear the move")
	}
	if model.cache.MutationInFlight(model.filter.Key()) {
		t.Fatal("cancelled move started a mutation")
	}
}

func TestSearchTypingChangesTheKeyOnlyAfterDebounce(t *testing.T) {
	model := testModel(t)
	seedBoard(model, boardTestDeals())
	initialKey := model.filter.Key()

	pressKey(model, runeKey('/'))
	var lastSequence int
	for _, character := range "acme" {
		pressKey(model, runeKey(character))
		lastSequence = model.filter.debounceSequence
	}

	if model.filter.Key() != initialKey {
		t.Fatal("query key changed while typing")
	}

	// Stale timers from the earlier keystrokes: no commit, no fetch.
	for sequence := 1; sequence < lastSequence; sequence++ {
		if command := deliver(model, searchDebounceMsg{sequence: sequence}); command != nil {
			t.Fatalf("stale debounce timer %d started a fetch", sequence)
		}
	}

	command := deliver(model, searchDebounceMsg{sequence: lastSequence})
	if command == nil {
		t.Fatal("final debounce timer did not start a fetch")
	}
	if got := model.filter.Key().Search; got != "acme" {
		t.Fatalf("committed search = %q, want acme", got)
	}
}

// deliver delivers a non-key message.
func deliver(model *Model, message tea.Msg) tea.Cmd {
	_, command := model.Update(message)
	return command
}

func TestStaleFetchResultIsDiscarded(t *testing.T) {
	model := testModel(t)
	key := model.filter.Key()
	generation := model.cache.BeginFetch(key)
	model.cache.CancelFetch(key)

	deliver(model, dealsFetchedMsg{key: key, generation: generation, deals: boardTestDeals()})

	view := model.cache.View(key)
	if len(view.Deals) != 0 {
		t.Fatal("stale generation result was applied")
	}
}

func TestMutationFailureShowsANoticeAndRefetches(t *testing.T) {
	model := testModel(t)
	seedBoard(model, boardTestDeals())
	key := model.filter.Key()

	pressKey(model, spaceKey)
	pressKey(model, runeKey('l'))
	pressKey(model, spaceKey)

	command := deliver(model, stageMoveResultMsg{key: key, err: &testError{"server said no"}})
	if command == nil {
		t.Fatal("failed mutation produced no follow-up commands")
	}
	if model.notice == "" || !model.noticeIsError {
		t.Fatal("failed mutation did not surface a status-bar error")
	}

	// The rollback restored the original stage.
	for _, item := range model.cache.View(key).Deals {
		if item.ID == "D1" && item.Stage != deal.StageProspect {
			t.Fatalf("stage after rollback = %s, want Prospect", item.Stage)
		}
	}
}

type testError struct{ text string }

func (err *testError) Error() string { return err.text }

func TestFinancialsRequestCoversTheThreeMostRecentFullYears(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	options := financialsRange(now)
	if options.FromYear != 2023 || options.ToYear != 2025 {
		t.Fatalf("year range = %d..%d, want 2023..2025", options.FromYear, options.ToYear)
	}
}

func TestThemeToggleWithoutSettingsFlipsForTheSession(t *testing.T) {
	model := testModel(t)
	pressKey(model, runeKey('t'))
	if model.theme.NormalText != DarkTheme.NormalText {
		t.Fatal("toggle from light did not switch to dark")
	}
	pressKey(model, runeKey('t'))
	if model.theme.NormalText != LightTheme.NormalText {
		t.Fatal("second toggle did not switch back to light")
	}
}

func TestOpenDetailFansOutTheIndependentSections(t *testing.T) {
	model := testModel(t)
	seedBoard(model, boardTestDeals())

	command := pressKey(model, tea.KeyMsg{Type: tea.KeyEnter})
	if command == nil {
		t.Fatal("opening the detail view started no fetches")
	}
	if model.detail == nil || model.detail.DealID != "D1" {
		t.Fatal("detail view not opened for the selected deal")
	}
}

func TestDetailResultsForAClosedViewAreDropped(t *testing.T) {
	model := testModel(t)
	seedBoard(model, boardTestDeals())
	pressKey(model, tea.KeyMsg{Type: tea.KeyEnter})
	pressKey(model, tea.KeyMsg{Type: tea.KeyEscape})

	if model.detail != nil {
		t.Fatal("escape did not close the detail view")
	}
	// A late section result must not panic or resurrect the view.
	deliver(model, borrowerMsg{dealID: "D1", value: &deal.Borrower{ID: "B1"}})
	if model.detail != nil {
		t.Fatal("late section result resurrected the detail view")
	}
}

func TestBoardViewShowsUpdatingAffordance(t *testing.T) {
	model := testModel(t)
	seedBoard(model, boardTestDeals())

	pressKey(model, spaceKey)
	pressKey(model, runeKey('l'))
	pressKey(model, spaceKey)

	view := model.View()
	if !strings.Contains(view, "Updating…") {
		t.Fatal("board does not mark the deal with an in-flight mutation")
	}
}
