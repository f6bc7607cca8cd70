// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dealdesk-io/dealdesk/lib/api"
	"github.com/dealdesk-io/dealdesk/lib/clock"
	"github.com/dealdesk-io/dealdesk/lib/dealquery"
	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
	"github.com/dealdesk-io/dealdesk/lib/settings"
	"github.com/dealdesk-io/dealdesk/lib/stage"
)

// noticeFadeDelay is how long status-bar notices stay visible before
// fading back to the key help line.
const noticeFadeDelay = 4 * time.Second

// dealsFetchedMsg delivers a board list fetch result. The generation
// lets the cache discard results from fetches that were cancelled
// while in flight.
type dealsFetchedMsg struct {
	key        dealquery.Key
	generation int
	deals      []deal.Deal
	err        error
}

// stageMoveResultMsg delivers the outcome of a stage PATCH.
type stageMoveResultMsg struct {
	key dealquery.Key
	err error
}

// searchDebounceMsg fires when the search input has been quiet for
// the debounce window. Stale sequences are ignored.
type searchDebounceMsg struct {
	sequence int
}

// suggestionsDebounceMsg fires when the playground inputs have been
// quiet for the debounce window.
type suggestionsDebounceMsg struct {
	dealID   string
	sequence int
}

// Detail section results. Each carries the deal it belongs to so
// results for a closed or replaced detail view are dropped.
type detailDealMsg struct {
	dealID string
	value  *deal.Deal
	err    error
}

type borrowerMsg struct {
	dealID string
	value  *deal.Borrower
	err    error
}

type financialsMsg struct {
	dealID string
	value  []deal.Financial
	err    error
}

type checklistMsg struct {
	dealID string
	value  []deal.DocumentRequest
	err    error
}

type activityMsg struct {
	dealID string
	value  []deal.ActivityEvent
	err    error
}

type termSheetMsg struct {
	dealID string
	value  *deal.TermSheet
	err    error
}

type suggestionsMsg struct {
	dealID   string
	sequence int
	value    []deal.Suggestion
	err      error
}

type optimizeResultMsg struct {
	dealID string
	job    *api.OptimizeJob
	err    error
}

type documentRequestedMsg struct {
	dealID string
	err    error
}

// noticeFadeMsg clears a status-bar notice. The sequence guards
// against an old fade timer clearing a newer notice.
type noticeFadeMsg struct {
	sequence int
}

// Config carries the dependencies the dashboard model needs.
type Config struct {
	// Client talks to the DealDesk backend.
	Client *api.Client

	// Clock drives cache freshness and relative timestamps.
	Clock clock.Clock

	// Logger receives structured records for mutation failures and
	// discarded fetches.
	Logger *slog.Logger

	// Settings persists the theme preference. Optional; without it
	// theme toggles apply for the session only.
	Settings *settings.Store

	// Theme is the initial palette.
	Theme Theme
}

// Model is the top-level bubbletea model for the pipeline dashboard.
// All fields are owned by the Update goroutine.
type Model struct {
	client   *api.Client
	cache    *dealquery.Cache
	clock    clock.Clock
	logger   *slog.Logger
	settings *settings.Store

	theme Theme
	keys  KeyMap

	width  int
	height int

	filter FilterModel
	move   MoveState

	laneCursor int
	cardCursor int

	// detail is non-nil while the detail view is open.
	detail *DetailModel

	// requestModal is non-nil while the request-document modal is
	// open on top of the detail view.
	requestModal *RequestModal

	notice         string
	noticeIsError  bool
	noticeSequence int
}

// NewModel creates the dashboard model. Call Init/Update/View through
// a tea.Program.
func NewModel(config Config) *Model {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Model{
		client:   config.Client,
		cache:    dealquery.NewCache(config.Clock, logger),
		clock:    config.Clock,
		logger:   logger,
		settings: config.Settings,
		theme:    config.Theme,
		keys:     DefaultKeyMap,
		filter:   NewFilterModel(),
	}
}

// Init starts the first board fetch.
func (model *Model) Init() tea.Cmd {
	return model.maybeFetch()
}

// maybeFetch consults the cache for the current filter key and starts
// a fetch when one is due. Fresh data and in-flight fetches produce
// no command.
func (model *Model) maybeFetch() tea.Cmd {
	key := model.filter.Key()
	if !model.cache.NeedsFetch(key) {
		return nil
	}
	generation := model.cache.BeginFetch(key)
	client := model.client
	return func() tea.Msg {
		options := key.Options()
		page, err := client.ListDeals(context.Background(), options)
		if err != nil {
			return dealsFetchedMsg{key: key, generation: generation, err: err}
		}
		return dealsFetchedMsg{key: key, generation: generation, deals: page.Items}
	}
}

// Update is the single place model state changes.
func (model *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)

	case dealsFetchedMsg:
		applied := model.cache.CompleteFetch(message.key, message.generation, message.deals, message.err)
		if !applied {
			model.logger.Debug("discarded stale fetch result", "generation", message.generation)
		}
		return model, nil

	case searchDebounceMsg:
		if model.filter.CommitSearch(message.sequence) {
			return model, model.maybeFetch()
		}
		return model, nil

	case stageMoveResultMsg:
		model.cache.ResolveStageUpdate(message.key, message.err)
		var fade tea.Cmd
		if message.err != nil {
			fade = model.showNotice("move failed: "+message.err.Error(), true)
		}
		return model, tea.Batch(fade, model.maybeFetch())

	case detailDealMsg:
		if model.detail == nil || model.detail.DealID != message.dealID {
			return model, nil
		}
		borrowerID, ok := model.detail.SetDeal(message.value, message.err)
		if !ok {
			return model, nil
		}
		return model, tea.Batch(
			model.fetchBorrower(message.dealID, borrowerID),
			model.fetchFinancials(message.dealID, borrowerID),
		)

	case borrowerMsg:
		if model.detail != nil && model.detail.DealID == message.dealID {
			model.detail.SetBorrower(message.value, message.err)
		}
		return model, nil

	case financialsMsg:
		if model.detail != nil && model.detail.DealID == message.dealID {
			model.detail.SetFinancials(message.value, message.err)
		}
		return model, nil

	case checklistMsg:
		if model.detail != nil && model.detail.DealID == message.dealID {
			model.detail.SetChecklist(message.value, message.err)
		}
		return model, nil

	case activityMsg:
		if model.detail != nil && model.detail.DealID == message.dealID {
			model.detail.SetActivity(message.value, message.err)
		}
		return model, nil

	case termSheetMsg:
		if model.detail != nil && model.detail.DealID == message.dealID {
			model.detail.SetTermSheet(message.value, message.err)
		}
		return model, nil

	case suggestionsDebounceMsg:
		if model.detail == nil || model.detail.DealID != message.dealID {
			return model, nil
		}
		if !model.detail.Playground.ShouldFetch(message.sequence) {
			return model, nil
		}
		model.detail.BeginSuggestions()
		return model, model.fetchSuggestions(message.dealID, message.sequence)

	case suggestionsMsg:
		if model.detail == nil || model.detail.DealID != message.dealID {
			return model, nil
		}
		// A newer edit supersedes this result.
		if message.sequence != model.detail.Playground.debounceSequence {
			return model, nil
		}
		model.detail.SetSuggestions(message.value, message.err)
		return model, nil

	case optimizeResultMsg:
		if message.err != nil {
			return model, model.showNotice("optimize failed: "+message.err.Error(), true)
		}
		return model, model.showNotice("optimization started: job "+message.job.JobID, false)

	case documentRequestedMsg:
		if message.err != nil {
			return model, model.showNotice("document request failed: "+message.err.Error(), true)
		}
		var refresh tea.Cmd
		if model.detail != nil && model.detail.DealID == message.dealID {
			model.detail.BeginChecklistRefresh()
			refresh = model.fetchChecklist(message.dealID)
		}
		return model, tea.Batch(model.showNotice("document requested", false), refresh)

	case noticeFadeMsg:
		if message.sequence == model.noticeSequence {
			model.notice = ""
		}
		return model, nil
	}

	return model, nil
}

// showNotice puts a message in the status bar and schedules its fade.
func (model *Model) showNotice(text string, isError bool) tea.Cmd {
	model.notice = text
	model.noticeIsError = isError
	model.noticeSequence++
	sequence := model.noticeSequence
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{sequence: sequence}
	})
}

// handleKey routes a keystroke by focus: modal, playground, filter
// inputs, detail view, then board.
func (model *Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case model.requestModal != nil:
		return model.handleModalKeys(message)
	case model.detail != nil:
		return model.handleDetailKeys(message)
	case model.filter.SearchActive:
		return model.handleSearchKeys(message)
	case model.filter.FieldsActive:
		return model.handleFieldKeys(message)
	default:
		return model.handleBoardKeys(message)
	}
}

func (model *Model) handleModalKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		model.requestModal = nil
		return model, nil

	case tea.KeyEnter:
		draft, ok := model.requestModal.Draft()
		if !ok {
			return model, model.showNotice("label and type are required", true)
		}
		dealID := model.detail.DealID
		model.requestModal = nil
		client := model.client
		return model, func() tea.Msg {
			_, err := client.RequestDocument(context.Background(), dealID, draft)
			return documentRequestedMsg{dealID: dealID, err: err}
		}

	default:
		model.requestModal.Update(message)
		return model, nil
	}
}

func (model *Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape, tea.KeyEnter:
		model.filter.SearchActive = false
		return model, nil

	case tea.KeyBackspace:
		return model, model.searchDebounceCmd(model.filter.HandleSearchBackspace())

	case tea.KeyRunes, tea.KeySpace:
		var command tea.Cmd
		for _, character := range message.Runes {
			command = model.searchDebounceCmd(model.filter.HandleSearchRune(character))
		}
		return model, command
	}
	return model, nil
}

// searchDebounceCmd schedules the commit timer for a search edit.
// A sequence of -1 means the edit was a no-op.
func (model *Model) searchDebounceCmd(sequence int) tea.Cmd {
	if sequence < 0 {
		return nil
	}
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{sequence: sequence}
	})
}

func (model *Model) handleFieldKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape, tea.KeyEnter:
		model.filter.FieldsActive = false
		return model, nil

	case tea.KeyTab:
		if model.filter.AmountFocus == AmountMin {
			model.filter.AmountFocus = AmountMax
		} else {
			model.filter.AmountFocus = AmountMin
		}
		return model, nil

	case tea.KeyBackspace:
		if model.filter.HandleAmountBackspace() {
			return model, model.maybeFetch()
		}
		return model, nil

	case tea.KeyRunes:
		changed := false
		for _, character := range message.Runes {
			if model.filter.HandleAmountRune(character) {
				changed = true
			}
		}
		if changed {
			return model, model.maybeFetch()
		}
		return model, nil
	}
	return model, nil
}

func (model *Model) handleDetailKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	detail := model.detail

	if detail.Playground.Active {
		switch message.Type {
		case tea.KeyEscape, tea.KeyEnter:
			detail.Playground.Active = false
			return model, nil
		case tea.KeyTab:
			detail.Playground.NextField()
			return model, nil
		case tea.KeyBackspace:
			return model, model.suggestionsDebounceCmd(detail.Playground.HandleBackspace())
		case tea.KeyRunes:
			var command tea.Cmd
			for _, character := range message.Runes {
				command = model.suggestionsDebounceCmd(detail.Playground.HandleRune(character))
			}
			return model, command
		}
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Back):
		model.detail = nil
		return model, nil

	case key.Matches(message, model.keys.Up):
		detail.ScrollUp(1)
		return model, nil

	case key.Matches(message, model.keys.Down):
		detail.ScrollDown(1)
		return model, nil

	case key.Matches(message, model.keys.EditTerms):
		detail.Playground.Active = true
		return model, nil

	case key.Matches(message, model.keys.Optimize):
		dealID := detail.DealID
		client := model.client
		return model, func() tea.Msg {
			job, err := client.OptimizeTermSheet(context.Background(), dealID)
			return optimizeResultMsg{dealID: dealID, job: job, err: err}
		}

	case key.Matches(message, model.keys.RequestDocument):
		name := detail.DealID
		if loaded := detail.Deal(); loaded != nil {
			name = loaded.Name
		}
		modal := NewRequestModal(name, model.theme)
		model.requestModal = &modal
		return model, nil

	case key.Matches(message, model.keys.ThemeToggle):
		return model, model.toggleTheme()

	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	}
	return model, nil
}

// suggestionsDebounceCmd schedules the suggestion fetch timer for a
// playground edit.
func (model *Model) suggestionsDebounceCmd(sequence int) tea.Cmd {
	if sequence < 0 {
		return nil
	}
	dealID := model.detail.DealID
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return suggestionsDebounceMsg{dealID: dealID, sequence: sequence}
	})
}

func (model *Model) handleBoardKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.SearchActivate):
		model.filter.SearchActive = true
		return model, nil

	case key.Matches(message, model.keys.FilterFields):
		model.filter.FieldsActive = true
		return model, nil

	case key.Matches(message, model.keys.ProductCycle):
		model.filter.CycleProduct()
		return model, model.maybeFetch()

	case key.Matches(message, model.keys.SortCycle):
		model.filter.CycleSort()
		return model, model.maybeFetch()

	case key.Matches(message, model.keys.OrderToggle):
		model.filter.ToggleOrder()
		return model, model.maybeFetch()

	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Clear() {
			return model, model.maybeFetch()
		}
		return model, nil

	case key.Matches(message, model.keys.Refresh):
		model.cache.Invalidate(model.filter.Key())
		return model, model.maybeFetch()

	case key.Matches(message, model.keys.ThemeToggle):
		return model, model.toggleTheme()

	case key.Matches(message, model.keys.Left):
		if model.move.Active() {
			model.move.HoverLeft()
		} else if model.laneCursor > 0 {
			model.laneCursor--
			model.clampCardCursor()
		}
		return model, nil

	case key.Matches(message, model.keys.Right):
		if model.move.Active() {
			model.move.HoverRight()
		} else if model.laneCursor < len(stage.Lanes())-1 {
			model.laneCursor++
			model.clampCardCursor()
		}
		return model, nil

	case key.Matches(message, model.keys.Up):
		if model.cardCursor > 0 {
			model.cardCursor--
		}
		return model, nil

	case key.Matches(message, model.keys.Down):
		model.cardCursor++
		model.clampCardCursor()
		return model, nil

	case key.Matches(message, model.keys.Grab):
		return model.handleGrabOrDrop()

	case key.Matches(message, model.keys.Back):
		model.move.Clear()
		return model, nil

	case key.Matches(message, model.keys.OpenDetail):
		if model.move.Active() {
			return model.handleGrabOrDrop()
		}
		selected := model.selectedDeal()
		if selected == nil {
			return model, nil
		}
		return model.openDetail(selected.ID)
	}
	return model, nil
}

// handleGrabOrDrop toggles move mode: grab the selected card, or drop
// the grabbed one onto the hovered lane.
func (model *Model) handleGrabOrDrop() (tea.Model, tea.Cmd) {
	if !model.move.Active() {
		// One stage move at a time per query: grabs are ignored
		// while a mutation is awaiting the server.
		if model.cache.MutationInFlight(model.filter.Key()) {
			return model, nil
		}
		selected := model.selectedDeal()
		if selected == nil {
			return model, nil
		}
		model.move.Grab(selected.ID, selected.Stage)
		return model, nil
	}

	dealID, target, ok := model.move.Drop()
	if !ok {
		return model, nil
	}

	mutationKey := model.filter.Key()
	if err := model.cache.BeginStageUpdate(mutationKey, dealID, target); err != nil {
		return model, model.showNotice("cannot move: "+err.Error(), true)
	}

	client := model.client
	return model, func() tea.Msg {
		_, err := client.UpdateDeal(context.Background(), dealID, api.DealUpdate{Stage: target})
		return stageMoveResultMsg{key: mutationKey, err: err}
	}
}

// openDetail opens the detail view and fans out the section fetches:
// the deal first (borrower and financials follow once it arrives),
// with checklist, activity, and term sheet in parallel.
func (model *Model) openDetail(dealID string) (tea.Model, tea.Cmd) {
	detail := NewDetailModel(dealID)
	model.detail = &detail
	model.move.Clear()

	client := model.client
	return model, tea.Batch(
		func() tea.Msg {
			value, err := client.GetDeal(context.Background(), dealID)
			return detailDealMsg{dealID: dealID, value: value, err: err}
		},
		model.fetchChecklist(dealID),
		func() tea.Msg {
			list, err := client.GetDealActivity(context.Background(), dealID)
			if err != nil {
				return activityMsg{dealID: dealID, err: err}
			}
			return activityMsg{dealID: dealID, value: list.Items}
		},
		func() tea.Msg {
			sheet, err := client.GetTermSheet(context.Background(), dealID)
			return termSheetMsg{dealID: dealID, value: sheet, err: err}
		},
	)
}

func (model *Model) fetchChecklist(dealID string) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		list, err := client.GetDealChecklist(context.Background(), dealID)
		if err != nil {
			return checklistMsg{dealID: dealID, err: err}
		}
		return checklistMsg{dealID: dealID, value: list.Items}
	}
}

func (model *Model) fetchBorrower(dealID, borrowerID string) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		value, err := client.GetBorrower(context.Background(), borrowerID)
		return borrowerMsg{dealID: dealID, value: value, err: err}
	}
}

// financialsRange bounds the statements request to the three most
// recent full fiscal years, matching how many periods the detail
// view renders.
func financialsRange(now time.Time) api.FinancialsOptions {
	return api.FinancialsOptions{
		FromYear: now.Year() - 3,
		ToYear:   now.Year() - 1,
	}
}

func (model *Model) fetchFinancials(dealID, borrowerID string) tea.Cmd {
	client := model.client
	options := financialsRange(model.clock.Now())
	return func() tea.Msg {
		value, err := client.GetBorrowerFinancials(context.Background(), borrowerID, options)
		return financialsMsg{dealID: dealID, value: value, err: err}
	}
}

func (model *Model) fetchSuggestions(dealID string, sequence int) tea.Cmd {
	query := model.detail.Playground.Query()
	client := model.client
	return func() tea.Msg {
		list, err := client.GetTermSheetSuggestions(context.Background(), dealID, query)
		if err != nil {
			return suggestionsMsg{dealID: dealID, sequence: sequence, err: err}
		}
		return suggestionsMsg{dealID: dealID, sequence: sequence, value: list.Suggestions}
	}
}

// toggleTheme flips the palette and persists the choice when a
// settings store is attached.
func (model *Model) toggleTheme() tea.Cmd {
	if model.settings == nil {
		if model.theme.NormalText == DarkTheme.NormalText {
			model.theme = LightTheme
		} else {
			model.theme = DarkTheme
		}
		return nil
	}
	name, err := model.settings.Toggle()
	model.theme = ThemeFor(name)
	if err != nil {
		return model.showNotice("theme not saved: "+err.Error(), true)
	}
	return nil
}

// selectedDeal returns the deal under the cursor, or nil when the
// lane is empty.
func (model *Model) selectedDeal() *deal.Deal {
	grouped := model.groupedDeals()
	lane := stage.Lanes()[model.laneCursor]
	cards := grouped[lane]
	if model.cardCursor >= len(cards) {
		return nil
	}
	selected := cards[model.cardCursor]
	return &selected
}

// clampCardCursor keeps the card cursor inside the current lane.
func (model *Model) clampCardCursor() {
	grouped := model.groupedDeals()
	lane := stage.Lanes()[model.laneCursor]
	cards := grouped[lane]
	if len(cards) == 0 {
		model.cardCursor = 0
		return
	}
	if model.cardCursor >= len(cards) {
		model.cardCursor = len(cards) - 1
	}
}

func (model *Model) groupedDeals() map[stage.Lane][]deal.Deal {
	view := model.cache.View(model.filter.Key())
	return stage.GroupByLane(view.Deals)
}

// View renders the frame: board or detail, the filter bar, and the
// status bar, with the request modal spliced on top when open.
func (model *Model) View() string {
	if model.width == 0 {
		return "Loading…"
	}

	view := model.cache.View(model.filter.Key())

	var body string
	if model.detail != nil {
		body = model.detail.View(model.theme, model.width, model.height-1, model.clock.Now())
	} else if view.State == dealquery.StateError {
		body = model.renderFetchError(view.Err)
	} else {
		filterBar := model.filter.View(model.theme, model.width)
		board := renderBoard(boardContext{
			theme:      model.theme,
			width:      model.width,
			height:     model.height - 3,
			laneCursor: model.laneCursor,
			cardCursor: model.cardCursor,
			move:       model.move,
			updating:   func(dealID string) bool { return view.Updating[dealID] },
		}, stage.GroupByLane(view.Deals))
		body = filterBar + "\n" + board
	}

	frame := body + "\n" + model.renderStatusBar(view)

	if model.requestModal != nil {
		lines, anchorX, anchorY := model.requestModal.Render(model.width, model.height)
		frame = spliceOverlay(frame, lines, anchorX, anchorY)
	}
	return frame
}

// renderFetchError is the full-screen failure panel, used only when
// the board list itself cannot load.
func (model *Model) renderFetchError(err error) string {
	message := lipgloss.NewStyle().
		Foreground(model.theme.NoticeError).
		Bold(true).
		Render("Could not load deals")
	detail := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Render(err.Error() + "\n\nR to retry · q to quit")
	return lipgloss.Place(model.width, model.height-1, lipgloss.Center, lipgloss.Center,
		message+"\n\n"+detail)
}

// renderStatusBar shows the active notice when there is one, else the
// key help with deal count and refetch indicator.
func (model *Model) renderStatusBar(view dealquery.View) string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText).Width(model.width)

	if model.notice != "" {
		color := model.theme.NoticeInfo
		if model.noticeIsError {
			color = model.theme.NoticeError
		}
		return lipgloss.NewStyle().Foreground(color).Width(model.width).Render(" " + model.notice)
	}

	var help string
	switch {
	case model.requestModal != nil:
		help = "Tab: next field · Enter: submit · Esc: cancel"
	case model.detail != nil:
		help = "j/k: scroll · e: edit terms · o: optimize · r: request doc · Esc: back"
	case model.move.Active():
		help = "h/l: choose lane · space: drop · Esc: cancel"
	default:
		help = "h/l/j/k: navigate · space: move · Enter: open · /: search · f: filters · p/s/S: product/sort · t: theme · q: quit"
	}

	status := fmt.Sprintf(" %d deals", len(view.Deals))
	if view.State == dealquery.StateFetching {
		status += " · refreshing…"
	}
	return style.Render(status + " · " + help)
}
