// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/dealdesk-io/dealdesk/lib/api"
	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
)

// financialPeriodsShown caps how many statement periods the detail
// view renders. The backend returns them newest-first.
const financialPeriodsShown = 3

// section is the loading/error/value triple every detail section
// carries. Each section fails independently: an error here renders
// inline in the section's own box and never touches its siblings.
type section[T any] struct {
	loading bool
	loaded  bool
	err     error
	value   T
}

func (state *section[T]) begin() {
	state.loading = true
	state.err = nil
}

func (state *section[T]) finish(value T, err error) {
	state.loading = false
	state.loaded = err == nil
	state.err = err
	if err == nil {
		state.value = value
	}
}

// PlaygroundField identifies one of the four ad-hoc term inputs.
type PlaygroundField int

const (
	// FieldAmount is the loan amount input.
	FieldAmount PlaygroundField = iota
	// FieldRate is the interest rate input.
	FieldRate
	// FieldAmort is the amortization-months input.
	FieldAmort
	// FieldTerm is the term-months input.
	FieldTerm

	playgroundFieldCount
)

// playgroundFieldLabels indexes by PlaygroundField.
var playgroundFieldLabels = [playgroundFieldCount]string{
	"amount", "rate", "amort", "term",
}

// Playground holds the ad-hoc term-sheet inputs and their suggestion
// results. Inputs are raw text; only fields that parse are sent, and
// when every field is empty no request is made at all.
type Playground struct {
	// Inputs holds the raw text per field.
	Inputs [playgroundFieldCount]string

	// Focus is the field receiving keystrokes while the playground
	// is active.
	Focus PlaygroundField

	// Active is true when keystrokes route to the playground.
	Active bool

	debounceSequence int

	suggestions section[[]deal.Suggestion]
}

// Query translates the inputs into the suggestion query. Fields that
// are empty or fail to parse are left unset and omitted from the
// request.
func (playground *Playground) Query() api.SuggestionQuery {
	var query api.SuggestionQuery
	if amount, err := strconv.ParseFloat(strings.TrimSpace(playground.Inputs[FieldAmount]), 64); err == nil {
		query.Amount = &amount
	}
	if rate, err := strconv.ParseFloat(strings.TrimSpace(playground.Inputs[FieldRate]), 64); err == nil {
		query.Rate = &rate
	}
	if amort, err := strconv.Atoi(strings.TrimSpace(playground.Inputs[FieldAmort])); err == nil {
		query.Amort = &amort
	}
	if term, err := strconv.Atoi(strings.TrimSpace(playground.Inputs[FieldTerm])); err == nil {
		query.Term = &term
	}
	return query
}

// HandleRune appends a typed character to the focused input and
// returns the debounce sequence for the timer message. Only digits
// and a decimal point are accepted; anything else returns -1.
func (playground *Playground) HandleRune(character rune) int {
	if (character < '0' || character > '9') && character != '.' {
		return -1
	}
	playground.Inputs[playground.Focus] += string(character)
	playground.debounceSequence++
	return playground.debounceSequence
}

// HandleBackspace removes the last character from the focused input.
// Returns the new debounce sequence, or -1 if nothing changed.
func (playground *Playground) HandleBackspace() int {
	current := playground.Inputs[playground.Focus]
	if current == "" {
		return -1
	}
	runes := []rune(current)
	playground.Inputs[playground.Focus] = string(runes[:len(runes)-1])
	playground.debounceSequence++
	return playground.debounceSequence
}

// NextField cycles focus through the four inputs.
func (playground *Playground) NextField() {
	playground.Focus = (playground.Focus + 1) % playgroundFieldCount
}

// ShouldFetch reports whether a suggestion request should fire for
// the given timer sequence: the timer must still be current and at
// least one input must be set. All-empty inputs never produce a
// request.
func (playground *Playground) ShouldFetch(sequence int) bool {
	if sequence != playground.debounceSequence {
		return false
	}
	return !playground.Query().IsEmpty()
}

// DetailModel is the per-deal detail view. The deal itself loads
// first; the borrower and financial sections start only once the deal
// arrives (they need its borrower reference), while the document
// checklist, activity timeline, and term sheet fan out immediately.
type DetailModel struct {
	// DealID is the deal this view shows.
	DealID string

	deal       section[*deal.Deal]
	borrower   section[*deal.Borrower]
	financials section[[]deal.Financial]
	checklist  section[[]deal.DocumentRequest]
	activity   section[[]deal.ActivityEvent]
	termSheet  section[*deal.TermSheet]

	// Playground is the ad-hoc term exploration panel.
	Playground Playground

	scroll int
}

// NewDetailModel creates a detail view for the given deal with every
// section in its initial loading state except borrower and
// financials, which wait for the deal.
func NewDetailModel(dealID string) DetailModel {
	model := DetailModel{DealID: dealID}
	model.deal.begin()
	model.checklist.begin()
	model.activity.begin()
	model.termSheet.begin()
	return model
}

// Deal returns the loaded deal, or nil while loading or on error.
func (model *DetailModel) Deal() *deal.Deal {
	return model.deal.value
}

// SetDeal records the deal fetch result. Returns the borrower ID to
// fan out to when the deal loaded and carries a borrower reference;
// ok is false when there is nothing further to fetch.
func (model *DetailModel) SetDeal(value *deal.Deal, err error) (borrowerID string, ok bool) {
	model.deal.finish(value, err)
	if err != nil || value == nil || value.BorrowerID == "" {
		return "", false
	}
	model.borrower.begin()
	model.financials.begin()
	return value.BorrowerID, true
}

// SetBorrower records the borrower fetch result.
func (model *DetailModel) SetBorrower(value *deal.Borrower, err error) {
	model.borrower.finish(value, err)
}

// SetFinancials records the financial statements fetch result.
func (model *DetailModel) SetFinancials(value []deal.Financial, err error) {
	model.financials.finish(value, err)
}

// SetChecklist records the document checklist fetch result.
func (model *DetailModel) SetChecklist(value []deal.DocumentRequest, err error) {
	model.checklist.finish(value, err)
}

// BeginChecklistRefresh marks the checklist as reloading, used after
// a document request is submitted.
func (model *DetailModel) BeginChecklistRefresh() {
	model.checklist.begin()
}

// SetActivity records the activity timeline fetch result.
func (model *DetailModel) SetActivity(value []deal.ActivityEvent, err error) {
	model.activity.finish(value, err)
}

// SetTermSheet records the term sheet fetch result.
func (model *DetailModel) SetTermSheet(value *deal.TermSheet, err error) {
	model.termSheet.finish(value, err)
}

// BeginSuggestions marks the playground's suggestion section as
// loading.
func (model *DetailModel) BeginSuggestions() {
	model.Playground.suggestions.begin()
}

// SetSuggestions records the suggestion fetch result.
func (model *DetailModel) SetSuggestions(value []deal.Suggestion, err error) {
	model.Playground.suggestions.finish(value, err)
}

// ScrollUp moves the viewport up.
func (model *DetailModel) ScrollUp(count int) {
	model.scroll -= count
	if model.scroll < 0 {
		model.scroll = 0
	}
}

// ScrollDown moves the viewport down.
func (model *DetailModel) ScrollDown(count int) {
	model.scroll += count
}

// View renders the detail page: header, summary, then each section in
// its own box. The whole page is assembled and then windowed by the
// scroll offset.
func (model *DetailModel) View(theme Theme, width, height int, now time.Time) string {
	var blocks []string
	blocks = append(blocks, model.renderHeader(theme, width))
	blocks = append(blocks, model.renderBorrower(theme, width))
	blocks = append(blocks, model.renderChecklist(theme, width))
	blocks = append(blocks, model.renderTermSheet(theme, width))
	blocks = append(blocks, model.renderPlayground(theme, width))
	blocks = append(blocks, model.renderActivity(theme, width, now))

	page := strings.Join(blocks, "\n")
	lines := strings.Split(page, "\n")

	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if model.scroll > maxScroll {
		model.scroll = maxScroll
	}
	end := model.scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[model.scroll:end], "\n")
}

// sectionStatus renders the shared loading/error/not-found states for
// a section. Returns "" when the section is loaded and the caller
// should render its content.
func sectionStatus(theme Theme, loading bool, err error) string {
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	if loading {
		return faint.Render("Loading…")
	}
	if err != nil {
		if api.IsNotFound(err) {
			return faint.Render("not found")
		}
		return lipgloss.NewStyle().Foreground(theme.NoticeError).Render("Error: " + err.Error())
	}
	return ""
}

func (model *DetailModel) renderHeader(theme Theme, width int) string {
	title := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if status := sectionStatus(theme, model.deal.loading, model.deal.err); status != "" {
		return title.Render("Deal "+model.DealID) + "\n" + status
	}

	item := model.deal.value
	lines := []string{
		title.Render(ansi.Truncate(item.Name, width, "…")),
		faint.Render(fmt.Sprintf("%s · %s · stage %s · owner %s",
			formatMoney(item.RequestedAmount), item.Product, item.Stage, item.Owner.Name)),
	}

	metrics := fmt.Sprintf("win %s", formatPercent(item.Probability))
	if item.RiskScore != nil {
		metrics += fmt.Sprintf(" · risk %.0f", *item.RiskScore)
	}
	if item.DSCR != nil {
		metrics += fmt.Sprintf(" · DSCR %.2f", *item.DSCR)
	}
	if item.LTV != nil {
		metrics += fmt.Sprintf(" · LTV %s", formatPercent(*item.LTV))
	}
	if item.DocsProgress != nil {
		metrics += fmt.Sprintf(" · docs %s", formatPercent(*item.DocsProgress))
	}
	lines = append(lines, faint.Render(metrics))

	if len(item.Flags) > 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.SeverityWarning).
			Render("⚑ "+strings.Join(item.Flags, ", ")))
	}
	return strings.Join(lines, "\n")
}

func (model *DetailModel) renderBorrower(theme Theme, width int) string {
	title := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Render("Borrower")
	normal := lipgloss.NewStyle().Foreground(theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	// No borrower reference on the deal: nothing to show.
	if model.deal.loaded && model.deal.value.BorrowerID == "" {
		return title + "\n" + faint.Render("no borrower on file")
	}
	if !model.borrower.loading && !model.borrower.loaded && model.borrower.err == nil {
		// Waiting for the deal to arrive.
		return title + "\n" + faint.Render("Loading…")
	}

	if status := sectionStatus(theme, model.borrower.loading, model.borrower.err); status != "" {
		return title + "\n" + status
	}

	borrower := model.borrower.value
	lines := []string{title, normal.Render(borrower.LegalName)}
	descriptor := ""
	if borrower.Industry != nil {
		descriptor = *borrower.Industry
	}
	if borrower.NAICS != nil {
		descriptor += " (NAICS " + *borrower.NAICS + ")"
	}
	if descriptor != "" {
		lines = append(lines, faint.Render(descriptor))
	}
	if borrower.ExistingRelationship {
		relationship := "existing relationship"
		if borrower.Deposits != nil {
			relationship += " · deposits " + formatMoney(*borrower.Deposits)
		}
		lines = append(lines, faint.Render(relationship))
	}

	lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.HeaderForeground).Render("Financials"))
	if status := sectionStatus(theme, model.financials.loading, model.financials.err); status != "" {
		lines = append(lines, status)
	} else {
		periods := model.financials.value
		if len(periods) > financialPeriodsShown {
			periods = periods[:financialPeriodsShown]
		}
		if len(periods) == 0 {
			lines = append(lines, faint.Render("no statements on file"))
		}
		for _, period := range periods {
			lines = append(lines, faint.Render(ansi.Truncate(fmt.Sprintf(
				"%s: revenue %s, EBITDA %s, debt service %s",
				period.Period, formatMoney(period.Revenue),
				formatMoney(period.EBITDA), formatMoney(period.DebtService)), width, "…")))
		}
	}
	return strings.Join(lines, "\n")
}

func (model *DetailModel) renderChecklist(theme Theme, width int) string {
	title := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Render("Documents")
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if status := sectionStatus(theme, model.checklist.loading, model.checklist.err); status != "" {
		return title + "\n" + status
	}

	items := model.checklist.value
	if len(items) == 0 {
		return title + "\n" + faint.Render("checklist is empty · r to request")
	}

	lines := []string{title}
	for _, item := range items {
		statusStyle := lipgloss.NewStyle().Foreground(theme.DocStatusColor(item.Status))
		line := fmt.Sprintf("%s %s", statusStyle.Render("["+string(item.Status)+"]"), item.Label)
		if item.RequiredBy != nil {
			line += faint.Render(" · due " + *item.RequiredBy)
		}
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	return strings.Join(lines, "\n")
}

func (model *DetailModel) renderTermSheet(theme Theme, width int) string {
	title := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Render("Term Sheet")
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if status := sectionStatus(theme, model.termSheet.loading, model.termSheet.err); status != "" {
		return title + "\n" + status
	}

	sheet := model.termSheet.value
	lines := []string{
		title,
		faint.Render(fmt.Sprintf("%s + %d bps · amort %d mo · IO %d mo · orig fee %d bps",
			sheet.BaseRate, sheet.MarginBps, sheet.AmortMonths,
			sheet.InterestOnlyMonths, sheet.OriginationFeeBps)),
	}
	if sheet.Collateral != nil {
		lines = append(lines, faint.Render(ansi.Truncate("collateral: "+*sheet.Collateral, width, "…")))
	}
	if len(sheet.Covenants) > 0 {
		lines = append(lines, faint.Render(ansi.Truncate("covenants: "+strings.Join(sheet.Covenants, "; "), width, "…")))
	}
	return strings.Join(lines, "\n")
}

func (model *DetailModel) renderPlayground(theme Theme, width int) string {
	title := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Render("Playground")
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	accent := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)

	var fields []string
	for index := PlaygroundField(0); index < playgroundFieldCount; index++ {
		text := model.Playground.Inputs[index]
		if text == "" {
			text = "·"
		}
		if model.Playground.Active && model.Playground.Focus == index {
			text += accent.Render("▎")
		}
		fields = append(fields, playgroundFieldLabels[index]+": "+text)
	}
	lines := []string{title, faint.Render(strings.Join(fields, "   ") + "   (o: optimize)")}

	if model.Playground.Query().IsEmpty() {
		lines = append(lines, faint.Render("set a value to see suggestions"))
		return strings.Join(lines, "\n")
	}

	suggestions := &model.Playground.suggestions
	if status := sectionStatus(theme, suggestions.loading, suggestions.err); status != "" {
		lines = append(lines, status)
		return strings.Join(lines, "\n")
	}
	if len(suggestions.value) == 0 {
		lines = append(lines, faint.Render("no concerns with these terms"))
	}
	for _, suggestion := range suggestions.value {
		marker := lipgloss.NewStyle().
			Foreground(theme.SeverityColor(suggestion.Severity)).
			Render("● ")
		lines = append(lines, ansi.Truncate(marker+suggestion.Text, width, "…"))
	}
	return strings.Join(lines, "\n")
}

func (model *DetailModel) renderActivity(theme Theme, width int, now time.Time) string {
	title := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Render("Activity")
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	normal := lipgloss.NewStyle().Foreground(theme.NormalText)

	if status := sectionStatus(theme, model.activity.loading, model.activity.err); status != "" {
		return title + "\n" + status
	}

	events := model.activity.value
	if len(events) == 0 {
		return title + "\n" + faint.Render("no activity yet")
	}

	lines := []string{title}
	for _, event := range events {
		line := normal.Render(event.Type) + faint.Render(" · "+formatRelativeTime(event.At, now))
		if len(event.Payload) > 0 {
			keys := make([]string, 0, len(event.Payload))
			for key := range event.Payload {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			var parts []string
			for _, key := range keys {
				parts = append(parts, fmt.Sprintf("%s=%v", key, event.Payload[key]))
			}
			line += faint.Render(" (" + strings.Join(parts, ", ") + ")")
		}
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	return strings.Join(lines, "\n")
}
