// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/dealdesk-io/dealdesk/lib/api"
)

// RequestField identifies one input in the request-document modal.
type RequestField int

const (
	// RequestLabel is the human-readable document label.
	RequestLabel RequestField = iota
	// RequestType is the document type slug.
	RequestType
	// RequestRequiredBy is the optional due date (free text).
	RequestRequiredBy

	requestFieldCount
)

var requestFieldLabels = [requestFieldCount]string{
	"Label", "Type", "Required by",
}

// RequestModal is the overlay for requesting a document on a deal.
// Three single-line inputs; Tab cycles fields, Enter submits, Escape
// cancels. Label and type are required; the due date is optional.
type RequestModal struct {
	// DealName identifies the deal in the modal title.
	DealName string

	inputs [requestFieldCount]string
	focus  RequestField
	theme  Theme
}

// NewRequestModal creates an empty request-document modal.
func NewRequestModal(dealName string, theme Theme) RequestModal {
	return RequestModal{DealName: dealName, theme: theme}
}

// Update processes a key message for the modal's inputs.
func (modal *RequestModal) Update(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			modal.inputs[modal.focus] += string(character)
		}

	case tea.KeyBackspace:
		current := modal.inputs[modal.focus]
		if current != "" {
			runes := []rune(current)
			modal.inputs[modal.focus] = string(runes[:len(runes)-1])
		}

	case tea.KeyTab, tea.KeyDown:
		modal.focus = (modal.focus + 1) % requestFieldCount

	case tea.KeyShiftTab, tea.KeyUp:
		modal.focus = (modal.focus + requestFieldCount - 1) % requestFieldCount
	}
}

// Draft returns the document draft for submission. ok is false when a
// required field is still empty.
func (modal *RequestModal) Draft() (api.DocumentDraft, bool) {
	draft := api.DocumentDraft{
		Label: strings.TrimSpace(modal.inputs[RequestLabel]),
		Type:  strings.TrimSpace(modal.inputs[RequestType]),
	}
	draft.RequiredBy = strings.TrimSpace(modal.inputs[RequestRequiredBy])
	if draft.Label == "" || draft.Type == "" {
		return api.DocumentDraft{}, false
	}
	return draft, true
}

// Modal chrome: 2 columns border + 2 padding horizontal; 2 lines
// border + 1 title + 1 footer vertical.
const (
	requestModalWidth  = 48
	requestModalHeight = requestFieldCount + 4
)

// Render produces the modal overlay lines and the top-left anchor in
// screen coordinates, centered on the screen.
func (modal RequestModal) Render(screenWidth, screenHeight int) ([]string, int, int) {
	width := requestModalWidth
	if width > screenWidth {
		width = screenWidth
	}
	innerWidth := width - 4

	theme := modal.theme
	titleStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	valueStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	cursorStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)

	var body []string
	body = append(body, titleStyle.Render(ansi.Truncate("Request document · "+modal.DealName, innerWidth, "…")))
	for field := RequestField(0); field < requestFieldCount; field++ {
		line := labelStyle.Render(requestFieldLabels[field]+": ") + valueStyle.Render(modal.inputs[field])
		if field == modal.focus {
			line += cursorStyle.Render("▎")
		}
		body = append(body, ansi.Truncate(line, innerWidth, "…"))
	}
	body = append(body, labelStyle.Render("Enter: submit · Esc: cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HoverBorder).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(body, "\n"))

	lines := strings.Split(box, "\n")
	anchorX := (screenWidth - width) / 2
	anchorY := (screenHeight - len(lines)) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	if anchorY < 0 {
		anchorY = 0
	}
	return lines, anchorX, anchorY
}
