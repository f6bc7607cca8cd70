// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
	"github.com/dealdesk-io/dealdesk/lib/stage"
)

// boardContext carries everything the board renderer needs for one
// frame besides the deals themselves.
type boardContext struct {
	theme  Theme
	width  int
	height int

	// Cursor position: lane index into stage.Lanes() and card index
	// within that lane.
	laneCursor int
	cardCursor int

	// move is the in-progress card move, if any.
	move MoveState

	// updating reports whether a deal has an optimistic stage update
	// awaiting server confirmation.
	updating func(dealID string) bool
}

// renderBoard lays the five lanes out as side-by-side columns. Lanes
// always render in pipeline order, including empty ones.
func renderBoard(context boardContext, grouped map[stage.Lane][]deal.Deal) string {
	lanes := stage.Lanes()
	laneWidth := context.width/len(lanes) - 1
	if laneWidth < 16 {
		laneWidth = 16
	}

	columns := make([]string, 0, len(lanes))
	for laneIndex, lane := range lanes {
		columns = append(columns, renderLane(context, lane, laneIndex, laneWidth, grouped[lane]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// renderLane renders one column: a colored header with the deal
// count, then the lane's cards top to bottom.
func renderLane(context boardContext, lane stage.Lane, laneIndex, width int, deals []deal.Deal) string {
	theme := context.theme

	borderColor := theme.BorderColor
	if context.move.Active() && context.move.HoverLane == lane {
		borderColor = theme.HoverBorder
	}

	header := lipgloss.NewStyle().
		Foreground(theme.LaneColor(lane)).
		Bold(true).
		Width(width - 2).
		Render(fmt.Sprintf("%s (%d)", lane, len(deals)))

	var rows []string
	rows = append(rows, header)
	for cardIndex, item := range deals {
		selected := laneIndex == context.laneCursor && cardIndex == context.cardCursor
		grabbed := context.move.Active() && context.move.GrabbedID == item.ID
		rows = append(rows, renderCard(theme, item, width-2, selected, grabbed, context.updating != nil && context.updating(item.ID)))
	}

	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width).
		Height(context.height - 2).
		Render(strings.Join(rows, "\n"))
	return column
}

// renderCard renders one deal as a compact multi-line card: borrower
// name, amount and product, probability with risk score, and any
// updating affordance.
func renderCard(theme Theme, item deal.Deal, width int, selected, grabbed, updating bool) string {
	nameStyle := lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	base := lipgloss.NewStyle().Width(width)
	if selected {
		base = base.Background(theme.SelectedBackground).Foreground(theme.SelectedForeground)
		nameStyle = nameStyle.Background(theme.SelectedBackground).Foreground(theme.SelectedForeground)
		faint = faint.Background(theme.SelectedBackground)
	}
	if grabbed {
		base = base.Background(theme.GrabBackground)
		nameStyle = nameStyle.Background(theme.GrabBackground)
		faint = faint.Background(theme.GrabBackground)
	}

	marker := "  "
	if grabbed {
		marker = "◆ "
	} else if selected {
		marker = "▸ "
	}

	lines := []string{
		nameStyle.Render(ansi.Truncate(marker+item.Name, width, "…")),
		faint.Render(ansi.Truncate(fmt.Sprintf("  %s · %s", formatMoney(item.RequestedAmount), item.Product), width, "…")),
	}

	detail := fmt.Sprintf("  %s win", formatPercent(item.Probability))
	if item.RiskScore != nil {
		detail += fmt.Sprintf(" · risk %.0f", *item.RiskScore)
	}
	if len(item.Flags) > 0 {
		detail += fmt.Sprintf(" · %d⚑", len(item.Flags))
	}
	lines = append(lines, faint.Render(ansi.Truncate(detail, width, "…")))

	if updating {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Italic(true).
			Render("  Updating…"))
	}

	return base.Render(strings.Join(lines, "\n"))
}
