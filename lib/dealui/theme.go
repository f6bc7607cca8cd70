// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
	"github.com/dealdesk-io/dealdesk/lib/settings"
	"github.com/dealdesk-io/dealdesk/lib/stage"
)

// Theme defines the color palette for the dashboard. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
//
// The fields cover both universal chrome (text, selection, borders)
// and the semantic categories that recur across the pipeline: lanes,
// products, document statuses, and flag severities.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected card.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Lane header colors (indexed by stage.Lane position in
	// stage.Lanes()).
	LaneColors [5]lipgloss.Color

	// Severity colors for underwriting flags.
	SeverityInfo     lipgloss.Color
	SeverityWarning  lipgloss.Color
	SeverityCritical lipgloss.Color

	// Document checklist status colors.
	DocPending  lipgloss.Color
	DocReceived lipgloss.Color
	DocVerified lipgloss.Color
	DocRejected lipgloss.Color
	DocWaived   lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Grabbed card in move mode and the lane currently hovered as
	// its drop target.
	GrabBackground lipgloss.Color
	HoverBorder    lipgloss.Color

	// Status bar notices.
	NoticeError lipgloss.Color
	NoticeInfo  lipgloss.Color
}

// LaneColor returns the header color for a lane. Unknown lanes get
// NormalText.
func (theme Theme) LaneColor(lane stage.Lane) lipgloss.Color {
	for index, known := range stage.Lanes() {
		if known == lane {
			return theme.LaneColors[index]
		}
	}
	return theme.NormalText
}

// SeverityColor returns the color for an underwriting flag severity.
// Unknown severities render as FaintText.
func (theme Theme) SeverityColor(severity deal.Severity) lipgloss.Color {
	switch severity {
	case deal.SeverityInfo:
		return theme.SeverityInfo
	case deal.SeverityWarning:
		return theme.SeverityWarning
	case deal.SeverityCritical:
		return theme.SeverityCritical
	default:
		return theme.FaintText
	}
}

// DocStatusColor returns the color for a document checklist status.
// Requested items share the pending color; unknown statuses render
// as FaintText.
func (theme Theme) DocStatusColor(status deal.DocStatus) lipgloss.Color {
	switch status {
	case deal.DocPending, deal.DocRequested:
		return theme.DocPending
	case deal.DocReceived:
		return theme.DocReceived
	case deal.DocVerified:
		return theme.DocVerified
	case deal.DocRejected:
		return theme.DocRejected
	case deal.DocWaived:
		return theme.DocWaived
	default:
		return theme.FaintText
	}
}

// ThemeFor returns the palette for a theme name. Unknown names fall
// back to the light palette.
func ThemeFor(name settings.ThemeName) Theme {
	if name == settings.ThemeDark {
		return DarkTheme
	}
	return LightTheme
}

// DarkTheme is the color scheme for dark-background terminals.
var DarkTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	LaneColors: [5]lipgloss.Color{
		lipgloss.Color("75"),  // Intake: blue.
		lipgloss.Color("214"), // Underwriting: orange.
		lipgloss.Color("177"), // Credit Memo: purple.
		lipgloss.Color("221"), // Docs: yellow.
		lipgloss.Color("78"),  // Funded: green.
	},

	SeverityInfo:     lipgloss.Color("75"),
	SeverityWarning:  lipgloss.Color("214"),
	SeverityCritical: lipgloss.Color("203"),

	DocPending:  lipgloss.Color("245"),
	DocReceived: lipgloss.Color("75"),
	DocVerified: lipgloss.Color("78"),
	DocRejected: lipgloss.Color("203"),
	DocWaived:   lipgloss.Color("244"),

	HeaderForeground: lipgloss.Color("117"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("244"),

	GrabBackground: lipgloss.Color("238"),
	HoverBorder:    lipgloss.Color("117"),

	NoticeError: lipgloss.Color("203"),
	NoticeInfo:  lipgloss.Color("78"),
}

// LightTheme is the color scheme for light-background terminals.
var LightTheme = Theme{
	NormalText: lipgloss.Color("235"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("254"),
	SelectedForeground: lipgloss.Color("232"),

	LaneColors: [5]lipgloss.Color{
		lipgloss.Color("26"),  // Intake: blue.
		lipgloss.Color("166"), // Underwriting: orange.
		lipgloss.Color("91"),  // Credit Memo: purple.
		lipgloss.Color("130"), // Docs: brown-yellow.
		lipgloss.Color("28"),  // Funded: green.
	},

	SeverityInfo:     lipgloss.Color("26"),
	SeverityWarning:  lipgloss.Color("166"),
	SeverityCritical: lipgloss.Color("124"),

	DocPending:  lipgloss.Color("243"),
	DocReceived: lipgloss.Color("26"),
	DocVerified: lipgloss.Color("28"),
	DocRejected: lipgloss.Color("124"),
	DocWaived:   lipgloss.Color("245"),

	HeaderForeground: lipgloss.Color("25"),
	BorderColor:      lipgloss.Color("250"),
	HelpText:         lipgloss.Color("245"),

	GrabBackground: lipgloss.Color("253"),
	HoverBorder:    lipgloss.Color("25"),

	NoticeError: lipgloss.Color("124"),
	NoticeInfo:  lipgloss.Color("28"),
}
