// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay replaces a rectangular region of the rendered board
// or detail view with modal content. The modal lines are placed at
// (anchorX, anchorY) in screen coordinates. ANSI-aware truncation
// keeps the escape sequences on either side of the cut intact.
func spliceOverlay(view string, modalLines []string, anchorX, anchorY int) string {
	if len(modalLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	modalWidth := ansi.StringWidth(modalLines[0])

	for index, modalLine := range modalLines {
		viewLineIndex := anchorY + index
		if viewLineIndex < 0 || viewLineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		var result strings.Builder
		if anchorX > 0 {
			result.WriteString(ansi.Truncate(viewLine, anchorX, ""))
		}
		// Reset on both sides so the view's styling never bleeds
		// into the modal or vice versa.
		result.WriteString("\x1b[0m")
		result.WriteString(modalLine)
		result.WriteString("\x1b[0m")

		suffixStart := anchorX + modalWidth
		if suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[viewLineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}
