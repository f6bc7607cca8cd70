// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealui

import (
	"fmt"
	"strings"
	"time"
)

// formatMoney renders a dollar amount with thousands separators and
// no cents: 1250000 -> "$1,250,000". Amounts are request sizes, so
// sub-dollar precision is noise on a board card.
func formatMoney(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := fmt.Sprintf("%.0f", amount)
	var groups []string
	for len(whole) > 3 {
		groups = append([]string{whole[len(whole)-3:]}, groups...)
		whole = whole[:len(whole)-3]
	}
	groups = append([]string{whole}, groups...)

	result := "$" + strings.Join(groups, ",")
	if negative {
		return "-" + result
	}
	return result
}

// formatPercent renders a 0..1 probability as a whole percentage:
// 0.65 -> "65%".
func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

// formatRelativeTime renders how long ago a timestamp was, relative
// to now: "just now", "5m ago", "3h ago", "2d ago". Timestamps more
// than a week old fall back to the date.
func formatRelativeTime(timestamp, now time.Time) string {
	elapsed := now.Sub(timestamp)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	default:
		return timestamp.Format("2006-01-02")
	}
}
