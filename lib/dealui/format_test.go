// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealui

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0"},
		{950, "$950"},
		{1250000, "$1,250,000"},
		{400000.49, "$400,000"},
		{-75000, "-$75,000"},
	}
	for _, test := range tests {
		if got := formatMoney(test.amount); got != test.want {
			t.Errorf("formatMoney(%v) = %q, want %q", test.amount, got, test.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(0.65); got != "65%" {
		t.Fatalf("formatPercent(0.65) = %q", got)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-48 * time.Hour), "2d ago"},
		{now.Add(-30 * 24 * time.Hour), "2026-01-30"},
	}
	for _, test := range tests {
		if got := formatRelativeTime(test.at, now); got != test.want {
			t.Errorf("formatRelativeTime(%v) = %q, want %q", test.at, got, test.want)
		}
	}
}
