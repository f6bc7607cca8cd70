// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(modal *RequestModal, text string) {
	for _, character := range text {
		modal.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}})
	}
}

func TestDraftRequiresLabelAndType(t *testing.T) {
	modal := NewRequestModal("Acme expansion", LightTheme)

	if _, ok := modal.Draft(); ok {
		t.Fatal("empty modal produced a submittable draft")
	}

	typeText(&modal, "2025 tax return")
	if _, ok := modal.Draft(); ok {
		t.Fatal("draft without a type was submittable")
	}

	modal.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(&modal, "tax_return")

	draft, ok := modal.Draft()
	if !ok {
		t.Fatal("complete draft rejected")
	}
	if draft.Label != "2025 tax return" || draft.Type != "tax_return" {
		t.Fatalf("draft = %+v", draft)
	}
	if draft.RequiredBy != "" {
		t.Fatal("due date set without input")
	}
}

func TestTabCyclesThroughAllFields(t *testing.T) {
	modal := NewRequestModal("Acme", LightTheme)
	typeText(&modal, "a")
	modal.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(&modal, "b")
	modal.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(&modal, "2026-04-01")
	modal.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(&modal, "a2")

	draft, ok := modal.Draft()
	if !ok {
		t.Fatal("draft rejected")
	}
	if draft.Label != "aa2" || draft.Type != "b" || draft.RequiredBy != "2026-04-01" {
		t.Fatalf("draft = %+v", draft)
	}
}

func TestBackspaceEditsTheFocusedField(t *testing.T) {
	modal := NewRequestModal("Acme", LightTheme)
	typeText(&modal, "abc")
	modal.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	modal.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(&modal, "t")

	draft, ok := modal.Draft()
	if !ok {
		t.Fatal("draft rejected")
	}
	if draft.Label != "ab" {
		t.Fatalf("label = %q, want ab", draft.Label)
	}
}
