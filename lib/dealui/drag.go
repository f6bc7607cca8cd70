// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealui

import (
	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
	"github.com/dealdesk-io/dealdesk/lib/stage"
)

// MoveState tracks a keyboard-driven card move. At most one card is
// grabbed and at most one lane is hovered as the drop target at any
// time; every way a move can end clears both, so state from an
// abandoned move can never leak into the next one.
type MoveState struct {
	// GrabbedID is the deal being moved, or "" when no move is in
	// progress.
	GrabbedID string

	// FromStage is the grabbed deal's current stage. A drop is a
	// no-op only when the target lane resolves to this exact stage —
	// lanes bucket several stages, so dropping a card back onto its
	// own lane can still be a real move (an Application deal dropped
	// on Intake moves to Prospect).
	FromStage deal.Stage

	// HoverLane is the candidate drop target. Starts at the grabbed
	// deal's lane and follows the left/right keys.
	HoverLane stage.Lane
}

// Active reports whether a move is in progress.
func (move *MoveState) Active() bool {
	return move.GrabbedID != ""
}

// Grab starts a move for the given deal. Grabbing while another move
// is active replaces it.
func (move *MoveState) Grab(dealID string, current deal.Stage) {
	move.GrabbedID = dealID
	move.FromStage = current
	move.HoverLane = stage.LaneFor(current)
}

// HoverLeft shifts the drop target one lane toward Intake. At the
// leftmost lane it stays put.
func (move *MoveState) HoverLeft() {
	lanes := stage.Lanes()
	for index, lane := range lanes {
		if lane == move.HoverLane && index > 0 {
			move.HoverLane = lanes[index-1]
			return
		}
	}
}

// HoverRight shifts the drop target one lane toward Funded. At the
// rightmost lane it stays put.
func (move *MoveState) HoverRight() {
	lanes := stage.Lanes()
	for index, lane := range lanes {
		if lane == move.HoverLane && index < len(lanes)-1 {
			move.HoverLane = lanes[index+1]
			return
		}
	}
}

// Drop ends the move and reports what, if anything, to mutate. The
// returned ok is false — meaning no request at all — when no card was
// grabbed or when the hovered lane resolves to the stage the deal is
// already in. State is cleared unconditionally on every path.
func (move *MoveState) Drop() (dealID string, target deal.Stage, ok bool) {
	defer move.Clear()

	if move.GrabbedID == "" {
		return "", "", false
	}

	target, known := stage.StageFor(move.HoverLane)
	if !known {
		return "", "", false
	}
	if target == move.FromStage {
		return "", "", false
	}
	return move.GrabbedID, target, true
}

// Clear abandons any move in progress.
func (move *MoveState) Clear() {
	*move = MoveState{}
}
