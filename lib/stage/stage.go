// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package stage maps the backend's eight fine-grained deal stages
// onto the five board lanes and back. Both directions are static
// tables; there is no configuration and no I/O.
package stage

import "github.com/dealdesk-io/dealdesk/lib/schema/deal"

// Lane is a board column. Five lanes summarize the eight backend
// stages for display.
type Lane string

const (
	LaneIntake       Lane = "Intake"
	LaneUnderwriting Lane = "Underwriting"
	LaneCreditMemo   Lane = "Credit Memo"
	LaneDocs         Lane = "Docs"
	LaneFunded       Lane = "Funded"
)

// Lanes returns the board columns in display order.
func Lanes() []Lane {
	return []Lane{
		LaneIntake,
		LaneUnderwriting,
		LaneCreditMemo,
		LaneDocs,
		LaneFunded,
	}
}

// LaneFor returns the board lane for a backend stage. The mapping is
// total: a stage outside the eight known values falls into the Funded
// lane, the terminal bucket. Callers relying on strict stage
// validation should check deal.Stage.Valid before display; the board
// itself never rejects a deal over an unrecognized stage.
func LaneFor(s deal.Stage) Lane {
	switch s {
	case deal.StageProspect, deal.StageApplication:
		return LaneIntake
	case deal.StageUnderwriting:
		return LaneUnderwriting
	case deal.StageCreditMemo:
		return LaneCreditMemo
	case deal.StageDocs:
		return LaneDocs
	default:
		return LaneFunded
	}
}

// StageFor returns the backend stage a card acquires when dropped on
// the given lane. The forward mapping is many-to-one, so the inverse
// picks the first stage in pipeline order (deal.Stages) whose lane
// matches: dropping on Intake always yields Prospect (never
// Application), and dropping on Funded always yields Approved (never
// Closed or Declined). This first-match tie-break is part of the
// board's contract — do not "improve" it by inferring intent from
// the deal's history.
//
// The boolean is false only for a lane outside the five known values.
func StageFor(lane Lane) (deal.Stage, bool) {
	for _, s := range deal.Stages() {
		if LaneFor(s) == lane {
			return s, true
		}
	}
	return "", false
}

// GroupByLane buckets deals into board lanes, preserving the input
// order within each lane (the backend already sorted the list by the
// active sort key). Every lane is present in the result, empty or
// not, so columns render even when they hold no cards.
func GroupByLane(deals []deal.Deal) map[Lane][]deal.Deal {
	grouped := make(map[Lane][]deal.Deal, len(Lanes()))
	for _, lane := range Lanes() {
		grouped[lane] = []deal.Deal{}
	}
	for _, d := range deals {
		lane := LaneFor(d.Stage)
		grouped[lane] = append(grouped[lane], d)
	}
	return grouped
}
