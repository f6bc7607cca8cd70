// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package deal defines the wire types for the deals backend. All
// structs mirror the backend's JSON exactly (camelCase keys, null for
// unset optional fields); the client performs no translation beyond
// decoding. Entities are owned by the backend — the client only holds
// transient cache copies, and the one field it ever rewrites locally
// (Deal.Stage, during an optimistic update) is always superseded by
// the backend's authoritative response on the next refetch.
package deal

import "time"

// Stage is a backend pipeline position. The backend defines exactly
// eight values; the board collapses them into five display lanes (see
// the stage package).
type Stage string

const (
	StageProspect     Stage = "Prospect"
	StageApplication  Stage = "Application"
	StageUnderwriting Stage = "Underwriting"
	StageCreditMemo   Stage = "CreditMemo"
	StageDocs         Stage = "Docs"
	StageApproved     Stage = "Approved"
	StageClosed       Stage = "Closed"
	StageDeclined     Stage = "Declined"
)

// Stages lists every backend stage in pipeline order. This order is
// load-bearing: the lane-to-stage reverse mapping resolves ties by
// taking the first stage in this order whose lane matches.
func Stages() []Stage {
	return []Stage{
		StageProspect,
		StageApplication,
		StageUnderwriting,
		StageCreditMemo,
		StageDocs,
		StageApproved,
		StageClosed,
		StageDeclined,
	}
}

// Valid reports whether the stage is one of the eight known values.
func (stage Stage) Valid() bool {
	switch stage {
	case StageProspect, StageApplication, StageUnderwriting,
		StageCreditMemo, StageDocs, StageApproved, StageClosed,
		StageDeclined:
		return true
	}
	return false
}

// Product is a loan product type.
type Product string

const (
	ProductTermLoan     Product = "TermLoan"
	ProductLineOfCredit Product = "LineOfCredit"
	ProductSBA7a        Product = "SBA7a"
	ProductEquipment    Product = "Equipment"
	ProductCRE          Product = "CRE"
)

// Products lists the product types in display order.
func Products() []Product {
	return []Product{
		ProductTermLoan,
		ProductLineOfCredit,
		ProductSBA7a,
		ProductEquipment,
		ProductCRE,
	}
}

// Valid reports whether the product is one of the five known values.
func (product Product) Valid() bool {
	switch product {
	case ProductTermLoan, ProductLineOfCredit, ProductSBA7a,
		ProductEquipment, ProductCRE:
		return true
	}
	return false
}

// DocStatus is the lifecycle state of a document request.
type DocStatus string

const (
	DocPending   DocStatus = "pending"
	DocRequested DocStatus = "requested"
	DocReceived  DocStatus = "received"
	DocVerified  DocStatus = "verified"
	DocRejected  DocStatus = "rejected"
	DocWaived    DocStatus = "waived"
)

// Severity classifies a term-sheet suggestion.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// SortField names a deal-list sort column accepted by the backend.
type SortField string

const (
	SortUpdatedAt       SortField = "updatedAt"
	SortCreatedAt       SortField = "createdAt"
	SortRequestedAmount SortField = "requestedAmount"
	SortProbability     SortField = "probability"
	SortName            SortField = "name"
)

// SortFields lists the sortable columns in cycle order for the
// filter bar.
func SortFields() []SortField {
	return []SortField{
		SortUpdatedAt,
		SortCreatedAt,
		SortRequestedAmount,
		SortProbability,
		SortName,
	}
}

// Owner identifies the relationship manager responsible for a deal.
type Owner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Deal is a financing opportunity tracked through the pipeline.
// Pointer fields are null on the wire when the backend has not yet
// computed them (risk scoring and document verification run
// asynchronously server-side).
type Deal struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	BorrowerID      string    `json:"borrowerId"`
	Owner           Owner     `json:"owner"`
	Product         Product   `json:"product"`
	Stage           Stage     `json:"stage"`
	RequestedAmount float64   `json:"requestedAmount"`
	Probability     float64   `json:"probability"`
	RiskScore       *float64  `json:"riskScore"`
	DSCR            *float64  `json:"dscr"`
	LTV             *float64  `json:"ltv"`
	DocsProgress    *float64  `json:"docsProgress"`
	Flags           []string  `json:"flags"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Borrower is the legal entity behind a deal, fetched by the deal's
// borrower reference.
type Borrower struct {
	ID                   string   `json:"id"`
	LegalName            string   `json:"legalName"`
	Industry             *string  `json:"industry"`
	NAICS                *string  `json:"naics"`
	Address              *string  `json:"address"`
	ExistingRelationship bool     `json:"existingRelationship"`
	Deposits             *float64 `json:"deposits"`
}

// Financial is one per-period snapshot of a borrower's statements.
// The backend returns periods newest-first; the detail view shows at
// most the first three.
type Financial struct {
	BorrowerID  string  `json:"borrowerId"`
	Period      string  `json:"period"`
	PeriodEnd   string  `json:"periodEnd"`
	Revenue     float64 `json:"revenue"`
	EBITDA      float64 `json:"ebitda"`
	DebtService float64 `json:"debtService"`
}

// DocumentRequest is one entry in a deal's documents checklist.
type DocumentRequest struct {
	ID          string    `json:"id"`
	DealID      string    `json:"dealId"`
	Label       string    `json:"label"`
	Type        string    `json:"type"`
	RequiredBy  *string   `json:"requiredBy"`
	Status      DocStatus `json:"status"`
	Link        *string   `json:"link"`
	RequestedAt time.Time `json:"requestedAt"`
}

// ActivityEvent is one entry in a deal's activity timeline. Payload
// is a free-form key-value map rendered verbatim.
type ActivityEvent struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	At      time.Time      `json:"at"`
	DealID  string         `json:"dealId"`
	Payload map[string]any `json:"payload"`
}

// TermSheet is the structured loan terms attached to a deal.
type TermSheet struct {
	ID                 string    `json:"id"`
	DealID             string    `json:"dealId"`
	BaseRate           string    `json:"baseRate"`
	MarginBps          int       `json:"marginBps"`
	AmortMonths        int       `json:"amortMonths"`
	InterestOnlyMonths int       `json:"interestOnlyMonths"`
	OriginationFeeBps  int       `json:"originationFeeBps"`
	PrepayPenalty      *string   `json:"prepayPenalty"`
	Collateral         *string   `json:"collateral"`
	Covenants          []string  `json:"covenants"`
	Conditions         []string  `json:"conditions"`
	LastEditedAt       time.Time `json:"lastEditedAt"`
}

// Suggestion is a backend-generated advisory note about ad-hoc
// term-sheet parameters. Inputs echoes the parameters the suggestion
// was computed from, when the backend includes them.
type Suggestion struct {
	ID       string         `json:"id"`
	DealID   string         `json:"dealId"`
	Severity Severity       `json:"severity"`
	Text     string         `json:"text"`
	Inputs   map[string]any `json:"inputs,omitempty"`
}
