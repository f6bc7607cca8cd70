// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/url"

	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
)

// DocumentList is the {items} response shape shared by the documents
// and checklist routes.
type DocumentList struct {
	Items []deal.DocumentRequest `json:"items"`
}

// GetDealDocuments fetches a deal's document requests.
// GET /deals/{id}/documents.
func (client *Client) GetDealDocuments(ctx context.Context, dealID string) (*DocumentList, error) {
	var list DocumentList
	if err := client.get(ctx, "/deals/"+url.PathEscape(dealID)+"/documents", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetDealChecklist fetches the deal's document checklist, which the
// backend derives from product type and underwriting progress.
// GET /deals/{id}/checklist.
func (client *Client) GetDealChecklist(ctx context.Context, dealID string) (*DocumentList, error) {
	var list DocumentList
	if err := client.get(ctx, "/deals/"+url.PathEscape(dealID)+"/checklist", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DocumentDraft describes a new document request. RequiredBy is an
// optional ISO date; empty means no due date.
type DocumentDraft struct {
	Label      string `json:"label"`
	Type       string `json:"type"`
	RequiredBy string `json:"requiredBy,omitempty"`
}

// RequestDocument creates a new document request on a deal.
// POST /deals/{id}/documents.
func (client *Client) RequestDocument(ctx context.Context, dealID string, draft DocumentDraft) (*deal.DocumentRequest, error) {
	var result deal.DocumentRequest
	if err := client.post(ctx, "/deals/"+url.PathEscape(dealID)+"/documents", draft, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
