// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
)

// ListDealsOptions narrows and orders the deal list. Zero values mean
// "not set" and are omitted from the query string entirely — an empty
// amount bound is no bound, never zero.
type ListDealsOptions struct {
	Search    string
	Product   deal.Product
	MinAmount *float64
	MaxAmount *float64
	Sort      deal.SortField
	Order     string // "asc" or "desc"
	Limit     int
	Cursor    string
}

// queryString serializes the set options. Returns "" when nothing is
// set, otherwise a string starting with "?".
func (options ListDealsOptions) queryString() string {
	values := url.Values{}
	if options.Search != "" {
		values.Set("search", options.Search)
	}
	if options.Product != "" {
		values.Set("product", string(options.Product))
	}
	if options.MinAmount != nil {
		values.Set("minAmt", strconv.FormatFloat(*options.MinAmount, 'f', -1, 64))
	}
	if options.MaxAmount != nil {
		values.Set("maxAmt", strconv.FormatFloat(*options.MaxAmount, 'f', -1, 64))
	}
	if options.Sort != "" {
		values.Set("sort", string(options.Sort))
	}
	if options.Order != "" {
		values.Set("order", options.Order)
	}
	if options.Limit > 0 {
		values.Set("limit", strconv.Itoa(options.Limit))
	}
	if options.Cursor != "" {
		values.Set("cursor", options.Cursor)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// DealPage is one page of the deal list. NextCursor is null on the
// wire when there are no further pages.
type DealPage struct {
	Items      []deal.Deal `json:"items"`
	NextCursor *string     `json:"nextCursor"`
}

// ListDeals fetches deals matching the given filters.
// GET /deals.
func (client *Client) ListDeals(ctx context.Context, options ListDealsOptions) (*DealPage, error) {
	var page DealPage
	if err := client.get(ctx, "/deals"+options.queryString(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetDeal fetches a single deal. GET /deals/{id}.
func (client *Client) GetDeal(ctx context.Context, dealID string) (*deal.Deal, error) {
	var result deal.Deal
	if err := client.get(ctx, "/deals/"+url.PathEscape(dealID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DealUpdate is a partial update to a deal. Only set fields are sent;
// the backend applies them atomically and returns the updated deal.
type DealUpdate struct {
	Stage       deal.Stage `json:"stage,omitempty"`
	OwnerID     string     `json:"ownerId,omitempty"`
	Probability *float64   `json:"probability,omitempty"`
	RiskScore   *float64   `json:"riskScore,omitempty"`
}

// UpdateDeal applies a partial update. PATCH /deals/{id}. Returns the
// backend's authoritative post-update deal.
func (client *Client) UpdateDeal(ctx context.Context, dealID string, update DealUpdate) (*deal.Deal, error) {
	var result deal.Deal
	if err := client.patch(ctx, "/deals/"+url.PathEscape(dealID), update, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetDealActivity fetches a deal's activity timeline. The backend
// returns a bare array; the client wraps it in an ActivityList so the
// detail view consumes the same items-shape as the other sections.
// GET /deals/{id}/activity.
func (client *Client) GetDealActivity(ctx context.Context, dealID string) (*ActivityList, error) {
	var events []deal.ActivityEvent
	if err := client.get(ctx, "/deals/"+url.PathEscape(dealID)+"/activity", &events); err != nil {
		return nil, err
	}
	return &ActivityList{Items: events}, nil
}

// ActivityList wraps the activity array in the items shape used by
// every other collection response.
type ActivityList struct {
	Items []deal.ActivityEvent `json:"items"`
}
