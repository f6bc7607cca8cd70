// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
)

// GetBorrower fetches a borrower by reference id. GET /borrowers/{id}.
func (client *Client) GetBorrower(ctx context.Context, borrowerID string) (*deal.Borrower, error) {
	var result deal.Borrower
	if err := client.get(ctx, "/borrowers/"+url.PathEscape(borrowerID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FinancialsOptions narrows a borrower financials query. Zero values
// are omitted.
type FinancialsOptions struct {
	Period   string
	FromYear int
	ToYear   int
}

func (options FinancialsOptions) queryString() string {
	values := url.Values{}
	if options.Period != "" {
		values.Set("period", options.Period)
	}
	if options.FromYear > 0 {
		values.Set("fromYear", strconv.Itoa(options.FromYear))
	}
	if options.ToYear > 0 {
		values.Set("toYear", strconv.Itoa(options.ToYear))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// GetBorrowerFinancials fetches per-period financial snapshots for a
// borrower, newest first. GET /borrowers/{id}/financials.
func (client *Client) GetBorrowerFinancials(ctx context.Context, borrowerID string, options FinancialsOptions) ([]deal.Financial, error) {
	var results []deal.Financial
	path := "/borrowers/" + url.PathEscape(borrowerID) + "/financials" + options.queryString()
	if err := client.get(ctx, path, &results); err != nil {
		return nil, err
	}
	return results, nil
}
