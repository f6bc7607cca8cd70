// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
)

// GetTermSheet fetches a deal's term sheet. GET /deals/{id}/term-sheet.
func (client *Client) GetTermSheet(ctx context.Context, dealID string) (*deal.TermSheet, error) {
	var result deal.TermSheet
	if err := client.get(ctx, "/deals/"+url.PathEscape(dealID)+"/term-sheet", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateTermSheet replaces a deal's term sheet with the given
// document. PUT /deals/{id}/term-sheet. Returns the stored sheet with
// the backend's lastEditedAt stamp.
func (client *Client) UpdateTermSheet(ctx context.Context, dealID string, sheet deal.TermSheet) (*deal.TermSheet, error) {
	var result deal.TermSheet
	if err := client.put(ctx, "/deals/"+url.PathEscape(dealID)+"/term-sheet", sheet, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SuggestionQuery carries the ad-hoc playground inputs. Nil fields
// are not serialized; IsEmpty reports whether no input is set at all,
// in which case callers must not issue a request (the playground
// shows a prompt instead).
type SuggestionQuery struct {
	Amount *float64
	Rate   *float64
	Amort  *int
	Term   *int
}

// IsEmpty reports whether every input is unset.
func (query SuggestionQuery) IsEmpty() bool {
	return query.Amount == nil && query.Rate == nil && query.Amort == nil && query.Term == nil
}

func (query SuggestionQuery) queryString() string {
	values := url.Values{}
	if query.Amount != nil {
		values.Set("amount", strconv.FormatFloat(*query.Amount, 'f', -1, 64))
	}
	if query.Rate != nil {
		values.Set("rate", strconv.FormatFloat(*query.Rate, 'f', -1, 64))
	}
	if query.Amort != nil {
		values.Set("amort", strconv.Itoa(*query.Amort))
	}
	if query.Term != nil {
		values.Set("term", strconv.Itoa(*query.Term))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// SuggestionList is the {suggestions} response shape.
type SuggestionList struct {
	Suggestions []deal.Suggestion `json:"suggestions"`
}

// GetTermSheetSuggestions asks the backend to evaluate ad-hoc
// term-sheet parameters against the deal. Only set query fields are
// serialized. GET /deals/{id}/term-sheet/suggestions.
func (client *Client) GetTermSheetSuggestions(ctx context.Context, dealID string, query SuggestionQuery) (*SuggestionList, error) {
	var list SuggestionList
	path := "/deals/" + url.PathEscape(dealID) + "/term-sheet/suggestions" + query.queryString()
	if err := client.get(ctx, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// OptimizeJob is the handle returned when an asynchronous term-sheet
// optimization is enqueued. The job lifecycle (polling, results) is
// owned by the backend and out of scope for this client; the id is
// only displayed.
type OptimizeJob struct {
	JobID string `json:"jobId"`
}

// OptimizeTermSheet enqueues an asynchronous optimization run.
// POST /deals/{id}/term-sheet/optimize.
func (client *Client) OptimizeTermSheet(ctx context.Context, dealID string) (*OptimizeJob, error) {
	var job OptimizeJob
	if err := client.post(ctx, "/deals/"+url.PathEscape(dealID)+"/term-sheet/optimize", nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
