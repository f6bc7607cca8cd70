// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestSuggestionQuerySerializesOnlySetFields(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotQuery = request.URL.Query()
		writer.Write([]byte(`{"suggestions":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	amount := 250000.0
	_, err := client.GetTermSheetSuggestions(context.Background(), "D1", SuggestionQuery{
		Amount: &amount,
	})
	if err != nil {
		t.Fatalf("GetTermSheetSuggestions: %v", err)
	}
	if got := gotQuery.Get("amount"); got != "250000" {
		t.Errorf("amount = %q, want 250000", got)
	}
	for _, key := range []string{"rate", "amort", "term"} {
		if gotQuery.Has(key) {
			t.Errorf("query carries unset field %q", key)
		}
	}
}

func TestSuggestionQueryIsEmpty(t *testing.T) {
	if !(SuggestionQuery{}).IsEmpty() {
		t.Error("zero query should be empty")
	}
	rate := 7.25
	if (SuggestionQuery{Rate: &rate}).IsEmpty() {
		t.Error("query with rate set should not be empty")
	}
}

func TestGetTermSheetSuggestionsDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(`{"suggestions":[
			{"id":"s1","dealId":"D1","severity":"warning","text":"DSCR below policy at this amount"},
			{"id":"s2","dealId":"D1","severity":"info","text":"Within LTV guidance"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	amort := 240
	list, err := client.GetTermSheetSuggestions(context.Background(), "D1", SuggestionQuery{Amort: &amort})
	if err != nil {
		t.Fatalf("GetTermSheetSuggestions: %v", err)
	}
	if len(list.Suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(list.Suggestions))
	}
	if list.Suggestions[0].Severity != "warning" {
		t.Errorf("severity = %s, want warning", list.Suggestions[0].Severity)
	}
}

func TestOptimizeTermSheetReturnsJobID(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotMethod = request.Method
		gotPath = request.URL.Path
		writer.Write([]byte(`{"jobId":"job-77"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	job, err := client.OptimizeTermSheet(context.Background(), "D1")
	if err != nil {
		t.Fatalf("OptimizeTermSheet: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/deals/D1/term-sheet/optimize" {
		t.Errorf("request = %s %s, want POST /deals/D1/term-sheet/optimize", gotMethod, gotPath)
	}
	if job.JobID != "job-77" {
		t.Errorf("JobID = %q, want job-77", job.JobID)
	}
}

func TestGetTermSheetDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(`{
			"id":"ts1","dealId":"D1","baseRate":"SOFR","marginBps":275,
			"amortMonths":300,"interestOnlyMonths":12,"originationFeeBps":100,
			"prepayPenalty":null,"collateral":"CRE first lien",
			"covenants":["Min DSCR 1.25x"],"conditions":null,
			"lastEditedAt":"2026-02-20T16:00:00Z"
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	sheet, err := client.GetTermSheet(context.Background(), "D1")
	if err != nil {
		t.Fatalf("GetTermSheet: %v", err)
	}
	if sheet.MarginBps != 275 || sheet.BaseRate != "SOFR" {
		t.Errorf("sheet = %+v", sheet)
	}
	if sheet.PrepayPenalty != nil {
		t.Errorf("PrepayPenalty = %v, want nil", *sheet.PrepayPenalty)
	}
	if len(sheet.Covenants) != 1 {
		t.Errorf("Covenants = %v", sheet.Covenants)
	}
}
