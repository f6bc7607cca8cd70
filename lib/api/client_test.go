// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient creates a Client pointed at the given test server.
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:    server.URL,
		Token:      "test-token",
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{Token: "t"}); err == nil {
		t.Error("expected error for missing base URL")
	}
	if _, err := NewClient(Config{BaseURL: "http://localhost:8000"}); err == nil {
		t.Error("expected error for missing token")
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestedPath = request.URL.Path
		writer.Write([]byte(`{"items":[],"nextCursor":null}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL:    server.URL + "/",
		Token:      "test-token",
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.ListDeals(context.Background(), ListDealsOptions{}); err != nil {
		t.Fatalf("ListDeals: %v", err)
	}
	if requestedPath != "/deals" {
		t.Errorf("path = %q, want /deals (no double slash)", requestedPath)
	}
}

func TestClientSendsBearerAndContentType(t *testing.T) {
	var gotAuth, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotAuth = request.Header.Get("Authorization")
		gotContentType = request.Header.Get("Content-Type")
		writer.Write([]byte(`{"items":[],"nextCursor":null}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if _, err := client.ListDeals(context.Background(), ListDealsOptions{}); err != nil {
		t.Fatalf("ListDeals: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-token")
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
}

func TestClientNon2xxBecomesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
		writer.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.GetDeal(context.Background(), "deal-1")
	if err == nil {
		t.Fatal("expected error for 502 response")
	}

	var apiError *Error
	if !errors.As(err, &apiError) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiError.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", apiError.StatusCode)
	}
	if apiError.Body != "upstream exploded" {
		t.Errorf("Body = %q, want raw response body", apiError.Body)
	}
}

func TestClientIssuesExactlyOneRequest(t *testing.T) {
	// No retry on failure: the cache layer recovers by refetching,
	// never the transport.
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++
		writer.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if _, err := client.GetDeal(context.Background(), "deal-1"); err == nil {
		t.Fatal("expected error")
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1", requests)
	}
}

func TestIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.Error(writer, "no such deal", http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.GetDeal(context.Background(), "deal-missing")
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
	if IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = true for a 404", err)
	}
}
