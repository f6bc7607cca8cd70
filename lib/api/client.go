// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// maxResponseSize bounds response body reads: 64 MB. This exists
// solely to keep a pathological response from exhausting memory;
// legitimate responses from the deals backend are orders of magnitude
// smaller.
const maxResponseSize int64 = 64 << 20

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the root URL of the deals backend, without a
	// trailing slash (e.g. "http://localhost:8000"). Required.
	BaseURL string

	// Token is the static bearer credential attached to every
	// request. Required. Rotation is a deployment concern; the
	// client never refreshes it.
	Token string

	// HTTPClient is used for all requests. Defaults to
	// http.DefaultClient. No timeouts are configured beyond
	// whatever this transport provides.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Client is a typed client for the deals backend REST API. One method
// per backend operation; every method issues exactly one HTTP request
// and performs no retries — a non-2xx response surfaces as *Error and
// the caller decides whether to refetch.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client from the given configuration. Returns an
// error when the base URL or token is missing.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	if config.Token == "" {
		return nil, fmt.Errorf("api: bearer token is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		token:      config.Token,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// do executes one authenticated request against the backend. The path
// is relative to the base URL and may carry a query string. A non-nil
// requestBody is JSON-encoded. Returns the raw response body; a
// response outside the 2xx range becomes *Error carrying the status
// and the body verbatim.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	url := client.baseURL + path

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+client.token)
	request.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, url, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("api: reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &Error{StatusCode: response.StatusCode, Body: string(body)}
	}
	return body, nil
}

// get executes a GET request and decodes the JSON response into result.
func (client *Client) get(ctx context.Context, path string, result any) error {
	body, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("api: decoding response from %s: %w", path, err)
	}
	return nil
}

// post executes a POST request and decodes the JSON response into
// result when result is non-nil.
func (client *Client) post(ctx context.Context, path string, requestBody, result any) error {
	body, err := client.do(ctx, http.MethodPost, path, requestBody)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("api: decoding response from %s: %w", path, err)
	}
	return nil
}

// patch executes a PATCH request and decodes the JSON response into
// result when result is non-nil.
func (client *Client) patch(ctx context.Context, path string, requestBody, result any) error {
	body, err := client.do(ctx, http.MethodPatch, path, requestBody)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("api: decoding response from %s: %w", path, err)
	}
	return nil
}

// put executes a PUT request and decodes the JSON response into
// result when result is non-nil.
func (client *Client) put(ctx context.Context, path string, requestBody, result any) error {
	body, err := client.do(ctx, http.MethodPut, path, requestBody)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("api: decoding response from %s: %w", path, err)
	}
	return nil
}
