// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
)

// Error represents a non-2xx response from the deals backend. The
// body is kept verbatim — the backend returns plain-text or JSON
// error payloads depending on the route, and the client does not
// interpret them. Callers must treat these as non-retryable by
// default; the refetch-on-invalidate cycle is the only recovery the
// client performs.
type Error struct {
	// StatusCode is the HTTP response status.
	StatusCode int

	// Body is the raw response body.
	Body string
}

func (err *Error) Error() string {
	return fmt.Sprintf("api: HTTP %d: %s", err.StatusCode, err.Body)
}

// IsNotFound reports whether err is a backend 404 response. The detail
// view renders these as inline "not found" text rather than an error
// panel.
func IsNotFound(err error) bool {
	var apiError *Error
	return errors.As(err, &apiError) && apiError.StatusCode == 404
}

// IsUnauthorized reports whether err is a backend 401 response,
// which means the configured bearer credential was rejected.
func IsUnauthorized(err error) bool {
	var apiError *Error
	return errors.As(err, &apiError) && apiError.StatusCode == 401
}
