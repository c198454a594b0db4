package client

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// TestCategorizeError verifies that CategorizeError maps errors to the correct ErrorCategory
// for metrics labeling, including sentinel errors, wrapped errors, and message-based heuristics.
func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"nil", nil, ""},
		{"timeout context", context.DeadlineExceeded, ErrorCategoryTimeout},
		{"canceled context", context.Canceled, ErrorCategoryTimeout},
		{"invalid API key", ErrInvalidAPIKey, ErrorCategoryInvalidAPIKey},
		{"wrapped invalid API key", fmt.Errorf("auth: %w", ErrInvalidAPIKey), ErrorCategoryInvalidAPIKey},
		{"location not found", ErrLocationNotFound, ErrorCategoryLocationNotFound},
		{"rate limited", ErrRateLimited, ErrorCategoryRateLimited},
		{"upstream failure", fmt.Errorf("%w: HTTP 502", ErrUpstreamFailure), ErrorCategoryUpstream},
		{"malformed response", fmt.Errorf("%w: missing weather conditions", ErrMalformedResponse), ErrorCategoryParsing},
		{"wrapped deadline", fmt.Errorf("request timeout: %w", context.DeadlineExceeded), ErrorCategoryTimeout},
		{"connection refused", errors.New("dial tcp: connection refused"), ErrorCategoryNetwork},
		{"http request failed", errors.New("http request failed: EOF"), ErrorCategoryNetwork},
		{"unknown", errors.New("something else"), ErrorCategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategorizeError(tt.err)
			if got != tt.want {
				t.Errorf("CategorizeError() = %v, want %v", got, tt.want)
			}
		})
	}
}
