package genai

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit", errors.New("429 Too Many Requests"), true},
		{"server error", errors.New("internal server error (500)"), true},
		{"timeout text", errors.New("request timed out"), true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped deadline", fmt.Errorf("call failed: %w", context.DeadlineExceeded), true},
		{"bad api key", errors.New("invalid api key"), false},
		{"bad request", errors.New("model not found"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRecoverable(tt.err); got != tt.want {
				t.Errorf("isRecoverable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsServiceUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"503", errors.New("retries exhausted after 3 attempts: 503 Service Unavailable"), true},
		{"overloaded", errors.New("model is overloaded"), true},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"rate limit is not outage", errors.New("429 too many requests"), false},
		{"bad api key", errors.New("invalid api key"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isServiceUnavailable(tt.err); got != tt.want {
				t.Errorf("isServiceUnavailable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
