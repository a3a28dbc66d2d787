package genai

import (
	"context"
	"errors"
	"net"
	"strings"
)

// recoverableMarkers identify transient provider failures worth retrying.
var recoverableMarkers = []string{
	"timeout",
	"timed out",
	"connection",
	"temporar",
	"unavailable",
	"overloaded",
	"rate limit",
	"too many requests",
	"429",
	"500",
	"502",
	"503",
	"504",
}

// unavailableMarkers identify the recoverable-but-exhausted class that
// resolves to the deterministic fallback answer instead of an error.
var unavailableMarkers = []string{
	"unavailable",
	"overloaded",
	"connection",
	"503",
	"502",
	"timeout",
	"timed out",
}

// isRecoverable reports whether an error is a transient network or provider
// failure that should be retried.
func isRecoverable(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return containsAny(err.Error(), recoverableMarkers)
}

// isServiceUnavailable reports whether an exhausted error chain indicates the
// remote service is down, which selects the fallback answer path.
func isServiceUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return containsAny(err.Error(), unavailableMarkers)
}

func containsAny(msg string, markers []string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range markers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
