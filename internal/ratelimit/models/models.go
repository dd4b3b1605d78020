package models

import (
	"strings"
	"time"
)

// EndpointClass groups endpoints that share a request quota.
type EndpointClass string

const (
	// ClassLive covers per-keystroke traffic: format, paste, keystroke.
	ClassLive EndpointClass = "live"
	// ClassSubmit covers whole-value checks: validate, normalize, form check.
	ClassSubmit EndpointClass = "submit"
)

func (c EndpointClass) IsValid() bool {
	switch c {
	case ClassLive, ClassSubmit:
		return true
	default:
		return false
	}
}

// Policy is a request budget per sliding window.
type Policy struct {
	Requests int
	Window   time.Duration
}

// Result is the outcome of one rate limit check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds
}

// ExceededResponse is the API response when a client is over quota.
type ExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"error_description"`
	RetryAfter int    `json:"retry_after"`
}

// SanitizeKeySegment escapes the key delimiter so IPv6 addresses cannot
// spill into adjacent key segments.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
