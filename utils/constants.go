package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// AccessTokenTTLSeconds is the time-to-live for access tokens in seconds (86400 seconds = 24 hours)
	AccessTokenTTLSeconds = 86400

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour

	// SessionTimeout is the default session timeout (24 hours)
	SessionTimeout = 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Pagination constants
const (
	// DefaultPageSize is the page size used when a list request omits one
	DefaultPageSize = 25

	// MaxPageSize caps page sizes on list endpoints
	MaxPageSize = 100
)

// Outreach constants
const (
	// LearnedSlotsCacheTTL is how long a rep's learned best-call slots stay cached
	LearnedSlotsCacheTTL = 10 * time.Minute

	// ReminderOverdueThreshold is how far past due a cadence step must be before the
	// reminder scheduler nags the owning rep
	ReminderOverdueThreshold = 24 * time.Hour
)
