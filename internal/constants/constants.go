package constants

import "time"

// Session
const (
	SessionCookieName = "projecthub_session"
	SessionTTL        = 24 * time.Hour
)

// Context keys
const (
	ContextKeyIdentity  = "identity"
	ContextKeyUserID    = "user_id"
	ContextKeyTask      = "task"
	ContextKeyRequestID = "request_id"
)

// User validation limits
const (
	MinUsernameLength = 3
	MaxUsernameLength = 10
	MinPasswordLength = 8
	MaxPasswordLength = 70
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Login rate limiting
const (
	LoginRateLimitMax    = 10
	LoginRateLimitWindow = time.Minute
)
