package auth

// FailureReason records why a request resolved as anonymous. The distinction
// is for logs and diagnostics only; callers treat every reason the same way.
type FailureReason string

const (
	ReasonAbsent       FailureReason = "absent"
	ReasonExpired      FailureReason = "expired"
	ReasonBadSignature FailureReason = "bad_signature"
	ReasonMalformed    FailureReason = "malformed"
)

// Identity is the resolved representation of a user for one request. It is
// produced once by token verification and passed by value, never mutated.
type Identity struct {
	UserID        uint64
	Username      string
	Authenticated bool
	Reason        FailureReason
}

// Anonymous returns an unauthenticated identity carrying the reason the
// request could not be authenticated.
func Anonymous(reason FailureReason) Identity {
	return Identity{Reason: reason}
}
