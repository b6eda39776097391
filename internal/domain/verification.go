package domain

// EmailVerification is one OTP ledger entry, keyed by email. SendOTP
// overwrites any prior entry for the address; the entry is deleted once a
// registration or password reset completes. ExpiresAt is a Unix timestamp
// registered as the DynamoDB TTL attribute, so stale entries are evicted by
// the store itself; callers still check expiry on access because TTL
// deletion is best-effort.
type EmailVerification struct {
	Email     string `json:"email" dynamodbav:"email"`
	Code      string `json:"-" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"`
	Verified  bool   `json:"verified" dynamodbav:"verified"`
}
