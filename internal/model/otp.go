package model

import "time"

// OtpSession models a single outstanding or spent one-time-code
// verification attempt in the `otp_sessions` table.  A code is
// accepted at most once: verification flips Verified under an atomic
// conditional update.  Multiple unexpired codes may coexist for the
// same identifier; each remains independently checkable until expiry.
//
// Fields:
//  ID         – primary key identifier.
//  Identifier – phone number or email the code was issued for.
//  Code       – fixed-length numeric code (stored as text to keep
//               leading zeros).
//  ExpiresAt  – wall-clock deadline checked at use time.
//  Verified   – whether the code has already been accepted.
//  CreatedAt  – timestamp of issuance.
type OtpSession struct {
	ID         uint64    // otp_sessions.id
	Identifier string    // otp_sessions.identifier
	Code       string    // otp_sessions.code
	ExpiresAt  time.Time // otp_sessions.expires_at
	Verified   bool      // otp_sessions.verified
	CreatedAt  time.Time // otp_sessions.created_at
}
