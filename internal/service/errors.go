// Package service implements the authentication and completion-gating
// core: OTP issuance and verification, candidate and admin session
// management, and the docket completion engine.  Handlers translate
// the error kinds defined here into HTTP responses; no kind reveals
// whether an identifier exists except ErrNotRegistered, which is the
// deliberate consequence of the closed candidate list.
package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotRegistered is returned by Issue when the identifier does not
// resolve to a pre-registered candidate.  Malformed and unknown
// identifiers produce this same error so the response shape cannot
// distinguish the two cases.
var ErrNotRegistered = errors.New("not registered")

// ErrInvalidOrExpired is returned by Verify for a wrong code, an
// expired code and an already-used code alike.  Collapsing the three
// avoids guiding brute-force attempts.
var ErrInvalidOrExpired = errors.New("invalid or expired code")

// ErrInvalidCredentials is returned by AdminLogin for a wrong
// password and an unknown email alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthenticated is returned by Validate when the token is
// absent, unknown, malformed or expired.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrWrongPrincipalKind is returned by Validate when a token that is
// valid for one principal kind is presented where the other kind is
// required.  Candidate and admin sessions are never interchangeable.
var ErrWrongPrincipalKind = errors.New("wrong principal kind")

// ErrDeliveryFailed wraps a Notifier failure.  The OTP row is still
// persisted when this is returned, so the caller can offer a resend.
var ErrDeliveryFailed = errors.New("delivery failed")

// ErrNotFound is returned by stores when no matching row exists.
var ErrNotFound = errors.New("not found")

// ErrPhoneExists is returned when pre-registration collides with an
// existing candidate's phone number, which is globally unique.
var ErrPhoneExists = errors.New("phone already exists")

// IncompleteDocketError reports a failed completion attempt together
// with the exact required slots still missing, in canonical order, so
// the caller can render actionable feedback.
type IncompleteDocketError struct {
	Missing []string
}

func (e *IncompleteDocketError) Error() string {
	return fmt.Sprintf("incomplete docket: missing %s", strings.Join(e.Missing, ", "))
}
