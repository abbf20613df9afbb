package service

// PrincipalKind distinguishes the two authenticated contexts.  Every
// protected route declares which kind it accepts; the guard rejects a
// valid token of the other kind before any handler runs.
type PrincipalKind string

const (
	KindCandidate PrincipalKind = "candidate"
	KindAdmin     PrincipalKind = "admin"
)

// Principal is the authenticated identity attached to a request after
// session validation.  It is a tagged type: exactly one of the
// kind-specific fields is meaningful, and each variant carries only
// what that context needs.
type Principal struct {
	Kind PrincipalKind

	// Candidate fields (Kind == KindCandidate).
	UserID  uint64
	UserUID string

	// Admin fields (Kind == KindAdmin).
	AdminEmail string
}
