package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewPublicUID returns the short public-facing identifier assigned to
// a candidate at pre-registration.  Eight hex characters of a random
// UUID keep admin-facing URLs readable without exposing the internal
// numeric id.
func NewPublicUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
