// Package engine evaluates profile access policy using OPA Rego.
package engine

import (
	"context"

	userdomain "phone-auth-service/internal/user/domain"
)

// Evaluator decides whether a requester may read or modify a user profile.
type Evaluator interface {
	// AllowProfileAccess returns true when the requester may access the
	// profile owned by targetID.
	AllowProfileAccess(ctx context.Context, requester *userdomain.User, targetID string) (bool, error)
}
