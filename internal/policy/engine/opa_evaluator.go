package engine

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"

	userdomain "phone-auth-service/internal/user/domain"
)

// Profile access policy: owners see their own profile, admins see all.
const profileAccessPolicy = `package phoneauth.profile_access

default allow = false

allow if {
	input.requester.id == input.target.id
}

allow if {
	input.requester.is_admin
}
`

// OPAEvaluator evaluates the profile access policy with the in-process OPA
// Rego engine.
type OPAEvaluator struct{}

// NewOPAEvaluator returns an OPA-based profile access evaluator.
func NewOPAEvaluator() *OPAEvaluator {
	return &OPAEvaluator{}
}

// HealthCheck verifies that the Rego engine can compile and evaluate the
// profile access policy. Returns nil on success.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	input := map[string]interface{}{
		"requester": map[string]interface{}{"id": "", "is_admin": false},
		"target":    map[string]interface{}{"id": ""},
	}
	rs, err := e.eval(ctx, input)
	if err != nil {
		return err
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return fmt.Errorf("policy query returned no result")
	}
	return nil
}

// AllowProfileAccess returns true when the requester owns the target profile
// or is an admin. A nil requester is never allowed.
func (e *OPAEvaluator) AllowProfileAccess(ctx context.Context, requester *userdomain.User, targetID string) (bool, error) {
	requesterMap := map[string]interface{}{
		"id":       "",
		"is_admin": false,
	}
	if requester != nil {
		requesterMap["id"] = requester.ID
		requesterMap["is_admin"] = requester.IsAdmin
	}
	input := map[string]interface{}{
		"requester": requesterMap,
		"target":    map[string]interface{}{"id": targetID},
	}
	rs, err := e.eval(ctx, input)
	if err != nil {
		return false, err
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false, fmt.Errorf("policy query returned no result")
	}
	allowed, ok := rs[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("policy query returned non-boolean result")
	}
	return allowed, nil
}

func (e *OPAEvaluator) eval(ctx context.Context, input map[string]interface{}) (rego.ResultSet, error) {
	modules := map[string]string{"profile_access.rego": profileAccessPolicy}
	compiler, err := ast.CompileModules(modules)
	if err != nil {
		return nil, fmt.Errorf("compile policy: %w", err)
	}
	q := rego.New(
		rego.Query("data.phoneauth.profile_access.allow"),
		rego.Compiler(compiler),
		rego.Input(input),
	)
	rs, err := q.Eval(ctx)
	if err != nil {
		return nil, fmt.Errorf("eval policy: %w", err)
	}
	return rs, nil
}
