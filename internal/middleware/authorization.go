package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Resources and actions understood by the authorizer
const (
	ResourceCustomers    = "customers"
	ResourceLoans        = "loans"
	ResourceSchedules    = "schedules"
	ResourceInstallments = "installments"
	ResourceSettings     = "settings"
	ResourceReports      = "reports"
	ResourceOperators    = "operators"

	ActionRead  = "read"
	ActionWrite = "write"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// rolePolicies grants each role its own permissions; higher roles inherit lower ones
var rolePolicies = [][]string{
	{string(domain.RoleOperator), ResourceCustomers, "*"},
	{string(domain.RoleOperator), ResourceLoans, "*"},
	{string(domain.RoleOperator), ResourceInstallments, "*"},
	{string(domain.RoleOperator), ResourceSettings, ActionRead},
	{string(domain.RoleManager), ResourceSettings, ActionWrite},
	{string(domain.RoleManager), ResourceSchedules, ActionWrite},
	{string(domain.RoleManager), ResourceReports, ActionRead},
	{string(domain.RoleAdmin), ResourceOperators, "*"},
}

var roleInheritance = [][]string{
	{string(domain.RoleManager), string(domain.RoleOperator)},
	{string(domain.RoleAdmin), string(domain.RoleManager)},
}

// Authorizer checks operator roles against the RBAC policy
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizer builds the enforcer from the in-process model and policy
func NewAuthorizer() (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if _, err := enforcer.AddPolicies(rolePolicies); err != nil {
		return nil, err
	}
	if _, err := enforcer.AddGroupingPolicies(roleInheritance); err != nil {
		return nil, err
	}
	return &Authorizer{enforcer: enforcer}, nil
}

// Allowed reports whether role may perform action on resource
func (a *Authorizer) Allowed(role domain.Role, resource, action string) (bool, error) {
	return a.enforcer.Enforce(string(role), resource, action)
}

// RequirePermission rejects requests whose operator role lacks the permission.
// It must run after Authenticate.
func (a *Authorizer) RequirePermission(resource, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			operator := GetOperator(c)
			if operator == nil {
				return unauthorizedError(c, "operator not found in context")
			}

			allowed, err := a.Allowed(operator.Role, resource, action)
			if err != nil {
				log.Error().Err(err).Str("resource", resource).Str("action", action).Msg("Authorization check failed")
				return problem(c, http.StatusInternalServerError, errorTypeInternal, "Internal Server Error", "authorization check failed")
			}
			if !allowed {
				log.Debug().
					Str("operator_id", operator.ID.String()).
					Str("role", string(operator.Role)).
					Str("resource", resource).
					Str("action", action).
					Msg("Permission denied")
				return forbiddenError(c, "insufficient role for this operation")
			}
			return next(c)
		}
	}
}
