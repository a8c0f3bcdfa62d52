package middleware

import (
	"fmt"
	"net/http"

	"SDRAdmin/internal/auth"
	"SDRAdmin/pkg/response"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
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
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// rbacPolicy grants admins every method and viewers read access under /api.
var rbacPolicy = [][]string{
	{auth.RoleAdmin, "/api/*", "(GET)|(POST)|(PUT)|(PATCH)|(DELETE)"},
	{auth.RoleViewer, "/api/*", "GET"},
}

// NewEnforcer builds the casbin enforcer from the in-code model and policy.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load casbin model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}
	if _, err := enforcer.AddPolicies(rbacPolicy); err != nil {
		return nil, fmt.Errorf("load casbin policy: %w", err)
	}
	return enforcer, nil
}

// CasbinMiddleware authorizes the role in the JWT claims against the matched route.
func CasbinMiddleware(enforcer *casbin.Enforcer, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := auth.ClaimsFrom(c)
			if claims == nil {
				return response.Fail(c, http.StatusForbidden, "Unauthorized: missing admin claims")
			}

			obj := c.Path()
			act := c.Request().Method
			allowed, err := enforcer.Enforce(claims.Role, obj, act)
			if err != nil {
				logger.Error("casbin enforce failed", zap.Error(err))
				return response.Fail(c, http.StatusInternalServerError, "RBAC system error")
			}
			if !allowed {
				logger.Info("casbin denied",
					zap.String("role", claims.Role),
					zap.String("obj", obj),
					zap.String("act", act))
				return response.Fail(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			}
			return next(c)
		}
	}
}
