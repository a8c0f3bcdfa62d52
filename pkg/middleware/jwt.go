package middleware

import (
	"net/http"
	"strings"

	"SDRAdmin/internal/auth"
	"SDRAdmin/pkg/response"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JWTMiddleware verifies the bearer token and stores its claims under auth.ContextKey.
func JWTMiddleware(issuer *auth.TokenIssuer, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return response.Fail(c, http.StatusUnauthorized, "Missing Token")
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			claims, err := issuer.Parse(tokenString)
			if err != nil {
				logger.Debug("rejected token", zap.Error(err))
				return response.Fail(c, http.StatusUnauthorized, "Invalid Token")
			}
			c.Set(auth.ContextKey, claims)
			return next(c)
		}
	}
}
