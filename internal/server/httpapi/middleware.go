package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/blogauth/internal/server/auth"
)

// claimsKey is the echo context key under which BearerAuth stores the
// verified token claims.
const claimsKey = "authClaims"

// BearerAuth verifies the Authorization bearer token and stores its claims
// in the request context. Requests without a valid token get a 401.
func BearerAuth(issuer *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			claims, err := issuer.Parse(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}
