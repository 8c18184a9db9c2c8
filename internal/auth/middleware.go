package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "beingiitian/internal/errors"
	"beingiitian/internal/model"
)

// sessionContextKey is where verified claims live on the request context.
const sessionContextKey = "session"

// RequireSession extracts the session cookie, verifies the token, and stores
// the claims on the context. Requests without a valid session are rejected
// with 401 before the handler runs. Each request re-derives its state from
// scratch; nothing is shared across requests.
func RequireSession(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  sessionContextKey,
		TokenLookup: "cookie:" + CookieName,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.Verify(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "not authenticated",
				Code:  "UNAUTHENTICATED",
			})
		},
	})
}

// RequireRoles rejects authenticated callers whose role is outside the
// allowed set. Must run after RequireSession.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := CurrentClaims(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "not authenticated",
					Code:  "UNAUTHENTICATED",
				})
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "insufficient role",
				Code:  "FORBIDDEN",
			})
		}
	}
}

// CurrentClaims returns the verified session claims, or nil for anonymous
// requests (routes not behind RequireSession).
func CurrentClaims(c echo.Context) *Claims {
	claims, _ := c.Get(sessionContextKey).(*Claims)
	return claims
}
