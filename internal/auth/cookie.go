package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

// CookieManager is the sole writer of the session cookie.
type CookieManager struct {
	secure bool
}

// NewCookieManager creates a cookie manager. secure should be true in
// production so the cookie is only sent over TLS.
func NewCookieManager(secure bool) *CookieManager {
	return &CookieManager{secure: secure}
}

// Set writes the session cookie on the response. Called exactly once per
// successful login or registration.
func (m *CookieManager) Set(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenExpiry / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie. The token itself stays cryptographically
// valid until its natural expiry; this only makes the client forget it.
func (m *CookieManager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
