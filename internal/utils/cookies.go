package utils

import (
	"net/http"
	"time"
)

// TokenCookieName is the cookie the authentication token travels in.
const TokenCookieName = "token"

// SetAuthCookie attaches the signed token to the response.
func SetAuthCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearAuthCookie expires the authentication cookie.
func ClearAuthCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetAuthCookie returns the raw token from the request, or "" when absent.
func GetAuthCookie(r *http.Request) string {
	c, err := r.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
