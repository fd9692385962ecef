package security

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthCookieName is the session transport cookie. It is HttpOnly and
// SameSite=Strict so scripts cannot read it and cross-site requests do
// not carry it.
const AuthCookieName = "auth-token"

// SetAuthCookie attaches the session token to the response. The cookie
// lifetime is bounded to the token's own TTL; secure must be true outside
// development so the token only travels over TLS.
func SetAuthCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearAuthCookie expires the session cookie immediately.
func ClearAuthCookie(c *gin.Context, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
