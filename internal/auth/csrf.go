package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// CSRFTokenHeader is the header clients send the token back in.
const CSRFTokenHeader = "X-CSRF-Token"

// CSRFMiddleware wraps gorilla/csrf for Gin. Safe methods pass through;
// mutating requests must carry a valid token. The current token is exposed in
// the response header so API clients can echo it.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		handler := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(CSRFTokenHeader, csrf.Token(r))
			c.Request = r
			c.Next()
		}))
		handler.ServeHTTP(c.Writer, c.Request)
	}
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"CSRF token invalid or missing"}`))
}
