package middleware

import (
	"net/http"
	"net/url"
	"strings"

	userPort "inkwell/internal/ports/user"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the token for browser clients.
	SessionCookie = "session"
	// LoginPath is where unauthenticated requests are sent.
	LoginPath = "/auth/login/"

	UserIDKey   = "userID"
	UsernameKey = "username"
)

// TokenParser verifies a session token.
type TokenParser interface {
	ParseToken(token string) (*userPort.Session, error)
}

// Authenticate identifies the viewer from a bearer token or the session
// cookie. Requests without a valid token continue anonymously.
func Authenticate(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
		if token == "" {
			token, _ = c.Cookie(SessionCookie)
		}
		if token != "" {
			if session, err := parser.ParseToken(token); err == nil {
				c.Set(UserIDKey, session.UserID)
				c.Set(UsernameKey, session.Username)
			}
		}
		c.Next()
	}
}

// LoginRequired redirects anonymous viewers to the login page, keeping the
// requested URI in the next parameter. Nothing downstream runs for them.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(UserIDKey); ok {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// LoginURL builds the login redirect target for next.
func LoginURL(next string) string {
	return LoginPath + "?" + url.Values{"next": {next}}.Encode()
}

// CurrentUser returns the authenticated viewer, if any.
func CurrentUser(c *gin.Context) (userID, username string, ok bool) {
	userID = c.GetString(UserIDKey)
	username = c.GetString(UsernameKey)
	return userID, username, userID != ""
}
