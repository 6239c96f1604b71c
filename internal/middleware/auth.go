package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogsite/internal/session"
)

// emailContextKey is the echo context key under which the gate stores the
// authenticated email.
const emailContextKey = "session_email"

// RequireSession is the authentication gate: it resolves the session cookie
// against the store and only continues when the session carries an email.
// Everything else, including a store failure, is treated as unauthenticated
// and redirected to the login page.
func RequireSession(sessions session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}

			sess, err := sessions.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				c.Logger().Errorf("session lookup: %v", err)
				return c.Redirect(http.StatusFound, "/login")
			}
			if sess == nil || sess.Email == "" {
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set(emailContextKey, sess.Email)
			return next(c)
		}
	}
}

// EmailFromContext returns the authenticated email set by RequireSession, or
// "" when the request did not pass the gate.
func EmailFromContext(c echo.Context) string {
	email, _ := c.Get(emailContextKey).(string)
	return email
}
