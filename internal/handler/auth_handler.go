package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "blogsite/internal/errors"
	"blogsite/internal/service"
	"blogsite/internal/session"
)

// AuthHandler handles signup, login and logout.
type AuthHandler struct {
	accounts   service.AccountService
	sessions   session.Store
	staticDir  string
	sessionTTL time.Duration
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(accounts service.AccountService, sessions session.Store, staticDir string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		sessions:   sessions,
		staticDir:  staticDir,
		sessionTTL: sessionTTL,
	}
}

// SignupRequest represents the signup form.
type SignupRequest struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// LoginRequest represents the login form.
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// SignupPage serves the signup form.
func (h *AuthHandler) SignupPage(c echo.Context) error {
	return c.File(filepath.Join(h.staticDir, "signup.html"))
}

// Signup creates a new account and sends the caller to the login page.
// Duplicate accounts and store failures both end on the generic error page.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusFound, "/error")
	}
	if err := c.Validate(&req); err != nil {
		c.Logger().Warnf("signup validation: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}

	if _, err := h.accounts.Register(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		c.Logger().Errorf("signup: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}
	return c.Redirect(http.StatusFound, "/login")
}

// LoginPage serves the login form, or sends already-authenticated clients home.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		sess, err := h.sessions.Get(c.Request().Context(), cookie.Value)
		if err == nil && sess != nil && sess.Email != "" {
			return c.Redirect(http.StatusFound, "/home")
		}
	}
	return c.File(filepath.Join(h.staticDir, "login.html"))
}

// Login verifies credentials, establishes a session and sets the session
// cookie. Any failure, mismatch or store error alike, redirects to the
// generic error page with no detail.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusFound, "/error")
	}
	if err := c.Validate(&req); err != nil {
		c.Logger().Warnf("login validation: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}

	if _, err := h.accounts.Authenticate(c.Request().Context(), req.Email, req.Password); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.Logger().Errorf("login: %v", err)
		}
		return c.Redirect(http.StatusFound, "/error")
	}

	id, err := h.sessions.Create(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		c.Logger().Errorf("create session: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}

	c.SetCookie(h.sessionCookie(id, int(h.sessionTTL.Seconds())))
	return c.Redirect(http.StatusFound, "/home")
}

// Logout destroys the server-side session, expires the cookie and redirects
// to the login page. A stale or missing cookie still ends up on /login.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(c.Request().Context(), cookie.Value); err != nil {
			c.Logger().Errorf("destroy session: %v", err)
		}
	}
	c.SetCookie(h.sessionCookie("", -1))
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
