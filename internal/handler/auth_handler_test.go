package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "blogsite/internal/errors"
	"blogsite/internal/model"
	"blogsite/internal/session"
)

// MockAccountService is a mock implementation of service.AccountService.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAccountService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockSessionStore is a mock implementation of session.Store.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name             string
		form             url.Values
		setupMock        func(*MockAccountService)
		expectedLocation string
		expectRegister   bool
	}{
		{
			name: "successful signup redirects to login",
			form: url.Values{"name": {"A"}, "email": {"a@x.com"}, "password": {"p1"}},
			setupMock: func(m *MockAccountService) {
				m.On("Register", mock.Anything, "A", "a@x.com", "p1").Return(&model.User{Email: "a@x.com"}, nil)
			},
			expectedLocation: "/login",
			expectRegister:   true,
		},
		{
			name: "duplicate account redirects to error",
			form: url.Values{"name": {"A"}, "email": {"a@x.com"}, "password": {"p1"}},
			setupMock: func(m *MockAccountService) {
				m.On("Register", mock.Anything, "A", "a@x.com", "p1").Return(nil, apperrors.ErrDuplicateAccount)
			},
			expectedLocation: "/error",
			expectRegister:   true,
		},
		{
			name: "store failure redirects to error",
			form: url.Values{"name": {"A"}, "email": {"a@x.com"}, "password": {"p1"}},
			setupMock: func(m *MockAccountService) {
				m.On("Register", mock.Anything, "A", "a@x.com", "p1").Return(nil, errors.New("connection reset"))
			},
			expectedLocation: "/error",
			expectRegister:   true,
		},
		{
			name:             "missing email fails validation",
			form:             url.Values{"name": {"A"}, "password": {"p1"}},
			setupMock:        func(m *MockAccountService) {},
			expectedLocation: "/error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(MockAccountService)
			tt.setupMock(accounts)
			h := NewAuthHandler(accounts, new(MockSessionStore), "web/static", 24*time.Hour)

			e := newEcho()
			e.POST("/signup", h.Signup)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, formRequest("/signup", tt.form))

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.expectedLocation, rec.Header().Get(echo.HeaderLocation))
			if !tt.expectRegister {
				accounts.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			accounts.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name             string
		setupAccounts    func(*MockAccountService)
		setupSessions    func(*MockSessionStore)
		expectedLocation string
		expectCookie     bool
	}{
		{
			name: "valid credentials establish a session",
			setupAccounts: func(m *MockAccountService) {
				m.On("Authenticate", mock.Anything, "a@x.com", "p1").Return(&model.User{Email: "a@x.com"}, nil)
			},
			setupSessions: func(m *MockSessionStore) {
				m.On("Create", mock.Anything, "a@x.com", "p1").Return("sid-123", nil)
			},
			expectedLocation: "/home",
			expectCookie:     true,
		},
		{
			name: "invalid credentials redirect to error",
			setupAccounts: func(m *MockAccountService) {
				m.On("Authenticate", mock.Anything, "a@x.com", "p1").Return(nil, apperrors.ErrInvalidCredentials)
			},
			setupSessions:    func(m *MockSessionStore) {},
			expectedLocation: "/error",
		},
		{
			name: "session store failure redirects to error",
			setupAccounts: func(m *MockAccountService) {
				m.On("Authenticate", mock.Anything, "a@x.com", "p1").Return(&model.User{Email: "a@x.com"}, nil)
			},
			setupSessions: func(m *MockSessionStore) {
				m.On("Create", mock.Anything, "a@x.com", "p1").Return("", errors.New("connection reset"))
			},
			expectedLocation: "/error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(MockAccountService)
			sessions := new(MockSessionStore)
			tt.setupAccounts(accounts)
			tt.setupSessions(sessions)
			h := NewAuthHandler(accounts, sessions, "web/static", 24*time.Hour)

			e := newEcho()
			e.POST("/login", h.Login)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, formRequest("/login", url.Values{"email": {"a@x.com"}, "password": {"p1"}}))

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.expectedLocation, rec.Header().Get(echo.HeaderLocation))

			var sessionCookie *http.Cookie
			for _, cookie := range rec.Result().Cookies() {
				if cookie.Name == session.CookieName {
					sessionCookie = cookie
				}
			}
			if tt.expectCookie {
				require.NotNil(t, sessionCookie)
				assert.Equal(t, "sid-123", sessionCookie.Value)
				assert.True(t, sessionCookie.HttpOnly)
				assert.Positive(t, sessionCookie.MaxAge)
			} else {
				assert.Nil(t, sessionCookie)
			}
			accounts.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_LoginPage(t *testing.T) {
	t.Run("authenticated client is sent home", func(t *testing.T) {
		sessions := new(MockSessionStore)
		sessions.On("Get", mock.Anything, "sid-123").Return(&session.Session{Email: "a@x.com"}, nil)
		h := NewAuthHandler(new(MockAccountService), sessions, t.TempDir(), 24*time.Hour)

		e := newEcho()
		e.GET("/login", h.LoginPage)

		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid-123"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/home", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("anonymous client gets the form", func(t *testing.T) {
		staticDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(staticDir, "login.html"), []byte("<form>login</form>"), 0o644))
		h := NewAuthHandler(new(MockAccountService), new(MockSessionStore), staticDir, 24*time.Hour)

		e := newEcho()
		e.GET("/login", h.LoginPage)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "login")
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("destroys the session and expires the cookie", func(t *testing.T) {
		sessions := new(MockSessionStore)
		sessions.On("Delete", mock.Anything, "sid-123").Return(nil)
		h := NewAuthHandler(new(MockAccountService), sessions, "web/static", 24*time.Hour)

		e := newEcho()
		e.GET("/logout", h.Logout)

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid-123"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

		var sessionCookie *http.Cookie
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == session.CookieName {
				sessionCookie = cookie
			}
		}
		require.NotNil(t, sessionCookie)
		assert.Empty(t, sessionCookie.Value)
		assert.Negative(t, sessionCookie.MaxAge)
		sessions.AssertExpectations(t)
	})

	t.Run("no cookie still redirects to login", func(t *testing.T) {
		sessions := new(MockSessionStore)
		h := NewAuthHandler(new(MockAccountService), sessions, "web/static", 24*time.Hour)

		e := newEcho()
		e.GET("/logout", h.Logout)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
		sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
