package router

import (
	"html/template"
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogsite/internal/config"
	"blogsite/internal/handler"
	appmw "blogsite/internal/middleware"
	"blogsite/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions session.Store,
	authHandler *handler.AuthHandler,
	blogHandler *handler.BlogHandler,
) error {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	tpl, err := template.ParseGlob(filepath.Join(cfg.TplDir, "*.html"))
	if err != nil {
		return err
	}
	e.Renderer = &TemplateRenderer{templates: tpl}

	e.Static("/static", cfg.StaticDir)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.GET("/signup", authHandler.SignupPage)
	e.POST("/signup", authHandler.Signup)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/success", func(c echo.Context) error {
		return c.File(filepath.Join(cfg.StaticDir, "success.html"))
	})
	e.GET("/error", func(c echo.Context) error {
		return c.File(filepath.Join(cfg.StaticDir, "error.html"))
	})

	// Protected routes (require an established session)
	secured := e.Group("", appmw.RequireSession(sessions))
	secured.GET("/home", blogHandler.HomePage)
	secured.GET("/createBlog", blogHandler.CreateBlogPage)
	secured.POST("/createBlog", blogHandler.CreateBlog)
	secured.GET("/viewBlogs", blogHandler.ViewBlogs)
	secured.GET("/allBlogs", blogHandler.AllBlogs)

	return nil
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// TemplateRenderer renders the blog list views with html/template.
type TemplateRenderer struct {
	templates *template.Template
}

// Render implements echo.Renderer.
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}
