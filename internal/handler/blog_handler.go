package handler

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	apperrors "blogsite/internal/errors"
	"blogsite/internal/middleware"
	"blogsite/internal/service"
)

// BlogHandler handles the protected blog pages.
type BlogHandler struct {
	blogs     service.BlogService
	staticDir string
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(blogs service.BlogService, staticDir string) *BlogHandler {
	return &BlogHandler{blogs: blogs, staticDir: staticDir}
}

// CreateBlogRequest represents the post-creation form. None of the fields are
// validated: empty titles, empty content and arbitrary author names are
// stored as received.
type CreateBlogRequest struct {
	Title   string `form:"blogTitle"`
	Content string `form:"blogContent"`
	Author  string `form:"authorName"`
}

// HomePage serves the home page.
func (h *BlogHandler) HomePage(c echo.Context) error {
	return c.File(filepath.Join(h.staticDir, "home.html"))
}

// CreateBlogPage serves the post-creation form.
func (h *BlogHandler) CreateBlogPage(c echo.Context) error {
	return c.File(filepath.Join(h.staticDir, "createblog.html"))
}

// CreateBlog appends a post to the session account's blog list.
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	var req CreateBlogRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusFound, "/error")
	}

	email := middleware.EmailFromContext(c)
	if err := h.blogs.CreatePost(c.Request().Context(), email, req.Title, req.Content, req.Author); err != nil {
		c.Logger().Errorf("create blog: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}
	return c.Redirect(http.StatusFound, "/success")
}

// ViewBlogs godoc
// @Summary List the authenticated account's blog posts
// @Tags blogs
// @Produce html
// @Success 200 {string} string "rendered blog list"
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /viewBlogs [get]
func (h *BlogHandler) ViewBlogs(c echo.Context) error {
	email := middleware.EmailFromContext(c)
	blogs, err := h.blogs.ListOwnPosts(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return c.JSON(http.StatusNotFound, apperrors.ErrorResponse{Error: "user not found"})
		}
		c.Logger().Errorf("view blogs: %v", err)
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "internal server error"})
	}
	return c.Render(http.StatusOK, "viewBlogs.html", echo.Map{"Blogs": blogs})
}

// AllBlogs godoc
// @Summary List blog posts from every account
// @Tags blogs
// @Produce html
// @Success 200 {string} string "rendered blog list"
// @Failure 500 {object} errors.ErrorResponse
// @Router /allBlogs [get]
func (h *BlogHandler) AllBlogs(c echo.Context) error {
	blogs, err := h.blogs.ListAllPosts(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("all blogs: %v", err)
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "internal server error"})
	}
	return c.Render(http.StatusOK, "allBlogs.html", echo.Map{"Blogs": blogs})
}
