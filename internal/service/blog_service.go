package service

import (
	"context"
	"fmt"

	"blogsite/internal/model"
	"blogsite/internal/repository"
)

// BlogService handles creating and listing blog posts.
type BlogService interface {
	CreatePost(ctx context.Context, email, title, content, author string) error
	ListOwnPosts(ctx context.Context, email string) ([]model.Blog, error)
	ListAllPosts(ctx context.Context) ([]model.Blog, error)
}

type blogService struct {
	users repository.UserRepository
}

// NewBlogService creates a new blog service.
func NewBlogService(users repository.UserRepository) BlogService {
	return &blogService{users: users}
}

// CreatePost appends a post to the account's blog list. Title, content and
// author are stored as received; the author name is free text and need not
// match the account owner.
func (s *blogService) CreatePost(ctx context.Context, email, title, content, author string) error {
	blog := model.Blog{Title: title, Content: content, Name: author}
	return s.users.PushBlog(ctx, email, blog)
}

// ListOwnPosts returns the account's posts in insertion order.
func (s *blogService) ListOwnPosts(ctx context.Context, email string) ([]model.Blog, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.Blogs == nil {
		return []model.Blog{}, nil
	}
	return user.Blogs, nil
}

// ListAllPosts concatenates every account's posts, in account iteration order
// then insertion order within each account.
func (s *blogService) ListAllPosts(ctx context.Context) ([]model.Blog, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	blogs := []model.Blog{}
	for _, user := range users {
		blogs = append(blogs, user.Blogs...)
	}
	return blogs, nil
}
