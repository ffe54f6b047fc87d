package ports

import (
	"context"
	"time"

	"github.com/rooman-dev/agl-new/internal/core/domain"
)

// CreatePostInput carries the caller-supplied fields of a new post.
type CreatePostInput struct {
	Title       string
	TitleAr     string
	Slug        string // derived from Title when empty
	Excerpt     string
	ExcerptAr   string
	Content     string
	ContentAr   string
	Category    string
	Author      string
	ImageURL    string
	PublishedAt *time.Time
	IsPublished bool
}

// UpdatePostInput carries a partial update; nil fields are left untouched.
type UpdatePostInput struct {
	Title       *string
	TitleAr     *string
	Slug        *string
	Excerpt     *string
	ExcerptAr   *string
	Content     *string
	ContentAr   *string
	Category    *string
	Author      *string
	ImageURL    *string
	PublishedAt *time.Time
	IsPublished *bool
}

// PostService defines the blog content use cases.
type PostService interface {
	ListPublished(ctx context.Context) ([]*domain.Post, error)
	ListAll(ctx context.Context) ([]*domain.Post, error)
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	Create(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	Update(ctx context.Context, id int64, input UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
}
