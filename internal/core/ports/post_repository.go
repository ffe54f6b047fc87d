package ports

import (
	"context"

	"github.com/rooman-dev/agl-new/internal/core/domain"
)

// PostRepository defines persistence operations for blog posts.
// Slug uniqueness is enforced by the store and surfaces as domain.ErrSlugConflict.
type PostRepository interface {
	// ListPublished returns published posts, newest publication first.
	ListPublished(ctx context.Context) ([]*domain.Post, error)
	// ListAll returns every post, newest creation first.
	ListAll(ctx context.Context) ([]*domain.Post, error)
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Post, error)
	// Create inserts the post; the store assigns ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	// Update applies the non-nil patch fields and refreshes UpdatedAt.
	Update(ctx context.Context, id int64, patch domain.PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
