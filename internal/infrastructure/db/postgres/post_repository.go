package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rooman-dev/agl-new/internal/core/domain"
)

// PostRepository stores blog posts in blog_posts.
type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// Optional text columns are nullable; COALESCE keeps the domain type plain.
const postColumns = `
	id, title, COALESCE(title_ar, ''), slug,
	COALESCE(excerpt, ''), COALESCE(excerpt_ar, ''),
	content, COALESCE(content_ar, ''),
	COALESCE(category, ''), COALESCE(author, ''), COALESCE(image_url, ''),
	published_at, is_published, created_at, updated_at`

func (r *PostRepository) ListPublished(ctx context.Context) ([]*domain.Post, error) {
	return r.list(ctx, `SELECT `+postColumns+` FROM blog_posts
		WHERE is_published = TRUE
		ORDER BY published_at DESC NULLS LAST, id DESC`)
}

func (r *PostRepository) ListAll(ctx context.Context) ([]*domain.Post, error) {
	return r.list(ctx, `SELECT `+postColumns+` FROM blog_posts
		ORDER BY created_at DESC, id DESC`)
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	return scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id))
}

func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE slug = $1`, slug))
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blog_posts (
			title, title_ar, slug, excerpt, excerpt_ar, content, content_ar,
			category, author, image_url, published_at, is_published
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+postColumns,
		p.Title, p.TitleAr, p.Slug, p.Excerpt, p.ExcerptAr, p.Content, p.ContentAr,
		p.Category, p.Author, p.ImageURL, p.PublishedAt, p.IsPublished,
	)

	created, err := scanPost(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrSlugConflict
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return created, nil
}

// Update writes the non-nil patch fields and bumps updated_at.
func (r *PostRepository) Update(ctx context.Context, id int64, patch domain.PostPatch) (*domain.Post, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE blog_posts SET
			title        = COALESCE($2::varchar, title),
			title_ar     = COALESCE($3::varchar, title_ar),
			slug         = COALESCE($4::varchar, slug),
			excerpt      = COALESCE($5::text, excerpt),
			excerpt_ar   = COALESCE($6::text, excerpt_ar),
			content      = COALESCE($7::text, content),
			content_ar   = COALESCE($8::text, content_ar),
			category     = COALESCE($9::varchar, category),
			author       = COALESCE($10::varchar, author),
			image_url    = COALESCE($11::text, image_url),
			published_at = COALESCE($12::timestamptz, published_at),
			is_published = COALESCE($13::boolean, is_published),
			updated_at   = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING `+postColumns,
		id,
		patch.Title, patch.TitleAr, patch.Slug, patch.Excerpt, patch.ExcerptAr,
		patch.Content, patch.ContentAr, patch.Category, patch.Author, patch.ImageURL,
		patch.PublishedAt, patch.IsPublished,
	)

	updated, err := scanPost(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrSlugConflict
		}
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func (r *PostRepository) list(ctx context.Context, query string) ([]*domain.Post, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.TitleAr, &p.Slug,
		&p.Excerpt, &p.ExcerptAr,
		&p.Content, &p.ContentAr,
		&p.Category, &p.Author, &p.ImageURL,
		&p.PublishedAt, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}
