package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/rooman-dev/agl-new/internal/core/domain"
	"github.com/rooman-dev/agl-new/internal/core/ports"
)

// PostService implements blog content management.
type PostService struct {
	repo ports.PostRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewPostService(repo ports.PostRepository, log zerolog.Logger) *PostService {
	return &PostService{repo: repo, log: log, now: time.Now}
}

func (s *PostService) ListPublished(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) ListAll(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	if id <= 0 {
		return nil, domain.ErrPostNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *PostService) GetBySlug(ctx context.Context, postSlug string) (*domain.Post, error) {
	postSlug = strings.TrimSpace(postSlug)
	if postSlug == "" {
		return nil, domain.ErrPostNotFound
	}
	return s.repo.FindBySlug(ctx, postSlug)
}

// Create stores a new post. A missing slug is derived from the title and
// empty Arabic fields fall back to their English counterparts.
func (s *PostService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, domain.NewValidationError("content is required")
	}

	postSlug := strings.TrimSpace(in.Slug)
	if postSlug == "" {
		postSlug = truncateSlug(slug.Make(title), maxSlugLength)
	}
	if err := checkSlug(postSlug); err != nil {
		return nil, err
	}

	post := &domain.Post{
		Title:       title,
		TitleAr:     fallback(in.TitleAr, title),
		Slug:        postSlug,
		Excerpt:     in.Excerpt,
		ExcerptAr:   fallback(in.ExcerptAr, in.Excerpt),
		Content:     in.Content,
		ContentAr:   fallback(in.ContentAr, in.Content),
		Category:    strings.TrimSpace(in.Category),
		Author:      strings.TrimSpace(in.Author),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		PublishedAt: in.PublishedAt,
		IsPublished: in.IsPublished,
	}
	if post.IsPublished && post.PublishedAt == nil {
		now := s.now().UTC()
		post.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		if errors.Is(err, domain.ErrSlugConflict) {
			return nil, err
		}
		s.log.Error().Err(err).Str("slug", postSlug).Msg("failed to create post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Int64("post_id", created.ID).Str("slug", created.Slug).Bool("published", created.IsPublished).Msg("post created")
	return created, nil
}

// Update applies a partial update. Publishing a post that has never had a
// publication date stamps it with the current time.
func (s *PostService) Update(ctx context.Context, id int64, in ports.UpdatePostInput) (*domain.Post, error) {
	if id <= 0 {
		return nil, domain.ErrPostNotFound
	}

	patch := domain.PostPatch{
		Title:       in.Title,
		TitleAr:     in.TitleAr,
		Slug:        in.Slug,
		Excerpt:     in.Excerpt,
		ExcerptAr:   in.ExcerptAr,
		Content:     in.Content,
		ContentAr:   in.ContentAr,
		Category:    in.Category,
		Author:      in.Author,
		ImageURL:    in.ImageURL,
		PublishedAt: in.PublishedAt,
		IsPublished: in.IsPublished,
	}

	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, domain.NewValidationError("title cannot be empty")
		}
		patch.Title = &t
	}
	if patch.Slug != nil {
		sl := strings.TrimSpace(*patch.Slug)
		if err := checkSlug(sl); err != nil {
			return nil, err
		}
		patch.Slug = &sl
	}

	if patch.IsPublished != nil && *patch.IsPublished && patch.PublishedAt == nil {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.PublishedAt == nil {
			now := s.now().UTC()
			patch.PublishedAt = &now
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) || errors.Is(err, domain.ErrSlugConflict) {
			return nil, err
		}
		s.log.Error().Err(err).Int64("post_id", id).Msg("failed to update post")
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.log.Info().Int64("post_id", id).Msg("post updated")
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrPostNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return err
		}
		return fmt.Errorf("delete post: %w", err)
	}

	s.log.Info().Int64("post_id", id).Msg("post deleted")
	return nil
}

// SeedSamples inserts the sample articles when the store holds no posts.
// It returns the number of posts inserted.
func (s *PostService) SeedSamples(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed posts: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	inserted := 0
	for _, in := range samplePosts() {
		if _, err := s.Create(ctx, in); err != nil {
			return inserted, fmt.Errorf("seed posts: %w", err)
		}
		inserted++
	}
	s.log.Info().Int("count", inserted).Msg("sample posts inserted")
	return inserted, nil
}

// maxSlugLength matches the blog_posts.slug column.
const maxSlugLength = 500

func checkSlug(s string) error {
	if !slug.IsSlug(s) {
		return domain.NewValidationError("slug %q must be lowercase letters, digits and dashes", s)
	}
	if utf8.RuneCountInString(s) > maxSlugLength {
		return domain.NewValidationError("slug must be at most %d characters", maxSlugLength)
	}
	return nil
}

// truncateSlug shortens a generated slug to max characters, cutting at the
// last dash that fits when there is one.
func truncateSlug(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if s[max] == '-' {
		return strings.TrimRight(s[:max], "-")
	}
	s = s[:max]
	if i := strings.LastIndexByte(s, '-'); i > 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, "-")
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
