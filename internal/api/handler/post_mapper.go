package handler

import (
	"strings"
	"time"

	"github.com/rooman-dev/agl-new/internal/core/domain"
	"github.com/rooman-dev/agl-new/internal/core/ports"
)

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:          p.ID,
		Title:       p.Title,
		TitleAr:     p.TitleAr,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		ExcerptAr:   p.ExcerptAr,
		Content:     p.Content,
		ContentAr:   p.ContentAr,
		Category:    p.Category,
		Author:      p.Author,
		ImageURL:    p.ImageURL,
		PublishedAt: p.PublishedAt,
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPostResponses(posts []*domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

func toCreatePostInput(req createPostRequest) (ports.CreatePostInput, error) {
	publishedAt, err := parsePublishedAt(req.PublishedAt)
	if err != nil {
		return ports.CreatePostInput{}, err
	}
	return ports.CreatePostInput{
		Title:       req.Title,
		TitleAr:     req.TitleAr,
		Slug:        req.Slug,
		Excerpt:     req.Excerpt,
		ExcerptAr:   req.ExcerptAr,
		Content:     req.Content,
		ContentAr:   req.ContentAr,
		Category:    req.Category,
		Author:      req.Author,
		ImageURL:    req.ImageURL,
		PublishedAt: publishedAt,
		IsPublished: req.IsPublished,
	}, nil
}

func toUpdatePostInput(req updatePostRequest) (ports.UpdatePostInput, error) {
	in := ports.UpdatePostInput{
		Title:       req.Title,
		TitleAr:     req.TitleAr,
		Slug:        req.Slug,
		Excerpt:     req.Excerpt,
		ExcerptAr:   req.ExcerptAr,
		Content:     req.Content,
		ContentAr:   req.ContentAr,
		Category:    req.Category,
		Author:      req.Author,
		ImageURL:    req.ImageURL,
		IsPublished: req.IsPublished,
	}
	if req.PublishedAt != nil {
		publishedAt, err := parsePublishedAt(*req.PublishedAt)
		if err != nil {
			return ports.UpdatePostInput{}, err
		}
		in.PublishedAt = publishedAt
	}
	return in, nil
}

// parsePublishedAt accepts an RFC 3339 timestamp or a bare date. An empty
// value means "not set".
func parsePublishedAt(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.NewValidationError("publishedAt must be an RFC 3339 timestamp or a YYYY-MM-DD date")
}
