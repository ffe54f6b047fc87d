package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rooman-dev/agl-new/internal/core/domain"
	"github.com/rooman-dev/agl-new/internal/core/ports"
)

type stubPostService struct {
	listPublishedFn func(ctx context.Context) ([]*domain.Post, error)
	listAllFn       func(ctx context.Context) ([]*domain.Post, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.Post, error)
	getBySlugFn     func(ctx context.Context, slug string) (*domain.Post, error)
	createFn        func(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error)
	updateFn        func(ctx context.Context, id int64, in ports.UpdatePostInput) (*domain.Post, error)
	deleteFn        func(ctx context.Context, id int64) error
}

func (s *stubPostService) ListPublished(ctx context.Context) ([]*domain.Post, error) {
	return s.listPublishedFn(ctx)
}

func (s *stubPostService) ListAll(ctx context.Context) ([]*domain.Post, error) {
	return s.listAllFn(ctx)
}

func (s *stubPostService) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubPostService) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return s.getBySlugFn(ctx, slug)
}

func (s *stubPostService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	return s.createFn(ctx, in)
}

func (s *stubPostService) Update(ctx context.Context, id int64, in ports.UpdatePostInput) (*domain.Post, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubPostService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func samplePost() *domain.Post {
	published := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Post{
		ID:          12,
		Title:       "SEO",
		TitleAr:     "سيو",
		Slug:        "seo",
		Content:     "<p>x</p>",
		ImageURL:    "/images/blog-1.jpg",
		PublishedAt: &published,
		IsPublished: true,
		CreatedAt:   published,
		UpdatedAt:   published,
	}
}

func TestPostHandler_ListPublished_CamelCase(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		listPublishedFn: func(context.Context) ([]*domain.Post, error) {
			return []*domain.Post{samplePost()}, nil
		},
	}
	c, rec := jsonContext(e, http.MethodGet, "/api/posts/published", "")

	if err := NewPostHandler(stub).ListPublished(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 post, got %d", len(resp))
	}
	p := resp[0]
	if p["id"] != "12" {
		t.Fatalf("expected string id, got %#v", p["id"])
	}
	if p["titleAr"] != "سيو" || p["imageUrl"] != "/images/blog-1.jpg" || p["isPublished"] != true {
		t.Fatalf("unexpected payload: %+v", p)
	}
	if p["publishedAt"] != "2024-11-01T00:00:00Z" {
		t.Fatalf("unexpected publishedAt: %v", p["publishedAt"])
	}
}

func TestPostHandler_ListPublished_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		listPublishedFn: func(context.Context) ([]*domain.Post, error) { return nil, nil },
	}
	c, rec := jsonContext(e, http.MethodGet, "/api/posts/published", "")

	if err := NewPostHandler(stub).ListPublished(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestPostHandler_GetByID_NonNumeric(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		getByIDFn: func(context.Context, int64) (*domain.Post, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := jsonContext(e, http.MethodGet, "/api/posts/id/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := NewPostHandler(stub).GetByID(c); err != domain.ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostHandler_GetBySlug(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		getBySlugFn: func(_ context.Context, slug string) (*domain.Post, error) {
			if slug != "seo" {
				return nil, domain.ErrPostNotFound
			}
			return samplePost(), nil
		},
	}
	c, rec := jsonContext(e, http.MethodGet, "/api/posts/slug/seo", "")
	c.SetParamNames("slug")
	c.SetParamValues("seo")

	if err := NewPostHandler(stub).GetBySlug(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPostHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		createFn: func(_ context.Context, in ports.CreatePostInput) (*domain.Post, error) {
			if in.Title != "SEO" || in.ImageURL != "/img.jpg" || !in.IsPublished {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.PublishedAt == nil || in.PublishedAt.Format(time.DateOnly) != "2024-11-01" {
				t.Fatalf("publishedAt not parsed: %v", in.PublishedAt)
			}
			return samplePost(), nil
		},
	}
	body := `{"title":"SEO","content":"<p>x</p>","imageUrl":"/img.jpg","publishedAt":"2024-11-01","isPublished":true}`
	c, rec := jsonContext(e, http.MethodPost, "/api/posts", body)

	if err := NewPostHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestPostHandler_Create_Validation(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		createFn: func(context.Context, ports.CreatePostInput) (*domain.Post, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	for _, body := range []string{
		`{"content":"x"}`,
		`{"title":"T"}`,
		`{"title":"T","content":"x","publishedAt":"yesterday"}`,
	} {
		c, _ := jsonContext(e, http.MethodPost, "/api/posts", body)
		if err := NewPostHandler(stub).Create(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("body %s: expected validation error, got %v", body, err)
		}
	}
}

func TestPostHandler_Create_Conflict(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		createFn: func(context.Context, ports.CreatePostInput) (*domain.Post, error) {
			return nil, domain.ErrSlugConflict
		},
	}
	c, _ := jsonContext(e, http.MethodPost, "/api/posts", `{"title":"T","content":"x","slug":"seo"}`)

	if err := NewPostHandler(stub).Create(c); err != domain.ErrSlugConflict {
		t.Fatalf("expected ErrSlugConflict, got %v", err)
	}
}

func TestPostHandler_Update_Partial(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		updateFn: func(_ context.Context, id int64, in ports.UpdatePostInput) (*domain.Post, error) {
			if id != 12 {
				t.Fatalf("unexpected id %d", id)
			}
			if in.Title == nil || *in.Title != "Renamed" {
				t.Fatalf("title not forwarded: %+v", in)
			}
			if in.Content != nil || in.Slug != nil || in.IsPublished != nil || in.PublishedAt != nil {
				t.Fatalf("absent fields must stay nil: %+v", in)
			}
			return samplePost(), nil
		},
	}
	c, rec := jsonContext(e, http.MethodPut, "/api/posts/12", `{"title":"Renamed"}`)
	c.SetParamNames("id")
	c.SetParamValues("12")

	if err := NewPostHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPostHandler_Update_EmptyTitleRejected(t *testing.T) {
	e := newTestEcho()
	c, _ := jsonContext(e, http.MethodPut, "/api/posts/12", `{"title":""}`)
	c.SetParamNames("id")
	c.SetParamValues("12")

	if err := NewPostHandler(&stubPostService{}).Update(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPostHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		deleteFn: func(_ context.Context, id int64) error {
			if id == 404 {
				return domain.ErrPostNotFound
			}
			return nil
		},
	}

	c, rec := jsonContext(e, http.MethodDelete, "/api/posts/12", "")
	c.SetParamNames("id")
	c.SetParamValues("12")
	if err := NewPostHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = jsonContext(e, http.MethodDelete, "/api/posts/404", "")
	c.SetParamNames("id")
	c.SetParamValues("404")
	if err := NewPostHandler(stub).Delete(c); err != domain.ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
