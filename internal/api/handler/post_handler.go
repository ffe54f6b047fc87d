package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rooman-dev/agl-new/internal/api/metrics"
	"github.com/rooman-dev/agl-new/internal/core/domain"
	"github.com/rooman-dev/agl-new/internal/core/ports"
)

// PostHandler serves the blog content API.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// ListPublished handles GET /api/posts/published.
//
// @Summary      List published posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}   postResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/posts/published [get]
func (h *PostHandler) ListPublished(c echo.Context) error {
	posts, err := h.service.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// ListAll handles GET /api/posts, drafts included.
//
// @Summary      List all posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   postResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/posts [get]
func (h *PostHandler) ListAll(c echo.Context) error {
	posts, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// GetByID handles GET /api/posts/id/:id.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/id/{id} [get]
func (h *PostHandler) GetByID(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	post, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// GetBySlug handles GET /api/posts/slug/:slug.
//
// @Summary      Get a post by slug
// @Tags         posts
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  postResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/posts/slug/{slug} [get]
func (h *PostHandler) GetBySlug(c echo.Context) error {
	post, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Create handles POST /api/posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return h.fail("create", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return h.fail("create", err)
	}

	in, err := toCreatePostInput(req)
	if err != nil {
		return h.fail("create", err)
	}

	post, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return h.fail("create", err)
	}

	metrics.PostMutationsTotal.WithLabelValues("create", "ok").Inc()
	return c.JSON(http.StatusCreated, toPostResponse(post))
}

// Update handles PUT /api/posts/:id. Only the fields present in the body change.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return h.fail("update", err)
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return h.fail("update", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return h.fail("update", err)
	}

	in, err := toUpdatePostInput(req)
	if err != nil {
		return h.fail("update", err)
	}

	post, err := h.service.Update(c.Request().Context(), id, in)
	if err != nil {
		return h.fail("update", err)
	}

	metrics.PostMutationsTotal.WithLabelValues("update", "ok").Inc()
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Delete handles DELETE /api/posts/:id.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return h.fail("delete", err)
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return h.fail("delete", err)
	}

	metrics.PostMutationsTotal.WithLabelValues("delete", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Post deleted successfully"})
}

func (h *PostHandler) fail(op string, err error) error {
	metrics.PostMutationsTotal.WithLabelValues(op, mutationResult(err)).Inc()
	return err
}

// postID parses the :id path parameter. Anything that is not a positive
// integer cannot name a post.
func postID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrPostNotFound
	}
	return id, nil
}

func mutationResult(err error) string {
	var he *echo.HTTPError
	switch {
	case errors.Is(err, domain.ErrValidation), errors.As(err, &he):
		return "invalid"
	case errors.Is(err, domain.ErrPostNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrSlugConflict):
		return "conflict"
	default:
		return "error"
	}
}
