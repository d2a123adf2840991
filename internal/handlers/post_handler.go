package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService *services.PostService
	feedService *services.FeedService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, feedService *services.FeedService) *PostHandler {
	return &PostHandler{postService: postService, feedService: feedService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(public, protected *echo.Group) {
	public.GET("/posts", h.GetPosts)
	public.GET("/posts/:id", h.GetPost)

	protected.POST("/posts", h.CreatePost)
	protected.PUT("/posts/:id", h.UpdatePost)
	protected.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), getUserIDFromContext(c), req.Title, req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a single post with its author and like information
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.postService.GetPost(ctx, id)
	if err != nil {
		return httpError(err)
	}
	enriched, err := h.feedService.Enrich(ctx, getUserIDFromContext(c), []models.Post{*post})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, enriched[0])
}

// GetPosts lists posts with search, filters, ordering and pagination
func (h *PostHandler) GetPosts(c echo.Context) error {
	filter, page, limit, err := parsePostFilter(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	posts, total, err := h.postService.ListPosts(ctx, filter)
	if err != nil {
		return httpError(err)
	}
	enriched, err := h.feedService.Enrich(ctx, getUserIDFromContext(c), posts)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    enriched,
		"meta":    paginationMeta(page, limit, total),
	})
}

// UpdatePost updates an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), getUserIDFromContext(c), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post along with its comments, likes and reactions
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.postService.DeletePost(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
