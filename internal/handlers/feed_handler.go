package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns enriched posts from the accounts the caller follows
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	filter, page, limit, err := parsePostFilter(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	totalItems, err := h.feedService.FeedSize(ctx, currentUserID, filter)
	if err != nil {
		return httpError(err)
	}

	seq, err := h.feedService.Feed(ctx, currentUserID, filter)
	if err != nil {
		return httpError(err)
	}
	posts := make([]models.Post, 0, limit)
	for post, err := range seq {
		if err != nil {
			return httpError(err)
		}
		posts = append(posts, post)
	}

	enrichedPosts, err := h.feedService.Enrich(ctx, currentUserID, posts)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    enrichedPosts,
		"meta":    paginationMeta(page, limit, totalItems),
	})
}
