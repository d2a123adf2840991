package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to post likes
type LikeHandler struct {
	likeService *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(public, protected *echo.Group) {
	public.GET("/posts/:post_id/likes", h.GetLikesByPostID)
	public.GET("/posts/:post_id/likes/count", h.GetLikesCount)

	protected.POST("/posts/:post_id/likes", h.LikePost)
	protected.DELETE("/posts/:post_id/likes", h.UnlikePost)
	protected.GET("/posts/:post_id/likes/status", h.CheckUserLiked)
	protected.DELETE("/likes/:id", h.DeleteLike)
}

// LikePost adds a like to a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return err
	}
	like, err := h.likeService.Like(c.Request().Context(), getUserIDFromContext(c), postID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, like)
}

// UnlikePost removes the caller's like from a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return err
	}
	if err := h.likeService.Unlike(c.Request().Context(), getUserIDFromContext(c), postID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteLike deletes a like by its ID
func (h *LikeHandler) DeleteLike(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.likeService.DeleteLike(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLikesByPostID lists all likes on a post
func (h *LikeHandler) GetLikesByPostID(c echo.Context) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return err
	}
	likes, err := h.likeService.ListLikes(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, likes)
}

// GetLikesCount returns the number of likes on a post
func (h *LikeHandler) GetLikesCount(c echo.Context) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return err
	}
	count, err := h.likeService.CountLikes(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "count": count})
}

// CheckUserLiked reports whether the caller has liked a post
func (h *LikeHandler) CheckUserLiked(c echo.Context) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return err
	}
	liked, err := h.likeService.HasLiked(c.Request().Context(), getUserIDFromContext(c), postID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "liked": liked})
}
