package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(public, protected *echo.Group) {
	public.GET("/users/:id/followers", h.GetFollowers)
	public.GET("/users/:id/following", h.GetFollowing)

	protected.GET("/following", h.GetMyFollowing)
	protected.GET("/users/:id/follow", h.GetFollowStatus)
	protected.POST("/users/:id/follow", h.FollowUser)
	protected.DELETE("/users/:id/follow", h.UnfollowUser)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	created, err := h.followService.Follow(c.Request().Context(), getUserIDFromContext(c), targetID)
	if err != nil {
		return httpError(err)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"following": targetID != getUserIDFromContext(c), "created": created})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.followService.Unfollow(c.Request().Context(), getUserIDFromContext(c), targetID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFollowStatus reports the follow relation between the caller and a user in both directions
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	status, err := h.followService.Status(c.Request().Context(), getUserIDFromContext(c), targetID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, status)
}

// GetFollowers lists the users following a user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	page, limit := pageParams(c)
	users, total, err := h.followService.FollowersPage(c.Request().Context(), userID, (page-1)*limit, limit)
	if err != nil {
		return httpError(err)
	}
	return respondUserPage(c, users, total)
}

// GetFollowing lists the users a user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	page, limit := pageParams(c)
	users, total, err := h.followService.FollowingPage(c.Request().Context(), userID, (page-1)*limit, limit)
	if err != nil {
		return httpError(err)
	}
	return respondUserPage(c, users, total)
}

// GetMyFollowing lists the people the caller follows
func (h *FollowHandler) GetMyFollowing(c echo.Context) error {
	page, limit := pageParams(c)
	users, total, err := h.followService.FollowingPage(c.Request().Context(), getUserIDFromContext(c), (page-1)*limit, limit)
	if err != nil {
		return httpError(err)
	}
	return respondUserPage(c, users, total)
}

// respondUserPage writes one page of compact users with pagination meta.
func respondUserPage(c echo.Context, users []models.User, total int64) error {
	page, limit := pageParams(c)
	data := make([]models.UserCompact, len(users))
	for i := range users {
		data[i] = users[i].ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    data,
		"meta":    paginationMeta(page, limit, total),
	})
}
