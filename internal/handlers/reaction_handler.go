package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles HTTP requests related to emoji reactions
type ReactionHandler struct {
	reactionService *services.ReactionService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionService *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(public, protected *echo.Group) {
	public.GET("/posts/:post_id/reactions", h.GetReactions)

	protected.POST("/posts/:post_id/reactions", h.React)
	protected.DELETE("/posts/:post_id/reactions/:kind", h.Unreact)
	protected.DELETE("/reactions/:id", h.DeleteReaction)
}

// React adds a reaction of the given kind to a post
func (h *ReactionHandler) React(c echo.Context) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return err
	}
	var req models.CreateReactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reaction, err := h.reactionService.React(c.Request().Context(), getUserIDFromContext(c), postID, req.Kind, req.Unicode)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, reaction)
}

// Unreact removes the caller's reaction of a kind from a post
func (h *ReactionHandler) Unreact(c echo.Context) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return err
	}
	if err := h.reactionService.Unreact(c.Request().Context(), getUserIDFromContext(c), postID, c.Param("kind")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteReaction deletes a reaction by its ID
func (h *ReactionHandler) DeleteReaction(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.reactionService.DeleteReaction(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetReactions lists reactions on a post, optionally filtered by kind and user
func (h *ReactionHandler) GetReactions(c echo.Context) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return err
	}

	var userID uint
	if raw := c.QueryParam("user"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user")
		}
		userID = uint(id)
	}

	reactions, err := h.reactionService.ListReactions(c.Request().Context(), postID, c.QueryParam("kind"), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reactions)
}
