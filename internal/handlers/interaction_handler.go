package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shady-cj/social-media-api/internal/models"
	"github.com/shady-cj/social-media-api/internal/services"
)

// InteractionHandler handles like/share/comment interaction HTTP requests
type InteractionHandler struct {
	postService *services.PostService
}

// NewInteractionHandler creates a new InteractionHandler
func NewInteractionHandler(postService *services.PostService) *InteractionHandler {
	return &InteractionHandler{postService: postService}
}

// RegisterInteractionRoutes registers interaction-related routes
func (h *InteractionHandler) RegisterInteractionRoutes(g *echo.Group) {
	g.POST("/posts/:id/interactions", h.CreateInteraction)
	g.DELETE("/posts/:id/interactions", h.DeleteInteraction)
	g.GET("/posts/:id/likes/count", h.GetLikesCount)
	g.GET("/interactions", h.ListInteractions)
}

// CreateInteraction records an interaction on a post. A repeated LIKE is
// rejected with 409.
func (h *InteractionHandler) CreateInteraction(c echo.Context) error {
	postID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.InteractionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	interaction, err := h.postService.CreateInteraction(c.Request().Context(), getIdentityID(c), postID, req.Type)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, interaction)
}

// DeleteInteraction removes the caller's interaction of the given type from
// a post. The type comes from the query string so the request needs no body.
func (h *InteractionHandler) DeleteInteraction(c echo.Context) error {
	postID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	interactionType := c.QueryParam("type")
	switch interactionType {
	case models.InteractionLike, models.InteractionShare, models.InteractionComment:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid interaction type")
	}

	if err := h.postService.DeleteInteraction(c.Request().Context(), getIdentityID(c), postID, interactionType); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLikesCount returns the number of LIKE interactions on a post
func (h *InteractionHandler) GetLikesCount(c echo.Context) error {
	postID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	count, err := h.postService.LikeCount(c.Request().Context(), postID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "likes_count": count})
}

// ListInteractions lists interactions filtered by post, user, type and time
func (h *InteractionHandler) ListInteractions(c echo.Context) error {
	filter := models.InteractionFilter{
		Username: c.QueryParam("username"),
		Type:     c.QueryParam("type"),
	}
	if v := c.QueryParam("post_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, services.ErrNotFound.Error())
		}
		filter.PostID = &id
	}
	if v := c.QueryParam("created_before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid created_before timestamp")
		}
		filter.CreatedBefore = &t
	}
	if v := c.QueryParam("created_after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid created_after timestamp")
		}
		filter.CreatedAfter = &t
	}

	interactions, err := h.postService.ListInteractions(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, interactions)
}
