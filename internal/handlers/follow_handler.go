package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shady-cj/social-media-api/internal/models"
	"github.com/shady-cj/social-media-api/internal/services"
)

// FollowHandler handles follow/unfollow and graph query HTTP requests
type FollowHandler struct {
	graphService    *services.GraphService
	identityService *services.IdentityService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(graphService *services.GraphService, identityService *services.IdentityService) *FollowHandler {
	return &FollowHandler{
		graphService:    graphService,
		identityService: identityService,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:username/follow", h.FollowUser)
	g.DELETE("/users/:username/follow", h.UnfollowUser)
	g.GET("/profiles/:username/followers", h.GetFollowers)
	g.GET("/profiles/:username/following", h.GetFollowing)
	g.GET("/profiles/:username/mutual-followers", h.GetMutualFollowers)
	g.GET("/follows", h.ListFollows)
}

// FollowUser makes the caller follow the target user. Re-following is a
// no-op, matching the upsert semantics of the edge.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	if err := h.graphService.Follow(c.Request().Context(), getIdentityID(c), c.Param("username")); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowUser removes the caller's follow edge to the target user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	if err := h.graphService.Unfollow(c.Request().Context(), getIdentityID(c), c.Param("username")); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}

// GetFollowers lists the profiles following the target user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	identity, err := h.identityService.GetIdentityByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	profiles, err := h.graphService.Followers(c.Request().Context(), identity.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, profiles)
}

// GetFollowing lists the profiles the target user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	identity, err := h.identityService.GetIdentityByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	profiles, err := h.graphService.Following(c.Request().Context(), identity.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, profiles)
}

// GetMutualFollowers lists the profiles that follow the target user and are
// followed back
func (h *FollowHandler) GetMutualFollowers(c echo.Context) error {
	identity, err := h.identityService.GetIdentityByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	profiles, err := h.graphService.MutualFollowers(c.Request().Context(), identity.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, profiles)
}

// ListFollows lists follow edges filtered by either endpoint's username
func (h *FollowHandler) ListFollows(c echo.Context) error {
	filter := models.FollowFilter{
		FollowedUsername: c.QueryParam("followed"),
		FollowerUsername: c.QueryParam("follower"),
	}
	follows, err := h.graphService.ListFollows(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, follows)
}
