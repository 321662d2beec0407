package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shady-cj/social-media-api/internal/models"
	"github.com/shady-cj/social-media-api/internal/services"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	identityService *services.IdentityService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(identityService *services.IdentityService) *ProfileHandler {
	return &ProfileHandler{identityService: identityService}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetOwnProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.DELETE("/profile", h.DeleteIdentity)
	g.GET("/profiles", h.ListProfiles)
	g.GET("/profiles/:username", h.GetProfile)
}

// GetOwnProfile retrieves the authenticated caller's profile
func (h *ProfileHandler) GetOwnProfile(c echo.Context) error {
	profile, err := h.identityService.GetProfile(c.Request().Context(), getIdentityID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile partially updates the caller's profile; absent fields are
// left untouched
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.identityService.UpdateProfile(c.Request().Context(), getIdentityID(c), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// DeleteIdentity removes the caller's account and all owned social data
func (h *ProfileHandler) DeleteIdentity(c echo.Context) error {
	if err := h.identityService.DeleteIdentity(c.Request().Context(), getIdentityID(c)); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListProfiles lists profiles filtered by name/username query parameters
func (h *ProfileHandler) ListProfiles(c echo.Context) error {
	filter := models.ProfileFilter{
		Username:          c.QueryParam("username"),
		UsernameContains:  c.QueryParam("username_contains"),
		FirstNameContains: c.QueryParam("first_name_contains"),
		FirstNamePrefix:   c.QueryParam("first_name_prefix"),
		LastNameContains:  c.QueryParam("last_name_contains"),
		LastNamePrefix:    c.QueryParam("last_name_prefix"),
	}

	profiles, err := h.identityService.ListProfiles(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, profiles)
}

// GetProfile retrieves a profile by username
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.identityService.GetProfileByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, profile)
}
