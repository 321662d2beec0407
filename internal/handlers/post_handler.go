package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shady-cj/social-media-api/internal/models"
	"github.com/shady-cj/social-media-api/internal/services"
)

// PostHandler handles post lifecycle HTTP requests
type PostHandler struct {
	postService     *services.PostService
	identityService *services.IdentityService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, identityService *services.IdentityService) *PostHandler {
	return &PostHandler{
		postService:     postService,
		identityService: identityService,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/posts/:id/comments", h.GetComments)
	g.GET("/posts/:id/media", h.GetPostMedia)
	g.GET("/media", h.ListMedia)
	g.POST("/admin/posts/purge", h.PurgeDeletedPosts)
}

// isStaff resolves the caller's staff flag from the store; claims can go
// stale over a token's lifetime.
func (h *PostHandler) isStaff(c echo.Context) bool {
	identity, err := h.identityService.GetIdentity(c.Request().Context(), getIdentityID(c))
	if err != nil {
		return false
	}
	return identity.IsStaff
}

// CreatePost creates a post, optionally as a comment on a parent post, with
// all media attached atomically
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), getIdentityID(c), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// ListPosts lists posts by scope and filters. The deleted scope is limited
// to the caller's own posts unless the caller is staff.
func (h *PostHandler) ListPosts(c echo.Context) error {
	filter := models.PostFilter{
		Scope:           models.PostScope(c.QueryParam("scope")),
		ContentContains: c.QueryParam("content_contains"),
		AuthorUsername:  c.QueryParam("author"),
	}
	if v := c.QueryParam("published"); v != "" {
		published := v == "true"
		filter.Published = &published
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

	if filter.Scope == models.ScopeDeleted && !h.isStaff(c) {
		claims, ok := getClaims(c)
		if !ok {
			return toHTTPError(services.ErrAuthenticationRequired)
		}
		filter.AuthorUsername = claims.Username
	}

	posts, err := h.postService.ListPosts(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost fetches a post by id; soft-deleted posts resolve only for their
// author or staff
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postService.GetPost(c.Request().Context(), getIdentityID(c), h.isStaff(c), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost partially updates the caller's post and marks it edited
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), getIdentityID(c), id, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost soft-deletes the caller's post
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.postService.DeletePost(c.Request().Context(), getIdentityID(c), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetComments lists the non-deleted comments on a post
func (h *PostHandler) GetComments(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.postService.GetComments(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// GetPostMedia lists the media attachments of a post
func (h *PostHandler) GetPostMedia(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	media, err := h.postService.ListMedia(c.Request().Context(), models.MediaFilter{PostID: &id})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, media)
}

// ListMedia lists media attachments filtered by post and type
func (h *PostHandler) ListMedia(c echo.Context) error {
	filter := models.MediaFilter{Type: c.QueryParam("type")}
	if v := c.QueryParam("post_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, services.ErrNotFound.Error())
		}
		filter.PostID = &id
	}

	media, err := h.postService.ListMedia(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, media)
}

// PurgeDeletedPosts hard-deletes soft-deleted posts older than the cutoff.
// Staff only; invoked by the external scheduled purge job.
func (h *PostHandler) PurgeDeletedPosts(c echo.Context) error {
	cutoff := time.Now().AddDate(0, 0, -30)
	if v := c.QueryParam("before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid before timestamp")
		}
		cutoff = t
	}

	purged, err := h.postService.PurgeDeletedPosts(c.Request().Context(), h.isStaff(c), cutoff)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"purged": purged})
}
