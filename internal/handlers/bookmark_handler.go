package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shady-cj/social-media-api/internal/services"
)

// BookmarkHandler handles bookmark HTTP requests
type BookmarkHandler struct {
	postService *services.PostService
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(postService *services.PostService) *BookmarkHandler {
	return &BookmarkHandler{postService: postService}
}

// RegisterBookmarkRoutes registers bookmark-related routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.POST("/posts/:id/bookmark", h.AddBookmark)
	g.DELETE("/posts/:id/bookmark", h.RemoveBookmark)
	g.GET("/bookmarks", h.ListBookmarks)
	g.GET("/bookmarks/:id", h.GetBookmark)
}

// AddBookmark bookmarks a post for the caller
func (h *BookmarkHandler) AddBookmark(c echo.Context) error {
	postID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	bookmark, err := h.postService.AddBookmark(c.Request().Context(), getIdentityID(c), postID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, bookmark)
}

// RemoveBookmark removes the caller's bookmark from a post
func (h *BookmarkHandler) RemoveBookmark(c echo.Context) error {
	postID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.postService.RemoveBookmark(c.Request().Context(), getIdentityID(c), postID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBookmarks lists the caller's own bookmarks, never anyone else's
func (h *BookmarkHandler) ListBookmarks(c echo.Context) error {
	bookmarks, err := h.postService.ListBookmarks(c.Request().Context(), getIdentityID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, bookmarks)
}

// GetBookmark fetches one of the caller's bookmarks by id; another user's
// bookmark id yields 403 without exposing its contents
func (h *BookmarkHandler) GetBookmark(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	bookmark, err := h.postService.GetBookmark(c.Request().Context(), getIdentityID(c), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, bookmark)
}
