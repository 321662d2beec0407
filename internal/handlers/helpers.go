package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shady-cj/social-media-api/internal/models"
	"github.com/shady-cj/social-media-api/internal/services"
	"github.com/sirupsen/logrus"
)

// getClaims pulls the JWT claims the auth middleware stored on the context.
func getClaims(c echo.Context) (*models.JwtCustomClaims, bool) {
	claims, ok := c.Get("identity").(*models.JwtCustomClaims)
	return claims, ok
}

// getIdentityID returns the authenticated caller's identity id, or uuid.Nil
// when the request carries no valid claims.
func getIdentityID(c echo.Context) uuid.UUID {
	claims, ok := getClaims(c)
	if !ok {
		return uuid.Nil
	}
	return claims.IdentityID
}

// toHTTPError translates service errors into HTTP responses. Unexpected
// store errors are logged and surfaced as a generic 500 so no internals
// leak to the caller.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, services.ErrAuthenticationRequired):
		return echo.NewHTTPError(http.StatusUnauthorized, services.ErrAuthenticationRequired.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, services.ErrForbidden.Error())
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, services.ErrNotFound.Error())
	case errors.Is(err, services.ErrNotFollowing):
		return echo.NewHTTPError(http.StatusNotFound, services.ErrNotFollowing.Error())
	case errors.Is(err, services.ErrSelfFollow):
		return echo.NewHTTPError(http.StatusBadRequest, services.ErrSelfFollow.Error())
	case errors.Is(err, services.ErrDuplicateInteraction):
		return echo.NewHTTPError(http.StatusConflict, services.ErrDuplicateInteraction.Error())
	case errors.Is(err, services.ErrAlreadyBookmarked):
		return echo.NewHTTPError(http.StatusConflict, services.ErrAlreadyBookmarked.Error())
	case errors.Is(err, services.ErrDuplicateIdentity):
		return echo.NewHTTPError(http.StatusConflict, services.ErrDuplicateIdentity.Error())
	default:
		logrus.WithError(err).Error("unexpected service error")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

// parseUUIDParam resolves a path parameter into a UUID. Malformed
// identifiers are reported as not found, never as a crash or a distinct
// error class.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, services.ErrNotFound.Error())
	}
	return id, nil
}
