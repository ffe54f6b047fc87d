package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rooman-dev/agl-new/internal/api/middleware"
	"github.com/rooman-dev/agl-new/internal/core/domain"
)

// ctxIdentity returns the identity stored by middleware.Auth. A missing
// identity means the route was registered without the middleware.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	who, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok || who.AccountID == 0 {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return who, nil
}
