package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/indocrm/inquiry-desk/internal/api/middleware"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
)

// ctxActor extracts the identity injected by the Auth middleware. A missing
// subject means the route was mounted without Auth; reject with 401.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	name, _ := c.Get(middleware.CtxName).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	return ports.Actor{ID: id, Name: name, Role: role}, nil
}
