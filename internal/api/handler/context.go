package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teachreach/marketplace/internal/api/middleware"
	"github.com/teachreach/marketplace/internal/core/ports"
)

// callerFrom extracts the identity injected by the Auth middleware. A missing
// user id means the middleware did not run for this route.
func callerFrom(c echo.Context) (ports.Caller, error) {
	id, _ := c.Get(middleware.KeyUserID).(string)
	if id == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	name, _ := c.Get(middleware.KeyName).(string)
	email, _ := c.Get(middleware.KeyEmail).(string)
	role, _ := c.Get(middleware.KeyRole).(string)
	return ports.Caller{ID: id, Name: name, Email: email, Role: role}, nil
}

// bindValid binds the request body into req and runs the registered validator.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
