package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teachreach/marketplace/internal/core/domain"
	"github.com/teachreach/marketplace/internal/core/ports"
)

// UserHandler serves admin account management and the caller's own account.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/admin/users.
//
// @Summary      List registered users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   identityResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]identityResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newIdentityResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /api/admin/users/:id.
//
// @Summary      Delete a user
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateMe handles PUT /api/users/me.
//
// @Summary      Update the caller's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  identityResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), caller, domain.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newIdentityResponse(user))
}

// DeleteMe handles DELETE /api/users/me.
//
// @Summary      Delete the caller's account
// @Tags         users
// @Security     BearerAuth
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /users/me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteSelf(c.Request().Context(), caller); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Support handles GET /api/users/support.
//
// @Summary      Resolve the support administrator
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  supportResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/support [get]
func (h *UserHandler) Support(c echo.Context) error {
	admin, err := h.service.SupportRecipient(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, supportResponse{ID: admin.ID, Name: admin.Name})
}
