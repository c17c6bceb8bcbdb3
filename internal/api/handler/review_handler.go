package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teachreach/marketplace/internal/core/ports"
)

type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// List handles GET /api/reviews.
//
// @Summary      List site reviews
// @Tags         reviews
// @Produce      json
// @Success      200  {array}  domain.Review
// @Router       /reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// Create handles POST /api/reviews.
//
// @Summary      Leave a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReviewRequest  true  "Rating and comment"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  errorResponse
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	review, err := h.service.Create(c.Request().Context(), ports.CreateReviewInput{
		Caller:    caller,
		Rating:    req.Rating,
		Comment:   req.Comment,
		ServiceID: req.ServiceID,
		OrderID:   req.OrderID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// Delete handles DELETE /api/reviews/:id (admin).
//
// @Summary      Remove a review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Review id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Review removed"})
}
