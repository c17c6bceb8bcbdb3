package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teachreach/marketplace/internal/core/ports"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /api/orders.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order items and total"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	order, err := h.service.Create(c.Request().Context(), ports.CreateOrderInput{
		Caller:     caller,
		Items:      toOrderItems(req.OrderItems),
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// Mine handles GET /api/orders/myorders.
//
// @Summary      List the caller's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  errorResponse
// @Router       /orders/myorders [get]
func (h *OrderHandler) Mine(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListMine(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// All handles GET /api/orders (admin).
//
// @Summary      List every order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      403  {object}  errorResponse
// @Router       /orders [get]
func (h *OrderHandler) All(c echo.Context) error {
	orders, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/orders/:id/status (admin).
//
// @Summary      Change an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Order id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Order
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateOrderStatusInput{
		OrderID:      c.Param("id"),
		Status:       req.Status,
		Deliverables: req.Deliverables,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
