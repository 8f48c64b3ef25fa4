package handler

import (
	"context"
	"net/http"

	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if len(req.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "order must contain at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "item quantity must be positive")
		}
	}

	result, err := h.orderService.Create(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *OrderHandler) GetAll(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.GetAll(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.orderService.GetByID(ctx, id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

// Confirm is called by the payment service after an approved payment.
func (h *OrderHandler) Confirm(c echo.Context) error {
	return h.transition(c, h.orderService.Confirm)
}

// Cancel is called by the payment service after a rejected payment.
func (h *OrderHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.orderService.Cancel)
}

func (h *OrderHandler) transition(c echo.Context, apply func(ctx context.Context, orderID uint) error) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	if err := apply(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
