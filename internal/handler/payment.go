package handler

import (
	"net/http"

	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) Process(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.OrderID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "orderId is required")
	}

	result, err := h.paymentService.Process(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) GetAll(c echo.Context) error {
	ctx := c.Request().Context()

	payments, err := h.paymentService.GetAll(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}

	payment, err := h.paymentService.GetByID(ctx, id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, payment)
}

// Reconciliation lists order transitions not yet acknowledged by the
// order service.
func (h *PaymentHandler) Reconciliation(c echo.Context) error {
	ctx := c.Request().Context()

	tasks, err := h.paymentService.PendingReconciliation(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, tasks)
}
