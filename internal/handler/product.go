package handler

import (
	"net/http"
	"strconv"

	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

func (h *ProductHandler) GetAll(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.GetAll(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.productService.GetByID(ctx, id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.NewProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product name is required")
	}
	if req.Price.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, "product price must not be negative")
	}

	product, err := h.productService.Create(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, product)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
