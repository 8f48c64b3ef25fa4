package handler

import (
	"net/http"
	"strings"

	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
	"github.com/Raulcudris/microservices-fargate-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// Validate is consumed by the gateway. Any failure, authentication or
// authorization alike, comes back as a bare 400 so callers learn nothing
// about why a token was refused.
func (h *UserHandler) Validate(c echo.Context) error {
	ctx := c.Request().Context()

	raw := c.QueryParam("token")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing token")
	}

	var req dto.ValidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.userService.Validate(ctx, raw, req.Path, req.Method)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid token")
	}

	return c.JSON(http.StatusOK, result)
}

func (h *UserHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.NewUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}
	if !model.ValidRole(strings.ToUpper(req.Role)) {
		return echo.NewHTTPError(http.StatusBadRequest, "role must be USER or ADMIN")
	}

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetByUsername(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.userService.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	raw := c.QueryParam("token")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing token")
	}

	if err := h.userService.Logout(ctx, raw); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
