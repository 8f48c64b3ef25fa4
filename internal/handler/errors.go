package handler

import (
	"errors"
	"net/http"

	"github.com/Raulcudris/microservices-fargate-demo/internal/model"

	"github.com/labstack/echo/v4"
)

// httpError maps the domain error taxonomy onto HTTP statuses. Auth
// failures deliberately carry no internal detail.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrConflict),
		errors.Is(err, model.ErrMalformed):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrExpired):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, model.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	case errors.Is(err, model.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, model.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrUpstreamUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, model.ErrUpstreamUnavailable.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
