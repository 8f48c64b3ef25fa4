package handler

import (
	"net/http"
	"time"

	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"

	"github.com/labstack/echo/v4"
)

func Health(service string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, dto.HealthResponse{
			Status:    "UP",
			Service:   service,
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
}
