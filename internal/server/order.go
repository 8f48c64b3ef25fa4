package server

import (
	"context"

	"github.com/Raulcudris/microservices-fargate-demo/internal/handler"
	"github.com/Raulcudris/microservices-fargate-demo/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type OrderServer struct {
	echo         *echo.Echo
	orderHandler *handler.OrderHandler
}

func NewOrderServer(orderService service.OrderService) *OrderServer {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	s := &OrderServer{
		echo:         e,
		orderHandler: handler.NewOrderHandler(orderService),
	}

	s.setupRoutes()
	return s
}

func (s *OrderServer) setupRoutes() {
	s.echo.GET("/health", handler.Health("order-service"))

	orders := s.echo.Group("/orders")
	orders.GET("", s.orderHandler.GetAll)
	orders.POST("", s.orderHandler.Create)
	orders.GET("/:id", s.orderHandler.GetByID)

	// -------- payment service callbacks --------
	orders.PUT("/:id/confirm", s.orderHandler.Confirm)
	orders.PUT("/:id/cancel", s.orderHandler.Cancel)
}

func (s *OrderServer) Start(address string) error {
	return s.echo.Start(address)
}

func (s *OrderServer) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
