package server

import (
	"context"

	"github.com/Raulcudris/microservices-fargate-demo/internal/handler"
	"github.com/Raulcudris/microservices-fargate-demo/internal/metrics"
	"github.com/Raulcudris/microservices-fargate-demo/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type PaymentServer struct {
	echo           *echo.Echo
	paymentHandler *handler.PaymentHandler
}

func NewPaymentServer(paymentService service.PaymentService, m *metrics.ServerMetrics) *PaymentServer {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	if m != nil {
		e.Use(m.Middleware())
	}

	s := &PaymentServer{
		echo:           e,
		paymentHandler: handler.NewPaymentHandler(paymentService),
	}

	s.setupRoutes()
	return s
}

func (s *PaymentServer) setupRoutes() {
	s.echo.GET("/health", handler.Health("payment-service"))
	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	payments := s.echo.Group("/payments")
	payments.POST("", s.paymentHandler.Process)
	payments.GET("", s.paymentHandler.GetAll)
	payments.GET("/reconciliation", s.paymentHandler.Reconciliation)
	payments.GET("/:id", s.paymentHandler.GetByID)
}

func (s *PaymentServer) Start(address string) error {
	return s.echo.Start(address)
}

func (s *PaymentServer) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
