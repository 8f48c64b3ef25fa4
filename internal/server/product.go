package server

import (
	"context"

	"github.com/Raulcudris/microservices-fargate-demo/internal/handler"
	"github.com/Raulcudris/microservices-fargate-demo/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type ProductServer struct {
	echo           *echo.Echo
	productHandler *handler.ProductHandler
}

func NewProductServer(productService service.ProductService) *ProductServer {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	s := &ProductServer{
		echo:           e,
		productHandler: handler.NewProductHandler(productService),
	}

	s.setupRoutes()
	return s
}

func (s *ProductServer) setupRoutes() {
	s.echo.GET("/health", handler.Health("product-service"))

	products := s.echo.Group("/products")
	products.GET("", s.productHandler.GetAll)
	products.GET("/:id", s.productHandler.GetByID)
	products.POST("", s.productHandler.Create)
}

func (s *ProductServer) Start(address string) error {
	return s.echo.Start(address)
}

func (s *ProductServer) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
