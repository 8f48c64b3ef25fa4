package server

import (
	"context"

	"github.com/Raulcudris/microservices-fargate-demo/internal/handler"
	"github.com/Raulcudris/microservices-fargate-demo/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type UserServer struct {
	echo        *echo.Echo
	userHandler *handler.UserHandler
}

func NewUserServer(userService service.UserService) *UserServer {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	s := &UserServer{
		echo:        e,
		userHandler: handler.NewUserHandler(userService),
	}

	s.setupRoutes()
	return s
}

func (s *UserServer) setupRoutes() {
	s.echo.GET("/health", handler.Health("user-service"))

	users := s.echo.Group("/users")
	users.POST("/login", s.userHandler.Login)
	users.POST("/validate", s.userHandler.Validate)
	users.POST("/create", s.userHandler.Create)
	users.POST("/logout", s.userHandler.Logout)
	users.GET("/username/:username", s.userHandler.GetByUsername)
}

func (s *UserServer) Start(address string) error {
	return s.echo.Start(address)
}

func (s *UserServer) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
