package server

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Raulcudris/microservices-fargate-demo/internal/client"
	"github.com/Raulcudris/microservices-fargate-demo/internal/config"
	"github.com/Raulcudris/microservices-fargate-demo/internal/handler"
	"github.com/Raulcudris/microservices-fargate-demo/internal/metrics"
	authmw "github.com/Raulcudris/microservices-fargate-demo/internal/middleware"
	"github.com/Raulcudris/microservices-fargate-demo/internal/policy"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// GatewayServer is the single entry point of the deployment. Every
// protected route is authenticated against the user service before being
// proxied to its backend with verified identity headers attached.
type GatewayServer struct {
	echo *echo.Echo
}

func NewGatewayServer(
	cfg *config.Config,
	authClient client.AuthClient,
	routes *policy.Table,
	m *metrics.ServerMetrics,
	log *logrus.Entry,
) (*GatewayServer, error) {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	if m != nil {
		e.Use(m.Middleware())
	}

	e.GET("/health", handler.Health("gateway"))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	auth := authmw.GatewayAuth(authClient, routes, log)

	backends := map[string]string{
		"/users":    cfg.Services.UserURL,
		"/products": cfg.Services.ProductURL,
		"/orders":   cfg.Services.OrderURL,
		"/payments": cfg.Services.PaymentURL,
	}
	for prefix, backend := range backends {
		proxy, err := proxyTo(backend)
		if err != nil {
			return nil, fmt.Errorf("gateway backend %s: %w", prefix, err)
		}
		e.Group(prefix, auth, proxy)
	}

	return &GatewayServer{echo: e}, nil
}

func proxyTo(backend string) (echo.MiddlewareFunc, error) {
	target, err := url.Parse(backend)
	if err != nil {
		return nil, err
	}
	return middleware.Proxy(middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{
		{URL: target},
	})), nil
}

func (s *GatewayServer) Start(address string) error {
	return s.echo.Start(address)
}

func (s *GatewayServer) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
