package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raulcudris/microservices-fargate-demo/internal/client"
	"github.com/Raulcudris/microservices-fargate-demo/internal/config"
	"github.com/Raulcudris/microservices-fargate-demo/internal/logging"
	"github.com/Raulcudris/microservices-fargate-demo/internal/metrics"
	"github.com/Raulcudris/microservices-fargate-demo/internal/policy"
	"github.com/Raulcudris/microservices-fargate-demo/internal/server"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logging.Setup(cfg.Log, "gateway")

	authClient := client.NewAuthClient(cfg.Services.UserURL, cfg.Gateway.ValidateTimeout)
	serverMetrics := metrics.NewServerMetrics("gateway")

	srv, err := server.NewGatewayServer(cfg, authClient, policy.Default(), serverMetrics, log)
	if err != nil {
		log.WithError(err).Fatal("gateway setup error")
	}

	serverAddr := cfg.Addr("8080")

	log.WithField("addr", serverAddr).Info("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("HTTP server shutdown error")
	}
}
