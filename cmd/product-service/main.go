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
	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
	"github.com/Raulcudris/microservices-fargate-demo/internal/repository"
	"github.com/Raulcudris/microservices-fargate-demo/internal/server"
	"github.com/Raulcudris/microservices-fargate-demo/internal/service"

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

	log := logging.Setup(cfg.Log, "product-service")

	db := client.InitDatabase(cfg.DatabaseURL, log, &model.Category{}, &model.Product{})

	productRepo := repository.NewProductRepository(db)
	if err := productRepo.Seed(context.Background()); err != nil {
		log.WithError(err).Warn("seed products")
	}

	productService := service.NewProductService(productRepo)

	srv := server.NewProductServer(productService)
	serverAddr := cfg.Addr("8001")

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
