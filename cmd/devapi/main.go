package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Akyl0n/202507Shopping-website/internal/devapi"
)

type Config struct {
	HTTPPort        string
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	store := devapi.NewStore()
	store.Seed(
		devapi.Product{ProductID: 1, ModelID: 1, Name: "Wireless Earbuds", Model: "Standard", Price: decimal.NewFromFloat(199.00)},
		devapi.Product{ProductID: 1, ModelID: 2, Name: "Wireless Earbuds", Model: "Pro", Price: decimal.NewFromFloat(299.00)},
		devapi.Product{ProductID: 2, ModelID: 3, Name: "Mechanical Keyboard", Model: "87-key", Price: decimal.NewFromFloat(459.50)},
		devapi.Product{ProductID: 3, ModelID: 4, Name: "USB-C Cable", Model: "1m", Price: decimal.NewFromFloat(19.90)},
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      devapi.NewHandler(store).Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("dev API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
