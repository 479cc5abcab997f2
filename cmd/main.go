// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"hotel-frontdesk/internal/database"
	"hotel-frontdesk/internal/handler"
	"hotel-frontdesk/internal/logger"
	"hotel-frontdesk/internal/repository"
	"hotel-frontdesk/internal/service"
)

func main() {
	ctx := context.Background()

	log, err := logger.New(getEnv("LOG_LEVEL", "info"), getEnv("LOG_FORMAT", "json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(ctx, database.ConfigFromEnv(), log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Bootstrap(ctx, db, log); err != nil {
		log.Fatal("schema bootstrap", zap.Error(err))
	}

	roomRepo := repository.NewPostgresRooms(db, log)
	resRepo := repository.NewPostgresReservations(db, log)

	if getEnv("SEED_DEMO_DATA", "false") == "true" {
		if err := database.SeedDemoData(ctx, roomRepo, resRepo, log); err != nil {
			log.Fatal("seed demo data", zap.Error(err))
		}
	}

	roomSvc := service.NewRoomService(roomRepo)
	resSvc := service.NewReservationService(resRepo, roomRepo)
	roomHandler := handler.NewRoomHandler(roomSvc)
	resHandler := handler.NewReservationHandler(resSvc)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handler.Logger(log))
	r.Use(handler.CORS)

	r.Get("/health", handler.HealthCheck)
	r.Route("/rooms", roomHandler.Routes)
	r.Route("/reservations", resHandler.Routes)

	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
