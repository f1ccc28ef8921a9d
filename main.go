package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/isdelr/course-api-be/internal/api"
	"github.com/isdelr/course-api-be/internal/auth"
	"github.com/isdelr/course-api-be/internal/config"
	"github.com/isdelr/course-api-be/internal/database"
	"github.com/isdelr/course-api-be/internal/logger"
	"github.com/isdelr/course-api-be/internal/scheduler"
	"github.com/isdelr/course-api-be/internal/services"
	"github.com/isdelr/course-api-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Set up database
	ctx := context.Background()
	store, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("Failed to initialize database")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(store.Events, hub)
	userService := services.NewUserService(store.Users, auth.NewBcryptHasher(cfg.BcryptCost), eventService)
	courseService := services.NewCourseService(store.Courses, store.Users, eventService)

	// Set up and run the background scheduler
	sched, err := scheduler.NewScheduler(eventService, cfg.EventPruneSchedule, cfg.EventRetention)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	sched.Start()

	// Set up router
	router := api.NewRouter(api.Deps{
		Users:          userService,
		Courses:        courseService,
		Events:         eventService,
		Hub:            hub,
		Store:          store,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("driver", cfg.DatabaseDriver).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	sched.Stop()
	hub.Stop()

	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to close database")
	}

	log.Info().Msg("Server exiting")
}
