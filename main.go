package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sfares/newsroom-be/internal/api"
	"github.com/sfares/newsroom-be/internal/auth"
	"github.com/sfares/newsroom-be/internal/config"
	"github.com/sfares/newsroom-be/internal/database"
	"github.com/sfares/newsroom-be/internal/logger"
	"github.com/sfares/newsroom-be/internal/mail"
	"github.com/sfares/newsroom-be/internal/monitoring"
	"github.com/sfares/newsroom-be/internal/services"
	"github.com/sfares/newsroom-be/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.IsProduction())

	// Ensure the base directory for uploaded media exists
	if err := os.MkdirAll(cfg.MediaPath, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create media directory")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up SMTP mailer
	mailer, err := mail.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize mailer")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	tokenService := auth.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(userService, tokenService, mailer, cfg.FrontendURL)
	categoryService := services.NewCategoryService(db)
	articleService := services.NewArticleService(db, categoryService)
	commentService := services.NewCommentService(db)
	pollService := services.NewPollService(db)
	reactionService := services.NewReactionService(db)
	notificationService := services.NewNotificationService(db, hub)
	adService := services.NewAdService(db)
	mediaService := services.NewMediaService(db, cfg.MediaPath, "/media")
	settingsService := services.NewSettingsService(db)
	historyService := services.NewHistoryService(db)
	horoscopeService := services.NewHoroscopeService(db)

	// Set up and run the background system monitor
	systemMonitor := monitoring.NewSystemMonitor()
	go systemMonitor.Run()

	analyticsService := services.NewAnalyticsService(db, systemMonitor)

	// Set up and run the background scheduler
	scheduler := monitoring.NewScheduler(articleService, adService, pollService, analyticsService)
	go scheduler.Run()

	// Set up router
	router := api.NewRouter(api.Deps{
		Config:        cfg,
		DB:            db,
		Hub:           hub,
		Tokens:        tokenService,
		Users:         userService,
		Sessions:      sessionService,
		Articles:      articleService,
		Categories:    categoryService,
		Comments:      commentService,
		Polls:         pollService,
		Reactions:     reactionService,
		Notifications: notificationService,
		Ads:           adService,
		Media:         mediaService,
		Analytics:     analyticsService,
		Settings:      settingsService,
		History:       historyService,
		Horoscopes:    horoscopeService,
		Hosts:         systemMonitor,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	systemMonitor.Stop()
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
