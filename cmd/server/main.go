package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/ecopulse-app/ecopulse/internal/config"
	"github.com/ecopulse-app/ecopulse/internal/database"
	"github.com/ecopulse-app/ecopulse/internal/handlers"
	"github.com/ecopulse-app/ecopulse/internal/realtime"
	"github.com/ecopulse-app/ecopulse/internal/repository"
	cronjobs "github.com/ecopulse-app/ecopulse/internal/scheduler"
	"github.com/ecopulse-app/ecopulse/internal/services"
	"github.com/ecopulse-app/ecopulse/pkg/cache"
	"github.com/ecopulse-app/ecopulse/pkg/logger"
	"github.com/ecopulse-app/ecopulse/pkg/middleware"
	"github.com/ecopulse-app/ecopulse/pkg/secrets"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Resolve the token-signing secret once for the process lifetime.
	// The remote store may be down; the resolver then falls back to the
	// configured local secret and the server still comes up.
	secretStore := secrets.NewHTTPStore(cfg.SecretStoreURL, cfg.SecretStoreToken)
	jwtSecret := secrets.NewResolver(secretStore, cfg.JWTSecret).SigningSecret(context.Background())

	// Best-effort cache; an empty REDIS_ADDR disables it entirely.
	cacheClient := cache.New(cache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer cacheClient.Close()

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// --- Realtime hub ---
	hub := realtime.NewHub()

	// --- Services ---
	notificationService := services.NewNotificationService(notificationRepo, hub)
	ledgerService := services.NewLedgerService(userRepo)
	badgeService := services.NewBadgeService(userRepo, notificationService)
	userService := services.NewUserService(userRepo, badgeService)
	engagementService := services.NewEngagementService(ledgerService, badgeService, notificationService, hub)
	leaderboardService := services.NewLeaderboardService(userRepo, cacheClient)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, jwtSecret)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	engagementHandler := handlers.NewEngagementHandler(engagementService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	wsHandler := handlers.NewWSHandler(hub, jwtSecret)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/leaderboard", leaderboardHandler.GetLeaderboardHandler).Methods("GET")

	// Websocket handshake does its own token check before upgrading.
	router.HandleFunc("/ws", wsHandler.ServeWS)

	// Protected user routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(jwtSecret))
	protectedUserRoutes.Use(middleware.UpdateStreakMiddleware(userService))
	protectedUserRoutes.HandleFunc("/me", userHandler.GetMeHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")

	// Notification routes
	protectedNotificationRoutes := router.PathPrefix("/notifications").Subrouter()
	protectedNotificationRoutes.Use(middleware.AuthMiddleware(jwtSecret))
	protectedNotificationRoutes.Use(middleware.UpdateStreakMiddleware(userService))
	protectedNotificationRoutes.HandleFunc("", notificationHandler.GetNotificationsHandler).Methods("GET")
	protectedNotificationRoutes.HandleFunc("/unread-count", notificationHandler.GetUnreadCountHandler).Methods("GET")
	protectedNotificationRoutes.HandleFunc("/read-all", notificationHandler.MarkAllReadHandler).Methods("POST")
	protectedNotificationRoutes.HandleFunc("/{id}/read", notificationHandler.MarkReadHandler).Methods("POST")
	protectedNotificationRoutes.HandleFunc("", notificationHandler.ClearNotificationsHandler).Methods("DELETE")

	// Engagement event routes, called by the domain layer after its own
	// mutation succeeds
	eventRoutes := router.PathPrefix("/events").Subrouter()
	eventRoutes.Use(middleware.AuthMiddleware(jwtSecret))
	eventRoutes.Use(middleware.UpdateStreakMiddleware(userService))
	eventRoutes.HandleFunc("/post-created", engagementHandler.PostCreatedHandler).Methods("POST")
	eventRoutes.HandleFunc("/post-liked", engagementHandler.PostLikedHandler).Methods("POST")
	eventRoutes.HandleFunc("/comment-added", engagementHandler.CommentAddedHandler).Methods("POST")
	eventRoutes.HandleFunc("/follow-received", engagementHandler.FollowReceivedHandler).Methods("POST")
	eventRoutes.HandleFunc("/challenge-joined", engagementHandler.ChallengeJoinedHandler).Methods("POST")
	eventRoutes.HandleFunc("/challenge-completed", engagementHandler.ChallengeCompletedHandler).Methods("POST")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Keep the cached leaderboard fresh
	cronjobs.StartLeaderboardCronJobs(leaderboardService)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
