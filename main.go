package main

import (
	"log"

	"mathquiz/config"
	"mathquiz/handlers"
	"mathquiz/middleware"
	"mathquiz/routes"
	"mathquiz/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Database access goes through the gateway; an unset DATABASE_URL
	// disables persistence instead of failing startup.
	gateway := services.NewGateway(cfg.DatabaseURL, cfg.DBPoolMin, cfg.DBPoolMax)

	// Sessions live in Redis when configured, in memory otherwise.
	var sessionStore services.SessionStore
	if redisClient := config.InitRedis(cfg); redisClient != nil {
		sessionStore = services.NewRedisSessionStore(redisClient)
	} else {
		log.Printf("REDIS_HOST is not set, using in-memory session store")
		sessionStore = services.NewMemorySessionStore()
	}

	// Initialize services
	playerService := services.NewPlayerService(gateway)
	quizService := services.NewQuizService(nil)
	sessionService := services.NewSessionService(playerService, quizService, sessionStore)

	// Initialize WebSocket hub for live leaderboard updates
	hub := services.NewHub()
	go hub.Run()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessionService, hub, cfg.SecretKey)
	leaderboardHandler := handlers.NewLeaderboardHandler(playerService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, sessionHandler, leaderboardHandler, hub, cfg.SecretKey)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.BindAddress + ":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
