package routes

import (
	"log"
	"net/http"

	"mathquiz/handlers"
	"mathquiz/middleware"
	"mathquiz/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	sessionHandler *handlers.SessionHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	hub *services.Hub,
	secret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Starting a session is the only unauthenticated session route;
		// it issues the token the rest require.
		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.StartSession)

			current := sessions.Group("/")
			current.Use(middleware.SessionAuth(secret))
			{
				current.GET("/current", sessionHandler.GetSession)
				current.POST("/answers", sessionHandler.SubmitAnswer)
				current.DELETE("/current", sessionHandler.EndSession)
			}
		}

		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
	}

	// WebSocket endpoint for live leaderboard updates
	router.GET("/ws/leaderboard", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}

		hub.RegisterClient(conn)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
