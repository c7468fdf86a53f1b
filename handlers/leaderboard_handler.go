package handlers

import (
	"net/http"
	"strconv"

	"mathquiz/services"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	players *services.PlayerService
}

func NewLeaderboardHandler(players *services.PlayerService) *LeaderboardHandler {
	return &LeaderboardHandler{players: players}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultLeaderboardSize)))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": h.players.TopPlayers(limit)})
}
