package models

import (
	"time"
)

// Player is the one persisted entity: a display name with a cumulative
// score. Rows beyond the retention cap are pruned by last_played.
type Player struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"uniqueIndex;not null"`
	TotalScore int       `json:"total_score" gorm:"not null;default:0"`
	LastPlayed time.Time `json:"last_played" gorm:"not null;default:now()"`
}

// LeaderboardEntry is the projection returned by the top-players query.
type LeaderboardEntry struct {
	Name       string `json:"name"`
	TotalScore int    `json:"total_score"`
}
