package services

import (
	"mathquiz/models"
)

// DefaultLeaderboardSize is used when a caller asks for a non-positive
// number of leaderboard rows.
const DefaultLeaderboardSize = 3

// queryExecutor is the slice of the gateway the player operations use.
type queryExecutor interface {
	Exec(query string, args ...interface{}) error
	QueryOne(dest interface{}, query string, args ...interface{}) (bool, error)
	QueryAll(dest interface{}, query string, args ...interface{}) error
}

// PlayerService holds the persisted player operations. Every method is
// fail-open: when the gateway reports the database as unavailable the
// method degrades to a no-op or an empty result instead of returning an
// error, so a database outage never reaches the quiz itself.
type PlayerService struct {
	gateway queryExecutor
}

func NewPlayerService(gateway *Gateway) *PlayerService {
	return &PlayerService{gateway: gateway}
}

// EnsurePlayer creates a row with a zero score for name if none exists.
// Idempotent, safe to call on every session start.
func (s *PlayerService) EnsurePlayer(name string) {
	_ = s.gateway.Exec(`
		INSERT INTO players (name, total_score, last_played)
		VALUES (?, 0, NOW())
		ON CONFLICT (name) DO NOTHING
	`, name)
}

// GetScore returns the player's cumulative score. The boolean is false
// when the player has no record or the database is unavailable; callers
// display both as zero.
func (s *PlayerService) GetScore(name string) (int, bool) {
	var score int
	found, err := s.gateway.QueryOne(&score, `
		SELECT total_score FROM players WHERE name = ?
	`, name)
	if err != nil || !found {
		return 0, false
	}
	return score, true
}

// CommitScore adds delta to the player's total and refreshes last_played.
// The increment is a single statement so concurrent commits for the same
// player never lose updates.
func (s *PlayerService) CommitScore(name string, delta int) {
	if delta < 0 {
		return
	}
	_ = s.gateway.Exec(`
		UPDATE players
		SET total_score = total_score + ?,
		    last_played = NOW()
		WHERE name = ?
	`, delta, name)
}

// TopPlayers returns up to limit players ordered by score descending,
// ties broken by earlier last_played. Empty when the database is
// unavailable.
func (s *PlayerService) TopPlayers(limit int) []models.LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	var entries []models.LeaderboardEntry
	err := s.gateway.QueryAll(&entries, `
		SELECT name, total_score
		FROM players
		ORDER BY total_score DESC, last_played ASC
		LIMIT ?
	`, limit)
	if err != nil || entries == nil {
		return []models.LeaderboardEntry{}
	}
	return entries
}

// Prune deletes every player except the maxPlayers most recently played,
// as one set-based delete. A no-op when the table is already within the
// cap.
func (s *PlayerService) Prune(maxPlayers int) {
	if maxPlayers <= 0 {
		return
	}
	_ = s.gateway.Exec(`
		DELETE FROM players
		WHERE id NOT IN (
			SELECT id FROM players
			ORDER BY last_played DESC
			LIMIT ?
		)
	`, maxPlayers)
}
