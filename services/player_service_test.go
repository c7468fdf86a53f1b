package services

import (
	"strings"
	"testing"

	"mathquiz/models"
)

// fakeExecutor records statements instead of running them, and can be
// flipped to report the database as unavailable.
type fakeExecutor struct {
	unavailable bool

	queries []string
	args    [][]interface{}

	oneResult int
	oneFound  bool
	allRows   []models.LeaderboardEntry
}

func (f *fakeExecutor) record(query string, args []interface{}) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
}

func (f *fakeExecutor) Exec(query string, args ...interface{}) error {
	if f.unavailable {
		return ErrUnavailable
	}
	f.record(query, args)
	return nil
}

func (f *fakeExecutor) QueryOne(dest interface{}, query string, args ...interface{}) (bool, error) {
	if f.unavailable {
		return false, ErrUnavailable
	}
	f.record(query, args)
	if f.oneFound {
		*dest.(*int) = f.oneResult
	}
	return f.oneFound, nil
}

func (f *fakeExecutor) QueryAll(dest interface{}, query string, args ...interface{}) error {
	if f.unavailable {
		return ErrUnavailable
	}
	f.record(query, args)
	*dest.(*[]models.LeaderboardEntry) = f.allRows
	return nil
}

func (f *fakeExecutor) lastQuery(t *testing.T) string {
	t.Helper()
	if len(f.queries) == 0 {
		t.Fatal("no statement executed")
	}
	return f.queries[len(f.queries)-1]
}

func TestEnsurePlayerStatement(t *testing.T) {
	exec := &fakeExecutor{}
	s := &PlayerService{gateway: exec}

	s.EnsurePlayer("Ava")
	s.EnsurePlayer("Ava")

	if len(exec.queries) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(exec.queries))
	}
	query := exec.lastQuery(t)
	if !strings.Contains(query, "ON CONFLICT (name) DO NOTHING") {
		t.Errorf("ensure is not an upsert: %s", query)
	}
	if len(exec.args[0]) != 1 || exec.args[0][0] != "Ava" {
		t.Errorf("unexpected args: %v", exec.args[0])
	}
}

func TestGetScore(t *testing.T) {
	exec := &fakeExecutor{oneFound: true, oneResult: 12}
	s := &PlayerService{gateway: exec}

	score, ok := s.GetScore("Ava")
	if !ok || score != 12 {
		t.Errorf("GetScore = (%d, %v), want (12, true)", score, ok)
	}

	exec.oneFound = false
	if score, ok := s.GetScore("Nobody"); ok || score != 0 {
		t.Errorf("absent GetScore = (%d, %v), want (0, false)", score, ok)
	}

	exec.unavailable = true
	if score, ok := s.GetScore("Ava"); ok || score != 0 {
		t.Errorf("unavailable GetScore = (%d, %v), want (0, false)", score, ok)
	}
}

func TestCommitScoreStatement(t *testing.T) {
	exec := &fakeExecutor{}
	s := &PlayerService{gateway: exec}

	s.CommitScore("Ava", 7)

	query := exec.lastQuery(t)
	// The increment must be a single in-place statement so concurrent
	// commits for the same player never lose updates.
	if !strings.Contains(query, "total_score = total_score + ?") {
		t.Errorf("commit is not an atomic increment: %s", query)
	}
	if !strings.Contains(query, "last_played = NOW()") {
		t.Errorf("commit does not refresh last_played: %s", query)
	}
	if len(exec.args[0]) != 2 || exec.args[0][0] != 7 || exec.args[0][1] != "Ava" {
		t.Errorf("unexpected args: %v", exec.args[0])
	}
}

func TestCommitScoreRejectsNegativeDelta(t *testing.T) {
	exec := &fakeExecutor{}
	s := &PlayerService{gateway: exec}

	s.CommitScore("Ava", -1)

	if len(exec.queries) != 0 {
		t.Errorf("negative delta executed a statement: %v", exec.queries)
	}
}

func TestTopPlayers(t *testing.T) {
	exec := &fakeExecutor{allRows: []models.LeaderboardEntry{
		{Name: "Ava", TotalScore: 10},
		{Name: "Ben", TotalScore: 10},
		{Name: "Cal", TotalScore: 4},
	}}
	s := &PlayerService{gateway: exec}

	entries := s.TopPlayers(3)
	if len(entries) != 3 || entries[0].Name != "Ava" {
		t.Errorf("unexpected entries: %v", entries)
	}

	query := exec.lastQuery(t)
	if !strings.Contains(query, "ORDER BY total_score DESC, last_played ASC") {
		t.Errorf("leaderboard ordering missing: %s", query)
	}

	// Non-positive limits fall back to the default.
	s.TopPlayers(0)
	args := exec.args[len(exec.args)-1]
	if len(args) != 1 || args[0] != DefaultLeaderboardSize {
		t.Errorf("default limit not applied: %v", args)
	}
}

func TestTopPlayersUnavailable(t *testing.T) {
	exec := &fakeExecutor{unavailable: true}
	s := &PlayerService{gateway: exec}

	entries := s.TopPlayers(3)
	if entries == nil || len(entries) != 0 {
		t.Errorf("expected empty slice on unavailability, got %v", entries)
	}
}

func TestPruneStatement(t *testing.T) {
	exec := &fakeExecutor{}
	s := &PlayerService{gateway: exec}

	s.Prune(100)

	if len(exec.queries) != 1 {
		t.Fatalf("expected one set-based delete, got %d statements", len(exec.queries))
	}
	query := exec.lastQuery(t)
	if !strings.Contains(query, "DELETE FROM players") || !strings.Contains(query, "ORDER BY last_played DESC") {
		t.Errorf("prune statement wrong: %s", query)
	}
	if len(exec.args[0]) != 1 || exec.args[0][0] != 100 {
		t.Errorf("unexpected args: %v", exec.args[0])
	}

	s.Prune(0)
	if len(exec.queries) != 1 {
		t.Errorf("non-positive cap executed a statement")
	}
}
