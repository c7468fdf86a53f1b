package services

import (
	"errors"
	"log"
	"strings"

	"mathquiz/models"
)

const (
	// DefaultQuestionCount is the fixed length of a quiz session.
	DefaultQuestionCount = 10

	// maxRetainedPlayers caps the players table; everything beyond the
	// most recently active maxRetainedPlayers rows is pruned after each
	// score commit.
	maxRetainedPlayers = 100
)

var (
	ErrNameRequired    = errors.New("player name required")
	ErrNoSession       = errors.New("no active session")
	ErrSessionComplete = errors.New("session already completed")
)

// PlayerStore is the persistence surface the session machine drives.
// Implementations are fail-open, so none of these return errors.
type PlayerStore interface {
	EnsurePlayer(name string)
	GetScore(name string) (int, bool)
	CommitScore(name string, delta int)
	Prune(maxPlayers int)
	TopPlayers(limit int) []models.LeaderboardEntry
}

// SessionService sequences a player through a quiz: start, one answer at
// a time, completion. It owns the one rule the persistence layer depends
// on: the accumulated score is committed exactly once, on the transition
// into the completed state.
type SessionService struct {
	players       PlayerStore
	quiz          *QuizService
	store         SessionStore
	questionCount int
}

func NewSessionService(players PlayerStore, quiz *QuizService, store SessionStore) *SessionService {
	return &SessionService{
		players:       players,
		quiz:          quiz,
		store:         store,
		questionCount: DefaultQuestionCount,
	}
}

// Start begins a fresh session for name, generating a new question
// sequence and making sure a player record exists. Starting over an
// existing session simply replaces it.
func (s *SessionService) Start(name string) (*models.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	session := &models.Session{
		Name:      name,
		Questions: s.quiz.GenerateQuestions(s.questionCount),
	}

	s.players.EnsurePlayer(name)

	if err := s.store.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit grades the answer for the session's current question and
// advances the index by exactly one, correct or not. When the last
// question is answered the running count becomes the final score, the
// question sequence is cleared, and the score is committed followed by a
// retention prune. Answers submitted after completion are rejected with
// ErrSessionComplete and change nothing.
func (s *SessionService) Submit(name, answer string) (*models.Session, error) {
	session, err := s.store.Get(name)
	if err != nil || session == nil {
		return nil, ErrNoSession
	}
	if session.Completed() {
		return session, ErrSessionComplete
	}

	feedback := s.quiz.Grade(session.Questions[session.CurrentIndex], answer)
	if feedback.Correct {
		session.SessionScore++
	}
	session.Feedback = &feedback
	session.CurrentIndex++

	if session.CurrentIndex >= len(session.Questions) {
		session.FinalScore = session.SessionScore
		session.Questions = nil
		s.players.CommitScore(session.Name, session.FinalScore)
		s.players.Prune(maxRetainedPlayers)
	}

	if err := s.store.Save(session); err != nil {
		log.Printf("Failed to save session for %s: %v", name, err)
	}
	return session, nil
}

// Get returns the current session for name without touching persistence,
// so re-reading a completed session never re-commits its score.
func (s *SessionService) Get(name string) (*models.Session, error) {
	session, err := s.store.Get(name)
	if err != nil || session == nil {
		return nil, ErrNoSession
	}
	return session, nil
}

// End discards the session for name.
func (s *SessionService) End(name string) error {
	return s.store.Delete(name)
}

// TotalScore returns the player's persisted cumulative score, zero when
// the player is unknown or the database is unavailable.
func (s *SessionService) TotalScore(name string) int {
	score, _ := s.players.GetScore(name)
	return score
}

// Leaderboard returns the current top players.
func (s *SessionService) Leaderboard(limit int) []models.LeaderboardEntry {
	return s.players.TopPlayers(limit)
}
