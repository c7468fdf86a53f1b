package handlers

import (
	"errors"
	"net/http"

	"mathquiz/middleware"
	"mathquiz/models"
	"mathquiz/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessions *services.SessionService
	hub      *services.Hub
	secret   string
}

func NewSessionHandler(sessions *services.SessionService, hub *services.Hub, secret string) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		hub:      hub,
		secret:   secret,
	}
}

type StartSessionRequest struct {
	Name string `json:"name" binding:"required"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// questionView is the question as shown to the player, answer withheld.
type questionView struct {
	A  int    `json:"a"`
	B  int    `json:"b"`
	Op string `json:"op"`
}

func (h *SessionHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessions.Start(req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := middleware.IssueSessionToken(h.secret, session.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}
	c.SetCookie(middleware.SessionCookie, token, 7200, "/", "", false, true)

	c.JSON(http.StatusCreated, h.sessionView(session))
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	name := c.GetString("player_name")

	session, err := h.sessions.Get(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active session"})
		return
	}

	c.JSON(http.StatusOK, h.sessionView(session))
}

func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	name := c.GetString("player_name")

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessions.Submit(name, req.Answer)
	if err != nil {
		if errors.Is(err, services.ErrSessionComplete) {
			c.JSON(http.StatusConflict, gin.H{"error": "Session already completed"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "No active session"})
		return
	}

	// A successful submit that lands on a completed session just crossed
	// the finish line: the score was committed, so the leaderboard moved.
	if session.Completed() && h.hub != nil {
		h.hub.BroadcastLeaderboard(h.sessions.Leaderboard(services.DefaultLeaderboardSize))
	}

	c.JSON(http.StatusOK, h.sessionView(session))
}

func (h *SessionHandler) EndSession(c *gin.Context) {
	name := c.GetString("player_name")

	if err := h.sessions.End(name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"message": "Session ended"})
}

func (h *SessionHandler) sessionView(session *models.Session) gin.H {
	view := gin.H{
		"name":        session.Name,
		"completed":   session.Completed(),
		"total_score": h.sessions.TotalScore(session.Name),
	}

	if session.Feedback != nil {
		view["feedback"] = session.Feedback
	}

	if session.Completed() {
		view["final_score"] = session.FinalScore
		return view
	}

	question := session.Current()
	view["question"] = questionView{A: question.A, B: question.B, Op: question.Op}
	view["progress"] = session.CurrentIndex + 1
	view["question_count"] = len(session.Questions)
	return view
}
