package models

// Session is one player's pass through a fixed sequence of questions.
// It lives in the session store (Redis or memory), keyed by player name,
// serialized as JSON. A session is completed once CurrentIndex reaches
// the question count; Questions are cleared at that point and FinalScore
// holds the run's result.
type Session struct {
	Name         string     `json:"name"`
	Questions    []Question `json:"questions"`
	CurrentIndex int        `json:"current_index"`
	SessionScore int        `json:"session_score"`
	Feedback     *Feedback  `json:"feedback,omitempty"`
	FinalScore   int        `json:"final_score"`
}

// Completed reports whether the session has run out of questions. A
// freshly started session always has a non-empty question list, so an
// empty list marks a finished run.
func (s *Session) Completed() bool {
	return len(s.Questions) == 0 || s.CurrentIndex >= len(s.Questions)
}

// Current returns the question at the session's index, or nil once the
// session is completed.
func (s *Session) Current() *Question {
	if s.Completed() {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}
