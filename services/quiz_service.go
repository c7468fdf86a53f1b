package services

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"mathquiz/models"
)

// maxOperand bounds both operands of a generated question.
const maxOperand = 999

// QuizService generates and grades arithmetic questions. It does no I/O;
// the random source is injected so tests can pin the question sequence.
type QuizService struct {
	rng *rand.Rand
}

// NewQuizService builds a quiz engine around src. A nil src gets a
// time-seeded source.
func NewQuizService(src rand.Source) *QuizService {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &QuizService{rng: rand.New(src)}
}

// GenerateQuestions produces count independently drawn questions, each
// operator chosen uniformly between addition and subtraction, operands
// uniform in [0, maxOperand]. Subtraction operands are swapped when
// needed so the answer is never negative.
func (s *QuizService) GenerateQuestions(count int) []models.Question {
	questions := make([]models.Question, 0, count)
	for i := 0; i < count; i++ {
		op := models.OpAdd
		if s.rng.Intn(2) == 1 {
			op = models.OpSubtract
		}

		a := s.rng.Intn(maxOperand + 1)
		b := s.rng.Intn(maxOperand + 1)

		var answer int
		if op == models.OpAdd {
			answer = a + b
		} else {
			if b > a {
				a, b = b, a
			}
			answer = a - b
		}

		questions = append(questions, models.Question{A: a, B: b, Op: op, Answer: answer})
	}
	return questions
}

// Grade checks a submitted answer against the question. Input that does
// not parse as an integer is simply wrong, never an error.
func (s *QuizService) Grade(question models.Question, answer string) models.Feedback {
	feedback := models.Feedback{Expected: question.Answer}

	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err == nil && n == question.Answer {
		feedback.Correct = true
	}
	return feedback
}
