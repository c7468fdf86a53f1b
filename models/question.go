package models

const (
	OpAdd      = "+"
	OpSubtract = "-"
)

// Question is a transient arithmetic problem. For subtraction the
// operands are ordered A >= B at generation time, so Answer is never
// negative.
type Question struct {
	A      int    `json:"a"`
	B      int    `json:"b"`
	Op     string `json:"op"`
	Answer int    `json:"answer"`
}

// Feedback is the graded result of one answer. Expected carries the
// correct answer so renderers can phrase the miss however they like.
type Feedback struct {
	Correct  bool `json:"correct"`
	Expected int  `json:"expected"`
}
