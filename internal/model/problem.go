package model

// Problem is a generated puzzle handed to the client. It is not persisted.
// swagger:model Problem
type Problem struct {
	ID      string `json:"problemId"`
	Target  int    `json:"target"`
	Options []int  `json:"options"`
}

// AnswerSubmission carries the options a player picked. CorrectAnswer is
// the target the client was shown.
// swagger:model AnswerSubmission
type AnswerSubmission struct {
	ProblemID     string `json:"problemId"`
	UserAnswer    []int  `json:"userAnswer" binding:"required"`
	CorrectAnswer int    `json:"correctAnswer"`
	UserID        string `json:"userId"`
}

// swagger:model AnswerResponse
type AnswerResponse struct {
	Correct bool   `json:"correct"`
	User    *User  `json:"user"`
	Message string `json:"message"`
}

const (
	CorrectAnswerMessage = "Correct! Keep up the good work!"
	WrongAnswerMessage   = "Not quite right. Try again!"
)
