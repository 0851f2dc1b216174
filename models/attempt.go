// ABOUTME: Attempt submission, result, and history models
// ABOUTME: Attempts are created server-side on submission; the gateway only reads or creates them

package models

// Participant identifies who is taking a quiz. Names are free-form; the
// account system is separate from quiz participation.
type Participant struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
}

// JoinRequest starts an attempt from an access code.
type JoinRequest struct {
	Participant
	AccessCode string `json:"accessCode" validate:"required"`
}

// SubmittedAnswer is one flattened selection pair. A multiple-choice question
// contributes one pair per selected answer.
type SubmittedAnswer struct {
	QuestionID int `json:"questionId"`
	ReponseID  int `json:"reponseId"`
}

// SubmitRequest is the upstream attempt-submission body.
type SubmitRequest struct {
	PrenomParticipant string            `json:"prenomParticipant"`
	NomParticipant    string            `json:"nomParticipant"`
	Reponses          []SubmittedAnswer `json:"reponses"`
}

// AttemptResult is the scored outcome shown after submission.
type AttemptResult struct {
	Score          int  `json:"score"`
	TotalQuestions int  `json:"totalQuestions"`
	Percentage     int  `json:"percentage"`
	Passed         bool `json:"passed"`
	TentativeID    int  `json:"tentativeId,omitempty"`
}

// HistoryAttempt is one row of a student's past attempts.
type HistoryAttempt struct {
	ID             int    `json:"id"`
	QuizTitle      string `json:"quizTitle"`
	QuizCode       string `json:"quizCode"`
	Date           string `json:"date"`
	Time           string `json:"time,omitempty"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	Percentage     int    `json:"percentage"`
	IsPassed       bool   `json:"isPassed"`
}

// AttemptAnswerDetail is one per-question line of an attempt review.
type AttemptAnswerDetail struct {
	QuestionID    int    `json:"questionId"`
	QuestionText  string `json:"questionText"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// AdminAttempt is one participant row on the admin results page.
type AdminAttempt struct {
	ID             int    `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Date           string `json:"date,omitempty"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	Percentage     int    `json:"percentage"`
}

// QuizMetrics aggregates attempt percentages for one quiz.
type QuizMetrics struct {
	TotalStudents int `json:"totalStudents"`
	AverageScore  int `json:"averageScore"`
	BestScore     int `json:"bestScore"`
	LowestScore   int `json:"lowestScore"`
	SuccessRate   int `json:"successRate"`
	Attempts      int `json:"attempts"`
}

// AdminMetrics is the dashboard summary.
type AdminMetrics struct {
	QuizzesCreated int `json:"quizzesCreated"`
	TotalAttempts  int `json:"totalAttempts"`
}
