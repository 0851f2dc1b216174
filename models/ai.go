// ABOUTME: Models for the upstream AI question-generation pass-through

package models

// AIAvailability reports whether the upstream AI integration is usable.
type AIAvailability struct {
	IsAvailable bool   `json:"isAvailable"`
	Message     string `json:"message,omitempty"`
}

// AIGenerateRequest asks the upstream to draft questions for a quiz.
type AIGenerateRequest struct {
	QuizID int    `json:"quizId" validate:"required"`
	Topic  string `json:"topic" validate:"required,max=200"`
	Count  int    `json:"count" validate:"min=1,max=20"`
}

// AIGeneratedQuestion is one drafted question before the admin accepts it.
type AIGeneratedQuestion struct {
	Question string              `json:"question"`
	Answers  []AIGeneratedAnswer `json:"answers"`
}

// AIGeneratedAnswer is one drafted answer option.
type AIGeneratedAnswer struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}
