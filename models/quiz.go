// ABOUTME: Quiz, question, and answer models mirroring the upstream REST contract
// ABOUTME: Upstream field names are French (texte, estCorrecte, numeroOrdre) and kept as-is on the wire

package models

// Quiz as served by the upstream questionnaire endpoints. All ids are
// server-assigned; the gateway never mints one.
type Quiz struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	AccessCode   string `json:"accessCode"`
	UniqueCode   string `json:"uniqueCode,omitempty"`
	IsActive     bool   `json:"isActive"`
	IsStarted    bool   `json:"isStarted"`
	ScorePassage *int   `json:"scorePassage,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// CreateQuizRequest is what the browser submits to create a quiz.
type CreateQuizRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// QuizPayload is the upstream create/update body.
type QuizPayload struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	EstActif     bool   `json:"estActif"`
	EstDemarre   bool   `json:"estDemarre"`
	ScorePassage int    `json:"scorePassage"`
}

// Answer nested under a question.
type Answer struct {
	ID          int    `json:"id,omitempty"`
	Texte       string `json:"texte"`
	EstCorrecte bool   `json:"estCorrecte"`
	NumeroOrdre int    `json:"numeroOrdre"`
}

// Question as managed by administrators.
type Question struct {
	ID            int      `json:"id,omitempty"`
	Texte         string   `json:"texte"`
	NumeroOrdre   int      `json:"numeroOrdre"`
	Questionnaire int      `json:"questionnaire"`
	Reponses      []Answer `json:"reponses"`
}

// QuizWithQuestions is the admin view of one quiz and its question list.
type QuizWithQuestions struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	AccessCode string     `json:"accessCode"`
	Questions  []Question `json:"questions"`
}

// PublicAnswer is an answer as shown to a participant. Correctness is never
// exposed on the public payload.
type PublicAnswer struct {
	ID          int    `json:"id"`
	Texte       string `json:"texte"`
	NumeroOrdre int    `json:"numeroOrdre"`
}

// PublicQuestion is a question as presented during an attempt.
type PublicQuestion struct {
	ID               int            `json:"id"`
	Texte            string         `json:"texte"`
	NumeroOrdre      int            `json:"numeroOrdre"`
	IsMultipleChoice bool           `json:"isMultipleChoice"`
	Reponses         []PublicAnswer `json:"reponses"`
}

// PublicQuiz is the quiz definition fetched when an attempt starts.
type PublicQuiz struct {
	ID           int              `json:"id"`
	Title        string           `json:"title"`
	ScorePassage *int             `json:"scorePassage,omitempty"`
	Questions    []PublicQuestion `json:"questions"`
}

// QuestionForm is the browser-side question editor payload, validated before
// any upstream call.
type QuestionForm struct {
	Texte    string       `json:"texte" validate:"required,endsquestion"`
	Reponses []AnswerForm `json:"reponses" validate:"min=2,dive"`
}

// AnswerForm is one editable answer row.
type AnswerForm struct {
	Texte       string `json:"texte" validate:"required"`
	EstCorrecte bool   `json:"estCorrecte"`
}
