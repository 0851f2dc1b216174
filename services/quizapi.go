// ABOUTME: Upstream quiz client: questionnaire/question CRUD, code lookup, attempts
// ABOUTME: Tolerant of optional fields and legacy collection shapes via gjson

package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/quizforge/quiz-gateway/models"
)

// QuizClient wraps every upstream quiz, question, and attempt endpoint the
// gateway forwards to. One instance is shared; it holds no per-user state.
type QuizClient struct {
	api *apiClient
}

func NewQuizClient(baseURL string, timeout time.Duration) *QuizClient {
	return &QuizClient{api: newAPIClient(baseURL, timeout)}
}

// ListQuizzes returns all questionnaires owned by the authenticated admin.
func (c *QuizClient) ListQuizzes(ctx context.Context, token string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := c.api.doJSON(ctx, http.MethodGet, "/api/questionnaires", token, nil, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// CreateQuiz creates a questionnaire and returns the server copy, including
// the generated access code.
func (c *QuizClient) CreateQuiz(ctx context.Context, token string, payload models.QuizPayload) (*models.Quiz, error) {
	var created models.Quiz
	if err := c.api.doJSON(ctx, http.MethodPost, "/api/questionnaires", token, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SetQuizActive flips the active flag. Last write wins; there is no
// optimistic concurrency control.
func (c *QuizClient) SetQuizActive(ctx context.Context, token string, quizID int, active bool) error {
	body := map[string]bool{"estActif": active}
	return c.api.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/questionnaires/%d", quizID), token, body, nil)
}

// DeleteQuiz removes a questionnaire and everything under it.
func (c *QuizClient) DeleteQuiz(ctx context.Context, token string, quizID int) error {
	return c.api.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/questionnaires/%d", quizID), token, nil, nil)
}

// QuizWithQuestions fetches the admin editing view of one quiz.
func (c *QuizClient) QuizWithQuestions(ctx context.Context, token string, quizID int) (*models.QuizWithQuestions, error) {
	var quiz models.QuizWithQuestions
	if err := c.api.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/quizzes/%d", quizID), token, nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// CreateQuestion adds one question to a quiz.
func (c *QuizClient) CreateQuestion(ctx context.Context, token string, question models.Question) error {
	return c.api.doJSON(ctx, http.MethodPost, "/api/questions", token, question, nil)
}

// UpdateQuestion replaces a question and its answers.
func (c *QuizClient) UpdateQuestion(ctx context.Context, token string, questionID int, question models.Question) error {
	return c.api.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/questions/%d", questionID), token, question, nil)
}

// DeleteQuestion removes one question.
func (c *QuizClient) DeleteQuestion(ctx context.Context, token string, questionID int) error {
	return c.api.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/questions/%d", questionID), token, nil, nil)
}

// QuizByCode resolves an access code to its quiz. Codes are matched
// upper-case by the upstream.
func (c *QuizClient) QuizByCode(ctx context.Context, token, code string) (*models.Quiz, error) {
	var quiz models.Quiz
	path := "/api/quizzes/play/code/" + url.PathEscape(code)
	if err := c.api.doJSON(ctx, http.MethodGet, path, token, nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// PublicQuiz fetches the participant-facing quiz definition.
func (c *QuizClient) PublicQuiz(ctx context.Context, quizID int) (*models.PublicQuiz, error) {
	var quiz models.PublicQuiz
	if err := c.api.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/public/questionnaires/%d", quizID), "", nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// SubmitOutcome is the scored submission response. Every field besides
// TentativeID is optional upstream; absent fields stay at their zero value
// and HasScore distinguishes "score 0" from "no score".
type SubmitOutcome struct {
	TentativeID    int
	HasScore       bool
	Score          int
	BonnesReponses int
	TotalQuestions int
}

// SubmitAttempt posts a completed attempt. The response shape has drifted
// across backend versions, so the fields are read individually rather than
// through a struct.
func (c *QuizClient) SubmitAttempt(ctx context.Context, quizID int, req models.SubmitRequest) (*SubmitOutcome, error) {
	data, err := c.api.do(ctx, http.MethodPost, fmt.Sprintf("/api/public/questionnaires/%d/submit", quizID), "", req)
	if err != nil {
		return nil, err
	}

	outcome := &SubmitOutcome{
		TentativeID:    int(gjson.GetBytes(data, "tentativeId").Int()),
		BonnesReponses: int(gjson.GetBytes(data, "bonnesReponses").Int()),
		TotalQuestions: int(gjson.GetBytes(data, "totalQuestions").Int()),
	}
	if score := gjson.GetBytes(data, "score"); score.Exists() && score.Type == gjson.Number {
		outcome.HasScore = true
		outcome.Score = int(score.Int())
	}
	return outcome, nil
}

// ResultDetail is the review of one scored attempt.
type ResultDetail struct {
	Score          int                          `json:"score"`
	TotalQuestions int                          `json:"totalQuestions"`
	Percentage     int                          `json:"percentage"`
	Details        []models.AttemptAnswerDetail `json:"details"`
}

// AttemptResult fetches one attempt by its tentative id.
func (c *QuizClient) AttemptResult(ctx context.Context, tentativeID int) (*ResultDetail, error) {
	data, err := c.api.do(ctx, http.MethodGet, fmt.Sprintf("/api/public/questionnaires/tentative/%d", tentativeID), "", nil)
	if err != nil {
		return nil, err
	}

	result := &ResultDetail{
		Score:          int(gjson.GetBytes(data, "score").Int()),
		TotalQuestions: int(gjson.GetBytes(data, "nombreTotalQuestions").Int()),
		Details:        parseAnswerDetails(gjson.GetBytes(data, "reponsesDetails")),
	}
	if result.TotalQuestions == 0 {
		result.TotalQuestions = int(gjson.GetBytes(data, "totalQuestions").Int())
	}
	result.Percentage = derivePercentage(data, result.Score, result.TotalQuestions)
	return result, nil
}

// History returns the authenticated student's past attempts. Older backend
// versions wrap the list in a Hydra collection; both shapes are read but the
// plain array is the contract.
func (c *QuizClient) History(ctx context.Context, token string) ([]models.HistoryAttempt, error) {
	data, err := c.api.do(ctx, http.MethodGet, "/api/quizzes/history", token, nil)
	if err != nil {
		return nil, err
	}

	items := collectionItems(data)
	attempts := make([]models.HistoryAttempt, 0, len(items))
	for _, item := range items {
		attempts = append(attempts, models.HistoryAttempt{
			ID:             int(item.Get("id").Int()),
			QuizTitle:      item.Get("questionnaireTitre").String(),
			QuizCode:       item.Get("questionnaireCode").String(),
			Date:           item.Get("date").String(),
			Time:           item.Get("heure").String(),
			Score:          int(item.Get("score").Int()),
			TotalQuestions: int(item.Get("nombreTotalQuestions").Int()),
			Percentage:     firstInt(item, "pourcentage", "percentage"),
			IsPassed:       item.Get("estReussi").Bool() || item.Get("isPassed").Bool(),
		})
	}
	return attempts, nil
}

// HistoryDetail returns the per-question review of one history entry.
func (c *QuizClient) HistoryDetail(ctx context.Context, token string, attemptID int) ([]models.AttemptAnswerDetail, error) {
	data, err := c.api.do(ctx, http.MethodGet, fmt.Sprintf("/api/quizzes/history/%d", attemptID), token, nil)
	if err != nil {
		return nil, err
	}
	return parseAnswerDetails(gjson.GetBytes(data, "reponsesDetails")), nil
}

// QuizAttempts lists every participant attempt for one quiz (admin view).
// Percentage is derived from score/total when the upstream omits it.
func (c *QuizClient) QuizAttempts(ctx context.Context, token string, quizID int) ([]models.AdminAttempt, error) {
	data, err := c.api.do(ctx, http.MethodGet, fmt.Sprintf("/api/quizzes/%d/attempts", quizID), token, nil)
	if err != nil {
		return nil, err
	}

	items := collectionItems(data)
	attempts := make([]models.AdminAttempt, 0, len(items))
	for _, item := range items {
		score := int(item.Get("score").Int())
		total := int(item.Get("nombreTotalQuestions").Int())
		percentage := firstInt(item, "pourcentage", "percentage")
		if percentage == 0 && total > 0 {
			percentage = int(math.Round(float64(score) / float64(total) * 100))
		}
		attempts = append(attempts, models.AdminAttempt{
			ID:             int(item.Get("id").Int()),
			FirstName:      item.Get("prenomParticipant").String(),
			LastName:       item.Get("nomParticipant").String(),
			Date:           item.Get("dateDebut").String(),
			Score:          score,
			TotalQuestions: total,
			Percentage:     percentage,
		})
	}
	return attempts, nil
}

// StudentAttemptDetail returns one participant's answer review for a quiz.
func (c *QuizClient) StudentAttemptDetail(ctx context.Context, token string, quizID, attemptID int) ([]models.AttemptAnswerDetail, error) {
	data, err := c.api.do(ctx, http.MethodGet, fmt.Sprintf("/api/quizzes/%d/attempts/%d", quizID, attemptID), token, nil)
	if err != nil {
		return nil, err
	}

	details := gjson.GetBytes(data, "reponsesDetails")
	if !details.Exists() {
		details = gjson.ParseBytes(data)
	}
	return parseAnswerDetails(details), nil
}

// collectionItems unwraps a list payload that may be a plain array, a Hydra
// collection (hydra:member), or the newer member key.
func collectionItems(data []byte) []gjson.Result {
	parsed := gjson.ParseBytes(data)
	if parsed.IsArray() {
		return parsed.Array()
	}
	for _, key := range []string{"hydra\\:member", "member"} {
		if member := parsed.Get(key); member.IsArray() {
			return member.Array()
		}
	}
	return nil
}

// parseAnswerDetails reads a list of per-question review lines, tolerating
// string-typed question ids from older backends.
func parseAnswerDetails(details gjson.Result) []models.AttemptAnswerDetail {
	if !details.IsArray() {
		return nil
	}
	items := details.Array()
	out := make([]models.AttemptAnswerDetail, 0, len(items))
	for _, item := range items {
		out = append(out, models.AttemptAnswerDetail{
			QuestionID:    int(item.Get("questionId").Int()),
			QuestionText:  item.Get("questionTexte").String(),
			UserAnswer:    item.Get("reponseUtilisateurTexte").String(),
			CorrectAnswer: item.Get("reponseCorrecteTexte").String(),
			IsCorrect:     item.Get("estCorrecte").Bool(),
		})
	}
	return out
}

// firstInt returns the first present numeric field among keys.
func firstInt(item gjson.Result, keys ...string) int {
	for _, key := range keys {
		if v := item.Get(key); v.Exists() && v.Type == gjson.Number {
			return int(v.Int())
		}
	}
	return 0
}

// derivePercentage prefers an explicit upstream percentage and otherwise
// computes one, guarding against a zero question count.
func derivePercentage(data []byte, score, total int) int {
	if v := gjson.GetBytes(data, "pourcentage"); v.Exists() && v.Type == gjson.Number {
		return int(v.Int())
	}
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
