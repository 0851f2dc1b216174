// ABOUTME: Admin question editor handlers
// ABOUTME: Validates forms locally, resequences answer order, and supports bulk add

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/quizforge/quiz-gateway/models"
)

// buildQuestion turns a validated form into the upstream payload. Answer
// order is resequenced 1..n so gaps left by the editor never reach the
// upstream.
func buildQuestion(quizID, order int, form models.QuestionForm) models.Question {
	answers := make([]models.Answer, 0, len(form.Reponses))
	for i, a := range form.Reponses {
		answers = append(answers, models.Answer{
			Texte:       a.Texte,
			EstCorrecte: a.EstCorrecte,
			NumeroOrdre: i + 1,
		})
	}
	return models.Question{
		Texte:         form.Texte,
		NumeroOrdre:   order,
		Questionnaire: quizID,
		Reponses:      answers,
	}
}

// CreateQuestion appends one question to a quiz.
func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, ok := h.pathInt(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		models.QuestionForm
		NumeroOrdre int `json:"numeroOrdre"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}
	if violations := h.forms.Check(req.QuestionForm); violations != nil {
		h.writeViolations(w, violations)
		return
	}

	question := buildQuestion(quizID, req.NumeroOrdre, req.QuestionForm)
	if err := h.quiz.CreateQuestion(r.Context(), h.identity(r).Token, question); err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// BulkCreateQuestions appends several questions in one request, in order.
// Each question is its own upstream call; a failure reports how far the batch
// got and leaves the earlier questions in place.
func (h *Handler) BulkCreateQuestions(w http.ResponseWriter, r *http.Request) {
	quizID, ok := h.pathInt(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		StartOrder int                   `json:"startOrder"`
		Questions  []models.QuestionForm `json:"questions"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}
	if len(req.Questions) == 0 {
		h.writeError(w, "Aucune question à ajouter", http.StatusBadRequest)
		return
	}
	if req.StartOrder < 1 {
		req.StartOrder = 1
	}

	for i, form := range req.Questions {
		if violations := h.forms.Check(form); violations != nil {
			h.writeViolations(w, violations)
			return
		}
		question := buildQuestion(quizID, req.StartOrder+i, form)
		if err := h.quiz.CreateQuestion(r.Context(), h.identity(r).Token, question); err != nil {
			slog.Warn("Bulk question add stopped", "quiz_id", quizID, "created", i, "error", err)
			h.writeJSON(w, http.StatusBadGateway, map[string]interface{}{
				"error":   "L'ajout s'est arrêté avant la fin.",
				"code":    http.StatusBadGateway,
				"created": i,
				"total":   len(req.Questions),
			})
			return
		}
	}

	slog.Info("Questions added", "quiz_id", quizID, "count", len(req.Questions))
	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"created": len(req.Questions),
	})
}

// UpdateQuestion replaces one question's text and answers.
func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, ok := h.pathInt(w, r, "id")
	if !ok {
		return
	}
	questionID, ok := h.pathInt(w, r, "questionId")
	if !ok {
		return
	}

	var req struct {
		models.QuestionForm
		NumeroOrdre int `json:"numeroOrdre"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}
	if violations := h.forms.Check(req.QuestionForm); violations != nil {
		h.writeViolations(w, violations)
		return
	}

	question := buildQuestion(quizID, req.NumeroOrdre, req.QuestionForm)
	question.ID = questionID
	if err := h.quiz.UpdateQuestion(r.Context(), h.identity(r).Token, questionID, question); err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteQuestion removes one question.
func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := h.pathInt(w, r, "questionId")
	if !ok {
		return
	}

	if err := h.quiz.DeleteQuestion(r.Context(), h.identity(r).Token, questionID); err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
