// ABOUTME: Participant attempt handlers driving the question-by-question flow
// ABOUTME: Thin HTTP layer over the attempt state machine; flow errors map to French messages here

package handlers

import (
	"errors"
	"net/http"

	"github.com/quizforge/quiz-gateway/models"
	"github.com/quizforge/quiz-gateway/services"
)

// JoinAttempt starts an attempt from an access code and participant names.
func (h *Handler) JoinAttempt(w http.ResponseWriter, r *http.Request) {
	var req models.JoinRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if violations := h.forms.Check(req); violations != nil {
		h.writeViolations(w, violations)
		return
	}

	view, err := h.attempts.Start(r.Context(), req)
	if err != nil {
		h.writeAttemptError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, view)
}

// AttemptView returns the current question of a session.
func (h *Handler) AttemptView(w http.ResponseWriter, r *http.Request) {
	view, err := h.attempts.Get(r.PathValue("sessionId"))
	if err != nil {
		h.writeAttemptError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

// SelectAnswer records an answer choice on the current question.
func (h *Handler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReponseID int `json:"reponseId"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}

	view, err := h.attempts.Select(r.PathValue("sessionId"), req.ReponseID)
	if err != nil {
		h.writeAttemptError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

// PreviousQuestion steps back one question.
func (h *Handler) PreviousQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := h.attempts.Back(r.PathValue("sessionId"))
	if err != nil {
		h.writeAttemptError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

// NextQuestion advances or, after the last question, submits the attempt.
func (h *Handler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.attempts.Next(r.Context(), r.PathValue("sessionId"))
	if err != nil {
		h.writeAttemptError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, outcome)
}

// AttemptResult fetches a scored attempt's review by tentative id. Public:
// the result page is reachable from the confirmation link without an account.
func (h *Handler) AttemptResult(w http.ResponseWriter, r *http.Request) {
	tentativeID, ok := h.pathInt(w, r, "tentativeId")
	if !ok {
		return
	}

	result, err := h.quiz.AttemptResult(r.Context(), tentativeID)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// writeAttemptError maps attempt flow failures onto the error envelope.
func (h *Handler) writeAttemptError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		h.writeError(w, "Session introuvable ou expirée. Rejoignez le quiz à nouveau.", http.StatusNotFound)
	case errors.Is(err, services.ErrUnanswered):
		h.writeError(w, "Veuillez sélectionner une réponse avant de continuer.", http.StatusBadRequest)
	case errors.Is(err, services.ErrQuizInactive):
		h.writeError(w, "Ce quiz n'est pas actif actuellement.", http.StatusForbidden)
	case errors.Is(err, services.ErrNoQuestions):
		h.writeError(w, "Ce quiz ne contient aucune question.", http.StatusConflict)
	case services.StatusOf(err) == http.StatusNotFound:
		h.writeError(w, "Code d'accès invalide.", http.StatusNotFound)
	default:
		h.writeUpstreamError(w, err)
	}
}
