// ABOUTME: Admin quiz CRUD handlers
// ABOUTME: Create applies the authoring defaults; toggle and delete mutate one quiz at a time

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/quizforge/quiz-gateway/models"
)

// New quizzes start active but not started, with the default pass threshold.
const defaultScorePassage = 70

// pathInt reads a numeric path segment, replying 400 itself when it is not a
// number.
func (h *Handler) pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		h.writeError(w, "Identifiant invalide", http.StatusBadRequest)
		return 0, false
	}
	return value, true
}

// ListQuizzes returns every quiz the admin owns.
func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quiz.ListQuizzes(r.Context(), h.identity(r).Token)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, quizzes)
}

// CreateQuiz creates a quiz with the authoring defaults.
func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuizRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if violations := h.forms.Check(req); violations != nil {
		h.writeViolations(w, violations)
		return
	}

	quiz, err := h.quiz.CreateQuiz(r.Context(), h.identity(r).Token, models.QuizPayload{
		Title:        req.Title,
		Description:  req.Description,
		EstActif:     true,
		EstDemarre:   false,
		ScorePassage: defaultScorePassage,
	})
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	slog.Info("Quiz created", "quiz_id", quiz.ID, "title", quiz.Title)
	h.writeJSON(w, http.StatusCreated, quiz)
}

// ToggleQuiz flips or sets the active flag. The desired state comes from the
// body so repeating the request is harmless.
func (h *Handler) ToggleQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := h.pathInt(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		IsActive bool `json:"isActive"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}

	if err := h.quiz.SetQuizActive(r.Context(), h.identity(r).Token, quizID, req.IsActive); err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       quizID,
		"isActive": req.IsActive,
	})
}

// DeleteQuiz removes a quiz. On upstream failure nothing is removed and the
// error surfaces as-is; the list the admin sees stays intact.
func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := h.pathInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.quiz.DeleteQuiz(r.Context(), h.identity(r).Token, quizID); err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	slog.Info("Quiz deleted", "quiz_id", quizID)
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// QuizDetail returns one quiz with its questions for the editor.
func (h *Handler) QuizDetail(w http.ResponseWriter, r *http.Request) {
	quizID, ok := h.pathInt(w, r, "id")
	if !ok {
		return
	}

	quiz, err := h.quiz.QuizWithQuestions(r.Context(), h.identity(r).Token, quizID)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, quiz)
}
