// ABOUTME: Admin results handlers
// ABOUTME: Participant attempts per quiz plus aggregate metrics computed gateway-side

package handlers

import (
	"math"
	"net/http"

	"github.com/quizforge/quiz-gateway/models"
)

// successThreshold is the percentage counted as a success in the metrics,
// matching the authoring default pass score.
const successThreshold = 70

// QuizResults returns every attempt on one quiz together with the aggregate
// metrics the results page shows.
func (h *Handler) QuizResults(w http.ResponseWriter, r *http.Request) {
	quizID, ok := h.pathInt(w, r, "id")
	if !ok {
		return
	}

	attempts, err := h.quiz.QuizAttempts(r.Context(), h.identity(r).Token, quizID)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"attempts": attempts,
		"metrics":  computeMetrics(attempts),
	})
}

// StudentAttemptDetail returns one participant's answer review.
func (h *Handler) StudentAttemptDetail(w http.ResponseWriter, r *http.Request) {
	quizID, ok := h.pathInt(w, r, "id")
	if !ok {
		return
	}
	attemptID, ok := h.pathInt(w, r, "attemptId")
	if !ok {
		return
	}

	details, err := h.quiz.StudentAttemptDetail(r.Context(), h.identity(r).Token, quizID, attemptID)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, details)
}

// computeMetrics aggregates attempt percentages. Distinct participants are
// counted by name pair since participants have no account.
func computeMetrics(attempts []models.AdminAttempt) models.QuizMetrics {
	if len(attempts) == 0 {
		return models.QuizMetrics{}
	}

	participants := make(map[string]bool)
	sum := 0
	best := attempts[0].Percentage
	lowest := attempts[0].Percentage
	successes := 0

	for _, a := range attempts {
		participants[a.FirstName+"\x00"+a.LastName] = true
		sum += a.Percentage
		if a.Percentage > best {
			best = a.Percentage
		}
		if a.Percentage < lowest {
			lowest = a.Percentage
		}
		if a.Percentage >= successThreshold {
			successes++
		}
	}

	n := float64(len(attempts))
	return models.QuizMetrics{
		TotalStudents: len(participants),
		AverageScore:  int(math.Round(float64(sum) / n)),
		BestScore:     best,
		LowestScore:   lowest,
		SuccessRate:   int(math.Round(float64(successes) / n * 100)),
		Attempts:      len(attempts),
	}
}
