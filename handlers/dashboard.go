// ABOUTME: Admin dashboard handler
// ABOUTME: Fans out one attempts call per quiz and aggregates the totals

package handlers

import (
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/quizforge/quiz-gateway/models"
)

// Dashboard summarises the admin's quizzes. Attempt counts are fetched
// concurrently, a few quizzes at a time; one failing quiz fails the whole
// summary rather than silently under-counting.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	token := h.identity(r).Token

	quizzes, err := h.quiz.ListQuizzes(r.Context(), token)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(4)

	var mu sync.Mutex
	totalAttempts := 0

	for _, quiz := range quizzes {
		quizID := quiz.ID
		g.Go(func() error {
			attempts, err := h.quiz.QuizAttempts(ctx, token, quizID)
			if err != nil {
				return err
			}
			mu.Lock()
			totalAttempts += len(attempts)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"metrics": models.AdminMetrics{
			QuizzesCreated: len(quizzes),
			TotalAttempts:  totalAttempts,
		},
		"quizzes": quizzes,
	})
}
