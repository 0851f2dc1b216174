// ABOUTME: Tests for the results metrics aggregation
// ABOUTME: Distinct participants, average, extremes, and success rate

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quizforge/quiz-gateway/models"
)

func TestComputeMetrics(t *testing.T) {
	attempts := []models.AdminAttempt{
		{ID: 1, FirstName: "Alice", LastName: "Martin", Percentage: 80},
		{ID: 2, FirstName: "Bob", LastName: "Durand", Percentage: 40},
		{ID: 3, FirstName: "Alice", LastName: "Martin", Percentage: 90},
	}

	m := computeMetrics(attempts)

	if m.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", m.Attempts)
	}
	if m.TotalStudents != 2 {
		t.Errorf("expected 2 distinct participants, got %d", m.TotalStudents)
	}
	if m.AverageScore != 70 {
		t.Errorf("expected average 70, got %d", m.AverageScore)
	}
	if m.BestScore != 90 || m.LowestScore != 40 {
		t.Errorf("expected extremes 90/40, got %d/%d", m.BestScore, m.LowestScore)
	}
	// 2 of 3 attempts at or above 70.
	if m.SuccessRate != 67 {
		t.Errorf("expected success rate 67, got %d", m.SuccessRate)
	}
}

func TestComputeMetrics_Empty(t *testing.T) {
	m := computeMetrics(nil)
	if m != (models.QuizMetrics{}) {
		t.Errorf("expected zero metrics, got %+v", m)
	}
}

func TestQuizResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/quizzes/7/attempts" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "prenomParticipant": "Alice", "nomParticipant": "Martin", "score": 4, "nombreTotalQuestions": 5, "pourcentage": 80},
		})
	}))
	defer server.Close()
	h := newTestHandler(t, server.URL)

	r := asAdmin(httptest.NewRequest(http.MethodGet, "/api/v1/admin/quizzes/7/results", nil))
	r.SetPathValue("id", "7")
	w := httptest.NewRecorder()

	h.QuizResults(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Attempts []models.AdminAttempt `json:"attempts"`
		Metrics  models.QuizMetrics    `json:"metrics"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Attempts) != 1 || resp.Metrics.BestScore != 80 {
		t.Errorf("unexpected response: %+v", resp)
	}
}
