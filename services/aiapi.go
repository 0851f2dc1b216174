// ABOUTME: Pass-through client for the upstream AI question-generation endpoints

package services

import (
	"context"
	"net/http"
	"time"

	"github.com/quizforge/quiz-gateway/models"
)

// AIClient talks to the backend's AI endpoints. The gateway never contacts
// the model provider directly; availability and generation are both owned by
// the upstream.
type AIClient struct {
	api *apiClient
}

func NewAIClient(baseURL string, timeout time.Duration) *AIClient {
	return &AIClient{api: newAPIClient(baseURL, timeout)}
}

// CheckAvailability probes whether the upstream AI integration is usable.
func (c *AIClient) CheckAvailability(ctx context.Context, token string) (*models.AIAvailability, error) {
	var availability models.AIAvailability
	if err := c.api.doJSON(ctx, http.MethodGet, "/api/ai/check-availability", token, nil, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}

// GenerateQuestions asks the upstream to draft questions for review.
func (c *AIClient) GenerateQuestions(ctx context.Context, token string, req models.AIGenerateRequest) ([]models.AIGeneratedQuestion, error) {
	var resp struct {
		Questions []models.AIGeneratedQuestion `json:"questions"`
	}
	if err := c.api.doJSON(ctx, http.MethodPost, "/api/ai/generate-questions", token, req, &resp); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}
