// ABOUTME: AI question-generation pass-through handlers
// ABOUTME: Availability is cached briefly so the authoring page doesn't probe on every render

package handlers

import (
	"net/http"
	"time"

	"github.com/quizforge/quiz-gateway/models"
)

const aiAvailabilityKey = "ai:availability"

// AIAvailability reports whether the upstream AI integration is usable.
// The probe result is cached per gateway, not per admin; availability is a
// deployment property, not an account one.
func (h *Handler) AIAvailability(w http.ResponseWriter, r *http.Request) {
	if cached, found := h.cache.Get(aiAvailabilityKey); found {
		h.writeJSON(w, http.StatusOK, cached)
		return
	}

	availability, err := h.ai.CheckAvailability(r.Context(), h.identity(r).Token)
	if err != nil {
		// An unreachable probe means unavailable, not an error page.
		h.writeJSON(w, http.StatusOK, models.AIAvailability{
			IsAvailable: false,
			Message:     "Génération IA indisponible pour le moment.",
		})
		return
	}

	h.cache.SetWithTTL(aiAvailabilityKey, *availability, time.Duration(h.cfg.AIProbeTTL)*time.Second)
	h.writeJSON(w, http.StatusOK, availability)
}

// GenerateQuestions relays a draft-generation request. Drafts come back for
// review; nothing is saved until the admin accepts them through the normal
// question endpoints.
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req models.AIGenerateRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if violations := h.forms.Check(req); violations != nil {
		h.writeViolations(w, violations)
		return
	}

	questions, err := h.ai.GenerateQuestions(r.Context(), h.identity(r).Token, req)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}
