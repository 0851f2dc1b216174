// ABOUTME: Student history handlers
// ABOUTME: Past attempts for the logged-in student, list and per-attempt review

package handlers

import "net/http"

// History lists the student's past attempts, newest first as served upstream.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.quiz.History(r.Context(), h.identity(r).Token)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, attempts)
}

// HistoryDetail returns the per-question review of one past attempt.
func (h *Handler) HistoryDetail(w http.ResponseWriter, r *http.Request) {
	attemptID, ok := h.pathInt(w, r, "attemptId")
	if !ok {
		return
	}

	details, err := h.quiz.HistoryDetail(r.Context(), h.identity(r).Token, attemptID)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, details)
}
