package handler

import (
	"net/http"

	"github.com/debugden/api/internal/application/answer"
	"github.com/debugden/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// AnswerHandler handles answer endpoints.
type AnswerHandler struct {
	svc answer.Service
}

func NewAnswerHandler(svc answer.Service) *AnswerHandler {
	return &AnswerHandler{svc: svc}
}

// ToggleLike flips the caller's like on an answer and returns the updated answer.
func (h *AnswerHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	view, err := h.svc.ToggleLike(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
