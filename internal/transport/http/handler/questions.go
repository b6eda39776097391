package handler

import (
	"encoding/json"
	"net/http"

	"github.com/debugden/api/internal/application/question"
	"github.com/debugden/api/internal/domain"
	"github.com/debugden/api/internal/pkg/validate"
	"github.com/debugden/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// QuestionHandler handles question CRUD, answering and voting endpoints.
type QuestionHandler struct {
	svc question.Service
}

func NewQuestionHandler(svc question.Service) *QuestionHandler {
	return &QuestionHandler{svc: svc}
}

func (h *QuestionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.AskQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q, err := h.svc.Ask(r.Context(), claims.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Success  bool             `json:"success"`
		Message  string           `json:"message"`
		Question *domain.Question `json:"question"`
	}{true, "question posted successfully", q})
}

// List returns every question newest-first, with the caller's own vote state
// attached to each.
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	views, err := h.svc.List(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// Get serves a single question. Unlike List it requires no token, so shared
// question links work for anonymous visitors.
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *QuestionHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.AddAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.svc.AddAnswer(r.Context(), chi.URLParam(r, "id"), claims.UserID, req.Text)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Success bool               `json:"success"`
		Message string             `json:"message"`
		Comment *domain.AnswerView `json:"comment"`
	}{true, "comment added successfully", view})
}

func (h *QuestionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	direction := domain.VoteUp
	if req.Type == "downvote" {
		direction = domain.VoteDown
	}
	view, err := h.svc.Vote(r.Context(), chi.URLParam(r, "id"), claims.UserID, direction)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Delete removes a question and its answers. Admin only; routed behind
// middleware.RequireRole.
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "question deleted"})
}
