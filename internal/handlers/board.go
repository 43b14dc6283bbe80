package handlers

import (
	"AptInspect/internal/middleware"
	"AptInspect/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BoardHandler обрабатывает клиентскую доску.
type BoardHandler struct {
	BoardService *service.BoardService
	Logger       *zap.SugaredLogger
}

// NewBoardHandler создаёт хендлер доски
func NewBoardHandler(boardService *service.BoardService, logger *zap.SugaredLogger) *BoardHandler {
	return &BoardHandler{BoardService: boardService, Logger: logger}
}

type publishRequest struct {
	ReportID string `json:"report_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// Publish публикует отчёт на доску
func (h *BoardHandler) Publish(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Publish: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	entry, err := h.BoardService.Publish(r.Context(), req.ReportID, req.Title, req.Content)
	switch {
	case errors.Is(err, service.ErrInvalidBoardEntry):
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrReportNotFound):
		http.Error(w, "report not found", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrBoardDuplicate):
		http.Error(w, "report already published", http.StatusConflict)
		return
	case err != nil:
		h.Logger.Errorw("Publish: service error", "report_id", req.ReportID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(entry)
}

// List отдаёт все записи доски с адресами отчётов
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.BoardService.List(r.Context())
	if err != nil {
		h.Logger.Errorw("List board: service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items)
}

type toggleStatusRequest struct {
	CurrentStatus string `json:"current_status"`
}

// ToggleStatus переключает статус записи доски
func (h *BoardHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	var req toggleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	next, err := h.BoardService.ToggleStatus(r.Context(), entryID, req.CurrentStatus)
	if err != nil {
		h.Logger.Errorw("ToggleStatus: service error", "entry_id", entryID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": next})
}

// Remove снимает запись с доски
func (h *BoardHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	if err := h.BoardService.Remove(r.Context(), entryID); err != nil {
		h.Logger.Errorw("Remove board entry: service error", "entry_id", entryID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
