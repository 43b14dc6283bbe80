package handlers

import (
	"AptInspect/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CustomerHandler — клиентский просмотр отчёта. Маршруты без авторизации:
// ссылку с uuid отчёта клиент получает от сотрудника.
type CustomerHandler struct {
	CustomerService *service.CustomerService
	BoardService    *service.BoardService
	Logger          *zap.SugaredLogger
}

// NewCustomerHandler создаёт клиентский хендлер
func NewCustomerHandler(customerService *service.CustomerService, boardService *service.BoardService, logger *zap.SugaredLogger) *CustomerHandler {
	return &CustomerHandler{CustomerService: customerService, BoardService: boardService, Logger: logger}
}

// GetReport отдаёт клиентский отчёт. Счётчик просмотров на доске
// увеличивается, если отчёт там опубликован и запись активна.
func (h *CustomerHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	report, err := h.CustomerService.GetReport(r.Context(), reportID)
	if errors.Is(err, service.ErrReportNotFound) {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Errorw("GetReport: service error", "report_id", reportID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// Просмотр через доску — не обязательное условие: ошибки счётчика
	// не мешают отдать отчёт.
	if _, err := h.BoardService.View(r.Context(), reportID); err != nil &&
		!errors.Is(err, service.ErrBoardEntryNotFound) &&
		!errors.Is(err, service.ErrBoardInactive) {
		h.Logger.Warnw("GetReport: view counter failed", "report_id", reportID, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

// DownloadArchive отдаёт zip со всеми снимками отчёта. Вне окна
// доступности — отказ целиком, без частичного архива.
func (h *CustomerHandler) DownloadArchive(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	report, err := h.CustomerService.GetReport(r.Context(), reportID)
	if errors.Is(err, service.ErrReportNotFound) {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Errorw("DownloadArchive: service error", "report_id", reportID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", service.ArchiveFileName(report.Report)))

	err = h.CustomerService.BuildImageArchive(r.Context(), reportID, w)
	if errors.Is(err, service.ErrArchiveUnavailable) {
		// Заголовки ещё не ушли, только если архив отвергнут до записи.
		w.Header().Del("Content-Type")
		w.Header().Del("Content-Disposition")
		http.Error(w, "images are no longer available", http.StatusGone)
		return
	}
	if err != nil {
		h.Logger.Errorw("DownloadArchive: build failed", "report_id", reportID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
}
