package handlers

import (
	"AptInspect/internal/config"
	"AptInspect/internal/middleware"
	"AptInspect/internal/model"
	"AptInspect/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReportHandler обрабатывает создание отчётов и секции осмотра.
type ReportHandler struct {
	ReportService *service.ReportService
	Logger        *zap.SugaredLogger
	Config        *config.Config
}

// NewReportHandler создаёт хендлер отчётов
func NewReportHandler(reportService *service.ReportService, logger *zap.SugaredLogger, cfg *config.Config) *ReportHandler {
	return &ReportHandler{ReportService: reportService, Logger: logger, Config: cfg}
}

// Create создаёт отчёт по базовой информации
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var info service.BasicInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	report, err := h.ReportService.CreateReport(r.Context(), info, &userID)
	if errors.Is(err, service.ErrInvalidReport) {
		http.Error(w, "apt_name, dong and ho are required", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Logger.Errorw("Create: service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(report)
}

// List отдаёт отчёты: администратору все, сотруднику — его собственные
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	reports, err := h.ReportService.ListReports(r.Context(), userID, role)
	if err != nil {
		h.Logger.Errorw("List: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reports)
}

// Get отдаёт базовую информацию отчёта
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	report, err := h.ReportService.GetReport(r.Context(), chi.URLParam(r, "reportID"))
	if errors.Is(err, service.ErrReportNotFound) {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Errorw("Get: service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

// Delete удаляет отчёт со всем содержимым. Только администратор.
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if role, _ := middleware.GetRoleFromContext(r.Context()); role != model.RoleAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	reportID := chi.URLParam(r, "reportID")
	err := h.ReportService.DeleteReport(r.Context(), reportID)
	if errors.Is(err, service.ErrReportNotFound) {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Errorw("Delete: service error", "report_id", reportID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SaveEquipment перезаписывает приборный осмотр отчёта
func (h *ReportHandler) SaveEquipment(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var form service.EquipmentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.Logger.Warnw("SaveEquipment: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	reportID := chi.URLParam(r, "reportID")
	err := h.ReportService.SaveEquipment(r.Context(), reportID, form)
	if errors.Is(err, service.ErrReportNotFound) {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Errorw("SaveEquipment: service error", "report_id", reportID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetEquipment отдаёт приборный осмотр отчёта
func (h *ReportHandler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	form, err := h.ReportService.LoadEquipment(r.Context(), chi.URLParam(r, "reportID"))
	if err != nil {
		h.Logger.Errorw("GetEquipment: service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(form)
}

// defectMeta — описание одного дефекта в multipart-поле "defects".
// Снимки прикладываются файлами "image_<i>_<роль>".
type defectMeta struct {
	Location       string `json:"location"`
	Classification string `json:"classification"`
	Details        string `json:"details"`
}

// SaveVisual перезаписывает визуальный осмотр отчёта (multipart/form-data)
func (h *ReportHandler) SaveVisual(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	reportID := chi.URLParam(r, "reportID")

	// Лимит общего тела запроса
	maxImage := int64(h.Config.ImageMaxSizeMB) * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxImage*12+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.Logger.Warnw("SaveVisual: invalid multipart form", "error", err)
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	var metas []defectMeta
	if err := json.Unmarshal([]byte(r.FormValue("defects")), &metas); err != nil {
		h.Logger.Warnw("SaveVisual: invalid defects field", "error", err)
		http.Error(w, "invalid defects field", http.StatusBadRequest)
		return
	}

	// Файлы читает сервис после разбора формы, поэтому держим их
	// открытыми до конца запроса и закрываем одним разом.
	var files []io.Closer
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()

	groups := make([]service.DefectGroup, 0, len(metas))
	for i, meta := range metas {
		group := service.DefectGroup{
			Location:       meta.Location,
			Classification: meta.Classification,
			Details:        meta.Details,
		}
		for _, imageType := range []string{model.ImageTypeFull, model.ImageTypeCloseup, model.ImageTypeAngle} {
			file, header, err := r.FormFile(fmt.Sprintf("image_%d_%s", i, imageType))
			if err != nil {
				continue // роль не приложена
			}
			files = append(files, file)
			if header.Size > maxImage {
				http.Error(w, "image too large", http.StatusRequestEntityTooLarge)
				return
			}
			group.Images = append(group.Images, service.DefectImage{
				Type:     imageType,
				FileName: header.Filename,
				Content:  file,
				Size:     header.Size,
			})
		}
		groups = append(groups, group)
	}

	err := h.ReportService.SaveVisual(r.Context(), reportID, groups)
	if errors.Is(err, service.ErrReportNotFound) {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, service.ErrInvalidDefect) {
		http.Error(w, "invalid defect data", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Logger.Errorw("SaveVisual: service error", "report_id", reportID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetVisual отдаёт визуальный осмотр отчёта, сгруппированный по дефектам
func (h *ReportHandler) GetVisual(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	defects, err := h.ReportService.LoadVisual(r.Context(), chi.URLParam(r, "reportID"))
	if err != nil {
		h.Logger.Errorw("GetVisual: service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(defects)
}
