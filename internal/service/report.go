package service

import (
	"AptInspect/internal/model"
	"AptInspect/internal/repo"
	"AptInspect/internal/storage"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ошибки уровня сервиса отчётов.
var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidReport  = errors.New("invalid report data")
)

// Purger удаляет отчёт со всем содержимым в безопасном порядке.
// Реализуется internal/retention, чтобы ручное удаление администратора
// шло тем же путём, что и фоновая зачистка.
type Purger interface {
	PurgeReport(ctx context.Context, reportID string) error
}

// ReportService — создание отчётов и работа секций осмотра.
type ReportService struct {
	reports   repo.ReportRepository
	equipment repo.EquipmentRepository
	visual    repo.VisualRepository
	store     storage.ObjectStore
	purger    Purger
	logger    *zap.SugaredLogger
}

func NewReportService(
	reports repo.ReportRepository,
	equipment repo.EquipmentRepository,
	visual repo.VisualRepository,
	store storage.ObjectStore,
	purger Purger,
	logger *zap.SugaredLogger,
) *ReportService {
	return &ReportService{
		reports:   reports,
		equipment: equipment,
		visual:    visual,
		store:     store,
		purger:    purger,
		logger:    logger,
	}
}

// BasicInfo — данные формы базовой информации.
type BasicInfo struct {
	AptName string `json:"apt_name"`
	Dong    string `json:"dong"`
	Ho      string `json:"ho"`
	Contact string `json:"contact"`
}

// CreateReport создаёт отчёт с новым uuid. userID может быть nil.
func (s *ReportService) CreateReport(ctx context.Context, info BasicInfo, userID *int64) (*model.Report, error) {
	if info.AptName == "" || info.Dong == "" || info.Ho == "" {
		return nil, ErrInvalidReport
	}

	report := &model.Report{
		ID:      uuid.NewString(),
		AptName: info.AptName,
		Dong:    info.Dong,
		Ho:      info.Ho,
		Contact: info.Contact,
		UserID:  userID,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.logger.Infow("report created", "report_id", report.ID, "apt", report.AptName)
	return report, nil
}

// GetReport возвращает отчёт по id.
func (s *ReportService) GetReport(ctx context.Context, id string) (*model.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

// ListReports возвращает отчёты: администратору — все, сотруднику — свои.
func (s *ReportService) ListReports(ctx context.Context, userID int64, role string) ([]model.Report, error) {
	if role == model.RoleAdmin {
		return s.reports.ListAll(ctx)
	}
	return s.reports.ListByUser(ctx, userID)
}

// SaveEquipment перезаписывает строки приборного осмотра отчёта.
func (s *ReportService) SaveEquipment(ctx context.Context, reportID string, form EquipmentForm) error {
	if _, err := s.GetReport(ctx, reportID); err != nil {
		return err
	}
	rows := equipmentRows(form)
	if err := s.equipment.ReplaceForReport(ctx, reportID, rows); err != nil {
		return fmt.Errorf("save equipment: %w", err)
	}
	s.logger.Infow("equipment saved", "report_id", reportID, "rows", len(rows))
	return nil
}

// LoadEquipment возвращает форму приборного осмотра отчёта.
func (s *ReportService) LoadEquipment(ctx context.Context, reportID string) (EquipmentForm, error) {
	rows, err := s.equipment.ListByReport(ctx, reportID)
	if err != nil {
		return EquipmentForm{}, fmt.Errorf("load equipment: %w", err)
	}
	return equipmentFormFromRows(rows), nil
}

// DeleteReport удаляет отчёт со всем содержимым (админское действие).
func (s *ReportService) DeleteReport(ctx context.Context, reportID string) error {
	if _, err := s.GetReport(ctx, reportID); err != nil {
		return err
	}
	if err := s.purger.PurgeReport(ctx, reportID); err != nil {
		return fmt.Errorf("purge report: %w", err)
	}
	return nil
}
