package service

import (
	"AptInspect/internal/model"
	"AptInspect/internal/repo"
	"AptInspect/internal/storage"
	"AptInspect/internal/visibility"
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// ErrArchiveUnavailable — архив снимков запрошен вне окна доступности.
// Архив не отдаётся частично: либо все снимки, либо отказ.
var ErrArchiveUnavailable = errors.New("image archive is no longer available")

// CustomerService — клиентский просмотр готового отчёта.
type CustomerService struct {
	reports   repo.ReportRepository
	equipment repo.EquipmentRepository
	visual    repo.VisualRepository
	store     storage.ObjectStore
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func NewCustomerService(
	reports repo.ReportRepository,
	equipment repo.EquipmentRepository,
	visual repo.VisualRepository,
	store storage.ObjectStore,
	logger *zap.SugaredLogger,
) *CustomerService {
	return &CustomerService{
		reports:   reports,
		equipment: equipment,
		visual:    visual,
		store:     store,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock подменяет источник времени (для тестов).
func (s *CustomerService) WithClock(now func() time.Time) *CustomerService {
	s.now = now
	return s
}

// CustomerReport — всё, что показывается клиенту на странице отчёта.
type CustomerReport struct {
	Report        *model.Report `json:"report"`
	Equipment     EquipmentForm `json:"equipment"`
	Defects       []DefectView  `json:"defects"`
	ImagesVisible bool          `json:"images_visible"`
}

// GetReport собирает клиентский отчёт. Решение об окне доступности
// принимается заново при каждом вызове. Вне окна текстовые поля дефектов
// остаются видимыми, ссылки на снимки вычищаются.
func (s *CustomerService) GetReport(ctx context.Context, reportID string) (*CustomerReport, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if report == nil {
		// Нет отчёта — нет возраста: показать нечего.
		return nil, ErrReportNotFound
	}

	equipmentRows, err := s.equipment.ListByReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("load equipment: %w", err)
	}
	visualRows, err := s.visual.ListByReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("load visual: %w", err)
	}

	visible := visibility.ImagesVisible(report.CreatedAt, s.now())
	defects := groupDefects(visualRows)
	if !visible {
		for i := range defects {
			defects[i].Full = nil
			defects[i].Closeup = nil
			defects[i].Angle = nil
		}
	}

	return &CustomerReport{
		Report:        report,
		Equipment:     equipmentFormFromRows(equipmentRows),
		Defects:       defects,
		ImagesVisible: visible,
	}, nil
}

// BuildImageArchive пишет в w zip-архив всех снимков отчёта.
// Вне окна доступности архив не собирается вовсе.
func (s *CustomerService) BuildImageArchive(ctx context.Context, reportID string, w io.Writer) error {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return fmt.Errorf("get report: %w", err)
	}
	if report == nil {
		return ErrReportNotFound
	}
	if !visibility.ImagesVisible(report.CreatedAt, s.now()) {
		return ErrArchiveUnavailable
	}

	rows, err := s.visual.ListByReport(ctx, reportID)
	if err != nil {
		return fmt.Errorf("load visual: %w", err)
	}

	zw := zip.NewWriter(w)
	for i, row := range rows {
		if err := s.addImage(ctx, zw, report, row, i+1); err != nil {
			zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}

	s.logger.Infow("image archive built", "report_id", reportID, "images", len(rows))
	return nil
}

func (s *CustomerService) addImage(ctx context.Context, zw *zip.Writer, report *model.Report, row model.VisualItem, n int) error {
	rc, err := s.store.Fetch(ctx, row.ImagePath)
	if err != nil {
		return fmt.Errorf("fetch image %s: %w", row.ImagePath, err)
	}
	defer rc.Close()

	name := fmt.Sprintf("%s_%s-%s_%02d_%s.jpg", report.AptName, report.Dong, report.Ho, n, row.ImageType)
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create archive entry: %w", err)
	}
	if _, err := io.Copy(fw, rc); err != nil {
		return fmt.Errorf("write archive entry: %w", err)
	}
	return nil
}

// ArchiveFileName — имя файла архива для заголовка Content-Disposition.
func ArchiveFileName(report *model.Report) string {
	return fmt.Sprintf("%s_%s-%s_images.zip", report.AptName, report.Dong, report.Ho)
}
