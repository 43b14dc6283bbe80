package repo

import (
	"AptInspect/internal/model"
	"context"

	"gorm.io/gorm"
)

// VisualRepository — доступ к строкам визуального осмотра.
type VisualRepository interface {
	// ReplaceForReport заменяет все строки отчёта на переданные.
	ReplaceForReport(ctx context.Context, reportID string, items []model.VisualItem) error

	ListByReport(ctx context.Context, reportID string) ([]model.VisualItem, error)

	// ListPathsByReport возвращает пути всех объектов хранилища,
	// на которые ссылаются строки отчёта.
	ListPathsByReport(ctx context.Context, reportID string) ([]string, error)

	// DeleteByReport удаляет все строки отчёта; отсутствие строк — не ошибка.
	DeleteByReport(ctx context.Context, reportID string) error
}

type visualRepo struct {
	db *gorm.DB
}

// NewVisualRepository создаёт реализацию репозитория визуального осмотра.
func NewVisualRepository(db *gorm.DB) VisualRepository {
	return &visualRepo{db: db}
}

func (r *visualRepo) ReplaceForReport(ctx context.Context, reportID string, items []model.VisualItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", reportID).Delete(&model.VisualItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ReportID = reportID
		}
		return tx.Create(&items).Error
	})
}

func (r *visualRepo) ListByReport(ctx context.Context, reportID string) ([]model.VisualItem, error) {
	var items []model.VisualItem
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *visualRepo) ListPathsByReport(ctx context.Context, reportID string) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&model.VisualItem{}).
		Where("report_id = ?", reportID).
		Pluck("image_path", &paths).Error
	return paths, err
}

func (r *visualRepo) DeleteByReport(ctx context.Context, reportID string) error {
	return r.db.WithContext(ctx).Where("report_id = ?", reportID).Delete(&model.VisualItem{}).Error
}
