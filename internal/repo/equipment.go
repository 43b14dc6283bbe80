package repo

import (
	"AptInspect/internal/model"
	"context"

	"gorm.io/gorm"
)

// EquipmentRepository — доступ к строкам приборного осмотра.
type EquipmentRepository interface {
	// ReplaceForReport заменяет все строки отчёта на переданные:
	// прежние удаляются, новые вставляются одним батчем.
	ReplaceForReport(ctx context.Context, reportID string, items []model.EquipmentItem) error

	ListByReport(ctx context.Context, reportID string) ([]model.EquipmentItem, error)

	// DeleteByReport удаляет все строки отчёта; отсутствие строк — не ошибка.
	DeleteByReport(ctx context.Context, reportID string) error
}

type equipmentRepo struct {
	db *gorm.DB
}

// NewEquipmentRepository создаёт реализацию репозитория приборного осмотра.
func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &equipmentRepo{db: db}
}

func (r *equipmentRepo) ReplaceForReport(ctx context.Context, reportID string, items []model.EquipmentItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", reportID).Delete(&model.EquipmentItem{}).Error; err != nil {
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

func (r *equipmentRepo) ListByReport(ctx context.Context, reportID string) ([]model.EquipmentItem, error) {
	var items []model.EquipmentItem
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *equipmentRepo) DeleteByReport(ctx context.Context, reportID string) error {
	return r.db.WithContext(ctx).Where("report_id = ?", reportID).Delete(&model.EquipmentItem{}).Error
}
