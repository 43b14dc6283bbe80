package repo

import (
	"AptInspect/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ReportRepository — доступ к базовой информации отчётов.
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error

	// GetByID возвращает отчёт либо (nil, nil), если его нет.
	GetByID(ctx context.Context, id string) (*model.Report, error)

	// ListAll возвращает все отчёты, новые первыми.
	ListAll(ctx context.Context) ([]model.Report, error)

	// ListByUser возвращает отчёты пользователя, новые первыми.
	ListByUser(ctx context.Context, userID int64) ([]model.Report, error)

	// ListCreatedBefore выбирает отчёты строго старше cutoff.
	ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]model.Report, error)

	// Delete удаляет строку отчёта; отсутствие строки — не ошибка.
	Delete(ctx context.Context, id string) error
}

type reportRepo struct {
	db *gorm.DB
}

// NewReportRepository создаёт реализацию репозитория отчётов.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepo) GetByID(ctx context.Context, id string) (*model.Report, error) {
	var rep model.Report
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *reportRepo) ListAll(ctx context.Context) ([]model.Report, error) {
	var reports []model.Report
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *reportRepo) ListByUser(ctx context.Context, userID int64) ([]model.Report, error) {
	var reports []model.Report
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepo) ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]model.Report, error) {
	var reports []model.Report
	err := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Find(&reports).Error
	return reports, err
}

func (r *reportRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Report{}).Error
}
