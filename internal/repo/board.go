package repo

import (
	"AptInspect/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// BoardRepository — доступ к записям клиентской доски.
type BoardRepository interface {
	// CreateForReport создаёт запись для отчёта. Повторная публикация
	// того же отчёта — конфликт уникального индекса.
	CreateForReport(ctx context.Context, entry *model.BoardEntry) error

	// GetByReport возвращает запись отчёта либо (nil, nil).
	GetByReport(ctx context.Context, reportID string) (*model.BoardEntry, error)

	// List возвращает все записи, новые первыми.
	List(ctx context.Context) ([]model.BoardEntry, error)

	// SetStatus меняет статус записи.
	SetStatus(ctx context.Context, id int64, status string) error

	// IncrementViews атомарно увеличивает счётчик просмотров.
	IncrementViews(ctx context.Context, id int64) error

	// DeleteByReport удаляет запись отчёта; отсутствие записи — не ошибка.
	DeleteByReport(ctx context.Context, reportID string) error

	// Delete удаляет запись по её ID.
	Delete(ctx context.Context, id int64) error
}

type boardRepo struct {
	db *gorm.DB
}

// NewBoardRepository создаёт реализацию репозитория доски.
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepo{db: db}
}

func (r *boardRepo) CreateForReport(ctx context.Context, entry *model.BoardEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *boardRepo) GetByReport(ctx context.Context, reportID string) (*model.BoardEntry, error) {
	var e model.BoardEntry
	err := r.db.WithContext(ctx).Where("report_id = ?", reportID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *boardRepo) List(ctx context.Context) ([]model.BoardEntry, error) {
	var entries []model.BoardEntry
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *boardRepo) SetStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.BoardEntry{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *boardRepo) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.BoardEntry{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *boardRepo) DeleteByReport(ctx context.Context, reportID string) error {
	return r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Delete(&model.BoardEntry{}).Error
}

func (r *boardRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BoardEntry{}).Error
}
