package model

import "time"

// Статусы записи клиентской доски.
const (
	BoardStatusActive   = "active"
	BoardStatusInactive = "inactive"
)

// BoardEntry — публичная запись-ссылка на отчёт для клиента.
// Удаляется вместе с отчётом.
type BoardEntry struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID string `gorm:"type:uuid;not null;uniqueIndex" json:"report_id"`

	Title     string `gorm:"not null" json:"title"`
	Content   string `json:"content"`
	Status    string `gorm:"not null;default:active" json:"status"`
	ViewCount int64  `gorm:"not null;default:0" json:"view_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
