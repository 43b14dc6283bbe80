package model

import "time"

// Report — базовая информация одного осмотра квартиры.
// Все зависимые строки (equipment, visual, board) ссылаются на его ID
// и не имеют собственного жизненного цикла.
type Report struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	AptName string `gorm:"not null" json:"apt_name"`
	Dong    string `gorm:"not null" json:"dong"`
	Ho      string `gorm:"not null" json:"ho"`
	Contact string `json:"contact"`

	// Необязательная ссылка на создавшего пользователя.
	UserID *int64 `gorm:"index" json:"user_id,omitempty"`
	User   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
