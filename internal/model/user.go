package model

import "time"

// Роли пользователей. Роль — непрозрачная строка, права проверяются
// на уровне хендлеров.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User — учётная запись сотрудника.
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Login        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:staff"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
