package repo

import (
	"fmt"
	"strings"
	"testing"

	"AptInspect/internal/model"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов репозитория.
// Имя базы привязано к имени теста, чтобы тесты не делили состояние.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	// Миграции для всех моделей, используемых в репозиториях
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

// seedReport — минимальный отчёт для тестов дочерних репозиториев.
func seedReport(t *testing.T, db *gorm.DB, id string) *model.Report {
	t.Helper()
	report := &model.Report{
		ID:      id,
		AptName: "Lakeview Residences",
		Dong:    "101",
		Ho:      "1203",
	}
	if err := db.Create(report).Error; err != nil {
		t.Fatalf("failed to seed report: %v", err)
	}
	return report
}
