package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"AptInspect/internal/model"
	"AptInspect/internal/repo"
	"AptInspect/internal/retention"
	"AptInspect/internal/storage"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// testEnv — сервисы поверх in-memory SQLite и хранилища в памяти.
// Сервисы отчётов завязаны на связку репозиториев с хранилищем, поэтому
// тестируются на настоящей базе, а не на моках.
type testEnv struct {
	db       *gorm.DB
	store    *storage.MemStore
	reports  *ReportService
	customer *CustomerService
	board    *BoardService
	repoR    repo.ReportRepository
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	logger := zap.NewNop().Sugar()
	store := storage.NewMemStore()
	reportsRepo := repo.NewReportRepository(db)
	equipRepo := repo.NewEquipmentRepository(db)
	visualRepo := repo.NewVisualRepository(db)
	boardRepo := repo.NewBoardRepository(db)

	env := &testEnv{
		db:    db,
		store: store,
		repoR: reportsRepo,
		now:   time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}

	purger := retention.NewSweeper(reportsRepo, visualRepo, equipRepo, boardRepo, store, logger).
		WithClock(func() time.Time { return env.now })
	env.reports = NewReportService(reportsRepo, equipRepo, visualRepo, store, purger, logger)
	env.customer = NewCustomerService(reportsRepo, equipRepo, visualRepo, store, logger).
		WithClock(func() time.Time { return env.now })
	env.board = NewBoardService(boardRepo, reportsRepo, logger)
	return env
}

// newReport создаёт отчёт заданного возраста относительно env.now.
func (env *testEnv) newReport(t *testing.T, age time.Duration) *model.Report {
	t.Helper()
	report, err := env.reports.CreateReport(context.Background(), BasicInfo{
		AptName: "Lakeview",
		Dong:    "101",
		Ho:      "1203",
		Contact: "010-1234-5678",
	}, nil)
	if err != nil {
		t.Fatalf("failed to create report: %v", err)
	}
	if age > 0 {
		createdAt := env.now.Add(-age)
		if err := env.db.Model(&model.Report{}).Where("id = ?", report.ID).
			Update("created_at", createdAt).Error; err != nil {
			t.Fatalf("failed to backdate report: %v", err)
		}
		report.CreatedAt = createdAt
	}
	return report
}
