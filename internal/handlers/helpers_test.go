package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"AptInspect/internal/config"
	"AptInspect/internal/handlers"
	"AptInspect/internal/middleware"
	"AptInspect/internal/model"
	"AptInspect/internal/repo"
	"AptInspect/internal/retention"
	"AptInspect/internal/service"
	"AptInspect/internal/storage"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// testServer — маршрутизатор поверх in-memory SQLite и хранилища в памяти.
type testServer struct {
	router http.Handler
	cfg    *config.Config
	db     *gorm.DB
	store  *storage.MemStore
	now    time.Time
}

func newTestServer(t *testing.T) *testServer {
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
	cfg := &config.Config{AuthSecret: "test-secret", ImageMaxSizeMB: 10}
	store := storage.NewMemStore()

	userRepo := repo.NewUserRepository(db)
	reportsRepo := repo.NewReportRepository(db)
	equipRepo := repo.NewEquipmentRepository(db)
	visualRepo := repo.NewVisualRepository(db)
	boardRepo := repo.NewBoardRepository(db)

	srv := &testServer{
		cfg:   cfg,
		db:    db,
		store: store,
		now:   time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}

	purger := retention.NewSweeper(reportsRepo, visualRepo, equipRepo, boardRepo, store, logger).
		WithClock(func() time.Time { return srv.now })
	userSvc := service.NewUserService(userRepo)
	reportSvc := service.NewReportService(reportsRepo, equipRepo, visualRepo, store, purger, logger)
	customerSvc := service.NewCustomerService(reportsRepo, equipRepo, visualRepo, store, logger).
		WithClock(func() time.Time { return srv.now })
	boardSvc := service.NewBoardService(boardRepo, reportsRepo, logger)

	h := handlers.NewHandler(userSvc, reportSvc, customerSvc, boardSvc, logger, cfg)
	srv.router = h.Router
	return srv
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

// jsonRequest собирает запрос с JSON-телом.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// addAuth подписывает запрос авторизационной кукой.
func addAuth(t *testing.T, req *http.Request, userID int64, role, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	if err := middleware.SetLoginCookie(rr, userID, role, secret); err != nil {
		t.Fatalf("failed to set login cookie: %v", err)
	}
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// createReport создаёт отчёт через API и возвращает его id.
func (s *testServer) createReport(t *testing.T) string {
	t.Helper()
	req := jsonRequest(t, http.MethodPost, "/api/reports", service.BasicInfo{
		AptName: "Lakeview",
		Dong:    "101",
		Ho:      "1203",
	})
	addAuth(t, req, 1, model.RoleStaff, s.cfg.AuthSecret)
	rr := s.do(t, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("failed to create report: status %d, body %s", rr.Code, rr.Body.String())
	}
	var report model.Report
	if err := json.Unmarshal(rr.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	return report.ID
}

// backdate сдвигает created_at отчёта на age назад относительно часов сервера.
func (s *testServer) backdate(t *testing.T, reportID string, age time.Duration) {
	t.Helper()
	err := s.db.Model(&model.Report{}).Where("id = ?", reportID).
		Update("created_at", s.now.Add(-age)).Error
	if err != nil {
		t.Fatalf("failed to backdate report: %v", err)
	}
}

// multipartVisual собирает multipart-запрос визуального осмотра: поле
// "defects" и файлы "image_<i>_<роль>".
func multipartVisual(t *testing.T, target string, metas []map[string]string, images map[string][]byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	metasJSON, err := json.Marshal(metas)
	if err != nil {
		t.Fatalf("failed to marshal defects: %v", err)
	}
	if err := mw.WriteField("defects", string(metasJSON)); err != nil {
		t.Fatalf("failed to write defects field: %v", err)
	}
	for field, data := range images {
		fw, err := mw.CreateFormFile(field, field+".jpg")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
