package handlers_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"AptInspect/internal/model"
	"AptInspect/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func saveDefect(t *testing.T, srv *testServer, reportID string) {
	t.Helper()
	metas := []map[string]string{{
		"location":       "living",
		"classification": "wallpaper",
		"details":        "torn seam near window",
	}}
	images := map[string][]byte{"image_0_full": []byte("full-image-bytes")}
	req := multipartVisual(t, "/api/reports/"+reportID+"/visual", metas, images)
	addAuth(t, req, 1, model.RoleStaff, srv.cfg.AuthSecret)
	if rr := srv.do(t, req); rr.Code != http.StatusNoContent {
		t.Fatalf("failed to save visual: status %d, body %s", rr.Code, rr.Body.String())
	}
}

func TestHandlers_CustomerReport_WithinWindow(t *testing.T) {
	srv := newTestServer(t)
	reportID := srv.createReport(t)
	saveDefect(t, srv, reportID)
	srv.backdate(t, reportID, 3*24*time.Hour)

	// клиентский маршрут работает без авторизации
	req := jsonRequest(t, http.MethodGet, "/api/customer/reports/"+reportID, nil)
	rr := srv.do(t, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var report service.CustomerReport
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.True(t, report.ImagesVisible)
	assert.Len(t, report.Defects, 1)
	assert.NotNil(t, report.Defects[0].Full)
}

func TestHandlers_CustomerReport_AfterWindow(t *testing.T) {
	srv := newTestServer(t)
	reportID := srv.createReport(t)
	saveDefect(t, srv, reportID)
	srv.backdate(t, reportID, 10*24*time.Hour)

	req := jsonRequest(t, http.MethodGet, "/api/customer/reports/"+reportID, nil)
	rr := srv.do(t, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var report service.CustomerReport
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.False(t, report.ImagesVisible)

	// текст дефекта на месте, ссылок на снимки нет
	assert.Len(t, report.Defects, 1)
	assert.Equal(t, "torn seam near window", report.Defects[0].Details)
	assert.Nil(t, report.Defects[0].Full)
}

func TestHandlers_CustomerReport_NotFound(t *testing.T) {
	srv := newTestServer(t)

	req := jsonRequest(t, http.MethodGet, "/api/customer/reports/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, srv.do(t, req).Code)
}

func TestHandlers_CustomerReport_CountsBoardViews(t *testing.T) {
	srv := newTestServer(t)
	reportID := srv.createReport(t)
	publishEntry(t, srv, reportID)

	req := jsonRequest(t, http.MethodGet, "/api/customer/reports/"+reportID, nil)
	assert.Equal(t, http.StatusOK, srv.do(t, req).Code)
	req = jsonRequest(t, http.MethodGet, "/api/customer/reports/"+reportID, nil)
	assert.Equal(t, http.StatusOK, srv.do(t, req).Code)

	var entry model.BoardEntry
	assert.NoError(t, srv.db.Where("report_id = ?", reportID).First(&entry).Error)
	assert.Equal(t, int64(2), entry.ViewCount)
}

func TestHandlers_CustomerArchive(t *testing.T) {
	srv := newTestServer(t)
	reportID := srv.createReport(t)
	saveDefect(t, srv, reportID)
	srv.backdate(t, reportID, 3*24*time.Hour)

	req := jsonRequest(t, http.MethodGet, "/api/customer/reports/"+reportID+"/archive", nil)
	rr := srv.do(t, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/zip", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "Lakeview_101-1203_images.zip")

	zr, err := zip.NewReader(bytes.NewReader(rr.Body.Bytes()), int64(rr.Body.Len()))
	assert.NoError(t, err)
	assert.Len(t, zr.File, 1)
}

func TestHandlers_CustomerArchive_AfterWindow(t *testing.T) {
	srv := newTestServer(t)
	reportID := srv.createReport(t)
	saveDefect(t, srv, reportID)
	srv.backdate(t, reportID, 8*24*time.Hour)

	req := jsonRequest(t, http.MethodGet, "/api/customer/reports/"+reportID+"/archive", nil)
	rr := srv.do(t, req)
	assert.Equal(t, http.StatusGone, rr.Code)
	assert.NotEqual(t, "application/zip", rr.Header().Get("Content-Type"))
}
