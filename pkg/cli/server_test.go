package cli

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressframe/pctl/pkg/data"
	"github.com/pressframe/pctl/pkg/engine"
	"github.com/pressframe/pctl/pkg/report"
)

const testPayload = `{
	"event": "digital ID push",
	"scores": {
		"soram": {"S": 7, "O": 3, "R": 5, "A": 8, "M": 9},
		"narcs": {"N": 7, "A": 8, "R": 6, "C": 7, "S": 8},
		"trapn": {"T": 8, "R": 3, "A": 6, "P": 7, "N": 2}
	}
}`

func setupTestRouter(t *testing.T) (*http.ServeMux, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, data.Init(dbPath))
	db, err := data.GetDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return makeRouter(db), db
}

func TestReportAPI(t *testing.T) {
	mux, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/report?plain=1", strings.NewReader(testPayload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PRESSURE ANALYSIS REPORT")
	assert.Contains(t, rec.Body.String(), "digital ID push")
}

func TestReportAPI_BadInput(t *testing.T) {
	mux, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader("nope"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportAPI(t *testing.T) {
	mux, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/export", strings.NewReader(testPayload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var ex report.Export
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ex))
	assert.Equal(t, "digital ID push", ex.Event)
	assert.Greater(t, ex.OverallPressure, 0.0)
	assert.Equal(t, "T — TENSION BUILDING", ex.DominantPhase)
}

func TestCheckAPI(t *testing.T) {
	mux, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader(testPayload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var ev engine.Evaluation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ev))
	require.NotNil(t, ev.Summary)
	// PPI is 7.2 here, above the default 6.0 limit.
	assert.NotEmpty(t, ev.Alerts)
}

func TestCheckAPI_UnknownMonitor(t *testing.T) {
	mux, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/check?monitor=monitor-404", strings.NewReader(testPayload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMonitorAPI_Lifecycle(t *testing.T) {
	mux, _ := setupTestRouter(t)

	// Empty list.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/monitors", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	// Add.
	body := `{"topic": "digital ID", "keywords": ["digital ID"], "frequency_minutes": 60}`
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/monitors", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var m data.Monitor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, "monitor-001", m.ID)

	// List has one.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/monitors", nil))
	var list []data.Monitor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// Remove.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/monitors/monitor-001", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/monitors/monitor-001", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMonitorAPI_AddValidation(t *testing.T) {
	mux, _ := setupTestRouter(t)

	for _, body := range []string{"", "not json", `{"feeds": ["x"]}`} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/monitors", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestCheckAPI_MonitorThresholdsApply(t *testing.T) {
	mux, db := setupTestRouter(t)

	m, err := data.AddMonitor(db, "quiet topic", nil, nil, 0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/check?monitor="+m.ID, strings.NewReader(testPayload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var ev engine.Evaluation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ev))
	assert.NotNil(t, ev.Summary)
}
