package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"expenses/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fixedNow 测试中的“今天”为 2030-01-10
var fixedNow = time.Date(2030, 1, 10, 8, 0, 0, 0, time.Local)

var expenseColumns = []string{"id", "title", "amount", "category", "date", "is_deleted", "created_at", "updated_at"}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *gorm.DB) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return mock, gormDB
}

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	mock, db := setupMockDB(t)

	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := service.NewExpenseService(db, log)
	svc.SetClock(func() time.Time { return fixedNow })

	router := gin.New()
	expenses := NewExpenseHandler(svc)
	router.POST("/expenses", expenses.Create)
	router.GET("/expenses", expenses.List)
	router.GET("/expenses/:id", expenses.Get)
	router.PUT("/expenses/:id", expenses.Update)
	router.DELETE("/expenses/:id", expenses.Delete)

	export := NewExportHandler(svc, 100)
	router.GET("/export/csv", export.ExportCSV)
	router.GET("/export/json", export.ExportJSON)
	router.GET("/export/excel", export.ExportExcel)
	return router, mock
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	data, ok := decode(t, w)["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}
