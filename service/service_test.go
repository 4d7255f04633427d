package service

import (
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedNow 测试统一使用的“今天”
var fixedNow = time.Date(2030, 1, 10, 9, 30, 0, 0, time.Local)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return gormDB, mock
}

func newTestService(t *testing.T) (*ExpenseService, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := NewExpenseService(db, log)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc, mock
}

var expenseColumns = []string{"id", "title", "amount", "category", "date", "is_deleted", "created_at", "updated_at"}
