package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"expenses/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestExpenseService_Create(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expense`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	expense, err := svc.Create(context.Background(), ExpenseInput{
		Title:    "  Lunch ",
		Amount:   120,
		Category: "Food",
		Date:     mustDate(t, "2030-01-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), expense.ID)
	assert.Equal(t, "Lunch", expense.Title)
	assert.False(t, expense.IsDeleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseService_Create_Validation(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.Create(context.Background(), ExpenseInput{
		Title: "Taxi", Amount: -1, Category: "Transport", Date: mustDate(t, "2030-02-01"),
	})
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = svc.Create(context.Background(), ExpenseInput{
		Title: "Taxi", Amount: 10, Category: "Transport", Date: mustDate(t, "2030-01-09"),
	})
	assert.ErrorIs(t, err, ErrPastDate)

	// 校验失败不应访问数据库
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseService_Get(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT \\* FROM `expense` WHERE .*`is_deleted` = ").
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow(3, "Books", 45, "Education", "2030-03-01", false, time.Now(), time.Now()))

	expense, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Books", expense.Title)
	assert.Equal(t, int64(45), expense.Amount)
	assert.Equal(t, "2030-03-01", expense.Date.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseService_Get_NotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT \\* FROM `expense`").
		WillReturnRows(sqlmock.NewRows(expenseColumns))

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrExpenseNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseService_Get_DBError(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT \\* FROM `expense`").
		WillReturnError(errors.New("connection reset"))

	_, err := svc.Get(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExpenseNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseService_Update(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT \\* FROM `expense`").
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow(5, "Old", 10, "Misc", "2030-01-20", false, time.Now(), time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `expense` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	expense, err := svc.Update(context.Background(), 5, ExpenseInput{
		Title: "New", Amount: 0, Category: "Food", Date: mustDate(t, "2030-01-11"),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(5), expense.ID)
	assert.Equal(t, "New", expense.Title)
	assert.Equal(t, int64(0), expense.Amount)
	assert.Equal(t, "2030-01-11", expense.Date.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseService_Update_NotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT \\* FROM `expense`").
		WillReturnRows(sqlmock.NewRows(expenseColumns))

	_, err := svc.Update(context.Background(), 5, ExpenseInput{
		Title: "New", Amount: 1, Category: "Food", Date: mustDate(t, "2030-01-11"),
	})
	assert.ErrorIs(t, err, ErrExpenseNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseService_Update_ValidatesBeforeLookup(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.Update(context.Background(), 5, ExpenseInput{
		Title: "New", Amount: 1, Category: "Food", Date: mustDate(t, "2029-12-31"),
	})
	assert.ErrorIs(t, err, ErrPastDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseService_Delete(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `expense` SET `is_deleted`=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), 4))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseService_Delete_AlreadyDeleted(t *testing.T) {
	svc, mock := newTestService(t)

	// 已软删除的行不满足 is_deleted = false，影响行数为 0
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `expense` SET `is_deleted`=").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.ErrorIs(t, svc.Delete(context.Background(), 4), ErrExpenseNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseService_List(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `expense` WHERE `is_deleted` = ").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `expense` WHERE `is_deleted` = ").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(300))
	mock.ExpectQuery("SELECT \\* FROM `expense` WHERE .* ORDER BY `amount`,`id` LIMIT .* OFFSET").
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow(6, "Coffee", 5, "Food", "2030-02-01", false, time.Now(), time.Now()).
			AddRow(7, "Bus", 8, "Transport", "2030-02-02", false, time.Now(), time.Now()))

	result, err := svc.List(context.Background(), ExpenseQuery{
		SortBy:   "amount",
		Page:     2,
		PageSize: 5,
	})
	require.NoError(t, err)

	assert.Len(t, result.Expenses, 2)
	assert.Equal(t, "Coffee", result.Expenses[0].Title)
	assert.Equal(t, Pagination{
		Page: 2, PageSize: 5, TotalCount: 12, TotalPages: 3, HasNext: true, HasPrev: true,
	}, result.Pagination)
	assert.Equal(t, ExpenseSummary{TotalSum: 300, Count: 12}, result.Summary)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseService_List_Empty(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `expense`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `expense`").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0))
	mock.ExpectQuery("SELECT \\* FROM `expense`").
		WillReturnRows(sqlmock.NewRows(expenseColumns))

	result, err := svc.List(context.Background(), ExpenseQuery{Category: "none"})
	require.NoError(t, err)

	assert.NotNil(t, result.Expenses)
	assert.Empty(t, result.Expenses)
	assert.Equal(t, int64(1), result.Pagination.TotalPages)
	assert.Equal(t, DefaultPage, result.Pagination.Page)
	assert.Equal(t, DefaultPageSize, result.Pagination.PageSize)
	assert.False(t, result.Pagination.HasNext)
	assert.False(t, result.Pagination.HasPrev)
	assert.Equal(t, int64(0), result.Summary.TotalSum)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseService_Export(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT \\* FROM `expense` WHERE `is_deleted` = .* ORDER BY `date` DESC,`id` DESC LIMIT").
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow(1, "Rent", 900, "Housing", "2030-03-01", false, time.Now(), time.Now()))

	expenses, err := svc.Export(context.Background(), ExpenseQuery{Page: 3}, 500)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Rent", expenses[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}
