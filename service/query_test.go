package service

import (
	"math"
	"strconv"
	"testing"

	"expenses/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func buildListSQL(t *testing.T, q ExpenseQuery) (string, []interface{}) {
	t.Helper()
	db, _ := newMockDB(t)

	stmt := db.Session(&gorm.Session{DryRun: true}).
		Model(&models.Expense{}).
		Scopes(q.Filter, q.Order, q.Paginate).
		Find(&[]models.Expense{}).Statement
	return stmt.SQL.String(), stmt.Vars
}

func floatPtr(v float64) *float64 { return &v }

func TestExpenseQuery_DefaultsOnlyExcludeDeleted(t *testing.T) {
	sql, vars := buildListSQL(t, ExpenseQuery{})

	assert.Contains(t, sql, "FROM `expense` WHERE `is_deleted` = ?")
	assert.NotContains(t, sql, "LIKE")
	assert.Contains(t, sql, "ORDER BY `date` DESC,`id` DESC")
	assert.NotContains(t, sql, "OFFSET")
	assert.Equal(t, false, vars[0])
}

func TestExpenseQuery_AllFilters(t *testing.T) {
	from, _ := models.ParseDate("2030-01-01")
	to, _ := models.ParseDate("2030-12-31")

	sql, vars := buildListSQL(t, ExpenseQuery{
		Category:          "FoO_d",
		Title:             "50%",
		AmountMin:         floatPtr(10),
		AmountMax:         floatPtr(500),
		AmountGreaterThan: floatPtr(20),
		DateFrom:          &from,
		DateTo:            &to,
		Page:              3,
		PageSize:          20,
	})

	assert.Contains(t, sql, "LOWER(`category`) LIKE ?")
	assert.Contains(t, sql, "LOWER(`title`) LIKE ?")
	assert.Contains(t, sql, "`amount` >= ?")
	assert.Contains(t, sql, "`amount` <= ?")
	assert.Contains(t, sql, "`amount` > ?")
	assert.Contains(t, sql, "`date` >= ?")
	assert.Contains(t, sql, "`date` <= ?")
	assert.Contains(t, sql, "OFFSET")

	// 通配符被转义，大小写统一为小写
	assert.Contains(t, vars, "%foo\\_d%")
	assert.Contains(t, vars, "%50\\%%")
	assert.Contains(t, vars, float64(10))
	assert.Contains(t, vars, float64(500))
	assert.Contains(t, vars, float64(20))
	assert.Contains(t, vars, from)
	assert.Contains(t, vars, to)
}

func TestExpenseQuery_Order(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"default is newest first", "", "", "ORDER BY `date` DESC,`id` DESC"},
		{"sort order ignored without sort_by", "", "asc", "ORDER BY `date` DESC,`id` DESC"},
		{"title asc", "title", "", "ORDER BY `title`,`id`"},
		{"amount desc", "amount", "desc", "ORDER BY `amount` DESC,`id` DESC"},
		{"category upper-case DESC", "category", "DESC", "ORDER BY `category` DESC,`id` DESC"},
		{"date asc", "date", "asc", "ORDER BY `date`,`id`"},
		{"unknown field falls back to id", "is_deleted", "desc", "ORDER BY `id` DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := buildListSQL(t, ExpenseQuery{SortBy: tt.sortBy, SortOrder: tt.sortOrder})
			assert.Contains(t, sql, tt.want)
		})
	}
}

func TestExpenseQuery_PageAndSize(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, DefaultPage, DefaultPageSize},
		{-3, 5, DefaultPage, 5},
		{2, 500, 2, MaxPageSize},
		{4, 25, 4, 25},
		{math.MaxInt, 100, math.MaxInt/100 + 1, 100},
		{math.MaxInt, 50, math.MaxInt/50 + 1, 50},
	}
	for _, tt := range tests {
		page, size := ExpenseQuery{Page: tt.page, PageSize: tt.size}.pageAndSize()
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantSize, size)
	}
}

func TestExpenseQuery_HugePageKeepsOffset(t *testing.T) {
	for _, size := range []int{100, 50, 7} {
		sql, _ := buildListSQL(t, ExpenseQuery{Page: math.MaxInt, PageSize: size})

		offset := (math.MaxInt / size) * size
		assert.Greater(t, offset, 0)
		assert.Contains(t, sql, "LIMIT "+strconv.Itoa(size)+" OFFSET "+strconv.Itoa(offset))
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "plain", escapeLike("plain"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
}
