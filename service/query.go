package service

import (
	"math"
	"strings"

	"expenses/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// DefaultPage 默认页码
	DefaultPage = 1
	// DefaultPageSize 默认每页数量
	DefaultPageSize = 10
	// MaxPageSize 每页数量上限
	MaxPageSize = 100
)

// ExpenseQuery 列表查询条件：筛选、排序与分页
type ExpenseQuery struct {
	Category          string
	Title             string
	AmountMin         *float64
	AmountMax         *float64
	AmountGreaterThan *float64
	DateFrom          *models.Date
	DateTo            *models.Date
	SortBy            string
	SortOrder         string
	Page              int
	PageSize          int
}

// NotDeleted 只保留未软删除的记录
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Eq{Column: clause.Column{Name: "is_deleted"}, Value: false})
}

// Filter 筛选条件 scope，总是排除已软删除的记录
func (q ExpenseQuery) Filter(db *gorm.DB) *gorm.DB {
	db = NotDeleted(db)

	if q.Category != "" {
		db = db.Where(containsFold("category", q.Category))
	}
	if q.Title != "" {
		db = db.Where(containsFold("title", q.Title))
	}
	if q.AmountMin != nil {
		db = db.Where(clause.Gte{Column: clause.Column{Name: "amount"}, Value: *q.AmountMin})
	}
	if q.AmountMax != nil {
		db = db.Where(clause.Lte{Column: clause.Column{Name: "amount"}, Value: *q.AmountMax})
	}
	if q.AmountGreaterThan != nil {
		db = db.Where(clause.Gt{Column: clause.Column{Name: "amount"}, Value: *q.AmountGreaterThan})
	}
	if q.DateFrom != nil {
		db = db.Where(clause.Gte{Column: clause.Column{Name: "date"}, Value: *q.DateFrom})
	}
	if q.DateTo != nil {
		db = db.Where(clause.Lte{Column: clause.Column{Name: "date"}, Value: *q.DateTo})
	}
	return db
}

// Order 排序 scope
// 未指定 sort_by 时按日期倒序；未知字段按 id 排序；id 作为同向的次级排序保证分页稳定
func (q ExpenseQuery) Order(db *gorm.DB) *gorm.DB {
	column, desc := q.orderColumn()
	db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	if column != "id" {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
	}
	return db
}

func (q ExpenseQuery) orderColumn() (string, bool) {
	if q.SortBy == "" {
		return "date", true
	}
	desc := strings.EqualFold(q.SortOrder, "desc")
	if column, ok := models.SortableColumns[q.SortBy]; ok {
		return column, desc
	}
	return "id", desc
}

// Paginate 分页 scope
func (q ExpenseQuery) Paginate(db *gorm.DB) *gorm.DB {
	page, size := q.pageAndSize()
	return db.Offset((page - 1) * size).Limit(size)
}

func (q ExpenseQuery) pageAndSize() (int, int) {
	page, size := q.Page, q.PageSize
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	// 页码过大时 (page-1)*size 会溢出，收敛到 offset 仍可表示的最后一页
	if maxPage := math.MaxInt/size + 1; page > maxPage {
		page = maxPage
	}
	return page, size
}

// containsFold 大小写不敏感的子串匹配：LOWER(col) LIKE %value%
func containsFold(column, value string) clause.Expression {
	return clause.Expr{
		SQL:  "LOWER(?) LIKE ?",
		Vars: []interface{}{clause.Column{Name: column}, "%" + escapeLike(strings.ToLower(value)) + "%"},
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义 LIKE 通配符，使用户输入按字面匹配
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
