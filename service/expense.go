package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expenses/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExpenseService 消费记录业务逻辑
type ExpenseService struct {
	db  *gorm.DB
	log logrus.FieldLogger
	now func() time.Time
}

// NewExpenseService 创建消费记录服务
func NewExpenseService(db *gorm.DB, log logrus.FieldLogger) *ExpenseService {
	return &ExpenseService{db: db, log: log, now: time.Now}
}

// SetClock 替换时间来源（测试用）
func (s *ExpenseService) SetClock(now func() time.Time) {
	s.now = now
}

// Today 以服务时钟计算的今天
func (s *ExpenseService) Today() models.Date {
	return models.NewDate(s.now())
}

// ExpenseSummary 汇总信息
type ExpenseSummary struct {
	TotalSum int64 `json:"total_sum" example:"1280"`
	Count    int64 `json:"count" example:"42"`
}

// ExpenseList 列表查询结果
type ExpenseList struct {
	Expenses   []models.Expense `json:"expenses"`
	Pagination Pagination       `json:"pagination"`
	Summary    ExpenseSummary   `json:"summary"`
}

// Create 校验并插入一条消费记录
func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	in.Normalize()
	if err := in.Validate(s.Today()); err != nil {
		return nil, err
	}

	expense := models.Expense{
		Title:    in.Title,
		Amount:   in.Amount,
		Category: in.Category,
		Date:     in.Date,
	}
	if err := s.db.WithContext(ctx).Create(&expense).Error; err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	s.log.WithField("expense_id", expense.ID).Info("expense created")
	return &expense, nil
}

// Get 获取未删除的记录
func (s *ExpenseService) Get(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.WithContext(ctx).
		Scopes(NotDeleted).
		Where(clause.Eq{Column: clause.PrimaryColumn, Value: id}).
		First(&expense).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get expense %d: %w", id, err)
	}
	return &expense, nil
}

// Update 重新校验后整体替换未删除记录的字段
func (s *ExpenseService) Update(ctx context.Context, id uint, in ExpenseInput) (*models.Expense, error) {
	in.Normalize()
	if err := in.Validate(s.Today()); err != nil {
		return nil, err
	}

	expense, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	expense.Title = in.Title
	expense.Amount = in.Amount
	expense.Category = in.Category
	expense.Date = in.Date

	// Select 显式列出字段，保证 amount=0 这类零值也会被写入
	err = s.db.WithContext(ctx).
		Model(expense).
		Select("title", "amount", "category", "date").
		Updates(expense).Error
	if err != nil {
		return nil, fmt.Errorf("update expense %d: %w", id, err)
	}

	s.log.WithField("expense_id", id).Info("expense updated")
	return expense, nil
}

// Delete 软删除：仅把 is_deleted 置为 true；已删除或不存在返回 ErrExpenseNotFound
func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).
		Model(&models.Expense{}).
		Scopes(NotDeleted).
		Where(clause.Eq{Column: clause.PrimaryColumn, Value: id}).
		Updates(map[string]interface{}{"is_deleted": true})
	if result.Error != nil {
		return fmt.Errorf("delete expense %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	s.log.WithField("expense_id", id).Info("expense soft-deleted")
	return nil
}

// List 按条件筛选、排序、分页，并返回总数与金额合计
func (s *ExpenseService) List(ctx context.Context, q ExpenseQuery) (*ExpenseList, error) {
	page, size := q.pageAndSize()
	q.Page, q.PageSize = page, size

	summary, err := s.Summarize(ctx, q)
	if err != nil {
		return nil, err
	}

	expenses := make([]models.Expense, 0, size)
	if err := s.filtered(ctx, q).Scopes(q.Order, q.Paginate).Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	return &ExpenseList{
		Expenses:   expenses,
		Pagination: NewPagination(page, size, summary.Count),
		Summary:    summary,
	}, nil
}

// Summarize 统计所有匹配记录的条数与金额合计，不受分页和导出上限影响
func (s *ExpenseService) Summarize(ctx context.Context, q ExpenseQuery) (ExpenseSummary, error) {
	var summary ExpenseSummary
	if err := s.filtered(ctx, q).Count(&summary.Count).Error; err != nil {
		return summary, fmt.Errorf("count expenses: %w", err)
	}
	if err := s.filtered(ctx, q).Select("COALESCE(SUM(amount), 0)").Scan(&summary.TotalSum).Error; err != nil {
		return summary, fmt.Errorf("sum expenses: %w", err)
	}
	return summary, nil
}

// Export 按筛选与排序条件导出，忽略分页，最多 limit 条
func (s *ExpenseService) Export(ctx context.Context, q ExpenseQuery, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.filtered(ctx, q).Scopes(q.Order).Limit(limit).Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("export expenses: %w", err)
	}
	return expenses, nil
}

// filtered 每次返回新的查询链，避免 Count/Scan/Find 之间互相污染条件
func (s *ExpenseService) filtered(ctx context.Context, q ExpenseQuery) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Expense{}).Scopes(q.Filter)
}
