package service

import (
	"errors"
	"strings"

	"expenses/models"
)

var (
	// ErrNegativeAmount 金额为负
	ErrNegativeAmount = errors.New("amount cannot be negative")
	// ErrPastDate 日期早于今天
	ErrPastDate = errors.New("date cannot be in the past")
	// ErrEmptyTitle 标题为空
	ErrEmptyTitle = errors.New("title is required")
	// ErrEmptyCategory 类别为空
	ErrEmptyCategory = errors.New("category is required")
	// ErrExpenseNotFound 记录不存在或已软删除
	ErrExpenseNotFound = errors.New("expense not found")
)

// ExpenseInput 创建/更新消费记录的输入
type ExpenseInput struct {
	Title    string
	Amount   int64
	Category string
	Date     models.Date
}

// Normalize 去除首尾空白
func (in *ExpenseInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
}

// Validate 校验输入；today 由调用方传入以便测试固定时间
func (in ExpenseInput) Validate(today models.Date) error {
	if in.Amount < 0 {
		return ErrNegativeAmount
	}
	if in.Date.Before(today) {
		return ErrPastDate
	}
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// IsValidationError 是否为输入校验错误（对应 400）
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrPastDate) ||
		errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrEmptyCategory)
}
