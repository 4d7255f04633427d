package models

import (
	"time"
)

// Expense 消费记录模型
// 只做软删除：删除时将 IsDeleted 置为 true，记录永不物理删除
type Expense struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Amount    int64     `json:"amount" gorm:"not null"`
	Category  string    `json:"category" gorm:"size:100;not null;index"`
	Date      Date      `json:"date" gorm:"not null;index"`
	IsDeleted bool      `json:"is_deleted" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expense"
}

// SortableColumns 列表接口允许排序的字段
var SortableColumns = map[string]string{
	"title":    "title",
	"amount":   "amount",
	"category": "category",
	"date":     "date",
}
