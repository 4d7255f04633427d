package api

import (
	"errors"
	"math"
	"strconv"

	"expenses/models"
	"expenses/service"

	"github.com/gin-gonic/gin"
)

// 返回给客户端的提示文案
const (
	msgNegativeAmount = "Amount cannot be negative"
	msgPastDate       = "Date cannot be in the past. Please select today or a future date."
	msgEmptyTitle     = "Title cannot be empty"
	msgEmptyCategory  = "Category cannot be empty"
	msgNotFound       = "Expense ID Not Found"
	msgDeleteNotFound = "Expense ID Not Found or Already DELETED"
	msgInvalidID      = "Invalid expense ID"
	msgInvalidDate    = "Invalid date format, expected YYYY-MM-DD"
	msgInvalidAmount  = "Amount filters must be finite numbers"
)

var errNonFiniteAmount = errors.New("amount filter is not a finite number")

// ExpenseHandler 消费记录处理器
type ExpenseHandler struct {
	svc *service.ExpenseService
}

// NewExpenseHandler 创建消费记录处理器
func NewExpenseHandler(svc *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

// ExpenseRequest 创建/更新消费记录请求
// is_deleted 即使出现在请求体中也会被忽略，删除只能通过 DELETE 接口
type ExpenseRequest struct {
	Title    string `json:"title" binding:"required" example:"Lunch"`
	Amount   *int64 `json:"amount" binding:"required" example:"120"`
	Category string `json:"category" binding:"required" example:"Food"`
	Date     string `json:"date" binding:"required" example:"2030-01-15"`
}

func (r ExpenseRequest) toInput() (service.ExpenseInput, error) {
	date, err := models.ParseDate(r.Date)
	if err != nil {
		return service.ExpenseInput{}, err
	}
	return service.ExpenseInput{
		Title:    r.Title,
		Amount:   *r.Amount,
		Category: r.Category,
		Date:     date,
	}, nil
}

// ExpenseListRequest 消费记录列表请求
type ExpenseListRequest struct {
	Category          string   `form:"category" example:"food"`
	Title             string   `form:"title" example:"lunch"`
	SortBy            string   `form:"sort_by" example:"amount"`
	SortOrder         string   `form:"sort_order" example:"desc"`
	AmountMin         *float64 `form:"amount_min" example:"10"`
	AmountMax         *float64 `form:"amount_max" example:"500"`
	AmountGreaterThan *float64 `form:"amount_greater_than" example:"0"`
	DateFrom          string   `form:"date_from" example:"2030-01-01"`
	DateTo            string   `form:"date_to" example:"2030-12-31"`
	Page              int      `form:"page,default=1" binding:"min=1" example:"1"`
	PageSize          int      `form:"page_size,default=10" binding:"min=1,max=100" example:"10"`
}

func (r ExpenseListRequest) toQuery() (service.ExpenseQuery, error) {
	// ParseFloat 接受 NaN/Inf，这类值不能进入 SQL 比较
	for _, v := range []*float64{r.AmountMin, r.AmountMax, r.AmountGreaterThan} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return service.ExpenseQuery{}, errNonFiniteAmount
		}
	}

	q := service.ExpenseQuery{
		Category:          r.Category,
		Title:             r.Title,
		AmountMin:         r.AmountMin,
		AmountMax:         r.AmountMax,
		AmountGreaterThan: r.AmountGreaterThan,
		SortBy:            r.SortBy,
		SortOrder:         r.SortOrder,
		Page:              r.Page,
		PageSize:          r.PageSize,
	}
	if r.DateFrom != "" {
		d, err := models.ParseDate(r.DateFrom)
		if err != nil {
			return q, err
		}
		q.DateFrom = &d
	}
	if r.DateTo != "" {
		d, err := models.ParseDate(r.DateTo)
		if err != nil {
			return q, err
		}
		q.DateTo = &d
	}
	return q, nil
}

// ExpenseIDResponse 写操作返回的记录 ID
type ExpenseIDResponse struct {
	ExpenseID uint `json:"expense_id" example:"1"`
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Description 创建一条消费记录。金额不能为负，日期不能早于今天
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "消费记录信息"
// @Success 200 {object} Response{data=ExpenseIDResponse} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request body"))
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, msgInvalidDate)
		return
	}

	expense, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "failed to create expense")
		return
	}

	SuccessWithMessage(c, "Expense Created Successfully", ExpenseIDResponse{ExpenseID: expense.ID})
}

// List 获取消费记录列表
// @Summary 获取消费记录列表
// @Description 支持按类别/标题模糊搜索（不区分大小写）、金额与日期范围筛选、排序和分页，同时返回总数、总页数和匹配记录的金额合计
// @Tags Expenses
// @Produce json
// @Param category query string false "类别（子串匹配）"
// @Param title query string false "标题（子串匹配）"
// @Param sort_by query string false "排序字段" Enums(title,amount,category,date)
// @Param sort_order query string false "排序方向" Enums(asc,desc) default(asc)
// @Param amount_min query number false "最小金额（含）"
// @Param amount_max query number false "最大金额（含）"
// @Param amount_greater_than query number false "金额大于"
// @Param date_from query string false "起始日期 (YYYY-MM-DD)"
// @Param date_to query string false "结束日期 (YYYY-MM-DD)"
// @Param page query int false "页码" default(1) minimum(1)
// @Param page_size query int false "每页数量" default(10) minimum(1) maximum(100)
// @Success 200 {object} Response{data=service.ExpenseList} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err, "failed to query expenses")
		return
	}

	Success(c, result)
}

// Get 获取单条消费记录
// @Summary 获取单条消费记录
// @Tags Expenses
// @Produce json
// @Param id path int true "消费记录ID"
// @Success 200 {object} Response{data=models.Expense} "获取成功"
// @Failure 400 {object} Response "无效的ID"
// @Failure 404 {object} Response "记录不存在或已删除"
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	expense, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.failLookup(c, err, msgNotFound, "failed to query expense")
		return
	}

	Success(c, expense)
}

// Update 更新消费记录
// @Summary 更新消费记录
// @Description 重新校验后替换记录的全部字段
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path int true "消费记录ID"
// @Param request body ExpenseRequest true "消费记录信息"
// @Success 200 {object} Response{data=ExpenseIDResponse} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "记录不存在或已删除"
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request body"))
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, msgInvalidDate)
		return
	}

	expense, err := h.svc.Update(c.Request.Context(), id, input)
	if err != nil {
		h.failLookup(c, err, msgNotFound, "failed to update expense")
		return
	}

	SuccessWithMessage(c, "Expense Updated Successfully", ExpenseIDResponse{ExpenseID: expense.ID})
}

// Delete 软删除消费记录
// @Summary 删除消费记录
// @Description 软删除：仅标记 is_deleted=true，记录不会被物理删除
// @Tags Expenses
// @Produce json
// @Param id path int true "消费记录ID"
// @Success 200 {object} Response{data=ExpenseIDResponse} "删除成功"
// @Failure 400 {object} Response "无效的ID"
// @Failure 404 {object} Response "记录不存在或已删除"
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.failLookup(c, err, msgDeleteNotFound, "failed to delete expense")
		return
	}

	SuccessWithMessage(c, "Expense Deleted Successfully", ExpenseIDResponse{ExpenseID: id})
}

// fail 将 service 层错误映射为 HTTP 响应：校验失败 400，其余 500
func (h *ExpenseHandler) fail(c *gin.Context, err error, fallback string) {
	if service.IsValidationError(err) {
		BadRequest(c, validationMessage(err))
		return
	}
	_ = c.Error(err)
	InternalError(c, SafeErrorMessage(err, fallback))
}

// failLookup 用于按 ID 操作单条记录的接口，记录不存在时返回 404
func (h *ExpenseHandler) failLookup(c *gin.Context, err error, notFoundMsg, fallback string) {
	if errors.Is(err, service.ErrExpenseNotFound) {
		NotFound(c, notFoundMsg)
		return
	}
	h.fail(c, err, fallback)
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrNegativeAmount):
		return msgNegativeAmount
	case errors.Is(err, service.ErrPastDate):
		return msgPastDate
	case errors.Is(err, service.ErrEmptyTitle):
		return msgEmptyTitle
	case errors.Is(err, service.ErrEmptyCategory):
		return msgEmptyCategory
	default:
		return err.Error()
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, msgInvalidID)
		return 0, false
	}
	return uint(id), true
}

// bindListQuery 解析列表/导出共用的查询参数，失败时已写入 400 响应
func bindListQuery(c *gin.Context) (service.ExpenseQuery, bool) {
	var req ExpenseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid query parameters"))
		return service.ExpenseQuery{}, false
	}
	q, err := req.toQuery()
	if errors.Is(err, errNonFiniteAmount) {
		BadRequest(c, msgInvalidAmount)
		return service.ExpenseQuery{}, false
	}
	if err != nil {
		BadRequest(c, msgInvalidDate)
		return service.ExpenseQuery{}, false
	}
	return q, true
}
