package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"expenses/models"
	"expenses/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	svc     *service.ExpenseService
	maxRows int
}

// NewExportHandler 创建导出处理器，maxRows 为单次导出的最大条数
func NewExportHandler(svc *service.ExpenseService, maxRows int) *ExportHandler {
	return &ExportHandler{svc: svc, maxRows: maxRows}
}

var exportHeaders = []string{"ID", "Title", "Amount", "Category", "Date"}

// load 按列表接口的筛选与排序条件查询，忽略分页，最多 maxRows 条
func (h *ExportHandler) load(c *gin.Context) (service.ExpenseQuery, []models.Expense, bool) {
	q, ok := bindListQuery(c)
	if !ok {
		return q, nil, false
	}

	expenses, err := h.svc.Export(c.Request.Context(), q, h.maxRows)
	if err != nil {
		_ = c.Error(err)
		InternalError(c, SafeErrorMessage(err, "failed to query expenses"))
		return q, nil, false
	}
	return q, expenses, true
}

// sumAmount 导出行的金额合计
func sumAmount(expenses []models.Expense) int64 {
	var total int64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

func exportFilename(ext string) string {
	return fmt.Sprintf("expenses_%s.%s", time.Now().Format("20060102_150405"), ext)
}

// ExportCSV 导出消费记录为 CSV
// @Summary 导出消费记录为 CSV
// @Description 使用与列表接口相同的筛选和排序参数导出未删除的记录（忽略分页）
// @Tags Export
// @Produce text/csv
// @Param category query string false "类别（子串匹配）"
// @Param title query string false "标题（子串匹配）"
// @Param date_from query string false "起始日期 (YYYY-MM-DD)"
// @Param date_to query string false "结束日期 (YYYY-MM-DD)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	_, expenses, ok := h.load(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// BOM 让 Excel 正确识别 UTF-8
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	if err := writer.Write(exportHeaders); err != nil {
		InternalError(c, "failed to generate CSV")
		return
	}
	for _, e := range expenses {
		row := []string{
			strconv.FormatUint(uint64(e.ID), 10),
			e.Title,
			strconv.FormatInt(e.Amount, 10),
			e.Category,
			e.Date.String(),
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "failed to generate CSV")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "failed to generate CSV")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportFilename("csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON 导出消费记录为 JSON
// total_count/total_sum 统计全部匹配记录，exported_count 为受 max_rows 限制后实际导出的条数
// @Summary 导出消费记录为 JSON
// @Tags Export
// @Produce json
// @Param category query string false "类别（子串匹配）"
// @Param date_from query string false "起始日期 (YYYY-MM-DD)"
// @Param date_to query string false "结束日期 (YYYY-MM-DD)"
// @Success 200 {object} Response{data=[]models.Expense} "导出成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	q, expenses, ok := h.load(c)
	if !ok {
		return
	}

	summary, err := h.svc.Summarize(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		InternalError(c, SafeErrorMessage(err, "failed to summarize expenses"))
		return
	}

	Success(c, gin.H{
		"total_count":    summary.Count,
		"total_sum":      summary.TotalSum,
		"exported_count": len(expenses),
		"truncated":      int64(len(expenses)) < summary.Count,
		"expenses":       expenses,
	})
}

// ExportExcel 导出消费记录为 Excel
// @Summary 导出消费记录为 Excel
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param category query string false "类别（子串匹配）"
// @Param date_from query string false "起始日期 (YYYY-MM-DD)"
// @Param date_to query string false "结束日期 (YYYY-MM-DD)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	_, expenses, ok := h.load(c)
	if !ok {
		return
	}

	f, err := buildWorkbook(expenses, sumAmount(expenses))
	if err != nil {
		_ = c.Error(err)
		InternalError(c, "failed to generate Excel")
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportFilename("xlsx")))
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

const sheetName = "Expenses"

func buildWorkbook(expenses []models.Expense, total int64) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 20)
	f.SetColWidth(sheetName, "E", "E", 14)

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, e := range expenses {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.Date.String())
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), dataStyle)
	}

	// 合计行
	summaryRow := len(expenses) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Total")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("B%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), total)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("%d records", len(expenses)))
	f.MergeCell(sheetName, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("E%d", summaryRow))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("E%d", summaryRow), summaryStyle)

	return f, nil
}
