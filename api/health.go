package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger 可探活的依赖，*sql.DB 满足该接口
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// Root 服务根路径
// @Summary 服务状态
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Backend is running Successfully"})
}

// Live 存活探针
// @Summary 存活探针
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready 就绪探针，数据库不可用时返回 503
// @Summary 就绪探针
// @Tags Health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /readyz [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	checks := gin.H{"database": "ok"}
	if err := h.db.PingContext(ctx); err != nil {
		_ = c.Error(err)
		checks["database"] = "error: " + SafeErrorMessage(err, "unreachable")
		ServiceUnavailable(c, "degraded", gin.H{"status": "degraded", "checks": checks})
		return
	}

	Success(c, gin.H{"status": "ok", "checks": checks})
}
