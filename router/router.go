package router

import (
	"context"
	"net/http"
	"strings"

	"expenses/api"
	"expenses/config"
	"expenses/database"
	_ "expenses/docs"
	"expenses/logging"
	"expenses/middleware"
	"expenses/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 设置路由，ctx 结束时后台清理协程随之退出
func SetupRouter(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *logrus.Logger) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		logging.GinLogger(logger),
		metrics.Handler(),
		CORSMiddleware(cfg.Server.CORSOrigins),
	)
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst))
	}

	// 健康检查与监控
	healthHandler := api.NewHealthHandler(database.NewPinger(db))
	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Live)
	r.GET("/readyz", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	svc := service.NewExpenseService(db, logger)

	// 消费记录
	expenseHandler := api.NewExpenseHandler(svc)
	expenses := r.Group("/expenses")
	{
		expenses.POST("", expenseHandler.Create)
		expenses.GET("", expenseHandler.List)
		expenses.GET("/:id", expenseHandler.Get)
		expenses.PUT("/:id", expenseHandler.Update)
		expenses.DELETE("/:id", expenseHandler.Delete)
	}

	// 导出相关
	exportHandler := api.NewExportHandler(svc, cfg.Export.MaxRows)
	export := r.Group("/export")
	{
		export.GET("/csv", exportHandler.ExportCSV)
		export.GET("/json", exportHandler.ExportJSON)
		export.GET("/excel", exportHandler.ExportExcel)
	}

	return r
}

// CORSMiddleware CORS 跨域中间件，只放行配置中的来源；配置 "*" 时放行所有来源
func CORSMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	allowAll := false
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := allowed[origin]; ok || allowAll {
				h := c.Writer.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
				h.Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
				h.Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID, Retry-After")
				h.Add("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
