package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/obie7479/Super-work-web-checkin/config"
	"github.com/obie7479/Super-work-web-checkin/internal/api/handler"
	"github.com/obie7479/Super-work-web-checkin/internal/api/middleware"
	"github.com/obie7479/Super-work-web-checkin/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 记录存储端点 ──
	// 路径固定以 /exec 结尾：客户端以此校验端点配置
	r.GET("/exec",
		middleware.RateLimit(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window),
		h.Action.Dispatch,
	)

	// ── 导出模块 ──
	export := r.Group("/export")
	{
		export.GET("/attendance", h.Export.ExportAttendance)
		export.GET("/calendar", h.Export.ExportCalendar)
	}

	return r
}
