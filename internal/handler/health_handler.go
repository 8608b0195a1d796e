package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/studyhub/internal/database"
	"github.com/weiwangfds/studyhub/internal/logger"
	"gorm.io/gorm"
)

// 服务信息，Version 可在构建时通过 -ldflags 覆盖
var (
	ServiceName = "studyhub"
	Version     = "1.0.0"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health 服务存活检查，总是返回 healthy
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Router /api/health-test [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
		"version":   Version,
	})
}

// Database 数据库连通性检查
// @Summary 数据库状态
// @Tags 系统
// @Produce json
// @Router /api/health/db [get]
func (h *HealthHandler) Database(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		logger.WithError(err).Error("Database health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"database":  "unreachable",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  h.db.Dialector.Name(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
