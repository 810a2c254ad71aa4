package handler

import (
	"context"
	"net/http"
	"time"

	"cm-go/internal/api/response"
	"cm-go/internal/config"
	"cm-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler 健康检查
type HealthHandler struct {
	db        *gorm.DB
	redisPing func(ctx context.Context) error
}

// NewHealthHandler redisPing 为 nil 时跳过 Redis 检查
func NewHealthHandler(db *gorm.DB, redisPing func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{db: db, redisPing: redisPing}
}

// Check 健康检查接口
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} response.Body "服务正常"
// @Failure 503 {object} response.Body "依赖不可用"
// @Router /healthz [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok"}
	healthy := true

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "unavailable"
		healthy = false
	}
	if h.redisPing != nil {
		checks["redis"] = "ok"
		if err := h.redisPing(ctx); err != nil {
			checks["redis"] = "unavailable"
			healthy = false
		}
	}

	app := config.GetApp()
	data := gin.H{
		"service":   app.Name,
		"version":   app.Version,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}

	if !healthy {
		logger.Warn("Health check failed", zap.Any("checks", checks))
		c.JSON(http.StatusServiceUnavailable, response.Body{Code: http.StatusServiceUnavailable, Message: "服务不可用", Data: data})
		return
	}
	response.OK(c, "ok", data)
}
