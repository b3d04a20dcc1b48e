package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	appName   string
	startedAt time.Time
}

func NewHealthHandler(appName string, startedAt time.Time) *HealthHandler {
	return &HealthHandler{appName: appName, startedAt: startedAt}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
		"app":    h.appName,
		"uptime": time.Since(h.startedAt).String(),
	})
}
