package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/shopdesk/pkg/ctx"
	"github.com/shashiranjanraj/shopdesk/pkg/logger"
)

// HealthController reports whether the backing store answers.
type HealthController struct {
	ping func(ctx context.Context) error
}

func NewHealthController(ping func(ctx context.Context) error) *HealthController {
	return &HealthController{ping: ping}
}

// Check handles GET /healthz.
func (h *HealthController) Check(c *ctx.Context) {
	pctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(pctx); err != nil {
		logger.WithCtx(c.Context()).Warn("health: store ping failed", "error", err)
		c.Error(http.StatusServiceUnavailable, "store unavailable")
		return
	}
	c.Success(map[string]string{"status": "ok"})
}
