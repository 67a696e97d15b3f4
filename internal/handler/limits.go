package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/deckfetch/api/internal/config"
	"github.com/deckfetch/api/internal/model"
	"github.com/deckfetch/api/pkg/response"
)

type LimitsHandler struct {
	cfg *config.Config
}

func NewLimitsHandler(cfg *config.Config) *LimitsHandler {
	return &LimitsHandler{cfg: cfg}
}

// Limits handles GET /api/limits
func (h *LimitsHandler) Limits(c *fiber.Ctx) error {
	return response.OK(c, model.LimitsResponse{
		MaxSlides:         h.cfg.Capture.MaxSlides,
		PageLoadTimeoutMs: int(h.cfg.Browser.PageLoadTimeout.Milliseconds()),
		FileRetentionMin:  int(h.cfg.Retention.FileMaxAge.Minutes()),
		JobRetentionMin:   int(h.cfg.Retention.JobMaxAge.Minutes()),
	})
}
