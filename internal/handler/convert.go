package handler

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/deckfetch/api/internal/model"
	"github.com/deckfetch/api/internal/service"
	"github.com/deckfetch/api/internal/urlutil"
	"github.com/deckfetch/api/pkg/response"
)

type ConvertHandler struct {
	service   *service.ConvertService
	validator *validator.Validate
}

func NewConvertHandler(svc *service.ConvertService, v *validator.Validate) *ConvertHandler {
	return &ConvertHandler{
		service:   svc,
		validator: v,
	}
}

// Start handles POST /api/convert/start
func (h *ConvertHandler) Start(c *fiber.Ctx) error {
	var req model.ConvertStartRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	if !urlutil.ValidatePresentationURL(req.URL) {
		return response.ValidationError(c, "Not a supported presentation URL", nil)
	}

	result, err := h.service.StartConvert(c.Context(), &req)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.Accepted(c, result)
}

// Status handles GET /api/convert/status/:jobId. Unknown ids still return
// a record, with status not_found, rather than an error.
func (h *ConvertHandler) Status(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	return response.OK(c, h.service.GetStatus(jobID))
}

func formatValidationErrors(err error) []string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		out = append(out, fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag()))
	}
	return out
}
