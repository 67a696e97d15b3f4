package handler

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/deckfetch/api/internal/pdf"
	"github.com/deckfetch/api/internal/service"
	"github.com/deckfetch/api/pkg/response"
)

type FilesHandler struct {
	service  *service.ConvertService
	compiler *pdf.Compiler
}

func NewFilesHandler(svc *service.ConvertService, compiler *pdf.Compiler) *FilesHandler {
	return &FilesHandler{
		service:  svc,
		compiler: compiler,
	}
}

// Download handles GET /api/files/:jobId. The artifact path is derived
// from the job id alone, so expired jobs with a surviving file still serve.
func (h *FilesHandler) Download(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}
	// Job ids are always uuids; anything else never names an artifact and
	// must not reach the filesystem path derivation.
	if _, err := uuid.Parse(jobID); err != nil {
		return response.ValidationError(c, "Invalid job ID", nil)
	}

	path := h.compiler.OutputPath(jobID)
	if _, err := os.Stat(path); err != nil {
		return response.NotFound(c, "File not found or expired")
	}

	filename := "presentation.pdf"
	if job := h.service.GetStatus(jobID); job.Filename != "" {
		filename = job.Filename
		if !strings.HasSuffix(filename, ".pdf") {
			filename += ".pdf"
		}
	}

	return c.Download(path, filename)
}
