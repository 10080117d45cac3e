package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Create handles POST /api/uploads
func (h *UploadHandler) Create(c *fiber.Ctx) error {
	var req dto.UploadRequest
	if err := parseBody(c, &req); err != nil {
		return invalidInput(c, err)
	}

	upload, err := h.uploadService.CreateUpload(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedMedia) {
			return badRequest(c, err.Error())
		}
		return upstreamFailed(c, "Failed to create upload URL", err)
	}

	return c.Status(fiber.StatusCreated).JSON(upload)
}
