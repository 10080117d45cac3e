package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SpaceHandler struct {
	spaceService *services.SpaceService
}

func NewSpaceHandler(spaceService *services.SpaceService) *SpaceHandler {
	return &SpaceHandler{spaceService: spaceService}
}

// List handles GET /api/spaces
func (h *SpaceHandler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return badRequest(c, "userId is missing from token")
	}

	spaces, err := h.spaceService.ListSpaces(c.UserContext(), userID)
	if err != nil {
		return upstreamFailed(c, "Failed to fetch spaces", err)
	}

	return c.JSON(dto.SpaceListResponse{Spaces: spaces})
}

// Get handles GET /api/spaces/:id
func (h *SpaceHandler) Get(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return badRequest(c, "userId is missing from token")
	}

	spaceID, err := c.ParamsInt("id")
	if err != nil || spaceID <= 0 {
		return badRequest(c, "id must be a positive integer")
	}

	space, err := h.spaceService.GetSpace(c.UserContext(), userID, uint(spaceID))
	if err != nil {
		return h.ownershipError(c, "Failed to fetch space", err)
	}

	return c.JSON(space)
}

// Create handles POST /api/spaces
func (h *SpaceHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return badRequest(c, "userId is missing from token")
	}

	var req dto.CreateSpaceRequest
	if err := parseBody(c, &req); err != nil {
		return invalidInput(c, err)
	}

	space, err := h.spaceService.CreateSpace(c.UserContext(), userID, &req)
	if err != nil {
		return upstreamFailed(c, "Failed to create space", err)
	}

	return c.Status(fiber.StatusCreated).JSON(space)
}

// Update handles PUT /api/spaces
func (h *SpaceHandler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return badRequest(c, "userId is missing from token")
	}

	var req dto.UpdateSpaceRequest
	if err := parseBody(c, &req); err != nil {
		return invalidInput(c, err)
	}

	space, err := h.spaceService.UpdateSpace(c.UserContext(), userID, &req)
	if err != nil {
		return h.ownershipError(c, "Failed to update space", err)
	}

	return c.JSON(space)
}

// Delete handles DELETE /api/spaces
func (h *SpaceHandler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return badRequest(c, "userId is missing from token")
	}

	var req dto.DeleteSpaceRequest
	if err := parseBody(c, &req); err != nil {
		return invalidInput(c, err)
	}

	if err := h.spaceService.DeleteSpace(c.UserContext(), userID, req.ID); err != nil {
		return h.ownershipError(c, "Failed to delete space", err)
	}

	return c.JSON(dto.MessageResponse{Message: "Space deleted successfully"})
}

func (h *SpaceHandler) ownershipError(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, services.ErrSpaceNotFound):
		return respondError(c, fiber.StatusNotFound, dto.CodeNotFound, "Space not found")
	case errors.Is(err, services.ErrNotSpaceOwner):
		return respondError(c, fiber.StatusForbidden, dto.CodeForbidden, err.Error())
	default:
		return upstreamFailed(c, message, err)
	}
}
