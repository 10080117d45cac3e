package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GetReview handles GET /api/reviews/review?reviewId=
func (h *ReviewHandler) GetReview(c *fiber.Ctx) error {
	reviewID, ok := queryID(c, "reviewId")
	if !ok {
		return badRequest(c, "reviewId must be a positive integer")
	}

	review, err := h.reviewService.GetReview(c.UserContext(), reviewID)
	if err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			return respondError(c, fiber.StatusNotFound, dto.CodeNotFound, "Review not found")
		}
		return upstreamFailed(c, "Failed to retrieve review", err)
	}

	return c.JSON(dto.ReviewEnvelope{Review: review})
}

// GetLiked handles GET /api/reviews/liked?spaceId=
func (h *ReviewHandler) GetLiked(c *fiber.Ctx) error {
	spaceID, ok := queryID(c, "spaceId")
	if !ok {
		return badRequest(c, "spaceId must be a positive integer")
	}

	resp, err := h.reviewService.ListLiked(c.UserContext(), spaceID)
	if err != nil {
		return upstreamFailed(c, "Failed to retrieve liked reviews", err)
	}

	return c.JSON(resp)
}

// GetAll handles GET /api/reviews?spaceId=
func (h *ReviewHandler) GetAll(c *fiber.Ctx) error {
	if _, err := auth.UserID(c); err != nil {
		return badRequest(c, "userId is missing from token")
	}

	spaceID, ok := queryID(c, "spaceId")
	if !ok {
		return badRequest(c, "spaceId must be a positive integer")
	}

	resp, err := h.reviewService.ListForSpace(c.UserContext(), spaceID)
	if err != nil {
		return upstreamFailed(c, "Failed to retrieve reviews", err)
	}

	return c.JSON(resp)
}

// Create handles POST /api/reviews
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return invalidInput(c, err)
	}

	review, err := h.reviewService.CreateReview(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrSpaceNotFound) {
			return respondError(c, fiber.StatusNotFound, dto.CodeNotFound, "Space not found")
		}
		return upstreamFailed(c, "Failed to add review", err)
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// Update handles PUT /api/reviews
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return invalidInput(c, err)
	}

	review, err := h.reviewService.UpdateReview(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			return respondError(c, fiber.StatusNotFound, dto.CodeNotFound, "Review not found")
		}
		return upstreamFailed(c, "Failed to update review", err)
	}

	return c.JSON(review)
}

// Delete handles DELETE /api/reviews
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	var req dto.DeleteReviewRequest
	if err := parseBody(c, &req); err != nil {
		return invalidInput(c, err)
	}

	if err := h.reviewService.DeleteReview(c.UserContext(), req.ReviewID); err != nil {
		return upstreamFailed(c, "Failed to delete review", err)
	}

	return c.JSON(dto.MessageResponse{Message: "Review deleted successfully"})
}
