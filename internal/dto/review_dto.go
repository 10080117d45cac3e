package dto

import "time"

type CreateReviewRequest struct {
	SpaceID            uint           `json:"spaceId" validate:"required"`
	ReviewType         string         `json:"reviewType" validate:"required,oneof=video text"`
	PositiveStarsCount int            `json:"positiveStarsCount" validate:"omitempty,min=1,max=5"`
	ReviewText         *string        `json:"reviewText"`
	ReviewImage        *string        `json:"reviewImage" validate:"omitempty,objecturl"`
	ReviewVideo        *string        `json:"reviewVideo" validate:"omitempty,objecturl"`
	UserDetails        map[string]any `json:"userDetails" validate:"required"`
}

// UpdateReviewRequest only touches the flags that are present.
type UpdateReviewRequest struct {
	ReviewID uint  `json:"reviewID" validate:"required"`
	IsLiked  *bool `json:"isLiked"`
	IsSpam   *bool `json:"isSpam"`
}

type DeleteReviewRequest struct {
	ReviewID uint `json:"reviewID" validate:"required"`
}

// ReviewResponse is a review as served to readers: media fields carry
// signed URLs and the owning space id is omitted.
type ReviewResponse struct {
	ReviewID           uint           `json:"reviewID"`
	ReviewType         string         `json:"reviewType"`
	PositiveStarsCount int            `json:"positiveStarsCount"`
	ReviewText         *string        `json:"reviewText"`
	ReviewImage        *string        `json:"reviewImage"`
	ReviewVideo        *string        `json:"reviewVideo"`
	UserDetails        map[string]any `json:"userDetails"`
	IsLiked            bool           `json:"isLiked"`
	IsSpam             bool           `json:"isSpam"`
	Sentiment          string         `json:"sentiment"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

type ReviewEnvelope struct {
	Review *ReviewResponse `json:"review"`
}

type ReviewListResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	SpaceLogo *string          `json:"spaceLogo"`
}
