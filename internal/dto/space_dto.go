package dto

import (
	"bytes"
	"encoding/json"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/models"
)

type QuestionInput struct {
	Text  string `json:"text" validate:"required"`
	Order int    `json:"order" validate:"min=0"`
}

type CollectExtraInfoInput struct {
	Name       *bool `json:"name"`
	Email      *bool `json:"email"`
	Company    *bool `json:"company"`
	SocialLink *bool `json:"socialLink"`
	Address    *bool `json:"address"`
}

// SpaceFields is the editable configuration shared by create and update.
// Absent optional fields are left untouched; absent fields with a default
// are reset to it.
type SpaceFields struct {
	SpaceName           *string                `json:"spaceName"`
	Logo                *string                `json:"logo" validate:"omitempty,objecturl"`
	SquareLogo          *bool                  `json:"squareLogo"`
	SpaceHeading        *string                `json:"spaceHeading"`
	CustomMessage       *string                `json:"customMessage"`
	CollectionType      *string                `json:"collectionType"`
	CollectStarRatings  *bool                  `json:"collectStarRatings"`
	Language            *string                `json:"language"`
	ThankYouImage       *string                `json:"thankYouImage" validate:"omitempty,objecturl"`
	ThankYouTitle       *string                `json:"thankYouTitle"`
	ThankYouMessage     *string                `json:"thankYouMessage"`
	RedirectPageLink    *string                `json:"redirectPageLink" validate:"omitempty,url"`
	MaxVideoDuration    *int                   `json:"maxVideoDuration" validate:"omitempty,min=0,max=600"`
	MaxCharsAllowed     *int                   `json:"maxCharsAllowed" validate:"omitempty,min=0,max=10000"`
	VideoButtonText     *string                `json:"videoButtonText"`
	TextButtonText      *string                `json:"textButtonText"`
	ConsentText         *string                `json:"consentText"`
	TextSubmissionTitle *string                `json:"textSubmissionTitle"`
	QuestionLabel       *string                `json:"questionLabel"`
	Questions           []QuestionInput        `json:"questions" validate:"dive"`
	CollectExtraInfo    *CollectExtraInfoInput `json:"collectExtraInfo"`
}

type CreateSpaceRequest struct {
	SpaceFields
}

type UpdateSpaceRequest struct {
	ID uint `json:"id" validate:"required"`
	SpaceFields

	// Nulls holds the top-level keys sent as an explicit JSON null, which
	// clear the field instead of leaving it unchanged.
	Nulls map[string]bool `json:"-" validate:"-"`
}

func (r *UpdateSpaceRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateSpaceRequest
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Nulls = nil
	for key, value := range raw {
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			if r.Nulls == nil {
				r.Nulls = make(map[string]bool)
			}
			r.Nulls[key] = true
		}
	}
	return nil
}

type DeleteSpaceRequest struct {
	ID uint `json:"id" validate:"required"`
}

type SpaceListResponse struct {
	Spaces []models.Space `json:"spaces"`
}
