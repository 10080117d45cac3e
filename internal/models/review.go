package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ReviewTypeVideo = "video"
	ReviewTypeText  = "text"

	// SentimentVideo is recorded for submissions without text.
	SentimentVideo = "video"

	DefaultStarsCount = 5
)

// Review is a testimonial submitted against a space. Media fields hold the
// absolute object-storage URL; signed URLs are computed on read.
type Review struct {
	ReviewID           uint           `gorm:"primaryKey;column:review_id" json:"reviewID"`
	SpaceID            uint           `gorm:"not null;index" json:"spaceId"`
	ReviewType         string         `gorm:"size:20;not null" json:"reviewType"`
	PositiveStarsCount int            `gorm:"not null;default:5" json:"positiveStarsCount"`
	ReviewText         *string        `gorm:"type:text" json:"reviewText"`
	ReviewImage        *string        `gorm:"type:text" json:"reviewImage"`
	ReviewVideo        *string        `gorm:"type:text" json:"reviewVideo"`
	UserDetails        datatypes.JSON `json:"userDetails"`
	IsLiked            bool           `gorm:"not null;default:false" json:"isLiked"`
	IsSpam             bool           `gorm:"not null;default:false" json:"isSpam"`
	Sentiment          string         `gorm:"size:50" json:"sentiment"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}
