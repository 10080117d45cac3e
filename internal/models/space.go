package models

import "time"

// Space is a branded testimonial collection page owned by a single user.
type Space struct {
	ID                  uint              `gorm:"primaryKey" json:"id"`
	UserID              uint              `gorm:"not null;index" json:"userId"`
	SpaceName           *string           `gorm:"size:255" json:"spaceName"`
	Logo                *string           `gorm:"type:text" json:"logo"`
	SquareLogo          bool              `gorm:"not null;default:false" json:"squareLogo"`
	SpaceHeading        *string           `gorm:"type:text" json:"spaceHeading"`
	CustomMessage       *string           `gorm:"type:text" json:"customMessage"`
	CollectionType      *string           `gorm:"size:50" json:"collectionType"`
	CollectStarRatings  bool              `gorm:"not null;default:false" json:"collectStarRatings"`
	Language            *string           `gorm:"size:20" json:"language"`
	ThankYouImage       *string           `gorm:"type:text" json:"thankYouImage"`
	ThankYouTitle       string            `gorm:"size:255;not null" json:"thankYouTitle"`
	ThankYouMessage     string            `gorm:"type:text;not null" json:"thankYouMessage"`
	RedirectPageLink    *string           `gorm:"type:text" json:"redirectPageLink"`
	MaxVideoDuration    int               `gorm:"not null" json:"maxVideoDuration"`
	MaxCharsAllowed     int               `gorm:"not null" json:"maxCharsAllowed"`
	VideoButtonText     string            `gorm:"size:100;not null" json:"videoButtonText"`
	TextButtonText      string            `gorm:"size:100;not null" json:"textButtonText"`
	ConsentText         string            `gorm:"type:text;not null" json:"consentText"`
	TextSubmissionTitle *string           `gorm:"size:255" json:"textSubmissionTitle"`
	QuestionLabel       string            `gorm:"size:100;not null" json:"questionLabel"`
	Questions           []Question        `gorm:"foreignKey:SpaceID" json:"questions"`
	CollectExtraInfo    *CollectExtraInfo `gorm:"foreignKey:SpaceID" json:"collectExtraInfo"`
	Reviews             []Review          `gorm:"foreignKey:SpaceID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// Question is one prompt shown on a space's collection page.
type Question struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	SpaceID uint   `gorm:"not null;index" json:"spaceId"`
	Text    string `gorm:"type:text;not null" json:"text"`
	Order   int    `gorm:"column:question_order;not null;default:0" json:"order"`
}

// CollectExtraInfo flags which visitor fields a space asks for.
type CollectExtraInfo struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	SpaceID    uint `gorm:"not null;uniqueIndex" json:"spaceId"`
	Name       bool `gorm:"not null;default:false" json:"name"`
	Email      bool `gorm:"not null;default:false" json:"email"`
	Company    bool `gorm:"not null;default:false" json:"company"`
	SocialLink bool `gorm:"not null;default:false" json:"socialLink"`
	Address    bool `gorm:"not null;default:false" json:"address"`
}

func (CollectExtraInfo) TableName() string {
	return "collect_extra_infos"
}
