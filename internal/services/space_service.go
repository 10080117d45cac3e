package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSpaceNotFound     = errors.New("space not found")
	ErrNotSpaceOwner     = errors.New("you are not authorized to modify this space")
	ErrExtraInfoNotFound = errors.New("collect extra info not found for space")
)

const (
	DefaultThankYouTitle    = "Thank you!"
	DefaultThankYouMessage  = "Thank you so much for your shoutout! It means a ton for us! 🙏"
	DefaultMaxVideoDuration = 30
	DefaultMaxCharsAllowed  = 128
	DefaultVideoButtonText  = "Record a video"
	DefaultTextButtonText   = "Record a text"
	DefaultConsentText      = "I give permission to use this testimonial"
	DefaultQuestionLabel    = "QUESTIONS"
)

// SpaceService manages collection spaces and their nested configuration.
type SpaceService struct {
	db     *gorm.DB
	signer *storage.Signer
}

func NewSpaceService(db *gorm.DB, signer *storage.Signer) *SpaceService {
	return &SpaceService{db: db, signer: signer}
}

// ListSpaces returns the caller's spaces with signed logo and thank-you image.
func (s *SpaceService) ListSpaces(ctx context.Context, userID uint) ([]models.Space, error) {
	var spaces []models.Space
	err := s.db.WithContext(ctx).
		Preload("Questions", orderedQuestions).
		Preload("CollectExtraInfo").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&spaces).Error
	if err != nil {
		return nil, err
	}
	return presentSpaces(ctx, s.signer, spaces)
}

// GetSpace returns one of the caller's spaces with signed media.
func (s *SpaceService) GetSpace(ctx context.Context, userID, spaceID uint) (*models.Space, error) {
	var space models.Space
	err := s.db.WithContext(ctx).
		Preload("Questions", orderedQuestions).
		Preload("CollectExtraInfo").
		First(&space, spaceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpaceNotFound
		}
		return nil, err
	}
	if space.UserID != userID {
		return nil, ErrNotSpaceOwner
	}

	presented, err := presentSpaces(ctx, s.signer, []models.Space{space})
	if err != nil {
		return nil, err
	}
	return &presented[0], nil
}

// CreateSpace stores a space with its questions and, when supplied, its
// extra-info flags in one insert.
func (s *SpaceService) CreateSpace(ctx context.Context, userID uint, req *dto.CreateSpaceRequest) (*models.Space, error) {
	space := &models.Space{UserID: userID}
	applySpaceFields(space, &req.SpaceFields)
	space.Questions = buildQuestions(0, req.Questions)
	if req.CollectExtraInfo != nil {
		info := &models.CollectExtraInfo{}
		applyExtraInfo(info, req.CollectExtraInfo)
		space.CollectExtraInfo = info
	}

	if err := s.db.WithContext(ctx).Create(space).Error; err != nil {
		return nil, fmt.Errorf("failed to create space: %w", err)
	}
	return space, nil
}

// UpdateSpace replaces the space configuration. Question removal, the
// scalar update, question re-creation and the extra-info update commit
// together.
func (s *SpaceService) UpdateSpace(ctx context.Context, userID uint, req *dto.UpdateSpaceRequest) (*models.Space, error) {
	var updated *models.Space
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		space, err := loadOwnedSpace(tx, userID, req.ID)
		if err != nil {
			return err
		}

		if err := tx.Where("space_id = ?", space.ID).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}

		applySpaceFields(space, &req.SpaceFields)
		clearNullFields(space, req.Nulls)
		if err := tx.Omit(clause.Associations).Save(space).Error; err != nil {
			return fmt.Errorf("failed to update space: %w", err)
		}

		questions := buildQuestions(space.ID, req.Questions)
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return fmt.Errorf("failed to create questions: %w", err)
			}
		}
		space.Questions = questions

		if req.CollectExtraInfo != nil {
			info := space.CollectExtraInfo
			if info == nil {
				info = &models.CollectExtraInfo{SpaceID: space.ID}
			}
			applyExtraInfo(info, req.CollectExtraInfo)
			if err := tx.Save(info).Error; err != nil {
				return fmt.Errorf("failed to update collect extra info: %w", err)
			}
			space.CollectExtraInfo = info
		}

		updated = space
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteSpace removes a space, its questions, its extra-info row and its
// reviews atomically. A missing extra-info row aborts the whole deletion.
func (s *SpaceService) DeleteSpace(ctx context.Context, userID, spaceID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadOwnedSpace(tx, userID, spaceID); err != nil {
			return err
		}

		if err := tx.Where("space_id = ?", spaceID).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}

		result := tx.Where("space_id = ?", spaceID).Delete(&models.CollectExtraInfo{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete collect extra info: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrExtraInfoNotFound
		}

		if err := tx.Where("space_id = ?", spaceID).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews: %w", err)
		}

		if err := tx.Delete(&models.Space{}, spaceID).Error; err != nil {
			return fmt.Errorf("failed to delete space: %w", err)
		}
		return nil
	})
}

func loadOwnedSpace(tx *gorm.DB, userID, spaceID uint) (*models.Space, error) {
	var space models.Space
	if err := tx.Preload("CollectExtraInfo").First(&space, spaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpaceNotFound
		}
		return nil, err
	}
	if space.UserID != userID {
		return nil, ErrNotSpaceOwner
	}
	return &space, nil
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("question_order ASC").Order("id ASC")
}

func buildQuestions(spaceID uint, in []dto.QuestionInput) []models.Question {
	questions := make([]models.Question, 0, len(in))
	for _, q := range in {
		questions = append(questions, models.Question{
			SpaceID: spaceID,
			Text:    q.Text,
			Order:   q.Order,
		})
	}
	return questions
}

func applySpaceFields(space *models.Space, f *dto.SpaceFields) {
	setIfPresent(&space.SpaceName, f.SpaceName)
	setIfPresent(&space.Logo, f.Logo)
	setIfPresent(&space.SpaceHeading, f.SpaceHeading)
	setIfPresent(&space.CustomMessage, f.CustomMessage)
	setIfPresent(&space.CollectionType, f.CollectionType)
	setIfPresent(&space.Language, f.Language)
	setIfPresent(&space.ThankYouImage, f.ThankYouImage)
	setIfPresent(&space.RedirectPageLink, f.RedirectPageLink)
	setIfPresent(&space.TextSubmissionTitle, f.TextSubmissionTitle)

	space.SquareLogo = boolOr(f.SquareLogo, false)
	space.CollectStarRatings = boolOr(f.CollectStarRatings, false)
	space.ThankYouTitle = stringOr(f.ThankYouTitle, DefaultThankYouTitle)
	space.ThankYouMessage = stringOr(f.ThankYouMessage, DefaultThankYouMessage)
	space.MaxVideoDuration = intOr(f.MaxVideoDuration, DefaultMaxVideoDuration)
	space.MaxCharsAllowed = intOr(f.MaxCharsAllowed, DefaultMaxCharsAllowed)
	space.VideoButtonText = stringOr(f.VideoButtonText, DefaultVideoButtonText)
	space.TextButtonText = stringOr(f.TextButtonText, DefaultTextButtonText)
	space.ConsentText = stringOr(f.ConsentText, DefaultConsentText)
	space.QuestionLabel = stringOr(f.QuestionLabel, DefaultQuestionLabel)
}

// clearNullFields resets the optional fields the request sent as an explicit
// JSON null. Absent fields are left alone by applySpaceFields.
func clearNullFields(space *models.Space, nulls map[string]bool) {
	if len(nulls) == 0 {
		return
	}
	fields := map[string]**string{
		"spaceName":           &space.SpaceName,
		"logo":                &space.Logo,
		"spaceHeading":        &space.SpaceHeading,
		"customMessage":       &space.CustomMessage,
		"collectionType":      &space.CollectionType,
		"language":            &space.Language,
		"thankYouImage":       &space.ThankYouImage,
		"redirectPageLink":    &space.RedirectPageLink,
		"textSubmissionTitle": &space.TextSubmissionTitle,
	}
	for key, dst := range fields {
		if nulls[key] {
			*dst = nil
		}
	}
}

// applyExtraInfo copies the flags present in the request; absent flags keep
// their current value (false on a new row).
func applyExtraInfo(info *models.CollectExtraInfo, in *dto.CollectExtraInfoInput) {
	info.Name = boolOr(in.Name, info.Name)
	info.Email = boolOr(in.Email, info.Email)
	info.Company = boolOr(in.Company, info.Company)
	info.SocialLink = boolOr(in.SocialLink, info.SocialLink)
	info.Address = boolOr(in.Address, info.Address)
}

func setIfPresent(dst **string, v *string) {
	if v != nil {
		*dst = v
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func stringOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback int) int {
	if v == nil || *v <= 0 {
		return fallback
	}
	return *v
}
