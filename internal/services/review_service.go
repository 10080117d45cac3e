package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

// ReviewService handles testimonial storage and read-time media signing.
type ReviewService struct {
	db         *gorm.DB
	signer     *storage.Signer
	classifier classifier.Classifier
}

func NewReviewService(db *gorm.DB, signer *storage.Signer, classifier classifier.Classifier) *ReviewService {
	return &ReviewService{db: db, signer: signer, classifier: classifier}
}

// GetReview returns one review with signed media.
func (s *ReviewService) GetReview(ctx context.Context, reviewID uint) (*dto.ReviewResponse, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	resp, err := presentReview(ctx, s.signer, &review)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListLiked returns the liked reviews of a space along with its signed logo.
func (s *ReviewService) ListLiked(ctx context.Context, spaceID uint) (*dto.ReviewListResponse, error) {
	return s.list(ctx, spaceID, true)
}

// ListForSpace returns every review of a space along with its signed logo.
func (s *ReviewService) ListForSpace(ctx context.Context, spaceID uint) (*dto.ReviewListResponse, error) {
	return s.list(ctx, spaceID, false)
}

func (s *ReviewService) list(ctx context.Context, spaceID uint, likedOnly bool) (*dto.ReviewListResponse, error) {
	query := s.db.WithContext(ctx).Where("space_id = ?", spaceID)
	if likedOnly {
		query = query.Where("is_liked = ?", true)
	}

	var reviews []models.Review
	if err := query.Order("review_id ASC").Find(&reviews).Error; err != nil {
		return nil, err
	}

	var spaces []models.Space
	if err := s.db.WithContext(ctx).Select("id", "logo").Where("id = ?", spaceID).Limit(1).Find(&spaces).Error; err != nil {
		return nil, err
	}
	var logo *string
	if len(spaces) > 0 {
		signed, err := s.signer.SignURL(ctx, spaces[0].Logo)
		if err != nil {
			return nil, err
		}
		logo = signed
	}

	presented, err := presentReviews(ctx, s.signer, reviews)
	if err != nil {
		return nil, err
	}

	return &dto.ReviewListResponse{Reviews: presented, SpaceLogo: logo}, nil
}

// CreateReview stores a public submission. Text reviews are classified
// before insert; text-less ones are recorded as non-spam video sentiment.
func (s *ReviewService) CreateReview(ctx context.Context, req *dto.CreateReviewRequest) (*models.Review, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Space{}).Where("id = ?", req.SpaceID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrSpaceNotFound
	}

	details, err := json.Marshal(req.UserDetails)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user details: %w", err)
	}

	stars := req.PositiveStarsCount
	if stars == 0 {
		stars = models.DefaultStarsCount
	}

	isSpam := false
	sentiment := models.SentimentVideo
	if req.ReviewText != nil && *req.ReviewText != "" {
		verdict, err := s.classifier.Classify(ctx, *req.ReviewText)
		if err != nil {
			return nil, fmt.Errorf("failed to classify review: %w", err)
		}
		isSpam = verdict.IsSpam
		sentiment = verdict.Sentiment
	}

	review := &models.Review{
		SpaceID:            req.SpaceID,
		ReviewType:         req.ReviewType,
		PositiveStarsCount: stars,
		ReviewText:         req.ReviewText,
		ReviewImage:        req.ReviewImage,
		ReviewVideo:        req.ReviewVideo,
		UserDetails:        datatypes.JSON(details),
		IsSpam:             isSpam,
		Sentiment:          sentiment,
	}
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// UpdateReview toggles the like/spam flags that the request carries.
func (s *ReviewService) UpdateReview(ctx context.Context, req *dto.UpdateReviewRequest) (*models.Review, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, req.ReviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	var columns []string
	if req.IsLiked != nil {
		review.IsLiked = *req.IsLiked
		columns = append(columns, "is_liked")
	}
	if req.IsSpam != nil {
		review.IsSpam = *req.IsSpam
		columns = append(columns, "is_spam")
	}
	if len(columns) == 0 {
		return &review, nil
	}

	if err := s.db.WithContext(ctx).Model(&review).Select(columns).Updates(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return &review, nil
}

// DeleteReview hard-deletes a review. Deleting an unknown id is an error.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Review{}, reviewID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete review %d: %w", reviewID, gorm.ErrRecordNotFound)
	}
	return nil
}
