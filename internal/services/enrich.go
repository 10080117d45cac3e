package services

import (
	"context"
	"encoding/json"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/storage"
	"golang.org/x/sync/errgroup"
)

// fanOut runs fn for indexes [0, n) concurrently and waits for all of them.
// The first failure cancels the shared context and is returned.
func fanOut(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

// presentReview signs the media of a stored review and drops its space id.
func presentReview(ctx context.Context, signer *storage.Signer, r *models.Review) (dto.ReviewResponse, error) {
	image, err := signer.SignURL(ctx, r.ReviewImage)
	if err != nil {
		return dto.ReviewResponse{}, err
	}
	video, err := signer.SignURL(ctx, r.ReviewVideo)
	if err != nil {
		return dto.ReviewResponse{}, err
	}

	details := decodeDetails(r)
	var photo *string
	if raw, ok := details["userPhoto"].(string); ok {
		photo = &raw
	}
	signedPhoto, err := signer.SignURL(ctx, photo)
	if err != nil {
		return dto.ReviewResponse{}, err
	}
	details["userPhoto"] = signedPhoto

	return dto.ReviewResponse{
		ReviewID:           r.ReviewID,
		ReviewType:         r.ReviewType,
		PositiveStarsCount: r.PositiveStarsCount,
		ReviewText:         r.ReviewText,
		ReviewImage:        image,
		ReviewVideo:        video,
		UserDetails:        details,
		IsLiked:            r.IsLiked,
		IsSpam:             r.IsSpam,
		Sentiment:          r.Sentiment,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}, nil
}

// decodeDetails returns the submitter details as an object; anything that
// is not a JSON object yields an empty one.
func decodeDetails(r *models.Review) map[string]any {
	details := map[string]any{}
	if len(r.UserDetails) == 0 {
		return details
	}
	var decoded map[string]any
	if err := json.Unmarshal(r.UserDetails, &decoded); err != nil || decoded == nil {
		return details
	}
	return decoded
}

func presentReviews(ctx context.Context, signer *storage.Signer, reviews []models.Review) ([]dto.ReviewResponse, error) {
	out := make([]dto.ReviewResponse, len(reviews))
	err := fanOut(ctx, len(reviews), func(ctx context.Context, i int) error {
		resp, err := presentReview(ctx, signer, &reviews[i])
		if err != nil {
			return err
		}
		out[i] = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// presentSpaces replaces logo and thank-you image references with signed
// URLs on copies of the given spaces.
func presentSpaces(ctx context.Context, signer *storage.Signer, spaces []models.Space) ([]models.Space, error) {
	out := make([]models.Space, len(spaces))
	err := fanOut(ctx, len(spaces), func(ctx context.Context, i int) error {
		space := spaces[i]
		logo, err := signer.SignURL(ctx, space.Logo)
		if err != nil {
			return err
		}
		thankYou, err := signer.SignURL(ctx, space.ThankYouImage)
		if err != nil {
			return err
		}
		space.Logo = logo
		space.ThankYouImage = thankYou
		out[i] = space
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
