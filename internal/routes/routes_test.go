package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const jwtSecret = "test-secret"

type harness struct {
	t          *testing.T
	app        *fiber.App
	db         *gorm.DB
	presigner  *testutil.Presigner
	classifier *testutil.Classifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewDB(t)
	p := &testutil.Presigner{}
	c := &testutil.Classifier{Verdict: classifier.Verdict{Sentiment: "positive"}}
	signer := testutil.NewSigner(p)
	cfg := &config.Config{JWTSecret: jwtSecret}

	app := fiber.New()
	routes.Setup(app, cfg, routes.Handlers{
		Health: handlers.NewHealthHandler(db),
		Review: handlers.NewReviewHandler(services.NewReviewService(db, signer, c)),
		Space:  handlers.NewSpaceHandler(services.NewSpaceService(db, signer)),
		Upload: handlers.NewUploadHandler(services.NewUploadService(signer, "https://bucket.test")),
	})

	return &harness{t: t, app: app, db: db, presigner: p, classifier: c}
}

func (h *harness) token(userID uint) string {
	h.t.Helper()
	tok, err := auth.IssueToken(jwtSecret, userID, time.Hour)
	require.NoError(h.t, err)
	return tok
}

// do sends a request and decodes a JSON body into a generic map.
func (h *harness) do(method, target string, body any, userID uint) (int, map[string]any) {
	h.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+h.token(userID))
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)

	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(h.t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (h *harness) seedSpace(userID uint) models.Space {
	h.t.Helper()
	space := models.Space{
		UserID:          userID,
		Logo:            testutil.StrPtr("https://bucket.test/logos/acme.png"),
		ThankYouTitle:   services.DefaultThankYouTitle,
		ThankYouMessage: services.DefaultThankYouMessage,
	}
	require.NoError(h.t, h.db.Create(&space).Error)
	return space
}

func (h *harness) seedReview(spaceID uint, liked bool) models.Review {
	h.t.Helper()
	review := models.Review{
		SpaceID:     spaceID,
		ReviewType:  models.ReviewTypeText,
		ReviewText:  testutil.StrPtr("Loved it"),
		ReviewImage: testutil.StrPtr("https://bucket.test/reviews/pic.png"),
		UserDetails: datatypes.JSON(`{"name":"Ada","userPhoto":"https://bucket.test/people/ada.jpg"}`),
		IsLiked:     liked,
		Sentiment:   "positive",
	}
	require.NoError(h.t, h.db.Create(&review).Error)
	return review
}

func id(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func TestHealth(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(http.MethodGet, "/api/health", nil, 0)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["db"])
}

func TestPublicReviewRoutesNeedNoToken(t *testing.T) {
	h := newHarness(t)
	space := h.seedSpace(1)
	review := h.seedReview(space.ID, true)

	status, body := h.do(http.MethodGet, "/api/reviews/review?reviewId="+id(review.ReviewID), nil, 0)
	require.Equal(t, http.StatusOK, status)

	got := body["review"].(map[string]any)
	assert.EqualValues(t, review.ReviewID, got["reviewID"])
	assert.NotContains(t, got, "spaceId")
	assert.Equal(t, testutil.SignedURL("reviews/pic.png"), got["reviewImage"])
	details := got["userDetails"].(map[string]any)
	assert.Equal(t, testutil.SignedURL("people/ada.jpg"), details["userPhoto"])

	status, _ = h.do(http.MethodGet, "/api/reviews/liked?spaceId="+id(space.ID), nil, 0)
	assert.Equal(t, http.StatusOK, status)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	h := newHarness(t)

	cases := []struct {
		method, target string
	}{
		{http.MethodGet, "/api/reviews?spaceId=1"},
		{http.MethodPost, "/api/reviews"},
		{http.MethodPut, "/api/reviews"},
		{http.MethodDelete, "/api/reviews"},
		{http.MethodGet, "/api/spaces"},
		{http.MethodGet, "/api/spaces/1"},
		{http.MethodPost, "/api/spaces"},
		{http.MethodPut, "/api/spaces"},
		{http.MethodDelete, "/api/spaces"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			status, body := h.do(tc.method, tc.target, nil, 0)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "unauthorized", body["code"])
		})
	}
}

func TestGetReview_Validation(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(http.MethodGet, "/api/reviews/review?reviewId=abc", nil, 0)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", body["code"])

	status, _ = h.do(http.MethodGet, "/api/reviews/review", nil, 0)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = h.do(http.MethodGet, "/api/reviews/review?reviewId=99", nil, 0)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", body["code"])
}

func TestLikedReviewsAreFiltered(t *testing.T) {
	h := newHarness(t)
	space := h.seedSpace(1)
	liked := h.seedReview(space.ID, true)
	h.seedReview(space.ID, false)

	status, body := h.do(http.MethodGet, "/api/reviews/liked?spaceId="+id(space.ID), nil, 0)
	require.Equal(t, http.StatusOK, status)

	reviews := body["reviews"].([]any)
	require.Len(t, reviews, 1)
	assert.EqualValues(t, liked.ReviewID, reviews[0].(map[string]any)["reviewID"])
	assert.Equal(t, testutil.SignedURL("logos/acme.png"), body["spaceLogo"])

	status, body = h.do(http.MethodGet, "/api/reviews?spaceId="+id(space.ID), nil, 42)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["reviews"].([]any), 2)
}

func TestCreateReview(t *testing.T) {
	h := newHarness(t)
	space := h.seedSpace(1)

	status, body := h.do(http.MethodPost, "/api/reviews", map[string]any{
		"spaceId":     space.ID,
		"reviewType":  "text",
		"reviewText":  "Fantastic support",
		"userDetails": map[string]any{"name": "Grace"},
	}, 5)
	require.Equal(t, http.StatusCreated, status, body)
	assert.EqualValues(t, 5, body["positiveStarsCount"])
	assert.Equal(t, "positive", body["sentiment"])
	assert.Equal(t, false, body["isSpam"])
	assert.Equal(t, []string{"Fantastic support"}, h.classifier.Texts())

	status, body = h.do(http.MethodPost, "/api/reviews", map[string]any{
		"spaceId":     space.ID,
		"reviewType":  "video",
		"reviewVideo": "https://bucket.test/reviews/clip.mp4",
		"userDetails": map[string]any{},
	}, 5)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "video", body["sentiment"])
	assert.Len(t, h.classifier.Texts(), 1, "text-less reviews skip the classifier")
}

func TestCreateReview_Validation(t *testing.T) {
	h := newHarness(t)
	space := h.seedSpace(1)

	status, body := h.do(http.MethodPost, "/api/reviews", map[string]any{
		"spaceId":     space.ID,
		"userDetails": map[string]any{},
	}, 5)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "reviewType")

	status, _ = h.do(http.MethodPost, "/api/reviews", map[string]any{
		"spaceId":    space.ID,
		"reviewType": "text",
	}, 5)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = h.do(http.MethodPost, "/api/reviews", map[string]any{
		"spaceId":     space.ID + 50,
		"reviewType":  "text",
		"userDetails": map[string]any{},
	}, 5)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Empty(t, h.classifier.Texts())
}

func TestUpdateAndDeleteReview(t *testing.T) {
	h := newHarness(t)
	space := h.seedSpace(1)
	review := h.seedReview(space.ID, false)

	status, body := h.do(http.MethodPut, "/api/reviews", map[string]any{
		"reviewID": review.ReviewID,
		"isLiked":  true,
	}, 1)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, true, body["isLiked"])
	assert.Equal(t, false, body["isSpam"])

	status, _ = h.do(http.MethodPut, "/api/reviews", map[string]any{"reviewID": 999, "isLiked": true}, 1)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = h.do(http.MethodDelete, "/api/reviews", map[string]any{"reviewID": review.ReviewID}, 1)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Review deleted successfully", body["message"])

	status, _ = h.do(http.MethodGet, "/api/reviews/review?reviewId="+id(review.ReviewID), nil, 0)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = h.do(http.MethodDelete, "/api/reviews", map[string]any{"reviewID": review.ReviewID}, 1)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "upstream_error", body["code"])
}

func TestSpaceLifecycle(t *testing.T) {
	h := newHarness(t)
	const owner uint = 7

	status, created := h.do(http.MethodPost, "/api/spaces", map[string]any{
		"spaceName": "Acme",
		"logo":      "https://bucket.test/logos/acme.png",
		"questions": []map[string]any{
			{"text": "What did you like?", "order": 1},
			{"text": "Who are you?", "order": 0},
		},
		"collectExtraInfo": map[string]any{"name": true},
	}, owner)
	require.Equal(t, http.StatusCreated, status, created)
	assert.Equal(t, "Thank you!", created["thankYouTitle"])
	spaceID := uint(created["id"].(float64))

	status, body := h.do(http.MethodGet, "/api/spaces", nil, owner)
	require.Equal(t, http.StatusOK, status)
	spaces := body["spaces"].([]any)
	require.Len(t, spaces, 1)
	listed := spaces[0].(map[string]any)
	assert.Equal(t, testutil.SignedURL("logos/acme.png"), listed["logo"])
	questions := listed["questions"].([]any)
	require.Len(t, questions, 2)
	assert.Equal(t, "Who are you?", questions[0].(map[string]any)["text"])

	status, _ = h.do(http.MethodGet, "/api/spaces/"+id(spaceID), nil, owner)
	assert.Equal(t, http.StatusOK, status)

	status, body = h.do(http.MethodPut, "/api/spaces", map[string]any{
		"id":        spaceID,
		"spaceName": "Acme Inc",
		"questions": []map[string]any{{"text": "Anything else?", "order": 0}},
	}, owner)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Acme Inc", body["spaceName"])

	status, body = h.do(http.MethodDelete, "/api/spaces", map[string]any{"id": spaceID}, owner)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Space deleted successfully", body["message"])

	status, _ = h.do(http.MethodGet, "/api/spaces/"+id(spaceID), nil, owner)
	assert.Equal(t, http.StatusNotFound, status)

	var questionCount int64
	require.NoError(t, h.db.Model(&models.Question{}).Where("space_id = ?", spaceID).Count(&questionCount).Error)
	assert.Zero(t, questionCount)
}

func TestSpaceOwnership(t *testing.T) {
	h := newHarness(t)
	space := h.seedSpace(1)

	status, body := h.do(http.MethodPut, "/api/spaces", map[string]any{"id": space.ID, "spaceName": "mine now"}, 2)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", body["code"])

	status, _ = h.do(http.MethodDelete, "/api/spaces", map[string]any{"id": space.ID}, 2)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = h.do(http.MethodGet, "/api/spaces/"+id(space.ID), nil, 2)
	assert.Equal(t, http.StatusForbidden, status)

	var reloaded models.Space
	require.NoError(t, h.db.First(&reloaded, space.ID).Error)
	assert.Nil(t, reloaded.SpaceName)

	status, _ = h.do(http.MethodPut, "/api/spaces", map[string]any{"id": 9999}, 1)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = h.do(http.MethodPut, "/api/spaces", map[string]any{"spaceName": "no id"}, 1)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateUpload(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(http.MethodPost, "/api/uploads", map[string]any{
		"fileName":    "photo.jpg",
		"contentType": "image/jpeg",
	}, 0)
	require.Equal(t, http.StatusCreated, status, body)
	key := body["key"].(string)
	assert.Equal(t, "https://bucket.test/"+key, body["objectUrl"])
	assert.Equal(t, "https://signed.test/"+key+"?op=putObject", body["uploadUrl"])

	status, _ = h.do(http.MethodPost, "/api/uploads", map[string]any{
		"fileName":    "run.sh",
		"contentType": "text/x-shellscript",
	}, 0)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateReview_RejectsUnsignableUserPhoto(t *testing.T) {
	h := newHarness(t)
	space := h.seedSpace(1)
	h.seedReview(space.ID, true)

	for _, photo := range []any{"%zz", "people/ada.jpg", 42} {
		status, body := h.do(http.MethodPost, "/api/reviews", map[string]any{
			"spaceId":     space.ID,
			"reviewType":  "text",
			"reviewText":  "hi",
			"userDetails": map[string]any{"name": "Mallory", "userPhoto": photo},
		}, 9)
		assert.Equal(t, http.StatusBadRequest, status, photo)
		assert.Equal(t, "userDetails.userPhoto must be an absolute URL", body["message"])
	}
	assert.Empty(t, h.classifier.Texts())

	status, body := h.do(http.MethodGet, "/api/reviews?spaceId="+id(space.ID), nil, 1)
	require.Equal(t, http.StatusOK, status, body)
	assert.Len(t, body["reviews"].([]any), 1)

	status, _ = h.do(http.MethodGet, "/api/reviews/liked?spaceId="+id(space.ID), nil, 0)
	assert.Equal(t, http.StatusOK, status)
}

func TestUpdateSpace_NullClearsLogo(t *testing.T) {
	h := newHarness(t)
	space := h.seedSpace(1)

	status, body := h.do(http.MethodPut, "/api/spaces", map[string]any{"id": space.ID, "logo": nil}, 1)
	require.Equal(t, http.StatusOK, status, body)
	assert.Nil(t, body["logo"])

	var reloaded models.Space
	require.NoError(t, h.db.First(&reloaded, space.ID).Error)
	assert.Nil(t, reloaded.Logo)
}

func TestDeleteSpace_RemovesItsReviews(t *testing.T) {
	h := newHarness(t)
	space := h.seedSpace(1)
	h.seedReview(space.ID, true)
	require.NoError(t, h.db.Create(&models.CollectExtraInfo{SpaceID: space.ID}).Error)

	status, body := h.do(http.MethodDelete, "/api/spaces", map[string]any{"id": space.ID}, 1)
	require.Equal(t, http.StatusOK, status, body)

	status, body = h.do(http.MethodGet, "/api/reviews/liked?spaceId="+id(space.ID), nil, 0)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["reviews"])
	assert.Nil(t, body["spaceLogo"])
}
