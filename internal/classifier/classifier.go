package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/config"
)

// Verdict is the spam/sentiment result for a piece of review text.
type Verdict struct {
	IsSpam    bool   `json:"isSpam"`
	Sentiment string `json:"sentiment"`
}

// Classifier labels free text.
type Classifier interface {
	Classify(ctx context.Context, text string) (*Verdict, error)
}

// New returns the remote classifier when AI_BASE_URL is configured and the
// local content filter otherwise.
func New(cfg *config.Config) Classifier {
	if cfg.AIBaseURL == "" {
		return NewContentFilter()
	}
	return NewHTTPClassifier(cfg.AIBaseURL, cfg.AITimeout)
}

// HTTPClassifier calls the spam/sentiment service.
type HTTPClassifier struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClassifier(baseURL string, timeout time.Duration) *HTTPClassifier {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClassifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type detectRequest struct {
	ReviewText string `json:"reviewText"`
}

func (c *HTTPClassifier) Classify(ctx context.Context, text string) (*Verdict, error) {
	reqBody, err := json.Marshal(detectRequest{ReviewText: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect_spam_sentiment", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned %d: %s", resp.StatusCode, string(body))
	}

	var verdict Verdict
	if err := json.Unmarshal(body, &verdict); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w", err)
	}
	return &verdict, nil
}
