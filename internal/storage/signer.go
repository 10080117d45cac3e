package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Operation names the object-storage action a signed URL grants.
type Operation string

const (
	OpGetObject Operation = "getObject"
	OpPutObject Operation = "putObject"
)

// DefaultTTL is the lifetime of a read URL when none is configured.
const DefaultTTL = time.Hour

var ErrEmptyKey = errors.New("object key is empty")

// PresignRequest describes one URL to sign. ContentType only applies to
// writes; when set, the upload must carry exactly that Content-Type.
type PresignRequest struct {
	Op          Operation
	Key         string
	TTL         time.Duration
	ContentType string
}

// Presigner issues a time-limited URL for one key in the bucket.
type Presigner interface {
	Presign(ctx context.Context, req PresignRequest) (string, error)
}

// Signer turns stored object references into temporary URLs. It is the
// single signing path used by every resource that exposes media.
type Signer struct {
	presigner Presigner
	ttl       time.Duration
}

func NewSigner(presigner Presigner, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{presigner: presigner, ttl: ttl}
}

// SignURL returns a read URL for a stored object reference, or nil when
// the reference is absent.
func (s *Signer) SignURL(ctx context.Context, objectURL *string) (*string, error) {
	if objectURL == nil || *objectURL == "" {
		return nil, nil
	}
	key, err := KeyFromURL(*objectURL)
	if err != nil {
		return nil, err
	}
	signed, err := s.Sign(ctx, key, OpGetObject, s.ttl)
	if err != nil {
		return nil, err
	}
	return &signed, nil
}

// Sign presigns key for op. A non-positive ttl uses the signer default.
func (s *Signer) Sign(ctx context.Context, key string, op Operation, ttl time.Duration) (string, error) {
	return s.presign(ctx, PresignRequest{Op: op, Key: key, TTL: ttl})
}

// SignUpload presigns a write of key that only accepts contentType.
func (s *Signer) SignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	if contentType == "" {
		return "", errors.New("upload content type is empty")
	}
	return s.presign(ctx, PresignRequest{Op: OpPutObject, Key: key, TTL: ttl, ContentType: contentType})
}

func (s *Signer) presign(ctx context.Context, req PresignRequest) (string, error) {
	if req.Key == "" {
		return "", ErrEmptyKey
	}
	if req.TTL <= 0 {
		req.TTL = s.ttl
	}
	signed, err := s.presigner.Presign(ctx, req)
	if err != nil {
		return "", fmt.Errorf("presign %s %q: %w", req.Op, req.Key, err)
	}
	return signed, nil
}

// KeyFromURL extracts the storage key from an absolute object URL (its
// path without the leading slash). Bare keys are returned as-is.
func KeyFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid object url %q: %w", raw, err)
	}
	key := raw
	if u.Scheme != "" {
		key = u.Path
	}
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", ErrEmptyKey
	}
	return key, nil
}
