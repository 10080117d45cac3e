// Package testutil holds fakes and fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/storage"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// SignedURL is the URL Presigner returns for a read of key.
func SignedURL(key string) string {
	return "https://signed.test/" + key + "?op=" + string(storage.OpGetObject)
}

// Presigner records every presign request and returns predictable URLs.
type Presigner struct {
	mu       sync.Mutex
	requests []storage.PresignRequest
	Err      error
}

func (p *Presigner) Presign(_ context.Context, req storage.PresignRequest) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	if p.Err != nil {
		return "", p.Err
	}
	return "https://signed.test/" + req.Key + "?op=" + string(req.Op), nil
}

// Calls lists the presigned requests as "op:key".
func (p *Presigner) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	calls := make([]string, 0, len(p.requests))
	for _, r := range p.requests {
		calls = append(calls, string(r.Op)+":"+r.Key)
	}
	return calls
}

func (p *Presigner) Requests() []storage.PresignRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]storage.PresignRequest(nil), p.requests...)
}

// NewSigner wraps p in a storage.Signer with the default TTL.
func NewSigner(p *Presigner) *storage.Signer {
	return storage.NewSigner(p, storage.DefaultTTL)
}

// Classifier returns a fixed verdict and records the texts it was given.
type Classifier struct {
	mu      sync.Mutex
	texts   []string
	Verdict classifier.Verdict
	Err     error
}

func (c *Classifier) Classify(_ context.Context, text string) (*classifier.Verdict, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texts = append(c.texts, text)
	if c.Err != nil {
		return nil, c.Err
	}
	v := c.Verdict
	return &v, nil
}

func (c *Classifier) Texts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.texts...)
}

func StrPtr(s string) *string { return &s }

func BoolPtr(b bool) *bool { return &b }

func IntPtr(i int) *int { return &i }
