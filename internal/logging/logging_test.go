package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestDBHandler_PersistsErrors(t *testing.T) {
	db := testutil.NewDB(t)
	h := logging.NewDBHandler(db)
	t.Cleanup(h.Stop)

	var stdout bytes.Buffer
	logger := slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(&stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		h,
	)).With("request_id", "req-1")

	logger.Info("review listed", "path", "/api/reviews")
	logger.Error("Failed to delete review",
		"method", "DELETE",
		"path", "/api/reviews",
		"user_id", uint(7),
		"error", errors.New("record not found"),
		"review_id", 12,
	)
	h.Flush()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1, "only ERROR+ records reach the database")

	entry := logs[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "Failed to delete review", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "DELETE", entry.Method)
	assert.Equal(t, "/api/reviews", entry.Path)
	assert.Equal(t, "record not found", entry.Error)
	require.NotNil(t, entry.UserID)
	assert.EqualValues(t, 7, *entry.UserID)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.EqualValues(t, 12, extra["review_id"])

	lines := bytes.Count(stdout.Bytes(), []byte("\n"))
	assert.Equal(t, 2, lines, "stdout receives every record")
}

func TestMultiHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	m := logging.NewMultiHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	assert.False(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, m.Enabled(context.Background(), slog.LevelError))
}

func TestPruneLogs(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Now().UTC()
	require.NoError(t, db.Create(&[]models.SystemLog{
		{Timestamp: now.Add(-40 * 24 * time.Hour), Level: "ERROR", Message: "old"},
		{Timestamp: now.Add(-time.Hour), Level: "ERROR", Message: "recent"},
	}).Error)

	n, err := logging.PruneLogs(db, now.Add(-logging.Retention))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var remaining []models.SystemLog
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "recent", remaining[0].Message)
}
