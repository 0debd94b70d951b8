package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type failingHandler struct{ calls int }

func (f *failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (f *failingHandler) Handle(context.Context, slog.Record) error {
	f.calls++
	return errors.New("sink unavailable")
}

func (f *failingHandler) WithAttrs([]slog.Attr) slog.Handler { return f }

func (f *failingHandler) WithGroup(string) slog.Handler { return f }

func TestMultiHandler_ContinuesAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	failing := &failingHandler{}
	h := NewMultiHandler(failing, slog.NewJSONHandler(&buf, nil))

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "boom", 0))

	assert.Error(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Contains(t, buf.String(), `"msg":"boom"`)
}

func TestMultiHandler_EnabledIfAny(t *testing.T) {
	debug := slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})
	h := NewMultiHandler(&PGHandler{}, debug)

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, NewMultiHandler(&PGHandler{}).Enabled(context.Background(), slog.LevelInfo))
}

func TestToSystemLog_MapsRequestAttrs(t *testing.T) {
	record := slog.NewRecord(time.Now(), slog.LevelError, "request failed", 0)
	record.AddAttrs(
		slog.String("request_id", "req-1"),
		slog.String("method", "PUT"),
		slog.String("path", "/api/requests/5"),
		slog.String("actor_id", "staff:2"),
		slog.String("action", "visit.update"),
		slog.String("error", "connection reset"),
		slog.Int("attempt", 2),
	)

	entry := toSystemLog(record, []slog.Attr{slog.String("service", "api")})

	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "PUT", entry.Method)
	assert.Equal(t, "/api/requests/5", entry.Path)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, "staff:2", *entry.ActorID)
	assert.Equal(t, "visit.update", entry.Action)
	assert.Equal(t, "connection reset", entry.Error)

	extra := map[string]any{}
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, "api", extra["service"])
	assert.Equal(t, float64(2), extra["attempt"])
}

func TestToSystemLog_EmptyActorIsNil(t *testing.T) {
	record := slog.NewRecord(time.Now(), slog.LevelError, "x", 0)
	record.AddAttrs(slog.String("actor_id", ""))

	entry := toSystemLog(record, nil)

	assert.Nil(t, entry.ActorID)
	assert.Nil(t, entry.Extra)
}

func TestPGHandler_WithAttrsSharesBuffer(t *testing.T) {
	base := &PGHandler{sink: &pgSink{}}
	child := base.WithAttrs([]slog.Attr{slog.String("action", "boot")}).(*PGHandler)

	require.NoError(t, child.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "x", 0)))

	require.Len(t, base.sink.buffer, 1)
	assert.Equal(t, "boot", base.sink.buffer[0].Action)
	assert.Empty(t, base.attrs)
}

func TestPurgeBefore(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "system_logs" WHERE timestamp < $1`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	deleted, err := PurgeBefore(db, cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
