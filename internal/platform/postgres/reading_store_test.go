package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaolab/liuyao-api/internal/domain"
	"github.com/yaolab/liuyao-api/internal/store"
)

var readingColumns = []string{
	"id", "user_id", "question", "category", "hexagram_name",
	"trend", "share_code", "result", "created_at", "updated_at",
}

func newReadingStoreWithMock(t *testing.T) (*PostgresReadingStore, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create sqlmock")

	readingStore := NewPostgresReadingStore(db, nil)
	cleanup := func() {
		require.NoError(t, mock.ExpectationsWereMet(), "unmet sqlmock expectations")
		_ = db.Close()
	}

	return readingStore, mock, cleanup
}

func validTestReading(t *testing.T) *domain.Reading {
	t.Helper()

	now := time.Now().UTC()
	return &domain.Reading{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Question:     "换工作的时机如何",
		Category:     domain.CategoryCareer,
		HexagramName: "乾为天",
		Trend:        domain.Trend("favorable"),
		ShareCode:    "LY1-test-code",
		Result:       json.RawMessage(`{"primary":{"name":"乾为天"}}`),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestReadingStoreCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		readingStore, mock, cleanup := newReadingStoreWithMock(t)
		defer cleanup()

		reading := validTestReading(t)

		mock.ExpectExec("INSERT INTO readings").
			WithArgs(
				reading.ID,
				reading.UserID,
				reading.Question,
				string(reading.Category),
				reading.HexagramName,
				string(reading.Trend),
				reading.ShareCode,
				[]byte(reading.Result),
				reading.CreatedAt,
				reading.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, readingStore.Create(context.Background(), reading))
	})

	t.Run("replayed archive returns ErrReadingExists", func(t *testing.T) {
		readingStore, mock, cleanup := newReadingStoreWithMock(t)
		defer cleanup()

		reading := validTestReading(t)

		mock.ExpectExec("INSERT INTO readings").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "readings_pkey"})

		err := readingStore.Create(context.Background(), reading)
		assert.ErrorIs(t, err, store.ErrReadingExists)
		assert.True(t, store.IsDuplicateError(err))
	})

	t.Run("unknown user returns ErrInvalidEntity", func(t *testing.T) {
		readingStore, mock, cleanup := newReadingStoreWithMock(t)
		defer cleanup()

		reading := validTestReading(t)

		mock.ExpectExec("INSERT INTO readings").
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "readings_user_id_fkey"})

		err := readingStore.Create(context.Background(), reading)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.Contains(t, err.Error(), reading.UserID.String())
	})

	t.Run("validation failure skips the database", func(t *testing.T) {
		readingStore, _, cleanup := newReadingStoreWithMock(t)
		defer cleanup()

		reading := validTestReading(t)
		reading.Category = domain.Category("weather")

		err := readingStore.Create(context.Background(), reading)
		assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	})
}

func TestReadingStoreGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		readingStore, mock, cleanup := newReadingStoreWithMock(t)
		defer cleanup()

		reading := validTestReading(t)

		mock.ExpectQuery("SELECT (.+) FROM readings").
			WithArgs(reading.ID, reading.UserID).
			WillReturnRows(sqlmock.NewRows(readingColumns).AddRow(
				reading.ID.String(),
				reading.UserID.String(),
				reading.Question,
				string(reading.Category),
				reading.HexagramName,
				string(reading.Trend),
				reading.ShareCode,
				[]byte(reading.Result),
				reading.CreatedAt,
				reading.UpdatedAt,
			))

		got, err := readingStore.GetByID(context.Background(), reading.UserID, reading.ID)
		require.NoError(t, err)
		assert.Equal(t, reading.ID, got.ID)
		assert.Equal(t, reading.UserID, got.UserID)
		assert.Equal(t, domain.CategoryCareer, got.Category)
		assert.Equal(t, domain.Trend("favorable"), got.Trend)
		assert.JSONEq(t, string(reading.Result), string(got.Result))
	})

	t.Run("not found", func(t *testing.T) {
		readingStore, mock, cleanup := newReadingStoreWithMock(t)
		defer cleanup()

		userID := uuid.New()
		readingID := uuid.New()

		mock.ExpectQuery("SELECT (.+) FROM readings").
			WithArgs(readingID, userID).
			WillReturnError(sql.ErrNoRows)

		got, err := readingStore.GetByID(context.Background(), userID, readingID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrReadingNotFound)
	})

	t.Run("query is scoped to the owning user", func(t *testing.T) {
		readingStore, mock, cleanup := newReadingStoreWithMock(t)
		defer cleanup()

		stranger := uuid.New()
		readingID := uuid.New()

		// A reading owned by someone else yields no row at all.
		mock.ExpectQuery("SELECT (.+) FROM readings").
			WithArgs(readingID, stranger).
			WillReturnError(sql.ErrNoRows)

		_, err := readingStore.GetByID(context.Background(), stranger, readingID)
		assert.ErrorIs(t, err, store.ErrReadingNotFound)
	})
}

func TestReadingStoreList(t *testing.T) {
	t.Run("returns readings newest first", func(t *testing.T) {
		readingStore, mock, cleanup := newReadingStoreWithMock(t)
		defer cleanup()

		userID := uuid.New()
		newer := validTestReading(t)
		newer.UserID = userID
		older := validTestReading(t)
		older.UserID = userID
		older.CreatedAt = newer.CreatedAt.Add(-time.Hour)

		rows := sqlmock.NewRows(readingColumns)
		for _, r := range []*domain.Reading{newer, older} {
			rows.AddRow(
				r.ID.String(), r.UserID.String(), r.Question, string(r.Category),
				r.HexagramName, string(r.Trend), r.ShareCode, []byte(r.Result),
				r.CreatedAt, r.UpdatedAt,
			)
		}

		mock.ExpectQuery("SELECT (.+) FROM readings").
			WithArgs(userID, 2, 0).
			WillReturnRows(rows)

		readings, err := readingStore.List(context.Background(), userID, 2, 0)
		require.NoError(t, err)
		require.Len(t, readings, 2)
		assert.Equal(t, newer.ID, readings[0].ID)
		assert.Equal(t, older.ID, readings[1].ID)
	})

	t.Run("applies default limit and offset", func(t *testing.T) {
		readingStore, mock, cleanup := newReadingStoreWithMock(t)
		defer cleanup()

		userID := uuid.New()
		mock.ExpectQuery("SELECT (.+) FROM readings").
			WithArgs(userID, 10, 0).
			WillReturnRows(sqlmock.NewRows(readingColumns))

		readings, err := readingStore.List(context.Background(), userID, 0, -5)
		require.NoError(t, err)
		assert.NotNil(t, readings)
		assert.Empty(t, readings)
	})
}

func TestReadingStoreDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		readingStore, mock, cleanup := newReadingStoreWithMock(t)
		defer cleanup()

		userID := uuid.New()
		readingID := uuid.New()

		mock.ExpectExec("DELETE FROM readings").
			WithArgs(readingID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, readingStore.Delete(context.Background(), userID, readingID))
	})

	t.Run("missing or foreign reading returns ErrReadingNotFound", func(t *testing.T) {
		readingStore, mock, cleanup := newReadingStoreWithMock(t)
		defer cleanup()

		userID := uuid.New()
		readingID := uuid.New()

		mock.ExpectExec("DELETE FROM readings").
			WithArgs(readingID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := readingStore.Delete(context.Background(), userID, readingID)
		assert.ErrorIs(t, err, store.ErrReadingNotFound)
	})
}
