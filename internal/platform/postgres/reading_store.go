package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yaolab/liuyao-api/internal/domain"
	"github.com/yaolab/liuyao-api/internal/platform/logger"
	"github.com/yaolab/liuyao-api/internal/store"
)

// PostgresReadingStore implements the store.ReadingStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReadingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReadingStore creates a new PostgreSQL implementation of the ReadingStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReadingStore(db store.DBTX, logger *slog.Logger) *PostgresReadingStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReadingStore{
		db:     db,
		logger: logger.With(slog.String("component", "reading_store")),
	}
}

// Ensure PostgresReadingStore implements store.ReadingStore interface
var _ store.ReadingStore = (*PostgresReadingStore)(nil)

// Create implements store.ReadingStore.Create
// It archives a new reading, storing the full result document as JSONB next
// to the denormalized listing columns.
// Returns store.ErrReadingExists if a reading with the same ID already exists,
// which replayed archive tasks treat as success.
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresReadingStore) Create(ctx context.Context, reading *domain.Reading) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := reading.Validate(); err != nil {
		log.Warn("reading validation failed during create",
			slog.String("error", err.Error()),
			slog.String("reading_id", reading.ID.String()))
		return err
	}

	query := `
		INSERT INTO readings (id, user_id, question, category, hexagram_name,
			trend, share_code, result, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		reading.ID,
		reading.UserID,
		reading.Question,
		reading.Category,
		reading.HexagramName,
		reading.Trend,
		reading.ShareCode,
		[]byte(reading.Result),
		reading.CreatedAt,
		reading.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("reading already archived",
				slog.String("reading_id", reading.ID.String()),
				slog.String("user_id", reading.UserID.String()))
			return MapUniqueViolation(err, "", "", store.ErrReadingExists)
		}

		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during reading creation",
				slog.String("error", err.Error()),
				slog.String("reading_id", reading.ID.String()),
				slog.String("user_id", reading.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, reading.UserID)
		}

		log.Error("failed to create reading",
			slog.String("error", err.Error()),
			slog.String("reading_id", reading.ID.String()),
			slog.String("user_id", reading.UserID.String()))
		return MapError(err)
	}

	log.Info("reading archived successfully",
		slog.String("reading_id", reading.ID.String()),
		slog.String("user_id", reading.UserID.String()),
		slog.String("hexagram", reading.HexagramName))
	return nil
}

// GetByID implements store.ReadingStore.GetByID
// It retrieves one of the user's readings by its unique ID. The query is
// scoped to the owning user, so a reading belonging to someone else looks
// exactly like a missing one.
// Returns store.ErrReadingNotFound if no matching reading exists.
func (s *PostgresReadingStore) GetByID(
	ctx context.Context,
	userID, readingID uuid.UUID,
) (*domain.Reading, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving reading by ID",
		slog.String("reading_id", readingID.String()),
		slog.String("user_id", userID.String()))

	query := `
		SELECT id, user_id, question, category, hexagram_name,
			trend, share_code, result, created_at, updated_at
		FROM readings
		WHERE id = $1 AND user_id = $2
	`

	reading, err := scanReading(s.db.QueryRowContext(ctx, query, readingID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("reading not found",
				slog.String("reading_id", readingID.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrReadingNotFound
		}
		log.Error("failed to get reading by ID",
			slog.String("error", err.Error()),
			slog.String("reading_id", readingID.String()))
		return nil, MapError(err)
	}

	return reading, nil
}

// List implements store.ReadingStore.List
// It retrieves the user's readings ordered newest first.
// Returns an empty slice if the user has no readings.
func (s *PostgresReadingStore) List(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Reading, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 10 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	log.Debug("listing readings",
		slog.String("user_id", userID.String()),
		slog.Int("limit", limit),
		slog.Int("offset", offset))

	query := `
		SELECT id, user_id, question, category, hexagram_name,
			trend, share_code, result, created_at, updated_at
		FROM readings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error("failed to query readings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var readings []*domain.Reading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			log.Error("failed to scan reading row",
				slog.String("error", err.Error()))
			return nil, err
		}
		readings = append(readings, reading)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no readings found
	if readings == nil {
		readings = []*domain.Reading{}
	}

	log.Debug("listed readings",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(readings)))
	return readings, nil
}

// Delete implements store.ReadingStore.Delete
// It removes one of the user's readings. Like GetByID, the statement is scoped
// to the owning user.
// Returns store.ErrReadingNotFound if no matching reading exists.
func (s *PostgresReadingStore) Delete(ctx context.Context, userID, readingID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM readings
		WHERE id = $1 AND user_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, readingID, userID)
	if err != nil {
		log.Error("failed to delete reading",
			slog.String("error", err.Error()),
			slog.String("reading_id", readingID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("reading_id", readingID.String()))
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		log.Debug("reading not found for delete",
			slog.String("reading_id", readingID.String()),
			slog.String("user_id", userID.String()))
		return store.ErrReadingNotFound
	}

	log.Info("reading deleted successfully",
		slog.String("reading_id", readingID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanReading maps one readings row onto a domain.Reading.
func scanReading(row rowScanner) (*domain.Reading, error) {
	var reading domain.Reading
	var category, trend string
	var result []byte

	err := row.Scan(
		&reading.ID,
		&reading.UserID,
		&reading.Question,
		&category,
		&reading.HexagramName,
		&trend,
		&reading.ShareCode,
		&result,
		&reading.CreatedAt,
		&reading.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	reading.Category = domain.Category(category)
	reading.Trend = domain.Trend(trend)
	reading.Result = result

	return &reading, nil
}
