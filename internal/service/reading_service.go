package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yaolab/liuyao-api/internal/domain"
	"github.com/yaolab/liuyao-api/internal/events"
	"github.com/yaolab/liuyao-api/internal/store"
	"github.com/yaolab/liuyao-api/internal/task"
)

// ReadingService provides archived reading operations for authenticated
// users. Casting stays synchronous; writing the result into the archive
// happens off the request path through the task runner.
type ReadingService interface {
	// CreateReading casts for the user and queues the result for archiving.
	// The returned reading is complete, but its persistence is asynchronous:
	// an immediate lookup may not find it yet.
	CreateReading(
		ctx context.Context,
		userID uuid.UUID,
		question string,
		req CastRequest,
	) (*domain.Reading, error)

	// GetReading retrieves one of the user's readings by its ID.
	GetReading(ctx context.Context, userID, readingID uuid.UUID) (*domain.Reading, error)

	// ListReadings retrieves the user's readings, newest first.
	ListReadings(
		ctx context.Context,
		userID uuid.UUID,
		limit, offset int,
	) ([]*domain.Reading, error)

	// DeleteReading removes one of the user's readings.
	DeleteReading(ctx context.Context, userID, readingID uuid.UUID) error
}

// ReadingServiceError wraps errors from the reading service with context.
type ReadingServiceError struct {
	// Operation is the operation that failed (e.g., "create_reading")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ReadingServiceError.
func (e *ReadingServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reading service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("reading service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ReadingServiceError) Unwrap() error {
	return e.Err
}

// NewReadingServiceError creates a new ReadingServiceError.
// Known sentinel errors are returned directly without wrapping.
func NewReadingServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrReadingNotFound) || errors.Is(err, store.ErrReadingNotFound) {
		return ErrReadingNotFound
	}

	return &ReadingServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// readingServiceImpl implements the ReadingService interface
type readingServiceImpl struct {
	castingService CastingService
	readingStore   store.ReadingStore
	eventEmitter   events.EventEmitter
	logger         *slog.Logger
}

// NewReadingService creates a new ReadingService.
// It returns an error if any of the required dependencies are nil.
func NewReadingService(
	castingService CastingService,
	readingStore store.ReadingStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (ReadingService, error) {
	if castingService == nil {
		return nil, &ReadingServiceError{
			Operation: "create_service",
			Message:   "castingService cannot be nil",
		}
	}
	if readingStore == nil {
		return nil, &ReadingServiceError{
			Operation: "create_service",
			Message:   "readingStore cannot be nil",
		}
	}
	if eventEmitter == nil {
		return nil, &ReadingServiceError{
			Operation: "create_service",
			Message:   "eventEmitter cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &readingServiceImpl{
		castingService: castingService,
		readingStore:   readingStore,
		eventEmitter:   eventEmitter,
		logger:         logger.With("component", "reading_service"),
	}, nil
}

// CreateReading casts for the user and emits an archive request event.
func (s *readingServiceImpl) CreateReading(
	ctx context.Context,
	userID uuid.UUID,
	question string,
	req CastRequest,
) (*domain.Reading, error) {
	// 1. Run the engine. Validation problems pass through untouched so the
	// API layer can list them for the caller.
	result, err := s.castingService.Cast(ctx, req)
	if err != nil {
		return nil, err
	}

	// 2. Assemble the archive entry.
	reading, err := domain.NewReading(userID, question, result)
	if err != nil {
		s.logger.Error("failed to assemble reading",
			"error", err,
			"user_id", userID,
			"result_id", result.ID)
		return nil, NewReadingServiceError("create_reading", "failed to assemble reading", err)
	}

	// 3. Create and emit the archive request event.
	event, err := task.NewReadingArchiveEvent(reading)
	if err != nil {
		s.logger.Error("failed to create archive event",
			"error", err,
			"reading_id", reading.ID,
			"user_id", userID)
		return nil, NewReadingServiceError("create_reading", "failed to create archive event", err)
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		if errors.Is(err, task.ErrQueueFull) {
			// The task row was persisted before the enqueue attempt;
			// recovery picks it up on the next sweep.
			s.logger.Warn("archive queue full, deferring to recovery",
				"reading_id", reading.ID,
				"user_id", userID,
				"event_id", event.ID)
		} else {
			s.logger.Error("failed to emit archive event",
				"error", err,
				"reading_id", reading.ID,
				"user_id", userID,
				"event_id", event.ID)
			return nil, NewReadingServiceError(
				"create_reading",
				"failed to emit archive event",
				err,
			)
		}
	}

	s.logger.Info("reading cast and queued for archiving",
		"reading_id", reading.ID,
		"user_id", userID,
		"category", reading.Category,
		"hexagram", reading.HexagramName)

	return reading, nil
}

// GetReading retrieves one of the user's readings by its ID.
func (s *readingServiceImpl) GetReading(
	ctx context.Context,
	userID, readingID uuid.UUID,
) (*domain.Reading, error) {
	reading, err := s.readingStore.GetByID(ctx, userID, readingID)
	if err != nil {
		if errors.Is(err, store.ErrReadingNotFound) {
			s.logger.Debug("reading not found",
				"reading_id", readingID,
				"user_id", userID)
		} else {
			s.logger.Error("failed to retrieve reading",
				"error", err,
				"reading_id", readingID,
				"user_id", userID)
		}
		return nil, NewReadingServiceError("get_reading", "failed to retrieve reading", err)
	}

	s.logger.Debug("retrieved reading successfully",
		"reading_id", readingID,
		"user_id", userID)

	return reading, nil
}

// ListReadings retrieves the user's readings, newest first.
func (s *readingServiceImpl) ListReadings(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Reading, error) {
	readings, err := s.readingStore.List(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list readings",
			"error", err,
			"user_id", userID,
			"limit", limit,
			"offset", offset)
		return nil, NewReadingServiceError("list_readings", "failed to list readings", err)
	}

	s.logger.Debug("listed readings successfully",
		"user_id", userID,
		"count", len(readings))

	return readings, nil
}

// DeleteReading removes one of the user's readings.
func (s *readingServiceImpl) DeleteReading(
	ctx context.Context,
	userID, readingID uuid.UUID,
) error {
	err := s.readingStore.Delete(ctx, userID, readingID)
	if err != nil {
		if errors.Is(err, store.ErrReadingNotFound) {
			s.logger.Debug("attempted to delete non-existent reading",
				"reading_id", readingID,
				"user_id", userID)
		} else {
			s.logger.Error("failed to delete reading",
				"error", err,
				"reading_id", readingID,
				"user_id", userID)
		}
		return NewReadingServiceError("delete_reading", "failed to delete reading", err)
	}

	s.logger.Info("reading deleted successfully",
		"reading_id", readingID,
		"user_id", userID)

	return nil
}
