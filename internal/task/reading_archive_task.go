package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yaolab/liuyao-api/internal/domain"
	"github.com/yaolab/liuyao-api/internal/store"
)

// Common errors
var (
	ErrNilReadingArchiver = errors.New("reading archiver cannot be nil")
	ErrNilLogger          = errors.New("logger cannot be nil")
	ErrNilReading         = errors.New("reading cannot be nil")
)

// ReadingArchiver defines the single persistence operation the archive task
// needs. store.ReadingStore satisfies it.
type ReadingArchiver interface {
	// Create archives a reading.
	Create(ctx context.Context, reading *domain.Reading) error
}

// readingArchivePayload is the serialized form of the task, shared with the
// event that requested it. The payload carries the complete reading so a
// recovered task can run without any other lookup.
type readingArchivePayload struct {
	Reading *domain.Reading `json:"reading"`
}

// ReadingArchiveTask implements the Task interface for writing a cast
// reading into the owner's archive.
type ReadingArchiveTask struct {
	id       uuid.UUID
	reading  *domain.Reading
	archiver ReadingArchiver
	logger   *slog.Logger
	status   TaskStatus
}

// NewReadingArchiveTask creates a new archive task for the given reading.
// The reading must already be fully assembled and valid.
func NewReadingArchiveTask(
	reading *domain.Reading,
	archiver ReadingArchiver,
	logger *slog.Logger,
) (*ReadingArchiveTask, error) {
	if archiver == nil {
		return nil, ErrNilReadingArchiver
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if reading == nil {
		return nil, ErrNilReading
	}
	if err := reading.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reading: %w", err)
	}

	return &ReadingArchiveTask{
		id:       uuid.New(),
		reading:  reading,
		archiver: archiver,
		logger: logger.With(
			"task_type", TaskTypeReadingArchive,
			"reading_id", reading.ID,
		),
		status: TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *ReadingArchiveTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *ReadingArchiveTask) Type() string {
	return TaskTypeReadingArchive
}

// Payload returns the task data as a byte slice
func (t *ReadingArchiveTask) Payload() []byte {
	data, err := json.Marshal(readingArchivePayload{Reading: t.reading})
	if err != nil {
		// If marshal fails, return an empty payload with error logged
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *ReadingArchiveTask) Status() TaskStatus {
	return t.status
}

// Execute archives the reading. A duplicate reading counts as success: tasks
// replay after crashes, and the first write already holds the same content.
func (t *ReadingArchiveTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("archiving reading", "user_id", t.reading.UserID)

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("task cancelled by context", "error", err)
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	err := t.archiver.Create(ctx, t.reading)
	if err != nil {
		if store.IsDuplicateError(err) {
			t.status = TaskStatusCompleted
			t.logger.Info("reading already archived, treating as success")
			return nil
		}

		t.status = TaskStatusFailed
		t.logger.Error("failed to archive reading", "error", err)
		return fmt.Errorf("failed to archive reading: %w", err)
	}

	t.status = TaskStatusCompleted
	t.logger.Info("reading archived", "user_id", t.reading.UserID)
	return nil
}
