package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// ReadingArchiveTaskFactory creates ReadingArchiveTask instances, both for
// fresh archive requests and for tasks recovered from the database.
type ReadingArchiveTaskFactory struct {
	archiver ReadingArchiver
	logger   *slog.Logger
}

// NewReadingArchiveTaskFactory creates a new factory for ReadingArchiveTasks
func NewReadingArchiveTaskFactory(
	archiver ReadingArchiver,
	logger *slog.Logger,
) *ReadingArchiveTaskFactory {
	return &ReadingArchiveTaskFactory{
		archiver: archiver,
		logger:   logger.With("component", "reading_archive_task_factory"),
	}
}

// CreateTask creates a new ReadingArchiveTask for the given reading
func (f *ReadingArchiveTaskFactory) CreateTask(reading *domain.Reading) (Task, error) {
	return NewReadingArchiveTask(reading, f.archiver, f.logger)
}

// ResolveExecutor rebuilds the execution function for a task row loaded from
// the database. The postgres task store calls this during recovery; it is
// the structural counterpart of its TaskExecutorResolver interface.
func (f *ReadingArchiveTaskFactory) ResolveExecutor(
	taskType string,
	payload []byte,
) (func(ctx context.Context) error, error) {
	if taskType != TaskTypeReadingArchive {
		return nil, fmt.Errorf("unsupported task type: %s", taskType)
	}

	var p readingArchivePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	t, err := NewReadingArchiveTask(p.Reading, f.archiver, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild archive task: %w", err)
	}

	return t.Execute, nil
}
