package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yaolab/liuyao-api/internal/domain"
	"github.com/yaolab/liuyao-api/internal/events"
)

// TaskFactoryEventHandler bridges the event bus and the task runner: it turns
// reading archive request events into persisted, queued tasks.
type TaskFactoryEventHandler struct {
	taskFactory *ReadingArchiveTaskFactory
	taskRunner  TaskSubmitter
	logger      *slog.Logger
}

// NewTaskFactoryEventHandler creates a new event handler that uses the given
// task factory to create tasks and submits them to the provided runner.
func NewTaskFactoryEventHandler(
	taskFactory *ReadingArchiveTaskFactory,
	taskRunner TaskSubmitter,
	logger *slog.Logger,
) *TaskFactoryEventHandler {
	return &TaskFactoryEventHandler{
		taskFactory: taskFactory,
		taskRunner:  taskRunner,
		logger:      logger.With("component", "task_factory_event_handler"),
	}
}

// HandleEvent processes reading archive events by creating and submitting
// archive tasks. Events of any other type are ignored.
func (h *TaskFactoryEventHandler) HandleEvent(
	ctx context.Context,
	event *events.TaskRequestEvent,
) error {
	if event.Type != TaskTypeReadingArchive {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload readingArchivePayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Reading == nil {
		h.logger.Error("event payload has no reading", "event_id", event.ID)
		return fmt.Errorf("event payload has no reading")
	}

	t, err := h.taskFactory.CreateTask(payload.Reading)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"reading_id", payload.Reading.ID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.taskRunner.Submit(ctx, t); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", t.ID(),
			"reading_id", payload.Reading.ID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Info("task created and submitted successfully",
		"task_id", t.ID(),
		"reading_id", payload.Reading.ID,
		"event_id", event.ID)
	return nil
}

// Ensure TaskFactoryEventHandler implements events.EventHandler
var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)

// NewReadingArchiveEvent builds the TaskRequestEvent a service emits to
// request archiving. Keeping construction here pins the payload shape to the
// one the factory and handler expect.
func NewReadingArchiveEvent(reading *domain.Reading) (*events.TaskRequestEvent, error) {
	if reading == nil {
		return nil, ErrNilReading
	}
	return events.NewTaskRequestEvent(TaskTypeReadingArchive, readingArchivePayload{Reading: reading})
}
