package task

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockTask is a configurable Task implementation for tests.
type MockTask struct {
	TaskID      uuid.UUID
	TaskType    string
	TaskPayload []byte
	TaskStatus  TaskStatus
	ExecuteFn   func(ctx context.Context) error
}

// NewMockTask creates a MockTask in pending state with a no-op executor.
func NewMockTask(id uuid.UUID, taskType string, payload []byte) *MockTask {
	return &MockTask{
		TaskID:      id,
		TaskType:    taskType,
		TaskPayload: payload,
		TaskStatus:  TaskStatusPending,
		ExecuteFn:   func(ctx context.Context) error { return nil },
	}
}

func (t *MockTask) ID() uuid.UUID      { return t.TaskID }
func (t *MockTask) Type() string       { return t.TaskType }
func (t *MockTask) Payload() []byte    { return t.TaskPayload }
func (t *MockTask) Status() TaskStatus { return t.TaskStatus }
func (t *MockTask) Execute(ctx context.Context) error {
	return t.ExecuteFn(ctx)
}

// mockPayload is a sample payload structure used in tests.
type mockPayload struct {
	Message string    `json:"message"`
	Created time.Time `json:"created"`
}

// CreateMockTaskWithPayload builds a MockTask carrying a small JSON payload.
func CreateMockTaskWithPayload(message string) *MockTask {
	data, _ := json.Marshal(mockPayload{
		Message: message,
		Created: time.Now().UTC(),
	})
	return NewMockTask(uuid.New(), "mock_task", data)
}

// MockTaskStore is an in-memory TaskStore for tests. Its Save and
// UpdateStatus behaviors can be overridden per test.
type MockTaskStore struct {
	mutex           sync.RWMutex
	tasks           map[uuid.UUID]Task
	taskStatusTimes map[uuid.UUID]time.Time
	SaveFn          func(ctx context.Context, task Task) error
	UpdateStatusFn  func(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error
}

// NewMockTaskStore creates a MockTaskStore with default in-memory behaviors.
func NewMockTaskStore() *MockTaskStore {
	store := &MockTaskStore{
		tasks:           make(map[uuid.UUID]Task),
		taskStatusTimes: make(map[uuid.UUID]time.Time),
	}

	store.SaveFn = func(ctx context.Context, t Task) error {
		store.mutex.Lock()
		defer store.mutex.Unlock()

		mockTask, ok := t.(*MockTask)
		if !ok {
			// Wrap foreign implementations so status updates can be recorded.
			mockTask = NewMockTask(t.ID(), t.Type(), t.Payload())
			mockTask.TaskStatus = t.Status()
		}

		store.tasks[t.ID()] = mockTask
		store.taskStatusTimes[t.ID()] = time.Now()
		return nil
	}

	store.UpdateStatusFn = func(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error {
		store.mutex.Lock()
		defer store.mutex.Unlock()

		t, exists := store.tasks[taskID]
		if !exists {
			return nil // Missing task is a no-op, matching the real store
		}

		mockTask := t.(*MockTask)
		mockTask.TaskStatus = status
		store.tasks[taskID] = mockTask
		store.taskStatusTimes[taskID] = time.Now()
		return nil
	}

	return store
}

// SaveTask persists a task to the mock store
func (s *MockTaskStore) SaveTask(ctx context.Context, t Task) error {
	return s.SaveFn(ctx, t)
}

// UpdateTaskStatus updates the status of a task in the mock store
func (s *MockTaskStore) UpdateTaskStatus(
	ctx context.Context,
	taskID uuid.UUID,
	status TaskStatus,
	errorMsg string,
) error {
	return s.UpdateStatusFn(ctx, taskID, status, errorMsg)
}

// GetPendingTasks retrieves all tasks with "pending" status
func (s *MockTaskStore) GetPendingTasks(ctx context.Context) ([]Task, error) {
	return s.tasksWithStatus(TaskStatusPending, 0), nil
}

// GetProcessingTasks retrieves tasks with "processing" status, optionally
// filtered to those older than the given duration.
func (s *MockTaskStore) GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]Task, error) {
	return s.tasksWithStatus(TaskStatusProcessing, olderThan), nil
}

func (s *MockTaskStore) tasksWithStatus(status TaskStatus, olderThan time.Duration) []Task {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var matched []Task
	now := time.Now()
	for _, t := range s.tasks {
		if t.Status() != status {
			continue
		}
		statusTime, known := s.taskStatusTimes[t.ID()]
		if olderThan == 0 || (known && now.Sub(statusTime) > olderThan) {
			matched = append(matched, t)
		}
	}
	return matched
}

// StatusOf reports the stored status of a task, with false for unknown IDs.
func (s *MockTaskStore) StatusOf(taskID uuid.UUID) (TaskStatus, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	t, exists := s.tasks[taskID]
	if !exists {
		return "", false
	}
	return t.Status(), true
}

// SetStatusTime backdates a task's last status change, for stuck-task tests.
func (s *MockTaskStore) SetStatusTime(taskID uuid.UUID, at time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.taskStatusTimes[taskID] = at
}

// Ensure the mocks satisfy their interfaces
var (
	_ Task      = (*MockTask)(nil)
	_ TaskStore = (*MockTaskStore)(nil)
)
