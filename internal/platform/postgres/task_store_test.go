package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaolab/liuyao-api/internal/task"
)

// stubTask is a minimal task.Task for exercising the store.
type stubTask struct {
	id      uuid.UUID
	typ     string
	payload []byte
	status  task.TaskStatus
}

func (t *stubTask) ID() uuid.UUID                 { return t.id }
func (t *stubTask) Type() string                  { return t.typ }
func (t *stubTask) Payload() []byte               { return t.payload }
func (t *stubTask) Status() task.TaskStatus       { return t.status }
func (t *stubTask) Execute(context.Context) error { return nil }

// stubResolver returns a canned executor or error for every task row.
type stubResolver struct {
	called int
	err    error
	execFn func(ctx context.Context) error
}

func (r *stubResolver) ResolveExecutor(
	taskType string,
	payload []byte,
) (func(ctx context.Context) error, error) {
	r.called++
	if r.err != nil {
		return nil, r.err
	}
	return r.execFn, nil
}

var taskColumns = []string{
	"id", "type", "payload", "status", "error_message", "created_at", "updated_at",
}

func newTaskStoreWithMock(t *testing.T) (*PostgresTaskStore, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create sqlmock")

	taskStore := NewPostgresTaskStore(db)
	cleanup := func() {
		require.NoError(t, mock.ExpectationsWereMet(), "unmet sqlmock expectations")
		_ = db.Close()
	}

	return taskStore, mock, cleanup
}

func TestTaskStoreSaveTask(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		taskStore, mock, cleanup := newTaskStoreWithMock(t)
		defer cleanup()

		tsk := &stubTask{
			id:      uuid.New(),
			typ:     task.TaskTypeReadingArchive,
			payload: []byte(`{"reading":{}}`),
			status:  task.TaskStatusPending,
		}

		mock.ExpectExec("INSERT INTO tasks").
			WithArgs(
				tsk.id,
				task.TaskTypeReadingArchive,
				tsk.payload,
				string(task.TaskStatusPending),
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, taskStore.SaveTask(context.Background(), tsk))
	})

	t.Run("database error is wrapped", func(t *testing.T) {
		taskStore, mock, cleanup := newTaskStoreWithMock(t)
		defer cleanup()

		tsk := &stubTask{id: uuid.New(), typ: task.TaskTypeReadingArchive}
		dbErr := errors.New("disk full")

		mock.ExpectExec("INSERT INTO tasks").
			WillReturnError(dbErr)

		err := taskStore.SaveTask(context.Background(), tsk)
		assert.ErrorIs(t, err, dbErr)
		assert.Contains(t, err.Error(), "failed to save task")
	})
}

func TestTaskStoreUpdateTaskStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		taskStore, mock, cleanup := newTaskStoreWithMock(t)
		defer cleanup()

		taskID := uuid.New()
		mock.ExpectExec("UPDATE tasks").
			WithArgs(string(task.TaskStatusFailed), "archive failed", sqlmock.AnyArg(), taskID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := taskStore.UpdateTaskStatus(
			context.Background(), taskID, task.TaskStatusFailed, "archive failed")
		assert.NoError(t, err)
	})

	t.Run("missing task is a no-op", func(t *testing.T) {
		taskStore, mock, cleanup := newTaskStoreWithMock(t)
		defer cleanup()

		taskID := uuid.New()
		mock.ExpectExec("UPDATE tasks").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := taskStore.UpdateTaskStatus(
			context.Background(), taskID, task.TaskStatusCompleted, "")
		assert.NoError(t, err)
	})
}

func TestTaskStoreGetPendingTasks(t *testing.T) {
	t.Run("returns recovered tasks without executors by default", func(t *testing.T) {
		taskStore, mock, cleanup := newTaskStoreWithMock(t)
		defer cleanup()

		id := uuid.New()
		now := time.Now().UTC()

		mock.ExpectQuery("SELECT (.+) FROM tasks").
			WithArgs(string(task.TaskStatusPending)).
			WillReturnRows(sqlmock.NewRows(taskColumns).
				AddRow(id.String(), task.TaskTypeReadingArchive, []byte(`{}`),
					string(task.TaskStatusPending), nil, now, now))

		tasks, err := taskStore.GetPendingTasks(context.Background())
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, id, tasks[0].ID())
		assert.Equal(t, task.TaskTypeReadingArchive, tasks[0].Type())
		assert.Equal(t, task.TaskStatusPending, tasks[0].Status())

		// Without a resolver the task must refuse to run.
		err = tasks[0].Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no execution function")
	})

	t.Run("resolver attaches executors to recovered tasks", func(t *testing.T) {
		taskStore, mock, cleanup := newTaskStoreWithMock(t)
		defer cleanup()

		executed := false
		resolver := &stubResolver{execFn: func(ctx context.Context) error {
			executed = true
			return nil
		}}
		taskStore.SetExecutorResolver(resolver)

		id := uuid.New()
		now := time.Now().UTC()

		mock.ExpectQuery("SELECT (.+) FROM tasks").
			WithArgs(string(task.TaskStatusPending)).
			WillReturnRows(sqlmock.NewRows(taskColumns).
				AddRow(id.String(), task.TaskTypeReadingArchive, []byte(`{}`),
					string(task.TaskStatusPending), nil, now, now))

		tasks, err := taskStore.GetPendingTasks(context.Background())
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, 1, resolver.called)

		require.NoError(t, tasks[0].Execute(context.Background()))
		assert.True(t, executed)
	})

	t.Run("resolver failure leaves the task unrunnable", func(t *testing.T) {
		taskStore, mock, cleanup := newTaskStoreWithMock(t)
		defer cleanup()

		resolver := &stubResolver{err: errors.New("unsupported task type")}
		taskStore.SetExecutorResolver(resolver)

		id := uuid.New()
		now := time.Now().UTC()

		mock.ExpectQuery("SELECT (.+) FROM tasks").
			WithArgs(string(task.TaskStatusPending)).
			WillReturnRows(sqlmock.NewRows(taskColumns).
				AddRow(id.String(), "unknown_type", []byte(`{}`),
					string(task.TaskStatusPending), nil, now, now))

		tasks, err := taskStore.GetPendingTasks(context.Background())
		require.NoError(t, err)
		require.Len(t, tasks, 1)

		err = tasks[0].Execute(context.Background())
		assert.Error(t, err)
	})
}

func TestTaskStoreGetProcessingTasks(t *testing.T) {
	t.Run("age filter adds a cutoff argument", func(t *testing.T) {
		taskStore, mock, cleanup := newTaskStoreWithMock(t)
		defer cleanup()

		mock.ExpectQuery("SELECT (.+) FROM tasks").
			WithArgs(string(task.TaskStatusProcessing), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(taskColumns))

		tasks, err := taskStore.GetProcessingTasks(context.Background(), 30*time.Minute)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("zero age fetches all processing tasks", func(t *testing.T) {
		taskStore, mock, cleanup := newTaskStoreWithMock(t)
		defer cleanup()

		mock.ExpectQuery("SELECT (.+) FROM tasks").
			WithArgs(string(task.TaskStatusProcessing)).
			WillReturnRows(sqlmock.NewRows(taskColumns))

		tasks, err := taskStore.GetProcessingTasks(context.Background(), 0)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}
