package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaolab/liuyao-api/internal/domain"
	"github.com/yaolab/liuyao-api/internal/events"
	"github.com/yaolab/liuyao-api/internal/store"
	"github.com/yaolab/liuyao-api/internal/task"
)

// mockReadingStore implements store.ReadingStore over a map.
type mockReadingStore struct {
	readings  map[uuid.UUID]*domain.Reading
	getErr    error
	listErr   error
	deleteErr error
}

func newMockReadingStore() *mockReadingStore {
	return &mockReadingStore{readings: make(map[uuid.UUID]*domain.Reading)}
}

func (m *mockReadingStore) Create(ctx context.Context, reading *domain.Reading) error {
	m.readings[reading.ID] = reading
	return nil
}

func (m *mockReadingStore) GetByID(
	ctx context.Context,
	userID, readingID uuid.UUID,
) (*domain.Reading, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	reading, ok := m.readings[readingID]
	if !ok || reading.UserID != userID {
		return nil, store.ErrReadingNotFound
	}
	return reading, nil
}

func (m *mockReadingStore) List(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Reading, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := []*domain.Reading{}
	for _, reading := range m.readings {
		if reading.UserID == userID {
			result = append(result, reading)
		}
	}
	return result, nil
}

func (m *mockReadingStore) Delete(ctx context.Context, userID, readingID uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	reading, ok := m.readings[readingID]
	if !ok || reading.UserID != userID {
		return store.ErrReadingNotFound
	}
	delete(m.readings, readingID)
	return nil
}

// captureEmitter records emitted events and can be configured to fail.
type captureEmitter struct {
	emitted []*events.TaskRequestEvent
	err     error
}

func (e *captureEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if e.err != nil {
		return e.err
	}
	e.emitted = append(e.emitted, event)
	return nil
}

func validCastRequest() CastRequest {
	return CastRequest{
		Method:   domain.MethodManual,
		Draws:    []domain.DrawValue{7, 8, 7, 8, 7, 9},
		CastAt:   time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		Category: domain.CategoryCareer,
	}
}

func newTestReadingService(
	t *testing.T,
	readingStore store.ReadingStore,
	emitter events.EventEmitter,
) ReadingService {
	t.Helper()

	fixedTime := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	svc, err := NewReadingService(
		newTestCastingService(fixedTime, 42),
		readingStore,
		emitter,
		testLogger(),
	)
	require.NoError(t, err)
	return svc
}

func TestNewReadingService(t *testing.T) {
	t.Parallel()

	castingSvc := newTestCastingService(time.Now(), 42)
	readingStore := newMockReadingStore()
	emitter := &captureEmitter{}

	t.Run("fails with nil casting service", func(t *testing.T) {
		t.Parallel()
		svc, err := NewReadingService(nil, readingStore, emitter, testLogger())
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("fails with nil reading store", func(t *testing.T) {
		t.Parallel()
		svc, err := NewReadingService(castingSvc, nil, emitter, testLogger())
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("fails with nil event emitter", func(t *testing.T) {
		t.Parallel()
		svc, err := NewReadingService(castingSvc, readingStore, nil, testLogger())
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("accepts nil logger", func(t *testing.T) {
		t.Parallel()
		svc, err := NewReadingService(castingSvc, readingStore, emitter, nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestCreateReading(t *testing.T) {
	t.Parallel()

	t.Run("casts and emits an archive event", func(t *testing.T) {
		t.Parallel()
		emitter := &captureEmitter{}
		svc := newTestReadingService(t, newMockReadingStore(), emitter)
		userID := uuid.New()

		reading, err := svc.CreateReading(
			context.Background(),
			userID,
			"升职的机会大吗",
			validCastRequest(),
		)
		require.NoError(t, err)

		assert.Equal(t, userID, reading.UserID)
		assert.Equal(t, "升职的机会大吗", reading.Question)
		assert.Equal(t, domain.CategoryCareer, reading.Category)
		assert.NotEmpty(t, reading.HexagramName)
		assert.NotEmpty(t, reading.ShareCode)

		require.Len(t, emitter.emitted, 1)
		event := emitter.emitted[0]
		assert.Equal(t, task.TaskTypeReadingArchive, event.Type)

		var payload struct {
			Reading *domain.Reading `json:"reading"`
		}
		require.NoError(t, event.UnmarshalPayload(&payload))
		require.NotNil(t, payload.Reading)
		assert.Equal(t, reading.ID, payload.Reading.ID)
	})

	t.Run("invalid input emits nothing", func(t *testing.T) {
		t.Parallel()
		emitter := &captureEmitter{}
		svc := newTestReadingService(t, newMockReadingStore(), emitter)

		req := validCastRequest()
		req.Category = domain.Category("horoscope")

		reading, err := svc.CreateReading(context.Background(), uuid.New(), "q", req)
		require.Error(t, err)
		assert.Nil(t, reading)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, emitter.emitted)
	})

	t.Run("full queue still succeeds", func(t *testing.T) {
		t.Parallel()
		emitter := &captureEmitter{err: task.ErrQueueFull}
		svc := newTestReadingService(t, newMockReadingStore(), emitter)

		reading, err := svc.CreateReading(
			context.Background(),
			uuid.New(),
			"q",
			validCastRequest(),
		)
		require.NoError(t, err)
		assert.NotNil(t, reading)
	})

	t.Run("emit failure surfaces as a service error", func(t *testing.T) {
		t.Parallel()
		emitter := &captureEmitter{err: errors.New("bus unavailable")}
		svc := newTestReadingService(t, newMockReadingStore(), emitter)

		reading, err := svc.CreateReading(
			context.Background(),
			uuid.New(),
			"q",
			validCastRequest(),
		)
		require.Error(t, err)
		assert.Nil(t, reading)

		var svcErr *ReadingServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create_reading", svcErr.Operation)
	})
}

func TestGetReading(t *testing.T) {
	t.Parallel()

	t.Run("returns the user's reading", func(t *testing.T) {
		t.Parallel()
		readingStore := newMockReadingStore()
		svc := newTestReadingService(t, readingStore, &captureEmitter{})
		userID := uuid.New()

		created, err := svc.CreateReading(context.Background(), userID, "q", validCastRequest())
		require.NoError(t, err)
		require.NoError(t, readingStore.Create(context.Background(), created))

		got, err := svc.GetReading(context.Background(), userID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("maps missing reading to the service sentinel", func(t *testing.T) {
		t.Parallel()
		svc := newTestReadingService(t, newMockReadingStore(), &captureEmitter{})

		got, err := svc.GetReading(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, ErrReadingNotFound)
		assert.Nil(t, got)
	})

	t.Run("another user's reading is not found", func(t *testing.T) {
		t.Parallel()
		readingStore := newMockReadingStore()
		svc := newTestReadingService(t, readingStore, &captureEmitter{})
		owner := uuid.New()

		created, err := svc.CreateReading(context.Background(), owner, "q", validCastRequest())
		require.NoError(t, err)
		require.NoError(t, readingStore.Create(context.Background(), created))

		got, err := svc.GetReading(context.Background(), uuid.New(), created.ID)
		assert.ErrorIs(t, err, ErrReadingNotFound)
		assert.Nil(t, got)
	})

	t.Run("wraps unexpected store errors", func(t *testing.T) {
		t.Parallel()
		readingStore := newMockReadingStore()
		readingStore.getErr = errors.New("connection reset")
		svc := newTestReadingService(t, readingStore, &captureEmitter{})

		got, err := svc.GetReading(context.Background(), uuid.New(), uuid.New())
		require.Error(t, err)
		assert.Nil(t, got)

		var svcErr *ReadingServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "get_reading", svcErr.Operation)
	})
}

func TestListReadings(t *testing.T) {
	t.Parallel()

	t.Run("returns only the user's readings", func(t *testing.T) {
		t.Parallel()
		readingStore := newMockReadingStore()
		svc := newTestReadingService(t, readingStore, &captureEmitter{})
		userID := uuid.New()

		mine, err := svc.CreateReading(context.Background(), userID, "q", validCastRequest())
		require.NoError(t, err)
		require.NoError(t, readingStore.Create(context.Background(), mine))

		other, err := svc.CreateReading(context.Background(), uuid.New(), "q", validCastRequest())
		require.NoError(t, err)
		require.NoError(t, readingStore.Create(context.Background(), other))

		readings, err := svc.ListReadings(context.Background(), userID, 10, 0)
		require.NoError(t, err)
		require.Len(t, readings, 1)
		assert.Equal(t, mine.ID, readings[0].ID)
	})

	t.Run("wraps store errors", func(t *testing.T) {
		t.Parallel()
		readingStore := newMockReadingStore()
		readingStore.listErr = errors.New("connection reset")
		svc := newTestReadingService(t, readingStore, &captureEmitter{})

		readings, err := svc.ListReadings(context.Background(), uuid.New(), 10, 0)
		require.Error(t, err)
		assert.Nil(t, readings)
	})
}

func TestDeleteReading(t *testing.T) {
	t.Parallel()

	t.Run("deletes the user's reading", func(t *testing.T) {
		t.Parallel()
		readingStore := newMockReadingStore()
		svc := newTestReadingService(t, readingStore, &captureEmitter{})
		userID := uuid.New()

		created, err := svc.CreateReading(context.Background(), userID, "q", validCastRequest())
		require.NoError(t, err)
		require.NoError(t, readingStore.Create(context.Background(), created))

		require.NoError(t, svc.DeleteReading(context.Background(), userID, created.ID))

		_, err = svc.GetReading(context.Background(), userID, created.ID)
		assert.ErrorIs(t, err, ErrReadingNotFound)
	})

	t.Run("maps missing reading to the service sentinel", func(t *testing.T) {
		t.Parallel()
		svc := newTestReadingService(t, newMockReadingStore(), &captureEmitter{})

		err := svc.DeleteReading(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, ErrReadingNotFound)
	})
}
