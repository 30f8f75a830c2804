package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/yaolab/liuyao-api/internal/domain"
	"github.com/yaolab/liuyao-api/internal/service"
)

// MockReadingService implements service.ReadingService for testing.
type MockReadingService struct {
	// Custom behavior functions
	CreateReadingFn func(ctx context.Context, userID uuid.UUID, question string, req service.CastRequest) (*domain.Reading, error)
	GetReadingFn    func(ctx context.Context, userID, readingID uuid.UUID) (*domain.Reading, error)
	ListReadingsFn  func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Reading, error)
	DeleteReadingFn func(ctx context.Context, userID, readingID uuid.UUID) error

	// Default response values
	Reading  *domain.Reading
	Readings []*domain.Reading
	Err      error

	// Call tracking for verification
	CreateReadingCalls struct {
		mu        sync.Mutex
		Count     int
		UserIDs   []uuid.UUID
		Questions []string
		Requests  []service.CastRequest
	}
}

// CreateReading implements the service.ReadingService interface.
func (m *MockReadingService) CreateReading(
	ctx context.Context,
	userID uuid.UUID,
	question string,
	req service.CastRequest,
) (*domain.Reading, error) {
	m.CreateReadingCalls.mu.Lock()
	m.CreateReadingCalls.Count++
	m.CreateReadingCalls.UserIDs = append(m.CreateReadingCalls.UserIDs, userID)
	m.CreateReadingCalls.Questions = append(m.CreateReadingCalls.Questions, question)
	m.CreateReadingCalls.Requests = append(m.CreateReadingCalls.Requests, req)
	m.CreateReadingCalls.mu.Unlock()

	if m.CreateReadingFn != nil {
		return m.CreateReadingFn(ctx, userID, question, req)
	}
	return m.Reading, m.Err
}

// GetReading implements the service.ReadingService interface.
func (m *MockReadingService) GetReading(
	ctx context.Context,
	userID, readingID uuid.UUID,
) (*domain.Reading, error) {
	if m.GetReadingFn != nil {
		return m.GetReadingFn(ctx, userID, readingID)
	}
	return m.Reading, m.Err
}

// ListReadings implements the service.ReadingService interface.
func (m *MockReadingService) ListReadings(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Reading, error) {
	if m.ListReadingsFn != nil {
		return m.ListReadingsFn(ctx, userID, limit, offset)
	}
	return m.Readings, m.Err
}

// DeleteReading implements the service.ReadingService interface.
func (m *MockReadingService) DeleteReading(
	ctx context.Context,
	userID, readingID uuid.UUID,
) error {
	if m.DeleteReadingFn != nil {
		return m.DeleteReadingFn(ctx, userID, readingID)
	}
	return m.Err
}
