package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/yaolab/liuyao-api/internal/domain"
)

// ReadingStore defines the interface for archived reading persistence.
// Every retrieval is scoped to the owning user; a reading that exists but
// belongs to someone else is indistinguishable from one that does not exist.
//
// All operations are single statements. Account deletion removes readings
// through the schema's cascade, so there is no transactional variant here.
type ReadingStore interface {
	// Create archives a new reading.
	// It handles domain validation internally.
	// Returns ErrReadingExists if a reading with the same ID is already
	// stored (archive tasks may replay after a crash).
	Create(ctx context.Context, reading *domain.Reading) error

	// GetByID retrieves one of the user's readings by its unique ID.
	// Returns ErrReadingNotFound if the reading does not exist or belongs
	// to a different user.
	GetByID(ctx context.Context, userID, readingID uuid.UUID) (*domain.Reading, error)

	// List retrieves the user's readings ordered newest first.
	// Returns an empty slice if the user has no readings.
	// Can limit the number of results and paginate through offset.
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Reading, error)

	// Delete removes one of the user's readings by its ID.
	// Returns ErrReadingNotFound if the reading does not exist or belongs
	// to a different user.
	Delete(ctx context.Context, userID, readingID uuid.UUID) error
}
