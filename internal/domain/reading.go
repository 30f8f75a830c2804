package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Reading
var (
	ErrEmptyReadingID     = errors.New("reading ID cannot be empty")
	ErrEmptyReadingUserID = errors.New("reading user ID cannot be empty")
	ErrEmptyReadingResult = errors.New("reading result cannot be empty")
	ErrInvalidReadingData = errors.New("reading result must be valid JSON")
)

// Reading is one archived casting belonging to a user. The full result is
// stored as a JSONB document; name, trend, category and share code are
// denormalized so listings never unpack the document.
type Reading struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Question     string          `json:"question"` // treated as sensitive in logs
	Category     Category        `json:"category"`
	HexagramName string          `json:"hexagram_name"`
	Trend        Trend           `json:"trend"`
	ShareCode    string          `json:"share_code"`
	Result       json.RawMessage `json:"result"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewReading archives a divination result for a user. The reading takes its
// ID and creation time from the result so that replaying an archive task
// stays idempotent.
func NewReading(userID uuid.UUID, question string, result *DivinationResult) (*Reading, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, errors.Join(ErrInvalidReadingData, err)
	}

	reading := &Reading{
		ID:           result.ID,
		UserID:       userID,
		Question:     question,
		Category:     result.Input.Category,
		HexagramName: result.Primary.Name,
		Trend:        result.Interpretation.Trend,
		ShareCode:    result.Input.ShareCode(),
		Result:       raw,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    time.Now().UTC(),
	}

	if err := reading.Validate(); err != nil {
		return nil, err
	}

	return reading, nil
}

// Validate checks if the Reading has valid data.
// Returns an error if any field fails validation.
func (r *Reading) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReadingID
	}

	if r.UserID == uuid.Nil {
		return ErrEmptyReadingUserID
	}

	if len(r.Result) == 0 {
		return ErrEmptyReadingResult
	}

	var js json.RawMessage
	if err := json.Unmarshal(r.Result, &js); err != nil {
		return ErrInvalidReadingData
	}

	if !r.Category.Valid() {
		return ErrInvalidCategory
	}

	return nil
}

// DecodeResult unpacks the archived result document.
func (r *Reading) DecodeResult() (*DivinationResult, error) {
	var result DivinationResult
	if err := json.Unmarshal(r.Result, &result); err != nil {
		return nil, errors.Join(ErrInvalidReadingData, err)
	}
	return &result, nil
}
