package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/yaolab/liuyao-api/internal/domain"
	"github.com/yaolab/liuyao-api/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
// The new password carries the same bounds as registration.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,min=1"`
	NewPassword     string `json:"new_password"     validate:"required,min=12,max=72"`
}

// DeleteAccountRequest defines the payload for the account deletion endpoint.
type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CastingRequest defines the payload for the casting endpoints. Semantic
// checks on method, category, seeker and draw values belong to the engine,
// which reports every problem at once; the validate tags cover only presence
// and transport limits.
type CastingRequest struct {
	// Method selects how the six draws are produced: "coin", "time" or "manual".
	Method string `json:"method" validate:"required"`

	// Draws lists the six line values (6..9), bottom line first.
	// Required for the manual method, ignored otherwise.
	Draws []int `json:"draws,omitempty"`

	// Seed fixes the coin simulation for reproducible casts.
	Seed *int64 `json:"seed,omitempty"`

	// CastAt overrides the casting moment. Defaults to the current time.
	CastAt *time.Time `json:"cast_at,omitempty"`

	// Category names the question domain, e.g. "career" or "marriage".
	Category string `json:"category" validate:"required"`

	// Subtype narrows the category, e.g. "interview" under "career".
	Subtype string `json:"subtype,omitempty" validate:"omitempty,max=100"`

	// Seeker is the asker's stated gender, used by some category rules.
	Seeker string `json:"seeker,omitempty"`
}

// toCastRequest converts the transport payload into a service cast request.
func (r CastingRequest) toCastRequest() service.CastRequest {
	req := service.CastRequest{
		Method:   domain.CastingMethod(r.Method),
		Seed:     r.Seed,
		Category: domain.Category(r.Category),
		Subtype:  r.Subtype,
		Seeker:   domain.Seeker(r.Seeker),
	}

	if r.CastAt != nil {
		req.CastAt = *r.CastAt
	}

	if len(r.Draws) > 0 {
		req.Draws = make([]domain.DrawValue, len(r.Draws))
		for i, d := range r.Draws {
			req.Draws[i] = domain.DrawValue(d)
		}
	}

	return req
}

// CreateReadingRequest defines the payload for archiving a new reading:
// a casting order plus the question being asked.
type CreateReadingRequest struct {
	CastingRequest

	// Question is the asker's question text. Stored with the reading but
	// never written to logs.
	Question string `json:"question,omitempty" validate:"omitempty,max=500"`
}

// ReadingResponse defines the full representation of an archived reading,
// including the complete result document.
type ReadingResponse struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Question     string          `json:"question,omitempty"`
	Category     domain.Category `json:"category"`
	HexagramName string          `json:"hexagram_name"`
	Trend        domain.Trend    `json:"trend"`
	ShareCode    string          `json:"share_code"`
	Result       json.RawMessage `json:"result"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ReadingSummary is the list representation of a reading. It carries only
// the denormalized columns so listings never unpack the result document.
type ReadingSummary struct {
	ID           uuid.UUID       `json:"id"`
	Question     string          `json:"question,omitempty"`
	Category     domain.Category `json:"category"`
	HexagramName string          `json:"hexagram_name"`
	Trend        domain.Trend    `json:"trend"`
	ShareCode    string          `json:"share_code"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ReadingListResponse defines the response for the reading list endpoint.
type ReadingListResponse struct {
	Readings []ReadingSummary `json:"readings"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// readingToResponse converts a domain reading to its full API representation.
func readingToResponse(reading *domain.Reading) ReadingResponse {
	return ReadingResponse{
		ID:           reading.ID,
		UserID:       reading.UserID,
		Question:     reading.Question,
		Category:     reading.Category,
		HexagramName: reading.HexagramName,
		Trend:        reading.Trend,
		ShareCode:    reading.ShareCode,
		Result:       reading.Result,
		CreatedAt:    reading.CreatedAt,
		UpdatedAt:    reading.UpdatedAt,
	}
}

// readingToSummary converts a domain reading to its list representation.
func readingToSummary(reading *domain.Reading) ReadingSummary {
	return ReadingSummary{
		ID:           reading.ID,
		Question:     reading.Question,
		Category:     reading.Category,
		HexagramName: reading.HexagramName,
		Trend:        reading.Trend,
		ShareCode:    reading.ShareCode,
		CreatedAt:    reading.CreatedAt,
	}
}
