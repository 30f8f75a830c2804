package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/yaolab/liuyao-api/internal/api/shared"
	"github.com/yaolab/liuyao-api/internal/domain"
	"github.com/yaolab/liuyao-api/internal/platform/logger"
	"github.com/yaolab/liuyao-api/internal/service"
)

// ReadingHandler handles archived reading HTTP requests. All endpoints
// require authentication and operate only on the caller's own readings.
//
// The question text is treated as sensitive and is never written to logs.
type ReadingHandler struct {
	readingService service.ReadingService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewReadingHandler creates a new ReadingHandler with the given dependencies.
func NewReadingHandler(readingService service.ReadingService, log *slog.Logger) *ReadingHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ReadingHandler{
		readingService: readingService,
		validator:      validator.New(),
		logger:         log.With("component", "reading_handler"),
	}
}

// CreateReading handles POST /readings requests. The casting runs
// synchronously and the complete reading comes back in the response;
// persistence happens asynchronously, so the endpoint returns 202 Accepted
// and an immediate GET may not find the reading yet.
func (h *ReadingHandler) CreateReading(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateReadingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	reading, err := h.readingService.CreateReading(
		r.Context(),
		userID,
		req.Question,
		req.toCastRequest(),
	)
	if err != nil {
		// Casting input problems go back to the caller in full; anything
		// else gets the generic message.
		if errors.Is(err, domain.ErrValidation) {
			HandleAPIError(w, r, err, "")
		} else {
			HandleAPIError(w, r, err, "Failed to create reading")
		}
		return
	}

	log.Info("reading created",
		slog.String("reading_id", reading.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("hexagram", reading.HexagramName))

	shared.RespondWithJSON(w, r, http.StatusAccepted, readingToResponse(reading))
}

// ListReadings handles GET /readings requests. Results are the caller's own
// readings, newest first, paginated by limit and offset query parameters.
func (h *ReadingHandler) ListReadings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	limit, offset := parseListParams(r)

	readings, err := h.readingService.ListReadings(r.Context(), userID, limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list readings")
		return
	}

	summaries := make([]ReadingSummary, 0, len(readings))
	for _, reading := range readings {
		summaries = append(summaries, readingToSummary(reading))
	}

	log.Debug("readings listed",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(summaries)))

	shared.RespondWithJSON(w, r, http.StatusOK, ReadingListResponse{
		Readings: summaries,
		Limit:    limit,
		Offset:   offset,
	})
}

// GetReading handles GET /readings/{id} requests.
func (h *ReadingHandler) GetReading(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, readingID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	reading, err := h.readingService.GetReading(r.Context(), userID, readingID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, readingToResponse(reading))
}

// DeleteReading handles DELETE /readings/{id} requests.
func (h *ReadingHandler) DeleteReading(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, readingID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.readingService.DeleteReading(r.Context(), userID, readingID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("reading deleted",
		slog.String("reading_id", readingID.String()),
		slog.String("user_id", userID.String()))

	w.WriteHeader(http.StatusNoContent)
}
