package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/yaolab/liuyao-api/internal/api/shared"
	"github.com/yaolab/liuyao-api/internal/platform/logger"
	"github.com/yaolab/liuyao-api/internal/service"
)

// CastingHandler handles casting API requests: running new castings and
// replaying shared ones. Both endpoints are public. Castings are pure
// calculations; nothing is stored unless the caller archives a reading.
type CastingHandler struct {
	castingService service.CastingService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewCastingHandler creates a new CastingHandler with the given dependencies.
func NewCastingHandler(castingService service.CastingService, log *slog.Logger) *CastingHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CastingHandler{
		castingService: castingService,
		validator:      validator.New(),
		logger:         log.With("component", "casting_handler"),
	}
}

// Cast handles POST /castings. It materializes the six draws per the
// requested method, runs the calculation pipeline and returns the complete
// result. Invalid inputs get a 400 listing every problem found.
func (h *CastingHandler) Cast(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CastingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode casting request", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.castingService.Cast(r.Context(), req.toCastRequest())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("casting computed",
		slog.String("result_id", result.ID.String()),
		slog.String("method", string(result.Input.Method)),
		slog.String("hexagram", result.Primary.Name))

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetShared handles GET /share/{code}. It replays the casting the share code
// encodes and returns the recomputed result. Codes that do not decode to a
// valid casting get a 404.
func (h *CastingHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	code := chi.URLParam(r, "code")

	result, err := h.castingService.DecodeShare(r.Context(), code)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("share code replayed",
		slog.String("result_id", result.ID.String()),
		slog.String("hexagram", result.Primary.Name))

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
