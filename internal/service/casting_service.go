package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/yaolab/liuyao-api/internal/domain"
	"github.com/yaolab/liuyao-api/internal/domain/liuyao"
)

// CastRequest carries one casting order before the six draws are
// materialized. Draws is required for the manual method and ignored
// otherwise; Seed is honored only for the coin method. A zero CastAt means
// "now".
type CastRequest struct {
	Method   domain.CastingMethod
	Draws    []domain.DrawValue
	Seed     *int64
	CastAt   time.Time
	Category domain.Category
	Subtype  string
	Seeker   domain.Seeker
}

// CastingService runs the divination engine for API callers. It owns the one
// impure step - materializing draws for the coin and time methods - so the
// engine itself stays deterministic.
type CastingService interface {
	// Cast materializes the six draws per the requested method and runs the
	// full calculation pipeline. Invalid requests are rejected with a
	// *liuyao.InputError listing every problem.
	Cast(ctx context.Context, req CastRequest) (*domain.DivinationResult, error)

	// DecodeShare replays the casting a share code encodes.
	// Returns ErrInvalidShareCode for a code that does not decode to a
	// valid casting.
	DecodeShare(ctx context.Context, code string) (*domain.DivinationResult, error)
}

// castingServiceImpl implements the CastingService interface
type castingServiceImpl struct {
	engine   liuyao.Service
	logger   *slog.Logger
	timeFunc func() time.Time
	seedFunc func() int64
}

// NewCastingService creates a new CastingService backed by the given engine.
func NewCastingService(engine liuyao.Service, logger *slog.Logger) CastingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &castingServiceImpl{
		engine:   engine,
		logger:   logger.With("component", "casting_service"),
		timeFunc: time.Now,
		seedFunc: rand.Int63,
	}
}

// Cast materializes the draws and runs the engine.
func (s *castingServiceImpl) Cast(
	ctx context.Context,
	req CastRequest,
) (*domain.DivinationResult, error) {
	input, err := s.materialize(req)
	if err != nil {
		s.logger.Debug("rejected casting request",
			"error", err,
			"method", req.Method)
		return nil, err
	}

	result, err := s.engine.Cast(input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			s.logger.Debug("engine rejected casting input",
				"error", err,
				"method", input.Method)
		} else {
			s.logger.Error("casting calculation failed",
				"error", err,
				"method", input.Method,
				"category", input.Category)
		}
		return nil, err
	}

	s.logger.Debug("casting computed",
		"result_id", result.ID,
		"method", input.Method,
		"category", input.Category,
		"hexagram", result.Primary.Name)

	return result, nil
}

// DecodeShare decodes a share code and replays the casting it encodes.
func (s *castingServiceImpl) DecodeShare(
	ctx context.Context,
	code string,
) (*domain.DivinationResult, error) {
	input, ok := domain.DecodeShareCode(code)
	if !ok {
		s.logger.Debug("rejected malformed share code", "code_length", len(code))
		return nil, ErrInvalidShareCode
	}

	result, err := s.engine.Cast(input)
	if err != nil {
		// A code that decodes but fails validation is treated the same as
		// one that does not decode at all.
		s.logger.Warn("share code decoded to an invalid casting", "error", err)
		return nil, ErrInvalidShareCode
	}

	s.logger.Debug("share code replayed",
		"result_id", result.ID,
		"hexagram", result.Primary.Name)

	return result, nil
}

// materialize turns a cast request into a complete engine input, simulating
// or deriving draws where the method calls for them.
func (s *castingServiceImpl) materialize(req CastRequest) (domain.CastingInput, error) {
	castAt := req.CastAt
	if castAt.IsZero() {
		castAt = s.timeFunc()
	}

	input := domain.CastingInput{
		Method:   req.Method,
		CastAt:   castAt,
		Category: req.Category,
		Subtype:  req.Subtype,
		Seeker:   req.Seeker,
	}

	switch req.Method {
	case domain.MethodManual:
		if len(req.Draws) != len(input.Draws) {
			return domain.CastingInput{}, &liuyao.InputError{
				Problems: []string{"manual casting requires exactly six draw values, bottom line first"},
			}
		}
		copy(input.Draws[:], req.Draws)

	case domain.MethodCoin:
		seed := s.seedFunc()
		if req.Seed != nil {
			seed = *req.Seed
		}
		input.Draws = s.engine.SimulateCoins(seed)

	case domain.MethodTime:
		input.Draws = s.engine.TimeDraws(castAt)

	default:
		// Leave the draws zeroed; the engine reports the unknown method
		// together with every other problem it finds.
	}

	return input, nil
}
