package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaolab/liuyao-api/internal/domain"
	"github.com/yaolab/liuyao-api/internal/domain/liuyao"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestCastingService wires the real engine with a fixed clock and seed so
// every materialization path is reproducible.
func newTestCastingService(fixedTime time.Time, fixedSeed int64) *castingServiceImpl {
	return &castingServiceImpl{
		engine:   liuyao.NewDefaultService(),
		logger:   testLogger(),
		timeFunc: func() time.Time { return fixedTime },
		seedFunc: func() int64 { return fixedSeed },
	}
}

func TestCastingServiceCast(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("manual method uses the supplied draws", func(t *testing.T) {
		t.Parallel()
		svc := newTestCastingService(fixedTime, 42)

		result, err := svc.Cast(context.Background(), CastRequest{
			Method:   domain.MethodManual,
			Draws:    []domain.DrawValue{7, 8, 7, 8, 7, 9},
			CastAt:   fixedTime,
			Category: domain.CategoryGeneral,
		})
		require.NoError(t, err)

		assert.Equal(t, [6]domain.DrawValue{7, 8, 7, 8, 7, 9}, result.Input.Draws)
		assert.Equal(t, fixedTime, result.Input.CastAt)
		assert.NotEmpty(t, result.Primary.Name)
	})

	t.Run("manual method rejects wrong draw count", func(t *testing.T) {
		t.Parallel()
		svc := newTestCastingService(fixedTime, 42)

		result, err := svc.Cast(context.Background(), CastRequest{
			Method:   domain.MethodManual,
			Draws:    []domain.DrawValue{7, 8, 7},
			CastAt:   fixedTime,
			Category: domain.CategoryGeneral,
		})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrValidation)

		var inputErr *liuyao.InputError
		require.ErrorAs(t, err, &inputErr)
		assert.Contains(t, inputErr.Problems[0], "exactly six draw values")
	})

	t.Run("coin method honors an explicit seed", func(t *testing.T) {
		t.Parallel()
		svc := newTestCastingService(fixedTime, 42)
		seed := int64(20240315)

		first, err := svc.Cast(context.Background(), CastRequest{
			Method:   domain.MethodCoin,
			Seed:     &seed,
			CastAt:   fixedTime,
			Category: domain.CategoryCareer,
		})
		require.NoError(t, err)

		second, err := svc.Cast(context.Background(), CastRequest{
			Method:   domain.MethodCoin,
			Seed:     &seed,
			CastAt:   fixedTime,
			Category: domain.CategoryCareer,
		})
		require.NoError(t, err)

		assert.Equal(t, first.Input.Draws, second.Input.Draws)
		assert.Equal(t, first.Primary.Name, second.Primary.Name)
	})

	t.Run("coin method without a seed falls back to the seed source", func(t *testing.T) {
		t.Parallel()
		svc := newTestCastingService(fixedTime, 777)

		result, err := svc.Cast(context.Background(), CastRequest{
			Method:   domain.MethodCoin,
			CastAt:   fixedTime,
			Category: domain.CategoryWealth,
		})
		require.NoError(t, err)

		want := liuyao.NewDefaultService().SimulateCoins(777)
		assert.Equal(t, want, result.Input.Draws)
	})

	t.Run("time method derives draws from the cast moment", func(t *testing.T) {
		t.Parallel()
		svc := newTestCastingService(fixedTime, 42)

		result, err := svc.Cast(context.Background(), CastRequest{
			Method:   domain.MethodTime,
			CastAt:   fixedTime,
			Category: domain.CategoryTravel,
		})
		require.NoError(t, err)

		want := liuyao.NewDefaultService().TimeDraws(fixedTime)
		assert.Equal(t, want, result.Input.Draws)
		assert.Equal(t, 1, result.Input.ActiveCount())
	})

	t.Run("zero cast time defaults to the clock", func(t *testing.T) {
		t.Parallel()
		svc := newTestCastingService(fixedTime, 42)

		result, err := svc.Cast(context.Background(), CastRequest{
			Method:   domain.MethodTime,
			Category: domain.CategoryGeneral,
		})
		require.NoError(t, err)
		assert.Equal(t, fixedTime, result.Input.CastAt)
	})

	t.Run("unknown method is rejected by the engine", func(t *testing.T) {
		t.Parallel()
		svc := newTestCastingService(fixedTime, 42)

		result, err := svc.Cast(context.Background(), CastRequest{
			Method:   domain.CastingMethod("tarot"),
			CastAt:   fixedTime,
			Category: domain.CategoryGeneral,
		})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("invalid category is rejected", func(t *testing.T) {
		t.Parallel()
		svc := newTestCastingService(fixedTime, 42)

		result, err := svc.Cast(context.Background(), CastRequest{
			Method:   domain.MethodManual,
			Draws:    []domain.DrawValue{7, 8, 7, 8, 7, 8},
			CastAt:   fixedTime,
			Category: domain.Category("horoscope"),
		})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCastingServiceDecodeShare(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("replays a shared casting", func(t *testing.T) {
		t.Parallel()
		svc := newTestCastingService(fixedTime, 42)

		original, err := svc.Cast(context.Background(), CastRequest{
			Method:   domain.MethodManual,
			Draws:    []domain.DrawValue{9, 8, 7, 8, 7, 6},
			CastAt:   fixedTime,
			Category: domain.CategoryCareer,
		})
		require.NoError(t, err)

		replayed, err := svc.DecodeShare(context.Background(), original.Input.ShareCode())
		require.NoError(t, err)

		assert.Equal(t, original.Input.Draws, replayed.Input.Draws)
		assert.Equal(t, original.Input.Category, replayed.Input.Category)
		assert.Equal(t, original.Primary.Name, replayed.Primary.Name)
		assert.Equal(t, original.Interpretation.Trend, replayed.Interpretation.Trend)
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		t.Parallel()
		svc := newTestCastingService(fixedTime, 42)

		for _, code := range []string{"", "not-a-code", "LY1-%%%%", "LY9-AAAA"} {
			result, err := svc.DecodeShare(context.Background(), code)
			assert.ErrorIs(t, err, ErrInvalidShareCode, "code %q", code)
			assert.Nil(t, result)
		}
	})
}
