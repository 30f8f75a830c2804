package liuyao

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// Service-level errors
var (
	// ErrNilParams indicates that nil parameters were provided
	ErrNilParams = errors.New("params cannot be nil")
)

// InputError reports a rejected casting input together with every problem
// found, so callers can surface the full list instead of the first failure.
// It unwraps to domain.ErrValidation.
type InputError struct {
	Problems []string
}

func (e *InputError) Error() string {
	return "invalid casting input: " + strings.Join(e.Problems, "; ")
}

func (e *InputError) Unwrap() error {
	return domain.ErrValidation
}

// Service defines the interface for divination calculations. The calculation
// path is pure: Cast performs no I/O, reads no clock beyond the input's cast
// moment, and draws no randomness, so identical inputs produce identical
// results apart from the generated ID and creation timestamp.
type Service interface {
	// Cast runs the complete calculation pipeline for one casting input:
	// calendar resolution, hexagram derivation, line installation, guardian
	// assignment, strength scoring, relation analysis, focus selection and
	// interpretation. Invalid input is rejected with an *InputError listing
	// every problem; no partial pipeline ever runs.
	Cast(input domain.CastingInput) (*domain.DivinationResult, error)

	// Calendar resolves the four pillars and void branches for a moment.
	Calendar(at time.Time) domain.CalendarTime

	// SimulateCoins produces six three-coin draws from an explicit seed,
	// bottom line first. The same seed always yields the same draws.
	SimulateCoins(seed int64) [6]domain.DrawValue

	// TimeDraws derives six draws from the cast moment alone, with exactly
	// one moving line.
	TimeDraws(at time.Time) [6]domain.DrawValue
}

// defaultService is the default implementation of the divination service
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new divination service with default parameters
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewService creates a new divination service with the given parameters
func NewService(params *Params) (Service, error) {
	if params == nil {
		return nil, ErrNilParams
	}
	return &defaultService{params: params}, nil
}

func (s *defaultService) Cast(input domain.CastingInput) (*domain.DivinationResult, error) {
	if problems := input.Problems(); len(problems) > 0 {
		return nil, &InputError{Problems: problems}
	}

	chain := &domain.ReasoningChain{}

	cal := resolveCalendar(input.CastAt)
	addStep(chain, domain.ReasoningStep{
		Rule:        "calendar",
		Description: "起卦时间换算四柱与旬空",
		Inputs:      map[string]string{"cast_at": input.CastAt.Format(time.RFC3339)},
		Conclusion:  cal.String(),
		Strength:    domain.StepStrong,
	})

	states := input.Lines()
	primary, err := domain.HexagramByKey(lineKey(states))
	if err != nil {
		return nil, err
	}
	derived, err := resolveDerived(primary, states)
	if err != nil {
		return nil, err
	}
	addStep(chain, domain.ReasoningStep{
		Rule:        "hexagram-lookup",
		Description: "六爻成卦，定本卦变卦",
		Inputs:      map[string]string{"key": primary.Key},
		Conclusion:  hexagramConclusion(primary, derived.changed),
		Strength:    domain.StepStrong,
	})

	lines, err := installLines(primary, derived.changed, states, chain)
	if err != nil {
		return nil, err
	}
	lines = assignGuardians(lines, cal.Day.Stem, chain)
	lines = assessStrength(lines, cal, s.params, chain)

	relations := analyzeRelations(lines, cal, s.params, chain)
	focus := selectFocus(lines, input.Category, input.Subtype, input.Seeker, chain)

	var changedLines []domain.Line
	if derived.changed != nil {
		settled, err := installLines(*derived.changed, nil, settleStates(states), nil)
		if err != nil {
			return nil, err
		}
		changedLines = settled[:]
	}

	interp := buildInterpretation(
		input, cal, primary, lines, derived.changed, focus, relations, s.params, chain)

	return &domain.DivinationResult{
		ID:             uuid.New(),
		CreatedAt:      time.Now().UTC(),
		Input:          input,
		Calendar:       cal,
		Primary:        primary,
		Lines:          lines,
		Changed:        derived.changed,
		ChangedLines:   changedLines,
		Nuclear:        derived.nuclear,
		Opposite:       derived.opposite,
		Reversed:       derived.reversed,
		Focus:          focus,
		Relations:      relations,
		Interpretation: interp,
		Reasoning:      *chain,
	}, nil
}

func (s *defaultService) Calendar(at time.Time) domain.CalendarTime {
	return resolveCalendar(at)
}

func (s *defaultService) SimulateCoins(seed int64) [6]domain.DrawValue {
	return simulateCoinDraws(seed)
}

func (s *defaultService) TimeDraws(at time.Time) [6]domain.DrawValue {
	return timeDraws(at)
}

// settleStates rewrites the six states as they stand in the changed
// hexagram: moving lines settle into their opposite polarity as young
// lines, static lines carry over unchanged.
func settleStates(states [6]domain.LineState) [6]domain.LineState {
	out := states
	for i, st := range out {
		if !st.Active {
			continue
		}
		if st.Polarity == domain.Yang {
			out[i] = domain.LineState{Polarity: domain.Yin, Draw: domain.DrawYoungYin}
		} else {
			out[i] = domain.LineState{Polarity: domain.Yang, Draw: domain.DrawYoungYang}
		}
	}
	return out
}

func hexagramConclusion(primary domain.Hexagram, changed *domain.Hexagram) string {
	if changed != nil {
		return fmt.Sprintf("得%s之%s", primary.Name, changed.Name)
	}
	return fmt.Sprintf("得%s，六爻安静", primary.Name)
}
