package liuyao

import (
	"github.com/yaolab/liuyao-api/internal/domain"
)

// Params defines all configurable parameters of the calculation: the
// strength-scoring weights, the grade thresholds, and the interpretation
// limits. Weights are ordered so the month tier dominates, the day pillar
// modifies, and void or clashed lines pay a penalty on top.
type Params struct {
	// Strength scoring
	MonthTierScore    map[domain.MonthTier]int
	DaySupportScore   int // day element equal to or generating the line
	DayRestrainScore  int // day element dominating the line
	VoidPenalty       int
	DayClashPenalty   int
	MonthClashPenalty int
	LifeStageScore    map[domain.LifeStage]int // advisory, small
	ScoreFloor        int
	ScoreCeiling      int

	// Grade thresholds, read top down: a score at or above PeakAt grades
	// peak, and so on; anything below WeakAt grades depleted.
	PeakAt     int
	StrongAt   int
	ModerateAt int
	WeakAt     int

	// Interpretation limits
	MaxRelationItems     int
	MaxTimingPredictions int
	DayHorizon           int // days searched for day-scope timing
	MonthHorizon         int // months searched for month-scope timing
	ChaoticActiveCount   int // active lines at which movement reads as chaotic
	UncertaintyCutoff    int // uncertainty notes that force an uncertain trend
	FavorableAt          int // tally for a favorable trend
	StronglyFavorableAt  int // tally for a strongly favorable trend
	FocusExtraWeight     int // added weight for items about the focus element
}

// ParamsConfig allows overriding the externally tunable parameters when
// creating a new Params instance. Zero values keep the defaults.
type ParamsConfig struct {
	MaxRelationItems     int
	MaxTimingPredictions int
	DayHorizon           int
	MonthHorizon         int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MonthTierScore: map[domain.MonthTier]int{
			domain.TierProsperous: 4,
			domain.TierAssisted:   3,
			domain.TierResting:    -1,
			domain.TierTrapped:    -2,
			domain.TierDead:       -3,
		},
		DaySupportScore:   3,
		DayRestrainScore:  -3,
		VoidPenalty:       -4,
		DayClashPenalty:   -2,
		MonthClashPenalty: -3,

		// Only the strongest and weakest stages tip the balance.
		LifeStageScore: map[domain.LifeStage]int{
			domain.StageBirth:   1,
			domain.StageOffice:  1,
			domain.StagePeak:    1,
			domain.StageDeath:   -1,
			domain.StageTomb:    -1,
			domain.StageSevered: -1,
		},
		ScoreFloor:   -10,
		ScoreCeiling: 10,

		PeakAt:     6,
		StrongAt:   3,
		ModerateAt: -2,
		WeakAt:     -5,

		MaxRelationItems:     3,
		MaxTimingPredictions: 3,
		DayHorizon:           90,
		MonthHorizon:         12,
		ChaoticActiveCount:   4,
		UncertaintyCutoff:    2,
		FavorableAt:          2,
		StronglyFavorableAt:  4,
		FocusExtraWeight:     2,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MaxRelationItems > 0 {
		params.MaxRelationItems = config.MaxRelationItems
	}
	if config.MaxTimingPredictions > 0 {
		params.MaxTimingPredictions = config.MaxTimingPredictions
	}
	if config.DayHorizon > 0 {
		params.DayHorizon = config.DayHorizon
	}
	if config.MonthHorizon > 0 {
		params.MonthHorizon = config.MonthHorizon
	}

	return params
}

// grade maps a clamped score to its discrete strength grade.
func (p *Params) grade(score int) domain.StrengthGrade {
	switch {
	case score >= p.PeakAt:
		return domain.GradePeak
	case score >= p.StrongAt:
		return domain.GradeStrong
	case score >= p.ModerateAt:
		return domain.GradeModerate
	case score >= p.WeakAt:
		return domain.GradeWeak
	default:
		return domain.GradeDepleted
	}
}

// clamp bounds a score into the configured floor..ceiling window.
func (p *Params) clamp(score int) int {
	if score > p.ScoreCeiling {
		return p.ScoreCeiling
	}
	if score < p.ScoreFloor {
		return p.ScoreFloor
	}
	return score
}
