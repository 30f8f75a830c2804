package liuyao

import (
	"testing"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// calendarWith builds a calendar fixture directly from month and day pillars,
// with voids derived from the day pillar the usual way.
func calendarWith(month, day domain.Pillar) domain.CalendarTime {
	return domain.CalendarTime{
		Month: month,
		Day:   day,
		Voids: voidBranches(day),
	}
}

func TestAssessLineScoring(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	wuMonth := domain.Pillar{Stem: domain.StemGeng, Branch: domain.BranchWu}

	testCases := []struct {
		name       string
		line       domain.Line
		day        domain.Pillar
		score      int
		grade      domain.StrengthGrade
		tier       domain.MonthTier
		void       bool
		dayClash   bool
		monthClash bool
	}{
		{
			name: "prosperous with day support peaks",
			// 午火 in a 午 month (+4), fed by a 寅 day (+3), born at 寅 (+1).
			line:  domain.Line{Position: 4, Branch: domain.BranchWu, Element: domain.Fire},
			day:   domain.Pillar{Stem: domain.StemJia, Branch: domain.BranchYin},
			score: 8,
			grade: domain.GradePeak,
			tier:  domain.TierProsperous,
		},
		{
			name: "prosperous but clashed by a restraining day",
			// 午火 in a 午 month (+4), restrained by 子 water (-3), clashed (-2).
			line:     domain.Line{Position: 4, Branch: domain.BranchWu, Element: domain.Fire},
			day:      domain.Pillar{Stem: domain.StemJia, Branch: domain.BranchZi},
			score:    -1,
			grade:    domain.GradeModerate,
			tier:     domain.TierProsperous,
			dayClash: true,
		},
		{
			name: "assisted but void",
			// 戌土 assisted by the fire month (+3), void on a 甲子 day (-4),
			// earth peaks at 子 (+1).
			line:  domain.Line{Position: 6, Branch: domain.BranchXu, Element: domain.Earth},
			day:   domain.Pillar{Stem: domain.StemJia, Branch: domain.BranchZi},
			score: 0,
			grade: domain.GradeModerate,
			tier:  domain.TierAssisted,
			void:  true,
		},
		{
			name: "trapped water broken by the month",
			// 子水 trapped in 午 month (-2), same-element day support (+3),
			// month break (-3), water peaks at 子 (+1).
			line:       domain.Line{Position: 1, Branch: domain.BranchZi, Element: domain.Water},
			day:        domain.Pillar{Stem: domain.StemBing, Branch: domain.BranchZi},
			score:      -1,
			grade:      domain.GradeModerate,
			tier:       domain.TierTrapped,
			monthClash: true,
		},
		{
			name: "dead metal under a restraining day depletes",
			// 申金 dead in the fire month (-3), restrained by the 午 day (-3).
			line:  domain.Line{Position: 5, Branch: domain.BranchShen, Element: domain.Metal},
			day:   domain.Pillar{Stem: domain.StemBing, Branch: domain.BranchWu},
			score: -6,
			grade: domain.GradeDepleted,
			tier:  domain.TierDead,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cal := calendarWith(wuMonth, tc.day)

			out := assessLine(tc.line, cal, params, nil)

			if out.Strength == nil {
				t.Fatal("Expected strength to be set")
			}
			if out.Strength.Score != tc.score {
				t.Errorf("Expected score %d, got %d", tc.score, out.Strength.Score)
			}
			if out.Strength.Grade != tc.grade {
				t.Errorf("Expected grade %s, got %s", tc.grade, out.Strength.Grade)
			}
			if out.Strength.MonthTier != tc.tier {
				t.Errorf("Expected tier %s, got %s", tc.tier, out.Strength.MonthTier)
			}
			if out.Void != tc.void {
				t.Errorf("Expected void %v, got %v", tc.void, out.Void)
			}
			if out.DayClash != tc.dayClash {
				t.Errorf("Expected day clash %v, got %v", tc.dayClash, out.DayClash)
			}
			if out.MonthClash != tc.monthClash {
				t.Errorf("Expected month clash %v, got %v", tc.monthClash, out.MonthClash)
			}
		})
	}
}

func TestAssessLineClampsScore(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	// 子水 in a 子 month (+4) on a 申 day: metal feeds water (+3) and water
	// is born at 申 (+1), already 8; raise the support weight so the raw sum
	// would overflow the ceiling.
	params.DaySupportScore = 10

	cal := calendarWith(
		domain.Pillar{Stem: domain.StemBing, Branch: domain.BranchZi},
		domain.Pillar{Stem: domain.StemRen, Branch: domain.BranchShen},
	)
	line := domain.Line{Position: 1, Branch: domain.BranchZi, Element: domain.Water}

	out := assessLine(line, cal, params, nil)
	if out.Strength.Score != params.ScoreCeiling {
		t.Errorf("Expected score clamped to %d, got %d", params.ScoreCeiling, out.Strength.Score)
	}
}

func TestAssessStrengthLeavesReasoning(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	cal := calendarWith(
		domain.Pillar{Stem: domain.StemGeng, Branch: domain.BranchWu},
		domain.Pillar{Stem: domain.StemJia, Branch: domain.BranchZi},
	)

	var lines [6]domain.Line
	for i := range lines {
		lines[i] = domain.Line{Position: i + 1, Branch: domain.BranchWu, Element: domain.Fire}
	}

	chain := &domain.ReasoningChain{}
	out := assessStrength(lines, cal, params, chain)

	for i, l := range out {
		if l.Strength == nil {
			t.Errorf("Expected strength set on line %d", i+1)
		}
	}

	// Each line leaves at least a month-tier step and a grade step.
	if chain.Len() < 12 {
		t.Errorf("Expected at least 12 reasoning steps, got %d", chain.Len())
	}

	var tierSteps, gradeSteps int
	for _, step := range chain.Steps {
		switch step.Rule {
		case "month-tier":
			tierSteps++
		case "strength-grade":
			gradeSteps++
		}
	}
	if tierSteps != 6 {
		t.Errorf("Expected 6 month-tier steps, got %d", tierSteps)
	}
	if gradeSteps != 6 {
		t.Errorf("Expected 6 strength-grade steps, got %d", gradeSteps)
	}
}
