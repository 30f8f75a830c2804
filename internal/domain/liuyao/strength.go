package liuyao

import (
	"fmt"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// assessStrength grades every line against the month and day pillars and
// returns enriched copies. For each line the month tier anchors the score,
// the day pillar adds support or restraint, void and clashed branches pay
// penalties, and the twelve-stage position nudges the total. The clamped sum
// maps to a discrete grade. Every contributing factor leaves its own
// reasoning step.
func assessStrength(
	lines [6]domain.Line,
	cal domain.CalendarTime,
	p *Params,
	chain *domain.ReasoningChain,
) [6]domain.Line {
	out := lines
	for i := range out {
		out[i] = assessLine(out[i], cal, p, chain)
	}
	return out
}

// assessLine computes one line's strength. The input line is copied, never
// mutated.
func assessLine(
	line domain.Line,
	cal domain.CalendarTime,
	p *Params,
	chain *domain.ReasoningChain,
) domain.Line {
	monthElem := cal.MonthElement()
	dayElem := cal.DayElement()

	tier := domain.MonthTierFor(line.Element, monthElem)
	score := p.MonthTierScore[tier]
	addStep(chain, domain.ReasoningStep{
		Rule:        "month-tier",
		Description: "以月建衡量爻之旺衰",
		Inputs:      map[string]string{"line": line.Label(), "month": cal.Month.String()},
		Conclusion: fmt.Sprintf("%s于%s月为%s（%+d）",
			line.Branch, cal.Month.Branch, tier.ChineseName(), p.MonthTierScore[tier]),
		Strength: domain.StepStrong,
	})

	switch {
	case dayElem == line.Element || dayElem.Generates(line.Element):
		score += p.DaySupportScore
		addStep(chain, domain.ReasoningStep{
			Rule:        "day-support",
			Description: "日辰扶助之爻得力",
			Inputs:      map[string]string{"line": line.Label(), "day": cal.Day.String()},
			Conclusion:  fmt.Sprintf("日辰%s生扶%s（%+d）", cal.Day.Branch, line.Branch, p.DaySupportScore),
			Strength:    domain.StepMedium,
		})
	case dayElem.Dominates(line.Element):
		score += p.DayRestrainScore
		addStep(chain, domain.ReasoningStep{
			Rule:        "day-restraint",
			Description: "日辰克制之爻受伤",
			Inputs:      map[string]string{"line": line.Label(), "day": cal.Day.String()},
			Conclusion:  fmt.Sprintf("日辰%s克制%s（%+d）", cal.Day.Branch, line.Branch, p.DayRestrainScore),
			Strength:    domain.StepMedium,
		})
	}

	void := cal.IsVoid(line.Branch)
	if void {
		score += p.VoidPenalty
		addStep(chain, domain.ReasoningStep{
			Rule:        "void-branch",
			Description: "旬空之爻暂时无力",
			Inputs:      map[string]string{"line": line.Label(), "voids": cal.Voids[0].String() + cal.Voids[1].String()},
			Conclusion:  fmt.Sprintf("%s落旬空（%+d）", line.Branch, p.VoidPenalty),
			Strength:    domain.StepMedium,
		})
	}

	dayClash := line.Branch.ClashesWith(cal.Day.Branch)
	if dayClash {
		score += p.DayClashPenalty
		addStep(chain, domain.ReasoningStep{
			Rule:        "day-clash",
			Description: "日辰冲爻",
			Inputs:      map[string]string{"line": line.Label(), "day": cal.Day.String()},
			Conclusion:  fmt.Sprintf("日辰%s冲%s（%+d）", cal.Day.Branch, line.Branch, p.DayClashPenalty),
			Strength:    domain.StepMedium,
		})
	}

	monthClash := line.Branch.ClashesWith(cal.Month.Branch)
	if monthClash {
		score += p.MonthClashPenalty
		addStep(chain, domain.ReasoningStep{
			Rule:        "month-break",
			Description: "月破之爻重伤",
			Inputs:      map[string]string{"line": line.Label(), "month": cal.Month.String()},
			Conclusion:  fmt.Sprintf("%s为月破（%+d）", line.Branch, p.MonthClashPenalty),
			Strength:    domain.StepStrong,
		})
	}

	stage := domain.LifeStageOf(line.Element, cal.Day.Branch)
	if bonus := p.LifeStageScore[stage]; bonus != 0 {
		score += bonus
		addStep(chain, domain.ReasoningStep{
			Rule:        "life-stage",
			Description: "十二长生辅证旺衰",
			Inputs:      map[string]string{"line": line.Label(), "day_branch": cal.Day.Branch.String()},
			Conclusion:  fmt.Sprintf("%s于%s为%s（%+d）", line.Element.ChineseName(), cal.Day.Branch, stage, bonus),
			Strength:    domain.StepWeak,
		})
	}

	score = p.clamp(score)
	grade := p.grade(score)
	addStep(chain, domain.ReasoningStep{
		Rule:        "strength-grade",
		Description: "合计各因素定爻之强弱",
		Inputs:      map[string]string{"line": line.Label()},
		Conclusion:  fmt.Sprintf("%s计%d分，判为%s", line.Label(), score, grade.ChineseName()),
		Strength:    domain.StepStrong,
	})

	out := line
	out.Void = void
	out.DayClash = dayClash
	out.MonthClash = monthClash
	out.Strength = &domain.LineStrength{
		Score:     score,
		Grade:     grade,
		MonthTier: tier,
		LifeStage: stage,
	}
	return out
}

// addStep appends a reasoning step when a chain is carried.
func addStep(chain *domain.ReasoningChain, step domain.ReasoningStep) {
	if chain == nil {
		return
	}
	chain.Add(step)
}
