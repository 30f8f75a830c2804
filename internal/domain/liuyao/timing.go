package liuyao

import (
	"fmt"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// predictTiming searches forward from the cast moment for dates whose branch
// interacts with the focus line: the first day carrying the focus branch
// itself (值日), the first day clashing it (冲动), and the first day in union
// with it (合日), all within the configured day horizon; then the first
// matching month within the month horizon if prediction slots remain. The
// scan is bounded and purely arithmetic, so it always terminates and always
// yields the same dates for the same casting.
func predictTiming(
	focus domain.Line,
	cal domain.CalendarTime,
	p *Params,
	chain *domain.ReasoningChain,
) []domain.TimingPrediction {
	var predictions []domain.TimingPrediction

	foundValue, foundClash, foundUnion := false, false, false
	for offset := 1; offset <= p.DayHorizon; offset++ {
		if len(predictions) >= p.MaxTimingPredictions {
			break
		}
		date := cal.Moment.AddDate(0, 0, offset)
		pillar := dayPillarAt(date)

		switch {
		case !foundValue && pillar.Branch == focus.Branch:
			foundValue = true
			predictions = append(predictions, domain.TimingPrediction{
				Scope:  domain.TimingDay,
				Branch: pillar.Branch,
				Date:   date,
				Note:   fmt.Sprintf("%s日用神逢值，事有显应", pillar.Branch),
			})
		case !foundClash && pillar.Branch.ClashesWith(focus.Branch):
			foundClash = true
			predictions = append(predictions, domain.TimingPrediction{
				Scope:  domain.TimingDay,
				Branch: pillar.Branch,
				Date:   date,
				Note:   fmt.Sprintf("%s日冲用神，静则冲动，空则冲实", pillar.Branch),
			})
		case !foundUnion && pillar.Branch.HarmonizesWith(focus.Branch):
			foundUnion = true
			predictions = append(predictions, domain.TimingPrediction{
				Scope:  domain.TimingDay,
				Branch: pillar.Branch,
				Date:   date,
				Note:   fmt.Sprintf("%s日合用神，合处逢生", pillar.Branch),
			})
		}
	}

	if len(predictions) < p.MaxTimingPredictions {
		for offset := 1; offset <= p.MonthHorizon; offset++ {
			date := cal.Moment.AddDate(0, offset, 0)
			month := monthPillarAt(date, yearPillarAt(date).Stem)
			if month.Branch == focus.Branch || month.Branch.ClashesWith(focus.Branch) {
				predictions = append(predictions, domain.TimingPrediction{
					Scope:  domain.TimingMonth,
					Branch: month.Branch,
					Date:   date,
					Note:   fmt.Sprintf("%s月与用神相应，月内可期", month.Branch),
				})
				break
			}
		}
	}

	if chain != nil && len(predictions) > 0 {
		inputs := map[string]string{
			"focus_branch": focus.Branch.String(),
			"day_horizon":  fmt.Sprintf("%d", p.DayHorizon),
		}
		var parts string
		for i, pr := range predictions {
			if i > 0 {
				parts += "；"
			}
			parts += pr.Date.Format("2006-01-02") + " " + pr.Note
		}
		chain.Add(domain.ReasoningStep{
			Rule:        "timing-search",
			Description: "以用神值冲合之期推应期",
			Inputs:      inputs,
			Conclusion:  parts,
			Strength:    domain.StepWeak,
		})
	}

	return predictions
}
