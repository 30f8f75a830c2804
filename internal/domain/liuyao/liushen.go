package liuyao

import (
	"github.com/yaolab/liuyao-api/internal/domain"
)

// guardianStarts maps the day stem to the guardian installed on the first
// line: 甲乙起青龙, 丙丁起朱雀, 戊起勾陈, 己起螣蛇, 庚辛起白虎, 壬癸起玄武.
var guardianStarts = [10]domain.Guardian{
	domain.GuardianQingLong, domain.GuardianQingLong,
	domain.GuardianZhuQue, domain.GuardianZhuQue,
	domain.GuardianGouChen,
	domain.GuardianTengShe,
	domain.GuardianBaiHu, domain.GuardianBaiHu,
	domain.GuardianXuanWu, domain.GuardianXuanWu,
}

// assignGuardians walks the six-guardian cycle up the lines from the
// day-stem dependent starting point. The assignment never fails.
func assignGuardians(
	lines [6]domain.Line,
	dayStem domain.Stem,
	chain *domain.ReasoningChain,
) [6]domain.Line {
	start := guardianStarts[dayStem]

	out := lines
	for i := range out {
		out[i].Guardian = domain.GuardianAt(int(start) + i)
	}

	if chain != nil {
		chain.Add(domain.ReasoningStep{
			Rule:        "six-guardians",
			Description: "依日干起六神，自初爻顺布",
			Inputs: map[string]string{
				"day_stem": dayStem.String(),
			},
			Conclusion: "初爻起" + start.String() + "，依次顺布六神",
			Strength:   domain.StepStrong,
		})
	}

	return out
}
