package liuyao

import (
	"github.com/yaolab/liuyao-api/internal/domain"
)

// defaultAdvice covers every trend; category tables override the combos
// where the wording should speak to the question.
var defaultAdvice = map[domain.Trend]string{
	domain.TrendStronglyFavorable:   "卦气大顺，放手去做，乘势而上。",
	domain.TrendFavorable:           "卦象趋吉，稳步推进，可成其事。",
	domain.TrendSteady:              "卦象平平，守成为宜，不宜妄动。",
	domain.TrendUnfavorable:         "卦象欠安，谨慎收敛，避其锋芒。",
	domain.TrendStronglyUnfavorable: "卦气大逆，暂且止步，待时而动。",
	domain.TrendUncertain:           "卦象未明，多方求证，不可轻断。",
}

// categoryAdvice refines the wording per question domain. Missing combos
// fall back to defaultAdvice; the four most asked categories carry a full
// table, the rest keep only their distinctive entries.
var categoryAdvice = map[domain.Category]map[domain.Trend]string{
	domain.CategoryCareer: {
		domain.TrendStronglyFavorable:   "官星得地，仕途大开，宜进取任事，切莫迟疑。",
		domain.TrendFavorable:           "官星有气，职事渐顺，踏实任事自有升迁之机。",
		domain.TrendSteady:              "职位平稳，宜守本分，积累资历以待时机。",
		domain.TrendUnfavorable:         "官星受制，职场多阻，宜避是非，勿争一时之先。",
		domain.TrendStronglyUnfavorable: "官星衰绝，谋职谋升皆不利，宜蛰伏自修。",
		domain.TrendUncertain:           "官星隐晦，事业走向未明，宜静观其变再谋动。",
	},
	domain.CategoryWealth: {
		domain.TrendStronglyFavorable:   "财爻旺相，财源广进，可大胆经营。",
		domain.TrendFavorable:           "财气渐旺，循序求财，积少成多。",
		domain.TrendSteady:              "财运平平，量入为出，不宜投机。",
		domain.TrendUnfavorable:         "财爻受伤，破耗难免，宜守不宜攻。",
		domain.TrendStronglyUnfavorable: "财源枯竭之象，切忌举债冒进。",
		domain.TrendUncertain:           "财象不清，账目往来务必谨慎。",
	},
	domain.CategoryMarriage: {
		domain.TrendStronglyFavorable:   "姻缘和合，两情相得，可定大事。",
		domain.TrendFavorable:           "婚姻有成之象，以诚相待自能圆满。",
		domain.TrendSteady:              "缘分平稳，宜多沟通培养，不宜强求。",
		domain.TrendUnfavorable:         "婚姻多磨，宜冷静省察，勿因小隙成大怨。",
		domain.TrendStronglyUnfavorable: "缘分浅薄之象，强合恐难长久。",
		domain.TrendUncertain:           "姻缘未明，不妨再观察一段时日。",
	},
	domain.CategoryHealth: {
		domain.TrendStronglyFavorable:   "身强病退，调养得法，康复可期。",
		domain.TrendFavorable:           "病势渐缓，遵医调治，勿操之过急。",
		domain.TrendSteady:              "病情平稳，慎起居节饮食，守常即安。",
		domain.TrendUnfavorable:         "病势缠绵，宜早就医，勿讳疾忌医。",
		domain.TrendStronglyUnfavorable: "病象沉重，务必正规诊治，亲友多加看护。",
		domain.TrendUncertain:           "病因未明，宜多方检查确诊。",
	},
	domain.CategoryStudy: {
		domain.TrendFavorable:   "文书有气，功名可期，宜勤勉应考。",
		domain.TrendUnfavorable: "文书受制，考学多阻，宜调整备考之法。",
	},
	domain.CategoryLawsuit: {
		domain.TrendFavorable:   "官司得理，据实陈词，可得公断。",
		domain.TrendUnfavorable: "词讼不利，宜和解息讼，免伤财气。",
	},
	domain.CategoryTravel: {
		domain.TrendFavorable:   "出行平顺，择吉而动，一路无虞。",
		domain.TrendUnfavorable: "出行多阻，宜改期缓行，慎防失物。",
	},
	domain.CategoryLostItem: {
		domain.TrendFavorable:   "失物未远，循财爻方位细寻可得。",
		domain.TrendUnfavorable: "失物难寻，恐已转手他人。",
	},
}

// adviceFor looks up the advice line for a category and trend.
func adviceFor(category domain.Category, trend domain.Trend) string {
	if byTrend, ok := categoryAdvice[category]; ok {
		if text, ok := byTrend[trend]; ok {
			return text
		}
	}
	return defaultAdvice[trend]
}
