package liuyao

import (
	"fmt"
	"sort"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// buildInterpretation runs the qualitative pass over an already calculated
// casting. It walks a fixed sequence of sub-analyses (focus standing, the
// self/other axis, line movement, branch relations, void and month-break
// afflictions, timing), collects their items and uncertainty notes, tallies
// the items into one of the six trend levels, and composes the summaries and
// the narrative tree. The pass only reads its inputs; every conclusion it
// draws is also appended to the reasoning chain.
func buildInterpretation(
	input domain.CastingInput,
	cal domain.CalendarTime,
	primary domain.Hexagram,
	lines [6]domain.Line,
	changed *domain.Hexagram,
	focus domain.FocusSelection,
	relations []domain.RelationFinding,
	p *Params,
	chain *domain.ReasoningChain,
) domain.Interpretation {
	var (
		items         []domain.InterpretationItem
		uncertainties []string
	)

	selfLine := lines[primary.SelfLine-1]
	otherLine := lines[primary.OtherLine-1]

	var focusLine *domain.Line
	if !focus.Hidden && len(focus.Positions) > 0 {
		l := strongestAt(lines, focus.Positions)
		focusLine = &l
	}

	fi, fu := focusItems(focus, focusLine)
	items = append(items, fi...)
	uncertainties = append(uncertainties, fu...)

	items = append(items, partiesItem(selfLine, otherLine))

	mi, mu := movementItems(lines, focus, p)
	items = append(items, mi...)
	uncertainties = append(uncertainties, mu...)

	items = append(items, topRelationItems(relations, focus, primary.SelfLine, p)...)

	ai, au := afflictionItems(focusLine)
	items = append(items, ai...)
	uncertainties = append(uncertainties, au...)

	var timing []domain.TimingPrediction
	if focusLine != nil {
		timing = predictTiming(*focusLine, cal, p, chain)
		if len(timing) == 0 {
			uncertainties = append(uncertainties, "期限之内用神无值冲合之日，应期难定")
		}
	}

	trend := tallyTrend(items, uncertainties, p, chain)
	advice := adviceFor(input.Category, trend)
	addStep(chain, domain.ReasoningStep{
		Rule:        "advice",
		Description: "按所问类别与走势取断语",
		Inputs: map[string]string{
			"category": string(input.Category),
			"trend":    string(trend),
		},
		Conclusion: advice,
		Strength:   domain.StepWeak,
	})

	return domain.Interpretation{
		Trend:            trend,
		TechnicalSummary: technicalSummary(cal, primary, changed, focus, focusLine, trend),
		PlainSummary:     plainSummary(input.Category, trend, advice),
		Items:            items,
		Timing:           timing,
		Uncertainties:    uncertainties,
		Advice:           advice,
		Narrative:        narrative(selfLine, focus, focusLine, trend, advice),
	}
}

// strongestAt picks the line to read as the focus when the role appears more
// than once: the highest strength score wins, ties go to the lower position.
func strongestAt(lines [6]domain.Line, positions []int) domain.Line {
	best := lines[positions[0]-1]
	for _, pos := range positions[1:] {
		candidate := lines[pos-1]
		if lineScore(candidate) > lineScore(best) {
			best = candidate
		}
	}
	return best
}

func lineScore(l domain.Line) int {
	if l.Strength == nil {
		return 0
	}
	return l.Strength.Score
}

// focusItems reads the standing of the focus element itself.
func focusItems(focus domain.FocusSelection, focusLine *domain.Line) ([]domain.InterpretationItem, []string) {
	if focus.Hidden {
		text := fmt.Sprintf("用神%s不上卦，伏而不现，事体暗昧", focus.Role.ChineseName())
		if focus.Secondary != nil {
			text += "，暂以" + secondaryName(focus.Secondary) + "参详"
		}
		return []domain.InterpretationItem{{
				Aspect: "focus",
				Tone:   domain.ToneObstructive,
				Focus:  true,
				Text:   text,
			}},
			[]string{"用神不上卦，所断根基不足"}
	}

	grade := focusLine.Strength.Grade
	item := domain.InterpretationItem{Aspect: "focus", Focus: true}
	switch {
	case grade.Favorable():
		item.Tone = domain.ToneSupportive
		item.Text = fmt.Sprintf("用神%s%s，有气有力，所求有根", focusLine.Label(), grade.ChineseName())
	case grade == domain.GradeModerate:
		item.Tone = domain.ToneNeutral
		item.Text = fmt.Sprintf("用神%s%s，不旺不衰，平平之象", focusLine.Label(), grade.ChineseName())
	default:
		item.Tone = domain.ToneObstructive
		item.Text = fmt.Sprintf("用神%s%s，力有不逮，成事须待生扶", focusLine.Label(), grade.ChineseName())
	}
	if len(focus.Positions) > 1 {
		item.Text += fmt.Sprintf("（用神两现，取%d爻为用）", focusLine.Position)
	}
	return []domain.InterpretationItem{item}, nil
}

func secondaryName(s *domain.FocusSelection) string {
	if s.Kind == domain.FocusSelf {
		return "世爻"
	}
	return s.Role.ChineseName()
}

// partiesItem reads the elemental relationship between the self line (世,
// the querent) and the other line (应, the counterpart).
func partiesItem(self, other domain.Line) domain.InterpretationItem {
	item := domain.InterpretationItem{Aspect: "parties"}
	switch {
	case other.Element == self.Element:
		item.Tone = domain.ToneSupportive
		item.Text = "世应比和，彼我同心，事可商量"
	case other.Element.Generates(self.Element):
		item.Tone = domain.ToneSupportive
		item.Text = "应生世，彼方有情，其事易托"
	case other.Element.Dominates(self.Element):
		item.Tone = domain.ToneObstructive
		item.Text = "应克世，彼方掣肘，谋事多阻"
	case self.Element.Generates(other.Element):
		item.Tone = domain.ToneObstructive
		item.Text = "世生应，我方耗力，付出多而收效少"
	default:
		item.Tone = domain.ToneNeutral
		item.Text = "世克应，主动在我，然须防求之过急"
	}
	return item
}

// movementItems reads the active lines. A fully quiet hexagram is one calm
// item; too many active lines collapse into a single chaos item instead of
// drowning the reading in per-line noise.
func movementItems(lines [6]domain.Line, focus domain.FocusSelection, p *Params) ([]domain.InterpretationItem, []string) {
	var active []domain.Line
	for _, l := range lines {
		if l.State.Active {
			active = append(active, l)
		}
	}

	if len(active) == 0 {
		return []domain.InterpretationItem{{
			Aspect: "movement",
			Tone:   domain.ToneNeutral,
			Text:   "六爻安静，事体平稳，宜静守待时",
		}}, nil
	}

	if len(active) >= p.ChaoticActiveCount {
		return []domain.InterpretationItem{{
				Aspect: "movement",
				Tone:   domain.ToneRisk,
				Text:   fmt.Sprintf("%d爻乱动，卦象纷扰，事多反复难安", len(active)),
			}},
			[]string{"动爻过多，头绪纷杂"}
	}

	var items []domain.InterpretationItem
	for _, l := range active {
		onFocus := containsPosition(focus.Positions, l.Position)
		item := domain.InterpretationItem{Aspect: "movement", Focus: onFocus}
		switch l.Transform.Kind {
		case domain.TransformAdvancing:
			item.Tone = domain.ToneSupportive
			item.Text = fmt.Sprintf("%s动而化进，化出%s，其势渐长", l.Label(), l.Transform.ToBranch)
		case domain.TransformReturnBirth:
			item.Tone = domain.ToneSupportive
			item.Text = fmt.Sprintf("%s动化回头生，得变爻%s生扶", l.Label(), l.Transform.ToBranch)
		case domain.TransformRetreating:
			item.Tone = domain.ToneObstructive
			item.Text = fmt.Sprintf("%s动而化退，化出%s，其势渐消", l.Label(), l.Transform.ToBranch)
		case domain.TransformReturnClash:
			if l.Self || onFocus {
				item.Tone = domain.ToneRisk
			} else {
				item.Tone = domain.ToneObstructive
			}
			item.Text = fmt.Sprintf("%s动化回头克，变爻%s反伤本爻", l.Label(), l.Transform.ToBranch)
		default:
			item.Tone = domain.ToneNeutral
			item.Text = fmt.Sprintf("%s发动，化出%s，事有变机", l.Label(), l.Transform.ToBranch)
		}
		items = append(items, item)
	}
	return items, nil
}

// topRelationItems surfaces the most salient relation findings: those
// touching the focus element first, then those touching the self line, then
// the rest in detection order.
func topRelationItems(
	relations []domain.RelationFinding,
	focus domain.FocusSelection,
	selfPosition int,
	p *Params,
) []domain.InterpretationItem {
	type ranked struct {
		salience int
		finding  domain.RelationFinding
	}
	order := make([]ranked, 0, len(relations))
	for _, f := range relations {
		s := 0
		if touchesAny(f.Positions, focus.Positions) {
			s += 2
		}
		if containsPosition(f.Positions, selfPosition) {
			s++
		}
		order = append(order, ranked{salience: s, finding: f})
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].salience > order[j].salience
	})

	n := len(order)
	if n > p.MaxRelationItems {
		n = p.MaxRelationItems
	}
	items := make([]domain.InterpretationItem, 0, n)
	for _, r := range order[:n] {
		items = append(items, domain.InterpretationItem{
			Aspect: "relation",
			Tone:   toneForImpact(r.finding.Impact),
			Focus:  touchesAny(r.finding.Positions, focus.Positions),
			Text:   r.finding.Note,
		})
	}
	return items
}

func toneForImpact(impact domain.RelationImpact) domain.ItemTone {
	switch impact {
	case domain.ImpactFavorable:
		return domain.ToneSupportive
	case domain.ImpactUnfavorable:
		return domain.ToneObstructive
	default:
		return domain.ToneNeutral
	}
}

// afflictionItems reads void and month-break on the focus line. Both at once
// fold into a single harsher item.
func afflictionItems(focusLine *domain.Line) ([]domain.InterpretationItem, []string) {
	if focusLine == nil {
		return nil, nil
	}
	switch {
	case focusLine.Void && focusLine.MonthClash:
		return []domain.InterpretationItem{{
				Aspect: "affliction",
				Tone:   domain.ToneRisk,
				Focus:  true,
				Text:   "用神既空且破，根基虚浮，事难遽成",
			}},
			[]string{"用神空破交加，吉凶难凭"}
	case focusLine.Void:
		return []domain.InterpretationItem{{
				Aspect: "affliction",
				Tone:   domain.ToneRisk,
				Focus:  true,
				Text:   "用神旬空，目下难实，待出空之日方见分晓",
			}},
			[]string{"用神旬空，虚实未定"}
	case focusLine.MonthClash:
		return []domain.InterpretationItem{{
				Aspect: "affliction",
				Tone:   domain.ToneRisk,
				Focus:  true,
				Text:   "用神月破，本月难为，出月渐复其气",
			}},
			[]string{"用神月破，近期乏力"}
	}
	return nil, nil
}

// tallyTrend folds the items into a signed score and maps it to a trend
// level. Supportive counts +1, obstructive -1, risk -2; items about the
// focus element push the same direction harder. Enough accumulated
// uncertainty overrides the tally outright.
func tallyTrend(
	items []domain.InterpretationItem,
	uncertainties []string,
	p *Params,
	chain *domain.ReasoningChain,
) domain.Trend {
	score := 0
	counts := map[domain.ItemTone]int{}
	for _, it := range items {
		counts[it.Tone]++
		delta := 0
		switch it.Tone {
		case domain.ToneSupportive:
			delta = 1
		case domain.ToneObstructive:
			delta = -1
		case domain.ToneRisk:
			delta = -2
		}
		if it.Focus && delta != 0 {
			if delta > 0 {
				delta += p.FocusExtraWeight
			} else {
				delta -= p.FocusExtraWeight
			}
		}
		score += delta
	}

	var trend domain.Trend
	switch {
	case len(uncertainties) >= p.UncertaintyCutoff:
		trend = domain.TrendUncertain
	case score >= p.StronglyFavorableAt:
		trend = domain.TrendStronglyFavorable
	case score >= p.FavorableAt:
		trend = domain.TrendFavorable
	case score <= -p.StronglyFavorableAt:
		trend = domain.TrendStronglyUnfavorable
	case score <= -p.FavorableAt:
		trend = domain.TrendUnfavorable
	default:
		trend = domain.TrendSteady
	}

	addStep(chain, domain.ReasoningStep{
		Rule:        "trend-tally",
		Description: "合计各项吉凶，定总体走势",
		Inputs: map[string]string{
			"supportive":    fmt.Sprintf("%d", counts[domain.ToneSupportive]),
			"obstructive":   fmt.Sprintf("%d", counts[domain.ToneObstructive]),
			"risk":          fmt.Sprintf("%d", counts[domain.ToneRisk]),
			"score":         fmt.Sprintf("%d", score),
			"uncertainties": fmt.Sprintf("%d", len(uncertainties)),
		},
		Conclusion: "走势断为" + trend.ChineseName(),
		Strength:   domain.StepStrong,
	})
	return trend
}

// technicalSummary writes the one-line professional reading: pillars,
// hexagram and palace, focus standing, trend.
func technicalSummary(
	cal domain.CalendarTime,
	primary domain.Hexagram,
	changed *domain.Hexagram,
	focus domain.FocusSelection,
	focusLine *domain.Line,
	trend domain.Trend,
) string {
	name := primary.Name
	if changed != nil {
		name += "之" + changed.Name
	}
	focusPart := "用神伏藏"
	if focusLine != nil {
		focusPart = fmt.Sprintf("用神%s，%s",
			focusLine.Label(), focusLine.Strength.Grade.ChineseName())
	} else if focus.Kind == domain.FocusRole {
		focusPart = fmt.Sprintf("用神%s伏藏", focus.Role.ChineseName())
	}
	return fmt.Sprintf("%s月%s日占得%s，%s宫属%s。%s。断曰：%s。",
		cal.Month.Branch, cal.Day, name,
		primary.Palace, primary.PalaceElement.ChineseName(),
		focusPart, trend.ChineseName())
}

var trendPlain = map[domain.Trend]string{
	domain.TrendStronglyFavorable:   "前景大为有利",
	domain.TrendFavorable:           "前景较为有利",
	domain.TrendSteady:              "平稳可守，无大起落",
	domain.TrendUnfavorable:         "前景不利，须谨慎行事",
	domain.TrendStronglyUnfavorable: "前景大为不利",
	domain.TrendUncertain:           "眉目未清，尚难遽断",
}

func plainSummary(category domain.Category, trend domain.Trend, advice string) string {
	return fmt.Sprintf("所问%s之事，%s。%s",
		category.ChineseName(), trendPlain[trend], advice)
}

// narrative builds the fixed-depth causal chain: the self line grounds the
// reading, the focus element carries the matter, the trend follows from
// both, and the advice follows from the trend.
func narrative(
	selfLine domain.Line,
	focus domain.FocusSelection,
	focusLine *domain.Line,
	trend domain.Trend,
	advice string,
) domain.NarrativeNode {
	selfText := fmt.Sprintf("世居%s", selfLine.Label())
	if selfLine.Strength != nil {
		selfText += "，" + selfLine.Strength.Grade.ChineseName()
	}

	focusText := focus.Rationale
	if focusLine != nil {
		focusText += fmt.Sprintf("，今%s当之，%s",
			focusLine.Label(), focusLine.Strength.Grade.ChineseName())
	} else {
		focusText += "，然用神不上卦"
	}

	return domain.NarrativeNode{
		Topic: "世爻",
		Text:  selfText,
		Children: []domain.NarrativeNode{{
			Topic: "用神",
			Text:  focusText,
			Children: []domain.NarrativeNode{{
				Topic: "走势",
				Text:  "合参诸象，走势断为" + trend.ChineseName(),
				Children: []domain.NarrativeNode{{
					Topic: "建议",
					Text:  advice,
				}},
			}},
		}},
	}
}

// containsPosition reports whether pos appears in positions.
func containsPosition(positions []int, pos int) bool {
	for _, p := range positions {
		if p == pos {
			return true
		}
	}
	return false
}

// touchesAny reports whether the two position sets intersect.
func touchesAny(a, b []int) bool {
	for _, x := range a {
		if containsPosition(b, x) {
			return true
		}
	}
	return false
}
