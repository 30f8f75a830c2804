package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// Presentation-only label tables. The domain types keep their wire values;
// the report renders the traditional names.
var transformKindChinese = map[domain.TransformKind]string{
	domain.TransformAdvancing:   "化进",
	domain.TransformRetreating:  "化退",
	domain.TransformReturnBirth: "回头生",
	domain.TransformReturnClash: "回头克",
	domain.TransformNeutral:     "化出",
}

var relationKindChinese = map[domain.RelationKind]string{
	domain.RelationOpposition:   "六冲",
	domain.RelationUnion:        "六合",
	domain.RelationTriadUnion:   "三合",
	domain.RelationMutualInjury: "三刑",
	domain.RelationHarm:         "六害",
}

// printResult renders a divination result as a terminal report: hexagrams,
// the six installed lines top to bottom, the focus element, detected
// relations and the interpretation. The reasoning chain is appended when
// requested.
func printResult(w io.Writer, r *domain.DivinationResult, reasoning bool) {
	printHexagrams(w, r)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s  %s  旬空%s%s\n",
		r.Calendar.Moment.Format("2006-01-02 15:04"),
		r.Calendar, r.Calendar.Voids[0], r.Calendar.Voids[1])
	fmt.Fprintf(w, "所问: %s%s  起卦: %s\n",
		r.Input.Category.ChineseName(), subtypeSuffix(r.Input.Subtype),
		methodLabel(r.Input.Method))
	fmt.Fprintln(w)

	for i := len(r.Lines) - 1; i >= 0; i-- {
		fmt.Fprintln(w, lineRow(r.Lines[i]))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "用神: %s\n", focusLabel(r.Focus))
	if r.Focus.Secondary != nil {
		fmt.Fprintf(w, "次用神: %s\n", focusLabel(*r.Focus.Secondary))
	}

	if len(r.Relations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "关系:")
		for _, rel := range r.Relations {
			partial := ""
			if rel.Partial {
				partial = "(半)"
			}
			fmt.Fprintf(w, "  %s%s %s: %s\n",
				relationKindChinese[rel.Kind], partial,
				strings.Join(rel.Parties, " "), rel.Note)
		}
	}

	fmt.Fprintln(w)
	printInterpretation(w, r.Interpretation)

	fmt.Fprintf(w, "\n分享码: %s\n", r.Input.ShareCode())

	if reasoning {
		fmt.Fprintln(w)
		printReasoning(w, r.Reasoning)
	}
}

func printHexagrams(w io.Writer, r *domain.DivinationResult) {
	fmt.Fprintf(w, "本卦: %s (第%d卦)  %s宫%s %s\n",
		r.Primary.Name, r.Primary.Number,
		r.Primary.Palace, r.Primary.PalaceElement.ChineseName(),
		generationLabel(r.Primary.Generation))
	if r.Changed != nil {
		fmt.Fprintf(w, "变卦: %s (第%d卦)\n", r.Changed.Name, r.Changed.Number)
	}
	fmt.Fprintf(w, "互卦: %s  错卦: %s  综卦: %s\n",
		r.Nuclear.Name, r.Opposite.Name, r.Reversed.Name)
}

func printInterpretation(w io.Writer, interp domain.Interpretation) {
	fmt.Fprintf(w, "断: %s\n", interp.Trend.ChineseName())
	fmt.Fprintf(w, "  %s\n", interp.PlainSummary)
	fmt.Fprintf(w, "  %s\n", interp.TechnicalSummary)

	if len(interp.Items) > 0 {
		fmt.Fprintln(w, "细目:")
		for _, item := range interp.Items {
			fmt.Fprintf(w, "  %s %s\n", toneMark(item.Tone, item.Focus), item.Text)
		}
	}

	if len(interp.Timing) > 0 {
		fmt.Fprintln(w, "应期:")
		for _, t := range interp.Timing {
			scope := "日"
			layout := "2006-01-02"
			if t.Scope == domain.TimingMonth {
				scope = "月"
				layout = "2006-01"
			}
			fmt.Fprintf(w, "  %s%s (%s): %s\n",
				t.Branch, scope, t.Date.Format(layout), t.Note)
		}
	}

	if len(interp.Uncertainties) > 0 {
		fmt.Fprintln(w, "存疑:")
		for _, u := range interp.Uncertainties {
			fmt.Fprintf(w, "  %s\n", u)
		}
	}

	fmt.Fprintf(w, "建议: %s\n", interp.Advice)
}

func printReasoning(w io.Writer, chain domain.ReasoningChain) {
	fmt.Fprintln(w, "推演:")
	for i, step := range chain.Steps {
		fmt.Fprintf(w, "%3d. [%s] %s\n", i+1, step.Rule, step.Conclusion)
		if step.Description != "" {
			fmt.Fprintf(w, "     %s\n", step.Description)
		}
		if step.Source != "" {
			fmt.Fprintf(w, "     出处: %s\n", step.Source)
		}
	}
}

// lineRow renders one installed line: position, guardian, the line glyph
// with its moving marker, the relative with branch and element, the 世/应
// flag and whatever standing and transform notes apply.
func lineRow(l domain.Line) string {
	var b strings.Builder

	glyph := "━━━━━━"
	if l.State.Polarity == domain.Yin {
		glyph = "━━  ━━"
	}
	marker := "  "
	switch {
	case l.State.Active && l.State.Polarity == domain.Yang:
		marker = " ○"
	case l.State.Active && l.State.Polarity == domain.Yin:
		marker = " ×"
	}

	fmt.Fprintf(&b, "%d爻 %s %s%s %s%s%s",
		l.Position, l.Guardian, glyph, marker,
		l.Role.ChineseName(), l.Branch, l.Element.ChineseName())

	switch {
	case l.Self:
		b.WriteString(" 世")
	case l.Other:
		b.WriteString(" 应")
	default:
		b.WriteString("   ")
	}

	if l.Strength != nil {
		fmt.Fprintf(&b, " %s(%s)",
			l.Strength.Grade.ChineseName(), l.Strength.MonthTier.ChineseName())
	}
	if l.Void {
		b.WriteString(" 空")
	}
	if l.MonthClash {
		b.WriteString(" 月破")
	} else if l.DayClash {
		b.WriteString(" 日冲")
	}
	if l.Transform != nil {
		fmt.Fprintf(&b, " →%s%s %s",
			l.Transform.ToBranch, l.Transform.ToElement.ChineseName(),
			transformKindChinese[l.Transform.Kind])
	}

	return b.String()
}

func focusLabel(f domain.FocusSelection) string {
	var b strings.Builder

	switch f.Kind {
	case domain.FocusRole:
		b.WriteString(f.Role.ChineseName())
	case domain.FocusSelf:
		b.WriteString("世爻")
	case domain.FocusOther:
		b.WriteString("应爻")
	}

	if f.Hidden {
		b.WriteString(" 伏藏")
	} else if len(f.Positions) > 0 {
		parts := make([]string, len(f.Positions))
		for i, pos := range f.Positions {
			parts[i] = fmt.Sprintf("%d爻", pos)
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, " "))
	}

	if f.Rationale != "" {
		b.WriteString("  ")
		b.WriteString(f.Rationale)
	}

	return b.String()
}

func toneMark(tone domain.ItemTone, focus bool) string {
	mark := "·"
	switch tone {
	case domain.ToneSupportive:
		mark = "+"
	case domain.ToneObstructive:
		mark = "-"
	case domain.ToneRisk:
		mark = "!"
	}
	if focus {
		return "◎" + mark
	}
	return " " + mark
}

func methodLabel(m domain.CastingMethod) string {
	switch m {
	case domain.MethodCoin:
		return "铜钱"
	case domain.MethodTime:
		return "时间"
	case domain.MethodManual:
		return "手动"
	default:
		return string(m)
	}
}

func subtypeSuffix(subtype string) string {
	if subtype == "" {
		return ""
	}
	return "·" + subtype
}

// generationLabel names the special palace generations; the ordinary ones
// render as their ordinal.
func generationLabel(generation int) string {
	switch generation {
	case 0:
		return "本宫卦"
	case 7:
		return "归魂卦"
	case 6:
		return "游魂卦"
	default:
		return fmt.Sprintf("%d世卦", generation)
	}
}
