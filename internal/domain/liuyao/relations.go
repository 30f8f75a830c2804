package liuyao

import (
	"fmt"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// analyzeRelations scans the casting for branch relationships in a fixed
// order: the fifteen line pairs bottom-up, every line against the day and
// month pillars, then the single triad-union check over the deduplicated
// branch set. The order is fixed so identical castings always report
// identical findings. An empty result is a perfectly normal outcome.
func analyzeRelations(
	lines [6]domain.Line,
	cal domain.CalendarTime,
	p *Params,
	chain *domain.ReasoningChain,
) []domain.RelationFinding {
	var findings []domain.RelationFinding

	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			findings = append(findings, pairFindings(lines[i], lines[j])...)
		}
	}

	for _, line := range lines {
		findings = append(findings, pillarFindings(line, cal)...)
	}

	if triad, ok := triadFinding(lines); ok {
		findings = append(findings, triad)
	}

	if chain != nil {
		for _, f := range findings {
			chain.Add(domain.ReasoningStep{
				Rule:        "relation-" + string(f.Kind),
				Description: "查六爻与日月之刑冲合害",
				Inputs:      map[string]string{"parties": fmt.Sprint(f.Parties)},
				Conclusion:  f.Note,
				Strength:    domain.StepMedium,
			})
		}
	}

	return findings
}

// pairFindings tests one unordered line pair against the four pairing
// tables. A pair can legitimately match more than one table (寅巳 is both a
// harm and an injury), so every match is reported.
func pairFindings(a, b domain.Line) []domain.RelationFinding {
	var out []domain.RelationFinding
	parties := []string{a.Label(), b.Label()}
	positions := []int{a.Position, b.Position}

	if a.Branch.ClashesWith(b.Branch) {
		out = append(out, domain.RelationFinding{
			Kind:      domain.RelationOpposition,
			Parties:   parties,
			Positions: positions,
			Impact:    domain.ImpactUnfavorable,
			Note:      fmt.Sprintf("%s与%s相冲，事多反复", a.Branch, b.Branch),
		})
	}
	if a.Branch.HarmonizesWith(b.Branch) {
		out = append(out, domain.RelationFinding{
			Kind:      domain.RelationUnion,
			Parties:   parties,
			Positions: positions,
			Impact:    domain.ImpactFavorable,
			Note:      fmt.Sprintf("%s与%s相合，得助而安", a.Branch, b.Branch),
		})
	}
	if a.Branch.Punishes(b.Branch) || b.Branch.Punishes(a.Branch) {
		out = append(out, domain.RelationFinding{
			Kind:      domain.RelationMutualInjury,
			Parties:   parties,
			Positions: positions,
			Impact:    domain.ImpactUnfavorable,
			Note:      fmt.Sprintf("%s与%s相刑，暗藏损伤", a.Branch, b.Branch),
		})
	}
	if a.Branch.HarmsWith(b.Branch) {
		out = append(out, domain.RelationFinding{
			Kind:      domain.RelationHarm,
			Parties:   parties,
			Positions: positions,
			Impact:    domain.ImpactUnfavorable,
			Note:      fmt.Sprintf("%s与%s相害，防小人掣肘", a.Branch, b.Branch),
		})
	}
	return out
}

// pillarFindings tests one line against the day and month branches. A day
// opposition against a seasonally strong line is the classic stirred line
// (暗动) and reads neutral; all other oppositions read unfavorable.
func pillarFindings(line domain.Line, cal domain.CalendarTime) []domain.RelationFinding {
	var out []domain.RelationFinding

	day := cal.Day.Branch
	if line.Branch.ClashesWith(day) {
		impact := domain.ImpactUnfavorable
		note := fmt.Sprintf("日辰%s冲%s，逢冲则散", day, line.Branch)
		if line.Strength != nil &&
			(line.Strength.MonthTier == domain.TierProsperous || line.Strength.MonthTier == domain.TierAssisted) {
			impact = domain.ImpactNeutral
			note = fmt.Sprintf("日辰%s冲%s，旺相逢冲为暗动", day, line.Branch)
		}
		out = append(out, domain.RelationFinding{
			Kind:      domain.RelationOpposition,
			Parties:   []string{line.Label(), "日辰" + day.String()},
			Positions: []int{line.Position},
			Impact:    impact,
			Note:      note,
		})
	}
	if line.Branch.HarmonizesWith(day) {
		out = append(out, domain.RelationFinding{
			Kind:      domain.RelationUnion,
			Parties:   []string{line.Label(), "日辰" + day.String()},
			Positions: []int{line.Position},
			Impact:    domain.ImpactFavorable,
			Note:      fmt.Sprintf("日辰%s合%s，合则有情", day, line.Branch),
		})
	}
	if line.Branch.Punishes(day) || day.Punishes(line.Branch) {
		out = append(out, domain.RelationFinding{
			Kind:      domain.RelationMutualInjury,
			Parties:   []string{line.Label(), "日辰" + day.String()},
			Positions: []int{line.Position},
			Impact:    domain.ImpactUnfavorable,
			Note:      fmt.Sprintf("%s与日辰%s相刑", line.Branch, day),
		})
	}
	if line.Branch.HarmsWith(day) {
		out = append(out, domain.RelationFinding{
			Kind:      domain.RelationHarm,
			Parties:   []string{line.Label(), "日辰" + day.String()},
			Positions: []int{line.Position},
			Impact:    domain.ImpactUnfavorable,
			Note:      fmt.Sprintf("%s与日辰%s相害", line.Branch, day),
		})
	}

	month := cal.Month.Branch
	if line.Branch.ClashesWith(month) {
		out = append(out, domain.RelationFinding{
			Kind:      domain.RelationOpposition,
			Parties:   []string{line.Label(), "月建" + month.String()},
			Positions: []int{line.Position},
			Impact:    domain.ImpactUnfavorable,
			Note:      fmt.Sprintf("月建%s冲%s，是为月破", month, line.Branch),
		})
	}
	if line.Branch.HarmonizesWith(month) {
		out = append(out, domain.RelationFinding{
			Kind:      domain.RelationUnion,
			Parties:   []string{line.Label(), "月建" + month.String()},
			Positions: []int{line.Position},
			Impact:    domain.ImpactFavorable,
			Note:      fmt.Sprintf("月建%s合%s", month, line.Branch),
		})
	}

	return out
}

// triadFinding checks the deduplicated six-branch set against the four triad
// unions in fixed scan order. Only the first set with at least two members
// is reported: complete with all three, partial with exactly two.
func triadFinding(lines [6]domain.Line) (domain.RelationFinding, bool) {
	present := make(map[domain.Branch][]int, 6)
	for _, l := range lines {
		present[l.Branch] = append(present[l.Branch], l.Position)
	}

	for _, triad := range domain.TriadUnions {
		var members []string
		var positions []int
		for _, b := range triad.Branches {
			if pos := present[b]; len(pos) > 0 {
				members = append(members, b.String())
				positions = append(positions, pos...)
			}
		}
		switch len(members) {
		case 3:
			return domain.RelationFinding{
				Kind:      domain.RelationTriadUnion,
				Parties:   members,
				Positions: positions,
				Impact:    domain.ImpactFavorable,
				Note: fmt.Sprintf("%s%s%s三合%s局，合力成势",
					triad.Branches[0], triad.Branches[1], triad.Branches[2],
					triad.Element.ChineseName()),
			}, true
		case 2:
			return domain.RelationFinding{
				Kind:      domain.RelationTriadUnion,
				Parties:   members,
				Positions: positions,
				Impact:    domain.ImpactNeutral,
				Partial:   true,
				Note: fmt.Sprintf("半合%s局，待%s而成",
					triad.Element.ChineseName(), missingTriadMember(triad, present)),
			}, true
		}
	}
	return domain.RelationFinding{}, false
}

// missingTriadMember names the absent branch of a partial triad.
func missingTriadMember(triad domain.TriadUnion, present map[domain.Branch][]int) string {
	for _, b := range triad.Branches {
		if len(present[b]) == 0 {
			return b.String()
		}
	}
	return ""
}
