package liuyao

import (
	"fmt"
	"strings"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// focusRule fixes the focus target for one question framing.
type focusRule struct {
	kind      domain.FocusTargetKind
	role      domain.FamilialRole // when kind is FocusRole
	secondary domain.FamilialRole // offered alongside, "" when none
	rationale string
}

// categoryRules is the default focus table. Marriage is resolved separately
// because the spouse star depends on who asks.
var categoryRules = map[domain.Category]focusRule{
	domain.CategoryCareer: {
		kind: domain.FocusRole, role: domain.RoleOfficer,
		rationale: "官鬼爻主官职事业，以官鬼为用神",
	},
	domain.CategoryWealth: {
		kind: domain.FocusRole, role: domain.RoleWealth, secondary: domain.RoleOffspring,
		rationale: "妻财爻主钱财，以妻财为用神，子孙为财之元神",
	},
	domain.CategoryHealth: {
		kind: domain.FocusSelf, secondary: domain.RoleOfficer,
		rationale: "占病以世爻为自身，兼看官鬼为病症",
	},
	domain.CategoryStudy: {
		kind: domain.FocusRole, role: domain.RoleParent, secondary: domain.RoleOfficer,
		rationale: "父母爻主文书学业，兼看官鬼为名次",
	},
	domain.CategoryChildren: {
		kind: domain.FocusRole, role: domain.RoleOffspring,
		rationale: "子孙爻主儿女，以子孙为用神",
	},
	domain.CategoryFamily: {
		kind: domain.FocusRole, role: domain.RoleParent,
		rationale: "父母爻主尊长家宅，以父母为用神",
	},
	domain.CategoryTravel: {
		kind:      domain.FocusSelf,
		rationale: "出行以世爻为自身安危",
	},
	domain.CategoryLawsuit: {
		kind: domain.FocusRole, role: domain.RoleOfficer, secondary: domain.RoleParent,
		rationale: "官鬼爻主官司词讼，父母为文书状词",
	},
	domain.CategoryLostItem: {
		kind: domain.FocusRole, role: domain.RoleWealth,
		rationale: "失物以妻财为用神",
	},
	domain.CategoryGeneral: {
		kind:      domain.FocusSelf,
		rationale: "泛占以世爻为自身",
	},
}

// subtypeRules refines a category for the subtypes that change the target.
// Unknown subtypes simply fall back to the category default.
var subtypeRules = map[domain.Category]map[string]focusRule{
	domain.CategoryCareer: {
		"promotion": {
			kind: domain.FocusRole, role: domain.RoleOfficer, secondary: domain.RoleParent,
			rationale: "求升迁以官鬼为用神，父母为印绶文书",
		},
		"business": {
			kind: domain.FocusRole, role: domain.RoleWealth, secondary: domain.RoleOffspring,
			rationale: "经营生意以妻财为用神，子孙为财源",
		},
	},
	domain.CategoryHealth: {
		"chronic": {
			kind: domain.FocusRole, role: domain.RoleOfficer, secondary: "",
			rationale: "久病以官鬼为病症之用神",
		},
	},
}

// selectFocus picks the focus element for a question. A target role that does
// not appear among the six lines yields a hidden selection with a secondary
// candidate; that is a normal outcome, never an error.
func selectFocus(
	lines [6]domain.Line,
	category domain.Category,
	subtype string,
	seeker domain.Seeker,
	chain *domain.ReasoningChain,
) domain.FocusSelection {
	rule := ruleFor(category, subtype, seeker)

	selection := resolveRule(rule, lines)
	if selection.Hidden {
		if rule.secondary != "" {
			sec := resolveRule(focusRule{
				kind: domain.FocusRole, role: rule.secondary,
				rationale: "用神不现，以" + rule.secondary.ChineseName() + "辅断",
			}, lines)
			selection.Secondary = &sec
		} else {
			// Without a tabled alternate the self line stands in.
			sec := resolveRule(focusRule{kind: domain.FocusSelf, rationale: "用神不现，以世爻代观"}, lines)
			selection.Secondary = &sec
		}
	} else if rule.secondary != "" {
		sec := resolveRule(focusRule{
			kind: domain.FocusRole, role: rule.secondary,
			rationale: rule.secondary.ChineseName() + "为辅",
		}, lines)
		selection.Secondary = &sec
	}

	if chain != nil {
		chain.Add(domain.ReasoningStep{
			Rule:        "focus-selection",
			Description: "依所问事类取用神",
			Inputs: map[string]string{
				"category": string(category),
				"subtype":  subtype,
				"seeker":   string(seeker),
			},
			Conclusion: selection.Rationale + "；" + focusPlacement(selection),
			Strength:   domain.StepStrong,
			Source:     "《增删卜易》用神章",
		})
		if selection.Hidden {
			chain.Add(domain.ReasoningStep{
				Rule:        "focus-hidden",
				Description: "用神不上卦",
				Conclusion:  "用神伏而不现，断事多阻，取辅证参断",
				Strength:    domain.StepWeak,
			})
		}
	}

	return selection
}

// ruleFor resolves the focus rule: subtype refinement first, then the
// category default, then the self line as last resort. Marriage questions
// pick the spouse star by the seeker.
func ruleFor(category domain.Category, subtype string, seeker domain.Seeker) focusRule {
	if category == domain.CategoryMarriage {
		switch seeker {
		case domain.SeekerMale:
			return focusRule{
				kind: domain.FocusRole, role: domain.RoleWealth,
				rationale: "男占婚以妻财为妻星",
			}
		case domain.SeekerFemale:
			return focusRule{
				kind: domain.FocusRole, role: domain.RoleOfficer,
				rationale: "女占婚以官鬼为夫星",
			}
		default:
			return focusRule{
				kind:      domain.FocusSelf,
				rationale: "未言男女，以世应相对察婚姻",
			}
		}
	}

	if subtype != "" {
		if refinements, ok := subtypeRules[category]; ok {
			if rule, ok := refinements[strings.ToLower(subtype)]; ok {
				return rule
			}
		}
	}

	if rule, ok := categoryRules[category]; ok {
		return rule
	}
	return focusRule{kind: domain.FocusSelf, rationale: "无专用之神，以世爻为用"}
}

// resolveRule locates the rule's target among the lines.
func resolveRule(rule focusRule, lines [6]domain.Line) domain.FocusSelection {
	selection := domain.FocusSelection{
		Kind:      rule.kind,
		Rationale: rule.rationale,
		Positions: []int{},
	}

	switch rule.kind {
	case domain.FocusRole:
		selection.Role = rule.role
		for _, l := range lines {
			if l.Role == rule.role {
				selection.Positions = append(selection.Positions, l.Position)
			}
		}
		selection.Hidden = len(selection.Positions) == 0
	case domain.FocusSelf:
		for _, l := range lines {
			if l.Self {
				selection.Positions = append(selection.Positions, l.Position)
			}
		}
	case domain.FocusOther:
		for _, l := range lines {
			if l.Other {
				selection.Positions = append(selection.Positions, l.Position)
			}
		}
	}

	return selection
}

// focusPlacement renders where the focus manifests.
func focusPlacement(sel domain.FocusSelection) string {
	if sel.Hidden {
		return "用神不现于卦中"
	}
	parts := make([]string, len(sel.Positions))
	for i, pos := range sel.Positions {
		parts[i] = fmt.Sprintf("%d爻", pos)
	}
	return "用神现于" + strings.Join(parts, "、")
}
