package liuyao

import (
	"fmt"
	"strings"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// installLines performs the najia installation of the six lines: branch and
// element from the trigram sequences, familial role against the palace
// element, and the 世/应 flags from the hexagram's palace generation. When a
// changed hexagram exists, every active line additionally receives its
// transformation descriptor; inactive lines never do.
func installLines(
	hex domain.Hexagram,
	changed *domain.Hexagram,
	states [6]domain.LineState,
	chain *domain.ReasoningChain,
) ([6]domain.Line, error) {
	if hex.SelfLine < 1 || hex.SelfLine > 6 {
		return [6]domain.Line{}, fmt.Errorf("%w: hexagram %s", domain.ErrMissingWorldLine, hex.Name)
	}
	if hex.OtherLine < 1 || hex.OtherLine > 6 {
		return [6]domain.Line{}, fmt.Errorf("%w: hexagram %s", domain.ErrMissingResponseLine, hex.Name)
	}

	var lines [6]domain.Line
	for i, state := range states {
		pos := i + 1
		branch := najiaBranchAt(hex, pos)
		element := branch.Element()

		line := domain.Line{
			Position: pos,
			State:    state,
			Branch:   branch,
			Element:  element,
			Role:     domain.RoleFor(hex.PalaceElement, element),
			Self:     pos == hex.SelfLine,
			Other:    pos == hex.OtherLine,
		}

		if state.Active && changed != nil {
			line.Transform = transformFor(line, *changed)
		}

		lines[i] = line
	}

	if chain != nil {
		var parts []string
		for _, l := range lines {
			parts = append(parts, l.Label())
		}
		chain.Add(domain.ReasoningStep{
			Rule:        "najia-installation",
			Description: "按宫位纳甲装卦，依宫五行定六亲",
			Inputs: map[string]string{
				"hexagram": hex.Name,
				"palace":   hex.Palace.String() + "宫" + hex.PalaceElement.ChineseName(),
			},
			Conclusion: strings.Join(parts, "，"),
			Strength:   domain.StepStrong,
			Source:     "《京氏易传》纳甲法",
		})
		chain.Add(domain.ReasoningStep{
			Rule:        "world-response",
			Description: "依宫内卦序定世应之位",
			Inputs: map[string]string{
				"generation": fmt.Sprintf("%d", hex.Generation),
			},
			Conclusion: fmt.Sprintf("世在%d爻，应在%d爻", hex.SelfLine, hex.OtherLine),
			Strength:   domain.StepStrong,
		})
	}

	return lines, nil
}

// najiaBranchAt returns the branch installed at position 1..6: the lower
// trigram covers positions 1..3 with its own sequence, the upper trigram
// covers 4..6 with the tail of its sequence.
func najiaBranchAt(hex domain.Hexagram, pos int) domain.Branch {
	if pos <= 3 {
		return hex.Lower.NajiaBranch(pos)
	}
	return hex.Upper.NajiaBranch(pos)
}

// transformFor classifies what an active line changes into, by comparing its
// branch with the branch installed at the same position of the changed
// hexagram: one cyclic step forward is advancing (化进), one step back is
// retreating (化退); otherwise the changed element either feeds the line
// (回头生), attacks it (回头克), or leaves it untouched.
func transformFor(line domain.Line, changed domain.Hexagram) *domain.Transform {
	toBranch := najiaBranchAt(changed, line.Position)
	toElement := toBranch.Element()

	kind := domain.TransformNeutral
	switch {
	case toBranch == line.Branch.Next():
		kind = domain.TransformAdvancing
	case toBranch == line.Branch.Prev():
		kind = domain.TransformRetreating
	case toElement.Generates(line.Element):
		kind = domain.TransformReturnBirth
	case toElement.Dominates(line.Element):
		kind = domain.TransformReturnClash
	}

	return &domain.Transform{
		Kind:      kind,
		ToBranch:  toBranch,
		ToElement: toElement,
	}
}
