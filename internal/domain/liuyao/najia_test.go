package liuyao

import (
	"testing"

	"github.com/yaolab/liuyao-api/internal/domain"
)

func mustHexagram(t *testing.T, key string) domain.Hexagram {
	t.Helper()

	h, err := domain.HexagramByKey(key)
	if err != nil {
		t.Fatalf("Expected hexagram lookup for %q to succeed, got %v", key, err)
	}
	return h
}

func TestInstallLinesQian(t *testing.T) {
	t.Parallel() // Enable parallel execution

	hex := mustHexagram(t, "111111")
	states := statesFromDraws(t, [6]domain.DrawValue{7, 7, 7, 7, 7, 7})
	chain := &domain.ReasoningChain{}

	lines, err := installLines(hex, nil, states, chain)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []struct {
		branch  domain.Branch
		element domain.Element
		role    domain.FamilialRole
	}{
		{domain.BranchZi, domain.Water, domain.RoleOffspring},
		{domain.BranchYin, domain.Wood, domain.RoleWealth},
		{domain.BranchChen, domain.Earth, domain.RoleParent},
		{domain.BranchWu, domain.Fire, domain.RoleOfficer},
		{domain.BranchShen, domain.Metal, domain.RoleSibling},
		{domain.BranchXu, domain.Earth, domain.RoleParent},
	}

	for i, e := range expected {
		line := lines[i]
		if line.Position != i+1 {
			t.Errorf("Expected position %d, got %d", i+1, line.Position)
		}
		if line.Branch != e.branch {
			t.Errorf("Expected branch %s at position %d, got %s", e.branch, i+1, line.Branch)
		}
		if line.Element != e.element {
			t.Errorf("Expected element %s at position %d, got %s", e.element, i+1, line.Element)
		}
		if line.Role != e.role {
			t.Errorf("Expected role %s at position %d, got %s", e.role, i+1, line.Role)
		}
		if line.Transform != nil {
			t.Errorf("Expected no transform on static line %d", i+1)
		}
	}

	if !lines[5].Self {
		t.Error("Expected world line at position 6")
	}
	if !lines[2].Other {
		t.Error("Expected response line at position 3")
	}
	for i, line := range lines {
		if line.Self && i != 5 {
			t.Errorf("Expected no world flag at position %d", i+1)
		}
		if line.Other && i != 2 {
			t.Errorf("Expected no response flag at position %d", i+1)
		}
	}

	var rules []string
	for _, step := range chain.Steps {
		rules = append(rules, step.Rule)
	}
	if !containsString(rules, "najia-installation") {
		t.Errorf("Expected najia-installation step, got %v", rules)
	}
	if !containsString(rules, "world-response") {
		t.Errorf("Expected world-response step, got %v", rules)
	}
}

func TestInstallLinesTransforms(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		draws    [6]domain.DrawValue
		position int
		kind     domain.TransformKind
		toBranch domain.Branch
	}{
		{
			name:     "乾 bottom line advances 子 into 丑",
			draws:    [6]domain.DrawValue{9, 7, 7, 7, 7, 7},
			position: 1,
			kind:     domain.TransformAdvancing,
			toBranch: domain.BranchChou,
		},
		{
			name:     "兑 second line retreats 卯 into 寅",
			draws:    [6]domain.DrawValue{7, 9, 8, 7, 7, 8},
			position: 2,
			kind:     domain.TransformRetreating,
			toBranch: domain.BranchYin,
		},
		{
			name:     "兑 bottom line 巳 takes return birth from 寅",
			draws:    [6]domain.DrawValue{9, 7, 8, 7, 7, 8},
			position: 1,
			kind:     domain.TransformReturnBirth,
			toBranch: domain.BranchYin,
		},
		{
			name:     "震 bottom line 子 takes return clash from 未",
			draws:    [6]domain.DrawValue{9, 8, 8, 7, 8, 8},
			position: 1,
			kind:     domain.TransformReturnClash,
			toBranch: domain.BranchWei,
		},
		{
			name:     "兑 third line 丑 changes into 辰 without effect",
			draws:    [6]domain.DrawValue{7, 7, 6, 7, 7, 8},
			position: 3,
			kind:     domain.TransformNeutral,
			toBranch: domain.BranchChen,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			states := statesFromDraws(t, tc.draws)
			primary := mustHexagram(t, lineKey(states))

			changedKey, ok := changedLineKey(states)
			if !ok {
				t.Fatal("Expected a changed hexagram")
			}
			changed := mustHexagram(t, changedKey)

			lines, err := installLines(primary, &changed, states, nil)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			for i, line := range lines {
				if line.Position == tc.position {
					if line.Transform == nil {
						t.Fatalf("Expected transform on line %d", tc.position)
					}
					if line.Transform.Kind != tc.kind {
						t.Errorf("Expected transform %s, got %s", tc.kind, line.Transform.Kind)
					}
					if line.Transform.ToBranch != tc.toBranch {
						t.Errorf("Expected target branch %s, got %s", tc.toBranch, line.Transform.ToBranch)
					}
					if line.Transform.ToElement != tc.toBranch.Element() {
						t.Errorf("Expected target element %s, got %s",
							tc.toBranch.Element(), line.Transform.ToElement)
					}
					continue
				}
				if line.Transform != nil {
					t.Errorf("Expected no transform on static line %d", i+1)
				}
			}
		})
	}
}

func TestInstallLinesRejectsUnmarkedHexagram(t *testing.T) {
	t.Parallel() // Enable parallel execution

	states := statesFromDraws(t, [6]domain.DrawValue{7, 7, 7, 7, 7, 7})

	broken := domain.Hexagram{Name: "broken", SelfLine: 0, OtherLine: 3}
	if _, err := installLines(broken, nil, states, nil); err == nil {
		t.Error("Expected error for missing world line, got nil")
	}

	broken = domain.Hexagram{Name: "broken", SelfLine: 6, OtherLine: 0}
	if _, err := installLines(broken, nil, states, nil); err == nil {
		t.Error("Expected error for missing response line, got nil")
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
