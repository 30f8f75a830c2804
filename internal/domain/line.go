package domain

import (
	"encoding/json"
	"fmt"
)

// DrawValue is the raw value of one cast line: 6 old yin (active), 7 young
// yang, 8 young yin, 9 old yang (active).
type DrawValue int

const (
	DrawOldYin    DrawValue = 6
	DrawYoungYang DrawValue = 7
	DrawYoungYin  DrawValue = 8
	DrawOldYang   DrawValue = 9
)

// Valid reports whether the draw value is within 6..9.
func (d DrawValue) Valid() bool {
	return d >= DrawOldYin && d <= DrawOldYang
}

// Polarity returns yang for 7 and 9, yin for 6 and 8.
func (d DrawValue) Polarity() Polarity {
	if d == DrawYoungYang || d == DrawOldYang {
		return Yang
	}
	return Yin
}

// Active reports whether the line is a moving line (6 or 9).
func (d DrawValue) Active() bool {
	return d == DrawOldYin || d == DrawOldYang
}

// LineState is the immutable state of one cast line before installation.
type LineState struct {
	Polarity Polarity  `json:"polarity"`
	Active   bool      `json:"active"`
	Draw     DrawValue `json:"draw"`
}

// NewLineState builds a line state from a raw draw value.
func NewLineState(d DrawValue) (LineState, error) {
	if !d.Valid() {
		return LineState{}, fmt.Errorf("%w: %d", ErrInvalidDrawValue, int(d))
	}
	return LineState{Polarity: d.Polarity(), Active: d.Active(), Draw: d}, nil
}

// FamilialRole is the six-relative label (六亲) a line carries relative to
// its hexagram's palace element.
type FamilialRole string

const (
	RoleParent    FamilialRole = "parent"    // 父母
	RoleSibling   FamilialRole = "sibling"   // 兄弟
	RoleOffspring FamilialRole = "offspring" // 子孙
	RoleWealth    FamilialRole = "wealth"    // 妻财
	RoleOfficer   FamilialRole = "officer"   // 官鬼
)

var roleChinese = map[FamilialRole]string{
	RoleParent:    "父母",
	RoleSibling:   "兄弟",
	RoleOffspring: "子孙",
	RoleWealth:    "妻财",
	RoleOfficer:   "官鬼",
}

// ChineseName returns the traditional two-character name of the role.
func (r FamilialRole) ChineseName() string {
	return roleChinese[r]
}

// Valid reports whether the role is one of the five defined relatives.
func (r FamilialRole) Valid() bool {
	_, ok := roleChinese[r]
	return ok
}

// RoleFor derives the familial role of a line element relative to the palace
// element: what generates the palace is parent, what the palace generates is
// offspring, what dominates it is officer, what it dominates is wealth, and
// its own element is sibling.
func RoleFor(palace, line Element) FamilialRole {
	switch {
	case palace == line:
		return RoleSibling
	case line.Generates(palace):
		return RoleParent
	case palace.Generates(line):
		return RoleOffspring
	case line.Dominates(palace):
		return RoleOfficer
	default:
		return RoleWealth
	}
}

// Guardian is one of the six guardians (六神) assigned cyclically to lines
// 1..6 from a day-stem dependent starting point.
type Guardian int

const (
	GuardianQingLong Guardian = iota // 青龙
	GuardianZhuQue                   // 朱雀
	GuardianGouChen                  // 勾陈
	GuardianTengShe                  // 螣蛇
	GuardianBaiHu                    // 白虎
	GuardianXuanWu                   // 玄武
)

var guardianChinese = [...]string{"青龙", "朱雀", "勾陈", "螣蛇", "白虎", "玄武"}

// GuardianAt returns the guardian at the given cyclic offset.
func GuardianAt(n int) Guardian {
	return Guardian(((n % 6) + 6) % 6)
}

// String returns the Chinese name of the guardian.
func (g Guardian) String() string {
	if g < GuardianQingLong || g > GuardianXuanWu {
		return fmt.Sprintf("guardian(%d)", int(g))
	}
	return guardianChinese[g]
}

// MarshalJSON encodes the guardian as its Chinese name.
func (g Guardian) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON decodes a guardian from its Chinese name.
func (g *Guardian) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, ch := range guardianChinese {
		if ch == name {
			*g = Guardian(i)
			return nil
		}
	}
	return fmt.Errorf("%w: guardian %q", ErrInvalidFormat, name)
}

// MonthTier is the seasonal standing (旺相休囚死) of a line element against
// the month element.
type MonthTier string

const (
	TierProsperous MonthTier = "prosperous" // 旺
	TierAssisted   MonthTier = "assisted"   // 相
	TierResting    MonthTier = "resting"    // 休
	TierTrapped    MonthTier = "trapped"    // 囚
	TierDead       MonthTier = "dead"       // 死
)

var monthTierChinese = map[MonthTier]string{
	TierProsperous: "旺",
	TierAssisted:   "相",
	TierResting:    "休",
	TierTrapped:    "囚",
	TierDead:       "死",
}

// ChineseName returns the single-character Chinese name of the tier.
func (t MonthTier) ChineseName() string {
	return monthTierChinese[t]
}

// MonthTierFor grades a line element against the month element: same element
// is prosperous, generated by the month is assisted, generating the month is
// resting, dominating the month is trapped, dominated by it is dead.
func MonthTierFor(line, month Element) MonthTier {
	switch {
	case line == month:
		return TierProsperous
	case month.Generates(line):
		return TierAssisted
	case line.Generates(month):
		return TierResting
	case line.Dominates(month):
		return TierTrapped
	default:
		return TierDead
	}
}

// StrengthGrade is the discrete strength judgment derived from a line's
// weighted score.
type StrengthGrade string

const (
	GradePeak     StrengthGrade = "peak"
	GradeStrong   StrengthGrade = "strong"
	GradeModerate StrengthGrade = "moderate"
	GradeWeak     StrengthGrade = "weak"
	GradeDepleted StrengthGrade = "depleted"
)

var gradeChinese = map[StrengthGrade]string{
	GradePeak:     "极旺",
	GradeStrong:   "旺相",
	GradeModerate: "平稳",
	GradeWeak:     "衰弱",
	GradeDepleted: "衰绝",
}

// ChineseName returns the traditional reading of the grade.
func (g StrengthGrade) ChineseName() string {
	return gradeChinese[g]
}

// Favorable reports whether the grade counts as a strong standing.
func (g StrengthGrade) Favorable() bool {
	return g == GradePeak || g == GradeStrong
}

// LineStrength is the full strength assessment of one line.
type LineStrength struct {
	Score     int           `json:"score"` // clamped to -10..10
	Grade     StrengthGrade `json:"grade"`
	MonthTier MonthTier     `json:"month_tier"`
	LifeStage LifeStage     `json:"life_stage"` // advisory, against the day branch
}

// TransformKind classifies what an active line turns into.
type TransformKind string

const (
	TransformAdvancing   TransformKind = "advancing"    // 化进
	TransformRetreating  TransformKind = "retreating"   // 化退
	TransformReturnBirth TransformKind = "return_birth" // 回头生
	TransformReturnClash TransformKind = "return_clash" // 回头克
	TransformNeutral     TransformKind = "neutral"
)

// Transform describes the outcome of an active line's change. Only active
// lines carry one.
type Transform struct {
	Kind      TransformKind `json:"kind"`
	ToBranch  Branch        `json:"to_branch"`
	ToElement Element       `json:"to_element"`
}

// Line is one fully installed hexagram line. Lines are enriched in stages;
// every stage copies and returns new values rather than mutating in place.
type Line struct {
	Position   int           `json:"position"` // 1 bottom .. 6 top
	State      LineState     `json:"state"`
	Branch     Branch        `json:"branch"`
	Element    Element       `json:"element"`
	Role       FamilialRole  `json:"role"`
	Guardian   Guardian      `json:"guardian"`
	Self       bool          `json:"self"`  // 世
	Other      bool          `json:"other"` // 应
	Transform  *Transform    `json:"transform,omitempty"`
	Strength   *LineStrength `json:"strength,omitempty"`
	Void       bool          `json:"void"`        // 旬空
	DayClash   bool          `json:"day_clash"`   // 日冲
	MonthClash bool          `json:"month_clash"` // 月破
}

// Label returns a short human-readable descriptor for reasoning output,
// e.g. "3爻午火兄弟".
func (l Line) Label() string {
	return fmt.Sprintf("%d爻%s%s%s",
		l.Position, l.Branch, l.Element.ChineseName(), l.Role.ChineseName())
}
