package liuyao

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// castInput is a valid manual casting of 乾为天 on a 庚戌 day in a 庚午
// month, the shared fixture for the pipeline tests.
func castInput() domain.CastingInput {
	return domain.CastingInput{
		Method:   domain.MethodManual,
		Draws:    [6]domain.DrawValue{7, 7, 7, 7, 7, 7},
		CastAt:   time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
		Category: domain.CategoryCareer,
	}
}

func TestNewService(t *testing.T) {
	t.Parallel() // Enable parallel execution

	if _, err := NewService(nil); err != ErrNilParams {
		t.Errorf("Expected ErrNilParams, got %v", err)
	}

	svc, err := NewService(NewDefaultParams())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if svc == nil {
		t.Fatal("Expected a service instance")
	}

	if NewDefaultService() == nil {
		t.Fatal("Expected a default service instance")
	}
}

func TestCastRejectsInvalidInput(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc := NewDefaultService()

	input := domain.CastingInput{
		Method:   "dice",
		Draws:    [6]domain.DrawValue{7, 7, 5, 7, 7, 7},
		Category: "lottery",
		Seeker:   "dog",
	}

	result, err := svc.Cast(input)
	if result != nil {
		t.Error("Expected no result for invalid input")
	}
	if err == nil {
		t.Fatal("Expected an error")
	}

	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("Expected an *InputError, got %T", err)
	}
	if len(inputErr.Problems) != 5 {
		t.Errorf("Expected 5 problems, got %d: %v", len(inputErr.Problems), inputErr.Problems)
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Error("Expected the error to unwrap to ErrValidation")
	}
	if !strings.Contains(err.Error(), "invalid casting input") {
		t.Errorf("Expected combined message, got %q", err.Error())
	}
}

func TestCastStaticHexagram(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc := NewDefaultService()

	result, err := svc.Cast(castInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Primary.Name != "乾为天" {
		t.Errorf("Expected 乾为天, got %s", result.Primary.Name)
	}
	if result.Changed != nil {
		t.Errorf("Expected no changed hexagram, got %v", result.Changed)
	}
	if len(result.ChangedLines) != 0 {
		t.Errorf("Expected no changed lines, got %d", len(result.ChangedLines))
	}
	if result.Nuclear.Name != "乾为天" {
		t.Errorf("Expected 乾为天 nuclear, got %s", result.Nuclear.Name)
	}
	if result.Opposite.Name != "坤为地" {
		t.Errorf("Expected 坤为地 opposite, got %s", result.Opposite.Name)
	}
	if result.Reversed.Name != "乾为天" {
		t.Errorf("Expected 乾为天 reversed, got %s", result.Reversed.Name)
	}

	if result.Calendar.String() != "甲辰年 庚午月 庚戌日 辛巳时" {
		t.Errorf("Expected 甲辰年 庚午月 庚戌日 辛巳时, got %s", result.Calendar)
	}
	wantVoids := [2]domain.Branch{domain.BranchYin, domain.BranchMao}
	if result.Calendar.Voids != wantVoids {
		t.Errorf("Expected voids 寅卯, got %v", result.Calendar.Voids)
	}

	self, err := result.SelfLine()
	if err != nil || self.Position != 6 {
		t.Errorf("Expected self line at 6, got %d (%v)", self.Position, err)
	}
	other, err := result.OtherLine()
	if err != nil || other.Position != 3 {
		t.Errorf("Expected other line at 3, got %d (%v)", other.Position, err)
	}

	// Day stem 庚 starts the guardian cycle at 白虎.
	wantGuardians := []domain.Guardian{
		domain.GuardianBaiHu,
		domain.GuardianXuanWu,
		domain.GuardianQingLong,
		domain.GuardianZhuQue,
		domain.GuardianGouChen,
		domain.GuardianTengShe,
	}
	for i, g := range wantGuardians {
		if result.Lines[i].Guardian != g {
			t.Errorf("Expected guardian %s at position %d, got %s", g, i+1, result.Lines[i].Guardian)
		}
	}

	// The career question takes the officer at position 4.
	if result.Focus.Kind != domain.FocusRole || result.Focus.Role != domain.RoleOfficer {
		t.Errorf("Expected officer focus, got %s/%s", result.Focus.Kind, result.Focus.Role)
	}
	if len(result.Focus.Positions) != 1 || result.Focus.Positions[0] != 4 {
		t.Errorf("Expected focus at position 4, got %v", result.Focus.Positions)
	}

	// 子水 is trapped in the fire month, restrained by the earth day and
	// month-broken; 午火 rides the month with only the tomb stage against it.
	bottom := result.Lines[0]
	if bottom.Strength == nil || bottom.Strength.Score != -8 || bottom.Strength.Grade != domain.GradeDepleted {
		t.Errorf("Expected 子水 at -8 depleted, got %+v", bottom.Strength)
	}
	if !bottom.MonthClash {
		t.Error("Expected 子水 to be month-broken")
	}
	officer := result.Lines[3]
	if officer.Strength == nil || officer.Strength.Score != 3 || officer.Strength.Grade != domain.GradeStrong {
		t.Errorf("Expected 午火 at 3 strong, got %+v", officer.Strength)
	}

	// 乾为天 holds the full 申子辰 water triad, three internal clashes, one
	// month break and one stirred line.
	if len(result.Relations) != 7 {
		t.Fatalf("Expected 7 relation findings, got %d: %+v", len(result.Relations), result.Relations)
	}
	triad := result.Relations[6]
	if triad.Kind != domain.RelationTriadUnion || triad.Partial {
		t.Errorf("Expected a complete triad last, got %+v", triad)
	}
	stirred := result.Relations[5]
	if stirred.Impact != domain.ImpactNeutral || !strings.Contains(stirred.Note, "暗动") {
		t.Errorf("Expected the assisted 辰土 to read stirred, got %+v", stirred)
	}

	if result.Interpretation.Trend != domain.TrendSteady {
		t.Errorf("Expected steady trend, got %s", result.Interpretation.Trend)
	}
	if !strings.Contains(result.Interpretation.TechnicalSummary, "乾为天") {
		t.Errorf("Expected hexagram in summary, got %q", result.Interpretation.TechnicalSummary)
	}
	if !strings.Contains(result.Interpretation.TechnicalSummary, "乾宫属金") {
		t.Errorf("Expected palace in summary, got %q", result.Interpretation.TechnicalSummary)
	}
	if result.Interpretation.Advice == "" {
		t.Error("Expected advice to be set")
	}
	if len(result.Interpretation.Items) == 0 {
		t.Error("Expected interpretation items")
	}
	if len(result.Interpretation.Timing) == 0 {
		t.Error("Expected timing predictions for a present focus")
	}

	if result.ID == uuid.Nil {
		t.Error("Expected a generated ID")
	}
	if result.CreatedAt.IsZero() {
		t.Error("Expected a creation timestamp")
	}
}

func TestCastReasoningChainShape(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc := NewDefaultService()

	result, err := svc.Cast(castInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	steps := result.Reasoning.Steps
	if len(steps) < 10 {
		t.Fatalf("Expected a full reasoning chain, got %d steps", len(steps))
	}

	wantPrefix := []string{
		"calendar",
		"hexagram-lookup",
		"najia-installation",
		"world-response",
		"six-guardians",
	}
	for i, rule := range wantPrefix {
		if steps[i].Rule != rule {
			t.Errorf("Expected step %d rule %s, got %s", i, rule, steps[i].Rule)
		}
	}

	if steps[0].Conclusion != "甲辰年 庚午月 庚戌日 辛巳时" {
		t.Errorf("Expected calendar conclusion, got %q", steps[0].Conclusion)
	}
	if steps[1].Conclusion != "得乾为天，六爻安静" {
		t.Errorf("Expected static hexagram conclusion, got %q", steps[1].Conclusion)
	}

	if steps[len(steps)-1].Rule != "advice" {
		t.Errorf("Expected advice last, got %s", steps[len(steps)-1].Rule)
	}
	if steps[len(steps)-2].Rule != "trend-tally" {
		t.Errorf("Expected trend-tally before advice, got %s", steps[len(steps)-2].Rule)
	}

	var focusStep bool
	for _, s := range steps {
		if s.Rule == "focus-selection" {
			focusStep = true
		}
	}
	if !focusStep {
		t.Error("Expected a focus-selection step")
	}
}

func TestCastWithChangedHexagram(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc := NewDefaultService()

	input := castInput()
	// 天地否 with the bottom line moving becomes 天雷无妄.
	input.Draws = [6]domain.DrawValue{6, 8, 8, 7, 7, 7}
	input.Category = domain.CategoryWealth

	result, err := svc.Cast(input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Primary.Name != "天地否" {
		t.Errorf("Expected 天地否, got %s", result.Primary.Name)
	}
	if result.Changed == nil || result.Changed.Name != "天雷无妄" {
		t.Fatalf("Expected 天雷无妄 changed, got %v", result.Changed)
	}

	moving := result.Lines[0]
	if !moving.State.Active {
		t.Error("Expected the bottom line to be active")
	}
	if moving.Branch != domain.BranchWei {
		t.Errorf("Expected 未 at the bottom of 否, got %s", moving.Branch)
	}
	if moving.Transform == nil {
		t.Fatal("Expected a transform on the moving line")
	}
	if moving.Transform.ToBranch != domain.BranchZi {
		t.Errorf("Expected transform into 子, got %s", moving.Transform.ToBranch)
	}
	if moving.Transform.Kind != domain.TransformNeutral {
		t.Errorf("Expected a neutral transform, got %s", moving.Transform.Kind)
	}
	for _, l := range result.Lines[1:] {
		if l.Transform != nil {
			t.Errorf("Expected no transform on static line %d", l.Position)
		}
	}

	if len(result.ChangedLines) != 6 {
		t.Fatalf("Expected 6 changed lines, got %d", len(result.ChangedLines))
	}
	if result.ChangedLines[0].Branch != domain.BranchZi {
		t.Errorf("Expected 子 at the bottom of 无妄, got %s", result.ChangedLines[0].Branch)
	}
	for _, l := range result.ChangedLines {
		if l.State.Active {
			t.Errorf("Expected changed line %d to be settled", l.Position)
		}
	}

	if !strings.Contains(result.Interpretation.TechnicalSummary, "天地否之天雷无妄") {
		t.Errorf("Expected both hexagrams in summary, got %q", result.Interpretation.TechnicalSummary)
	}
}

func TestCastChaoticMovement(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc := NewDefaultService()

	input := castInput()
	input.Draws = [6]domain.DrawValue{9, 9, 6, 9, 7, 8}

	result, err := svc.Cast(input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var movement []domain.InterpretationItem
	for _, it := range result.Interpretation.Items {
		if it.Aspect == "movement" {
			movement = append(movement, it)
		}
	}
	if len(movement) != 1 {
		t.Fatalf("Expected chaotic movement to collapse into 1 item, got %d", len(movement))
	}
	if movement[0].Tone != domain.ToneRisk {
		t.Errorf("Expected risk tone, got %s", movement[0].Tone)
	}
	if !strings.Contains(movement[0].Text, "4爻乱动") {
		t.Errorf("Expected chaos reading, got %q", movement[0].Text)
	}

	var chaosNote bool
	for _, u := range result.Interpretation.Uncertainties {
		if strings.Contains(u, "动爻过多") {
			chaosNote = true
		}
	}
	if !chaosNote {
		t.Errorf("Expected chaos uncertainty, got %v", result.Interpretation.Uncertainties)
	}
}

func TestCastDeterminism(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc := NewDefaultService()

	first, err := svc.Cast(castInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := svc.Cast(castInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if first.ID == second.ID {
		t.Error("Expected distinct IDs per cast")
	}

	if !reflect.DeepEqual(first.Lines, second.Lines) {
		t.Error("Expected identical lines")
	}
	if !reflect.DeepEqual(first.Relations, second.Relations) {
		t.Error("Expected identical relations")
	}
	if !reflect.DeepEqual(first.Focus, second.Focus) {
		t.Error("Expected identical focus selection")
	}
	if !reflect.DeepEqual(first.Interpretation, second.Interpretation) {
		t.Error("Expected identical interpretation")
	}
	if !reflect.DeepEqual(first.Reasoning, second.Reasoning) {
		t.Error("Expected identical reasoning")
	}
}

func TestCalendarPassthrough(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc := NewDefaultService()

	cal := svc.Calendar(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))
	if cal.String() != "甲辰年 庚午月 庚戌日 辛巳时" {
		t.Errorf("Expected 甲辰年 庚午月 庚戌日 辛巳时, got %s", cal)
	}
}

func TestSimulateCoins(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc := NewDefaultService()

	first := svc.SimulateCoins(42)
	second := svc.SimulateCoins(42)
	if first != second {
		t.Errorf("Expected identical draws for the same seed, got %v and %v", first, second)
	}

	for i, d := range first {
		if !d.Valid() {
			t.Errorf("Expected a valid draw at line %d, got %d", i+1, int(d))
		}
	}

	// Across a run of seeds the draws must not all collapse onto one value.
	distinct := map[[6]domain.DrawValue]bool{}
	for seed := int64(0); seed < 20; seed++ {
		distinct[svc.SimulateCoins(seed)] = true
	}
	if len(distinct) < 2 {
		t.Error("Expected draw variety across seeds")
	}
}

func TestTimeDraws(t *testing.T) {
	t.Parallel() // Enable parallel execution

	svc := NewDefaultService()

	at := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	draws := svc.TimeDraws(at)

	if draws != svc.TimeDraws(at) {
		t.Error("Expected identical draws for the same moment")
	}

	moving := 0
	for i, d := range draws {
		if !d.Valid() {
			t.Errorf("Expected a valid draw at line %d, got %d", i+1, int(d))
		}
		if d.Active() {
			moving++
		}
	}
	if moving != 1 {
		t.Errorf("Expected exactly one moving line, got %d", moving)
	}

	// The derived input must cast cleanly end to end.
	input := domain.CastingInput{
		Method:   domain.MethodTime,
		Draws:    draws,
		CastAt:   at,
		Category: domain.CategoryGeneral,
	}
	if _, err := svc.Cast(input); err != nil {
		t.Fatalf("Expected time-derived draws to cast, got %v", err)
	}
}
