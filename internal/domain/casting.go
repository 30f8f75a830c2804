package domain

import (
	"fmt"
	"time"
)

// CastingMethod identifies how the six line values were obtained.
type CastingMethod string

const (
	MethodCoin   CastingMethod = "coin"   // simulated three-coin throws
	MethodTime   CastingMethod = "time"   // lines derived from the timestamp
	MethodManual CastingMethod = "manual" // caller supplies the six values
)

// Valid reports whether the method is one of the defined casting methods.
func (m CastingMethod) Valid() bool {
	switch m {
	case MethodCoin, MethodTime, MethodManual:
		return true
	default:
		return false
	}
}

// Category is the question domain a casting concerns. It drives focus-element
// selection and advice wording.
type Category string

const (
	CategoryCareer   Category = "career"
	CategoryWealth   Category = "wealth"
	CategoryMarriage Category = "marriage"
	CategoryHealth   Category = "health"
	CategoryStudy    Category = "study"
	CategoryChildren Category = "children"
	CategoryFamily   Category = "family"
	CategoryTravel   Category = "travel"
	CategoryLawsuit  Category = "lawsuit"
	CategoryLostItem Category = "lost_item"
	CategoryGeneral  Category = "general"
)

// Categories lists all defined question categories.
var Categories = []Category{
	CategoryCareer, CategoryWealth, CategoryMarriage, CategoryHealth,
	CategoryStudy, CategoryChildren, CategoryFamily, CategoryTravel,
	CategoryLawsuit, CategoryLostItem, CategoryGeneral,
}

// Valid reports whether the category is one of the defined categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

var categoryChinese = map[Category]string{
	CategoryCareer:   "事业",
	CategoryWealth:   "求财",
	CategoryMarriage: "婚姻",
	CategoryHealth:   "健康",
	CategoryStudy:    "学业",
	CategoryChildren: "子女",
	CategoryFamily:   "家宅",
	CategoryTravel:   "出行",
	CategoryLawsuit:  "官司",
	CategoryLostItem: "失物",
	CategoryGeneral:  "运势",
}

// ChineseName returns the traditional two-character name of the category.
func (c Category) ChineseName() string {
	return categoryChinese[c]
}

// Seeker states who the question is asked for, where it changes rule
// selection. Marriage questions pick the spouse star by it.
type Seeker string

const (
	SeekerUnspecified Seeker = ""
	SeekerMale        Seeker = "male"
	SeekerFemale      Seeker = "female"
)

// Valid reports whether the seeker flag is recognized.
func (s Seeker) Valid() bool {
	switch s {
	case SeekerUnspecified, SeekerMale, SeekerFemale:
		return true
	default:
		return false
	}
}

// CastingInput is the complete input of one divination: the six raw line
// values bottom to top, the moment, and the question framing. Inputs are
// validated as a whole before any calculation runs.
type CastingInput struct {
	Method   CastingMethod `json:"method"`
	Draws    [6]DrawValue  `json:"draws"` // bottom line first
	CastAt   time.Time     `json:"cast_at"`
	Category Category      `json:"category"`
	Subtype  string        `json:"subtype,omitempty"`
	Seeker   Seeker        `json:"seeker,omitempty"`
}

// Lines expands the raw draw values into line states, bottom to top.
// Draws must already be validated.
func (in CastingInput) Lines() [6]LineState {
	var lines [6]LineState
	for i, d := range in.Draws {
		lines[i] = LineState{Polarity: d.Polarity(), Active: d.Active(), Draw: d}
	}
	return lines
}

// ActiveCount returns how many of the six lines are moving lines.
func (in CastingInput) ActiveCount() int {
	n := 0
	for _, d := range in.Draws {
		if d.Active() {
			n++
		}
	}
	return n
}

// Problems collects every validation failure as a human-readable message.
// An empty slice means the input is ready for calculation. Validation never
// runs a partial pipeline: callers must reject inputs with problems outright.
func (in CastingInput) Problems() []string {
	var problems []string
	if !in.Method.Valid() {
		problems = append(problems, fmt.Sprintf("unknown casting method %q", string(in.Method)))
	}
	for i, d := range in.Draws {
		if !d.Valid() {
			problems = append(problems,
				fmt.Sprintf("line %d has draw value %d, want 6, 7, 8 or 9", i+1, int(d)))
		}
	}
	if in.CastAt.IsZero() {
		problems = append(problems, "cast time must be set")
	}
	if !in.Category.Valid() {
		problems = append(problems, fmt.Sprintf("unknown question category %q", string(in.Category)))
	}
	if !in.Seeker.Valid() {
		problems = append(problems, fmt.Sprintf("unknown seeker %q", string(in.Seeker)))
	}
	return problems
}

// Validate reports the first validation problem as an error, or nil when the
// input is well formed.
func (in CastingInput) Validate() error {
	problems := in.Problems()
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValidation, problems[0])
}
