package domain

import "time"

// Pillar is one stem-branch pair of the four-pillar calendar.
type Pillar struct {
	Stem   Stem   `json:"stem"`
	Branch Branch `json:"branch"`
}

// String returns the two-character pillar name, e.g. "甲子".
func (p Pillar) String() string {
	return p.Stem.String() + p.Branch.String()
}

// CalendarTime is the fully resolved divination moment: the four pillars and
// the two void branches (旬空) of the day's ten-day cycle.
type CalendarTime struct {
	Moment time.Time `json:"moment"`
	Year   Pillar    `json:"year"`
	Month  Pillar    `json:"month"`
	Day    Pillar    `json:"day"`
	Hour   Pillar    `json:"hour"`
	Voids  [2]Branch `json:"voids"`
}

// MonthElement returns the element of the month branch, the reference for
// seasonal strength grading.
func (c CalendarTime) MonthElement() Element {
	return c.Month.Branch.Element()
}

// DayElement returns the element of the day branch.
func (c CalendarTime) DayElement() Element {
	return c.Day.Branch.Element()
}

// IsVoid reports whether the branch falls in the day's void pair.
func (c CalendarTime) IsVoid(b Branch) bool {
	return c.Voids[0] == b || c.Voids[1] == b
}

// String renders the four pillars in traditional order.
func (c CalendarTime) String() string {
	return c.Year.String() + "年 " + c.Month.String() + "月 " +
		c.Day.String() + "日 " + c.Hour.String() + "时"
}
