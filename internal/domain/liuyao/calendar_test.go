package liuyao

import (
	"testing"
	"time"

	"github.com/yaolab/liuyao-api/internal/domain"
)

func TestDayPillarAt(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name   string
		at     time.Time
		pillar string
	}{
		{
			name:   "anchor day is 甲子",
			at:     time.Date(1949, time.October, 1, 8, 0, 0, 0, time.UTC),
			pillar: "甲子",
		},
		{
			name:   "millennium day is 戊午",
			at:     time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC),
			pillar: "戊午",
		},
		{
			name:   "mid 2024 day",
			at:     time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC),
			pillar: "庚戌",
		},
		{
			name:   "23:00 rolls into the next day",
			at:     time.Date(2024, time.June, 15, 23, 30, 0, 0, time.UTC),
			pillar: "辛亥",
		},
		{
			name:   "22:59 still belongs to its own day",
			at:     time.Date(2024, time.June, 15, 22, 59, 0, 0, time.UTC),
			pillar: "庚戌",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dayPillarAt(tc.at).String(); got != tc.pillar {
				t.Errorf("Expected day pillar %s, got %s", tc.pillar, got)
			}
		})
	}
}

func TestYearPillarAt(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name   string
		at     time.Time
		pillar string
	}{
		{
			name:   "anchor year is 甲子",
			at:     time.Date(1984, time.June, 1, 0, 0, 0, 0, time.UTC),
			pillar: "甲子",
		},
		{
			name:   "mid 2024 is 甲辰",
			at:     time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			pillar: "甲辰",
		},
		{
			name:   "early February 2024 still belongs to 癸卯",
			at:     time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC),
			pillar: "癸卯",
		},
		{
			name:   "立春 2024 opens 甲辰",
			at:     time.Date(2024, time.February, 4, 0, 0, 0, 0, time.UTC),
			pillar: "甲辰",
		},
		{
			name:   "2025 switches on February 3rd",
			at:     time.Date(2025, time.February, 2, 0, 0, 0, 0, time.UTC),
			pillar: "甲辰",
		},
		{
			name:   "February 3rd 2025 opens 乙巳",
			at:     time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
			pillar: "乙巳",
		},
		{
			name:   "1960 boundary sits on February 5th",
			at:     time.Date(1960, time.February, 4, 0, 0, 0, 0, time.UTC),
			pillar: "己亥",
		},
		{
			name:   "February 5th 1960 opens 庚子",
			at:     time.Date(1960, time.February, 5, 0, 0, 0, 0, time.UTC),
			pillar: "庚子",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := yearPillarAt(tc.at).String(); got != tc.pillar {
				t.Errorf("Expected year pillar %s, got %s", tc.pillar, got)
			}
		})
	}
}

func TestMonthPillarAt(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name   string
		at     time.Time
		pillar string
	}{
		{
			name:   "June 2024 is 庚午",
			at:     time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			pillar: "庚午",
		},
		{
			name:   "early January 2024 still sits in the 子 month",
			at:     time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
			pillar: "甲子",
		},
		{
			name:   "early February 2024 sits in the 丑 month of 癸卯",
			at:     time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC),
			pillar: "乙丑",
		},
		{
			name:   "立春 2024 opens the 丙寅 month",
			at:     time.Date(2024, time.February, 4, 0, 0, 0, 0, time.UTC),
			pillar: "丙寅",
		},
		{
			name:   "December 2024 is 丙子",
			at:     time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC),
			pillar: "丙子",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			year := yearPillarAt(tc.at)
			if got := monthPillarAt(tc.at, year.Stem).String(); got != tc.pillar {
				t.Errorf("Expected month pillar %s, got %s", tc.pillar, got)
			}
		})
	}
}

func TestHourPillarBranches(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// The two-hour buckets, with both 23:00 and 00:00 reading as 子.
	expected := map[int]domain.Branch{
		0: domain.BranchZi, 1: domain.BranchChou, 2: domain.BranchChou,
		3: domain.BranchYin, 5: domain.BranchMao, 7: domain.BranchChen,
		9: domain.BranchSi, 11: domain.BranchWu, 12: domain.BranchWu,
		13: domain.BranchWei, 15: domain.BranchShen, 17: domain.BranchYou,
		19: domain.BranchXu, 21: domain.BranchHai, 22: domain.BranchHai,
		23: domain.BranchZi,
	}

	for hour, branch := range expected {
		at := time.Date(2024, time.June, 15, hour, 15, 0, 0, time.UTC)
		if got := hourPillarAt(at, domain.StemJia).Branch; got != branch {
			t.Errorf("Expected hour %d branch %s, got %s", hour, branch, got)
		}
	}
}

func TestResolveCalendarKnownMoment(t *testing.T) {
	t.Parallel() // Enable parallel execution

	at := time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)
	cal := resolveCalendar(at)

	if got := cal.Year.String(); got != "甲辰" {
		t.Errorf("Expected year 甲辰, got %s", got)
	}
	if got := cal.Month.String(); got != "庚午" {
		t.Errorf("Expected month 庚午, got %s", got)
	}
	if got := cal.Day.String(); got != "庚戌" {
		t.Errorf("Expected day 庚戌, got %s", got)
	}
	if got := cal.Hour.String(); got != "辛巳" {
		t.Errorf("Expected hour 辛巳, got %s", got)
	}
	if cal.Voids != [2]domain.Branch{domain.BranchYin, domain.BranchMao} {
		t.Errorf("Expected voids 寅卯, got %v", cal.Voids)
	}
	if !cal.Moment.Equal(at) {
		t.Errorf("Expected moment preserved, got %s", cal.Moment)
	}
}

func TestResolveCalendarLateHourRollsDayPillar(t *testing.T) {
	t.Parallel() // Enable parallel execution

	cal := resolveCalendar(time.Date(2024, time.June, 15, 23, 30, 0, 0, time.UTC))

	if got := cal.Day.String(); got != "辛亥" {
		t.Errorf("Expected rolled day 辛亥, got %s", got)
	}
	// The hour stem follows the rolled day stem (丙辛起戊).
	if got := cal.Hour.String(); got != "戊子" {
		t.Errorf("Expected hour 戊子, got %s", got)
	}
}

func TestVoidBranches(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name  string
		day   domain.Pillar
		voids [2]domain.Branch
	}{
		{
			name:  "甲子 day leaves 戌亥 void",
			day:   domain.Pillar{Stem: domain.StemJia, Branch: domain.BranchZi},
			voids: [2]domain.Branch{domain.BranchXu, domain.BranchHai},
		},
		{
			name:  "庚戌 day leaves 寅卯 void",
			day:   domain.Pillar{Stem: domain.StemGeng, Branch: domain.BranchXu},
			voids: [2]domain.Branch{domain.BranchYin, domain.BranchMao},
		},
		{
			name:  "甲戌 day leaves 申酉 void",
			day:   domain.Pillar{Stem: domain.StemJia, Branch: domain.BranchXu},
			voids: [2]domain.Branch{domain.BranchShen, domain.BranchYou},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := voidBranches(tc.day); got != tc.voids {
				t.Errorf("Expected voids %v, got %v", tc.voids, got)
			}
		})
	}
}

func TestVoidBranchesAdjacentForAllSixtyDays(t *testing.T) {
	t.Parallel() // Enable parallel execution

	for i := 0; i < 60; i++ {
		day := domain.Pillar{Stem: domain.StemAt(i), Branch: domain.BranchAt(i)}
		voids := voidBranches(day)

		if voids[0].Next() != voids[1] {
			t.Errorf("Expected adjacent void pair for %s, got %s and %s", day, voids[0], voids[1])
		}
		if voids[0] == day.Branch || voids[1] == day.Branch {
			t.Errorf("Expected day branch %s outside its own void pair %v", day.Branch, voids)
		}
	}
}
