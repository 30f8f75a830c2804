package liuyao

import (
	"time"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// dayAnchor is the reference day for day-pillar arithmetic: 1949-10-01 was a
// 甲子 day, stem and branch both at index zero.
var dayAnchor = time.Date(1949, time.October, 1, 0, 0, 0, 0, time.UTC)

// yearAnchor is the reference for year-pillar arithmetic: 1984 was a 甲子 year.
const yearAnchor = 1984

// springDays lists the civil day in February on which the year boundary
// (立春) falls, with exact entries for 1950 through 2040. Outside that window
// the boundary is taken as February 4th, a documented precision limit.
var springDays = map[int]int{
	1950: 4, 1951: 4, 1952: 5, 1953: 4, 1954: 4, 1955: 4,
	1956: 5, 1957: 4, 1958: 4, 1959: 4, 1960: 5, 1961: 4,
	1962: 4, 1963: 4, 1964: 5, 1965: 4, 1966: 4, 1967: 4,
	1968: 5, 1969: 4, 1970: 4, 1971: 4, 1972: 5, 1973: 4,
	1974: 4, 1975: 4, 1976: 5, 1977: 4, 1978: 4, 1979: 4,
	1980: 5, 1981: 4, 1982: 4, 1983: 4, 1984: 4, 1985: 4,
	1986: 4, 1987: 4, 1988: 4, 1989: 4, 1990: 4, 1991: 4,
	1992: 4, 1993: 4, 1994: 4, 1995: 4, 1996: 4, 1997: 4,
	1998: 4, 1999: 4, 2000: 4, 2001: 4, 2002: 4, 2003: 4,
	2004: 4, 2005: 4, 2006: 4, 2007: 4, 2008: 4, 2009: 4,
	2010: 4, 2011: 4, 2012: 4, 2013: 4, 2014: 4, 2015: 4,
	2016: 4, 2017: 3, 2018: 4, 2019: 4, 2020: 4, 2021: 3,
	2022: 4, 2023: 4, 2024: 4, 2025: 3, 2026: 4, 2027: 4,
	2028: 4, 2029: 3, 2030: 4, 2031: 4, 2032: 4, 2033: 3,
	2034: 4, 2035: 4, 2036: 4, 2037: 3, 2038: 4, 2039: 4,
	2040: 4,
}

// monthBoundary marks the civil date on which a solar month opens and the
// branch that month carries. February's day is replaced by the exact 立春
// date when one is tabled.
type monthBoundary struct {
	month  time.Month
	day    int
	branch domain.Branch
}

// monthBoundaries in civil-year order. The cycle opens at 立春 with 寅;
// the first days of January still belong to the previous 子 month.
var monthBoundaries = [12]monthBoundary{
	{time.January, 6, domain.BranchChou},
	{time.February, 4, domain.BranchYin},
	{time.March, 6, domain.BranchMao},
	{time.April, 5, domain.BranchChen},
	{time.May, 6, domain.BranchSi},
	{time.June, 6, domain.BranchWu},
	{time.July, 7, domain.BranchWei},
	{time.August, 8, domain.BranchShen},
	{time.September, 8, domain.BranchYou},
	{time.October, 8, domain.BranchXu},
	{time.November, 7, domain.BranchHai},
	{time.December, 7, domain.BranchZi},
}

// tigerBases gives the stem of the first (寅) month per year-stem group
// (五虎遁: 甲己起丙, 乙庚起戊, 丙辛起庚, 丁壬起壬, 戊癸起甲).
var tigerBases = [5]domain.Stem{
	domain.StemBing, domain.StemWu, domain.StemGeng, domain.StemRen, domain.StemJia,
}

// ratBases gives the stem of the 子 hour per day-stem group
// (五鼠遁: 甲己起甲, 乙庚起丙, 丙辛起戊, 丁壬起庚, 戊癸起壬).
var ratBases = [5]domain.Stem{
	domain.StemJia, domain.StemBing, domain.StemWu, domain.StemGeng, domain.StemRen,
}

// resolveCalendar converts a timestamp into the four pillars and the day's
// void branches. Pillars are resolved in the timestamp's own location; the
// calculation never fails.
func resolveCalendar(at time.Time) domain.CalendarTime {
	day := dayPillarAt(at)
	year := yearPillarAt(at)
	month := monthPillarAt(at, year.Stem)
	hour := hourPillarAt(at, day.Stem)

	return domain.CalendarTime{
		Moment: at,
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Voids:  voidBranches(day),
	}
}

// dayPillarAt computes the day pillar. Hours at or past 23:00 belong to the
// following day.
func dayPillarAt(at time.Time) domain.Pillar {
	effective := at
	if at.Hour() >= 23 {
		effective = at.AddDate(0, 0, 1)
	}
	days := civilDaysSinceAnchor(effective)
	return domain.Pillar{
		Stem:   domain.StemAt(days),
		Branch: domain.BranchAt(days),
	}
}

// civilDaysSinceAnchor counts whole calendar days from the anchor date to
// the date of t, in t's own location.
func civilDaysSinceAnchor(t time.Time) int {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(midnight.Sub(dayAnchor).Hours() / 24)
}

// yearPillarAt computes the year pillar, switching years at 立春 rather than
// January 1st.
func yearPillarAt(at time.Time) domain.Pillar {
	year := at.Year()
	if beforeSpring(at) {
		year--
	}
	idx := year - yearAnchor
	return domain.Pillar{
		Stem:   domain.StemAt(idx),
		Branch: domain.BranchAt(idx),
	}
}

// springDay returns the February day of 立春 for a year.
func springDay(year int) int {
	if d, ok := springDays[year]; ok {
		return d
	}
	return 4
}

// beforeSpring reports whether the date falls before its own year's 立春.
func beforeSpring(at time.Time) bool {
	_, m, d := at.Date()
	if m < time.February {
		return true
	}
	if m > time.February {
		return false
	}
	return d < springDay(at.Year())
}

// monthPillarAt computes the month pillar: the branch comes from the latest
// solar-term boundary at or before the date, the stem from the 五虎遁 of the
// (already 立春-adjusted) year stem.
func monthPillarAt(at time.Time, yearStem domain.Stem) domain.Pillar {
	_, m, d := at.Date()

	// Branch of the latest boundary at or before the date. Before the
	// January boundary the date still sits in the previous 子 month.
	branch := domain.BranchZi
	for _, b := range monthBoundaries {
		day := b.day
		if b.month == time.February {
			day = springDay(at.Year())
		}
		if m > b.month || (m == b.month && d >= day) {
			branch = b.branch
		}
	}

	base := tigerBases[yearStem%5]
	offset := int(branch) - int(domain.BranchYin)
	if offset < 0 {
		offset += 12
	}
	return domain.Pillar{
		Stem:   domain.StemAt(int(base) + offset),
		Branch: branch,
	}
}

// hourPillarAt computes the hour pillar from the two-hour buckets: 23:00 and
// 00:00 both map to 子. The stem follows the 五鼠遁 of the (already rolled)
// day stem.
func hourPillarAt(at time.Time, dayStem domain.Stem) domain.Pillar {
	branch := domain.BranchAt((at.Hour() + 1) / 2)
	base := ratBases[dayStem%5]
	return domain.Pillar{
		Stem:   domain.StemAt(int(base) + int(branch)),
		Branch: branch,
	}
}

// voidBranches derives the day's void pair (旬空): the two branches left
// uncovered by the day's ten-day stem cycle. The pair is always cyclically
// adjacent and depends on the day pillar alone.
func voidBranches(day domain.Pillar) [2]domain.Branch {
	start := int(day.Branch) - int(day.Stem)
	return [2]domain.Branch{
		domain.BranchAt(start + 10),
		domain.BranchAt(start + 11),
	}
}
