package liuyao

import (
	"math/rand"
	"time"

	"github.com/yaolab/liuyao-api/internal/domain"
)

// simulateCoinDraws reproduces the three-coin method with an explicit seed:
// each line sums three coins, heads counting 3 and tails 2, which lands in
// 6..9. Lines are produced bottom to top. The same seed always yields the
// same six draws, so a simulated casting can be replayed.
func simulateCoinDraws(seed int64) [6]domain.DrawValue {
	rng := rand.New(rand.NewSource(seed))

	var draws [6]domain.DrawValue
	for i := range draws {
		sum := 0
		for c := 0; c < 3; c++ {
			sum += 2 + rng.Intn(2)
		}
		draws[i] = domain.DrawValue(sum)
	}
	return draws
}

// timeDraws derives six draws from the cast moment alone, after the
// plum-blossom convention: the year branch number, the month number and the
// day of month sum to the upper trigram, adding the hour number gives the
// lower, and the full sum modulo six marks the single moving line. All other
// lines come out static.
func timeDraws(at time.Time) [6]domain.DrawValue {
	cal := resolveCalendar(at)

	yearNo := int(cal.Year.Branch) + 1
	monthNo := monthOrdinal(cal.Month.Branch)
	dayNo := at.Day()
	hourNo := int(cal.Hour.Branch) + 1

	upper := trigramByNumber(yearNo + monthNo + dayNo)
	lower := trigramByNumber(yearNo + monthNo + dayNo + hourNo)
	moving := (yearNo + monthNo + dayNo + hourNo) % 6
	if moving == 0 {
		moving = 6
	}

	var draws [6]domain.DrawValue
	for pos := 1; pos <= 3; pos++ {
		draws[pos-1] = youngDraw(lower.LinePolarity(pos))
		draws[pos+2] = youngDraw(upper.LinePolarity(pos))
	}
	if draws[moving-1] == domain.DrawYoungYang {
		draws[moving-1] = domain.DrawOldYang
	} else {
		draws[moving-1] = domain.DrawOldYin
	}
	return draws
}

// trigramByNumber maps a plum-blossom count to a trigram by its primal
// number, 1 乾 through 8 坤, a zero remainder reading as eight.
func trigramByNumber(n int) domain.Trigram {
	r := n % 8
	if r == 0 {
		r = 8
	}
	return domain.TrigramAt(r - 1)
}

// monthOrdinal numbers the month branches in month order, 寅 first.
func monthOrdinal(b domain.Branch) int {
	return (int(b)-int(domain.BranchYin)+12)%12 + 1
}

func youngDraw(p domain.Polarity) domain.DrawValue {
	if p == domain.Yang {
		return domain.DrawYoungYang
	}
	return domain.DrawYoungYin
}
