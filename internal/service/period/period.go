// Package period maps reporting period tokens to concrete query shapes.
//
// Two filter schemes coexist: bale queries take an inclusive UTC date window
// while expense queries take a month/quarter field filter against the
// denormalized period stored on each record. Both are resolved here from the
// same token set so report composition cannot drift between the two.
package period

import (
	"time"

	"github.com/baletrack/bizpulse/internal/domain/models"
)

// Recognized period tokens. Unrecognized tokens degrade to all-history
// rather than erroring.
const (
	TokenAll           = "all"
	TokenMonth         = "month"
	TokenThisMonth     = "thisMonth"
	TokenLastMonth     = "lastMonth"
	TokenQuarter       = "quarter"
	TokenThisQuarter   = "thisQuarter"
	TokenLastQuarter   = "lastQuarter"
	TokenYear          = "year"
	TokenThisYear      = "thisYear"
	TokenCustomMonth   = "customMonth"
	TokenCustomQuarter = "customQuarter"
	TokenMonthly       = "monthly"
	TokenQuarterly     = "quarterly"
)

// Query carries the raw period parameters taken from a request.
type Query struct {
	Period  string
	Year    int
	Month   int
	Quarter int
}

// ResolveFilter maps a period query to the expense field-filter scheme.
// Incomplete custom tokens and unknown tokens resolve to the zero filter
// (entire history).
func ResolveFilter(q Query, now time.Time) models.PeriodFilter {
	now = now.UTC()
	year := now.Year()
	month := int(now.Month())
	quarter := (month-1)/3 + 1

	switch q.Period {
	case TokenMonth, TokenThisMonth, TokenMonthly:
		return models.PeriodFilter{Year: year, Month: month}
	case TokenLastMonth:
		if month == 1 {
			return models.PeriodFilter{Year: year - 1, Month: 12}
		}
		return models.PeriodFilter{Year: year, Month: month - 1}
	case TokenQuarter, TokenThisQuarter, TokenQuarterly:
		return models.PeriodFilter{Year: year, Quarter: quarter}
	case TokenLastQuarter:
		if quarter == 1 {
			return models.PeriodFilter{Year: year - 1, Quarter: 4}
		}
		return models.PeriodFilter{Year: year, Quarter: quarter - 1}
	case TokenYear, TokenThisYear:
		return models.PeriodFilter{Year: year}
	case TokenCustomMonth:
		if q.Year > 0 && q.Month >= 1 && q.Month <= 12 {
			return models.PeriodFilter{Year: q.Year, Month: q.Month}
		}
		return models.PeriodFilter{}
	case TokenCustomQuarter:
		if q.Year > 0 && q.Quarter >= 1 && q.Quarter <= 4 {
			return models.PeriodFilter{Year: q.Year, Quarter: q.Quarter}
		}
		return models.PeriodFilter{}
	default:
		return models.PeriodFilter{}
	}
}

// ResolveRange maps a period token to the inclusive UTC date window used for
// bale queries. "all" and unknown tokens span epoch through the end of the
// current month.
func ResolveRange(token string, now time.Time) models.ReportWindow {
	now = now.UTC()

	switch token {
	case TokenMonth, TokenThisMonth, TokenMonthly:
		return monthWindow(now.Year(), now.Month())
	case TokenLastMonth:
		return monthWindow(now.Year(), now.Month()-1)
	case TokenQuarter, TokenThisQuarter, TokenQuarterly:
		return quarterWindow(now.Year(), currentQuarter(now))
	case TokenLastQuarter:
		q := currentQuarter(now)
		if q == 1 {
			return quarterWindow(now.Year()-1, 4)
		}
		return quarterWindow(now.Year(), q-1)
	case TokenYear, TokenThisYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return models.ReportWindow{StartDate: start, EndDate: endOf(start.AddDate(1, 0, 0))}
	default:
		end := monthWindow(now.Year(), now.Month()).EndDate
		return models.ReportWindow{StartDate: time.Unix(0, 0).UTC(), EndDate: end}
	}
}

// Label renders a token suitable for report headers and filenames.
func Label(token string) string {
	switch token {
	case "":
		return TokenAll
	case TokenMonth, TokenThisMonth:
		return TokenMonthly
	case TokenQuarter, TokenThisQuarter:
		return TokenQuarterly
	default:
		return token
	}
}

func currentQuarter(now time.Time) int {
	return (int(now.Month())-1)/3 + 1
}

// monthWindow tolerates out-of-range months; time.Date normalizes them,
// which is what makes the January rollover fall out naturally.
func monthWindow(year int, month time.Month) models.ReportWindow {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return models.ReportWindow{StartDate: start, EndDate: endOf(start.AddDate(0, 1, 0))}
}

func quarterWindow(year, quarter int) models.ReportWindow {
	start := time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	return models.ReportWindow{StartDate: start, EndDate: endOf(start.AddDate(0, 3, 0))}
}

func endOf(nextStart time.Time) time.Time {
	return nextStart.Add(-time.Nanosecond)
}
