package ledger

import (
	"fmt"
	"math"
	"time"
)

// Urgency is the severity band of a renewal countdown.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyModerate Urgency = "moderate"
)

// countdownHorizonMonths is the furthest ahead a renewal is surfaced.
const countdownHorizonMonths = 6

// Countdown is the badge shown for an upcoming renewal.
type Countdown struct {
	Label       string  `json:"label"`
	Urgency     Urgency `json:"urgency"`
	DaysUntil   int     `json:"daysUntil"`
	MonthsUntil int     `json:"monthsUntil"`
}

// Text renders the badge text, e.g. "Renewal in 1 month, 10 days".
func (c Countdown) Text() string {
	return "Renewal " + c.Label
}

// ClassifyRenewal decides whether a renewal date gets a countdown badge
// relative to now. It reports false when the date is unparsable, already
// past, or more than six months away. Days are counted in calendar days in
// now's location.
func ClassifyRenewal(renewalDate string, now time.Time) (Countdown, bool) {
	renewal, ok := ParseDate(renewalDate)
	if !ok {
		return Countdown{}, false
	}
	today := calendarDay(now, now.Location())
	due := calendarDay(renewal, now.Location())

	days := daysBetween(today, due)
	months := monthsBetween(today, due)
	if months > countdownHorizonMonths || days < 0 {
		return Countdown{}, false
	}

	c := Countdown{DaysUntil: days, MonthsUntil: months}
	switch {
	case days == 0:
		c.Label, c.Urgency = "today", UrgencyCritical
	case days == 1:
		c.Label, c.Urgency = "tomorrow", UrgencyCritical
	case months == 0:
		c.Label, c.Urgency = fmt.Sprintf("in %d days", days), UrgencyHigh
	default:
		c.Urgency = UrgencyModerate
		unit := "months"
		if months == 1 {
			unit = "month"
		}
		c.Label = fmt.Sprintf("in %d %s", months, unit)
		if rem := days % 30; rem > 0 {
			c.Label += fmt.Sprintf(", %d days", rem)
		}
	}
	return c, true
}

// calendarDay drops the clock part of t, keeping its year, month and day in loc.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// daysBetween counts whole calendar days from a to b. Both must be midnights
// in the same location; rounding absorbs daylight saving shifts.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// monthsBetween counts whole months from a to b. A month is full once b's day
// of month reaches a's, with two end-of-month allowances: a renewal late in
// February is compared as if it fell on the 30th, and a renewal on the last
// day of the following month always counts as one month (Jan 31 to Feb 28).
func monthsBetween(a, b time.Time) int {
	sign := b.Compare(a)
	diff := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if diff < 0 {
		diff = -diff
	}
	if sign == 0 || diff < 1 {
		return 0
	}

	y, m, d := b.Date()
	if m == time.February && d > 27 {
		d = 30
	}
	// time.Date normalizes overflowing days, so Feb 30 lands in early March.
	rolled := time.Date(y, m, d, 0, 0, 0, 0, b.Location())
	shifted := time.Date(rolled.Year(), rolled.Month()-time.Month(sign*diff), rolled.Day(), 0, 0, 0, 0, b.Location())

	notFull := shifted.Compare(a) == -sign
	if sign > 0 && diff == 1 && isLastDayOfMonth(b) {
		notFull = false
	}
	if notFull {
		diff--
	}
	return sign * diff
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Day() == 1
}
