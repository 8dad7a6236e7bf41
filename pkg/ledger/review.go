package ledger

import "time"

// reviewLeadMonths is how far ahead of a renewal the access review falls.
const reviewLeadMonths = 2

// ReviewDate returns the review checkpoint two calendar months before the
// renewal, as MM/dd/yyyy. When the earlier month is shorter the day clamps to
// its last day. Empty or unparsable renewals give "".
func ReviewDate(renewalDate string) string {
	renewal, ok := ParseDate(renewalDate)
	if !ok {
		return ""
	}
	return FormatDate(addMonthsClamped(renewal, -reviewLeadMonths))
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
