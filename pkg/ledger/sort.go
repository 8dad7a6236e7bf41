package ledger

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/AnTengye/saasledger/model"
)

// Policy selects the ordering of grouped contracts.
type Policy string

const (
	SortRenewalPriority Policy = "renewal-priority"
	SortNameAsc         Policy = "name-asc"
	SortNameDesc        Policy = "name-desc"
	SortReviewDate      Policy = "review-date"
	SortTotalValue      Policy = "total-value"

	DefaultPolicy = SortRenewalPriority
)

// Policies lists the known sort policies, default first.
func Policies() []Policy {
	return []Policy{SortRenewalPriority, SortNameAsc, SortNameDesc, SortReviewDate, SortTotalValue}
}

// ParsePolicy reports whether text names a known policy.
func ParsePolicy(text string) (Policy, bool) {
	p := Policy(strings.TrimSpace(text))
	if slices.Contains(Policies(), p) {
		return p, true
	}
	return p, false
}

// SortGroups returns a sorted copy of groups; the input is left untouched.
// Equal keys keep their input order. Unknown policies return the copy in
// input order.
func SortGroups(groups []model.GroupedContract, policy Policy) []model.GroupedContract {
	sorted := slices.Clone(groups)
	if sorted == nil {
		sorted = []model.GroupedContract{}
	}

	switch policy {
	case SortRenewalPriority:
		sortByDate(sorted, func(g model.GroupedContract) string { return g.RenewalDate })
	case SortReviewDate:
		sortByDate(sorted, func(g model.GroupedContract) string { return g.ReviewDate })
	case SortNameAsc:
		sortByName(sorted, false)
	case SortNameDesc:
		sortByName(sorted, true)
	case SortTotalValue:
		slices.SortStableFunc(sorted, func(a, b model.GroupedContract) int {
			va, vb := ParseMoney(a.OverallTotalValue), ParseMoney(b.OverallTotalValue)
			switch {
			case va > vb:
				return -1
			case va < vb:
				return 1
			}
			return 0
		})
	}
	return sorted
}

// sortByDate orders ascending by the date key, undated groups last.
func sortByDate(groups []model.GroupedContract, key func(model.GroupedContract) string) {
	type keyed struct {
		group model.GroupedContract
		at    time.Time
		ok    bool
	}
	decorated := make([]keyed, len(groups))
	for i, g := range groups {
		at, ok := ParseDate(key(g))
		decorated[i] = keyed{g, at, ok}
	}
	slices.SortStableFunc(decorated, func(a, b keyed) int {
		switch {
		case !a.ok && !b.ok:
			return 0
		case !a.ok:
			return 1
		case !b.ok:
			return -1
		}
		return a.at.Compare(b.at)
	})
	for i, d := range decorated {
		groups[i] = d.group
	}
}

// sortByName orders case-insensitively using locale collation.
func sortByName(groups []model.GroupedContract, descending bool) {
	// Collators keep scratch buffers, so each call gets its own.
	c := collate.New(language.English)
	slices.SortStableFunc(groups, func(a, b model.GroupedContract) int {
		r := c.CompareString(strings.ToLower(a.AppName), strings.ToLower(b.AppName))
		if descending {
			return -r
		}
		return r
	})
}
