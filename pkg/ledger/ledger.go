package ledger

import (
	"time"

	"github.com/AnTengye/saasledger/model"
)

// Entry is one row of the rendered ledger.
type Entry struct {
	model.GroupedContract
	Countdown *Countdown `json:"countdown,omitempty"`
}

// Ledger is the display-ready view of a company's contracts.
type Ledger struct {
	Policy  Policy  `json:"sort"`
	Total   string  `json:"total"`
	Entries []Entry `json:"entries"`
}

// Build groups records, orders the groups by policy and attaches a renewal
// countdown evaluated against now.
func Build(records []model.ContractRecord, policy Policy, now time.Time) Ledger {
	groups := SortGroups(GroupByApplication(records), policy)
	entries := make([]Entry, 0, len(groups))
	for _, g := range groups {
		e := Entry{GroupedContract: g}
		if c, ok := ClassifyRenewal(g.RenewalDate, now); ok {
			e.Countdown = &c
		}
		entries = append(entries, e)
	}
	return Ledger{
		Policy:  policy,
		Total:   TotalContractValue(groups),
		Entries: entries,
	}
}
