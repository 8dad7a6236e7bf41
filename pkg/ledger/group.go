package ledger

import "github.com/AnTengye/saasledger/model"

// GroupByApplication folds flat records into one GroupedContract per AppID,
// in first-seen application order.
//
// The first record of an application supplies its name, category and
// contract-level fields; later rows that disagree are ignored. A service line
// is added only if the group has no line with the same ServiceID yet, and
// records without a ServiceID contribute no line at all.
func GroupByApplication(records []model.ContractRecord) []model.GroupedContract {
	groups := make([]model.GroupedContract, 0)
	index := make(map[string]int)
	seen := make(map[string]map[string]struct{})

	for _, r := range records {
		i, ok := index[r.AppID]
		if !ok {
			fields := r.ContractFields
			if fields.Connection == "" {
				fields.Connection = model.DefaultConnection
			}
			groups = append(groups, model.GroupedContract{
				AppID:          r.AppID,
				AppName:        r.AppName,
				Category:       r.Category,
				Services:       []model.ServiceLine{},
				ContractFields: fields,
			})
			i = len(groups) - 1
			index[r.AppID] = i
			seen[r.AppID] = make(map[string]struct{})
		}

		if r.ServiceID == "" {
			continue
		}
		if _, dup := seen[r.AppID][r.ServiceID]; dup {
			continue
		}
		seen[r.AppID][r.ServiceID] = struct{}{}
		groups[i].Services = append(groups[i].Services, serviceWithDefaults(r.ServiceLine))
	}
	return groups
}

func serviceWithDefaults(s model.ServiceLine) model.ServiceLine {
	if s.ServiceName == "" {
		s.ServiceName = model.DefaultServiceName
	}
	if s.LicenseType == "" {
		s.LicenseType = model.DefaultLicenseType
	}
	if s.PricingModel == "" {
		s.PricingModel = model.DefaultPricingModel
	}
	return s
}

// FlattenGroups is the inverse of GroupByApplication.
func FlattenGroups(groups []model.GroupedContract) []model.ContractRecord {
	records := make([]model.ContractRecord, 0, len(groups))
	for _, g := range groups {
		records = append(records, g.Flatten()...)
	}
	return records
}
