package ledger

import "github.com/AnTengye/saasledger/model"

// ServiceTotal multiplies the cost per user by the license count and formats
// the product with two decimals. It returns "" when either operand is not a
// number, so an unknown total is never shown as zero.
func ServiceTotal(costPerUser, numberOfLicenses string) string {
	cost, ok := parseNumber(costPerUser)
	if !ok {
		return ""
	}
	licenses, ok := parseNumber(numberOfLicenses)
	if !ok {
		return ""
	}
	return formatAmount(cost * licenses)
}

// OverallTotal sums the total cost of every service whose total is a number.
// Services without a usable total are skipped; "" means none had one.
func OverallTotal(services []model.ServiceLine) string {
	var (
		sum   float64
		found bool
	)
	for _, s := range services {
		v, ok := parseNumber(s.TotalCost)
		if !ok {
			continue
		}
		sum += v
		found = true
	}
	if !found {
		return ""
	}
	return formatAmount(sum)
}

// Recalculate returns line with TotalCost derived from its cost and license
// count. When the product cannot be computed the stored total is kept.
func Recalculate(line model.ServiceLine) model.ServiceLine {
	if total := ServiceTotal(line.CostPerUser, line.NumberOfLicenses); total != "" {
		line.TotalCost = total
	}
	return line
}

// TotalContractValue adds up the overall value of every group, counting
// missing or malformed values as zero.
func TotalContractValue(groups []model.GroupedContract) string {
	var sum float64
	for _, g := range groups {
		sum += ParseMoney(g.OverallTotalValue)
	}
	return formatAmount(sum)
}
