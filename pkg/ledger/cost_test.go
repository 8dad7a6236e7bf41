package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnTengye/saasledger/model"
)

func TestServiceTotal(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		licenses string
		want     string
	}{
		{"simple", "10", "3", "30.00"},
		{"decimal cost", "12.5", "4", "50.00"},
		{"rounds to cents", "0.333", "3", "1.00"},
		{"currency symbols", "$1,000", "2 seats", "2000.00"},
		{"zero licenses", "15", "0", "0.00"},
		{"missing cost", "", "3", ""},
		{"missing licenses", "10", "", ""},
		{"non numeric cost", "abc", "3", ""},
		{"non numeric licenses", "10", "many", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ServiceTotal(tt.cost, tt.licenses))
		})
	}
}

func services(totals ...string) []model.ServiceLine {
	lines := make([]model.ServiceLine, len(totals))
	for i, total := range totals {
		lines[i] = model.ServiceLine{TotalCost: total}
	}
	return lines
}

func TestOverallTotal(t *testing.T) {
	assert.Equal(t, "", OverallTotal(nil))
	assert.Equal(t, "", OverallTotal(services()))
	assert.Equal(t, "", OverallTotal(services("", "n/a")))
	assert.Equal(t, "15.00", OverallTotal(services("10.00", "", "abc", "5.00")))
	assert.Equal(t, "0.00", OverallTotal(services("0")))
	assert.Equal(t, "0.30", OverallTotal(services("0.1", "0.2")))
}

func TestRecalculate(t *testing.T) {
	line := Recalculate(model.ServiceLine{CostPerUser: "8", NumberOfLicenses: "25", TotalCost: "1"})
	assert.Equal(t, "200.00", line.TotalCost)

	kept := Recalculate(model.ServiceLine{CostPerUser: "", NumberOfLicenses: "25", TotalCost: "99.00"})
	assert.Equal(t, "99.00", kept.TotalCost, "an uncomputable total must not be zeroed")
}

func TestTotalContractValue(t *testing.T) {
	groups := []model.GroupedContract{
		{ContractFields: model.ContractFields{OverallTotalValue: "100.50"}},
		{ContractFields: model.ContractFields{OverallTotalValue: ""}},
		{ContractFields: model.ContractFields{OverallTotalValue: "junk"}},
		{ContractFields: model.ContractFields{OverallTotalValue: "49.50"}},
	}
	assert.Equal(t, "150.00", TotalContractValue(groups))
	assert.Equal(t, "0.00", TotalContractValue(nil))
}
