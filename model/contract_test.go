package model

import (
	"encoding/json"
	"testing"
)

func TestEnumValidity(t *testing.T) {
	for _, lt := range LicenseTypes {
		if !lt.Valid() {
			t.Errorf("Expected %q to be valid", lt)
		}
	}
	if LicenseType("Weekly").Valid() {
		t.Error("Expected Weekly to be invalid")
	}

	for _, pm := range PricingModels {
		if !pm.Valid() {
			t.Errorf("Expected %q to be valid", pm)
		}
	}
	if PricingModel("flat rated").Valid() {
		t.Error("Expected lowercase pricing model to be invalid")
	}
}

func TestFlatten(t *testing.T) {
	g := GroupedContract{
		AppID:   "slack",
		AppName: "Slack",
		Services: []ServiceLine{
			{ServiceID: "a", TotalCost: "10.00"},
			{ServiceID: "b", TotalCost: "20.00"},
		},
		ContractFields: ContractFields{RenewalDate: "2027-01-01"},
	}

	records := g.Flatten()
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	for _, r := range records {
		if r.AppID != "slack" || r.RenewalDate != "2027-01-01" {
			t.Errorf("Expected contract fields on every row, got %+v", r)
		}
	}
	if records[1].ServiceID != "b" {
		t.Errorf("Expected service order preserved, got %s", records[1].ServiceID)
	}

	empty := GroupedContract{AppID: "zoom"}.Flatten()
	if len(empty) != 1 || empty[0].ServiceID != "" {
		t.Errorf("Expected a single service-less record, got %+v", empty)
	}
}

func TestRecordJSONIsFlat(t *testing.T) {
	r := ContractRecord{
		AppID:          "slack",
		ServiceLine:    ServiceLine{ServiceID: "a", CostPerUser: "8"},
		ContractFields: ContractFields{RenewalDate: "2027-01-01", Connection: ConnectionAPI},
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	for _, key := range []string{"appId", "serviceId", "costPerUser", "renewalDate", "stitchflowConnection"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected top-level key %q in %s", key, data)
		}
	}
}

func TestAppConnection(t *testing.T) {
	if (App{APISupported: true}).Connection() != ConnectionAPI {
		t.Error("Expected API Supported")
	}
	if (App{}).Connection() != ConnectionCSV {
		t.Error("Expected CSV Upload/API coming soon")
	}
}
