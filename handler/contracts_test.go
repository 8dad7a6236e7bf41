package handler

import (
	"net/http"
	"testing"

	"github.com/AnTengye/saasledger/model"
)

func selectSlack(t *testing.T, srv *testServer) string {
	t.Helper()
	expectStatus(t, srv.do("POST", "/api/selections", map[string]string{"appId": "slack"}), http.StatusCreated)
	return srv.store.Records("acme")[0].ServiceID
}

func TestContractHandlerUpdate(t *testing.T) {
	srv := newTestServer(t, 0)
	selectSlack(t, srv)

	w := srv.do("PUT", "/api/contracts/slack", map[string]string{
		"renewalDate": "2027-03-31",
		"notes":       "auto-renews",
	})
	expectStatus(t, w, http.StatusOK)

	fields := decode[model.ContractFields](t, w)
	if fields.RenewalDate != "03/31/2027" {
		t.Errorf("Expected normalized renewal date, got %q", fields.RenewalDate)
	}
	if fields.ReviewDate != "01/31/2027" {
		t.Errorf("Expected derived review date, got %q", fields.ReviewDate)
	}
	if fields.Notes != "auto-renews" {
		t.Errorf("Expected notes to be set, got %q", fields.Notes)
	}
}

func TestContractHandlerUpdateUnknownApp(t *testing.T) {
	srv := newTestServer(t, 0)

	w := srv.do("PUT", "/api/contracts/slack", map[string]string{"notes": "x"})
	expectStatus(t, w, http.StatusNotFound)
}

func TestContractHandlerServices(t *testing.T) {
	srv := newTestServer(t, 0)
	first := selectSlack(t, srv)

	w := srv.do("POST", "/api/contracts/slack/services", nil)
	expectStatus(t, w, http.StatusCreated)
	second := decode[model.ServiceLine](t, w)
	if second.ServiceID == "" || second.ServiceID == first {
		t.Fatalf("Expected a new service id, got %q", second.ServiceID)
	}

	w = srv.do("PUT", "/api/contracts/slack/services/"+first, map[string]string{
		"serviceName":      "Business+",
		"licenseType":      "Monthly",
		"pricingModel":     "Tiered",
		"costPerUser":      "12.50",
		"numberOfLicenses": "10",
	})
	expectStatus(t, w, http.StatusOK)
	line := decode[model.ServiceLine](t, w)
	if line.TotalCost != "125.00" {
		t.Errorf("Expected recalculated total 125.00, got %q", line.TotalCost)
	}

	records := srv.store.Records("acme")
	if len(records) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(records))
	}
	if records[0].OverallTotalValue != "125.00" {
		t.Errorf("Expected overall total 125.00, got %q", records[0].OverallTotalValue)
	}

	expectStatus(t, srv.do("DELETE", "/api/contracts/slack/services/"+second.ServiceID, nil), http.StatusOK)
	expectStatus(t, srv.do("DELETE", "/api/contracts/slack/services/"+second.ServiceID, nil), http.StatusNotFound)
	if n := len(srv.store.Records("acme")); n != 1 {
		t.Errorf("Expected 1 row after removal, got %d", n)
	}
}

func TestContractHandlerUpdateServiceUnknown(t *testing.T) {
	srv := newTestServer(t, 0)
	selectSlack(t, srv)

	w := srv.do("PUT", "/api/contracts/slack/services/missing", map[string]string{"costPerUser": "1"})
	expectStatus(t, w, http.StatusNotFound)

	w = srv.do("PUT", "/api/contracts/slack/services/missing", "{")
	expectStatus(t, w, http.StatusBadRequest)
}
