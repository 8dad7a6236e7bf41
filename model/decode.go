package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrMissingAppID reports a record that names no application.
var ErrMissingAppID = errors.New("record has no appId")

// looseValue keeps the text of a JSON string or number. Null, booleans, objects
// and arrays leave it unset.
type looseValue struct {
	text string
	set  bool
}

func (v *looseValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v.text, v.set = s, true
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			v.text, v.set = canonicalNumber(n), true
			return nil
		}
		// Objects, arrays and booleans carry no usable value for a record field.
		v.set = false
	}
	return nil
}

// canonicalNumber renders a JSON number without exponent notation.
func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}

// wireRecord lists both spellings a record field is known to arrive under.
type wireRecord struct {
	AppID        looseValue `json:"appId"`
	AppIDSnake   looseValue `json:"app_id"`
	AppName      looseValue `json:"appName"`
	AppNameSnake looseValue `json:"app_name"`
	Category     looseValue `json:"category"`

	ServiceID             looseValue `json:"serviceId"`
	ServiceIDSnake        looseValue `json:"service_id"`
	ServiceName           looseValue `json:"serviceName"`
	ServiceNameSnake      looseValue `json:"service_name"`
	LicenseType           looseValue `json:"licenseType"`
	LicenseTypeSnake      looseValue `json:"license_type"`
	PricingModel          looseValue `json:"pricingModel"`
	PricingModelSnake     looseValue `json:"pricing_model"`
	CostPerUser           looseValue `json:"costPerUser"`
	CostPerUserSnake      looseValue `json:"cost_per_user"`
	NumberOfLicenses      looseValue `json:"numberOfLicenses"`
	NumberOfLicensesSnake looseValue `json:"number_of_licenses"`
	TotalCost             looseValue `json:"totalCost"`
	TotalCostSnake        looseValue `json:"total_cost"`

	OverallTotalValue      looseValue `json:"overallTotalValue"`
	OverallTotalValueSnake looseValue `json:"overall_total_value"`
	RenewalDate            looseValue `json:"renewalDate"`
	RenewalDateSnake       looseValue `json:"renewal_date"`
	ReviewDate             looseValue `json:"reviewDate"`
	ReviewDateSnake        looseValue `json:"review_date"`
	ContractFileURL        looseValue `json:"contractFileUrl"`
	ContractFileURLSnake   looseValue `json:"contract_file_url"`
	Notes                  looseValue `json:"notes"`
	ContactDetails         looseValue `json:"contactDetails"`
	ContactDetailsSnake    looseValue `json:"contact_details"`
	Connection             looseValue `json:"stitchflowConnection"`
	ConnectionSnake        looseValue `json:"stitchflow_connection"`
}

func pick(values ...looseValue) string {
	for _, v := range values {
		if v.set && v.text != "" {
			return v.text
		}
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// UnmarshalJSON converts any known external record shape into the canonical
// ContractRecord. Missing or malformed fields become defaults, never errors.
func (r *ContractRecord) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode contract record: %w", err)
	}

	licenseType := LicenseType(pick(w.LicenseType, w.LicenseTypeSnake))
	if !licenseType.Valid() {
		licenseType = DefaultLicenseType
	}
	pricingModel := PricingModel(pick(w.PricingModel, w.PricingModelSnake))
	if !pricingModel.Valid() {
		pricingModel = DefaultPricingModel
	}
	connection := Connection(pick(w.Connection, w.ConnectionSnake))
	if connection != ConnectionAPI && connection != ConnectionCSV {
		connection = DefaultConnection
	}

	*r = ContractRecord{
		AppID:    pick(w.AppID, w.AppIDSnake),
		AppName:  pick(w.AppName, w.AppNameSnake),
		Category: pick(w.Category),
		ServiceLine: ServiceLine{
			ServiceID:        pick(w.ServiceID, w.ServiceIDSnake),
			ServiceName:      orDefault(pick(w.ServiceName, w.ServiceNameSnake), DefaultServiceName),
			LicenseType:      licenseType,
			PricingModel:     pricingModel,
			CostPerUser:      pick(w.CostPerUser, w.CostPerUserSnake),
			NumberOfLicenses: pick(w.NumberOfLicenses, w.NumberOfLicensesSnake),
			TotalCost:        pick(w.TotalCost, w.TotalCostSnake),
		},
		ContractFields: ContractFields{
			OverallTotalValue: pick(w.OverallTotalValue, w.OverallTotalValueSnake),
			RenewalDate:       pick(w.RenewalDate, w.RenewalDateSnake),
			ReviewDate:        pick(w.ReviewDate, w.ReviewDateSnake),
			ContractFileURL:   pick(w.ContractFileURL, w.ContractFileURLSnake),
			Notes:             pick(w.Notes),
			ContactDetails:    pick(w.ContactDetails, w.ContactDetailsSnake),
			Connection:        connection,
		},
	}
	return nil
}

// DecodeRecords decodes a JSON array of records in any supported shape.
// Every record must carry an application id.
func DecodeRecords(data []byte) ([]ContractRecord, error) {
	var records []ContractRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if err := ValidateRecords(records); err != nil {
		return nil, err
	}
	return records, nil
}

// ValidateRecords checks that every record names its application. The error
// carries the index of the first offending record.
func ValidateRecords(records []ContractRecord) error {
	for i, r := range records {
		if r.AppID == "" {
			return fmt.Errorf("record %d: %w", i, ErrMissingAppID)
		}
	}
	return nil
}
