package model

// LicenseType is the billing cadence of a service line.
type LicenseType string

const (
	LicenseMonthly   LicenseType = "Monthly"
	LicenseAnnual    LicenseType = "Annual"
	LicenseQuarterly LicenseType = "Quarterly"
	LicenseOther     LicenseType = "Other"
)

// LicenseTypes lists every license type in display order.
var LicenseTypes = []LicenseType{LicenseMonthly, LicenseAnnual, LicenseQuarterly, LicenseOther}

// Valid reports whether t is one of the known license types.
func (t LicenseType) Valid() bool {
	for _, known := range LicenseTypes {
		if t == known {
			return true
		}
	}
	return false
}

// PricingModel describes how a service line is priced.
type PricingModel string

const (
	PricingFlat     PricingModel = "Flat rated"
	PricingTiered   PricingModel = "Tiered"
	PricingProRated PricingModel = "Pro-rated"
	PricingFeature  PricingModel = "Feature based"
)

// PricingModels lists every pricing model in display order.
var PricingModels = []PricingModel{PricingFlat, PricingTiered, PricingProRated, PricingFeature}

// Valid reports whether m is one of the known pricing models.
func (m PricingModel) Valid() bool {
	for _, known := range PricingModels {
		if m == known {
			return true
		}
	}
	return false
}

// Connection says whether an application syncs automatically or needs manual uploads.
type Connection string

const (
	ConnectionAPI Connection = "API Supported"
	ConnectionCSV Connection = "CSV Upload/API coming soon"
)

// Defaults applied when a record omits a value.
const (
	DefaultServiceName  = "Default Service"
	DefaultLicenseType  = LicenseAnnual
	DefaultPricingModel = PricingFlat
	DefaultConnection   = ConnectionCSV
)

// ServiceLine is one priced line item within a contract.
// Money and count fields keep the text the user entered; "" means unknown.
type ServiceLine struct {
	ServiceID        string       `json:"serviceId"`
	ServiceName      string       `json:"serviceName"`
	LicenseType      LicenseType  `json:"licenseType"`
	PricingModel     PricingModel `json:"pricingModel"`
	CostPerUser      string       `json:"costPerUser"`
	NumberOfLicenses string       `json:"numberOfLicenses"`
	TotalCost        string       `json:"totalCost"`
}

// ContractFields are the contract-level values shared by every row of an application.
type ContractFields struct {
	OverallTotalValue string     `json:"overallTotalValue"`
	RenewalDate       string     `json:"renewalDate"`
	ReviewDate        string     `json:"reviewDate"`
	ContractFileURL   string     `json:"contractFileUrl,omitempty"`
	Notes             string     `json:"notes"`
	ContactDetails    string     `json:"contactDetails"`
	Connection        Connection `json:"stitchflowConnection"`
}

// ContractRecord is one flat row joining an application to one service line
// plus the contract-level fields. Rows of the same application share AppID.
type ContractRecord struct {
	AppID    string `json:"appId"`
	AppName  string `json:"appName"`
	Category string `json:"category"`
	ServiceLine
	ContractFields
}

// GroupedContract is the per-application view of one or more contract records.
type GroupedContract struct {
	AppID    string        `json:"appId"`
	AppName  string        `json:"appName"`
	Category string        `json:"category"`
	Services []ServiceLine `json:"services"`
	ContractFields
}

// Flatten expands a grouped contract back into one record per service line.
// A group without services yields a single record with an empty service.
func (g GroupedContract) Flatten() []ContractRecord {
	if len(g.Services) == 0 {
		return []ContractRecord{{AppID: g.AppID, AppName: g.AppName, Category: g.Category, ContractFields: g.ContractFields}}
	}
	records := make([]ContractRecord, 0, len(g.Services))
	for _, s := range g.Services {
		records = append(records, ContractRecord{
			AppID:          g.AppID,
			AppName:        g.AppName,
			Category:       g.Category,
			ServiceLine:    s,
			ContractFields: g.ContractFields,
		})
	}
	return records
}

// DefaultContractFields returns the contract fields of a freshly selected application.
func DefaultContractFields() ContractFields {
	return ContractFields{Connection: DefaultConnection}
}
