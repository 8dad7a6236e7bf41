package model

// Category groups applications in the catalog.
type Category string

const (
	CategoryIdentity     Category = "Identity & Access Management"
	CategoryHR           Category = "HR & People"
	CategoryFinance      Category = "Finance & Operations"
	CategoryDevelopment  Category = "Development & DevOps"
	CategoryProductivity Category = "Productivity & Collaboration"
	CategorySales        Category = "Sales & Marketing"
	CategoryAnalytics    Category = "Analytics & Customer Success"
	CategorySecurity     Category = "Security & Compliance"
	CategorySupport      Category = "Support & Service"
	CategoryAsset        Category = "Asset & Resource Management"
	// CategoryCSV holds applications the user typed in that are not in the catalog.
	CategoryCSV Category = "CSV Uploads"
)

// App is a SaaS product an organization can select.
type App struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Category     Category `json:"category" yaml:"category"`
	APISupported bool     `json:"apiSupported" yaml:"api_supported"`
}

// Connection returns the connection status implied by the app's API support.
func (a App) Connection() Connection {
	if a.APISupported {
		return ConnectionAPI
	}
	return ConnectionCSV
}
