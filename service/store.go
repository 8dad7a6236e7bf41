package service

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/AnTengye/saasledger/config"
	"github.com/AnTengye/saasledger/model"
	"github.com/AnTengye/saasledger/pkg/ledger"
)

var (
	ErrAppNotFound     = errors.New("application not selected")
	ErrServiceNotFound = errors.New("service not found")
	ErrStoreFull       = errors.New("application limit reached")
)

// ContractUpdate is a partial update of contract-level fields. Nil fields are left alone.
type ContractUpdate struct {
	OverallTotalValue *string           `json:"overallTotalValue"`
	RenewalDate       *string           `json:"renewalDate"`
	ReviewDate        *string           `json:"reviewDate"`
	ContractFileURL   *string           `json:"contractFileUrl"`
	Notes             *string           `json:"notes"`
	ContactDetails    *string           `json:"contactDetails"`
	Connection        *model.Connection `json:"stitchflowConnection"`
}

// RecordStore holds the contract records of every company in memory.
// It is the state container the ledger pipeline reads from; callers get
// copies, never the stored slices.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string][]model.ContractRecord
	maxApps int // Maximum selected applications per company, 0 = unlimited
}

// NewRecordStore creates an empty store.
func NewRecordStore(cfg *config.StoreConfig) *RecordStore {
	maxApps := cfg.MaxApps
	if maxApps < 0 {
		maxApps = 0
	}
	slog.Info("record store initialized", "max_apps", maxApps)
	return &RecordStore{
		records: make(map[string][]model.ContractRecord),
		maxApps: maxApps,
	}
}

// NewDefaultService returns the empty service a new application starts with.
func NewDefaultService() model.ServiceLine {
	return model.ServiceLine{
		ServiceID:    uuid.New().String(),
		LicenseType:  model.DefaultLicenseType,
		PricingModel: model.DefaultPricingModel,
	}
}

// Records returns a snapshot of a company's records in insertion order.
func (s *RecordStore) Records(company string) []model.ContractRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records[company])
}

// Count returns the number of distinct applications a company has selected.
func (s *RecordStore) Count(company string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(appIDs(s.records[company]))
}

// Total returns the number of selected applications across all companies.
func (s *RecordStore) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, records := range s.records {
		n += len(appIDs(records))
	}
	return n
}

// Replace swaps a company's records for an imported set. Every record must
// name its application.
func (s *RecordStore) Replace(company string, records []model.ContractRecord) error {
	if err := model.ValidateRecords(records); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxApps > 0 && len(appIDs(records)) > s.maxApps {
		return fmt.Errorf("import %d applications: %w", len(appIDs(records)), ErrStoreFull)
	}
	s.records[company] = slices.Clone(records)
	return nil
}

// SelectApp adds an application with one default service. It reports false
// when the application was already selected.
func (s *RecordStore) SelectApp(company string, app model.App) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked(company, app)
}

// BulkSelect selects every application not yet selected and returns how many were added.
func (s *RecordStore) BulkSelect(company string, apps []model.App) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, app := range apps {
		ok, err := s.selectLocked(company, app)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

// Must be called with lock held
func (s *RecordStore) selectLocked(company string, app model.App) (bool, error) {
	current := s.records[company]
	if slices.ContainsFunc(current, func(r model.ContractRecord) bool { return r.AppID == app.ID }) {
		return false, nil
	}
	if s.maxApps > 0 && len(appIDs(current)) >= s.maxApps {
		return false, fmt.Errorf("select %s: %w", app.ID, ErrStoreFull)
	}

	fields := model.DefaultContractFields()
	fields.Connection = app.Connection()
	s.records[company] = append(current, model.ContractRecord{
		AppID:          app.ID,
		AppName:        app.Name,
		Category:       string(app.Category),
		ServiceLine:    NewDefaultService(),
		ContractFields: fields,
	})
	return true, nil
}

// RemoveApp drops every record of an application.
func (s *RecordStore) RemoveApp(company, appID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.records[company])
	s.records[company] = slices.DeleteFunc(s.records[company], func(r model.ContractRecord) bool {
		return r.AppID == appID
	})
	if len(s.records[company]) == before {
		return fmt.Errorf("remove %s: %w", appID, ErrAppNotFound)
	}
	return nil
}

// UpdateContract applies contract-level changes to every row of an
// application. Setting a renewal date also moves the review date to two
// months before it, unless the same update sets the review date explicitly.
func (s *RecordStore) UpdateContract(company, appID string, update ContractUpdate) (model.ContractFields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.rowsLocked(company, appID)
	if len(rows) == 0 {
		return model.ContractFields{}, fmt.Errorf("update %s: %w", appID, ErrAppNotFound)
	}

	fields := s.records[company][rows[0]].ContractFields
	if update.OverallTotalValue != nil {
		fields.OverallTotalValue = *update.OverallTotalValue
	}
	if update.RenewalDate != nil {
		fields.RenewalDate = normalizeDate(*update.RenewalDate)
		if fields.RenewalDate != "" && update.ReviewDate == nil {
			fields.ReviewDate = ledger.ReviewDate(fields.RenewalDate)
		}
	}
	if update.ReviewDate != nil {
		fields.ReviewDate = normalizeDate(*update.ReviewDate)
	}
	if update.ContractFileURL != nil {
		fields.ContractFileURL = *update.ContractFileURL
	}
	if update.Notes != nil {
		fields.Notes = *update.Notes
	}
	if update.ContactDetails != nil {
		fields.ContactDetails = *update.ContactDetails
	}
	if update.Connection != nil {
		fields.Connection = *update.Connection
	}

	for _, i := range rows {
		s.records[company][i].ContractFields = fields
	}
	return fields, nil
}

// AddService appends a default service to an application.
func (s *RecordStore) AddService(company, appID string) (model.ServiceLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.rowsLocked(company, appID)
	if len(rows) == 0 {
		return model.ServiceLine{}, fmt.Errorf("add service to %s: %w", appID, ErrAppNotFound)
	}

	line := NewDefaultService()
	last := rows[len(rows)-1]
	template := s.records[company][last]

	// A row without a service is a placeholder and gets filled instead.
	if template.ServiceID == "" {
		s.records[company][last].ServiceLine = line
		return line, nil
	}
	template.ServiceLine = line
	s.records[company] = slices.Insert(s.records[company], last+1, template)
	return line, nil
}

// UpdateService replaces a service line, recomputes its total and the
// application's overall total.
func (s *RecordStore) UpdateService(company, appID string, line model.ServiceLine) (model.ServiceLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.rowsLocked(company, appID)
	if len(rows) == 0 {
		return model.ServiceLine{}, fmt.Errorf("update service in %s: %w", appID, ErrAppNotFound)
	}
	if line.ServiceID == "" {
		return model.ServiceLine{}, fmt.Errorf("update service without id: %w", ErrServiceNotFound)
	}

	if !line.LicenseType.Valid() {
		line.LicenseType = model.DefaultLicenseType
	}
	if !line.PricingModel.Valid() {
		line.PricingModel = model.DefaultPricingModel
	}
	line = ledger.Recalculate(line)
	found := false
	for _, i := range rows {
		if s.records[company][i].ServiceID == line.ServiceID {
			s.records[company][i].ServiceLine = line
			found = true
		}
	}
	if !found {
		return model.ServiceLine{}, fmt.Errorf("update service %s: %w", line.ServiceID, ErrServiceNotFound)
	}

	s.refreshOverallLocked(company, appID)
	return line, nil
}

// RemoveService deletes a service line. Removing the last one leaves a
// service-less row so the application stays selected.
func (s *RecordStore) RemoveService(company, appID, serviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.rowsLocked(company, appID)
	if len(rows) == 0 {
		return fmt.Errorf("remove service from %s: %w", appID, ErrAppNotFound)
	}

	var matches []int
	for _, i := range rows {
		if s.records[company][i].ServiceID == serviceID {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return fmt.Errorf("remove service %s: %w", serviceID, ErrServiceNotFound)
	}

	if len(matches) == len(rows) {
		keep := matches[0]
		s.records[company][keep].ServiceLine = model.ServiceLine{}
		matches = matches[1:]
	}
	for j := len(matches) - 1; j >= 0; j-- {
		s.records[company] = slices.Delete(s.records[company], matches[j], matches[j]+1)
	}

	s.refreshOverallLocked(company, appID)
	return nil
}

// Must be called with lock held
func (s *RecordStore) rowsLocked(company, appID string) []int {
	var rows []int
	for i, r := range s.records[company] {
		if r.AppID == appID {
			rows = append(rows, i)
		}
	}
	return rows
}

// refreshOverallLocked recomputes the overall value from the services, the
// way the contract form does after any service edit.
// Must be called with lock held
func (s *RecordStore) refreshOverallLocked(company, appID string) {
	rows := s.rowsLocked(company, appID)
	lines := make([]model.ServiceLine, 0, len(rows))
	for _, i := range rows {
		if s.records[company][i].ServiceID != "" {
			lines = append(lines, s.records[company][i].ServiceLine)
		}
	}
	total := ledger.OverallTotal(lines)
	for _, i := range rows {
		s.records[company][i].OverallTotalValue = total
	}
}

func normalizeDate(text string) string {
	if t, ok := ledger.ParseDate(text); ok {
		return ledger.FormatDate(t)
	}
	return ""
}

func appIDs(records []model.ContractRecord) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, r := range records {
		ids[r.AppID] = struct{}{}
	}
	return ids
}
