package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnTengye/saasledger/middleware"
	"github.com/AnTengye/saasledger/model"
	"github.com/AnTengye/saasledger/pkg/ledger"
	"github.com/AnTengye/saasledger/pkg/logger"
	"github.com/AnTengye/saasledger/pkg/metrics"
	"github.com/AnTengye/saasledger/service"
)

const maxImportBytes = 8 << 20

type RecordHandler struct {
	store   *service.RecordStore
	metrics *metrics.Metrics
}

func NewRecordHandler(store *service.RecordStore, m *metrics.Metrics) *RecordHandler {
	return &RecordHandler{store: store, metrics: m}
}

// Import replaces the company's records with a JSON array in any supported
// record shape.
func (h *RecordHandler) Import(c *gin.Context) {
	company := middleware.GetCompany(c)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes+1))
	if err != nil {
		badRequest(c, "Failed to read request body")
		return
	}
	if len(body) > maxImportBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Import too large"})
		return
	}

	records, err := model.DecodeRecords(body)
	if errors.Is(err, model.ErrMissingAppID) {
		respondError(c, err)
		return
	}
	if err != nil {
		badRequest(c, "Body must be a JSON array of contract records")
		return
	}
	if records == nil {
		records = []model.ContractRecord{}
	}

	if err := h.store.Replace(company, records); err != nil {
		respondError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.SetSelected(h.store.Total())
	}

	logger.Info(c.Request.Context(), "records imported", "records", len(records))
	c.JSON(http.StatusOK, gin.H{
		"imported":     len(records),
		"applications": h.store.Count(company),
	})
}

// Export returns the company's records in canonical flat form, one per
// service line, grouped by application.
func (h *RecordHandler) Export(c *gin.Context) {
	records := h.store.Records(middleware.GetCompany(c))
	c.JSON(http.StatusOK, ledger.FlattenGroups(ledger.GroupByApplication(records)))
}
