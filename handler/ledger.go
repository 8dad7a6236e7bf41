package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AnTengye/saasledger/middleware"
	"github.com/AnTengye/saasledger/pkg/ledger"
	"github.com/AnTengye/saasledger/pkg/metrics"
	"github.com/AnTengye/saasledger/service"
)

// LedgerHandler renders the grouped, sorted and classified contract view.
type LedgerHandler struct {
	store       *service.RecordStore
	metrics     *metrics.Metrics
	defaultSort ledger.Policy
	now         func() time.Time
}

func NewLedgerHandler(store *service.RecordStore, m *metrics.Metrics, defaultSort ledger.Policy) *LedgerHandler {
	return &LedgerHandler{
		store:       store,
		metrics:     m,
		defaultSort: defaultSort,
		now:         time.Now,
	}
}

// Get builds the ledger. A missing sort uses the configured default; an
// unknown one keeps the records in selection order.
func (h *LedgerHandler) Get(c *gin.Context) {
	policy := h.defaultSort
	if raw, ok := c.GetQuery("sort"); ok && raw != "" {
		policy, _ = ledger.ParsePolicy(raw)
	}

	view := ledger.Build(h.store.Records(middleware.GetCompany(c)), policy, h.now())
	if h.metrics != nil {
		h.metrics.ObserveLedger(view)
	}
	c.JSON(http.StatusOK, view)
}

// Policies lists the sort keys the ledger accepts.
func (h *LedgerHandler) Policies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"policies": ledger.Policies(),
		"default":  h.defaultSort,
	})
}
