package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AnTengye/saasledger/middleware"
	"github.com/AnTengye/saasledger/model"
	"github.com/AnTengye/saasledger/pkg/logger"
	"github.com/AnTengye/saasledger/pkg/metrics"
	"github.com/AnTengye/saasledger/service"
)

type SelectionHandler struct {
	store   *service.RecordStore
	catalog *service.Catalog
	metrics *metrics.Metrics
}

func NewSelectionHandler(store *service.RecordStore, catalog *service.Catalog, m *metrics.Metrics) *SelectionHandler {
	return &SelectionHandler{store: store, catalog: catalog, metrics: m}
}

// List returns the company's raw contract records.
func (h *SelectionHandler) List(c *gin.Context) {
	company := middleware.GetCompany(c)
	records := h.store.Records(company)
	if records == nil {
		records = []model.ContractRecord{}
	}
	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"count":   h.store.Count(company),
	})
}

type selectRequest struct {
	AppID string `json:"appId"`
	Names string `json:"names"`
}

// Select adds one catalog application by id, or every application named in a
// pasted list. Unknown names become custom applications.
func (h *SelectionHandler) Select(c *gin.Context) {
	company := middleware.GetCompany(c)

	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	switch {
	case strings.TrimSpace(req.AppID) != "":
		app, err := h.catalog.Lookup(strings.TrimSpace(req.AppID))
		if err != nil {
			respondError(c, err)
			return
		}
		added, err := h.store.SelectApp(company, app)
		if err != nil {
			respondError(c, err)
			return
		}
		h.observe()

		status := http.StatusOK
		if added {
			status = http.StatusCreated
			logger.Info(c.Request.Context(), "application selected", "app_id", app.ID)
		}
		c.JSON(status, gin.H{"app": app, "added": added})

	case strings.TrimSpace(req.Names) != "":
		apps := h.catalog.ParseAppList(req.Names)
		added, err := h.store.BulkSelect(company, apps)
		h.observe()
		if err != nil {
			respondError(c, err)
			return
		}
		logger.Info(c.Request.Context(), "applications bulk selected", "requested", len(apps), "added", added)
		c.JSON(http.StatusOK, gin.H{"apps": apps, "added": added})

	default:
		badRequest(c, "Either 'appId' or 'names' is required")
	}
}

// Remove deselects an application and drops all of its records.
func (h *SelectionHandler) Remove(c *gin.Context) {
	company := middleware.GetCompany(c)
	appID := c.Param("appId")

	if err := h.store.RemoveApp(company, appID); err != nil {
		respondError(c, err)
		return
	}
	h.observe()
	logger.Info(c.Request.Context(), "application removed", "app_id", appID)
	c.JSON(http.StatusOK, gin.H{"message": "Application removed"})
}

func (h *SelectionHandler) observe() {
	if h.metrics != nil {
		h.metrics.SetSelected(h.store.Total())
	}
}
