package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnTengye/saasledger/middleware"
	"github.com/AnTengye/saasledger/model"
	"github.com/AnTengye/saasledger/service"
)

// ContractHandler edits the contract of one selected application.
type ContractHandler struct {
	store *service.RecordStore
}

func NewContractHandler(store *service.RecordStore) *ContractHandler {
	return &ContractHandler{store: store}
}

// Update applies contract-level fields to every row of the application.
func (h *ContractHandler) Update(c *gin.Context) {
	var update service.ContractUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	fields, err := h.store.UpdateContract(middleware.GetCompany(c), c.Param("appId"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fields)
}

// AddService appends a default service line.
func (h *ContractHandler) AddService(c *gin.Context) {
	line, err := h.store.AddService(middleware.GetCompany(c), c.Param("appId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

// UpdateService replaces a service line. The id in the path wins over the body.
func (h *ContractHandler) UpdateService(c *gin.Context) {
	var line model.ServiceLine
	if err := c.ShouldBindJSON(&line); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	line.ServiceID = c.Param("serviceId")

	updated, err := h.store.UpdateService(middleware.GetCompany(c), c.Param("appId"), line)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RemoveService deletes a service line.
func (h *ContractHandler) RemoveService(c *gin.Context) {
	if err := h.store.RemoveService(middleware.GetCompany(c), c.Param("appId"), c.Param("serviceId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service removed"})
}
