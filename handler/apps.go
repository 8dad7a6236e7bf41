package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnTengye/saasledger/service"
)

type AppHandler struct {
	catalog *service.Catalog
}

func NewAppHandler(catalog *service.Catalog) *AppHandler {
	return &AppHandler{catalog: catalog}
}

// List searches the catalog by the q parameter.
func (h *AppHandler) List(c *gin.Context) {
	apps := h.catalog.Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"apps": apps, "count": len(apps)})
}

type parseRequest struct {
	Text string `json:"text" binding:"required"`
}

// Parse resolves a pasted list of application names without selecting them.
func (h *AppHandler) Parse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Field 'text' is required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"apps": h.catalog.ParseAppList(req.Text)})
}
