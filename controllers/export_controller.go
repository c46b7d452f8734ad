package controllers

import (
	"errors"
	"net/http"

	"github.com/Drifter-Supremo/calorie-hound/models"
	"github.com/Drifter-Supremo/calorie-hound/storage"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	exporter *storage.Exporter
	store    *storage.Store
}

func NewExportController(exporter *storage.Exporter, store *storage.Store) *ExportController {
	return &ExportController{exporter: exporter, store: store}
}

func (ec *ExportController) Export(c *gin.Context) {
	c.JSON(http.StatusOK, ec.exporter.ExportSnapshot())
}

// Import replaces all stored data with the posted snapshot. The client is
// expected to have confirmed the overwrite with the user already.
func (ec *ExportController) Import(c *gin.Context) {
	var doc models.Snapshot
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data format"})
		return
	}

	result, err := ec.exporter.ImportSnapshot(doc)
	if err != nil {
		if errors.Is(err, storage.ErrBadFormat) {
			c.JSON(http.StatusBadRequest, result)
			return
		}
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ec *ExportController) ClearData(c *gin.Context) {
	if err := ec.store.ClearAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
