package controllers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/Drifter-Supremo/calorie-hound/services"

	"github.com/gin-gonic/gin"
)

type AnalysisController struct {
	analysis *services.AnalysisService
}

func NewAnalysisController(analysis *services.AnalysisService) *AnalysisController {
	return &AnalysisController{analysis: analysis}
}

type AnalyzeRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// Analyze accepts a base64 image (bare or as a data URI), runs the
// analysis pipeline and always answers 200 with a result — degraded with
// an error field when the pipeline failed. The only non-200 outcomes are
// a malformed request and the busy guard.
func (ac *AnalysisController) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	data, err := decodeImagePayload(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid base64 image"})
		return
	}

	result, err := ac.analysis.Analyze(data)
	if err != nil {
		if errors.Is(err, services.ErrAnalysisInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ac *AnalysisController) TestConnection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"connected": ac.analysis.TestConnection()})
}

// decodeImagePayload strips an optional "data:<mime>;base64," prefix and
// decodes the remainder.
func decodeImagePayload(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		parts := strings.SplitN(payload, ",", 2)
		if len(parts) != 2 {
			return nil, errors.New("invalid data URI")
		}
		payload = parts[1]
	}
	return base64.StdEncoding.DecodeString(payload)
}
