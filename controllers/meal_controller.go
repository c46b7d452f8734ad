package controllers

import (
	"net/http"

	"github.com/Drifter-Supremo/calorie-hound/models"
	"github.com/Drifter-Supremo/calorie-hound/storage"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	logs *storage.MealLogStore
}

func NewMealController(logs *storage.MealLogStore) *MealController {
	return &MealController{logs: logs}
}

type LogMealRequest struct {
	Description string `json:"description" binding:"required"`
	Calories    int    `json:"calories" binding:"required"`
	Confidence  string `json:"confidence"`
	Portions    string `json:"portions"`
}

// GetLog returns the day log for ?date=YYYY-MM-DD, defaulting to today.
// A date with no meals yields an empty log, not a 404.
func (mc *MealController) GetLog(c *gin.Context) {
	c.JSON(http.StatusOK, mc.logs.LoadByDate(c.Query("date")))
}

func (mc *MealController) LogMeal(c *gin.Context) {
	var body LogMealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Calories < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "calories must be at least 1"})
		return
	}
	confidence := body.Confidence
	if !models.ValidConfidence(confidence) {
		confidence = models.ConfidenceLow
	}

	meal := mc.logs.AddMeal(models.Meal{
		Description: body.Description,
		Calories:    body.Calories,
		Confidence:  confidence,
		Portions:    body.Portions,
	})
	if meal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save meal"})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (mc *MealController) UpdateMeal(c *gin.Context) {
	var patch models.MealPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.Calories != nil && *patch.Calories < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "calories must be at least 1"})
		return
	}

	meal := mc.logs.UpdateMeal(c.Param("id"), patch)
	if meal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (mc *MealController) DeleteMeal(c *gin.Context) {
	if !mc.logs.DeleteMeal(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
