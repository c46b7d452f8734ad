package controllers

import (
	"log/slog"
	"net/http"

	"github.com/Drifter-Supremo/calorie-hound/models"
	"github.com/Drifter-Supremo/calorie-hound/storage"
	"github.com/Drifter-Supremo/calorie-hound/utils"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	settings *storage.SettingsStore
	store    *storage.Store
}

func NewSettingsController(settings *storage.SettingsStore, store *storage.Store) *SettingsController {
	return &SettingsController{settings: settings, store: store}
}

func (sc *SettingsController) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, sc.settings.Load())
}

func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.DailyCalorieTarget != nil && *patch.DailyCalorieTarget <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dailyCalorieTarget must be positive"})
		return
	}

	saved := sc.settings.Save(patch)
	if saved == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (sc *SettingsController) SetupStatus(c *gin.Context) {
	payload := gin.H{
		"setupComplete": sc.settings.IsSetupComplete(),
		"lastSync":      sc.store.LastSync(),
	}
	if info, err := sc.store.StorageInfo(); err != nil {
		slog.Error("storage stat failed", "error", err)
	} else {
		payload["storage"] = info
	}
	c.JSON(http.StatusOK, payload)
}

// CalculateTarget computes a daily calorie target from a body profile
// without persisting anything; the client saves it via UpdateSettings if
// the user accepts the suggestion.
func (sc *SettingsController) CalculateTarget(c *gin.Context) {
	var in utils.TargetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bmr := utils.CalculateBMR(in)
	c.JSON(http.StatusOK, gin.H{
		"bmr":         bmr,
		"tdee":        utils.CalculateTDEE(bmr, in.ActivityLevel),
		"dailyTarget": utils.CalculateDailyTarget(in),
	})
}
