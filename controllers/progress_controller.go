package controllers

import (
	"net/http"

	"github.com/Drifter-Supremo/calorie-hound/storage"
	"github.com/Drifter-Supremo/calorie-hound/utils"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	logs     *storage.MealLogStore
	settings *storage.SettingsStore
}

func NewProgressController(logs *storage.MealLogStore, settings *storage.SettingsStore) *ProgressController {
	return &ProgressController{logs: logs, settings: settings}
}

// GetProgress rolls today's consumption, the weekly average and the
// recent history into one payload for the dashboard view.
func (pc *ProgressController) GetProgress(c *gin.Context) {
	today := pc.logs.LoadByDate("")
	target := pc.settings.Load().DailyCalorieTarget

	c.JSON(http.StatusOK, gin.H{
		"date":          today.Date,
		"today":         today,
		"progress":      utils.GetCalorieProgress(today.TotalCalories, target),
		"weeklyAverage": pc.logs.WeeklyAverage(),
		"recentLogs":    pc.logs.RecentLogs(7),
	})
}
