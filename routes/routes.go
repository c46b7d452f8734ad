package routes

import (
	"net/http"

	"github.com/Drifter-Supremo/calorie-hound/controllers"
	"github.com/Drifter-Supremo/calorie-hound/middlewares"

	"github.com/gin-gonic/gin"
)

// Controllers bundles the injected handler sets the router wires up.
type Controllers struct {
	Settings *controllers.SettingsController
	Meals    *controllers.MealController
	Analysis *controllers.AnalysisController
	Export   *controllers.ExportController
	Progress *controllers.ProgressController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	settings := r.Group("/settings")
	{
		settings.GET("", ctrl.Settings.GetSettings)
		settings.PUT("", ctrl.Settings.UpdateSettings)
		settings.GET("/status", ctrl.Settings.SetupStatus)
		settings.POST("/target", ctrl.Settings.CalculateTarget)
	}

	meals := r.Group("/meals")
	{
		meals.GET("", ctrl.Meals.GetLog)
		meals.POST("", ctrl.Meals.LogMeal)
		meals.PATCH("/:id", ctrl.Meals.UpdateMeal)
		meals.DELETE("/:id", ctrl.Meals.DeleteMeal)
	}

	r.GET("/progress", ctrl.Progress.GetProgress)

	analyze := r.Group("/analyze")
	{
		analyze.POST("", ctrl.Analysis.Analyze)
		analyze.POST("/test", ctrl.Analysis.TestConnection)
	}

	r.GET("/export", ctrl.Export.Export)
	r.POST("/import", ctrl.Export.Import)
	r.DELETE("/data", ctrl.Export.ClearData)

	return r
}
