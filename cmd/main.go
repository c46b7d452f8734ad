package main

import (
	"log"
	"log/slog"

	"github.com/Drifter-Supremo/calorie-hound/config"
	"github.com/Drifter-Supremo/calorie-hound/controllers"
	"github.com/Drifter-Supremo/calorie-hound/logging"
	"github.com/Drifter-Supremo/calorie-hound/routes"
	"github.com/Drifter-Supremo/calorie-hound/services"
	"github.com/Drifter-Supremo/calorie-hound/storage"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.Environment)

	store, err := storage.Open(cfg.DataPath)
	if err != nil {
		log.Fatalf("failed to open data store: %v", err)
	}
	defer func() { _ = store.Close() }()

	settingsStore := storage.NewSettingsStore(store)
	mealLogStore := storage.NewMealLogStore(store)
	exporter := storage.NewExporter(store, settingsStore, mealLogStore)

	gemini := services.NewGeminiService(cfg.GeminiEndpoint)
	images := services.NewImageService()
	analysis := services.NewAnalysisService(gemini, images, settingsStore, cfg.AnalysisTimeout)

	r := routes.SetupRouter(routes.Controllers{
		Settings: controllers.NewSettingsController(settingsStore, store),
		Meals:    controllers.NewMealController(mealLogStore),
		Analysis: controllers.NewAnalysisController(analysis),
		Export:   controllers.NewExportController(exporter, store),
		Progress: controllers.NewProgressController(mealLogStore, settingsStore),
	})

	slog.Info("listening", "addr", cfg.Addr, "data", cfg.DataPath)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
