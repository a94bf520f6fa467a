package main

import (
	"log"
	"net/http"

	"grub-core/internal/auth"
	"grub-core/internal/config"
	"grub-core/internal/database"
	"grub-core/internal/exportimport"
	"grub-core/internal/food"
	"grub-core/internal/mealentry"
	"grub-core/internal/middleware"
	"grub-core/internal/provider"
	"grub-core/internal/recipe"
	"grub-core/internal/summary"
	"grub-core/internal/sync"
	"grub-core/internal/target"
	"grub-core/internal/tombstone"
	"grub-core/internal/weight"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize repositories. tombstone.Repository comes first: recipe
	// and mealentry repositories emit tombstones on delete and take it as
	// a constructor dependency.
	tombstoneRepo := tombstone.NewRepository(db)
	foodRepo := food.NewRepository(db)
	recipeRepo := recipe.NewRepository(db, foodRepo, tombstoneRepo)
	mealRepo := mealentry.NewRepository(db, foodRepo, tombstoneRepo)
	targetRepo := target.NewRepository(db)
	weightRepo := weight.NewRepository(db)

	// External food catalog: Open Food Facts behind the pluggable
	// FoodLookupProvider interface, combined with local search/cache by
	// the orchestrator.
	lookupProvider := provider.NewOpenFoodFacts()
	orchestrator := provider.NewOrchestrator(foodRepo, lookupProvider)

	// Sync engine ties every repository together for delta extraction and
	// LWW merge; summary and exportimport both build on top of it.
	syncEngine := sync.NewEngine(foodRepo, mealRepo, recipeRepo, targetRepo, weightRepo, tombstoneRepo)
	summarySvc := summary.NewService(mealRepo, foodRepo, targetRepo)
	exportSvc := exportimport.NewService(db, syncEngine, recipeRepo, targetRepo, cfg.DeviceID)

	// Initialize handlers
	foodHandler := food.NewHandler(foodRepo, orchestrator)
	recipeHandler := recipe.NewHandler(recipeRepo)
	targetHandler := target.NewHandler(targetRepo)
	weightHandler := weight.NewHandler(weightRepo)
	mealHandler := mealentry.NewHandler(mealRepo)
	syncHandler := sync.NewHandler(syncEngine)
	summaryHandler := summary.NewHandler(summarySvc)
	exportHandler := exportimport.NewHandler(exportSvc)

	apiMux := http.NewServeMux()

	food.RegisterRoutes(apiMux, foodHandler)
	recipe.RegisterRoutes(apiMux, recipeHandler)
	target.RegisterRoutes(apiMux, targetHandler)
	weight.RegisterRoutes(apiMux, weightHandler)
	mealentry.RegisterRoutes(apiMux, mealHandler)
	sync.RegisterRoutes(apiMux, syncHandler)
	summary.RegisterRoutes(apiMux, summaryHandler)
	exportimport.RegisterRoutes(apiMux, exportHandler)

	apiKey, err := cfg.APIKey()
	if err != nil {
		log.Fatal("Failed to resolve API key:", err)
	}
	if cfg.NoAuth {
		log.Println("WARNING: running with authentication disabled (--no-auth)")
	} else {
		log.Printf("API key: %s", apiKey)
	}

	// /api/* requires the bearer token; /health does not, so a monitor
	// doesn't need the key just to check liveness.
	protectedAPI := auth.BearerMiddleware(apiKey)(apiMux.ServeHTTP)

	mux := http.NewServeMux()
	mux.Handle("/api/", protectedAPI)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Logging outermost so even a rejected or unhealthy request is logged.
	handler := middleware.LoggingMiddleware(middleware.SecurityHeaders(mux))

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
