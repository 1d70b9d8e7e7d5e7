package main

import (
	"log"

	"wishwell/internal/config"
	"wishwell/internal/database"
	"wishwell/internal/handlers"
	"wishwell/internal/logger"
	"wishwell/internal/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.Initialize("info", cfg.IsDevelopment())

	db, err := database.Initialize(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	handlers.SetupRoutes(r, db, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
