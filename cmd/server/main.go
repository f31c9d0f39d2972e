package main

import (
	"log"
	"strconv"

	"promptcoach/config"
	"promptcoach/routes"
	"promptcoach/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	services.InitAnalysisService(cfg)
	if cfg.Gemini.ApiKey == "" {
		// Not fatal: the endpoint reports the misconfiguration per-request.
		log.Println("Warning: GEMINI_API_KEY not set, analysis requests will fail")
	}

	router := setupRouter()
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"http://localhost:5173"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	router.GET("/health", routes.Health)
	router.POST("/api/analyze", routes.AnalyzePrompt)

	return router
}
