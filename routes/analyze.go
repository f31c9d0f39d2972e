package routes

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"promptcoach/services"

	"github.com/gin-gonic/gin"
)

// AnalyzePrompt grades the submitted prompt against the rubric. The credential
// check runs before the body is touched so a misconfigured server reports 500
// even for malformed requests.
func AnalyzePrompt(c *gin.Context) {
	if !services.ModelConfigured() {
		log.Println("Gemini API key not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Model API key not configured"})
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	prompt, ok := body["prompt"].(string)
	if !ok || strings.TrimSpace(prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Field 'prompt' must be a non-empty string"})
		return
	}

	analysis, err := services.AnalyzePrompt(c.Request.Context(), prompt)
	if err != nil {
		var upstream *services.UpstreamError
		if errors.As(err, &upstream) {
			log.Printf("Rejected model output: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": upstream.Reason, "raw": upstream.Raw})
			return
		}
		log.Printf("Model invocation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze prompt"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// Health reports service liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
