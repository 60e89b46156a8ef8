package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func enableCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// NewRouter wires every page and API endpoint onto a gin engine.
func NewRouter(h *Handler) (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), enableCORS())
	router.SetHTMLTemplate(tmpl)

	router.GET("/health", h.Health)
	router.GET("/", h.About)
	router.GET("/predict", h.PredictForm)
	router.POST("/predict", h.PredictSubmit)
	router.GET("/visualize", h.Visualize)
	router.GET("/images/:name", h.Image)

	api := router.Group("/api")
	api.POST("/predict", h.Predict)
	api.GET("/dataset", h.DatasetPreview)
	api.GET("/dataset/labels", h.LabelDistribution)
	api.GET("/dataset/correlation", h.Correlation)
	api.GET("/dataset/summary", h.Summary)
	api.GET("/dataset/histogram", h.Histogram)
	api.GET("/dataset/scatter", h.Scatter)

	return router, nil
}
