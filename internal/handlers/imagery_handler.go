package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"terra-farm/internal/imagery"
)

// ImageryHandler serves the synthetic satellite layer endpoint
type ImageryHandler struct {
	generator *imagery.Generator
	logger    *zap.Logger
}

// NewImageryHandler creates a new handler
func NewImageryHandler(generator *imagery.Generator, logger *zap.Logger) *ImageryHandler {
	return &ImageryHandler{
		generator: generator,
		logger:    logger,
	}
}

// HandleGet serves GET /imagery?type=...&format=svg|png.
// The seed changes daily so the demo layers drift like real acquisitions.
func (h *ImageryHandler) HandleGet(c *gin.Context) {
	imgType := c.DefaultQuery("type", imagery.TypeTruecolor)
	if !imagery.ValidType(imgType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown imagery type"})
		return
	}

	seed := time.Now().UTC().Truncate(24 * time.Hour).Unix()

	switch c.DefaultQuery("format", "svg") {
	case "svg":
		svg, err := h.generator.SVG(imgType, seed)
		if err != nil {
			h.logger.Error("failed to generate svg layer", zap.Error(err), zap.String("type", imgType))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate imagery"})
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", []byte(svg))

	case "png":
		png, err := h.generator.PNG(imgType, seed)
		if err != nil {
			h.logger.Error("failed to generate png layer", zap.Error(err), zap.String("type", imgType))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate imagery"})
			return
		}
		c.Data(http.StatusOK, "image/png", png)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown imagery format"})
	}
}
