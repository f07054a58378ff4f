package http

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Images    string    `json:"images"`
}

type HealthHandler struct {
	serviceName string
	version     string
	imagesDir   string
}

func NewHealthHandler(serviceName, version, imagesDir string) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		imagesDir:   imagesDir,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	imagesStatus := "up"
	if info, err := os.Stat(h.imagesDir); err != nil || !info.IsDir() {
		imagesStatus = "down"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Images:    imagesStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
