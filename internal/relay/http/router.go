package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/domain"
)

// WebhookPath is the relay endpoint.
const WebhookPath = "/api/webhook"

// Register registers the relay routes
func (h *Handler) Register(r gin.IRouter) {
	r.GET(WebhookPath, h.GetWebhook)
	r.POST(WebhookPath, h.PostWebhook)
}

// RegisterStatic serves downloaded images under /images and every other GET
// from staticDir. Other methods on unknown paths get 404.
func RegisterStatic(r *gin.Engine, staticDir, imagesDir string) {
	r.Static(domain.ImagesURLPrefix, imagesDir)
	r.NoRoute(staticFallback(staticDir))
}

func staticFallback(staticDir string) gin.HandlerFunc {
	files := http.FileServer(http.Dir(staticDir))
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead:
			files.ServeHTTP(c.Writer, c.Request)
		default:
			c.AbortWithStatus(http.StatusNotFound)
		}
	}
}
