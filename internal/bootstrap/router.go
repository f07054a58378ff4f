package bootstrap

import (
	"time"

	httpapi "github.com/storyboard-studio/storyboard-relay/internal/api/http"
	"github.com/storyboard-studio/storyboard-relay/internal/api/http/middleware"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/images"
	relayhttp "github.com/storyboard-studio/storyboard-relay/internal/relay/http"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/project"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/service"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/transform"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	WebhookURL     string
	WebhookTimeout time.Duration
	ImageTimeout   time.Duration
	ImageUserAgent string
	StaticDir      string
	Projects       *project.Store
	Logger         *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.CORSHeaders())
	r.Use(middleware.CORS())
	r.Use(middleware.AllowOptions())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Projects.Root())
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	relayHandler := relayhttp.New(
		service.NewWebhookClient(dep.WebhookURL, dep.WebhookTimeout),
		dep.Projects,
		transform.New(images.NewFetcher(dep.ImageTimeout, dep.ImageUserAgent)),
	)
	relayHandler.Register(r)
	relayhttp.RegisterStatic(r, dep.StaticDir, dep.Projects.Root())

	return r
}
