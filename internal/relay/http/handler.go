package http

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/domain"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/service"
)

// Webhook forwards requests to the remote automation webhook.
type Webhook interface {
	Get(ctx context.Context, rawQuery string) ([]byte, error)
	Post(ctx context.Context, body []byte) ([]byte, error)
}

// Projects creates the on-disk namespace for a relay request.
type Projects interface {
	Create(text string) (domain.Project, error)
}

// Transformer rewrites a webhook response for a project.
type Transformer interface {
	Transform(ctx context.Context, raw []byte, project domain.Project) []byte
}

type Handler struct {
	webhook     Webhook
	projects    Projects
	transformer Transformer
}

func New(webhook Webhook, projects Projects, transformer Transformer) *Handler {
	return &Handler{
		webhook:     webhook,
		projects:    projects,
		transformer: transformer,
	}
}

// GetWebhook relays a GET with the caller's query string untouched.
func (h *Handler) GetWebhook(c *gin.Context) {
	body, err := h.webhook.Get(relayContext(c), c.Request.URL.RawQuery)
	if err != nil {
		relayError(c, err)
		return
	}
	c.Data(http.StatusOK, jsonContentType, body)
}

// PostWebhook creates a project for the request, forwards the original body
// and rewrites the webhook's answer to point at downloaded images.
func (h *Handler) PostWebhook(c *gin.Context) {
	ctx := relayContext(c)
	logger := service.NewLogger(ctx)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.LogError("read_request", err)
		relayError(c, err)
		return
	}

	videoScript, err := parseVideoScript(body)
	if err != nil {
		logger.LogError("parse_request", err)
		relayError(c, err)
		return
	}

	project, err := h.projects.Create(videoScript)
	if err != nil {
		logger.LogError("create_project", err)
		relayError(c, err)
		return
	}
	logger.LogInfof("create_project", "created project folder: %s", project.Dir)

	raw, err := h.webhook.Post(ctx, body)
	if err != nil {
		relayError(c, err)
		return
	}

	c.Data(http.StatusOK, jsonContentType, h.transformer.Transform(ctx, raw, project))
}

// relayContext keeps the request's values (request id) but not its
// cancellation: a relay runs until the webhook and image timeouts expire even
// if the caller hangs up.
func relayContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
