package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/service"
)

// relayError answers a failed relay. Webhook HTTP errors are forwarded with
// their own status and body; everything else becomes a 500 JSON error.
func relayError(c *gin.Context, err error) {
	var httpErr *service.HTTPError
	if errors.As(err, &httpErr) {
		proxyResponseWithBody(c, httpErr)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// proxyResponseWithBody forwards a webhook error response to the client
func proxyResponseWithBody(c *gin.Context, httpErr *service.HTTPError) {
	if httpErr.ContentType != "" {
		c.Header("Content-Type", httpErr.ContentType)
	}
	c.Status(httpErr.StatusCode)
	_, _ = c.Writer.Write(httpErr.Body)
}
