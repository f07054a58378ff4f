package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, webhookURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := project.NewStore(t.TempDir())
	require.NoError(t, err)

	return BuildRouter(RouterDeps{
		ServiceName:    "storyboard-relay",
		Version:        "test",
		WebhookURL:     webhookURL,
		WebhookTimeout: time.Second,
		ImageTimeout:   time.Second,
		ImageUserAgent: "test-agent",
		StaticDir:      t.TempDir(),
		Projects:       store,
		Logger:         zap.NewNop(),
	})
}

func TestBuildRouter_Routes(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer webhook.Close()

	r := newTestRouter(t, webhook.URL)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/webhook", http.StatusOK},
		{http.MethodOptions, "/api/webhook", http.StatusOK},
		{http.MethodOptions, "/whatever", http.StatusOK},
		{http.MethodPost, "/not-the-webhook", http.StatusNotFound},
		{http.MethodGet, "/no-such-file.css", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rr.Code)
			assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
		})
	}
}

func TestBuildRouter_CORSOnRelay(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"plain"`))
	}))
	defer webhook.Close()

	r := newTestRouter(t, webhook.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(`{"videoScript":"cors"}`))
	req.Header.Set("Origin", "http://localhost:8080")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, `"plain"`, rr.Body.String())
}

func TestBuildRouter_MetricsExposeRelaySeries(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer webhook.Close()

	r := newTestRouter(t, webhook.URL)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/webhook", nil))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Contains(t, rr.Body.String(), "relay_webhook_calls_total")
	assert.Contains(t, rr.Body.String(), "relay_http_requests_total")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("production", "warn")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger("development", "loud")
	assert.Error(t, err)
}

func TestSetGinMode(t *testing.T) {
	defer gin.SetMode(gin.TestMode)

	SetGinMode("production")
	assert.Equal(t, gin.ReleaseMode, gin.Mode())

	SetGinMode("test")
	assert.Equal(t, gin.TestMode, gin.Mode())
}
