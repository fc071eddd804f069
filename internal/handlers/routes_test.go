package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"arrurru-functions/internal/adapters/storage"
	"arrurru-functions/internal/config"
	"arrurru-functions/internal/services"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	SetupMiddleware(router, config.ServerConfig{MaxBodyBytes: 1 << 20})
	SetupRoutes(router, &RouterConfig{
		NotificationService: services.NewNotificationService(nil, ""),
		UploadService: services.NewUploadService(storage.NewMockFileStorage(), services.UploadConfig{
			KeyPrefix: "arrurru/",
			CDNHost:   "cdn.example.test",
			ProjectID: "key",
		}),
	})
	return router
}

func TestRoutes_Preflight(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/send-request", "/upload-file"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
		assert.Empty(t, w.Body.String())
	}
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/send-request", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
}

func TestRoutes_Upload(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/upload-file", strings.NewReader(`{"fileName":"a b.txt","fileData":"aGk="}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"url":"https://cdn.example.test/projects/key/bucket/arrurru/a_b.txt","fileName":"a b.txt"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRoutes_SendRequestNotConfigured(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/send-request", strings.NewReader(validApplicationBody)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Telegram не настроен"}`, w.Body.String())
}

func TestRoutes_Health(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestRoutes_Metrics(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/send-request", strings.NewReader(`{}`)))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "arrurru_notifications_total")
}
