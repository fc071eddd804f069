package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"arrurru-functions/internal/config"
	"arrurru-functions/internal/metrics"
	"arrurru-functions/internal/middleware"
	"arrurru-functions/internal/services"
	"arrurru-functions/pkg/lambda"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	NotificationService services.NotificationService
	UploadService       services.UploadService
}

// SetupRoutes configures the function routes of the local server. The
// routes accept every method so that the handlers answer 405 themselves.
func SetupRoutes(router *gin.Engine, cfg *RouterConfig) {
	notificationHandler := NewNotificationHandler(cfg.NotificationService)
	uploadHandler := NewUploadHandler(cfg.UploadService)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "arrurru-functions",
			"version": "1.0.0",
		})
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.Any("/send-request", GinHandler(notificationHandler.HandleSubmit))
	router.Any("/upload-file", GinHandler(uploadHandler.HandleUpload))
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, cfg config.ServerConfig) {
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))
	router.Use(middleware.StructuredLogger())
	router.Use(middleware.PerformanceMonitor(time.Second))
	router.Use(middleware.ErrorTracker())
}

// GinHandler runs a function handler behind gin, so the local server
// serves the same responses as the deployed functions.
func GinHandler(h lambda.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			_ = c.Error(err)
			writeResponse(c, errorResponse(http.StatusRequestEntityTooLarge, "Request body could not be read"))
			return
		}

		headers := make(map[string]string, len(c.Request.Header))
		for name := range c.Request.Header {
			headers[name] = c.Request.Header.Get(name)
		}

		query := make(map[string]string)
		for name, values := range c.Request.URL.Query() {
			if len(values) > 0 {
				query[name] = values[0]
			}
		}

		req := &lambda.Request{
			RequestID:   c.GetString(middleware.RequestIDKey),
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			Headers:     headers,
			QueryParams: query,
			Body:        body,
		}

		resp, err := h(c.Request.Context(), req)
		if err != nil || resp == nil {
			if err != nil {
				_ = c.Error(err)
			}
			resp = lambda.InternalError()
		}

		writeResponse(c, resp)
	}
}

func writeResponse(c *gin.Context, resp *lambda.Response) {
	for name, value := range resp.Headers {
		c.Header(name, value)
	}
	c.Status(resp.StatusCode)
	if len(resp.Body) > 0 {
		_, _ = c.Writer.Write(resp.Body)
	}
}
