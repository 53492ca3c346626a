// Package server exposes the job feed over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/jobfeed"
)

const (
	serviceName       = "job-radar"
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type handler struct {
	feed   *jobfeed.Service
	logger *zap.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(feed *jobfeed.Service, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{feed: feed, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(loggerMiddleware(logger))
	r.Use(corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   serviceName,
			"timestamp": time.Now().UTC(),
		})
	})

	api := r.Group("/api")
	{
		jobs := api.Group("/jobs")
		{
			jobs.GET("", h.rankedJobs)
			jobs.GET("/health", h.providerHealth)
			jobs.GET("/search", h.search)
			jobs.POST("/score", h.scoreJobs)
			jobs.GET("/:id", h.jobByID)
		}

		resume := api.Group("/resume")
		{
			resume.POST("/upload", h.uploadResume)
			resume.GET("", h.getResume)
		}

		apps := api.Group("/applications")
		{
			apps.POST("/track", h.trackApplication)
			apps.PUT("/:id/status", h.updateApplicationStatus)
			apps.GET("", h.listApplications)
			apps.DELETE("/clear", h.clearApplications)
		}

		api.POST("/skills/extract", h.extractSkills)
	}

	return r
}

// Serve runs the router on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, router http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("http request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("body_size", c.Writer.Size()),
		)

		for _, e := range c.Errors {
			logger.Error("request error", zap.Error(e.Err))
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
