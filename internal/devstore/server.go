// Package devstore is a local stand-in for the hosted record/auth service
// the storefront is built against. It speaks the same wire protocol as
// internal/store and deliberately mirrors the hosted service's weak
// guarantees: per-call atomicity only, no cross-collection constraints, no
// multi-record transactions. In particular a cart item may reference a
// product that no longer exists; readers own that problem.
package devstore

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Options configure the devstore's two credentials: the service API key
// checked on every record call, and the HS256 secret tokens are signed
// with (shared with the storefront's auth middleware).
type Options struct {
	APIKey     string
	AuthSecret string
}

// Server wraps the HTTP server setup for the record service.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	pool       *pgxpool.Pool
}

// New builds a Server with the record and auth routes.
func New(addr string, logger *log.Logger, pool *pgxpool.Pool, opts Options) *Server {
	router := buildRouter(logger, pool, opts)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
		pool:   pool,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func buildRouter(logger *log.Logger, pool *pgxpool.Pool, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	records := newRecordHandlers(pool, logger)
	auth := newAuthHandlers(pool, opts.AuthSecret)

	v1 := router.Group("/v1")
	{
		v1.POST("/auth/register", auth.register)
		v1.POST("/auth/token", auth.token)
		v1.GET("/auth/me", auth.me)

		protected := v1.Group("/records", apiKeyMiddleware(opts.APIKey))
		{
			protected.GET("/:collection", records.list)
			protected.POST("/:collection", records.create)
			protected.PATCH("/:collection/:id", records.patch)
			protected.DELETE("/:collection/:id", records.remove)
		}
	}

	return router
}

func apiKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key != "" && c.GetHeader("X-API-Key") != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			return
		}
		c.Next()
	}
}
