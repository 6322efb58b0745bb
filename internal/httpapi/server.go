// Package httpapi exposes assessment sessions over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/novapath/trident/internal/guidance"
	"github.com/novapath/trident/internal/metrics"
	"github.com/novapath/trident/internal/session"
)

// Options wires the server's dependencies. Sessions is required.
type Options struct {
	Sessions *session.Service
	// Guidance is attached to reports when set.
	Guidance *guidance.Service
	Metrics  *metrics.Metrics
	// Gatherer backs GET /metrics; defaults to the Prometheus default registry.
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
	// CORSOrigins lists allowed browser origins. Empty disables CORS.
	CORSOrigins []string
	// TopN is the default number of leading traits in reports.
	TopN int
}

// Server is the HTTP front end.
type Server struct {
	opts   Options
	engine *gin.Engine
	logger *zap.Logger
}

// New builds the router.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(opts.Logger, opts.Metrics))
	if len(opts.CORSOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = opts.CORSOrigins
		cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
		cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		cfg.MaxAge = 12 * time.Hour
		engine.Use(cors.New(cfg))
	}

	s := &Server{opts: opts, engine: engine, logger: opts.Logger}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api/v1")
	sessions := api.Group("/sessions")
	{
		sessions.POST("", s.handleStart)
		sessions.GET("/:key", s.handleGet)
		sessions.POST("/:key/answers", s.handleAnswer)
		sessions.POST("/:key/reset", s.handleReset)
		sessions.GET("/:key/report", s.handleReport)
	}
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve listens on addr until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func (s *Server) Serve(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
