package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studio-proof/config"
	"studio-proof/internal/handler"
	"studio-proof/internal/middleware"
	"studio-proof/internal/redis"
	"studio-proof/internal/transport/httpdto"
	"studio-proof/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Session   *handler.SessionHandler
	Portfolio *handler.PortfolioHandler
}

// HealthChecker reports whether the backing store is usable.
type HealthChecker interface {
	HealthCheck() error
}

// Deps are the optional collaborators of the route table.
type Deps struct {
	Health  HealthChecker
	Limiter *redis.RateLimiter
	// UploadDir is served under /uploads when set.
	UploadDir string
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.MaxMultipartMemory = int64(cfg.MaxUploadMB) << 20

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Engine exposes the router, mostly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, deps Deps) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware(s.config.CORSOrigins, s.config.PhotographerHeader))
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))
	s.engine.Use(middleware.ClientTypeMiddleware(s.config.PhotographerHeader))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if deps.Health != nil {
			if err := deps.Health.HealthCheck(); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error()))
				return
			}
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	if deps.UploadDir != "" {
		s.engine.Static("/uploads", deps.UploadDir)
	}

	limitBody := bodyLimit(int64(s.config.MaxUploadMB) << 20)
	clientLimit := middleware.ClientRateLimitMiddleware(deps.Limiter, s.logger)

	api := s.engine.Group("/api")
	{
		api.POST("/upload", limitBody, handlers.Session.UploadPhoto)
		api.POST("/qrcode", handlers.Session.GenerateCode)

		sessions := api.Group("/sessions")
		sessions.GET("", handlers.Session.List)
		sessions.GET("/:id/photos", clientLimit, handlers.Session.ListPhotos)
		sessions.POST("/:id/finish", handlers.Session.Finish)
		sessions.POST("/:id/selection", clientLimit, handlers.Session.SubmitSelection)
		sessions.DELETE("/:id", handlers.Session.Delete)
		sessions.DELETE("/:id/photos/:photoId", handlers.Session.DeletePhoto)

		portfolio := api.Group("/portfolio")
		portfolio.POST("", limitBody, handlers.Portfolio.Upload)
		portfolio.GET("", handlers.Portfolio.List)
		portfolio.DELETE("/:id", handlers.Portfolio.Delete)
	}
}

// bodyLimit caps upload bodies. Oversized requests fail while parsing the form.
func bodyLimit(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if max > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		}
		c.Next()
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
