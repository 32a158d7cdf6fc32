package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/nitionsearch-console/internal/conf"
	"github.com/lk2023060901/nitionsearch-console/internal/pkg/logger"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/service"
	"go.uber.org/zap"
)

type HTTPServer struct {
	server        *http.Server
	logger        *logger.Logger
	searchService *service.SearchService
}

func NewHTTPServer(
	config *conf.Config,
	logger *logger.Logger,
	searchService *service.SearchService,
) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:    config.Server.Addr(),
			Handler: NewRouter(logger, searchService),
		},
		logger:        logger,
		searchService: searchService,
	}
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(l *logger.Logger, searchService *service.SearchService) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(logger.GinRecovery(l))
	router.Use(logger.GinLogger(l, logger.MiddlewareOptions{SkipPaths: []string{"/health"}}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	searchService.RegisterRoutes(router)
	return router
}

// Addr returns the configured listen address
func (s *HTTPServer) Addr() string {
	return s.server.Addr
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}
