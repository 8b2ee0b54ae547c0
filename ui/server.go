// Package ui serves the validation dashboard and the JSON API.
package ui

import (
	"embed"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gorand/app"
)

//go:embed templates/index.html
var embeddedFiles embed.FS

// Server is the web server for the validation UI and API.
type Server struct {
	router     *gin.Engine
	validation *app.ValidationService
	history    *app.HistoryService
	logger     *zap.SugaredLogger
}

// NewServer creates a new web server instance.
func NewServer(logger *zap.SugaredLogger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	return &Server{
		router: router,
		logger: logger,
	}
}

// Initialize sets up the server with its dependencies.
func (s *Server) Initialize(validation *app.ValidationService, history *app.HistoryService) error {
	if validation == nil || history == nil {
		return fmt.Errorf("ui server requires validation and history services")
	}
	s.validation = validation
	s.history = history

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(requestLogger(s.logger))
	s.router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type", "Accept"},
		AllowAllOrigins:  true,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/health", s.handleHealth)

	// JSON API
	s.router.POST("/api/validate", s.handleValidate)
	s.router.GET("/api/history", s.handleHistory)
	s.router.GET("/api/history/:id", s.handleHistoryDetail)
	s.router.GET("/api/history/:id/report", s.handleReport)
}

// Start starts the web server.
func (s *Server) Start(addr string) error {
	s.logger.Infow("starting web server", "addr", addr)
	return s.router.Run(addr)
}

// handleIndex serves the single-page dashboard.
func (s *Server) handleIndex(c *gin.Context) {
	page, err := embeddedFiles.ReadFile("templates/index.html")
	if err != nil {
		s.logger.Errorw("dashboard template missing", "error", err)
		c.String(http.StatusInternalServerError, "template not found")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// requestLogger logs one line per request through the shared logger.
func requestLogger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
