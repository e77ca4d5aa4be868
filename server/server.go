// Package server собирает HTTP сервер импорта контактов:
// конфигурацию, хранилище, пайплайн, обработчики и middleware.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"importserver/database"
	"importserver/internal/config"
	"importserver/pipeline"
	"importserver/server/handlers"
	"importserver/server/middleware"
	"importserver/server/services"
)

// Server HTTP сервер импорта контактов
type Server struct {
	config     *config.Config
	db         *database.ContactDB
	service    *services.ImportService
	handler    *handlers.ImportHandler
	httpServer *http.Server
}

// NewServer создает сервер со всеми зависимостями
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.NewContactDB(cfg.ContactsDBPath, database.DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open contacts database: %w", err)
	}

	p, err := pipeline.NewImportPipeline(&pipeline.ImportPipelineConfig{
		MaxBatchSize: cfg.MaxBatchSize,
		Workers:      cfg.Workers,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create import pipeline: %w", err)
	}

	service, err := services.NewImportService(db, p)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create import service: %w", err)
	}

	return &Server{
		config:  cfg,
		db:      db,
		service: service,
		handler: handlers.NewImportHandler(service),
	}, nil
}

// setupRoutes настраивает маршруты и цепочку middleware
func (s *Server) setupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinRateLimitMiddleware(s.config.RateLimitRPS))

	router.GET("/health", s.handler.HandleHealthGin)

	api := router.Group("/api")
	{
		importGroup := api.Group("/import")
		{
			importGroup.POST("/process", s.handler.HandleImportProcessGin)
			importGroup.POST("/upload", s.handler.HandleImportUploadGin)
		}
		api.GET("/contacts", s.handler.HandleContactsListGin)
	}

	return router
}

// Start запускает HTTP сервер и блокируется до его остановки
func (s *Server) Start() error {
	router := s.setupRoutes()

	addr := fmt.Sprintf(":%s", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting HTTP server on %s", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}

	return nil
}

// Shutdown останавливает сервер и закрывает хранилище
func (s *Server) Shutdown(ctx context.Context) error {
	log.Printf("Shutting down server...")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.db.Close()
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close contacts database: %w", err)
	}

	log.Printf("Server stopped")
	return nil
}
