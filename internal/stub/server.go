// Package stub is a local stand-in for the e-voting server. It realizes
// the documented HTTP contract over sqlite so the client and its tests can
// run without the real backend; it makes no claim about the production
// server's internals.
package stub

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/udusdev/biovote/internal/config"
	"github.com/udusdev/biovote/internal/logger"
)

// Server is the stub HTTP server.
type Server struct {
	httpServer *http.Server
	config     *config.Config
	db         *sql.DB
	auth       *Authenticator
}

// New creates a stub server over an opened database.
func New(cfg *config.Config, db *sql.DB) (*Server, error) {
	auth, err := NewAuthenticator(
		cfg.Stub.AdminUsername,
		cfg.Stub.AdminPassword,
		cfg.Stub.JWTSecret,
		cfg.Stub.TokenTTL,
	)
	if err != nil {
		return nil, err
	}
	return &Server{config: cfg, db: db, auth: auth}, nil
}

// Start starts the stub server and blocks until it stops.
func (s *Server) Start() error {
	router := s.Router()

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Stub.Port,
		Handler: router,

		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting stub e-voting server", "port", s.config.Stub.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start stub server: %w", err)
	}
	return nil
}

// Stop gracefully stops the stub server.
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down stub server...")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Router builds the gin engine with the documented routes. Exposed so
// tests can drive the stub through httptest.
func (s *Server) Router() *gin.Engine {
	if s.config.Stub.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	if s.config.Stub.CORSAllowOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(s.config.Stub.CORSAllowOrigins, ",")
	}
	router.Use(cors.New(corsConfig))

	catalogRepo := NewCatalogRepository(s.db)
	sessionRepo := NewSessionRepository(s.db)
	voteRepo := NewVoteRepository(s.db)

	catalogHandler := NewCatalogHandler(catalogRepo)
	sessionHandler := NewSessionHandler(sessionRepo)
	voteHandler := NewVoteHandler(voteRepo, sessionRepo)
	adminHandler := NewAdminHandler(s.auth)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "stub e-voting server is running"})
	})

	router.GET("/position/list", catalogHandler.ListPositions)
	router.GET("/candidate/list", catalogHandler.ListCandidates)
	router.GET("/session/active", sessionHandler.ActiveSession)
	router.POST("/vote/cast-multiple", voteHandler.CastMultiple)
	router.POST("/admin/login", adminHandler.Login)

	admin := router.Group("/", RequireAdmin(s.auth))
	{
		admin.POST("/position/add", catalogHandler.AddPosition)
		admin.POST("/candidate/add", catalogHandler.AddCandidate)
		admin.DELETE("/candidate/clear", catalogHandler.ClearCandidates)
		admin.POST("/session/start", sessionHandler.StartSession)
		admin.POST("/session/end", sessionHandler.EndSession)
	}

	return router
}
