package http

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo"
	"github.com/rosspathan/ipg-staking-monitor/internal/config"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"github.com/rosspathan/ipg-staking-monitor/internal/presentation/http/middleware"
	"github.com/rosspathan/ipg-staking-monitor/internal/presentation/http/routes"
	"github.com/rosspathan/ipg-staking-monitor/pkg/logger"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	server   *echo.Echo
	monitor  domainRepos.DepositMonitorService
	accounts domainRepos.StakingAccountRepository
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, monitor domainRepos.DepositMonitorService, accounts domainRepos.StakingAccountRepository) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	return &Server{
		config:   cfg,
		server:   e,
		monitor:  monitor,
		accounts: accounts,
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	routes.SetupRoutes(s.server, s.monitor, s.accounts, s.config.Monitor.Currency)

	port := s.config.Server.Port
	if port == "" {
		port = "8080"
	}

	logger.GetLogger().Infof("Starting server on port %s", port)

	go func() {
		if err := s.server.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.GetLogger().Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.GetLogger().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		logger.GetLogger().Fatalf("Server forced to shutdown: %v", err)
	}

	logger.GetLogger().Info("Server exited")
	return nil
}
