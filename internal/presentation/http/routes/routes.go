package routes

import (
	"github.com/labstack/echo"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"github.com/rosspathan/ipg-staking-monitor/internal/presentation/http/handlers"
)

// SetupRoutes sets up all routes for the application
func SetupRoutes(e *echo.Echo, monitor domainRepos.DepositMonitorService, accounts domainRepos.StakingAccountRepository, currency string) {
	e.GET("/health", handlers.HeartBeat)

	api := e.Group("/api/v1")
	api.POST("/staking/deposit-scan", handlers.DepositScan(monitor))
	api.GET("/staking/balance/:userID", handlers.StakingBalance(accounts, currency))
}
