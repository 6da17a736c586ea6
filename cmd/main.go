package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rosspathan/ipg-staking-monitor/internal/container"
	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	"github.com/rosspathan/ipg-staking-monitor/internal/notification"
	httpserver "github.com/rosspathan/ipg-staking-monitor/internal/presentation/http"
	"github.com/rosspathan/ipg-staking-monitor/pkg/logger"
	"go.uber.org/zap"
)

func init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded, relying on environment")
	}
}

func main() {
	logger.InitGlobalLogger()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()

	c, err := container.NewContainer(zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize container", zap.Error(err))
	}

	if err := c.DB.AutoMigrate(
		&entities.StakingAccount{},
		&entities.LedgerEntry{},
		&entities.AdminNotification{},
	); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	if err := notification.SendTelMsg("Staking deposit monitor started"); err != nil {
		zapLogger.Warn("Startup telegram notification failed", zap.Error(err))
	}

	if c.Config.Monitor.EnableScheduler {
		if err := c.DepositScheduler.Start(); err != nil {
			zapLogger.Fatal("Failed to start deposit scheduler", zap.Error(err))
		}
		defer c.DepositScheduler.Stop()
	}

	server := httpserver.NewServer(c.Config, c.DepositMonitor, c.StakingAccountRepo)
	if err := server.Start(); err != nil {
		zapLogger.Fatal("Server stopped with error", zap.Error(err))
	}
}
