package services

import (
	"context"
	"fmt"
	"time"

	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DepositScheduler re-runs scan mode on an interval. Every run is a full
// stateless invocation; overlapping observation windows are harmless
// because the ledger absorbs replays.
type DepositScheduler struct {
	monitor   domainRepos.DepositMonitorService
	cron      *cron.Cron
	interval  time.Duration
	logger    *zap.Logger
	isRunning bool
}

func NewDepositScheduler(monitor domainRepos.DepositMonitorService, interval time.Duration, logger *zap.Logger) *DepositScheduler {
	return &DepositScheduler{
		monitor:  monitor,
		cron:     cron.New(),
		interval: interval,
		logger:   logger,
	}
}

func (ds *DepositScheduler) Start() error {
	if ds.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	spec := fmt.Sprintf("@every %s", ds.interval)
	_, err := ds.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		result, err := ds.monitor.Scan(ctx, "")
		if err != nil {
			ds.logger.Error("Scheduled deposit scan failed", zap.Error(err))
			return
		}

		if result.Count > 0 || len(result.Failed) > 0 {
			ds.logger.Info("Scheduled deposit scan completed",
				zap.Int("scanned", result.Scanned),
				zap.Int("credited", result.Count),
				zap.Int("failed", len(result.Failed)),
				zap.Bool("used_rpc", result.UsedRPC),
				zap.Duration("duration", result.Duration),
			)
		}

		for _, failed := range result.Failed {
			ds.logger.Warn("Deposit credit failed",
				zap.String("tx_hash", failed.TxHash),
				zap.String("reason", failed.Reason),
				zap.String("error", failed.Error),
			)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	ds.cron.Start()
	ds.isRunning = true
	ds.logger.Info("Deposit scheduler started", zap.Duration("interval", ds.interval))
	return nil
}

func (ds *DepositScheduler) Stop() {
	if ds.isRunning {
		ds.cron.Stop()
		ds.isRunning = false
		ds.logger.Info("Deposit scheduler stopped")
	}
}

func (ds *DepositScheduler) IsRunning() bool {
	return ds.isRunning
}
