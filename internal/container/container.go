package container

import (
	"github.com/rosspathan/ipg-staking-monitor/internal/application/services"
	"github.com/rosspathan/ipg-staking-monitor/internal/config"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"github.com/rosspathan/ipg-staking-monitor/internal/infrastructure/database/repositories"
	"github.com/rosspathan/ipg-staking-monitor/internal/infrastructure/external/chain/bscscan"
	"github.com/rosspathan/ipg-staking-monitor/internal/infrastructure/external/chain/rpc"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *gorm.DB

	// Repositories
	StakingAccountRepo    domainRepos.StakingAccountRepository
	LedgerRepo            domainRepos.LedgerRepository
	WalletProfileRepo     domainRepos.WalletProfileRepository
	AdminNotificationRepo domainRepos.AdminNotificationRepository
	StakingConfigRepo     domainRepos.StakingConfigRepository

	// Chain adapters
	IndexerAdapter domainRepos.ChainAdapter
	RPCAdapter     domainRepos.ChainAdapter

	// Services
	Resolver         domainRepos.SenderResolver
	Balance          domainRepos.BalanceService
	Notifier         domainRepos.AmbiguityNotifier
	DepositMonitor   domainRepos.DepositMonitorService
	DepositScheduler *services.DepositScheduler
}

// NewContainer creates a new container with all dependencies
func NewContainer(logger *zap.Logger) (*Container, error) {
	cfg := config.LoadConfig()

	db, err := config.NewDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	stakingAccountRepo := repositories.NewStakingAccountRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	walletProfileRepo := repositories.NewWalletProfileRepository(db)
	adminNotificationRepo := repositories.NewAdminNotificationRepository(db)
	stakingConfigRepo := repositories.NewStakingConfigRepository(db)

	indexerAdapter := bscscan.NewAdapter(cfg.Chain.IndexerBaseURL, cfg.Chain.IndexerAPIKey, logger)
	rpcAdapter := rpc.NewAdapter(cfg.Chain.RPCURL, cfg.Chain.FallbackHorizon, logger)

	resolver := services.NewSenderResolver(walletProfileRepo, logger)
	balance := services.NewBalanceService(db, logger)
	notifier := services.NewAmbiguityNotifier(adminNotificationRepo, logger)

	depositMonitor := services.NewDepositMonitorService(
		stakingConfigRepo,
		ledgerRepo,
		walletProfileRepo,
		resolver,
		balance,
		notifier,
		indexerAdapter,
		rpcAdapter,
		cfg.Monitor.Currency,
		logger,
	)

	depositScheduler := services.NewDepositScheduler(depositMonitor, cfg.Monitor.ScanInterval, logger)

	return &Container{
		Config: cfg,
		DB:     db,

		StakingAccountRepo:    stakingAccountRepo,
		LedgerRepo:            ledgerRepo,
		WalletProfileRepo:     walletProfileRepo,
		AdminNotificationRepo: adminNotificationRepo,
		StakingConfigRepo:     stakingConfigRepo,

		IndexerAdapter: indexerAdapter,
		RPCAdapter:     rpcAdapter,

		Resolver:         resolver,
		Balance:          balance,
		Notifier:         notifier,
		DepositMonitor:   depositMonitor,
		DepositScheduler: depositScheduler,
	}, nil
}
