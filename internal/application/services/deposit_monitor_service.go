package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"github.com/rosspathan/ipg-staking-monitor/internal/infrastructure/external/chain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type depositMonitorService struct {
	configRepo  domainRepos.StakingConfigRepository
	ledgerRepo  domainRepos.LedgerRepository
	profileRepo domainRepos.WalletProfileRepository
	resolver    domainRepos.SenderResolver
	balance     domainRepos.BalanceService
	notifier    domainRepos.AmbiguityNotifier
	primary     domainRepos.ChainAdapter
	fallback    domainRepos.ChainAdapter
	currency    string
	logger      *zap.Logger
}

func NewDepositMonitorService(
	configRepo domainRepos.StakingConfigRepository,
	ledgerRepo domainRepos.LedgerRepository,
	profileRepo domainRepos.WalletProfileRepository,
	resolver domainRepos.SenderResolver,
	balance domainRepos.BalanceService,
	notifier domainRepos.AmbiguityNotifier,
	primary domainRepos.ChainAdapter,
	fallback domainRepos.ChainAdapter,
	currency string,
	logger *zap.Logger,
) domainRepos.DepositMonitorService {
	return &depositMonitorService{
		configRepo:  configRepo,
		ledgerRepo:  ledgerRepo,
		profileRepo: profileRepo,
		resolver:    resolver,
		balance:     balance,
		notifier:    notifier,
		primary:     primary,
		fallback:    fallback,
		currency:    currency,
		logger:      logger,
	}
}

// Scan discovers recent incoming transfers and credits each exactly once.
// Transfers are processed strictly one at a time so two deposits from the
// same sender in one batch never race on a stale balance read.
func (s *depositMonitorService) Scan(ctx context.Context, userID string) (*entities.ScanResult, error) {
	start := time.Now()

	hotWallet, err := s.hotWalletAddress(ctx)
	if err != nil {
		return nil, err
	}

	result := &entities.ScanResult{
		Amount: decimal.Zero,
		Failed: make([]entities.FailedCreditDetail, 0),
	}

	transfers, err := s.primary.FetchIncomingTransfers(ctx, hotWallet)
	if err != nil {
		s.logger.Warn("Primary chain adapter failed",
			zap.String("adapter", s.primary.Name()),
			zap.Error(err),
		)
		transfers = nil
	}

	// Fallback fires on an empty answer, not only on an error: an indexer
	// that is lagging looks identical to one that is down.
	if len(transfers) == 0 {
		result.UsedRPC = true
		transfers, err = s.fallback.FetchIncomingTransfers(ctx, hotWallet)
		if err != nil {
			s.logger.Error("Fallback chain adapter failed",
				zap.String("adapter", s.fallback.Name()),
				zap.Error(err),
			)
			result.Message = fmt.Sprintf("both chain adapters failed: %v", err)
			result.Duration = time.Since(start)
			return result, nil
		}
	}

	if userID != "" {
		transfers, err = s.filterByUser(ctx, transfers, userID)
		if err != nil {
			return nil, err
		}
	}

	result.Scanned = len(transfers)

	for _, transfer := range transfers {
		s.processTransfer(ctx, transfer, result)
	}

	result.Duration = time.Since(start)
	result.Message = fmt.Sprintf("credited %d of %d scanned transfers", result.Count, result.Scanned)

	s.logger.Info("Deposit scan completed",
		zap.Int("scanned", result.Scanned),
		zap.Int("credited", result.Count),
		zap.Int("failed", len(result.Failed)),
		zap.Bool("used_rpc", result.UsedRPC),
		zap.String("total_amount", result.Amount.String()),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// processTransfer drives one transfer through guard, resolver and updater.
// Every outcome except a credit is terminal for that transfer; none of
// them abort the rest of the batch.
func (s *depositMonitorService) processTransfer(ctx context.Context, transfer entities.TokenTransfer, result *entities.ScanResult) {
	exists, err := s.ledgerRepo.ExistsByTxHash(ctx, transfer.TxHash)
	if err != nil {
		result.Failed = append(result.Failed, entities.FailedCreditDetail{
			TxHash: transfer.TxHash,
			Reason: "idempotency_check_failed",
			Error:  err.Error(),
		})
		return
	}
	if exists {
		return
	}

	resolution, err := s.resolver.Resolve(ctx, transfer.From)
	if err != nil {
		result.Failed = append(result.Failed, entities.FailedCreditDetail{
			TxHash: transfer.TxHash,
			Reason: "resolver_failed",
			Error:  err.Error(),
		})
		return
	}

	switch resolution.Status {
	case entities.ResolutionUnknown:
		s.logger.Debug("Skipping transfer from unregistered address",
			zap.String("tx_hash", transfer.TxHash),
			zap.String("from", transfer.From),
		)
		return

	case entities.ResolutionAmbiguous:
		if err := s.notifier.NotifyAmbiguousDeposit(ctx, transfer, resolution.CandidateIDs); err != nil {
			result.Failed = append(result.Failed, entities.FailedCreditDetail{
				TxHash: transfer.TxHash,
				Reason: "ambiguity_notification_failed",
				Error:  err.Error(),
			})
		}
		return
	}

	credited, err := s.balance.Credit(ctx, resolution.UserID, transfer.Amount, transfer.TxHash, transfer.From, s.currency)
	if err != nil {
		result.Failed = append(result.Failed, entities.FailedCreditDetail{
			TxHash: transfer.TxHash,
			Reason: "credit_failed",
			Error:  err.Error(),
		})
		return
	}
	if credited.IsPositive() {
		result.Deposited = true
		result.Count++
		result.Amount = result.Amount.Add(credited)
	}
}

// ManualCredit recovers one operator-described transaction. The contract
// allow-list is enforced before anything else runs; operators get no
// bypass the automated path does not have.
func (s *depositMonitorService) ManualCredit(ctx context.Context, req entities.ManualCreditRequest) (*entities.ManualCreditResult, error) {
	if err := validateManualRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.hotWalletAddress(ctx); err != nil {
		return nil, err
	}

	result := &entities.ManualCreditResult{
		Amount:   req.Amount,
		Credited: decimal.Zero,
	}

	txHash := strings.ToLower(strings.TrimSpace(req.TxHash))
	fromAddress := strings.ToLower(strings.TrimSpace(req.FromAddress))

	exists, err := s.ledgerRepo.ExistsByTxHash(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if exists {
		result.Success = true
		return result, nil
	}

	userID := req.UserID
	if userID == "" {
		resolution, err := s.resolver.Resolve(ctx, fromAddress)
		if err != nil {
			return nil, err
		}
		switch resolution.Status {
		case entities.ResolutionUnknown:
			result.Error = entities.ErrUnknownSender.Error()
			return result, nil
		case entities.ResolutionAmbiguous:
			transfer := entities.TokenTransfer{TxHash: txHash, From: fromAddress, Amount: req.Amount}
			if notifyErr := s.notifier.NotifyAmbiguousDeposit(ctx, transfer, resolution.CandidateIDs); notifyErr != nil {
				s.logger.Error("Failed to record ambiguity notification",
					zap.String("tx_hash", txHash),
					zap.Error(notifyErr),
				)
			}
			ambErr := &entities.AmbiguousWalletError{Address: fromAddress, CandidateIDs: resolution.CandidateIDs}
			result.Error = ambErr.Error()
			return result, nil
		}
		userID = resolution.UserID
	}

	credited, err := s.balance.Credit(ctx, userID, req.Amount, txHash, fromAddress, s.currency)
	if err != nil {
		result.Error = err.Error()
		return result, nil
	}

	result.Success = true
	result.Credited = credited
	result.Deposited = credited.IsPositive()

	s.logger.Info("Manual recovery completed",
		zap.String("tx_hash", txHash),
		zap.String("user_id", userID),
		zap.String("credited", credited.String()),
	)
	return result, nil
}

func validateManualRequest(req entities.ManualCreditRequest) error {
	contract := strings.TrimSpace(req.ContractAddress)
	if contract != "" && !chain.IsAllowedContract(contract) {
		return &entities.ValidationError{
			Field:  "contract_address",
			Reason: fmt.Sprintf("%s is not the allow-listed staking token", contract),
		}
	}
	if strings.TrimSpace(req.TxHash) == "" {
		return &entities.ValidationError{Field: "tx_hash", Reason: "must not be empty"}
	}
	if strings.TrimSpace(req.FromAddress) == "" {
		return &entities.ValidationError{Field: "from_address", Reason: "must not be empty"}
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return &entities.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	return nil
}

func (s *depositMonitorService) hotWalletAddress(ctx context.Context) (string, error) {
	cfg, err := s.configRepo.GetActive(ctx)
	if err != nil {
		return "", err
	}
	if cfg == nil || strings.TrimSpace(cfg.HotWalletAddress) == "" {
		return "", entities.ErrMissingHotWallet
	}
	return cfg.HotWalletAddress, nil
}

// filterByUser restricts a batch to transfers sent from the given user's
// registered addresses. A user with no profile matches nothing.
func (s *depositMonitorService) filterByUser(ctx context.Context, transfers []entities.TokenTransfer, userID string) ([]entities.TokenTransfer, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	addresses := map[string]bool{}
	if profile.BSCWalletAddress != "" {
		addresses[strings.ToLower(profile.BSCWalletAddress)] = true
	}
	if profile.WalletAddress != "" {
		addresses[strings.ToLower(profile.WalletAddress)] = true
	}

	filtered := make([]entities.TokenTransfer, 0, len(transfers))
	for _, transfer := range transfers {
		if addresses[transfer.From] {
			filtered = append(filtered, transfer)
		}
	}
	return filtered, nil
}
