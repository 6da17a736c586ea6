package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// errAlreadyCredited aborts the credit transaction when the ledger's
// unique index reports the tx hash was written by a concurrent invocation.
var errAlreadyCredited = errors.New("ledger entry already exists for tx hash")

type balanceService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewBalanceService(db *gorm.DB, logger *zap.Logger) domainRepos.BalanceService {
	return &balanceService{
		db:     db,
		logger: logger,
	}
}

// Credit applies one deposit as a single unit of work: fetch or create the
// account, bump the balance with a compare-and-swap update, append the
// ledger row. Any failure rolls the whole credit back. A duplicate tx hash
// rolls back too, but is absorbed as a zero-amount success.
func (s *balanceService) Credit(ctx context.Context, userID string, amount decimal.Decimal, txHash, fromAddress, currency string) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("credit amount must be positive, got %s", amount)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account := entities.StakingAccount{
			UserID:   userID,
			Currency: currency,
		}
		if err := tx.Where("user_id = ? AND currency = ?", userID, currency).
			FirstOrCreate(&account).Error; err != nil {
			return fmt.Errorf("failed to load staking account: %w", err)
		}

		balanceBefore := account.AvailableBalance
		balanceAfter := balanceBefore.Add(amount)

		// Conditional on the balance we read: a concurrent credit turns this
		// into zero rows affected instead of a silent lost update.
		res := tx.Model(&entities.StakingAccount{}).
			Where("id = ? AND available_balance = ?", account.ID, balanceBefore).
			Updates(map[string]interface{}{
				"available_balance": balanceAfter,
				"updated_at":        time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update staking account balance: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("staking account %d changed concurrently, credit not applied", account.ID)
		}

		entry := entities.LedgerEntry{
			UserID:           userID,
			StakingAccountID: account.ID,
			TxType:           entities.TxTypeDeposit,
			Amount:           amount,
			FeeAmount:        decimal.Zero,
			Currency:         currency,
			BalanceBefore:    balanceBefore,
			BalanceAfter:     balanceAfter,
			TxHash:           txHash,
			Notes:            fmt.Sprintf("on-chain deposit from %s", fromAddress),
		}
		if err := tx.Create(&entry).Error; err != nil {
			if isUniqueViolation(err) {
				return errAlreadyCredited
			}
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, errAlreadyCredited) {
			s.logger.Info("Deposit already credited by a concurrent run",
				zap.String("tx_hash", txHash),
				zap.String("user_id", userID),
			)
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	s.logger.Info("Deposit credited",
		zap.String("user_id", userID),
		zap.String("currency", currency),
		zap.String("amount", amount.String()),
		zap.String("tx_hash", txHash),
	)
	return amount, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
