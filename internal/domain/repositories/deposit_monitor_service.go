package repositories

import (
	"context"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	"github.com/shopspring/decimal"
)

// SenderResolver maps an on-chain sending address to internal users.
type SenderResolver interface {
	Resolve(ctx context.Context, fromAddress string) (*entities.Resolution, error)
}

// BalanceService is the only component allowed to mutate a staking account
// balance and append a ledger row. Both writes happen in one transaction.
type BalanceService interface {
	// Credit returns the credited amount. A tx_hash that is already in the
	// ledger credits zero and returns no error.
	Credit(ctx context.Context, userID string, amount decimal.Decimal, txHash, fromAddress, currency string) (decimal.Decimal, error)
}

// AmbiguityNotifier escalates transfers that cannot be safely credited
// because the sending address maps to more than one user.
type AmbiguityNotifier interface {
	NotifyAmbiguousDeposit(ctx context.Context, transfer entities.TokenTransfer, candidateIDs []string) error
}

// DepositMonitorService orchestrates deposit reconciliation.
type DepositMonitorService interface {
	// Scan runs the adapters and drives every discovered transfer through
	// guard, resolver and updater, strictly one at a time. A non-empty
	// userID restricts the batch to that user's registered address.
	Scan(ctx context.Context, userID string) (*entities.ScanResult, error)

	// ManualCredit recovers a single operator-described transaction through
	// the identical safety pipeline.
	ManualCredit(ctx context.Context, req entities.ManualCreditRequest) (*entities.ManualCreditResult, error)
}
