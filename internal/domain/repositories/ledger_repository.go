package repositories

import (
	"context"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
)

// LedgerRepository reads the append-only staking ledger.
type LedgerRepository interface {
	// ExistsByTxHash is the idempotency pre-check. It closes most of the
	// replay window; the unique index on tx_hash closes the rest.
	ExistsByTxHash(ctx context.Context, txHash string) (bool, error)

	// GetByTxHash returns nil, nil when the hash is unknown.
	GetByTxHash(ctx context.Context, txHash string) (*entities.LedgerEntry, error)
}
