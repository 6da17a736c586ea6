package repositories

import (
	"context"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
)

// ChainAdapter is one independent source of "tokens arrived at the hot
// wallet" events. Implementations must filter to the allow-listed token
// contract and exclude deny-listed addresses before returning anything.
type ChainAdapter interface {
	Name() string

	// FetchIncomingTransfers returns a recent window of normalized incoming
	// transfers for the hot wallet, newest first. An empty slice is a valid
	// answer, not an error.
	FetchIncomingTransfers(ctx context.Context, hotWallet string) ([]entities.TokenTransfer, error)
}
