package repositories

import (
	"context"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
)

// StakingAccountRepository reads staking account rows. Mutation goes
// through the balance service only, inside a single database transaction.
type StakingAccountRepository interface {
	// GetByUserAndCurrency returns nil, nil when no account exists yet.
	GetByUserAndCurrency(ctx context.Context, userID, currency string) (*entities.StakingAccount, error)
}
