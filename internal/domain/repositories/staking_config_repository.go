package repositories

import (
	"context"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
)

// StakingConfigRepository reads the operator-managed staking configuration.
type StakingConfigRepository interface {
	// GetActive returns nil, nil when no active config row exists.
	GetActive(ctx context.Context) (*entities.StakingConfig, error)
}
