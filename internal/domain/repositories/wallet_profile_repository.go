package repositories

import (
	"context"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
)

// WalletProfileRepository reads the external user profile table.
type WalletProfileRepository interface {
	// FindByAddress returns every profile row where either wallet column
	// matches the address case-insensitively. Multiple rows may come back,
	// including multiple rows for the same user.
	FindByAddress(ctx context.Context, address string) ([]entities.WalletProfile, error)

	// GetByUserID returns nil, nil when the user has no profile row.
	GetByUserID(ctx context.Context, userID string) (*entities.WalletProfile, error)
}
