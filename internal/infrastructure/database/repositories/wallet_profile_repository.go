package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"gorm.io/gorm"
)

type walletProfileRepository struct {
	db *gorm.DB
}

func NewWalletProfileRepository(db *gorm.DB) domainRepos.WalletProfileRepository {
	return &walletProfileRepository{db: db}
}

func (r *walletProfileRepository) FindByAddress(ctx context.Context, address string) ([]entities.WalletProfile, error) {
	normalized := strings.ToLower(strings.TrimSpace(address))

	var profiles []entities.WalletProfile
	err := r.db.WithContext(ctx).
		Where("LOWER(bsc_wallet_address) = ? OR LOWER(wallet_address) = ?", normalized, normalized).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *walletProfileRepository) GetByUserID(ctx context.Context, userID string) (*entities.WalletProfile, error) {
	var profile entities.WalletProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
