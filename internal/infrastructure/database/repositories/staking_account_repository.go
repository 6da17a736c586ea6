package repositories

import (
	"context"
	"errors"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"gorm.io/gorm"
)

type stakingAccountRepository struct {
	db *gorm.DB
}

func NewStakingAccountRepository(db *gorm.DB) domainRepos.StakingAccountRepository {
	return &stakingAccountRepository{db: db}
}

func (r *stakingAccountRepository) GetByUserAndCurrency(ctx context.Context, userID, currency string) (*entities.StakingAccount, error) {
	var account entities.StakingAccount
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND currency = ?", userID, currency).
		First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}
