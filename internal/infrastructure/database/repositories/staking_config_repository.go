package repositories

import (
	"context"
	"errors"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"gorm.io/gorm"
)

type stakingConfigRepository struct {
	db *gorm.DB
}

func NewStakingConfigRepository(db *gorm.DB) domainRepos.StakingConfigRepository {
	return &stakingConfigRepository{db: db}
}

func (r *stakingConfigRepository) GetActive(ctx context.Context) (*entities.StakingConfig, error) {
	var config entities.StakingConfig
	err := r.db.WithContext(ctx).Where("active = ?", true).First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}
