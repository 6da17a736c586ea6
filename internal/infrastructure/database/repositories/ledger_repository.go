package repositories

import (
	"context"
	"errors"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) domainRepos.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) ExistsByTxHash(ctx context.Context, txHash string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.LedgerEntry{}).
		Where("tx_hash = ?", txHash).
		Count(&count).Error
	return count > 0, err
}

func (r *ledgerRepository) GetByTxHash(ctx context.Context, txHash string) (*entities.LedgerEntry, error) {
	var entry entities.LedgerEntry
	err := r.db.WithContext(ctx).Where("tx_hash = ?", txHash).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}
