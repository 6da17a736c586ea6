package repositories

import (
	"context"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"gorm.io/gorm"
)

type adminNotificationRepository struct {
	db *gorm.DB
}

func NewAdminNotificationRepository(db *gorm.DB) domainRepos.AdminNotificationRepository {
	return &adminNotificationRepository{db: db}
}

func (r *adminNotificationRepository) Create(ctx context.Context, notification *entities.AdminNotification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}
