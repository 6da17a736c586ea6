package repositories

import (
	"context"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
)

// AdminNotificationRepository appends notifications for human review.
type AdminNotificationRepository interface {
	Create(ctx context.Context, notification *entities.AdminNotification) error
}
