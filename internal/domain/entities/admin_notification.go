package entities

import "time"

// Notification priorities and types used by this service.
const (
	NotificationTypeDepositBlocked = "staking_deposit_blocked"
	NotificationPriorityCritical   = "critical"
)

// AdminNotification surfaces decisions that need a human, most importantly
// ambiguous wallet ownership. Write-only here.
type AdminNotification struct {
	ID        int       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Title     string    `gorm:"size:200;column:title" json:"title"`
	Message   string    `gorm:"size:1000;column:message" json:"message"`
	Type      string    `gorm:"size:50;column:type" json:"type"`
	Priority  string    `gorm:"size:20;column:priority" json:"priority"`
	Metadata  string    `gorm:"type:jsonb;column:metadata" json:"metadata"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AdminNotification) TableName() string {
	return "admin_notifications"
}
