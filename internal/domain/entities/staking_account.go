package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// StakingAccount holds a user's balances for one staked currency.
// Exactly one row exists per (user_id, currency); rows are created lazily
// on first credit and mutated only through the balance service.
type StakingAccount struct {
	ID                 int             `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID             string          `gorm:"size:64;column:user_id;uniqueIndex:staking_account_user_currency_idx" json:"user_id"`
	Currency           string          `gorm:"size:20;column:currency;uniqueIndex:staking_account_user_currency_idx" json:"currency"`
	AvailableBalance   decimal.Decimal `gorm:"type:decimal(38,18);default:0;column:available_balance" json:"available_balance"`
	StakedBalance      decimal.Decimal `gorm:"type:decimal(38,18);default:0;column:staked_balance" json:"staked_balance"`
	TotalRewardsEarned decimal.Decimal `gorm:"type:decimal(38,18);default:0;column:total_rewards_earned" json:"total_rewards_earned"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (StakingAccount) TableName() string {
	return "staking_accounts"
}
