package entities

// StakingConfig is the operator-managed configuration row holding the
// custodial hot wallet address deposits are expected to arrive at.
// Read-only here.
type StakingConfig struct {
	ID               int    `gorm:"primaryKey;autoIncrement;column:id"`
	HotWalletAddress string `gorm:"size:64;column:hot_wallet_address"`
	Active           bool   `gorm:"column:active;default:true"`
}

func (StakingConfig) TableName() string {
	return "staking_configs"
}
