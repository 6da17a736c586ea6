package entities

// WalletProfile is the external profile table mapping users to their
// self-reported wallet addresses. Read-only here. Nothing guarantees an
// address appears in only one row, or only one column.
type WalletProfile struct {
	ID               int    `gorm:"primaryKey;autoIncrement;column:id"`
	UserID           string `gorm:"size:64;column:user_id"`
	BSCWalletAddress string `gorm:"size:64;column:bsc_wallet_address"`
	WalletAddress    string `gorm:"size:64;column:wallet_address"`
}

func (WalletProfile) TableName() string {
	return "wallet_profiles"
}
