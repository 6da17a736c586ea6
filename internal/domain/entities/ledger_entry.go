package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger transaction types written by this service.
const (
	TxTypeDeposit = "deposit"
)

// LedgerEntry is the append-only record of every balance-affecting event.
// tx_hash carries a storage-level unique index: the database, not the
// application pre-check, is the final authority on "already credited".
type LedgerEntry struct {
	ID               int             `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID           string          `gorm:"size:64;column:user_id;index" json:"user_id"`
	StakingAccountID int             `gorm:"column:staking_account_id" json:"staking_account_id"`
	TxType           string          `gorm:"size:20;column:tx_type" json:"tx_type"`
	Amount           decimal.Decimal `gorm:"type:decimal(38,18);column:amount" json:"amount"`
	FeeAmount        decimal.Decimal `gorm:"type:decimal(38,18);default:0;column:fee_amount" json:"fee_amount"`
	Currency         string          `gorm:"size:20;column:currency" json:"currency"`
	BalanceBefore    decimal.Decimal `gorm:"type:decimal(38,18);column:balance_before" json:"balance_before"`
	BalanceAfter     decimal.Decimal `gorm:"type:decimal(38,18);column:balance_after" json:"balance_after"`
	TxHash           string          `gorm:"size:66;column:tx_hash;uniqueIndex:ledger_entry_tx_hash_idx" json:"tx_hash"`
	Notes            string          `gorm:"size:500;column:notes" json:"notes"`
	CreatedAt        time.Time       `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "staking_ledger"
}
