package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// TokenTransfer is the canonical shape of "tokens arrived at the hot
// wallet", regardless of which chain adapter observed it. From is always
// lower-cased and Amount is already scaled to whole tokens.
type TokenTransfer struct {
	TxHash string          `json:"tx_hash"`
	From   string          `json:"from"`
	Amount decimal.Decimal `json:"amount"`
}

// ScanResult summarises one scan-mode invocation.
type ScanResult struct {
	Deposited bool                 `json:"deposited"`
	Amount    decimal.Decimal      `json:"amount"`
	Count     int                  `json:"count"`
	Scanned   int                  `json:"scanned"`
	UsedRPC   bool                 `json:"usedRPC"`
	Message   string               `json:"message"`
	Failed    []FailedCreditDetail `json:"-"`
	Duration  time.Duration        `json:"-"`
}

// ManualCreditResult summarises one manual-recovery invocation.
type ManualCreditResult struct {
	Deposited bool            `json:"deposited"`
	Amount    decimal.Decimal `json:"amount"`
	Credited  decimal.Decimal `json:"credited"`
	Success   bool            `json:"success"`
	Error     string          `json:"error,omitempty"`
}

// FailedCreditDetail records a per-transaction failure inside a batch.
type FailedCreditDetail struct {
	TxHash string `json:"tx_hash"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

// ManualCreditRequest is the operator-supplied description of a single
// transaction to recover outside the normal scan loop.
type ManualCreditRequest struct {
	TxHash          string
	Amount          decimal.Decimal
	FromAddress     string
	ContractAddress string
	UserID          string
}
