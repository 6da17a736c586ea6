package entities

import (
	"errors"
	"fmt"
)

// ErrMissingHotWallet aborts a whole invocation: without a configured hot
// wallet there is nothing safe to scan for.
var ErrMissingHotWallet = errors.New("staking hot wallet address is not configured")

// ErrUnknownSender marks a transfer whose sending address matched no
// profile. The transfer is skipped, never credited and never retried.
var ErrUnknownSender = errors.New("sender address matches no wallet profile")

// AmbiguousWalletError is raised when one sending address maps to two or
// more distinct users. Crediting would be an irreversible guess, so the
// transfer is blocked and escalated instead.
type AmbiguousWalletError struct {
	Address      string
	CandidateIDs []string
}

func (e *AmbiguousWalletError) Error() string {
	return fmt.Sprintf("address %s is registered to %d users", e.Address, len(e.CandidateIDs))
}

// ValidationError rejects a manual recovery request before any resolution
// or crediting work happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
