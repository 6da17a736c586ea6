package chain

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	"github.com/shopspring/decimal"
)

// IndexerTokenTx is the raw record shape returned by the block-explorer
// style indexer API. Values arrive as unscaled integer strings with the
// token's reported decimal count alongside.
type IndexerTokenTx struct {
	Hash            string `json:"hash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	TokenDecimal    string `json:"tokenDecimal"`
	ContractAddress string `json:"contractAddress"`
}

// NormalizeIndexerRecord converts one indexer record into the canonical
// transfer shape, scaling the raw value by the reported token decimals.
// An unparsable decimal count falls back to the allow-listed token's own.
func NormalizeIndexerRecord(rec IndexerTokenTx) (entities.TokenTransfer, error) {
	raw, err := decimal.NewFromString(strings.TrimSpace(rec.Value))
	if err != nil {
		return entities.TokenTransfer{}, errors.Wrapf(err, "invalid transfer value %q", rec.Value)
	}

	tokenDecimals := TokenDecimals
	if d, err := strconv.Atoi(strings.TrimSpace(rec.TokenDecimal)); err == nil && d >= 0 {
		tokenDecimals = d
	}

	return entities.TokenTransfer{
		TxHash: strings.ToLower(strings.TrimSpace(rec.Hash)),
		From:   strings.ToLower(strings.TrimSpace(rec.From)),
		Amount: raw.Shift(int32(-tokenDecimals)),
	}, nil
}

// NormalizeLogTransfer converts one raw Transfer log into the canonical
// shape. data is the unsigned big-endian amount from the log's data field,
// scaled by the fixed token decimal exponent.
func NormalizeLogTransfer(txHash, from string, data []byte) entities.TokenTransfer {
	raw := new(big.Int).SetBytes(data)
	return entities.TokenTransfer{
		TxHash: strings.ToLower(txHash),
		From:   strings.ToLower(from),
		Amount: decimal.NewFromBigInt(raw, -TokenDecimals),
	}
}
