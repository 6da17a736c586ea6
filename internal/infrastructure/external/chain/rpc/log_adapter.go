package rpc

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	"github.com/rosspathan/ipg-staking-monitor/internal/infrastructure/external/chain"
	"go.uber.org/zap"
)

// DefaultFallbackHorizon bounds the fallback scan window to recent blocks
// so an empty indexer answer never turns into an unbounded history scan.
const DefaultFallbackHorizon = 5000

var transferEventHash = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// Adapter reads Transfer logs straight from a BSC node. It is the fallback
// source, used only when the indexer API yields zero transfers.
type Adapter struct {
	rpcURL  string
	horizon uint64
	logger  *zap.Logger
}

func NewAdapter(rpcURL string, horizon uint64, logger *zap.Logger) *Adapter {
	if horizon == 0 {
		horizon = DefaultFallbackHorizon
	}
	return &Adapter{
		rpcURL:  rpcURL,
		horizon: horizon,
		logger:  logger,
	}
}

func (a *Adapter) Name() string {
	return "rpc"
}

// FetchIncomingTransfers issues one eth_getLogs call filtered by the
// Transfer topic, any sender, and the hot wallet as recipient, over the
// last horizon blocks.
func (a *Adapter) FetchIncomingTransfers(ctx context.Context, hotWallet string) ([]entities.TokenTransfer, error) {
	client, err := ethclient.DialContext(ctx, a.rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to the RPC node")
	}
	defer client.Close()

	header, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "eth_blockNumber failed")
	}

	fromBlock := new(big.Int).Set(header.Number)
	if fromBlock.Uint64() > a.horizon {
		fromBlock.Sub(fromBlock, new(big.Int).SetUint64(a.horizon))
	} else {
		fromBlock.SetInt64(0)
	}

	paddedWallet := common.BytesToHash(common.LeftPadBytes(common.HexToAddress(hotWallet).Bytes(), 32))
	query := ethereum.FilterQuery{
		FromBlock: fromBlock,
		Addresses: []common.Address{common.HexToAddress(chain.AllowListedContract)},
		Topics: [][]common.Hash{
			{transferEventHash},
			nil, // any sender
			{paddedWallet},
		},
	}

	logs, err := client.FilterLogs(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "eth_getLogs failed")
	}

	transfers := make([]entities.TokenTransfer, 0, len(logs))
	for _, vLog := range logs {
		if len(vLog.Topics) < 3 {
			continue
		}
		from := common.HexToAddress(vLog.Topics[1].Hex()).Hex()
		if chain.IsDeniedAddress(from) {
			continue
		}
		if !chain.IsAllowedContract(vLog.Address.Hex()) {
			continue
		}
		transfers = append(transfers, chain.NormalizeLogTransfer(vLog.TxHash.Hex(), from, vLog.Data))
	}

	a.logger.Debug("RPC log scan completed",
		zap.Uint64("from_block", fromBlock.Uint64()),
		zap.Uint64("head_block", header.Number.Uint64()),
		zap.Int("logs", len(logs)),
		zap.Int("incoming_transfers", len(transfers)),
	)
	return transfers, nil
}
