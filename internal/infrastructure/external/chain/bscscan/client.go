package bscscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	"github.com/rosspathan/ipg-staking-monitor/internal/infrastructure/external/chain"
	"go.uber.org/zap"
)

const pageSize = 200

// apiResponse is the envelope of a tokentx query. Status "1" means the
// result list is usable; anything else is treated as "no data", not as a
// failure, so the orchestrator can decide whether to fall back.
type apiResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Result  []chain.IndexerTokenTx `json:"result"`
}

// Adapter fetches incoming token transfers from a block-explorer style
// indexer API (BscScan tokentx endpoint).
type Adapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

func NewAdapter(baseURL, apiKey string, logger *zap.Logger) *Adapter {
	return &Adapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

func (a *Adapter) Name() string {
	return "bscscan"
}

// FetchIncomingTransfers requests the most recent page of token transfers
// for the hot wallet and keeps only allow-listed, non-denied, incoming
// ones, newest first.
func (a *Adapter) FetchIncomingTransfers(ctx context.Context, hotWallet string) ([]entities.TokenTransfer, error) {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "tokentx")
	params.Set("contractaddress", chain.AllowListedContract)
	params.Set("address", hotWallet)
	params.Set("page", "1")
	params.Set("offset", fmt.Sprintf("%d", pageSize))
	params.Set("sort", "desc")
	if a.apiKey != "" {
		params.Set("apikey", a.apiKey)
	}

	reqURL := a.baseURL + "/api?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build indexer request")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "indexer request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Warn("Indexer API returned non-OK status",
			zap.Int("status", resp.StatusCode),
		)
		return []entities.TokenTransfer{}, nil
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "decode indexer response")
	}
	if body.Status != "1" {
		a.logger.Info("Indexer API reported no usable result",
			zap.String("api_status", body.Status),
			zap.String("message", body.Message),
		)
		return []entities.TokenTransfer{}, nil
	}

	wallet := strings.ToLower(hotWallet)
	transfers := make([]entities.TokenTransfer, 0, len(body.Result))
	for _, rec := range body.Result {
		if strings.ToLower(rec.To) != wallet {
			continue
		}
		if !chain.IsAllowedContract(rec.ContractAddress) {
			continue
		}
		if chain.IsDeniedAddress(rec.From) {
			continue
		}
		transfer, err := chain.NormalizeIndexerRecord(rec)
		if err != nil {
			a.logger.Warn("Skipping unparsable indexer record",
				zap.String("tx_hash", rec.Hash),
				zap.Error(err),
			)
			continue
		}
		transfers = append(transfers, transfer)
	}

	a.logger.Debug("Indexer scan completed",
		zap.Int("raw_records", len(body.Result)),
		zap.Int("incoming_transfers", len(transfers)),
	)
	return transfers, nil
}
