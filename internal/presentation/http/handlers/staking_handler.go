package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo"
	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"github.com/rosspathan/ipg-staking-monitor/pkg/logger"
	"github.com/shopspring/decimal"
)

// depositScanRequest selects the invocation mode: tx_hash, amount and
// from_address together select manual recovery, otherwise scan mode.
type depositScanRequest struct {
	UserID          string  `json:"user_id"`
	TxHash          string  `json:"tx_hash"`
	Amount          float64 `json:"amount"`
	FromAddress     string  `json:"from_address"`
	ContractAddress string  `json:"contract_address"`
}

type scanResponse struct {
	Deposited bool    `json:"deposited"`
	Amount    float64 `json:"amount"`
	Count     int     `json:"count"`
	Scanned   int     `json:"scanned"`
	UsedRPC   bool    `json:"usedRPC"`
	Message   string  `json:"message"`
}

type manualResponse struct {
	Deposited bool    `json:"deposited"`
	Amount    float64 `json:"amount"`
	Credited  float64 `json:"credited"`
	Success   bool    `json:"success"`
	Error     string  `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// DepositScan handles POST /api/v1/staking/deposit-scan.
func DepositScan(svc domainRepos.DepositMonitorService) func(c echo.Context) error {
	return func(c echo.Context) error {
		log := logger.RequestLogger(c)

		var req depositScanRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		}

		if req.TxHash != "" && req.FromAddress != "" && req.Amount > 0 {
			result, err := svc.ManualCredit(c.Request().Context(), entities.ManualCreditRequest{
				TxHash:          req.TxHash,
				Amount:          decimal.NewFromFloat(req.Amount),
				FromAddress:     req.FromAddress,
				ContractAddress: req.ContractAddress,
				UserID:          req.UserID,
			})
			if err != nil {
				log.WithError(err).Error("Manual recovery rejected")
				return writeError(c, err)
			}
			return c.JSON(http.StatusOK, manualResponse{
				Deposited: result.Deposited,
				Amount:    result.Amount.InexactFloat64(),
				Credited:  result.Credited.InexactFloat64(),
				Success:   result.Success,
				Error:     result.Error,
			})
		}

		result, err := svc.Scan(c.Request().Context(), req.UserID)
		if err != nil {
			log.WithError(err).Error("Deposit scan failed")
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, scanResponse{
			Deposited: result.Deposited,
			Amount:    result.Amount.InexactFloat64(),
			Count:     result.Count,
			Scanned:   result.Scanned,
			UsedRPC:   result.UsedRPC,
			Message:   result.Message,
		})
	}
}

func writeError(c echo.Context, err error) error {
	var validationErr *entities.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validationErr.Error()})
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
