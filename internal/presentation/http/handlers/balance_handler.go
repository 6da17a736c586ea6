package handlers

import (
	"net/http"

	"github.com/labstack/echo"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"github.com/rosspathan/ipg-staking-monitor/pkg/logger"
)

type balanceResponse struct {
	UserID           string  `json:"user_id"`
	Currency         string  `json:"currency"`
	AvailableBalance float64 `json:"available_balance"`
	StakedBalance    float64 `json:"staked_balance"`
}

// StakingBalance handles GET /api/v1/staking/balance/:userID. Accounts are
// created lazily on first deposit, so a missing row reads as zero balances.
func StakingBalance(accounts domainRepos.StakingAccountRepository, currency string) func(c echo.Context) error {
	return func(c echo.Context) error {
		userID := c.Param("userID")
		if userID == "" {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "userID is required"})
		}

		account, err := accounts.GetByUserAndCurrency(c.Request().Context(), userID, currency)
		if err != nil {
			logger.RequestLogger(c).WithError(err).Error("Failed to load staking account")
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load staking account"})
		}

		resp := balanceResponse{UserID: userID, Currency: currency}
		if account != nil {
			resp.AvailableBalance = account.AvailableBalance.InexactFloat64()
			resp.StakedBalance = account.StakedBalance.InexactFloat64()
		}
		return c.JSON(http.StatusOK, resp)
	}
}
