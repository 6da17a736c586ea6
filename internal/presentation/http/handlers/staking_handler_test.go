package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo"
	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMonitor struct {
	scanResult   *entities.ScanResult
	scanErr      error
	scanUserID   string
	scanCalls    int
	manualResult *entities.ManualCreditResult
	manualErr    error
	manualReq    entities.ManualCreditRequest
	manualCalls  int
}

func (f *fakeMonitor) Scan(ctx context.Context, userID string) (*entities.ScanResult, error) {
	f.scanCalls++
	f.scanUserID = userID
	return f.scanResult, f.scanErr
}

func (f *fakeMonitor) ManualCredit(ctx context.Context, req entities.ManualCreditRequest) (*entities.ManualCreditResult, error) {
	f.manualCalls++
	f.manualReq = req
	return f.manualResult, f.manualErr
}

func invoke(t *testing.T, monitor *fakeMonitor, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/staking/deposit-scan", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, DepositScan(monitor)(c))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestDepositScanSelectsScanMode(t *testing.T) {
	monitor := &fakeMonitor{scanResult: &entities.ScanResult{
		Deposited: true,
		Amount:    decimal.RequireFromString("150"),
		Count:     1,
		Scanned:   3,
		Message:   "credited 1 of 3 scanned transfers",
	}}

	rec, body := invoke(t, monitor, `{"user_id":"user-a"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, monitor.scanCalls)
	assert.Zero(t, monitor.manualCalls)
	assert.Equal(t, "user-a", monitor.scanUserID)
	assert.Equal(t, true, body["deposited"])
	assert.Equal(t, float64(150), body["amount"])
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, float64(3), body["scanned"])
	assert.Equal(t, false, body["usedRPC"])
}

func TestDepositScanSelectsManualMode(t *testing.T) {
	monitor := &fakeMonitor{manualResult: &entities.ManualCreditResult{
		Deposited: true,
		Amount:    decimal.RequireFromString("150"),
		Credited:  decimal.RequireFromString("150"),
		Success:   true,
	}}

	rec, body := invoke(t, monitor, `{"tx_hash":"0xtx1","amount":150,"from_address":"0xaaa"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, monitor.manualCalls)
	assert.Zero(t, monitor.scanCalls)
	assert.Equal(t, "0xtx1", monitor.manualReq.TxHash)
	assert.True(t, monitor.manualReq.Amount.Equal(decimal.RequireFromString("150")))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(150), body["credited"])
}

func TestDepositScanPartialManualFieldsFallBackToScan(t *testing.T) {
	monitor := &fakeMonitor{scanResult: &entities.ScanResult{Amount: decimal.Zero}}

	rec, _ := invoke(t, monitor, `{"tx_hash":"0xtx1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, monitor.scanCalls)
	assert.Zero(t, monitor.manualCalls)
}

func TestDepositScanValidationErrorIs400(t *testing.T) {
	monitor := &fakeMonitor{manualErr: &entities.ValidationError{
		Field:  "contract_address",
		Reason: "0xbad is not the allow-listed staking token",
	}}

	rec, body := invoke(t, monitor, `{"tx_hash":"0xtx1","amount":1,"from_address":"0xaaa","contract_address":"0xbad"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "contract_address")
}

func TestDepositScanConfigErrorIs500(t *testing.T) {
	monitor := &fakeMonitor{scanErr: entities.ErrMissingHotWallet}

	rec, body := invoke(t, monitor, `{}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, body["error"])
}
