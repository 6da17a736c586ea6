package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rosspathan/ipg-staking-monitor/internal/domain/entities"
	domainRepos "github.com/rosspathan/ipg-staking-monitor/internal/domain/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	hotWallet = "0xc0ffee0000000000000000000000000000000001"
	senderA   = "0xaaa1111111111111111111111111111111111111"
	senderB   = "0xbbb2222222222222222222222222222222222222"
)

type fakeConfigRepo struct {
	cfg *entities.StakingConfig
	err error
}

func (f *fakeConfigRepo) GetActive(ctx context.Context) (*entities.StakingConfig, error) {
	return f.cfg, f.err
}

type fakeLedgerRepo struct {
	hashes map[string]bool
	err    error
}

func (f *fakeLedgerRepo) ExistsByTxHash(ctx context.Context, txHash string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.hashes[txHash], nil
}

func (f *fakeLedgerRepo) GetByTxHash(ctx context.Context, txHash string) (*entities.LedgerEntry, error) {
	return nil, nil
}

type creditCall struct {
	userID string
	amount decimal.Decimal
	txHash string
}

// fakeBalanceService shares the ledger hash set with the idempotency
// guard, the way the real updater shares the ledger table with it.
type fakeBalanceService struct {
	ledger  *fakeLedgerRepo
	credits []creditCall
	err     error
}

func (f *fakeBalanceService) Credit(ctx context.Context, userID string, amount decimal.Decimal, txHash, fromAddress, currency string) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	if f.ledger.hashes[txHash] {
		return decimal.Zero, nil
	}
	f.ledger.hashes[txHash] = true
	f.credits = append(f.credits, creditCall{userID: userID, amount: amount, txHash: txHash})
	return amount, nil
}

type notifyCall struct {
	transfer     entities.TokenTransfer
	candidateIDs []string
}

type fakeNotifier struct {
	calls []notifyCall
	err   error
}

func (f *fakeNotifier) NotifyAmbiguousDeposit(ctx context.Context, transfer entities.TokenTransfer, candidateIDs []string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, notifyCall{transfer: transfer, candidateIDs: candidateIDs})
	return nil
}

type fakeAdapter struct {
	name      string
	transfers []entities.TokenTransfer
	err       error
	calls     int
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) FetchIncomingTransfers(ctx context.Context, hotWallet string) ([]entities.TokenTransfer, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.transfers, nil
}

type recordingResolver struct {
	resolution *entities.Resolution
	calls      int
}

func (f *recordingResolver) Resolve(ctx context.Context, fromAddress string) (*entities.Resolution, error) {
	f.calls++
	return f.resolution, nil
}

type monitorFixture struct {
	config   *fakeConfigRepo
	ledger   *fakeLedgerRepo
	profiles *fakeProfileRepo
	balance  *fakeBalanceService
	notifier *fakeNotifier
	primary  *fakeAdapter
	fallback *fakeAdapter
	svc      domainRepos.DepositMonitorService
}

func newMonitorFixture(t *testing.T) *monitorFixture {
	t.Helper()

	ledger := &fakeLedgerRepo{hashes: map[string]bool{}}
	profiles := &fakeProfileRepo{
		byAddress: map[string][]entities.WalletProfile{
			senderA: {{UserID: "user-a", BSCWalletAddress: senderA}},
		},
		byUser: map[string]*entities.WalletProfile{
			"user-a": {UserID: "user-a", BSCWalletAddress: senderA},
		},
	}
	f := &monitorFixture{
		config:   &fakeConfigRepo{cfg: &entities.StakingConfig{ID: 1, HotWalletAddress: hotWallet, Active: true}},
		ledger:   ledger,
		profiles: profiles,
		balance:  &fakeBalanceService{ledger: ledger},
		notifier: &fakeNotifier{},
		primary:  &fakeAdapter{name: "bscscan"},
		fallback: &fakeAdapter{name: "rpc"},
	}
	f.svc = NewDepositMonitorService(
		f.config, f.ledger, f.profiles,
		NewSenderResolver(f.profiles, zap.NewNop()),
		f.balance, f.notifier, f.primary, f.fallback,
		"BSK", zap.NewNop(),
	)
	return f
}

func transfer(txHash, from, amount string) entities.TokenTransfer {
	return entities.TokenTransfer{
		TxHash: txHash,
		From:   from,
		Amount: decimal.RequireFromString(amount),
	}
}

func TestScanMissingHotWalletIsFatal(t *testing.T) {
	f := newMonitorFixture(t)
	f.config.cfg = nil

	_, err := f.svc.Scan(context.Background(), "")
	require.ErrorIs(t, err, entities.ErrMissingHotWallet)
	assert.Zero(t, f.primary.calls, "nothing may be fetched without a hot wallet")
}

func TestScanCreditsResolvedTransfer(t *testing.T) {
	f := newMonitorFixture(t)
	f.primary.transfers = []entities.TokenTransfer{transfer("0xtx1", senderA, "150")}

	result, err := f.svc.Scan(context.Background(), "")
	require.NoError(t, err)

	assert.True(t, result.Deposited)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 1, result.Scanned)
	assert.False(t, result.UsedRPC)
	assert.True(t, result.Amount.Equal(decimal.RequireFromString("150")))
	require.Len(t, f.balance.credits, 1)
	assert.Equal(t, "user-a", f.balance.credits[0].userID)
}

func TestScanFallbackOnlyWhenIndexerEmpty(t *testing.T) {
	f := newMonitorFixture(t)
	f.primary.transfers = []entities.TokenTransfer{transfer("0xtx1", senderA, "10")}
	f.fallback.transfers = []entities.TokenTransfer{transfer("0xtx2", senderA, "99")}

	result, err := f.svc.Scan(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, result.UsedRPC)
	assert.Equal(t, 1, f.primary.calls)
	assert.Zero(t, f.fallback.calls, "fallback must not run when the indexer returned transfers")
	require.Len(t, f.balance.credits, 1)
	assert.Equal(t, "0xtx1", f.balance.credits[0].txHash)
}

func TestScanFallsBackWhenIndexerEmpty(t *testing.T) {
	f := newMonitorFixture(t)
	f.fallback.transfers = []entities.TokenTransfer{transfer("0xtx2", senderA, "42")}

	result, err := f.svc.Scan(context.Background(), "")
	require.NoError(t, err)

	assert.True(t, result.UsedRPC)
	assert.Equal(t, 1, f.primary.calls)
	assert.Equal(t, 1, f.fallback.calls)
	assert.Equal(t, 1, result.Count)
}

func TestScanFallsBackWhenIndexerFails(t *testing.T) {
	f := newMonitorFixture(t)
	f.primary.err = errors.New("indexer down")
	f.fallback.transfers = []entities.TokenTransfer{transfer("0xtx3", senderA, "5")}

	result, err := f.svc.Scan(context.Background(), "")
	require.NoError(t, err)

	assert.True(t, result.UsedRPC)
	assert.Equal(t, 1, result.Count)
}

func TestScanBothAdaptersFailingIsNotFatal(t *testing.T) {
	f := newMonitorFixture(t)
	f.primary.err = errors.New("indexer down")
	f.fallback.err = errors.New("node down")

	result, err := f.svc.Scan(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, result.Deposited)
	assert.Zero(t, result.Scanned)
	assert.Contains(t, result.Message, "both chain adapters failed")
}

func TestScanIsIdempotentAcrossInvocations(t *testing.T) {
	// The same window scanned twice credits once: the second run's guard
	// sees the ledger row from the first.
	f := newMonitorFixture(t)
	f.primary.transfers = []entities.TokenTransfer{transfer("0xtx1", senderA, "150")}

	first, err := f.svc.Scan(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Count)

	second, err := f.svc.Scan(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Count)
	assert.False(t, second.Deposited)
	assert.True(t, second.Amount.IsZero())

	require.Len(t, f.balance.credits, 1)
	assert.True(t, f.balance.credits[0].amount.Equal(decimal.RequireFromString("150")))
}

func TestScanDuplicateWithinOneBatchCreditsOnce(t *testing.T) {
	f := newMonitorFixture(t)
	f.primary.transfers = []entities.TokenTransfer{
		transfer("0xtx1", senderA, "150"),
		transfer("0xtx1", senderA, "150"),
	}

	result, err := f.svc.Scan(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	assert.True(t, result.Amount.Equal(decimal.RequireFromString("150")))
	require.Len(t, f.balance.credits, 1)
}

func TestScanSkipsUnknownSender(t *testing.T) {
	f := newMonitorFixture(t)
	f.primary.transfers = []entities.TokenTransfer{transfer("0xtx9", senderB, "50")}

	result, err := f.svc.Scan(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, result.Deposited)
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, 1, result.Scanned)
	assert.Empty(t, result.Failed, "an unknown sender is a skip, not a batch error")
	assert.Empty(t, f.balance.credits)
	assert.Empty(t, f.notifier.calls)
}

func TestScanBlocksAndEscalatesAmbiguousSender(t *testing.T) {
	f := newMonitorFixture(t)
	f.profiles.byAddress[senderA] = []entities.WalletProfile{
		{UserID: "user-a", BSCWalletAddress: senderA},
		{UserID: "user-b", WalletAddress: senderA},
	}
	f.primary.transfers = []entities.TokenTransfer{transfer("0xtx7", senderA, "50")}

	result, err := f.svc.Scan(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Count)
	assert.Empty(t, f.balance.credits, "an ambiguous address must never be credited")
	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, []string{"user-a", "user-b"}, f.notifier.calls[0].candidateIDs)
	assert.Equal(t, "0xtx7", f.notifier.calls[0].transfer.TxHash)
}

func TestScanCreditFailureContinuesBatch(t *testing.T) {
	f := newMonitorFixture(t)
	f.balance.err = errors.New("db write failed")
	f.primary.transfers = []entities.TokenTransfer{
		transfer("0xtx1", senderA, "10"),
		transfer("0xtx2", senderA, "20"),
	}

	result, err := f.svc.Scan(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Count)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, "credit_failed", result.Failed[0].Reason)
	assert.Equal(t, "credit_failed", result.Failed[1].Reason)
}

func TestScanUserScopedFiltering(t *testing.T) {
	f := newMonitorFixture(t)
	f.profiles.byAddress[senderB] = []entities.WalletProfile{{UserID: "user-b", BSCWalletAddress: senderB}}
	f.profiles.byUser["user-b"] = &entities.WalletProfile{UserID: "user-b", BSCWalletAddress: senderB}
	f.primary.transfers = []entities.TokenTransfer{
		transfer("0xtx1", senderA, "10"),
		transfer("0xtx2", senderB, "20"),
	}

	result, err := f.svc.Scan(context.Background(), "user-b")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Scanned)
	require.Len(t, f.balance.credits, 1)
	assert.Equal(t, "user-b", f.balance.credits[0].userID)
	assert.Equal(t, "0xtx2", f.balance.credits[0].txHash)
}

func TestScanUserScopeWithoutProfileMatchesNothing(t *testing.T) {
	f := newMonitorFixture(t)
	f.primary.transfers = []entities.TokenTransfer{transfer("0xtx1", senderA, "10")}

	result, err := f.svc.Scan(context.Background(), "user-without-profile")
	require.NoError(t, err)

	assert.Zero(t, result.Scanned)
	assert.Empty(t, f.balance.credits)
}
