package diag_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encorelab/moment-nft-service/internal/diag"
	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/mocks"
	"github.com/encorelab/moment-nft-service/internal/store/schema"
)

func newService(t *testing.T) (diag.Service, *mocks.MockGateway, *mocks.MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	gateway := mocks.NewMockGateway(ctrl)
	st := mocks.NewMockStore(ctrl)
	return diag.New(gateway, st), gateway, st
}

func ledgerRow(momentID uint64) *schema.Edition {
	return &schema.Edition{
		ID:             5,
		MomentID:       momentID,
		Status:         domain.EditionStatusActive,
		PriceWei:       "30000000000000000",
		WindowEnd:      time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		MaxSupply:      100,
		MintedCount:    12,
		CreationTxHash: "0xcreate",
	}
}

func chainView(momentID uint64) *domain.EditionView {
	return &domain.EditionView{
		MomentID:  momentID,
		PriceWei:  big.NewInt(30_000_000_000_000_000),
		EndTime:   time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		MaxSupply: 100,
		Minted:    12,
		Active:    true,
		Rarity:    4,
	}
}

func TestSnapshot_Converged(t *testing.T) {
	svc, gateway, st := newService(t)
	ctx := context.Background()

	st.EXPECT().GetEditionByMomentID(ctx, uint64(42)).Return(ledgerRow(42), nil)
	st.EXPECT().SumMintQuantities(ctx, uint64(5)).Return(uint64(12), nil)
	gateway.EXPECT().GetEdition(ctx, uint64(42)).Return(chainView(42), nil)

	report, err := svc.Snapshot(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, report.Ledger)
	require.NotNil(t, report.Chain)
	assert.Empty(t, report.Drift)
	assert.Equal(t, uint64(12), report.Ledger.RecordedMints)
}

func TestSnapshot_MintedCountDrift(t *testing.T) {
	svc, gateway, st := newService(t)
	ctx := context.Background()

	row := ledgerRow(42)
	row.MintedCount = 10
	st.EXPECT().GetEditionByMomentID(ctx, uint64(42)).Return(row, nil)
	st.EXPECT().SumMintQuantities(ctx, uint64(5)).Return(uint64(10), nil)
	gateway.EXPECT().GetEdition(ctx, uint64(42)).Return(chainView(42), nil)

	report, err := svc.Snapshot(ctx, 42)
	require.NoError(t, err)
	require.Len(t, report.Drift, 2)
	assert.Contains(t, report.Drift[0], "minted count mismatch")
	assert.Contains(t, report.Drift[1], "mint records sum")
}

func TestSnapshot_ChainOnly(t *testing.T) {
	svc, gateway, st := newService(t)
	ctx := context.Background()

	st.EXPECT().GetEditionByMomentID(ctx, uint64(42)).Return(nil, nil)
	gateway.EXPECT().GetEdition(ctx, uint64(42)).Return(chainView(42), nil)

	report, err := svc.Snapshot(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, report.Ledger)
	require.Len(t, report.Drift, 1)
	assert.Contains(t, report.Drift[0], "no ledger row")
}

func TestSnapshot_LedgerOnly(t *testing.T) {
	svc, gateway, st := newService(t)
	ctx := context.Background()

	st.EXPECT().GetEditionByMomentID(ctx, uint64(42)).Return(ledgerRow(42), nil)
	st.EXPECT().SumMintQuantities(ctx, uint64(5)).Return(uint64(12), nil)
	gateway.EXPECT().GetEdition(ctx, uint64(42)).Return(nil, nil)

	report, err := svc.Snapshot(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, report.Chain)
	require.Len(t, report.Drift, 1)
	assert.Contains(t, report.Drift[0], "no edition on chain")
}

func TestSnapshot_PendingWithoutChainIsNotDrift(t *testing.T) {
	svc, gateway, st := newService(t)
	ctx := context.Background()

	row := ledgerRow(42)
	row.Status = domain.EditionStatusPendingCreation
	st.EXPECT().GetEditionByMomentID(ctx, uint64(42)).Return(row, nil)
	st.EXPECT().SumMintQuantities(ctx, uint64(5)).Return(uint64(0), nil)
	gateway.EXPECT().GetEdition(ctx, uint64(42)).Return(nil, nil)

	report, err := svc.Snapshot(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, report.Drift)
}

func TestSnapshot_NothingAnywhere(t *testing.T) {
	svc, gateway, st := newService(t)
	ctx := context.Background()

	st.EXPECT().GetEditionByMomentID(ctx, uint64(42)).Return(nil, nil)
	gateway.EXPECT().GetEdition(ctx, uint64(42)).Return(nil, nil)

	report, err := svc.Snapshot(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, report.Ledger)
	assert.Nil(t, report.Chain)
	assert.Empty(t, report.Drift)
}
