package ledger_test

import (
	"context"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/ledger"
	"github.com/encorelab/moment-nft-service/internal/logger"
	"github.com/encorelab/moment-nft-service/internal/messaging"
	"github.com/encorelab/moment-nft-service/internal/mocks"
	"github.com/encorelab/moment-nft-service/internal/store/schema"
)

const (
	testContract = "0x1111111111111111111111111111111111111111"
	testTxHash   = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	otherTxHash  = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func fixedClock(ctrl *gomock.Controller, at time.Time) *mocks.MockClock {
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(at).AnyTimes()
	return clock
}

func chainView(minted, maxSupply uint64) *domain.EditionView {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return &domain.EditionView{
		MomentID:    42,
		MetadataURI: "https://moments.example.com/api/v1/moments/42/nft-metadata",
		PriceWei:    big.NewInt(30_000_000_000_000_000),
		StartTime:   start,
		EndTime:     start.Add(7 * 24 * time.Hour),
		MaxSupply:   maxSupply,
		Minted:      minted,
		Active:      true,
		Rarity:      4,
	}
}

func TestLedger_MarkPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().InsertPendingEdition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *schema.Edition) (bool, error) {
			assert.Equal(t, uint64(42), e.MomentID)
			assert.Equal(t, "30000000000000000", e.PriceWei)
			assert.Equal(t, now, e.WindowStart)
			assert.Equal(t, now.Add(7*24*time.Hour), e.WindowEnd)
			return true, nil
		})

	led := ledger.New(st, messaging.NewNopPublisher(), fixedClock(ctrl, now))
	err := led.MarkPending(context.Background(), 42, domain.MintParams{
		PriceWei:     big.NewInt(30_000_000_000_000_000),
		DurationDays: 7,
		MaxSupply:    100,
		Rarity:       4,
		Tier:         domain.TierRare,
		MetadataURI:  "uri",
	}, testContract)
	require.NoError(t, err)
}

func TestLedger_MarkPending_SecondAttemptFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	st.EXPECT().InsertPendingEdition(gomock.Any(), gomock.Any()).Return(false, nil)

	led := ledger.New(st, messaging.NewNopPublisher(), fixedClock(ctrl, time.Now()))
	err := led.MarkPending(context.Background(), 42, domain.MintParams{
		PriceWei: big.NewInt(1), DurationDays: 1,
	}, testContract)
	assert.ErrorIs(t, err, domain.ErrEditionExists)
}

func TestLedger_RecordCreation_PublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(nil, nil)
	st.EXPECT().ActivateEdition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *schema.Edition) (bool, error) {
			assert.Equal(t, testTxHash, e.CreationTxHash)
			assert.Equal(t, domain.TierRare, e.RarityTier)
			return true, nil
		})

	pub := mocks.NewMockPublisher(ctrl)
	pub.EXPECT().PublishLedgerEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *messaging.LedgerEvent) error {
			assert.Equal(t, messaging.EventEditionCreated, event.Type)
			assert.Equal(t, uint64(42), event.MomentID)
			return nil
		})

	led := ledger.New(st, pub, fixedClock(ctrl, time.Now()))
	err := led.RecordCreation(context.Background(), 42, testTxHash, testContract, domain.TierRare, chainView(0, 100))
	require.NoError(t, err)
}

func TestLedger_RecordCreation_ReplayIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(&schema.Edition{
		MomentID:       42,
		Status:         domain.EditionStatusActive,
		CreationTxHash: testTxHash,
	}, nil)

	led := ledger.New(st, messaging.NewNopPublisher(), fixedClock(ctrl, time.Now()))
	err := led.RecordCreation(context.Background(), 42, testTxHash, testContract, domain.TierRare, chainView(0, 100))
	assert.NoError(t, err)
}

func TestLedger_RecordCreation_NeverSilentlyOverwrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(&schema.Edition{
		MomentID:       42,
		Status:         domain.EditionStatusActive,
		CreationTxHash: testTxHash,
	}, nil)

	led := ledger.New(st, messaging.NewNopPublisher(), fixedClock(ctrl, time.Now()))
	err := led.RecordCreation(context.Background(), 42, otherTxHash, testContract, domain.TierRare, chainView(0, 100))
	assert.ErrorIs(t, err, domain.ErrEditionExists)
}

func TestLedger_RecordCreation_LostRaceResolvesAgainstLandedRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	// First read sees the pending row this caller dispatched
	st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(&schema.Edition{
		MomentID: 42,
		Status:   domain.EditionStatusPendingCreation,
	}, nil)
	// Activation conflicts; the winner's row carries a different tx hash
	st.EXPECT().ActivateEdition(gomock.Any(), gomock.Any()).Return(false, nil)
	st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(&schema.Edition{
		MomentID:       42,
		Status:         domain.EditionStatusActive,
		CreationTxHash: testTxHash,
	}, nil)

	led := ledger.New(st, messaging.NewNopPublisher(), fixedClock(ctrl, time.Now()))
	err := led.RecordCreation(context.Background(), 42, otherTxHash, testContract, domain.TierRare, chainView(0, 100))
	assert.ErrorIs(t, err, domain.ErrEditionExists)
}

func TestLedger_RecordCreation_RequiresChainView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	led := ledger.New(mocks.NewMockStore(ctrl), messaging.NewNopPublisher(), fixedClock(ctrl, time.Now()))
	err := led.RecordCreation(context.Background(), 42, testTxHash, testContract, domain.TierRare, nil)
	assert.ErrorIs(t, err, domain.ErrEditionNotFound)
}

func TestLedger_RecordMint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(&schema.Edition{
		ID:          7,
		MomentID:    42,
		Status:      domain.EditionStatusActive,
		MaxSupply:   100,
		MintedCount: 10,
	}, nil)
	st.EXPECT().InsertMintRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *schema.MintRecord) (bool, error) {
			assert.Equal(t, uint64(7), r.EditionID)
			assert.Equal(t, uint64(3), r.Quantity)
			assert.Equal(t, testTxHash, r.TxHash)
			return true, nil
		})

	pub := mocks.NewMockPublisher(ctrl)
	pub.EXPECT().PublishLedgerEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *messaging.LedgerEvent) error {
			assert.Equal(t, messaging.EventMintRecorded, event.Type)
			assert.Equal(t, uint64(13), event.MintedCount)
			return nil
		})

	led := ledger.New(st, pub, fixedClock(ctrl, time.Now()))
	recorded, err := led.RecordMint(context.Background(), 42, "0xminter", 3, testTxHash, time.Now())
	require.NoError(t, err)
	assert.True(t, recorded)
}

func TestLedger_RecordMint_DuplicateTxHashIsAbsorbed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(&schema.Edition{
		ID:       7,
		MomentID: 42,
		Status:   domain.EditionStatusActive,
	}, nil)
	st.EXPECT().InsertMintRecord(gomock.Any(), gomock.Any()).Return(false, nil)

	led := ledger.New(st, messaging.NewNopPublisher(), fixedClock(ctrl, time.Now()))
	recorded, err := led.RecordMint(context.Background(), 42, "0xminter", 3, testTxHash, time.Now())
	require.NoError(t, err)
	assert.False(t, recorded)
}

func TestLedger_RecordMint_SellOutEndsEdition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(&schema.Edition{
		ID:          7,
		MomentID:    42,
		Status:      domain.EditionStatusActive,
		MaxSupply:   10,
		MintedCount: 9,
	}, nil)
	st.EXPECT().InsertMintRecord(gomock.Any(), gomock.Any()).Return(true, nil)
	st.EXPECT().SetEditionStatus(gomock.Any(), uint64(42), domain.EditionStatusEnded).Return(nil)

	pub := mocks.NewMockPublisher(ctrl)
	events := []messaging.EventType{}
	pub.EXPECT().PublishLedgerEvent(gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, event *messaging.LedgerEvent) error {
			events = append(events, event.Type)
			return nil
		})

	led := ledger.New(st, pub, fixedClock(ctrl, time.Now()))
	recorded, err := led.RecordMint(context.Background(), 42, "0xminter", 1, testTxHash, time.Now())
	require.NoError(t, err)
	assert.True(t, recorded)
	assert.Equal(t, []messaging.EventType{messaging.EventMintRecorded, messaging.EventEditionEnded}, events)
}

func TestLedger_RecordMint_NoEdition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(nil, nil)

	led := ledger.New(st, messaging.NewNopPublisher(), fixedClock(ctrl, time.Now()))
	_, err := led.RecordMint(context.Background(), 42, "0xminter", 1, testTxHash, time.Now())
	assert.ErrorIs(t, err, domain.ErrEditionNotFound)
}

func TestLedger_Status(t *testing.T) {
	windowStart := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(7 * 24 * time.Hour)

	t.Run("no edition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(nil, nil)

		led := ledger.New(st, messaging.NewNopPublisher(), fixedClock(ctrl, windowStart))
		view, err := led.Status(context.Background(), 42)
		require.NoError(t, err)
		assert.False(t, view.HasEdition)
		assert.False(t, view.IsActive)
	})

	t.Run("pending creation reads as no edition yet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(&schema.Edition{
			MomentID: 42,
			Status:   domain.EditionStatusPendingCreation,
		}, nil)

		led := ledger.New(st, messaging.NewNopPublisher(), fixedClock(ctrl, windowStart))
		view, err := led.Status(context.Background(), 42)
		require.NoError(t, err)
		assert.False(t, view.HasEdition)
		assert.False(t, view.IsActive)
	})

	t.Run("active inside the window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(&schema.Edition{
			MomentID:    42,
			Status:      domain.EditionStatusActive,
			WindowStart: windowStart,
			WindowEnd:   windowEnd,
			MintedCount: 5,
			PriceWei:    "30000000000000000",
			RarityTier:  domain.TierRare,
		}, nil)

		led := ledger.New(st, messaging.NewNopPublisher(), fixedClock(ctrl, windowStart.Add(24*time.Hour)))
		view, err := led.Status(context.Background(), 42)
		require.NoError(t, err)
		assert.True(t, view.HasEdition)
		assert.True(t, view.IsActive)
		assert.Equal(t, uint64(5), view.MintedCount)
		assert.Equal(t, domain.TierRare, view.RarityTier)
	})

	t.Run("window expiry lazily ends the edition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(&schema.Edition{
			MomentID:    42,
			Status:      domain.EditionStatusActive,
			WindowStart: windowStart,
			WindowEnd:   windowEnd,
		}, nil)
		st.EXPECT().SetEditionStatus(gomock.Any(), uint64(42), domain.EditionStatusEnded).Return(nil)

		led := ledger.New(st, messaging.NewNopPublisher(), fixedClock(ctrl, windowEnd.Add(time.Hour)))
		view, err := led.Status(context.Background(), 42)
		require.NoError(t, err)
		assert.True(t, view.HasEdition, "ended editions remain on the ledger")
		assert.False(t, view.IsActive)
	})

	t.Run("sold out edition lazily ends", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(&schema.Edition{
			MomentID:    42,
			Status:      domain.EditionStatusActive,
			WindowStart: windowStart,
			WindowEnd:   windowEnd,
			MaxSupply:   10,
			MintedCount: 10,
		}, nil)
		st.EXPECT().SetEditionStatus(gomock.Any(), uint64(42), domain.EditionStatusEnded).Return(nil)

		led := ledger.New(st, messaging.NewNopPublisher(), fixedClock(ctrl, windowStart.Add(time.Hour)))
		view, err := led.Status(context.Background(), 42)
		require.NoError(t, err)
		assert.True(t, view.HasEdition)
		assert.False(t, view.IsActive)
	})
}

func TestLedger_PublishFailureNeverFailsTheWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	st.EXPECT().GetEditionByMomentID(gomock.Any(), uint64(42)).Return(&schema.Edition{
		ID: 7, MomentID: 42, Status: domain.EditionStatusActive,
	}, nil)
	st.EXPECT().InsertMintRecord(gomock.Any(), gomock.Any()).Return(true, nil)

	pub := mocks.NewMockPublisher(ctrl)
	pub.EXPECT().PublishLedgerEvent(gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	led := ledger.New(st, pub, fixedClock(ctrl, time.Now()))
	recorded, err := led.RecordMint(context.Background(), 42, "0xminter", 1, testTxHash, time.Now())
	require.NoError(t, err)
	assert.True(t, recorded)
}
