package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestMoment creates a moment row the editions under test hang off
func buildTestMoment(id uint64) *schema.Moment {
	title := fmt.Sprintf("Test Song %d", id)
	return &schema.Moment{
		ID:               id,
		OwnerAddress:     "0x1234567890123456789012345678901234567890",
		Kind:             domain.KindSong,
		SongTitle:        &title,
		PerformanceCount: 12,
		PerformanceDate:  time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC),
		DurationSeconds:  180,
	}
}

// buildTestEdition creates an edition input for a moment
func buildTestEdition(momentID uint64) *schema.Edition {
	now := time.Now().UTC().Truncate(time.Second)
	return &schema.Edition{
		MomentID:        momentID,
		MetadataURI:     fmt.Sprintf("https://example.com/api/v1/moments/%d/nft-metadata", momentID),
		PriceWei:        "30000000000000000",
		WindowStart:     now,
		WindowEnd:       now.Add(7 * 24 * time.Hour),
		MaxSupply:       100,
		RarityTier:      domain.TierRare,
		Rarity:          4,
		ContractAddress: "0x1111111111111111111111111111111111111111",
	}
}

// buildTestMintRecord creates a mint record input for an edition
func buildTestMintRecord(editionID uint64, txHash string, quantity uint64) *schema.MintRecord {
	return &schema.MintRecord{
		EditionID:     editionID,
		MinterAddress: "0x2222222222222222222222222222222222222222",
		Quantity:      quantity,
		TxHash:        txHash,
		ConfirmedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

// seedMoment inserts a moment row directly
func seedMoment(t *testing.T, store Store, id uint64) {
	t.Helper()
	pg, ok := store.(*pgStore)
	require.True(t, ok)
	require.NoError(t, pg.db.Create(buildTestMoment(id)).Error)
}

// seedActiveEdition seeds a moment plus an active edition and returns the row
func seedActiveEdition(t *testing.T, store Store, momentID uint64) *schema.Edition {
	t.Helper()
	ctx := context.Background()
	seedMoment(t, store, momentID)

	edition := buildTestEdition(momentID)
	edition.CreationTxHash = fmt.Sprintf("0xcreate%d", momentID)
	activated, err := store.ActivateEdition(ctx, edition)
	require.NoError(t, err)
	require.True(t, activated)

	row, err := store.GetEditionByMomentID(ctx, momentID)
	require.NoError(t, err)
	require.NotNil(t, row)
	return row
}

// =============================================================================
// Tests
// =============================================================================

func testGetMoment(t *testing.T, store Store) {
	ctx := context.Background()
	seedMoment(t, store, 101)

	moment, err := store.GetMoment(ctx, 101)
	require.NoError(t, err)
	require.NotNil(t, moment)
	assert.Equal(t, uint64(101), moment.ID)
	assert.Equal(t, domain.KindSong, moment.Kind)
	require.NotNil(t, moment.SongTitle)
	assert.Equal(t, "Test Song 101", *moment.SongTitle)

	// Absent moments read back as nil, not an error
	absent, err := store.GetMoment(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func testInsertPendingEdition(t *testing.T, store Store) {
	ctx := context.Background()
	seedMoment(t, store, 102)

	inserted, err := store.InsertPendingEdition(ctx, buildTestEdition(102))
	require.NoError(t, err)
	assert.True(t, inserted)

	row, err := store.GetEditionByMomentID(ctx, 102)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, domain.EditionStatusPendingCreation, row.Status)
	assert.Equal(t, "30000000000000000", row.PriceWei)
	assert.Empty(t, row.CreationTxHash)

	// A second dispatch for the same moment loses the unique-index race
	inserted, err = store.InsertPendingEdition(ctx, buildTestEdition(102))
	require.NoError(t, err)
	assert.False(t, inserted)
}

func testDeletePendingEdition(t *testing.T, store Store) {
	ctx := context.Background()
	seedMoment(t, store, 103)

	inserted, err := store.InsertPendingEdition(ctx, buildTestEdition(103))
	require.NoError(t, err)
	require.True(t, inserted)

	require.NoError(t, store.DeletePendingEdition(ctx, 103))

	row, err := store.GetEditionByMomentID(ctx, 103)
	require.NoError(t, err)
	assert.Nil(t, row)

	// Deleting after activation is a no-op: active rows are never removed
	seedActiveEdition(t, store, 104)
	require.NoError(t, store.DeletePendingEdition(ctx, 104))

	row, err = store.GetEditionByMomentID(ctx, 104)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, domain.EditionStatusActive, row.Status)
}

func testActivateEdition(t *testing.T, store Store) {
	ctx := context.Background()

	// Insert when no pending row exists
	seedMoment(t, store, 105)
	edition := buildTestEdition(105)
	edition.CreationTxHash = "0xcreate105"
	activated, err := store.ActivateEdition(ctx, edition)
	require.NoError(t, err)
	assert.True(t, activated)

	row, err := store.GetEditionByMomentID(ctx, 105)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, domain.EditionStatusActive, row.Status)
	assert.Equal(t, "0xcreate105", row.CreationTxHash)

	// Promote a pending row in place
	seedMoment(t, store, 106)
	inserted, err := store.InsertPendingEdition(ctx, buildTestEdition(106))
	require.NoError(t, err)
	require.True(t, inserted)

	confirmed := buildTestEdition(106)
	confirmed.CreationTxHash = "0xcreate106"
	confirmed.PriceWei = "50000000000000000"
	activated, err = store.ActivateEdition(ctx, confirmed)
	require.NoError(t, err)
	assert.True(t, activated)

	row, err = store.GetEditionByMomentID(ctx, 106)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, domain.EditionStatusActive, row.Status)
	assert.Equal(t, "0xcreate106", row.CreationTxHash)
	assert.Equal(t, "50000000000000000", row.PriceWei)

	// An already-active row is left untouched
	overwrite := buildTestEdition(106)
	overwrite.CreationTxHash = "0xother"
	overwrite.PriceWei = "99999999999999999"
	activated, err = store.ActivateEdition(ctx, overwrite)
	require.NoError(t, err)
	assert.False(t, activated)

	row, err = store.GetEditionByMomentID(ctx, 106)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "0xcreate106", row.CreationTxHash)
	assert.Equal(t, "50000000000000000", row.PriceWei)
}

func testInsertMintRecord(t *testing.T, store Store) {
	ctx := context.Background()
	edition := seedActiveEdition(t, store, 107)

	inserted, err := store.InsertMintRecord(ctx, buildTestMintRecord(edition.ID, "0xmint1", 2))
	require.NoError(t, err)
	assert.True(t, inserted)

	row, err := store.GetEditionByMomentID(ctx, 107)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, uint64(2), row.MintedCount)

	// Replaying the same transaction hash inserts nothing and increments nothing
	inserted, err = store.InsertMintRecord(ctx, buildTestMintRecord(edition.ID, "0xmint1", 2))
	require.NoError(t, err)
	assert.False(t, inserted)

	row, err = store.GetEditionByMomentID(ctx, 107)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), row.MintedCount)

	// A distinct transaction increments by its own quantity
	inserted, err = store.InsertMintRecord(ctx, buildTestMintRecord(edition.ID, "0xmint2", 3))
	require.NoError(t, err)
	assert.True(t, inserted)

	row, err = store.GetEditionByMomentID(ctx, 107)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), row.MintedCount)
}

func testSumMintQuantities(t *testing.T, store Store) {
	ctx := context.Background()
	edition := seedActiveEdition(t, store, 108)

	// No records yet
	total, err := store.SumMintQuantities(ctx, edition.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total)

	for i, quantity := range []uint64{1, 4, 2} {
		inserted, err := store.InsertMintRecord(ctx, buildTestMintRecord(edition.ID, fmt.Sprintf("0xsum%d", i), quantity))
		require.NoError(t, err)
		require.True(t, inserted)
	}

	total, err = store.SumMintQuantities(ctx, edition.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), total)
}

func testSetEditionStatus(t *testing.T, store Store) {
	ctx := context.Background()
	seedActiveEdition(t, store, 109)

	require.NoError(t, store.SetEditionStatus(ctx, 109, domain.EditionStatusEnded))

	row, err := store.GetEditionByMomentID(ctx, 109)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, domain.EditionStatusEnded, row.Status)
}

func testSetMintedCount(t *testing.T, store Store) {
	ctx := context.Background()
	seedActiveEdition(t, store, 110)

	require.NoError(t, store.SetMintedCount(ctx, 110, 42))

	row, err := store.GetEditionByMomentID(ctx, 110)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, uint64(42), row.MintedCount)
}

func testUpsertEditionFromChain(t *testing.T, store Store) {
	ctx := context.Background()

	// Insert when the ledger row is missing entirely
	seedMoment(t, store, 111)
	edition := buildTestEdition(111)
	edition.Status = domain.EditionStatusActive
	edition.MintedCount = 10
	require.NoError(t, store.UpsertEditionFromChain(ctx, edition))

	row, err := store.GetEditionByMomentID(ctx, 111)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, domain.EditionStatusActive, row.Status)
	assert.Equal(t, uint64(10), row.MintedCount)

	// Overwrite an existing row with the chain-authoritative values
	update := buildTestEdition(111)
	update.Status = domain.EditionStatusEnded
	update.MintedCount = 100
	update.CreationTxHash = "0xchain111"
	require.NoError(t, store.UpsertEditionFromChain(ctx, update))

	row, err = store.GetEditionByMomentID(ctx, 111)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, domain.EditionStatusEnded, row.Status)
	assert.Equal(t, uint64(100), row.MintedCount)
	assert.Equal(t, "0xchain111", row.CreationTxHash)
}

func testCreateConsistencyFault(t *testing.T, store Store) {
	ctx := context.Background()
	seedMoment(t, store, 112)

	fault := &schema.ConsistencyFault{
		ID:       "01JD0000000000000000000000",
		MomentID: 112,
		Detail:   []byte(`{"reason":"edition missing on chain"}`),
	}
	require.NoError(t, store.CreateConsistencyFault(ctx, fault))

	pg, ok := store.(*pgStore)
	require.True(t, ok)

	var stored schema.ConsistencyFault
	require.NoError(t, pg.db.Where("moment_id = ?", uint64(112)).First(&stored).Error)
	assert.Equal(t, fault.ID, stored.ID)
	assert.False(t, stored.Resolved)
	assert.JSONEq(t, `{"reason":"edition missing on chain"}`, string(stored.Detail))
}

func testGetUnresolvedFault(t *testing.T, store Store) {
	ctx := context.Background()
	seedMoment(t, store, 116)

	fault, err := store.GetUnresolvedFault(ctx, 116)
	require.NoError(t, err)
	assert.Nil(t, fault)

	require.NoError(t, store.CreateConsistencyFault(ctx, &schema.ConsistencyFault{
		ID:       "01JD0000000000000000000001",
		MomentID: 116,
		Detail:   []byte(`{"reason":"edition missing on chain"}`),
	}))

	fault, err = store.GetUnresolvedFault(ctx, 116)
	require.NoError(t, err)
	require.NotNil(t, fault)
	assert.Equal(t, "01JD0000000000000000000001", fault.ID)

	// A resolved fault no longer blocks; the moment reads clean again
	pg, ok := store.(*pgStore)
	require.True(t, ok)
	require.NoError(t, pg.db.Model(&schema.ConsistencyFault{}).
		Where("id = ?", "01JD0000000000000000000001").
		Update("resolved", true).Error)

	fault, err = store.GetUnresolvedFault(ctx, 116)
	require.NoError(t, err)
	assert.Nil(t, fault)
}

func testListEditionsByStatus(t *testing.T, store Store) {
	ctx := context.Background()

	for _, id := range []uint64{113, 114, 115} {
		seedActiveEdition(t, store, id)
	}
	require.NoError(t, store.SetEditionStatus(ctx, 115, domain.EditionStatusEnded))

	cutoff := time.Now().UTC().Add(time.Hour)

	active, err := store.ListEditionsByStatus(ctx, domain.EditionStatusActive, cutoff, 10)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, row := range active {
		assert.Equal(t, domain.EditionStatusActive, row.Status)
	}

	// A cutoff in the past excludes everything
	none, err := store.ListEditionsByStatus(ctx, domain.EditionStatusActive, time.Now().UTC().Add(-time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, none)

	// Limit pages the batch
	limited, err := store.ListEditionsByStatus(ctx, domain.EditionStatusActive, cutoff, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

// RunStoreTests runs the shared store test suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"GetMoment", testGetMoment},
		{"InsertPendingEdition", testInsertPendingEdition},
		{"DeletePendingEdition", testDeletePendingEdition},
		{"ActivateEdition", testActivateEdition},
		{"InsertMintRecord", testInsertMintRecord},
		{"SumMintQuantities", testSumMintQuantities},
		{"SetEditionStatus", testSetEditionStatus},
		{"SetMintedCount", testSetMintedCount},
		{"UpsertEditionFromChain", testUpsertEditionFromChain},
		{"CreateConsistencyFault", testCreateConsistencyFault},
		{"GetUnresolvedFault", testGetUnresolvedFault},
		{"ListEditionsByStatus", testListEditionsByStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
