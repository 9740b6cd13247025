package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/lodgeworks/tesoro/internal/clock"
	"github.com/lodgeworks/tesoro/internal/config"
	ledgerdomain "github.com/lodgeworks/tesoro/internal/ledger/domain"
	ledgerrepository "github.com/lodgeworks/tesoro/internal/ledger/repository"
	"github.com/lodgeworks/tesoro/internal/lodgectx"
	memberdomain "github.com/lodgeworks/tesoro/internal/member/domain"
	memberrepository "github.com/lodgeworks/tesoro/internal/member/repository"
	pricingdomain "github.com/lodgeworks/tesoro/internal/pricing/domain"
	pricingrepository "github.com/lodgeworks/tesoro/internal/pricing/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func setupLedgerService(t *testing.T, fake *clock.FakeClock) (ledgerdomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&memberdomain.Member{},
		&pricingdomain.PriceHistoryEntry{},
		&ledgerdomain.Entry{},
	))

	svc := New(Params{
		Cfg:         config.Config{SyncWorkers: 4},
		DB:          db,
		Log:         zap.NewNop(),
		Clock:       fake,
		Repo:        ledgerrepository.Provide(),
		MemberRepo:  memberrepository.Provide(),
		PricingRepo: pricingrepository.Provide(),
	})
	return svc, db
}

func seedMember(t *testing.T, db *gorm.DB, node *snowflake.Node, lodgeID snowflake.ID, joinDate string) memberdomain.Member {
	t.Helper()
	now := time.Now().UTC()
	m := memberdomain.Member{
		ID:        node.Generate(),
		LodgeID:   lodgeID,
		Name:      "Test Member",
		Email:     "member@example.com",
		Active:    true,
		JoinDate:  joinDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func seedPrice(t *testing.T, db *gorm.DB, lodgeID snowflake.ID, startPeriod string, amount int64) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, db.Create(&pricingdomain.PriceHistoryEntry{
		LodgeID:     lodgeID,
		StartPeriod: startPeriod,
		Amount:      decimal.NewFromInt(amount),
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error)
}

func TestSyncMemberGeneratesOwedPeriods(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	fake := clock.NewFakeClock(time.Date(2024, time.April, 12, 9, 0, 0, 0, time.UTC))
	svc, db := setupLedgerService(t, fake)

	seedPrice(t, db, lodgeID, "2023-01", 200)
	m := seedMember(t, db, node, lodgeID, "2024-01-10")

	ops, err := svc.SyncMember(context.Background(), m.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 4, ops)

	entries, err := svc.ListEntries(context.Background(), m.ID.String())
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "2024-01", entries[0].Period)
	assert.Equal(t, "2024-04", entries[3].Period)
	for _, e := range entries {
		assert.True(t, decimal.NewFromInt(200).Equal(e.Amount), "period %s", e.Period)
		assert.Equal(t, ledgerdomain.StatusPending, e.Status)
	}

	stats, err := svc.MemberStats(context.Background(), m.ID.String(), "", "")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(800).Equal(stats.TotalBilled))
	assert.True(t, decimal.Zero.Equal(stats.TotalPaid))
	assert.True(t, decimal.NewFromInt(800).Equal(stats.TotalDebt))
}

func TestSyncMemberIdempotent(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	fake := clock.NewFakeClock(time.Date(2024, time.April, 12, 9, 0, 0, 0, time.UTC))
	svc, db := setupLedgerService(t, fake)

	seedPrice(t, db, lodgeID, "2023-01", 200)
	m := seedMember(t, db, node, lodgeID, "2024-01-10")

	ops, err := svc.SyncMember(context.Background(), m.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 4, ops)

	ops, err = svc.SyncMember(context.Background(), m.ID.String())
	require.NoError(t, err)
	assert.Zero(t, ops)
}

func TestSyncMemberSkipsInactive(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	fake := clock.NewFakeClock(time.Date(2024, time.April, 12, 9, 0, 0, 0, time.UTC))
	svc, db := setupLedgerService(t, fake)

	seedPrice(t, db, lodgeID, "2023-01", 200)
	m := seedMember(t, db, node, lodgeID, "2024-01-10")
	require.NoError(t, db.Exec(`UPDATE members SET active = ? WHERE id = ?`, false, m.ID).Error)

	ops, err := svc.SyncMember(context.Background(), m.ID.String())
	require.NoError(t, err)
	assert.Zero(t, ops)
}

func TestSyncMemberRequiresPriceHistory(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	fake := clock.NewFakeClock(time.Date(2024, time.April, 12, 9, 0, 0, 0, time.UTC))
	svc, db := setupLedgerService(t, fake)

	m := seedMember(t, db, node, lodgeID, "2024-01-10")

	_, err := svc.SyncMember(context.Background(), m.ID.String())
	assert.ErrorIs(t, err, ledgerdomain.ErrNoPriceHistory)
}

func TestSyncPreservesPaidEntriesOnPriceChange(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	fake := clock.NewFakeClock(time.Date(2024, time.April, 12, 9, 0, 0, 0, time.UTC))
	svc, db := setupLedgerService(t, fake)

	seedPrice(t, db, lodgeID, "2023-01", 200)
	m := seedMember(t, db, node, lodgeID, "2024-01-10")

	_, err := svc.SyncMember(context.Background(), m.ID.String())
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), ledgerdomain.RecordPaymentRequest{
		MemberID: m.ID.String(),
		Period:   "2024-01",
		Amount:   decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	// Retroactive price correction: unpaid entries follow, settled ones don't.
	seedPrice(t, db, lodgeID, "2024-01", 250)

	ops, err := svc.SyncMember(context.Background(), m.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 3, ops)

	entries, err := svc.ListEntries(context.Background(), m.ID.String())
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.True(t, decimal.NewFromInt(200).Equal(entries[0].Amount))
	assert.Equal(t, ledgerdomain.StatusPaid, entries[0].Status)
	for _, e := range entries[1:] {
		assert.True(t, decimal.NewFromInt(250).Equal(e.Amount), "period %s", e.Period)
	}
}

func TestSyncRosterCollectsPerMemberResults(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	fake := clock.NewFakeClock(time.Date(2024, time.April, 12, 9, 0, 0, 0, time.UTC))
	svc, db := setupLedgerService(t, fake)

	seedPrice(t, db, lodgeID, "2023-01", 100)
	seedMember(t, db, node, lodgeID, "2024-01-10")
	seedMember(t, db, node, lodgeID, "2024-03-01")

	ctx := lodgectx.WithLodgeID(context.Background(), lodgeID)
	report, err := svc.SyncRoster(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Members)
	assert.Equal(t, 6, report.TotalOps)
	assert.Empty(t, report.Failures)

	// A second pass finds nothing to do.
	report, err = svc.SyncRoster(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.TotalOps)
}

func TestSyncRosterRequiresLodgeContext(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, time.April, 12, 9, 0, 0, 0, time.UTC))
	svc, _ := setupLedgerService(t, fake)

	_, err := svc.SyncRoster(context.Background())
	assert.ErrorIs(t, err, ledgerdomain.ErrInvalidLodge)
}

func TestApplyExtraFeeAccumulates(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	fake := clock.NewFakeClock(time.Date(2024, time.April, 12, 9, 0, 0, 0, time.UTC))
	svc, db := setupLedgerService(t, fake)

	seedPrice(t, db, lodgeID, "2023-01", 100)
	m := seedMember(t, db, node, lodgeID, "2024-01-10")

	_, err := svc.SyncMember(context.Background(), m.ID.String())
	require.NoError(t, err)

	ctx := lodgectx.WithLodgeID(context.Background(), lodgeID)
	req := ledgerdomain.ExtraFeeRequest{
		Period:      "2024-02",
		Amount:      decimal.NewFromInt(50),
		Description: "annual banquet",
	}

	report, err := svc.ApplyExtraFee(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Applied)
	assert.Empty(t, report.Failures)

	report, err = svc.ApplyExtraFee(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Applied)

	entries, err := svc.ListEntries(context.Background(), m.ID.String())
	require.NoError(t, err)
	for _, e := range entries {
		if e.Period == "2024-02" {
			assert.True(t, decimal.NewFromInt(100).Equal(e.ExtraAmount))
			assert.Equal(t, "annual banquet", e.ExtraDescription)
		}
	}
}

func TestApplyExtraFeeCreatesMissingEntry(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	fake := clock.NewFakeClock(time.Date(2024, time.April, 12, 9, 0, 0, 0, time.UTC))
	svc, db := setupLedgerService(t, fake)

	seedPrice(t, db, lodgeID, "2023-01", 100)
	m := seedMember(t, db, node, lodgeID, "2024-01-10")

	ctx := lodgectx.WithLodgeID(context.Background(), lodgeID)
	_, err := svc.ApplyExtraFee(ctx, ledgerdomain.ExtraFeeRequest{
		Period: "2024-06",
		Amount: decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	entries, err := svc.ListEntries(context.Background(), m.ID.String())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-06", entries[0].Period)
	assert.True(t, decimal.Zero.Equal(entries[0].Amount))
	assert.True(t, decimal.NewFromInt(30).Equal(entries[0].ExtraAmount))
}

func TestRecordPaymentStatusTransitions(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	fake := clock.NewFakeClock(time.Date(2024, time.April, 12, 9, 0, 0, 0, time.UTC))
	svc, db := setupLedgerService(t, fake)

	seedPrice(t, db, lodgeID, "2023-01", 200)
	m := seedMember(t, db, node, lodgeID, "2024-04-01")

	_, err := svc.SyncMember(context.Background(), m.ID.String())
	require.NoError(t, err)

	entry, err := svc.RecordPayment(context.Background(), ledgerdomain.RecordPaymentRequest{
		MemberID: m.ID.String(),
		Period:   "2024-04",
		Amount:   decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	assert.Equal(t, ledgerdomain.StatusPartial, entry.Status)
	require.NotNil(t, entry.PaymentDate)
	assert.Equal(t, "2024-04-12", *entry.PaymentDate)

	entry, err = svc.RecordPayment(context.Background(), ledgerdomain.RecordPaymentRequest{
		MemberID:    m.ID.String(),
		Period:      "2024-04",
		Amount:      decimal.NewFromInt(120),
		PaymentDate: "2024-04-20",
	})
	require.NoError(t, err)
	assert.Equal(t, ledgerdomain.StatusPaid, entry.Status)
	assert.True(t, decimal.NewFromInt(200).Equal(entry.Paid))
	assert.Equal(t, "2024-04-20", *entry.PaymentDate)
}

func TestRecordPaymentUnknownPeriod(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	fake := clock.NewFakeClock(time.Date(2024, time.April, 12, 9, 0, 0, 0, time.UTC))
	svc, db := setupLedgerService(t, fake)

	seedPrice(t, db, lodgeID, "2023-01", 200)
	m := seedMember(t, db, node, lodgeID, "2024-04-01")

	_, err := svc.RecordPayment(context.Background(), ledgerdomain.RecordPaymentRequest{
		MemberID: m.ID.String(),
		Period:   "2024-04",
		Amount:   decimal.NewFromInt(80),
	})
	assert.ErrorIs(t, err, ledgerdomain.ErrNotFound)
}

func TestDeleteEntryAbsentIsNoop(t *testing.T) {
	node := mustNode(t)
	fake := clock.NewFakeClock(time.Date(2024, time.April, 12, 9, 0, 0, 0, time.UTC))
	svc, _ := setupLedgerService(t, fake)

	err := svc.DeleteEntry(context.Background(), node.Generate().String(), "2024-01")
	assert.NoError(t, err)
}

func TestMemberStatsPeriodRange(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	fake := clock.NewFakeClock(time.Date(2024, time.April, 12, 9, 0, 0, 0, time.UTC))
	svc, db := setupLedgerService(t, fake)

	seedPrice(t, db, lodgeID, "2023-01", 100)
	m := seedMember(t, db, node, lodgeID, "2024-01-10")

	_, err := svc.SyncMember(context.Background(), m.ID.String())
	require.NoError(t, err)

	stats, err := svc.MemberStats(context.Background(), m.ID.String(), "2024-02", "2024-03")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(stats.TotalBilled))
}
