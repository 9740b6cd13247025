package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	ledgerdomain "github.com/lodgeworks/tesoro/internal/ledger/domain"
	ledgerrepository "github.com/lodgeworks/tesoro/internal/ledger/repository"
	"github.com/lodgeworks/tesoro/internal/lodgectx"
	memberdomain "github.com/lodgeworks/tesoro/internal/member/domain"
	treasurydomain "github.com/lodgeworks/tesoro/internal/treasury/domain"
	treasuryrepository "github.com/lodgeworks/tesoro/internal/treasury/repository"
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

func setupTreasuryService(t *testing.T, node *snowflake.Node) (treasurydomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&memberdomain.Member{},
		&ledgerdomain.Entry{},
		&treasurydomain.Entry{},
	))

	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Repo:       treasuryrepository.Provide(),
		LedgerRepo: ledgerrepository.Provide(),
	})
	return svc, db
}

func seedPaidDues(t *testing.T, db *gorm.DB, node *snowflake.Node, lodgeID snowflake.ID, period string, paid int64, paymentDate *string) snowflake.ID {
	t.Helper()
	now := time.Now().UTC()
	m := memberdomain.Member{
		ID:        node.Generate(),
		LodgeID:   lodgeID,
		Name:      "Paying Member",
		Email:     "paying@example.com",
		Active:    true,
		JoinDate:  "2024-01-01",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&m).Error)
	require.NoError(t, db.Create(&ledgerdomain.Entry{
		MemberID:    m.ID,
		Period:      period,
		LodgeID:     lodgeID,
		Amount:      decimal.NewFromInt(paid),
		Paid:        decimal.NewFromInt(paid),
		Status:      ledgerdomain.StatusPaid,
		PaymentDate: paymentDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error)
	return m.ID
}

func str(s string) *string { return &s }

func TestCreateValidatesAllocationSum(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupTreasuryService(t, node)
	ctx := lodgectx.WithLodgeID(context.Background(), node.Generate())

	_, err := svc.Create(ctx, treasurydomain.CreateRequest{
		Date:     "2024-03-10",
		Type:     treasurydomain.TypeIncome,
		Category: treasurydomain.CategoryDonation,
		Amount:   decimal.NewFromInt(300),
		Allocations: []treasurydomain.Allocation{
			{Source: treasurydomain.SourceGeneral, Amount: decimal.NewFromInt(100)},
			{Source: treasurydomain.SourceCharity, Amount: decimal.NewFromInt(150)},
		},
	})
	assert.ErrorIs(t, err, treasurydomain.ErrAllocationMismatch)
}

func TestCreateRejectsUnknownSource(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupTreasuryService(t, node)
	ctx := lodgectx.WithLodgeID(context.Background(), node.Generate())

	_, err := svc.Create(ctx, treasurydomain.CreateRequest{
		Date:     "2024-03-10",
		Type:     treasurydomain.TypeIncome,
		Category: treasurydomain.CategoryDonation,
		Amount:   decimal.NewFromInt(100),
		Allocations: []treasurydomain.Allocation{
			{Source: "slush", Amount: decimal.NewFromInt(100)},
		},
	})
	assert.ErrorIs(t, err, treasurydomain.ErrInvalidAllocation)
}

func TestBalancesSplitAcrossFunds(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	svc, _ := setupTreasuryService(t, node)
	ctx := lodgectx.WithLodgeID(context.Background(), lodgeID)

	_, err := svc.Create(ctx, treasurydomain.CreateRequest{
		Date:     "2024-03-10",
		Type:     treasurydomain.TypeIncome,
		Category: treasurydomain.CategoryDonation,
		Amount:   decimal.NewFromInt(300),
		Allocations: []treasurydomain.Allocation{
			{Source: treasurydomain.SourceGeneral, Amount: decimal.NewFromInt(100)},
			{Source: treasurydomain.SourceCharity, Amount: decimal.NewFromInt(200)},
		},
	})
	require.NoError(t, err)

	// No allocations: the full amount lands on the general fund.
	_, err = svc.Create(ctx, treasurydomain.CreateRequest{
		Date:     "2024-03-11",
		Type:     treasurydomain.TypeExpense,
		Category: treasurydomain.CategorySupplies,
		Amount:   decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	balances, err := svc.Balances(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(balances.General), "general: %s", balances.General)
	assert.True(t, decimal.NewFromInt(200).Equal(balances.Charity))
	assert.True(t, decimal.Zero.Equal(balances.Quotas))
}

func TestBalancesQuotasBaselineFromDues(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	svc, db := setupTreasuryService(t, node)
	ctx := lodgectx.WithLodgeID(context.Background(), lodgeID)

	seedPaidDues(t, db, node, lodgeID, "2024-01", 150, str("2024-01-20"))

	// A manual expense drawn against the dues fund corrects the baseline.
	_, err := svc.Create(ctx, treasurydomain.CreateRequest{
		Date:     "2024-02-01",
		Type:     treasurydomain.TypeExpense,
		Category: treasurydomain.CategoryOperatingExpense,
		Amount:   decimal.NewFromInt(50),
		Allocations: []treasurydomain.Allocation{
			{Source: treasurydomain.SourceQuotas, Amount: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	balances, err := svc.Balances(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(balances.Quotas), "quotas: %s", balances.Quotas)
}

func TestUpdateRejectsDerivedEntries(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupTreasuryService(t, node)
	ctx := lodgectx.WithLodgeID(context.Background(), node.Generate())

	_, err := svc.Update(ctx, treasurydomain.UpdateRequest{
		ID:     "quota_123_2024-01",
		Date:   "2024-03-10",
		Type:   treasurydomain.TypeIncome,
		Amount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, treasurydomain.ErrDerivedEntry)

	err = svc.Delete(ctx, "quota_123_2024-01")
	assert.ErrorIs(t, err, treasurydomain.ErrDerivedEntry)
}

func TestDeleteAbsentEntryIsNoop(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupTreasuryService(t, node)
	ctx := lodgectx.WithLodgeID(context.Background(), node.Generate())

	assert.NoError(t, svc.Delete(ctx, node.Generate().String()))
}

func TestHistoryMergesAndOrders(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	svc, db := setupTreasuryService(t, node)
	ctx := lodgectx.WithLodgeID(context.Background(), lodgeID)

	_, err := svc.Create(ctx, treasurydomain.CreateRequest{
		Date:     "2024-03-10",
		Type:     treasurydomain.TypeExpense,
		Category: treasurydomain.CategoryEvent,
		Amount:   decimal.NewFromInt(75),
	})
	require.NoError(t, err)

	seedPaidDues(t, db, node, lodgeID, "2024-03", 200, str("2024-03-15"))
	seedPaidDues(t, db, node, lodgeID, "2024-02", 100, nil)

	items, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Undated payments sort ahead of any calendar date in the
	// newest-first ordering.
	assert.Equal(t, treasurydomain.UnscheduledDate, items[0].Date)
	assert.True(t, items[0].Derived)
	assert.Equal(t, "2024-03-15", items[1].Date)
	assert.Equal(t, treasurydomain.CategoryQuota, items[1].Category)
	assert.Equal(t, "2024-03-10", items[2].Date)
	assert.False(t, items[2].Derived)

	for _, item := range items {
		if item.Derived {
			require.Len(t, item.Allocations, 1)
			assert.Equal(t, treasurydomain.SourceQuotas, item.Allocations[0].Source)
			assert.Equal(t, treasurydomain.TypeIncome, item.Type)
		}
	}
}

func TestGlobalFinancialsFiltersByDate(t *testing.T) {
	node := mustNode(t)
	lodgeID := node.Generate()
	svc, db := setupTreasuryService(t, node)
	ctx := lodgectx.WithLodgeID(context.Background(), lodgeID)

	_, err := svc.Create(ctx, treasurydomain.CreateRequest{
		Date:     "2024-03-10",
		Type:     treasurydomain.TypeIncome,
		Category: treasurydomain.CategoryDonation,
		Amount:   decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, treasurydomain.CreateRequest{
		Date:     "2024-03-20",
		Type:     treasurydomain.TypeExpense,
		Category: treasurydomain.CategorySupplies,
		Amount:   decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, treasurydomain.CreateRequest{
		Date:     "2024-05-01",
		Type:     treasurydomain.TypeIncome,
		Category: treasurydomain.CategoryDonation,
		Amount:   decimal.NewFromInt(999),
	})
	require.NoError(t, err)

	// Dues count on payment date: inside and outside the window.
	seedPaidDues(t, db, node, lodgeID, "2024-03", 200, str("2024-03-15"))
	seedPaidDues(t, db, node, lodgeID, "2024-01", 100, str("2024-01-05"))
	seedPaidDues(t, db, node, lodgeID, "2024-02", 50, nil)

	fin, err := svc.GlobalFinancials(ctx, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(700).Equal(fin.Income), "income: %s", fin.Income)
	assert.True(t, decimal.NewFromInt(120).Equal(fin.Expense))
}

func TestGlobalFinancialsValidatesDates(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupTreasuryService(t, node)
	ctx := lodgectx.WithLodgeID(context.Background(), node.Generate())

	_, err := svc.GlobalFinancials(ctx, "2024-03", "2024-03-31")
	assert.ErrorIs(t, err, treasurydomain.ErrInvalidDate)
}
