package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/lodgeworks/tesoro/internal/lodgectx"
	pricingdomain "github.com/lodgeworks/tesoro/internal/pricing/domain"
	pricingrepository "github.com/lodgeworks/tesoro/internal/pricing/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupPricingService(t *testing.T) pricingdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&pricingdomain.PriceHistoryEntry{}))

	return New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: pricingrepository.Provide(),
	})
}

func lodgeContext(t *testing.T) (context.Context, snowflake.ID) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	lodgeID := node.Generate()
	return lodgectx.WithLodgeID(context.Background(), lodgeID), lodgeID
}

func TestAddReplacesSameStartPeriod(t *testing.T) {
	svc := setupPricingService(t)
	ctx, _ := lodgeContext(t)

	require.NoError(t, svc.Add(ctx, pricingdomain.AddRequest{
		StartPeriod: "2023-01",
		Amount:      decimal.NewFromInt(100),
	}))
	require.NoError(t, svc.Add(ctx, pricingdomain.AddRequest{
		StartPeriod: "2023-01",
		Amount:      decimal.NewFromInt(120),
	}))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, decimal.NewFromInt(120).Equal(entries[0].Amount))
}

func TestAddValidatesInput(t *testing.T) {
	svc := setupPricingService(t)
	ctx, _ := lodgeContext(t)

	err := svc.Add(ctx, pricingdomain.AddRequest{StartPeriod: "2023-13", Amount: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidPeriod)

	err = svc.Add(ctx, pricingdomain.AddRequest{StartPeriod: "2023-01", Amount: decimal.Zero})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidAmount)

	err = svc.Add(context.Background(), pricingdomain.AddRequest{StartPeriod: "2023-01", Amount: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidLodge)
}

func TestUpdateMovesStartPeriod(t *testing.T) {
	svc := setupPricingService(t)
	ctx, _ := lodgeContext(t)

	require.NoError(t, svc.Add(ctx, pricingdomain.AddRequest{
		StartPeriod: "2023-01",
		Amount:      decimal.NewFromInt(100),
	}))
	require.NoError(t, svc.Update(ctx, pricingdomain.UpdateRequest{
		OldStartPeriod: "2023-01",
		StartPeriod:    "2023-06",
		Amount:         decimal.NewFromInt(150),
	}))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2023-06", entries[0].StartPeriod)
	assert.True(t, decimal.NewFromInt(150).Equal(entries[0].Amount))
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	svc := setupPricingService(t)
	ctx, _ := lodgeContext(t)

	assert.NoError(t, svc.Remove(ctx, "2023-01"))
}

func TestListScopedToLodge(t *testing.T) {
	svc := setupPricingService(t)
	ctxA, _ := lodgeContext(t)

	require.NoError(t, svc.Add(ctxA, pricingdomain.AddRequest{
		StartPeriod: "2023-01",
		Amount:      decimal.NewFromInt(100),
	}))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	ctxB := lodgectx.WithLodgeID(context.Background(), node.Generate())

	entries, err := svc.List(ctxB)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
