package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lodgeworks/tesoro/internal/billingcycle"
	"github.com/lodgeworks/tesoro/internal/lodgectx"
	pricingdomain "github.com/lodgeworks/tesoro/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo pricingdomain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo pricingdomain.Repository
}

func New(p Params) pricingdomain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("pricing.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]pricingdomain.PriceHistoryEntry, error) {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return nil, pricingdomain.ErrInvalidLodge
	}
	return s.repo.ListByLodge(ctx, s.db, lodgeID)
}

func (s *Service) ListForLodge(ctx context.Context, lodgeID snowflake.ID) ([]pricingdomain.PriceHistoryEntry, error) {
	if lodgeID == 0 {
		return nil, pricingdomain.ErrInvalidLodge
	}
	return s.repo.ListByLodge(ctx, s.db, lodgeID)
}

// Add records a price change. An existing entry with the same start period
// is replaced, keeping the table free of duplicates.
func (s *Service) Add(ctx context.Context, req pricingdomain.AddRequest) error {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return pricingdomain.ErrInvalidLodge
	}

	startPeriod := strings.TrimSpace(req.StartPeriod)
	if !billingcycle.IsPeriod(startPeriod) {
		return pricingdomain.ErrInvalidPeriod
	}
	if !req.Amount.IsPositive() {
		return pricingdomain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	entry := &pricingdomain.PriceHistoryEntry{
		LodgeID:     lodgeID,
		StartPeriod: startPeriod,
		Amount:      req.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Upsert(ctx, s.db, entry); err != nil {
		return err
	}

	s.log.Info("price change recorded",
		zap.Int64("lodge_id", int64(lodgeID)),
		zap.String("start_period", startPeriod),
		zap.String("amount", req.Amount.String()),
	)
	return nil
}

// Update moves or corrects a price change. The old entry is removed; an
// entry already present at the new start period is overwritten.
func (s *Service) Update(ctx context.Context, req pricingdomain.UpdateRequest) error {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return pricingdomain.ErrInvalidLodge
	}

	oldStart := strings.TrimSpace(req.OldStartPeriod)
	newStart := strings.TrimSpace(req.StartPeriod)
	if !billingcycle.IsPeriod(oldStart) || !billingcycle.IsPeriod(newStart) {
		return pricingdomain.ErrInvalidPeriod
	}
	if !req.Amount.IsPositive() {
		return pricingdomain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if oldStart != newStart {
			if _, err := s.repo.Delete(ctx, tx, lodgeID, oldStart); err != nil {
				return err
			}
		}
		return s.repo.Upsert(ctx, tx, &pricingdomain.PriceHistoryEntry{
			LodgeID:     lodgeID,
			StartPeriod: newStart,
			Amount:      req.Amount,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	})
}

// Remove deletes a price change. Removing an absent entry is a no-op.
func (s *Service) Remove(ctx context.Context, startPeriod string) error {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return pricingdomain.ErrInvalidLodge
	}

	startPeriod = strings.TrimSpace(startPeriod)
	if !billingcycle.IsPeriod(startPeriod) {
		return pricingdomain.ErrInvalidPeriod
	}

	_, err := s.repo.Delete(ctx, s.db, lodgeID, startPeriod)
	return err
}
