// Package dashboard composes fund balances, period financials and the
// outstanding roster debt into the summary shown on the landing screen.
package dashboard

import (
	"context"

	ledgerdomain "github.com/lodgeworks/tesoro/internal/ledger/domain"
	"github.com/lodgeworks/tesoro/internal/lodgectx"
	treasurydomain "github.com/lodgeworks/tesoro/internal/treasury/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Summary struct {
	Balances        treasurydomain.Balances    `json:"balances"`
	Financials      *treasurydomain.Financials `json:"financials,omitempty"`
	OutstandingDebt decimal.Decimal            `json:"outstanding_debt"`
}

type Service interface {
	// Summary reports current fund balances and total unpaid dues. When
	// both dates are set it also totals income and expense between them.
	Summary(ctx context.Context, startDate, endDate string) (*Summary, error)
}

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Treasury   treasurydomain.Service
	LedgerRepo ledgerdomain.Repository
}

type service struct {
	db         *gorm.DB
	log        *zap.Logger
	treasury   treasurydomain.Service
	ledgerRepo ledgerdomain.Repository
}

func New(p Params) Service {
	return &service{
		db:         p.DB,
		log:        p.Log.Named("dashboard.service"),
		treasury:   p.Treasury,
		ledgerRepo: p.LedgerRepo,
	}
}

func (s *service) Summary(ctx context.Context, startDate, endDate string) (*Summary, error) {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return nil, treasurydomain.ErrInvalidLodge
	}

	balances, err := s.treasury.Balances(ctx)
	if err != nil {
		return nil, err
	}

	debt, err := s.ledgerRepo.SumDebtByLodge(ctx, s.db, lodgeID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Balances:        *balances,
		OutstandingDebt: debt,
	}

	if startDate != "" || endDate != "" {
		fin, err := s.treasury.GlobalFinancials(ctx, startDate, endDate)
		if err != nil {
			return nil, err
		}
		summary.Financials = fin
	}

	return summary, nil
}
