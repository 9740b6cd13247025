package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lodgeworks/tesoro/internal/billingcycle"
	ledgerdomain "github.com/lodgeworks/tesoro/internal/ledger/domain"
	"github.com/lodgeworks/tesoro/internal/lodgectx"
	treasurydomain "github.com/lodgeworks/tesoro/internal/treasury/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// derivedIDPrefix marks quota pseudo-transactions in combined views; they
// are synthesized at read time and can never be edited or deleted.
const derivedIDPrefix = "quota_"

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       treasurydomain.Repository
	LedgerRepo ledgerdomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       treasurydomain.Repository
	ledgerRepo ledgerdomain.Repository
}

func New(p Params) treasurydomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("treasury.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		ledgerRepo: p.LedgerRepo,
	}
}

func (s *Service) Create(ctx context.Context, req treasurydomain.CreateRequest) (*treasurydomain.Entry, error) {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return nil, treasurydomain.ErrInvalidLodge
	}

	if err := validateEntry(req.Date, req.Type, req.Amount, req.Allocations); err != nil {
		return nil, err
	}

	var createdBy snowflake.ID
	if raw := strings.TrimSpace(req.CreatedBy); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, treasurydomain.ErrInvalidID
		}
		createdBy = parsed
	}

	now := time.Now().UTC()
	entry := &treasurydomain.Entry{
		ID:          s.genID.Generate(),
		LodgeID:     lodgeID,
		Date:        strings.TrimSpace(req.Date),
		Type:        req.Type,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Allocations: datatypes.JSONSlice[treasurydomain.Allocation](req.Allocations),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, entry); err != nil {
		return nil, err
	}

	s.log.Info("treasury entry created",
		zap.Int64("lodge_id", int64(lodgeID)),
		zap.String("type", string(entry.Type)),
		zap.String("amount", entry.Amount.String()),
	)
	return entry, nil
}

func (s *Service) Update(ctx context.Context, req treasurydomain.UpdateRequest) (*treasurydomain.Entry, error) {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return nil, treasurydomain.ErrInvalidLodge
	}

	id, err := parseManualID(req.ID)
	if err != nil {
		return nil, err
	}
	if err := validateEntry(req.Date, req.Type, req.Amount, req.Allocations); err != nil {
		return nil, err
	}

	entry, err := s.repo.FindByID(ctx, s.db, lodgeID, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, treasurydomain.ErrNotFound
	}

	entry.Date = strings.TrimSpace(req.Date)
	entry.Type = req.Type
	entry.Category = strings.TrimSpace(req.Category)
	entry.Description = strings.TrimSpace(req.Description)
	entry.Amount = req.Amount
	entry.Allocations = datatypes.JSONSlice[treasurydomain.Allocation](req.Allocations)
	entry.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes a manual entry. Quota pseudo-transactions are rejected;
// deleting an absent entry is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return treasurydomain.ErrInvalidLodge
	}

	entryID, err := parseManualID(id)
	if err != nil {
		return err
	}

	_, err = s.repo.Delete(ctx, s.db, lodgeID, entryID)
	return err
}

func (s *Service) List(ctx context.Context) ([]treasurydomain.Entry, error) {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return nil, treasurydomain.ErrInvalidLodge
	}
	return s.repo.ListByLodge(ctx, s.db, lodgeID)
}

func (s *Service) Balances(ctx context.Context) (*treasurydomain.Balances, error) {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return nil, treasurydomain.ErrInvalidLodge
	}

	entries, err := s.repo.ListByLodge(ctx, s.db, lodgeID)
	if err != nil {
		return nil, err
	}

	balances := &treasurydomain.Balances{}
	for _, entry := range entries {
		sign := decimal.NewFromInt(1)
		if entry.Type == treasurydomain.TypeExpense {
			sign = decimal.NewFromInt(-1)
		}
		for _, alloc := range entry.EffectiveAllocations() {
			signed := alloc.Amount.Mul(sign)
			switch alloc.Source {
			case treasurydomain.SourceGeneral:
				balances.General = balances.General.Add(signed)
			case treasurydomain.SourceCharity:
				balances.Charity = balances.Charity.Add(signed)
			case treasurydomain.SourceQuotas:
				balances.Quotas = balances.Quotas.Add(signed)
			}
		}
	}

	// The dues fund baseline is everything members have ever paid; manual
	// quota allocations above act as corrections against it.
	paid, err := s.ledgerRepo.SumPaidByLodge(ctx, s.db, lodgeID)
	if err != nil {
		return nil, err
	}
	balances.Quotas = balances.Quotas.Add(paid)

	return balances, nil
}

func (s *Service) History(ctx context.Context) ([]treasurydomain.HistoryItem, error) {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return nil, treasurydomain.ErrInvalidLodge
	}

	entries, err := s.repo.ListByLodge(ctx, s.db, lodgeID)
	if err != nil {
		return nil, err
	}
	paidRecords, err := s.ledgerRepo.ListPaidByLodge(ctx, s.db, lodgeID)
	if err != nil {
		return nil, err
	}

	items := make([]treasurydomain.HistoryItem, 0, len(entries)+len(paidRecords))
	for _, entry := range entries {
		createdAt := entry.CreatedAt
		items = append(items, treasurydomain.HistoryItem{
			ID:          entry.ID.String(),
			Date:        entry.Date,
			Type:        entry.Type,
			Category:    entry.Category,
			Description: entry.Description,
			Amount:      entry.Amount,
			Allocations: entry.EffectiveAllocations(),
			CreatedBy:   entry.CreatedBy.String(),
			CreatedAt:   &createdAt,
			Derived:     false,
		})
	}
	for _, rec := range paidRecords {
		date := treasurydomain.UnscheduledDate
		if rec.PaymentDate != nil && len(*rec.PaymentDate) >= 10 {
			date = (*rec.PaymentDate)[:10]
		}
		items = append(items, treasurydomain.HistoryItem{
			ID:          fmt.Sprintf("%s%d_%s", derivedIDPrefix, rec.MemberID, rec.Period),
			Date:        date,
			Type:        treasurydomain.TypeIncome,
			Category:    treasurydomain.CategoryQuota,
			Description: fmt.Sprintf("Dues payment %s - %s", rec.Period, rec.MemberName),
			Amount:      rec.Paid,
			Allocations: []treasurydomain.Allocation{{Source: treasurydomain.SourceQuotas, Amount: rec.Paid}},
			CreatedBy:   rec.MemberID.String(),
			Derived:     true,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date > items[j].Date
		}
		// Same date: manual entries first, then newest creation.
		if items[i].Derived != items[j].Derived {
			return !items[i].Derived
		}
		if items[i].CreatedAt != nil && items[j].CreatedAt != nil {
			return items[i].CreatedAt.After(*items[j].CreatedAt)
		}
		return false
	})

	return items, nil
}

func (s *Service) GlobalFinancials(ctx context.Context, startDate, endDate string) (*treasurydomain.Financials, error) {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return nil, treasurydomain.ErrInvalidLodge
	}

	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)
	if !billingcycle.IsDate(startDate) || !billingcycle.IsDate(endDate) {
		return nil, treasurydomain.ErrInvalidDate
	}

	entries, err := s.repo.ListByLodge(ctx, s.db, lodgeID)
	if err != nil {
		return nil, err
	}

	fin := &treasurydomain.Financials{}
	for _, entry := range entries {
		if entry.Date < startDate || entry.Date > endDate {
			continue
		}
		if entry.Type == treasurydomain.TypeIncome {
			fin.Income = fin.Income.Add(entry.Amount)
		} else {
			fin.Expense = fin.Expense.Add(entry.Amount)
		}
	}

	// Dues inflows count on the date the payment was received, not the
	// billing period it settles.
	paid, err := s.ledgerRepo.SumPaidByLodgeBetween(ctx, s.db, lodgeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	fin.Income = fin.Income.Add(paid)

	return fin, nil
}

func parseManualID(raw string) (snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, derivedIDPrefix) {
		return 0, treasurydomain.ErrDerivedEntry
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, treasurydomain.ErrInvalidID
	}
	return id, nil
}

func validateEntry(date string, txType treasurydomain.TransactionType, amount decimal.Decimal, allocations []treasurydomain.Allocation) error {
	if !billingcycle.IsDate(strings.TrimSpace(date)) {
		return treasurydomain.ErrInvalidDate
	}
	if !treasurydomain.ValidType(txType) {
		return treasurydomain.ErrInvalidType
	}
	if !amount.IsPositive() {
		return treasurydomain.ErrInvalidAmount
	}

	if len(allocations) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, alloc := range allocations {
		if !treasurydomain.ValidSource(alloc.Source) {
			return treasurydomain.ErrInvalidAllocation
		}
		if alloc.Amount.IsNegative() {
			return treasurydomain.ErrInvalidAllocation
		}
		sum = sum.Add(alloc.Amount)
	}
	if !sum.Equal(amount) {
		return treasurydomain.ErrAllocationMismatch
	}
	return nil
}
