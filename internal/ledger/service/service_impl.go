package service

import (
	"context"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/lodgeworks/tesoro/internal/billingcycle"
	"github.com/lodgeworks/tesoro/internal/clock"
	"github.com/lodgeworks/tesoro/internal/config"
	ledgerdomain "github.com/lodgeworks/tesoro/internal/ledger/domain"
	"github.com/lodgeworks/tesoro/internal/lodgectx"
	memberdomain "github.com/lodgeworks/tesoro/internal/member/domain"
	"github.com/lodgeworks/tesoro/internal/metrics"
	pricingdomain "github.com/lodgeworks/tesoro/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// maxBatchOps is the persistence layer's ceiling on operations per atomic
// batch. Roster-wide surcharges commit in chunks of this size.
const maxBatchOps = 450

type Params struct {
	fx.In

	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	Metrics     *metrics.Metrics
	Repo        ledgerdomain.Repository
	MemberRepo  memberdomain.Repository
	PricingRepo pricingdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	metrics     *metrics.Metrics
	repo        ledgerdomain.Repository
	memberRepo  memberdomain.Repository
	pricingRepo pricingdomain.Repository
	workers     int
}

func New(p Params) ledgerdomain.Service {
	workers := p.Cfg.SyncWorkers
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("ledger.service"),
		clock:       p.Clock,
		metrics:     p.Metrics,
		repo:        p.Repo,
		memberRepo:  p.MemberRepo,
		pricingRepo: p.PricingRepo,
		workers:     workers,
	}
}

func (s *Service) SyncMember(ctx context.Context, memberID string) (int, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(memberID))
	if err != nil {
		return 0, ledgerdomain.ErrInvalidID
	}

	m, err := s.memberRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return 0, err
	}
	if m == nil {
		return 0, memberdomain.ErrNotFound
	}

	history, err := s.pricingRepo.ListByLodge(ctx, s.db, m.LodgeID)
	if err != nil {
		return 0, err
	}
	if len(history) == 0 {
		return 0, ledgerdomain.ErrNoPriceHistory
	}

	return s.syncOne(ctx, m, history)
}

// syncOne reconciles a single member and commits all of their writes in one
// transaction. Inactive members are skipped with zero operations.
func (s *Service) syncOne(ctx context.Context, m *memberdomain.Member, history []pricingdomain.PriceHistoryEntry) (int, error) {
	if !m.Active {
		return 0, nil
	}

	today := s.clock.Now()
	anchor := billingcycle.Anchor(m.RejoinDate, m.MasonicJoinDate, m.JoinDate, today)
	periods := billingcycle.Periods(anchor, today)
	if len(periods) == 0 {
		return 0, nil
	}

	existing, err := s.repo.ListByMember(ctx, s.db, m.ID)
	if err != nil {
		return 0, err
	}
	byPeriod := make(map[string]ledgerdomain.Entry, len(existing))
	for _, e := range existing {
		byPeriod[e.Period] = e
	}

	var creates []ledgerdomain.Entry
	var updates []ledgerdomain.Entry

	now := today
	for _, period := range periods {
		amount := pricingdomain.Resolve(history, period)

		current, ok := byPeriod[period]
		if !ok {
			creates = append(creates, ledgerdomain.Entry{
				MemberID:  m.ID,
				Period:    period,
				LodgeID:   m.LodgeID,
				Amount:    amount,
				Status:    ledgerdomain.StatusPending,
				Comments:  "generated by debt sync",
				CreatedAt: now,
				UpdatedAt: now,
			})
			continue
		}
		// Paid entries are settled history: a later price correction must
		// never reopen them.
		if current.Status != ledgerdomain.StatusPaid && !current.Amount.Equal(amount) {
			current.Amount = amount
			updates = append(updates, current)
		}
	}

	ops := len(creates) + len(updates)
	if ops == 0 {
		return 0, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range creates {
			if err := s.repo.Insert(ctx, tx, &creates[i]); err != nil {
				return err
			}
		}
		for i := range updates {
			if err := s.repo.UpdateAmount(ctx, tx, updates[i].MemberID, updates[i].Period, updates[i].Amount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.SyncOps.Add(float64(ops))
	}
	s.log.Info("member ledger synced",
		zap.Int64("member_id", int64(m.ID)),
		zap.Int("created", len(creates)),
		zap.Int("amount_corrected", len(updates)),
	)
	return ops, nil
}

func (s *Service) SyncRoster(ctx context.Context) (*ledgerdomain.RosterReport, error) {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return nil, ledgerdomain.ErrInvalidLodge
	}

	history, err := s.pricingRepo.ListByLodge(ctx, s.db, lodgeID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, ledgerdomain.ErrNoPriceHistory
	}

	members, err := s.memberRepo.ListActiveByLodge(ctx, s.db, lodgeID)
	if err != nil {
		return nil, err
	}

	report := &ledgerdomain.RosterReport{Members: len(members)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range members {
		m := members[i]
		g.Go(func() error {
			ops, err := s.syncOne(gctx, &m, history)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// One member's batch failure must not block the rest of
				// the roster.
				report.Failures = append(report.Failures, ledgerdomain.MemberFailure{
					MemberID: m.ID,
					Name:     m.Name,
					Reason:   err.Error(),
				})
				if s.metrics != nil {
					s.metrics.SyncFailures.Inc()
				}
				s.log.Warn("member sync failed",
					zap.Int64("member_id", int64(m.ID)),
					zap.Error(err),
				)
				return nil
			}
			report.TotalOps += ops
			return nil
		})
	}
	_ = g.Wait()

	s.log.Info("roster synced",
		zap.Int64("lodge_id", int64(lodgeID)),
		zap.Int("members", report.Members),
		zap.Int("total_ops", report.TotalOps),
		zap.Int("failures", len(report.Failures)),
	)
	return report, nil
}

func (s *Service) ApplyExtraFee(ctx context.Context, req ledgerdomain.ExtraFeeRequest) (*ledgerdomain.ExtraFeeReport, error) {
	lodgeID, ok := lodgectx.LodgeIDFromContext(ctx)
	if !ok || lodgeID == 0 {
		return nil, ledgerdomain.ErrInvalidLodge
	}

	period := strings.TrimSpace(req.Period)
	if !billingcycle.IsPeriod(period) {
		return nil, ledgerdomain.ErrInvalidPeriod
	}
	if !req.Amount.IsPositive() {
		return nil, ledgerdomain.ErrInvalidAmount
	}

	members, err := s.memberRepo.ListActiveByLodge(ctx, s.db, lodgeID)
	if err != nil {
		return nil, err
	}

	report := &ledgerdomain.ExtraFeeReport{}
	now := s.clock.Now()

	for start := 0; start < len(members); start += maxBatchOps {
		end := min(start+maxBatchOps, len(members))
		chunk := members[start:end]
		report.Chunks++

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for i := range chunk {
				touched, err := s.repo.AddExtraFee(ctx, tx, chunk[i].ID, period, req.Amount, req.Description)
				if err != nil {
					return err
				}
				if touched == 0 {
					// No dues entry for that period yet: the surcharge
					// stands alone, no base amount assumed.
					entry := ledgerdomain.Entry{
						MemberID:         chunk[i].ID,
						Period:           period,
						LodgeID:          lodgeID,
						ExtraAmount:      req.Amount,
						ExtraDescription: req.Description,
						Status:           ledgerdomain.StatusPending,
						CreatedAt:        now,
						UpdatedAt:        now,
					}
					if err := s.repo.Insert(ctx, tx, &entry); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			// Chunks already committed stay committed; the caller
			// reconciles from the report.
			report.Failures = append(report.Failures, ledgerdomain.ChunkFailure{
				Chunk:   report.Chunks - 1,
				Members: len(chunk),
				Reason:  err.Error(),
			})
			if s.metrics != nil {
				s.metrics.FeeChunkFailures.Inc()
			}
			s.log.Warn("extra fee chunk failed",
				zap.Int("chunk", report.Chunks-1),
				zap.Error(err),
			)
			continue
		}

		report.Applied += len(chunk)
		if s.metrics != nil {
			s.metrics.FeeChunks.Inc()
		}
	}

	s.log.Info("extra fee applied",
		zap.Int64("lodge_id", int64(lodgeID)),
		zap.String("period", period),
		zap.String("amount", req.Amount.String()),
		zap.Int("applied", report.Applied),
		zap.Int("failed_chunks", len(report.Failures)),
	)
	return report, nil
}

func (s *Service) ListEntries(ctx context.Context, memberID string) ([]ledgerdomain.Entry, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(memberID))
	if err != nil {
		return nil, ledgerdomain.ErrInvalidID
	}
	return s.repo.ListByMember(ctx, s.db, id)
}

func (s *Service) RecordPayment(ctx context.Context, req ledgerdomain.RecordPaymentRequest) (*ledgerdomain.Entry, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.MemberID))
	if err != nil {
		return nil, ledgerdomain.ErrInvalidID
	}
	period := strings.TrimSpace(req.Period)
	if !billingcycle.IsPeriod(period) {
		return nil, ledgerdomain.ErrInvalidPeriod
	}
	if !req.Amount.IsPositive() {
		return nil, ledgerdomain.ErrInvalidAmount
	}

	paymentDate := strings.TrimSpace(req.PaymentDate)
	if paymentDate == "" {
		paymentDate = s.clock.Now().Format("2006-01-02")
	} else if !billingcycle.IsDate(paymentDate) {
		return nil, ledgerdomain.ErrInvalidDate
	}

	entries, err := s.repo.ListByMember(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	var entry *ledgerdomain.Entry
	for i := range entries {
		if entries[i].Period == period {
			entry = &entries[i]
			break
		}
	}
	if entry == nil {
		return nil, ledgerdomain.ErrNotFound
	}

	entry.Paid = entry.Paid.Add(req.Amount)
	entry.PaymentDate = &paymentDate
	entry.Status = ledgerdomain.StatusFor(entry.Billed(), entry.Paid)
	if req.Comments != nil {
		entry.Comments = strings.TrimSpace(*req.Comments)
	}
	entry.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes one billing record. Deleting an absent entry is a
// no-op, matching price-table removal semantics.
func (s *Service) DeleteEntry(ctx context.Context, memberID, period string) error {
	id, err := snowflake.ParseString(strings.TrimSpace(memberID))
	if err != nil {
		return ledgerdomain.ErrInvalidID
	}
	period = strings.TrimSpace(period)
	if !billingcycle.IsPeriod(period) {
		return ledgerdomain.ErrInvalidPeriod
	}

	_, err = s.repo.Delete(ctx, s.db, id, period)
	return err
}

func (s *Service) MemberStats(ctx context.Context, memberID, startPeriod, endPeriod string) (*ledgerdomain.Stats, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(memberID))
	if err != nil {
		return nil, ledgerdomain.ErrInvalidID
	}
	startPeriod = strings.TrimSpace(startPeriod)
	endPeriod = strings.TrimSpace(endPeriod)
	if startPeriod != "" && !billingcycle.IsPeriod(startPeriod) {
		return nil, ledgerdomain.ErrInvalidPeriod
	}
	if endPeriod != "" && !billingcycle.IsPeriod(endPeriod) {
		return nil, ledgerdomain.ErrInvalidPeriod
	}

	entries, err := s.repo.ListByMember(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	stats := &ledgerdomain.Stats{}
	for _, e := range entries {
		if startPeriod != "" && e.Period < startPeriod {
			continue
		}
		if endPeriod != "" && e.Period > endPeriod {
			continue
		}
		stats.TotalBilled = stats.TotalBilled.Add(e.Billed())
		stats.TotalPaid = stats.TotalPaid.Add(e.Paid)
		stats.TotalDebt = stats.TotalDebt.Add(e.Debt())
	}
	return stats, nil
}
