package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// MemberFailure identifies one member whose writes failed during a
// roster-wide operation. Failures are isolated: siblings keep going.
type MemberFailure struct {
	MemberID snowflake.ID `json:"member_id"`
	Name     string       `json:"name"`
	Reason   string       `json:"reason"`
}

// RosterReport summarizes a roster-wide debt sync.
type RosterReport struct {
	Members  int             `json:"members"`
	TotalOps int             `json:"total_ops"`
	Failures []MemberFailure `json:"failures,omitempty"`
}

// ChunkFailure identifies one committed-chunk failure during a bulk
// surcharge. Earlier chunks stay committed; the application is best-effort.
type ChunkFailure struct {
	Chunk   int    `json:"chunk"`
	Members int    `json:"members"`
	Reason  string `json:"reason"`
}

// ExtraFeeReport summarizes a bulk surcharge application.
type ExtraFeeReport struct {
	Applied  int            `json:"applied"`
	Chunks   int            `json:"chunks"`
	Failures []ChunkFailure `json:"failures,omitempty"`
}

// Stats are a member's lifetime (or period-ranged) totals.
type Stats struct {
	TotalBilled decimal.Decimal `json:"total_billed"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	TotalDebt   decimal.Decimal `json:"total_debt"`
}

type ExtraFeeRequest struct {
	Period      string
	Amount      decimal.Decimal
	Description string
}

type RecordPaymentRequest struct {
	MemberID    string
	Period      string
	Amount      decimal.Decimal
	PaymentDate string
	Comments    *string
}

type Service interface {
	// SyncMember reconciles one member's ledger against the owed period
	// sequence. Returns the number of entries created or amount-corrected;
	// re-running with unchanged inputs returns zero. Entries outside the
	// generated sequence are never touched, so periods orphaned by a later
	// anchor correction remain on the ledger.
	SyncMember(ctx context.Context, memberID string) (int, error)
	// SyncRoster fans out over the lodge's active members with bounded
	// parallelism; per-member failures are collected, not propagated.
	SyncRoster(ctx context.Context) (*RosterReport, error)
	// ApplyExtraFee adds a one-time surcharge to every active member's
	// entry for the period. Additive: applying twice charges twice.
	ApplyExtraFee(ctx context.Context, req ExtraFeeRequest) (*ExtraFeeReport, error)

	ListEntries(ctx context.Context, memberID string) ([]Entry, error)
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Entry, error)
	DeleteEntry(ctx context.Context, memberID, period string) error
	MemberStats(ctx context.Context, memberID, startPeriod, endPeriod string) (*Stats, error)
}
