package ports

import (
	"context"
	"time"

	"BillCompare/internal/domain"
)

// BillSource is the read-only data source consumed by the comparison front end.
type BillSource interface {
	Legislators(ctx context.Context) ([]domain.Legislator, error)
	Bills(ctx context.Context, q RangeQuery) ([]domain.Bill, error)
	AvailableMonths(ctx context.Context) ([]domain.MonthEntry, error)
	Categories(ctx context.Context) (map[string]string, error)
	CategorySummary(ctx context.Context, q RangeQuery) (map[string]int, error)
	PartyStats(ctx context.Context, q RangeQuery) (domain.PartyStats, error)
}

// RangeQuery narrows a bill listing. Empty Start/End means the latest months.
type RangeQuery struct {
	Start    string
	End      string
	Category string
}

// MonthlyStore serves monthly bill files and the legislator roster.
type MonthlyStore interface {
	Months(ctx context.Context) ([]domain.MonthRef, error)
	LoadMonth(ctx context.Context, month domain.MonthRef) ([]domain.Bill, error)
	Legislators(ctx context.Context) ([]domain.Legislator, error)
}

// BillArchive persists monthly bill snapshots.
type BillArchive interface {
	MonthlyStore
	SaveMonth(ctx context.Context, month domain.MonthRef, bills []domain.Bill, batchID string) error
	SaveLegislators(ctx context.Context, legislators []domain.Legislator) error
}

// DiffOp classifies a diff segment.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

// DiffSegment is one run of a character diff.
type DiffSegment struct {
	Op   DiffOp
	Text string
}

// Differ computes a character-level diff between two strings.
type Differ interface {
	DiffChars(base, next string) []DiffSegment
}

// Scheduler runs a job repeatedly until stopped.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
