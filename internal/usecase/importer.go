package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"BillCompare/internal/ports"
)

// ImportResult summarizes one archive import.
type ImportResult struct {
	BatchID string
	Months  int
	Bills   int
}

// Importer copies monthly snapshots between stores.
type Importer struct {
	logger *slog.Logger
}

// NewImporter constructs the import workflow.
func NewImporter(logger *slog.Logger) *Importer {
	return &Importer{logger: logger}
}

// Import copies every month and the roster of src into dst under a new
// ULID batch.
func (i *Importer) Import(ctx context.Context, src ports.MonthlyStore, dst ports.BillArchive) (ImportResult, error) {
	result := ImportResult{BatchID: ulid.Make().String()}

	months, err := src.Months(ctx)
	if err != nil {
		return result, fmt.Errorf("list months: %w", err)
	}
	for _, month := range months {
		bills, err := src.LoadMonth(ctx, month)
		if err != nil {
			return result, fmt.Errorf("load %s: %w", month.Label(), err)
		}
		if err := dst.SaveMonth(ctx, month, bills, result.BatchID); err != nil {
			return result, fmt.Errorf("save %s: %w", month.Label(), err)
		}
		result.Months++
		result.Bills += len(bills)
		i.debug("month imported", "month", month.Label(), "bills", len(bills), "batch", result.BatchID)
	}

	legislators, err := src.Legislators(ctx)
	if err != nil {
		return result, fmt.Errorf("load legislators: %w", err)
	}
	if err := dst.SaveLegislators(ctx, legislators); err != nil {
		return result, fmt.Errorf("save legislators: %w", err)
	}
	return result, nil
}

func (i *Importer) debug(msg string, args ...any) {
	if i.logger != nil {
		i.logger.Debug(msg, args...)
	}
}
