package usecase

import (
	"context"
	"log/slog"
	"time"

	"BillCompare/internal/ports"
)

// ArchiveSync re-imports a source store into an archive on every tick of
// the driver, so a server backed by the archive picks up new monthly files.
type ArchiveSync struct {
	driver   ports.Scheduler
	importer *Importer
	src      ports.MonthlyStore
	dst      ports.BillArchive
	logger   *slog.Logger
}

// NewArchiveSync wires the driver with the import use case.
func NewArchiveSync(driver ports.Scheduler, importer *Importer, src ports.MonthlyStore, dst ports.BillArchive, logger *slog.Logger) *ArchiveSync {
	return &ArchiveSync{driver: driver, importer: importer, src: src, dst: dst, logger: logger}
}

// Start registers the import job with the driver.
func (s *ArchiveSync) Start(ctx context.Context) error {
	if s.driver == nil || s.importer == nil {
		return nil
	}

	job := func(trigger time.Time) {
		result, err := s.importer.Import(ctx, s.src, s.dst)
		if s.logger == nil {
			return
		}
		if err != nil {
			s.logger.Error("archive sync failed", "trigger", trigger, "error", err)
			return
		}
		s.logger.Info("archive synced", "batch", result.BatchID, "months", result.Months, "bills", result.Bills)
	}

	return s.driver.Start(ctx, job)
}

// Stop tears down the underlying driver.
func (s *ArchiveSync) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
